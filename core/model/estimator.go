package model

import "gonum.org/v1/gonum/mat"

// Fitter は教師なし推定器のインターフェース
type Fitter interface {
	// Fit は推定器を観測データで学習させる
	Fit(X mat.Matrix) error
}

// NetworkEstimator は条件付き依存ネットワークを推定するモデルのインターフェース
type NetworkEstimator interface {
	Fitter

	// Network は推定された隣接パターン（0/1対称行列）を返す
	Network() (*mat.SymDense, error)

	// Precision は推定された精度行列を返す
	Precision() (*mat.SymDense, error)
}
