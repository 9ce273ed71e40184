package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/vmikk/NetCoMi/core/model"
	"github.com/vmikk/NetCoMi/core/parallel"
	"github.com/vmikk/NetCoMi/pkg/errors"
)

// DefaultPseudoCount is the count added to every entry of a count matrix
// before closure, so that zeros survive the log transform.
const DefaultPseudoCount = 0.5

// Row count above which the log/centering loop runs in parallel.
const parallelRowThreshold = 512

// CLRTransform は組成データ向けの中心化対数比変換器
// 各行を対数変換し、その行自身の平均を引くことで閉鎖制約の影響を取り除く
type CLRTransform struct {
	model.BaseEstimator

	// Counts は入力行が生のカウントであることを示す
	// trueの場合、擬似カウントを加えた後に各行を合計1に正規化する
	Counts bool

	// PseudoCount はカウントデータに加える擬似カウント (デフォルト: 0.5)
	PseudoCount float64

	// NFeatures は成分（列）の数
	NFeatures int
}

// NewCLRTransform は新しいCLRTransformを作成する
//
// パラメータ:
//   - counts: 入力がカウントデータかどうか
//   - pseudoCount: カウントデータに加える擬似カウント
func NewCLRTransform(counts bool, pseudoCount float64) *CLRTransform {
	return &CLRTransform{
		Counts:      counts,
		PseudoCount: pseudoCount,
	}
}

// NewCLRTransformDefault はデフォルト設定でCLRTransformを作成する
// （割合データ、擬似カウント0.5）
func NewCLRTransformDefault() *CLRTransform {
	return NewCLRTransform(false, DefaultPseudoCount)
}

// Fit は入力の検証と成分数の記録を行う
// 変換自体は行ごとに独立なため、学習するパラメータはない
func (c *CLRTransform) Fit(X mat.Matrix) error {
	r, cols := X.Dims()
	if r == 0 || cols == 0 {
		return errors.NewModelError("CLRTransform.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := c.validate(X); err != nil {
		return err
	}

	c.NFeatures = cols
	c.SetFitted()
	return nil
}

// Transform は観測行列を中心化対数比表現に変換する
//
// カウントデータの場合は擬似カウントを加えて各行を合計1に正規化し、
// その後すべての行について自然対数をとり行平均を引く。
// 入力行列は変更されない。同一入力に対してビット単位で同一の出力を返す。
func (c *CLRTransform) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, cols := X.Dims()
	if r == 0 || cols == 0 {
		return nil, errors.NewModelError("CLRTransform.Transform", "empty data", errors.ErrEmptyData)
	}
	if c.IsFitted() && cols != c.NFeatures {
		return nil, errors.NewDimensionError("CLRTransform.Transform", c.NFeatures, cols, 1)
	}
	if err := c.validate(X); err != nil {
		return nil, err
	}

	out := mat.NewDense(r, cols, nil)
	parallel.ParallelizeWithThreshold(r, parallelRowThreshold, func(start, end int) {
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				row[j] = X.At(i, j)
			}
			if c.Counts {
				sum := 0.0
				for j := range row {
					row[j] += c.PseudoCount
					sum += row[j]
				}
				for j := range row {
					row[j] /= sum
				}
			}
			mean := 0.0
			for j := range row {
				row[j] = math.Log(row[j])
				mean += row[j]
			}
			mean /= float64(cols)
			for j := range row {
				row[j] -= mean
			}
			out.SetRow(i, row)
		}
	})

	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (c *CLRTransform) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := c.Fit(X); err != nil {
		return nil, err
	}
	return c.Transform(X)
}

// validate は対数変換の前提条件を検査する
// カウントの場合: 負の値がなく、擬似カウント追加後の行和が正であること
// 割合の場合: すべての値が正であること
func (c *CLRTransform) validate(X mat.Matrix) error {
	r, cols := X.Dims()
	for i := 0; i < r; i++ {
		rowSum := 0.0
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewValidationError("X", "entries must be finite", v)
			}
			if c.Counts {
				if v < 0 {
					return errors.NewValidationError("X", "count entries must be non-negative", v)
				}
				if v+c.PseudoCount <= 0 {
					return errors.NewValidationError("X", "entries must be positive after pseudo-count addition", v)
				}
				rowSum += v + c.PseudoCount
			} else if v <= 0 {
				return errors.NewValidationError("X", "composition entries must be strictly positive before the log transform", v)
			}
		}
		if c.Counts && rowSum <= 0 {
			return errors.NewValidationError("X", "row sum must be positive after pseudo-count addition", rowSum)
		}
	}
	return nil
}

var _ model.Transformer = (*CLRTransform)(nil)

// Covariance は変換済み行列の標本共分散行列（分母 n-1）を計算する
//
// gCoda推定器への入力統計量Sとなる。n行が2未満の場合はエラー。
func Covariance(Z mat.Matrix) (*mat.SymDense, error) {
	n, p := Z.Dims()
	if n < 2 {
		return nil, errors.NewValueError("Covariance", "at least 2 samples are required for a sample covariance")
	}
	if p == 0 {
		return nil, errors.NewModelError("Covariance", "empty data", errors.ErrEmptyData)
	}

	S := mat.NewSymDense(p, nil)
	stat.CovarianceMatrix(S, Z, nil)
	if err := errors.CheckMatrix("Covariance", S, p, p, 0); err != nil {
		return nil, err
	}
	return S, nil
}
