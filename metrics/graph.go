// Package metrics provides evaluation metrics for inferred
// conditional-dependence networks: agreement between an estimated
// adjacency pattern and a reference pattern.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/pkg/errors"
)

// EdgePrecision は推定ネットワークのエッジ適合率を計算する
// （推定されたエッジのうち、参照ネットワークにも存在する割合）
//
// 予測されたエッジが一つもない場合はUndefinedMetricWarningを発行し0を返す
func EdgePrecision(estimated, reference *mat.SymDense) (float64, error) {
	tp, fp, _, err := edgeCounts(estimated, reference)
	if err != nil {
		return 0, err
	}

	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("edge_precision", "no predicted edges", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fp), nil
}

// EdgeRecall は推定ネットワークのエッジ再現率を計算する
// （参照ネットワークのエッジのうち、推定ネットワークでも検出された割合）
func EdgeRecall(estimated, reference *mat.SymDense) (float64, error) {
	tp, _, fn, err := edgeCounts(estimated, reference)
	if err != nil {
		return 0, err
	}

	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("edge_recall", "no reference edges", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fn), nil
}

// EdgeF1 はエッジ適合率と再現率の調和平均を計算する
func EdgeF1(estimated, reference *mat.SymDense) (float64, error) {
	precision, err := EdgePrecision(estimated, reference)
	if err != nil {
		return 0, err
	}
	recall, err := EdgeRecall(estimated, reference)
	if err != nil {
		return 0, err
	}

	if precision+recall == 0 {
		return 0, nil
	}
	return 2 * precision * recall / (precision + recall), nil
}

// HammingDistance は2つの隣接パターン間で食い違うエッジの数を返す
func HammingDistance(estimated, reference *mat.SymDense) (int, error) {
	_, fp, fn, err := edgeCounts(estimated, reference)
	if err != nil {
		return 0, err
	}
	return fp + fn, nil
}

// edgeCounts は上三角のエッジ一致数（TP）、過剰検出数（FP）、見逃し数（FN）を数える
// 入力は対角0の0/1対称行列であること
func edgeCounts(estimated, reference *mat.SymDense) (tp, fp, fn int, err error) {
	p := estimated.SymmetricDim()
	if rp := reference.SymmetricDim(); rp != p {
		return 0, 0, 0, errors.NewDimensionError("metrics.edgeCounts", p, rp, 1)
	}
	if p == 0 {
		return 0, 0, 0, errors.NewModelError("metrics.edgeCounts", "empty pattern", errors.ErrEmptyData)
	}

	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			est := estimated.At(i, j) != 0
			ref := reference.At(i, j) != 0
			switch {
			case est && ref:
				tp++
			case est && !ref:
				fp++
			case !est && ref:
				fn++
			}
		}
	}
	return tp, fp, fn, nil
}
