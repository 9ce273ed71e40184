package gcoda

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/pkg/errors"
)

// objective evaluates the penalized negative log-likelihood of a precision
// estimate under the compositional constraint:
//
//	f(Ω) = −logdet(Ω) + tr(ΩS) + log(1ᵀΩ1) − (1ᵀΩSΩ1)/(1ᵀΩ1) + lambda·Σ|Ωij|
//
// The log(1ᵀΩ1) term accounts for the degree of freedom removed by the
// closure; the cross term normalizes by the same row-sum total.
//
// Ω must be positive definite: if the Cholesky factorization fails, or the
// row-sum total is non-positive, the solver produced an invalid estimate
// and a fatal numerical error is returned.
func objective(iSig *mat.SymDense, S *mat.SymDense, lambda float64, iteration int) (float64, error) {
	p := iSig.SymmetricDim()

	var chol mat.Cholesky
	if ok := chol.Factorize(iSig); !ok {
		return 0, errors.Wrap(errors.ErrSingularMatrix,
			"objective: penalized precision estimate is not positive definite")
	}
	logDet := chol.LogDet()

	// tr(ΩS) as the elementwise product sum of two symmetric matrices.
	trace := 0.0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			trace += iSig.At(i, j) * S.At(i, j)
		}
	}

	o, total := rowSums(iSig)
	if total <= 0 {
		return 0, errors.NewNumericalInstabilityError("objective", []float64{total}, iteration)
	}

	// oᵀSo with o the row-sum vector of Ω.
	oSo := 0.0
	for i := 0; i < p; i++ {
		so := 0.0
		for j := 0; j < p; j++ {
			so += S.At(i, j) * o[j]
		}
		oSo += o[i] * so
	}

	f := -logDet + trace + math.Log(total) - oSo/total + lambda*absSum(iSig)
	if err := errors.CheckScalar("objective", f, iteration); err != nil {
		return 0, err
	}
	return f, nil
}

// rowSums returns the row-sum vector of a symmetric matrix and its total.
func rowSums(m *mat.SymDense) ([]float64, float64) {
	p := m.SymmetricDim()
	o := make([]float64, p)
	total := 0.0
	for i := 0; i < p; i++ {
		s := 0.0
		for j := 0; j < p; j++ {
			s += m.At(i, j)
		}
		o[i] = s
		total += s
	}
	return o, total
}

// absSum returns the sum of absolute values of all entries.
func absSum(m *mat.SymDense) float64 {
	p := m.SymmetricDim()
	s := 0.0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			s += math.Abs(m.At(i, j))
		}
	}
	return s
}
