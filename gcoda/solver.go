package gcoda

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/pkg/errors"
	"github.com/vmikk/NetCoMi/pkg/log"
)

// solveLambda runs the constrained fixed-point iteration for a single
// penalty value. Each step linearizes the concave part of the objective at
// the current estimate, which reduces the constrained problem to one
// unconstrained graphical lasso solve on a rank-one-corrected matrix.
//
// warm may be nil, in which case the identity is used. On hitting the
// iteration cap the last estimate is still returned; non-convergence is a
// warning, not a failure.
//
// Returns the precision estimate and its negative log-likelihood with the
// L1 penalty term subtracted back out.
func (g *GCoda) solveLambda(S *mat.SymDense, warm *mat.SymDense, lambda float64) (*mat.SymDense, float64, error) {
	p := S.SymmetricDim()

	iSig := warm
	if iSig == nil {
		iSig = identity(p)
	}

	fvalCur := math.Inf(1)
	errPost := 1.0
	k := 0
	for errPost > g.tol && k < g.maxIter {
		a2 := g.buildA2(S, iSig)

		cand, err := g.solver.Solve(a2, lambda)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "penalized precision solve failed at lambda=%g iteration %d", lambda, k)
		}

		fvalNew, err := objective(cand, S, lambda, k)
		if err != nil {
			return nil, 0, err
		}

		// Convergence is reached as soon as either the estimate or the
		// objective stabilizes, whichever happens first.
		errISig := maxRelChange(cand, iSig)
		errFval := relChange(fvalNew, fvalCur)
		errPost = math.Min(errISig, errFval)

		iSig = cand
		fvalCur = fvalNew
		k++
	}

	if errPost > g.tol {
		w := errors.NewConvergenceWarning("gCoda fixed-point", k, errPost, "")
		errors.Warn(w)
		g.log().Warn("Inner solver hit iteration cap",
			log.LambdaKey, lambda,
			log.IterationKey, k,
			log.ConvergenceErrorKey, errPost,
			log.ToleranceKey, g.tol,
		)
	}

	return iSig, fvalCur - lambda*absSum(iSig), nil
}

// buildA2 assembles the matrix handed to the penalized-precision solver.
// With o the row sums of the current estimate, t their total, a = o/t,
// v = S·a and c = aᵀSa:
//
//	A2[i][j] = S[i][j] − v[i] − v[j] + c + 1/t
//
// The rank-one correction projects out the compositional null-space
// direction implied by the current precision matrix. The normalization by
// the row-sum total is kept in exactly this form; algebraically equivalent
// rewrites drift differently under floating point across iterations.
func (g *GCoda) buildA2(S *mat.SymDense, iSig *mat.SymDense) *mat.SymDense {
	p := S.SymmetricDim()

	o, total := rowSums(iSig)
	a := make([]float64, p)
	for i := range o {
		a[i] = o[i] / total
	}

	v := make([]float64, p)
	c := 0.0
	for i := 0; i < p; i++ {
		s := 0.0
		for j := 0; j < p; j++ {
			s += S.At(i, j) * a[j]
		}
		v[i] = s
		c += a[i] * s
	}

	shift := c + 1/total
	a2 := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			a2.SetSym(i, j, S.At(i, j)-v[i]-v[j]+shift)
		}
	}
	return a2
}

// identity returns the p×p identity as a SymDense.
func identity(p int) *mat.SymDense {
	m := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		m.SetSym(i, i, 1)
	}
	return m
}

// maxRelChange returns the maximum absolute entrywise difference between
// two estimates, relative to the larger entry magnitude (floored at 1).
func maxRelChange(a, b *mat.SymDense) float64 {
	p := a.SymmetricDim()
	num, scale := 0.0, 1.0
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			if d := math.Abs(a.At(i, j) - b.At(i, j)); d > num {
				num = d
			}
			if v := math.Abs(a.At(i, j)); v > scale {
				scale = v
			}
			if v := math.Abs(b.At(i, j)); v > scale {
				scale = v
			}
		}
	}
	return num / scale
}

// relChange returns the relative change between successive objective
// values. A +Inf previous value (first iteration) yields +Inf, so the
// entrywise signal governs the first step.
func relChange(fNew, fCur float64) float64 {
	if math.IsInf(fCur, 0) {
		return math.Inf(1)
	}
	scale := math.Max(1, math.Max(math.Abs(fNew), math.Abs(fCur)))
	return math.Abs(fNew-fCur) / scale
}
