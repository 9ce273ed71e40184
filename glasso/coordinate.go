package glasso

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/pkg/errors"
)

// Default bounds for the block coordinate descent loops.
const (
	DefaultMaxSweeps = 100
	DefaultTol       = 1e-4

	// innerMaxIter bounds the per-column lasso coordinate descent.
	innerMaxIter = 1000
)

// CoordinateDescent implements Solver with the block coordinate descent
// algorithm of Friedman, Hastie and Tibshirani: each column of the working
// covariance W is updated by solving a lasso subproblem via soft-threshold
// coordinate descent, and the precision matrix is recovered from the final
// W and the lasso coefficients.
type CoordinateDescent struct {
	maxSweeps int
	tol       float64
}

// Option configures a CoordinateDescent solver.
type Option func(*CoordinateDescent)

// WithMaxSweeps sets the maximum number of full passes over the columns.
func WithMaxSweeps(n int) Option {
	return func(cd *CoordinateDescent) {
		cd.maxSweeps = n
	}
}

// WithTol sets the convergence tolerance on the average absolute change of
// the working covariance, relative to the average off-diagonal magnitude of
// the input.
func WithTol(tol float64) Option {
	return func(cd *CoordinateDescent) {
		cd.tol = tol
	}
}

// NewCoordinateDescent creates a block coordinate descent solver with the
// given options.
func NewCoordinateDescent(opts ...Option) *CoordinateDescent {
	cd := &CoordinateDescent{
		maxSweeps: DefaultMaxSweeps,
		tol:       DefaultTol,
	}
	for _, opt := range opts {
		opt(cd)
	}
	return cd
}

// Solve implements Solver.
func (cd *CoordinateDescent) Solve(a mat.Symmetric, lambda float64) (*mat.SymDense, error) {
	p := a.SymmetricDim()
	if p == 0 {
		return nil, errors.NewModelError("CoordinateDescent.Solve", "empty matrix", errors.ErrEmptyData)
	}
	if lambda <= 0 {
		return nil, errors.NewValueError("CoordinateDescent.Solve", "lambda must be positive")
	}
	if err := errors.CheckMatrix("CoordinateDescent.Solve", a, p, p, 0); err != nil {
		return nil, err
	}

	if p == 1 {
		theta := mat.NewSymDense(1, nil)
		theta.SetSym(0, 0, 1/(a.At(0, 0)+lambda))
		return theta, nil
	}

	// Working covariance: off-diagonals start at A, diagonal at A + lambda.
	w := make([][]float64, p)
	for i := range w {
		w[i] = make([]float64, p)
		for j := 0; j < p; j++ {
			w[i][j] = a.At(i, j)
		}
		w[i][i] += lambda
	}

	// beta[j] holds the lasso coefficients of column j against the rest,
	// indexed by the p-1 remaining columns in order.
	beta := make([][]float64, p)
	for j := range beta {
		beta[j] = make([]float64, p-1)
	}

	// Convergence is measured against the off-diagonal scale of the input.
	offScale := 0.0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if i != j {
				offScale += math.Abs(a.At(i, j))
			}
		}
	}
	offScale /= float64(p * (p - 1))
	if offScale == 0 {
		// Diagonal input: the penalized estimate is diagonal too.
		theta := mat.NewSymDense(p, nil)
		for i := 0; i < p; i++ {
			theta.SetSym(i, i, 1/w[i][i])
		}
		return theta, nil
	}

	s12 := make([]float64, p-1)
	idx := make([]int, p-1)

	for sweep := 0; sweep < cd.maxSweeps; sweep++ {
		maxChange := 0.0
		for j := 0; j < p; j++ {
			// Index map of the p-1 rows/columns excluding j.
			k := 0
			for i := 0; i < p; i++ {
				if i == j {
					continue
				}
				idx[k] = i
				s12[k] = a.At(i, j)
				k++
			}

			// Lasso subproblem on W11 via soft-threshold coordinate descent.
			b := beta[j]
			for it := 0; it < innerMaxIter; it++ {
				delta := 0.0
				for k := 0; k < p-1; k++ {
					rowK := w[idx[k]]
					grad := s12[k]
					for l := 0; l < p-1; l++ {
						if l != k {
							grad -= rowK[idx[l]] * b[l]
						}
					}
					old := b[k]
					b[k] = softThreshold(grad, lambda) / rowK[idx[k]]
					if d := math.Abs(b[k] - old); d > delta {
						delta = d
					}
				}
				if delta < cd.tol*offScale {
					break
				}
			}

			// w12 = W11 * beta, written back into row/column j.
			for k := 0; k < p-1; k++ {
				v := 0.0
				rowK := w[idx[k]]
				for l := 0; l < p-1; l++ {
					v += rowK[idx[l]] * b[l]
				}
				if d := math.Abs(v - w[idx[k]][j]); d > maxChange {
					maxChange = d
				}
				w[idx[k]][j] = v
				w[j][idx[k]] = v
			}
		}
		if maxChange < cd.tol*offScale {
			break
		}
	}

	// Recover the precision matrix from W and the lasso coefficients:
	// theta22 = 1/(w22 − w12ᵀbeta), theta12 = −beta·theta22.
	theta := mat.NewDense(p, p, nil)
	for j := 0; j < p; j++ {
		k := 0
		dot := 0.0
		for i := 0; i < p; i++ {
			if i == j {
				continue
			}
			dot += w[i][j] * beta[j][k]
			k++
		}
		t22 := 1 / (w[j][j] - dot)
		theta.Set(j, j, t22)
		k = 0
		for i := 0; i < p; i++ {
			if i == j {
				continue
			}
			theta.Set(i, j, -beta[j][k]*t22)
			k++
		}
	}

	// The columnwise recovery is only symmetric up to convergence error.
	out := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			out.SetSym(i, j, 0.5*(theta.At(i, j)+theta.At(j, i)))
		}
	}
	if err := errors.CheckMatrix("CoordinateDescent.Solve", out, p, p, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// softThreshold applies the soft-thresholding operator.
func softThreshold(z, lambda float64) float64 {
	if z > lambda {
		return z - lambda
	} else if z < -lambda {
		return z + lambda
	}
	return 0
}
