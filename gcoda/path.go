package gcoda

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/pkg/errors"
	"github.com/vmikk/NetCoMi/pkg/log"
)

// estimatePath solves the fixed point along the descending penalty path,
// warm-starting every solve from the previous index's estimate, and
// extends the path adaptively while the densest candidate stays below the
// density target.
func (g *GCoda) estimatePath(S *mat.SymDense, n int) (*Result, error) {
	p := S.SymmetricDim()

	// Identical compositions in every row produce an all-zero log-ratio
	// covariance; the likelihood is meaningless there, so reject instead
	// of returning a plausible-looking network.
	if variation := maxAbs(S); variation <= degenerateEps {
		return nil, errors.NewValidationError("S",
			"log-ratio covariance is degenerate (zero variance); input carries no compositional signal", variation)
	}

	lambdaMax := maxAbsShifted(S)
	if lambdaMax <= 0 {
		return nil, errors.NewValidationError("S",
			"cannot derive a positive penalty path from the covariance", lambdaMax)
	}

	res := &Result{
		Lambda:     logSpace(lambdaMax, g.lambdaMinRatio*lambdaMax, g.nlambda),
		Samples:    n,
		Components: p,
	}

	logger := g.log().With(log.PhaseKey, log.PhasePath)

	// The running estimate threads the warm-start chain through the path:
	// each index starts from the previous index's solution.
	icov := identity(p)
	for i := 0; i < g.nlambda; i++ {
		var err error
		icov, err = g.recordSolve(res, S, icov, res.Lambda[i])
		if err != nil {
			return nil, err
		}
	}

	// Adaptive extension: halve the penalty while the densest network is
	// still too sparse. Three independent predicates terminate the loop.
	densityTarget := float64(p*(p-1)) / 2 * g.densityTarget
	indexCap := g.nlambda + g.pathExtension
	for float64(res.Df[len(res.Df)-1]) < densityTarget &&
		len(res.Lambda) < indexCap &&
		res.Lambda[len(res.Lambda)-1] > g.lambdaFloor {

		next := res.Lambda[len(res.Lambda)-1] / 2
		logger.Info("Extending penalty path: densest candidate below density target",
			log.LambdaKey, next,
			log.EdgesKey, res.Df[len(res.Df)-1],
			log.DensityTargetKey, densityTarget,
			log.PathLengthKey, len(res.Lambda)+1,
		)

		res.Lambda = append(res.Lambda, next)
		var err error
		icov, err = g.recordSolve(res, S, icov, next)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// recordSolve runs the inner solver at one penalty and appends the
// estimate, its thresholded pattern, edge count and negative
// log-likelihood to the path. Returns the estimate for the next warm start.
func (g *GCoda) recordSolve(res *Result, S *mat.SymDense, warm *mat.SymDense, lambda float64) (*mat.SymDense, error) {
	icov, nloglik, err := g.solveLambda(S, warm, lambda)
	if err != nil {
		return nil, err
	}

	pattern, df := g.threshold(icov)
	res.NLogLik = append(res.NLogLik, nloglik)
	res.Precisions = append(res.Precisions, icov)
	res.Patterns = append(res.Patterns, pattern)
	res.Df = append(res.Df, df)
	return icov, nil
}

// threshold derives the adjacency pattern from a precision estimate:
// off-diagonal magnitudes above the edge threshold become 1, the diagonal
// stays 0. Returns the pattern and its edge count.
func (g *GCoda) threshold(icov *mat.SymDense) (*mat.SymDense, int) {
	p := icov.SymmetricDim()
	pattern := mat.NewSymDense(p, nil)
	df := 0
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			if math.Abs(icov.At(i, j)) > g.edgeThreshold {
				pattern.SetSym(i, j, 1)
				df++
			}
		}
	}
	return pattern, df
}

// degenerateEps is the covariance magnitude below which the input is
// treated as carrying no signal at all.
const degenerateEps = 1e-12

// maxAbs returns the largest entry magnitude of a symmetric matrix.
func maxAbs(S *mat.SymDense) float64 {
	p := S.SymmetricDim()
	v := 0.0
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			if a := math.Abs(S.At(i, j)); a > v {
				v = a
			}
		}
	}
	return v
}

// maxAbsShifted returns the largest entry magnitude of S − I. The
// diagonal participates through its excess over 1, not just the
// off-diagonal entries; that is the intended penalty-path anchor, so the
// subtraction must stay inside the scan.
func maxAbsShifted(S *mat.SymDense) float64 {
	p := S.SymmetricDim()
	maxVal := math.Inf(-1)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			v := S.At(i, j)
			if i == j {
				v -= 1
			}
			if v > maxVal {
				maxVal = v
			}
			if -v > maxVal {
				maxVal = -v
			}
		}
	}
	return maxVal
}

// logSpace returns n values spaced uniformly in log-space from hi down to
// lo, inclusive on both ends.
func logSpace(hi, lo float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = hi
		return out
	}
	logHi := math.Log(hi)
	step := (math.Log(lo) - logHi) / float64(n-1)
	for i := range out {
		out[i] = math.Exp(logHi + float64(i)*step)
	}
	return out
}
