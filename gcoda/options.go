package gcoda

import (
	"github.com/vmikk/NetCoMi/glasso"
	"github.com/vmikk/NetCoMi/pkg/log"
)

// Default estimation parameters.
const (
	DefaultPseudoCount    = 0.5
	DefaultLambdaMinRatio = 1e-4
	DefaultNLambda        = 15
	DefaultEBICGamma      = 0.5
	DefaultTol            = 1e-4
	DefaultMaxIter        = 100

	// DefaultDensityTarget is the fraction of all possible edges the
	// densest path candidate should reach before path extension stops.
	DefaultDensityTarget = 0.618

	// DefaultPathExtension is the maximum number of halved penalties
	// appended past the initial path.
	DefaultPathExtension = 15

	// DefaultLambdaFloor stops path extension once the penalty becomes
	// numerically meaningless.
	DefaultLambdaFloor = 1e-6

	// DefaultEdgeThreshold is the absolute off-diagonal magnitude above
	// which a precision entry counts as an edge.
	DefaultEdgeThreshold = 1e-6
)

// Option is a function that configures a GCoda estimator.
type Option func(*GCoda)

// WithCounts declares the input rows as raw counts, to be pseudo-counted
// and renormalized before the log-ratio transform.
func WithCounts(counts bool) Option {
	return func(g *GCoda) {
		g.counts = counts
	}
}

// WithPseudoCount sets the pseudo-count added to count data.
func WithPseudoCount(pseudo float64) Option {
	return func(g *GCoda) {
		g.pseudoCount = pseudo
	}
}

// WithLambdaMinRatio sets the ratio of the smallest to the largest penalty
// on the initial path.
func WithLambdaMinRatio(ratio float64) Option {
	return func(g *GCoda) {
		g.lambdaMinRatio = ratio
	}
}

// WithNLambda sets the number of penalties on the initial path.
func WithNLambda(n int) Option {
	return func(g *GCoda) {
		g.nlambda = n
	}
}

// WithEBICGamma sets the EBIC gamma parameter. Larger values prefer
// sparser networks.
func WithEBICGamma(gamma float64) Option {
	return func(g *GCoda) {
		g.ebicGamma = gamma
	}
}

// WithTol sets the convergence tolerance of the inner fixed-point solver.
func WithTol(tol float64) Option {
	return func(g *GCoda) {
		g.tol = tol
	}
}

// WithMaxIter sets the iteration cap of the inner fixed-point solver.
func WithMaxIter(n int) Option {
	return func(g *GCoda) {
		g.maxIter = n
	}
}

// WithDensityTarget sets the edge-density fraction that terminates
// adaptive path extension.
func WithDensityTarget(target float64) Option {
	return func(g *GCoda) {
		g.densityTarget = target
	}
}

// WithPathExtension sets the maximum number of extension steps past the
// initial path.
func WithPathExtension(n int) Option {
	return func(g *GCoda) {
		g.pathExtension = n
	}
}

// WithLambdaFloor sets the penalty below which the path is never extended.
func WithLambdaFloor(floor float64) Option {
	return func(g *GCoda) {
		g.lambdaFloor = floor
	}
}

// WithEdgeThreshold sets the precision-entry magnitude above which an edge
// is recorded in the adjacency pattern.
func WithEdgeThreshold(threshold float64) Option {
	return func(g *GCoda) {
		g.edgeThreshold = threshold
	}
}

// WithSolver substitutes the penalized-precision solver used by the inner
// fixed-point iteration.
func WithSolver(s glasso.Solver) Option {
	return func(g *GCoda) {
		g.solver = s
	}
}

// WithLogger substitutes the logger used for path and convergence
// diagnostics.
func WithLogger(l log.Logger) Option {
	return func(g *GCoda) {
		g.logger = l
	}
}
