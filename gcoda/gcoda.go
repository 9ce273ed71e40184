// Package gcoda estimates sparse conditional-dependence networks from
// compositional data. Ordinary covariance estimation is biased by the
// sum-to-constant closure of compositions; gCoda fits an L1-penalized
// precision matrix under the compositional constraint by iterating a
// majorize-minimize fixed point around a graphical lasso solver, repeats
// the fit along a descending penalty path, and selects the final network
// with the Extended Bayesian Information Criterion.
package gcoda

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/core/model"
	"github.com/vmikk/NetCoMi/glasso"
	"github.com/vmikk/NetCoMi/pkg/errors"
	"github.com/vmikk/NetCoMi/pkg/log"
	"github.com/vmikk/NetCoMi/preprocessing"
)

// GCoda is the compositional network estimator.
//
// Usage:
//
//	g := gcoda.New(gcoda.WithCounts(true), gcoda.WithNLambda(15))
//	if err := g.Fit(X); err != nil { ... }
//	network, _ := g.Network()
type GCoda struct {
	model.BaseEstimator

	counts         bool
	pseudoCount    float64
	lambdaMinRatio float64
	nlambda        int
	ebicGamma      float64
	tol            float64
	maxIter        int
	densityTarget  float64
	pathExtension  int
	lambdaFloor    float64
	edgeThreshold  float64

	solver glasso.Solver
	logger log.Logger

	result *Result
}

// Result holds the full penalty path and the selected model.
// All slices are indexed by path position; entries are never mutated after
// being recorded, so the path stays inspectable after selection.
type Result struct {
	// Lambda is the penalty path, strictly decreasing on the initial
	// portion, halved on extension steps.
	Lambda []float64

	// NLogLik is the negative log-likelihood at each path index, with the
	// L1 penalty term removed.
	NLogLik []float64

	// Df is the edge count (upper-triangle ones of the pattern).
	Df []int

	// EBIC is the Extended Bayesian Information Criterion score.
	EBIC []float64

	// Patterns holds the 0/1 adjacency pattern per index (zero diagonal).
	Patterns []*mat.SymDense

	// Precisions holds the fitted precision matrix per index.
	Precisions []*mat.SymDense

	// OptIndex is the path index minimizing EBIC; OptLambda, Refit and
	// OptPrecision are that index's penalty, pattern and precision.
	OptIndex     int
	OptLambda    float64
	Refit        *mat.SymDense
	OptPrecision *mat.SymDense

	// Samples and Components record the input dimensions.
	Samples    int
	Components int
}

// New creates a GCoda estimator with the given options.
func New(opts ...Option) *GCoda {
	g := &GCoda{
		pseudoCount:    DefaultPseudoCount,
		lambdaMinRatio: DefaultLambdaMinRatio,
		nlambda:        DefaultNLambda,
		ebicGamma:      DefaultEBICGamma,
		tol:            DefaultTol,
		maxIter:        DefaultMaxIter,
		densityTarget:  DefaultDensityTarget,
		pathExtension:  DefaultPathExtension,
		lambdaFloor:    DefaultLambdaFloor,
		edgeThreshold:  DefaultEdgeThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.solver == nil {
		g.solver = glasso.NewCoordinateDescent()
	}
	return g
}

// Fit estimates the conditional-dependence network from the observation
// matrix X (n samples × p components). Rows are compositions with strictly
// positive entries, or raw counts when WithCounts(true) is set.
func (g *GCoda) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "GCoda.Fit")

	start := time.Now()
	logger := g.log().With(log.OperationKey, log.OperationFit)

	n, p := X.Dims()
	if n < 2 {
		return errors.NewDimensionError("GCoda.Fit", 2, n, 0)
	}
	if p < 2 {
		return errors.NewDimensionError("GCoda.Fit", 2, p, 1)
	}
	if err := g.validateParams(); err != nil {
		return err
	}

	logger.Info("Fitting compositional network",
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.GammaKey, g.ebicGamma,
	)

	clr := preprocessing.NewCLRTransform(g.counts, g.pseudoCount)
	Z, err := clr.FitTransform(X)
	if err != nil {
		return err
	}
	S, err := preprocessing.Covariance(Z)
	if err != nil {
		return err
	}

	if err := g.FitCovariance(S, n); err != nil {
		return err
	}

	logger.Info("Fit complete",
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.PathLengthKey, len(g.result.Lambda),
		log.RegularizationKey, g.result.OptLambda,
		log.EdgesKey, g.result.Df[g.result.OptIndex],
	)
	return nil
}

// FitCovariance runs the penalty path and model selection directly on a
// precomputed log-ratio covariance matrix S, with n the sample count used
// to compute it. Fit delegates here after the transform; callers with their
// own transform pipeline can use it directly.
func (g *GCoda) FitCovariance(S *mat.SymDense, n int) error {
	if err := g.validateParams(); err != nil {
		return err
	}
	res, err := g.estimatePath(S, n)
	if err != nil {
		return err
	}
	g.selectModel(res, n)
	g.result = res
	g.SetFitted()
	return nil
}

// Result returns the full path data and selected model.
func (g *GCoda) Result() (*Result, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GCoda", "Result")
	}
	return g.result, nil
}

// Network returns the selected adjacency pattern (0/1 symmetric matrix
// with zero diagonal).
func (g *GCoda) Network() (*mat.SymDense, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GCoda", "Network")
	}
	return g.result.Refit, nil
}

// Precision returns the precision matrix of the selected model.
func (g *GCoda) Precision() (*mat.SymDense, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GCoda", "Precision")
	}
	return g.result.OptPrecision, nil
}

// OptLambda returns the penalty strength of the selected model.
func (g *GCoda) OptLambda() (float64, error) {
	if !g.IsFitted() {
		return 0, errors.NewNotFittedError("GCoda", "OptLambda")
	}
	return g.result.OptLambda, nil
}

func (g *GCoda) validateParams() error {
	if g.nlambda < 1 {
		return errors.NewValidationError("nlambda", "must be at least 1", g.nlambda)
	}
	if g.lambdaMinRatio <= 0 || g.lambdaMinRatio > 1 {
		return errors.NewValidationError("lambda.min.ratio", "must be in (0, 1]", g.lambdaMinRatio)
	}
	if g.ebicGamma < 0 {
		return errors.NewValidationError("ebic.gamma", "must be non-negative", g.ebicGamma)
	}
	if g.tol <= 0 {
		return errors.NewValidationError("tol", "must be positive", g.tol)
	}
	if g.maxIter < 1 {
		return errors.NewValidationError("max_iter", "must be at least 1", g.maxIter)
	}
	if g.densityTarget <= 0 || g.densityTarget > 1 {
		return errors.NewValidationError("density_target", "must be in (0, 1]", g.densityTarget)
	}
	if g.pathExtension < 0 {
		return errors.NewValidationError("path_extension", "must be non-negative", g.pathExtension)
	}
	if g.edgeThreshold < 0 {
		return errors.NewValidationError("edge_threshold", "must be non-negative", g.edgeThreshold)
	}
	return nil
}

func (g *GCoda) log() log.Logger {
	if g.logger != nil {
		return g.logger
	}
	return log.GetLoggerWithName("gcoda")
}

var _ model.NetworkEstimator = (*GCoda)(nil)
