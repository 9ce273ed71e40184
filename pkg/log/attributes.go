// Package log defines standard attribute keys for network-inference operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in NetCoMi. Using these standard keys enables better
// log analysis, monitoring, and debugging of estimation runs.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Regularization Path Context
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the estimator type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "GCoda", "CLRTransform", "GraphicalLasso"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific estimator instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "solve"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "gcoda", "preprocessing", "glasso", "metrics"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the estimation run.
	// Examples: "preprocessing", "path", "selection"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of components (columns) in the dataset.
	FeaturesKey = "data.features"

	// DataTypeKey specifies the kind of compositional input being processed.
	// Examples: "counts", "fractions"
	DataTypeKey = "data.type"
)

// Regularization Path Context
// These attributes describe progress along the lambda path and the
// sparsity of intermediate estimates.
const (
	// LambdaKey records the penalty strength for the current solve.
	LambdaKey = "path.lambda"

	// PathIndexKey records the current position along the lambda path.
	PathIndexKey = "path.index"

	// PathLengthKey records the current total length of the lambda path,
	// including adaptive extensions.
	PathLengthKey = "path.length"

	// EdgesKey records the edge count (df) of an estimated network.
	EdgesKey = "path.edges"

	// DensityTargetKey records the edge-density target driving path extension.
	DensityTargetKey = "path.density_target"

	// EBICKey records the EBIC score of an estimated network.
	EBICKey = "selection.ebic"
)

// Performance Metrics
// These attributes capture timing and convergence information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the (penalized) negative log-likelihood of an estimate.
	LossKey = "metrics.loss"

	// IterationKey records the current iteration number during iterative processes.
	// Useful for tracking convergence of the inner fixed-point solver.
	IterationKey = "training.iteration"

	// ConvergenceErrorKey records the convergence error signal of an iterative solve.
	ConvergenceErrorKey = "training.convergence_error"

	// ToleranceKey records the convergence tolerance in effect.
	ToleranceKey = "training.tolerance"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "CONVERGENCE_FAILURE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "NumericalInstabilityError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check input data shape", "Increase max_iterations"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// RegularizationKey records the regularization strength (lambda) configured
	// or selected for a model.
	RegularizationKey = "hyperparams.regularization"

	// GammaKey records the EBIC gamma parameter.
	GammaKey = "hyperparams.ebic_gamma"

	// PseudoCountKey records the pseudo-count added to count data.
	PseudoCountKey = "hyperparams.pseudo_count"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationSolve        = "solve"
	OperationScore        = "score"

	// Standard phases
	PhasePreprocessing = "preprocessing"
	PhasePath          = "path"
	PhaseSelection     = "selection"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
