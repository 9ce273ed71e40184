// Package glasso provides L1-penalized precision matrix estimation
// (graphical lasso). The package exposes a small Solver interface so that
// alternative implementations (ADMM, external bindings) can be substituted
// for the built-in block coordinate descent without touching the estimators
// that consume it.
package glasso

import (
	"gonum.org/v1/gonum/mat"
)

// Solver estimates a sparse precision matrix from a symmetric
// second-moment-like matrix under an L1 penalty.
//
// Implementations must be deterministic for fixed inputs, must not mutate
// the input matrix, and must return a symmetric positive-definite estimate
// approximately minimizing
//
//	tr(ΘA) − logdet(Θ) + lambda·Σ|Θij|
type Solver interface {
	// Solve returns the penalized precision estimate for matrix a and
	// penalty strength lambda (> 0).
	Solve(a mat.Symmetric, lambda float64) (*mat.SymDense, error)
}
