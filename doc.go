// Package netcomi provides network inference for compositional data,
// such as microbial relative abundances, where the sum-to-constant
// closure biases ordinary covariance and correlation estimation.
//
// The core estimator is gCoda: a centered log-ratio transform feeds a
// penalized maximum-likelihood fit of the precision matrix under the
// compositional constraint, solved by a majorize-minimize fixed point
// around a pluggable graphical lasso, repeated along a descending
// regularization path with EBIC model selection.
//
// # Packages
//
//   - gcoda: the estimator (penalty path, fixed-point solver, EBIC selection)
//   - glasso: L1-penalized precision solvers behind a small Solver interface
//   - preprocessing: centered log-ratio transform and covariance
//   - metrics: agreement metrics between adjacency patterns
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "gonum.org/v1/gonum/mat"
//	    "github.com/vmikk/NetCoMi/gcoda"
//	)
//
//	func main() {
//	    X := mat.NewDense(50, 4, data) // rows: compositions or counts
//
//	    g := gcoda.New(gcoda.WithCounts(true))
//	    if err := g.Fit(X); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    network, _ := g.Network() // 0/1 adjacency pattern
//	    _ = network
//	}
package netcomi
