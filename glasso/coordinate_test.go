package glasso

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// testCov is a well-conditioned covariance with one strong and one weak
// off-diagonal dependency.
func testCov() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		1.0, 0.5, 0.1,
		0.5, 1.0, 0.3,
		0.1, 0.3, 1.0,
	})
}

func isPositiveDefinite(m *mat.SymDense) bool {
	var chol mat.Cholesky
	return chol.Factorize(m)
}

func TestCoordinateDescentSolveBasic(t *testing.T) {
	cd := NewCoordinateDescent()
	theta, err := cd.Solve(testCov(), 0.1)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if p := theta.SymmetricDim(); p != 3 {
		t.Fatalf("Solve() dim = %d, want 3", p)
	}
	if !isPositiveDefinite(theta) {
		t.Error("Solve() output is not positive definite")
	}
	for i := 0; i < 3; i++ {
		if theta.At(i, i) <= 0 {
			t.Errorf("diagonal entry [%d][%d] = %v, want > 0", i, i, theta.At(i, i))
		}
	}
}

func TestCoordinateDescentLargePenaltyIsDiagonal(t *testing.T) {
	// A penalty above every off-diagonal magnitude zeroes all couplings.
	cd := NewCoordinateDescent()
	theta, err := cd.Solve(testCov(), 2.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if v := theta.At(i, j); math.Abs(v) > 1e-10 {
				t.Errorf("off-diagonal [%d][%d] = %v, want 0 under large penalty", i, j, v)
			}
		}
		want := 1 / (1.0 + 2.0)
		if got := theta.At(i, i); math.Abs(got-want) > 1e-8 {
			t.Errorf("diagonal [%d][%d] = %v, want %v", i, i, got, want)
		}
	}
}

func TestCoordinateDescentPenaltyMonotonicity(t *testing.T) {
	cd := NewCoordinateDescent()

	sparse, err := cd.Solve(testCov(), 0.4)
	if err != nil {
		t.Fatalf("Solve(0.4) error = %v", err)
	}
	dense, err := cd.Solve(testCov(), 0.01)
	if err != nil {
		t.Fatalf("Solve(0.01) error = %v", err)
	}

	countEdges := func(m *mat.SymDense) int {
		n := 0
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				if math.Abs(m.At(i, j)) > 1e-8 {
					n++
				}
			}
		}
		return n
	}

	if countEdges(dense) < countEdges(sparse) {
		t.Errorf("smaller penalty produced fewer edges: %d < %d",
			countEdges(dense), countEdges(sparse))
	}
}

func TestCoordinateDescentDeterministic(t *testing.T) {
	cd := NewCoordinateDescent()
	a := testCov()

	t1, err := cd.Solve(a, 0.1)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	t2, err := cd.Solve(a, 0.1)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			if t1.At(i, j) != t2.At(i, j) {
				t.Errorf("non-deterministic output at [%d][%d]", i, j)
			}
		}
	}
}

func TestCoordinateDescentDoesNotMutateInput(t *testing.T) {
	a := testCov()
	backup := mat.NewSymDense(3, nil)
	backup.CopySym(a)

	cd := NewCoordinateDescent()
	if _, err := cd.Solve(a, 0.1); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			if a.At(i, j) != backup.At(i, j) {
				t.Errorf("input mutated at [%d][%d]", i, j)
			}
		}
	}
}

func TestCoordinateDescentDiagonalInput(t *testing.T) {
	a := mat.NewSymDense(2, []float64{
		2.0, 0,
		0, 4.0,
	})

	cd := NewCoordinateDescent()
	theta, err := cd.Solve(a, 0.5)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if got, want := theta.At(0, 0), 1/2.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("theta[0][0] = %v, want %v", got, want)
	}
	if got, want := theta.At(1, 1), 1/4.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("theta[1][1] = %v, want %v", got, want)
	}
	if got := theta.At(0, 1); got != 0 {
		t.Errorf("theta[0][1] = %v, want 0", got)
	}
}

func TestCoordinateDescentScalarInput(t *testing.T) {
	a := mat.NewSymDense(1, []float64{3.0})

	cd := NewCoordinateDescent()
	theta, err := cd.Solve(a, 1.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if got, want := theta.At(0, 0), 0.25; math.Abs(got-want) > 1e-12 {
		t.Errorf("theta[0][0] = %v, want %v", got, want)
	}
}

func TestCoordinateDescentInvalidInput(t *testing.T) {
	cd := NewCoordinateDescent()

	if _, err := cd.Solve(&mat.SymDense{}, 0.1); err == nil {
		t.Error("Solve() on empty matrix: error = nil, want error")
	}
	if _, err := cd.Solve(testCov(), 0); err == nil {
		t.Error("Solve() with zero penalty: error = nil, want error")
	}
	if _, err := cd.Solve(testCov(), -0.1); err == nil {
		t.Error("Solve() with negative penalty: error = nil, want error")
	}

	bad := mat.NewSymDense(2, []float64{1, math.NaN(), math.NaN(), 1})
	if _, err := cd.Solve(bad, 0.1); err == nil {
		t.Error("Solve() with NaN entry: error = nil, want error")
	}
}

func TestCoordinateDescentInverseAtSmallPenalty(t *testing.T) {
	// With a tiny penalty the estimate approaches the plain inverse.
	a := mat.NewSymDense(2, []float64{
		1.0, 0.5,
		0.5, 1.0,
	})
	// Inverse of [[1, .5], [.5, 1]] is [[4/3, -2/3], [-2/3, 4/3]].
	want := [][]float64{{4.0 / 3, -2.0 / 3}, {-2.0 / 3, 4.0 / 3}}

	cd := NewCoordinateDescent(WithTol(1e-8), WithMaxSweeps(500))
	theta, err := cd.Solve(a, 1e-6)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := theta.At(i, j); math.Abs(got-want[i][j]) > 1e-3 {
				t.Errorf("theta[%d][%d] = %v, want ~%v", i, j, got, want[i][j])
			}
		}
	}
}
