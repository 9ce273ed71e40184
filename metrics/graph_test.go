package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/pkg/errors"
)

// patterns: reference is a 4-node chain (0-1, 1-2, 2-3); the estimate
// finds two of those edges and adds one spurious edge (0-2).
func testPatterns() (estimated, reference *mat.SymDense) {
	reference = mat.NewSymDense(4, nil)
	reference.SetSym(0, 1, 1)
	reference.SetSym(1, 2, 1)
	reference.SetSym(2, 3, 1)

	estimated = mat.NewSymDense(4, nil)
	estimated.SetSym(0, 1, 1)
	estimated.SetSym(1, 2, 1)
	estimated.SetSym(0, 2, 1)
	return estimated, reference
}

func TestEdgePrecision(t *testing.T) {
	est, ref := testPatterns()

	got, err := EdgePrecision(est, ref)
	if err != nil {
		t.Fatalf("EdgePrecision() error = %v", err)
	}
	// 2 true positives out of 3 predicted edges.
	if want := 2.0 / 3.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("EdgePrecision() = %v, want %v", got, want)
	}
}

func TestEdgeRecall(t *testing.T) {
	est, ref := testPatterns()

	got, err := EdgeRecall(est, ref)
	if err != nil {
		t.Fatalf("EdgeRecall() error = %v", err)
	}
	// 2 true positives out of 3 reference edges.
	if want := 2.0 / 3.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("EdgeRecall() = %v, want %v", got, want)
	}
}

func TestEdgeF1(t *testing.T) {
	est, ref := testPatterns()

	got, err := EdgeF1(est, ref)
	if err != nil {
		t.Fatalf("EdgeF1() error = %v", err)
	}
	// Precision = recall = 2/3, so F1 = 2/3 as well.
	if want := 2.0 / 3.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("EdgeF1() = %v, want %v", got, want)
	}
}

func TestHammingDistance(t *testing.T) {
	est, ref := testPatterns()

	got, err := HammingDistance(est, ref)
	if err != nil {
		t.Fatalf("HammingDistance() error = %v", err)
	}
	// One spurious edge (0-2) plus one missed edge (2-3).
	if got != 2 {
		t.Errorf("HammingDistance() = %d, want 2", got)
	}
}

func TestPerfectAgreement(t *testing.T) {
	_, ref := testPatterns()

	f1, err := EdgeF1(ref, ref)
	if err != nil {
		t.Fatalf("EdgeF1() error = %v", err)
	}
	if f1 != 1 {
		t.Errorf("EdgeF1(ref, ref) = %v, want 1", f1)
	}

	hd, err := HammingDistance(ref, ref)
	if err != nil {
		t.Fatalf("HammingDistance() error = %v", err)
	}
	if hd != 0 {
		t.Errorf("HammingDistance(ref, ref) = %d, want 0", hd)
	}
}

func TestEdgePrecisionUndefined(t *testing.T) {
	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(nil)

	_, ref := testPatterns()
	empty := mat.NewSymDense(4, nil)

	got, err := EdgePrecision(empty, ref)
	if err != nil {
		t.Fatalf("EdgePrecision() error = %v", err)
	}
	if got != 0 {
		t.Errorf("EdgePrecision() with no predicted edges = %v, want 0", got)
	}

	if captured == nil {
		t.Fatal("expected an undefined-metric warning, got none")
	}
	var umw *errors.UndefinedMetricWarning
	if !errors.As(captured, &umw) {
		t.Fatalf("captured warning has type %T, want *UndefinedMetricWarning", captured)
	}
}

func TestEdgeRecallUndefined(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	est, _ := testPatterns()
	empty := mat.NewSymDense(4, nil)

	got, err := EdgeRecall(est, empty)
	if err != nil {
		t.Fatalf("EdgeRecall() error = %v", err)
	}
	if got != 0 {
		t.Errorf("EdgeRecall() with no reference edges = %v, want 0", got)
	}
}

func TestEdgeCountsErrors(t *testing.T) {
	est, _ := testPatterns()

	if _, err := EdgePrecision(est, mat.NewSymDense(3, nil)); err == nil {
		t.Error("EdgePrecision() with mismatched dims: error = nil, want error")
	}
	if _, err := EdgePrecision(&mat.SymDense{}, &mat.SymDense{}); err == nil {
		t.Error("EdgePrecision() on empty patterns: error = nil, want error")
	}
}
