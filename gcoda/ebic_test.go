package gcoda

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// pathResult builds a Result with placeholder patterns and precisions so
// selectModel has something to record.
func pathResult(lambda, nloglik []float64, df []int, p int) *Result {
	res := &Result{
		Lambda:     lambda,
		NLogLik:    nloglik,
		Df:         df,
		Components: p,
	}
	for range lambda {
		res.Patterns = append(res.Patterns, mat.NewSymDense(p, nil))
		res.Precisions = append(res.Precisions, identity(p))
	}
	return res
}

func TestSelectModelFormula(t *testing.T) {
	n, p := 10, 3
	res := pathResult(
		[]float64{0.5, 0.25, 0.1},
		[]float64{2.0, 1.5, 1.4},
		[]int{0, 2, 3},
		p,
	)

	g := New(WithEBICGamma(0.5))
	g.selectModel(res, n)

	// EBIC = n*nloglik + ln(n)*df + 4*gamma*ln(p)*df.
	perEdge := math.Log(10) + 4*0.5*math.Log(3)
	want := []float64{20, 15 + 2*perEdge, 14 + 3*perEdge}
	for i := range want {
		if math.Abs(res.EBIC[i]-want[i]) > 1e-10 {
			t.Errorf("EBIC[%d] = %v, want %v", i, res.EBIC[i], want[i])
		}
	}

	// 20 < 23.99 < 31.49, so the sparsest model wins here.
	if res.OptIndex != 0 {
		t.Errorf("OptIndex = %d, want 0", res.OptIndex)
	}
	if res.OptLambda != 0.5 {
		t.Errorf("OptLambda = %v, want 0.5", res.OptLambda)
	}
	if res.Refit != res.Patterns[0] || res.OptPrecision != res.Precisions[0] {
		t.Error("selected pattern/precision do not match the selected index")
	}
}

func TestSelectModelFirstArgminOnTie(t *testing.T) {
	res := pathResult(
		[]float64{0.5, 0.25, 0.1},
		[]float64{1.0, 1.0, 2.0},
		[]int{0, 0, 0},
		3,
	)

	g := New()
	g.selectModel(res, 10)

	if res.OptIndex != 0 {
		t.Errorf("OptIndex = %d, want 0 (first index attaining the minimum)", res.OptIndex)
	}
}

func TestSelectModelGammaFavorsSparsity(t *testing.T) {
	// The dense model has the better likelihood; a large enough gamma
	// flips the selection to the sparse one.
	lambda := []float64{0.5, 0.1}
	nloglik := []float64{2.0, 1.0}
	df := []int{0, 3}
	n := 10

	loose := New(WithEBICGamma(0))
	resLoose := pathResult(lambda, nloglik, df, 3)
	loose.selectModel(resLoose, n)

	strict := New(WithEBICGamma(5))
	resStrict := pathResult(lambda, nloglik, df, 3)
	strict.selectModel(resStrict, n)

	// gamma = 0: EBIC = (20, 10 + 3*ln10) = (20, 16.9) -> dense wins.
	if resLoose.OptIndex != 1 {
		t.Errorf("gamma=0 OptIndex = %d, want 1", resLoose.OptIndex)
	}
	// gamma = 5 adds 4*5*ln(3)*3 = 65.9 to the dense model.
	if resStrict.OptIndex != 0 {
		t.Errorf("gamma=5 OptIndex = %d, want 0", resStrict.OptIndex)
	}

	if resStrict.Df[resStrict.OptIndex] > resLoose.Df[resLoose.OptIndex] {
		t.Error("larger gamma selected a denser model")
	}
}
