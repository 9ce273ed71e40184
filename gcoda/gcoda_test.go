package gcoda

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/vmikk/NetCoMi/metrics"
)

// sampleCompositions draws logistic-normal compositions whose log-scale
// dependence follows a 3-node chain: components 0 and 1 are coupled,
// component 2 is independent.
func sampleCompositions(n int, rng *rand.Rand) *mat.Dense {
	X := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		e1 := rng.NormFloat64()
		e2 := rng.NormFloat64()
		e3 := rng.NormFloat64()
		z := []float64{e1, 0.8*e1 + 0.6*e2, e3}

		sum := 0.0
		for j := range z {
			z[j] = math.Exp(z[j])
			sum += z[j]
		}
		for j := range z {
			z[j] /= sum
		}
		X.SetRow(i, z)
	}
	return X
}

func TestGCodaFit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	X := sampleCompositions(60, rng)

	g := New(WithNLambda(10))
	require.NoError(t, g.Fit(X))

	res, err := g.Result()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(res.Lambda), 10, "path should keep at least the initial portion")
	assert.Len(t, res.EBIC, len(res.Lambda))
	require.GreaterOrEqual(t, res.OptIndex, 0)
	require.Less(t, res.OptIndex, len(res.Lambda))
	assert.Equal(t, 60, res.Samples)
	assert.Equal(t, 3, res.Components)

	// The selected EBIC is the path minimum and is attained first.
	for i, v := range res.EBIC {
		assert.GreaterOrEqual(t, v, res.EBIC[res.OptIndex], "EBIC[%d] below the selected score", i)
		if v == res.EBIC[res.OptIndex] {
			assert.GreaterOrEqual(t, i, res.OptIndex, "selected index is not the first minimum")
		}
	}

	network, err := g.Network()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Zero(t, network.At(i, i), "network diagonal [%d][%d]", i, i)
		for j := i + 1; j < 3; j++ {
			v := network.At(i, j)
			assert.True(t, v == 0 || v == 1, "network entry [%d][%d] = %v, want 0 or 1", i, j, v)
		}
	}

	precision, err := g.Precision()
	require.NoError(t, err)
	var chol mat.Cholesky
	assert.True(t, chol.Factorize(precision), "selected precision matrix should be positive definite")

	optLambda, err := g.OptLambda()
	require.NoError(t, err)
	assert.Equal(t, res.Lambda[res.OptIndex], optLambda)
}

func TestGCodaRecoversKnownStructure(t *testing.T) {
	// 50 compositions from a latent chain where only components 0 and 1
	// are coupled. The selected network must agree with that generating
	// structure on at least 2 of the 3 possible edges.
	rng := rand.New(rand.NewSource(3))
	X := sampleCompositions(50, rng)

	g := New(WithNLambda(5))
	require.NoError(t, g.Fit(X))

	network, err := g.Network()
	require.NoError(t, err)

	truth := mat.NewSymDense(3, nil)
	truth.SetSym(0, 1, 1)

	hd, err := metrics.HammingDistance(network, truth)
	require.NoError(t, err)
	assert.LessOrEqual(t, hd, 1,
		"selected network disagrees with the generating structure on more than one edge")
}

func TestGCodaSingleLambdaPath(t *testing.T) {
	// A one-penalty path sits exactly at lambda.max; a longer path over
	// the same data ends far below it, so its densest candidate carries
	// at least as many edges as the lambda.max solve.
	rng := rand.New(rand.NewSource(5))
	X := sampleCompositions(50, rng)

	single := New(WithNLambda(1), WithPathExtension(0))
	require.NoError(t, single.Fit(X))
	resSingle, err := single.Result()
	require.NoError(t, err)
	require.Len(t, resSingle.Lambda, 1)
	assert.Equal(t, 0, resSingle.OptIndex)

	long := New(WithNLambda(8), WithLambdaMinRatio(1e-3), WithPathExtension(0))
	require.NoError(t, long.Fit(X))
	resLong, err := long.Result()
	require.NoError(t, err)

	// Same input, same lambda.max anchor.
	assert.InDelta(t, resLong.Lambda[0], resSingle.Lambda[0], 1e-12)
	assert.GreaterOrEqual(t, resLong.Df[len(resLong.Df)-1], resSingle.Df[0],
		"densest candidate of the long path is sparser than the lambda.max solve")
}

func TestGCodaFitCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	fractions := sampleCompositions(50, rng)

	// Scale to count-like magnitudes with a few exact zeros.
	X := mat.NewDense(50, 3, nil)
	for i := 0; i < 50; i++ {
		for j := 0; j < 3; j++ {
			X.Set(i, j, math.Floor(fractions.At(i, j)*1000))
		}
	}

	g := New(WithCounts(true), WithNLambda(8))
	require.NoError(t, g.Fit(X))

	_, err := g.Network()
	assert.NoError(t, err)
}

func TestGCodaNotFitted(t *testing.T) {
	g := New()

	_, err := g.Result()
	assert.Error(t, err, "Result() before Fit should fail")
	_, err = g.Network()
	assert.Error(t, err, "Network() before Fit should fail")
	_, err = g.Precision()
	assert.Error(t, err, "Precision() before Fit should fail")
	_, err = g.OptLambda()
	assert.Error(t, err, "OptLambda() before Fit should fail")
}

func TestGCodaFitRejectsSmallInput(t *testing.T) {
	g := New()

	oneSample := mat.NewDense(1, 3, []float64{0.2, 0.3, 0.5})
	assert.Error(t, g.Fit(oneSample), "a single sample cannot support a covariance")

	oneComponent := mat.NewDense(3, 1, []float64{1, 1, 1})
	assert.Error(t, g.Fit(oneComponent), "a single component has no network")
}

func TestGCodaFitRejectsIdenticalCompositions(t *testing.T) {
	// Identical rows carry no compositional signal: the log-ratio
	// covariance is all zeros and the fit must refuse.
	X := mat.NewDense(10, 3, nil)
	for i := 0; i < 10; i++ {
		X.SetRow(i, []float64{0.2, 0.3, 0.5})
	}

	g := New()
	assert.Error(t, g.Fit(X))
}

func TestGCodaValidateParams(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero nlambda", WithNLambda(0)},
		{"ratio above one", WithLambdaMinRatio(1.5)},
		{"zero ratio", WithLambdaMinRatio(0)},
		{"negative gamma", WithEBICGamma(-0.1)},
		{"zero tolerance", WithTol(0)},
		{"zero max iterations", WithMaxIter(0)},
		{"zero density target", WithDensityTarget(0)},
		{"negative path extension", WithPathExtension(-1)},
		{"negative edge threshold", WithEdgeThreshold(-1e-6)},
	}

	X := mat.NewDense(3, 3, []float64{
		0.2, 0.3, 0.5,
		0.5, 0.2, 0.3,
		0.3, 0.5, 0.2,
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.opt)
			assert.Error(t, g.Fit(X))
		})
	}
}

func TestGCodaFitCovariance(t *testing.T) {
	g := New(WithNLambda(6))
	require.NoError(t, g.FitCovariance(pathTestCov(), 40))

	res, err := g.Result()
	require.NoError(t, err)
	assert.Equal(t, 40, res.Samples)

	_, err = g.Network()
	assert.NoError(t, err)
}
