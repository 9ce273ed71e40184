package gcoda

import (
	"math"

	"github.com/vmikk/NetCoMi/pkg/log"
)

// selectModel scores every path index with the Extended Bayesian
// Information Criterion,
//
//	EBIC = n·nloglik + ln(n)·df + 4·gamma·ln(p)·df
//
// and records the first index attaining the minimum as the selected model.
func (g *GCoda) selectModel(res *Result, n int) {
	p := res.Components
	logN := math.Log(float64(n))
	logP := math.Log(float64(p))

	res.EBIC = make([]float64, len(res.Lambda))
	opt := 0
	for i := range res.Lambda {
		df := float64(res.Df[i])
		res.EBIC[i] = float64(n)*res.NLogLik[i] + logN*df + 4*g.ebicGamma*logP*df
		if res.EBIC[i] < res.EBIC[opt] {
			opt = i
		}
	}

	res.OptIndex = opt
	res.OptLambda = res.Lambda[opt]
	res.Refit = res.Patterns[opt]
	res.OptPrecision = res.Precisions[opt]

	g.log().Info("Model selected",
		log.PhaseKey, log.PhaseSelection,
		log.PathIndexKey, opt,
		log.RegularizationKey, res.OptLambda,
		log.EdgesKey, res.Df[opt],
		log.EBICKey, res.EBIC[opt],
	)
}
