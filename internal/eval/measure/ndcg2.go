package measure

import (
	"math"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/gain"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type ndcg2Cut struct {
	base
}

// NDCG2Cut is nDCG at cutoffs with exponential gain 2^level, normalised by the
// ideal DCG at the same cutoff (Burges et al., ICML 2005).
func NDCG2Cut() Measure {
	return &ndcg2Cut{base{
		name:     "ndcg2_cut",
		help:     "nDCG at cutoffs with gain 2^level, ideal computed at each cutoff.",
		defaults: params.Cutoffs(ShortCutoffs...),
		agg:      Mean,
	}}
}

// exponentialGain gives grades at or below zero, and the unjudged sentinels, no gain so nDCG stays in [0,1].
func exponentialGain(level int) float64 {
	if level <= 0 {
		return 0
	}
	return math.Exp2(float64(level))
}

func (m *ndcg2Cut) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	cutoffs := p.Cutoffs()
	tbl := gain.Build(c.Levels, gain.WithGainFunc(exponentialGain))

	ideal := make([]float64, 0, c.NumRel)
	var idcg float64
	i := 0
	for gv := range tbl.Ideal() {
		idcg += gv / discount(i)
		ideal = append(ideal, idcg)
		i++
	}
	idealAt := func(k int) float64 {
		if len(ideal) == 0 {
			return 0
		}
		return ideal[min(k, len(ideal))-1]
	}

	var dcg float64
	return scanCutoffs(cutoffs, c.NumRet,
		func(i int) {
			dcg += tbl.GainOf(c.Grades[i]) / discount(i)
		},
		func(k int) float64 {
			id := idealAt(k)
			if id <= 0 {
				return 0
			}
			return dcg / id
		},
	), nil
}
