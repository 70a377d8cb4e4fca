package measure

import (
	"math"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/gain"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type ndcg struct {
	base
}

// NDCG is normalised discounted cumulative gain over the full ranking
// (Jarvelin and Kekalainen, ACM TOIS 2002). Gains default to the level and can
// be overridden with level=gain pairs, e.g. "ndcg.1=3.5,2=9".
func NDCG() Measure {
	return &ndcg{base{
		name:     "ndcg",
		help:     "Normalized discounted cumulative gain; parameters override gains as level=gain pairs.",
		defaults: params.Pairs(),
		agg:      Mean,
	}}
}

func GMNDCG() Measure {
	return &ndcg{base{
		name:     "gm_ndcg",
		help:     "Normalized discounted cumulative gain, geometric mean over topics.",
		defaults: params.Pairs(),
		agg:      GeoMean,
	}}
}

func (m *ndcg) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	tbl := gain.Build(c.Levels, gain.WithOverrides(p.Pairs()))

	var dcg float64
	for i, g := range c.Grades {
		if gv := tbl.GainOf(g); gv != 0 {
			dcg += gv / discount(i)
		}
	}

	// The ideal ranking is not cut at NumRet.
	var idcg float64
	i := 0
	for gv := range tbl.Ideal() {
		idcg += gv / discount(i)
		i++
	}

	if idcg <= 0 {
		return []float64{0}, nil
	}
	return []float64{dcg / idcg}, nil
}

// discount is log2 of the 1-based position plus one.
func discount(rank int) float64 {
	return math.Log2(float64(rank + 2))
}
