package measure

import (
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type precision struct {
	base
}

// Precision is P@k: relevant documents in the top k divided by k.
func Precision() Measure {
	return &precision{base{
		name:     "P",
		help:     "Precision at cutoffs: relevant retrieved in the top k, divided by k.",
		defaults: params.Cutoffs(DefaultCutoffs...),
		agg:      Mean,
	}}
}

// GMPrecision is P@k aggregated by geometric mean.
func GMPrecision() Measure {
	return &precision{base{
		name:     "gm_P",
		help:     "Precision at cutoffs, geometric mean over topics.",
		defaults: params.Cutoffs(ShortCutoffs...),
		agg:      GeoMean,
	}}
}

func (m *precision) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	var rel int
	return scanCutoffs(p.Cutoffs(), c.NumRet,
		func(i int) {
			if c.Relevant(i) {
				rel++
			}
		},
		func(k int) float64 {
			return float64(rel) / float64(k)
		},
	), nil
}
