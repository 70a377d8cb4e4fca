package measure

import (
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type recall struct {
	base
}

func Recall() Measure {
	return &recall{base{
		name:     "recall",
		help:     "Recall at cutoffs: relevant retrieved in the top k, divided by all relevant.",
		defaults: params.Cutoffs(DefaultCutoffs...),
		agg:      Mean,
	}}
}

func GMRecall() Measure {
	return &recall{base{
		name:     "gm_recall",
		help:     "Recall at cutoffs, geometric mean over topics.",
		defaults: params.Cutoffs(ShortCutoffs...),
		agg:      GeoMean,
	}}
}

func (m *recall) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	if c.NumRel == 0 {
		return nil, ErrUndefined
	}

	var rel int
	return scanCutoffs(p.Cutoffs(), c.NumRet,
		func(i int) {
			if c.Relevant(i) {
				rel++
			}
		},
		func(int) float64 {
			return float64(rel) / float64(c.NumRel)
		},
	), nil
}
