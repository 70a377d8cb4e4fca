package measure

import (
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type averagePrecision struct {
	base
}

// AveragePrecision is the mean of precision values at each relevant rank,
// normalised by all relevant documents.
func AveragePrecision() Measure {
	return &averagePrecision{base{
		name:     "map",
		help:     "Mean average precision.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func (m *averagePrecision) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	if c.NumRel == 0 {
		return []float64{0}, nil
	}

	var sumPrecision float64
	var relevantSeen int
	for i := range c.NumRet {
		if c.Relevant(i) {
			relevantSeen++
			sumPrecision += float64(relevantSeen) / float64(i+1)
		}
	}

	return []float64{sumPrecision / float64(c.NumRel)}, nil
}

type recipRank struct {
	base
}

// RecipRank returns 1/rank of the first relevant document.
func RecipRank() Measure {
	return &recipRank{base{
		name:     "recip_rank",
		help:     "Reciprocal rank of the first relevant document.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func GMRecipRank() Measure {
	return &recipRank{base{
		name:     "gm_recip_rank",
		help:     "Reciprocal rank of the first relevant document, geometric mean over topics.",
		defaults: params.None(),
		agg:      GeoMean,
	}}
}

func (m *recipRank) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	for i := range c.NumRet {
		if c.Relevant(i) {
			return []float64{1.0 / float64(i+1)}, nil
		}
	}
	return []float64{0}, nil
}
