package measure

import (
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

const DefaultFBeta = 1.0

type setPrecision struct {
	base
}

func SetPrecision() Measure {
	return &setPrecision{base{
		name:     "set_P",
		help:     "Set precision: relevant retrieved divided by retrieved.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func GMSetPrecision() Measure {
	return &setPrecision{base{
		name:     "gm_set_P",
		help:     "Set precision, geometric mean over topics.",
		defaults: params.None(),
		agg:      GeoMean,
	}}
}

func (m *setPrecision) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	return []float64{setP(c)}, nil
}

type setRecall struct {
	base
}

func SetRecall() Measure {
	return &setRecall{base{
		name:     "set_recall",
		help:     "Set recall: relevant retrieved divided by relevant.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func GMSetRecall() Measure {
	return &setRecall{base{
		name:     "gm_set_recall",
		help:     "Set recall, geometric mean over topics.",
		defaults: params.None(),
		agg:      GeoMean,
	}}
}

func (m *setRecall) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	if c.NumRel == 0 {
		return nil, ErrUndefined
	}
	return []float64{setR(c)}, nil
}

type setF struct {
	base
}

// SetF is the weighted harmonic mean of set precision and set recall. The
// parameter weights recall relative to precision.
func SetF() Measure {
	return &setF{base{
		name:     "set_F",
		help:     "Set F-measure (beta+1)PR/(beta P+R); parameter is beta (default 1.0).",
		defaults: params.Float(DefaultFBeta),
		agg:      Mean,
	}}
}

func GMSetF() Measure {
	return &setF{base{
		name:     "gm_set_F",
		help:     "Set F-measure, geometric mean over topics.",
		defaults: params.Float(DefaultFBeta),
		agg:      GeoMean,
	}}
}

func (m *setF) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	if c.NumRelRet == 0 {
		return []float64{0}, nil
	}

	beta := p.Float()
	prec, rec := setP(c), setR(c)
	denom := beta*prec + rec
	if denom == 0 {
		return []float64{0}, nil
	}
	return []float64{(beta + 1) * prec * rec / denom}, nil
}

func setP(c *relevance.Correlation) float64 {
	if c.NumRet == 0 {
		return 0
	}
	return float64(c.NumRelRet) / float64(c.NumRet)
}

func setR(c *relevance.Correlation) float64 {
	if c.NumRel == 0 {
		return 0
	}
	return float64(c.NumRelRet) / float64(c.NumRel)
}
