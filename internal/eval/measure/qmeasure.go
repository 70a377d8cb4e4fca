package measure

import (
	"github.com/DjordjeVuckovic/rankeval/internal/eval/gain"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// Q-measure family (Sakai and Kando, Information Retrieval 11(5), 2008).
// Each relevant document at rank r contributes (cg + rel)/(r + cgi[r]), where
// cg is the cumulative gain retrieved so far, rel the relevant count so far and
// cgi the cumulative ideal gain.

type qMeasure struct {
	base
}

// QMeasure treats documents at or above the relevance level as relevant and
// normalises by the number of relevant documents.
func QMeasure() Measure {
	return &qMeasure{base{
		name:     "q_measure",
		help:     "Q-measure; parameters override gains as level=gain pairs.",
		defaults: params.Pairs(),
		agg:      Mean,
	}}
}

func (m *qMeasure) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	tbl := gain.Build(c.Levels, gain.WithOverrides(p.Pairs()))
	cgi := idealCumulative(tbl.CumulativeIdeal())

	var q, cg float64
	var rel int
	for i, g := range c.Grades {
		if !g.AtLeast(c.RelevanceLevel) {
			continue
		}
		rel++
		cg += tbl.GainOf(g)
		q += (cg + float64(rel)) / (float64(i+1) + cgi(i))
	}

	if c.NumRel == 0 {
		return []float64{0}, nil
	}
	return []float64{q / float64(c.NumRel)}, nil
}

type qm struct {
	base
}

// QM treats every document with positive gain as relevant and normalises by
// the number of such documents.
func QM() Measure {
	return &qm{base{
		name:     "qm",
		help:     "Q-measure where relevance means positive gain; parameters override gains as level=gain pairs.",
		defaults: params.Pairs(),
		agg:      Mean,
	}}
}

func (m *qm) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	tbl := gain.Build(c.Levels, gain.WithOverrides(p.Pairs()))
	total := tbl.Positive()
	if total == 0 {
		return []float64{0}, nil
	}
	cgi := idealCumulative(tbl.CumulativeIdeal())

	var q, cg float64
	var rel int
	for i, g := range c.Grades {
		gv := tbl.GainOf(g)
		if gv <= 0 {
			continue
		}
		rel++
		cg += gv
		q += (cg + float64(rel)) / (float64(i+1) + cgi(i))
	}

	return []float64{q / float64(total)}, nil
}

type qmCut struct {
	base
}

// QMCut is qm at cutoffs with gain equal to the level.
func QMCut() Measure {
	return &qmCut{base{
		name:     "qm_cut",
		help:     "Q-measure at cutoffs with gain equal to the relevance level.",
		defaults: params.Cutoffs(ShortCutoffs...),
		agg:      Mean,
	}}
}

func (m *qmCut) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	cutoffs := p.Cutoffs()
	tbl := gain.Build(c.Levels)
	total := tbl.Positive()
	if total == 0 {
		return make([]float64, len(cutoffs)), nil
	}
	cgi := idealCumulative(tbl.CumulativeIdeal())

	var q, cg float64
	var rel int
	return scanCutoffs(cutoffs, c.NumRet,
		func(i int) {
			gv := tbl.GainOf(c.Grades[i])
			if gv <= 0 {
				return
			}
			rel++
			cg += gv
			q += (cg + float64(rel)) / (float64(i+1) + cgi(i))
		},
		func(int) float64 {
			return q / float64(total)
		},
	), nil
}

// idealCumulative indexes cumulative ideal gain by rank, holding the last
// value once the rank passes the ideal ranking.
func idealCumulative(cgi []float64) func(rank int) float64 {
	return func(rank int) float64 {
		if len(cgi) == 0 {
			return 0
		}
		return cgi[min(rank, len(cgi)-1)]
	}
}
