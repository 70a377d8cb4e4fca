package measure

import (
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// InfAPEpsilon keeps the precision estimate defined when nothing above a
// relevant document was judged.
const InfAPEpsilon = 0.00001

type infAP2 struct {
	base
}

// InfAP2 is inferred average precision (Yilmaz and Aslam, CIKM 2006), where
// documents outside the pool and pooled but unjudged documents are both
// treated as unjudged.
func InfAP2() Measure {
	return &infAP2{base{
		name:     "infAP2",
		help:     "Inferred AP; unpooled and pooled-unjudged documents both count as unjudged.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func (m *infAP2) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	var infAP float64
	var rel, nonrel, unjudged int

	for j, g := range c.Grades {
		if !g.IsJudged() {
			unjudged++
			continue
		}
		if !g.AtLeast(c.RelevanceLevel) {
			nonrel++
			continue
		}

		rel++
		if j == 0 {
			infAP += 1.0
			continue
		}
		fj := float64(j)
		above := float64(rel - 1 + nonrel + unjudged)
		relAbove := float64(rel - 1)
		infAP += 1.0/(fj+1.0) +
			(fj/(fj+1.0))*
				(above/fj)*
				((relAbove+InfAPEpsilon)/(relAbove+float64(nonrel)+2*InfAPEpsilon))
	}

	if c.NumRel == 0 {
		return []float64{0}, nil
	}
	return []float64{infAP / float64(c.NumRel)}, nil
}
