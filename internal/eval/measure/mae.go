package measure

import (
	"math"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type mae struct {
	base
}

// MAE is the mean absolute error between each retrieved document's score and
// its judged grade. Unjudged documents are ignored.
func MAE() Measure {
	return &mae{base{
		name:     "mae",
		help:     "Mean absolute error between retrieval score and judged grade.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func (m *mae) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	var sum float64
	var n int
	for i, g := range c.Grades {
		level, ok := g.Level()
		if !ok {
			continue
		}
		sum += math.Abs(float64(level) - c.Scores[i])
		n++
	}

	if n == 0 {
		return []float64{0}, nil
	}
	return []float64{sum / float64(n)}, nil
}
