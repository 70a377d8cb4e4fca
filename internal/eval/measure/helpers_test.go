package measure

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// notPooled marks a retrieved document with no judgment in fixtures.
const notPooled = -100

// correlate builds a correlation for a ranking given by grades. Unretrieved
// judged documents are appended with the extra grades.
func correlate(t *testing.T, retrieved []int, extra ...int) *relevance.Correlation {
	t.Helper()
	return correlateScored(t, retrieved, nil, extra...)
}

func correlateScored(t *testing.T, retrieved []int, scores []float64, extra ...int) *relevance.Correlation {
	t.Helper()

	topic := relevance.Topic{ID: "t1"}
	for i, g := range retrieved {
		id := fmt.Sprintf("r%d", i)
		score := float64(len(retrieved) - i)
		if scores != nil {
			score = scores[i]
		}
		topic.Ranking = append(topic.Ranking, relevance.RankedDoc{DocID: id, Score: score})
		if g != notPooled {
			topic.Judgments = append(topic.Judgments, relevance.Judgment{DocID: id, Grade: g})
		}
	}
	for i, g := range extra {
		topic.Judgments = append(topic.Judgments, relevance.Judgment{DocID: fmt.Sprintf("j%d", i), Grade: g})
	}

	c, err := relevance.Correlate(topic, relevance.Options{RelevanceLevel: 1})
	require.NoError(t, err)
	return c
}

func calc(t *testing.T, m Measure, raw string, c *relevance.Correlation) []float64 {
	t.Helper()
	p, err := m.Setup(raw)
	require.NoError(t, err)
	values, err := m.Calc(c, p)
	require.NoError(t, err)
	require.Len(t, values, len(m.Labels(p)))
	return values
}

func cutoffs(ks ...int) params.Block {
	return params.Cutoffs(ks...)
}
