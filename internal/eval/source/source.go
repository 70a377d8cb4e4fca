// Package source loads the topics of one evaluation: judgments paired with the
// ranking a run produced.
package source

import (
	"context"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/trec"
)

// Batch is everything one evaluation reads.
type Batch struct {
	RunTag string
	Topics []relevance.Topic
}

type Source interface {
	Load(ctx context.Context) (*Batch, error)
}

func fromTrec(q trec.Qrels, run *trec.Run, complete bool) *Batch {
	return &Batch{
		RunTag: run.Tag,
		Topics: trec.Merge(q, run, complete),
	}
}
