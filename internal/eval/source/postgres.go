package source

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/trec"
)

// RunStore is the part of the Postgres evaluation store a source needs.
type RunStore interface {
	LoadQrels(ctx context.Context) (trec.Qrels, error)
	LoadRun(ctx context.Context, runID string) (*trec.Run, error)
}

// Postgres reads judgments and one stored run from the evaluation database.
type Postgres struct {
	store    RunStore
	runID    string
	complete bool
}

func NewPostgres(store RunStore, runID string, complete bool) *Postgres {
	return &Postgres{store: store, runID: runID, complete: complete}
}

func (p *Postgres) Load(ctx context.Context) (*Batch, error) {
	q, err := p.store.LoadQrels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load qrels: %w", err)
	}
	run, err := p.store.LoadRun(ctx, p.runID)
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	return fromTrec(q, run, p.complete), nil
}
