package runner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/source"
)

// Runner evaluates topics one at a time against a fixed measure plan.
type Runner struct {
	config Config
	plan   *measure.Plan
}

func New(cfg Config, plan *measure.Plan) *Runner {
	return &Runner{config: cfg, plan: plan}
}

// Evaluate loads the batch from src and runs it.
func (r *Runner) Evaluate(ctx context.Context, src source.Source) (*Result, error) {
	batch, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, batch)
}

// Run computes every planned measure for each topic in ascending topic ID
// order, then averages across topics. Topics without judgments are skipped for
// all measures.
func (r *Runner) Run(ctx context.Context, batch *source.Batch) (*Result, error) {
	res := &Result{Config: r.config, RunTag: batch.RunTag}
	acc := measure.NewAccumulator(r.plan)
	bound := r.plan.Measures()
	opts := r.config.correlation()

	topics := slices.Clone(batch.Topics)
	slices.SortStableFunc(topics, func(a, b relevance.Topic) int {
		return cmp.Compare(a.ID, b.ID)
	})

	var elapsed []time.Duration
	for _, t := range topics {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("evaluation cancelled: %w", err)
		}

		start := time.Now()
		c, err := relevance.Correlate(t, opts)
		if errors.Is(err, relevance.ErrNoJudgments) {
			slog.Debug("skipping topic", "topic", t.ID, "reason", err)
			res.Skipped = append(res.Skipped, SkippedTopic{TopicID: t.ID, Reason: "no judgments"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("correlate: %w", err)
		}

		tr := TopicResult{TopicID: t.ID, NumRet: c.NumRet, NumRel: c.NumRel}
		for _, b := range bound {
			values, err := b.Measure.Calc(c, b.Params)
			if errors.Is(err, measure.ErrUndefined) {
				tr.Undefined = append(tr.Undefined, b.Measure.Name())
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("topic %s: %s: %w", t.ID, b.Measure.Name(), err)
			}
			acc.Add(b, values)
			tr.Lines = append(tr.Lines, b.Measure.FormatSingle(b.Params, values)...)
		}
		tr.Elapsed = time.Since(start)
		elapsed = append(elapsed, tr.Elapsed)

		if len(tr.Undefined) > 0 {
			slog.Debug("measures undefined for topic", "topic", t.ID, "measures", tr.Undefined)
		}
		res.Topics = append(res.Topics, tr)
	}

	res.Finals = acc.Finalize()
	res.Timing = ComputeTimingStats(elapsed)

	slog.Info("evaluation finished",
		"run", batch.RunTag,
		"topics", res.Evaluated(),
		"skipped", len(res.Skipped),
		"measures", len(bound),
		"elapsed", res.Timing.Total,
	)
	return res, nil
}
