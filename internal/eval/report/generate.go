package report

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/rankeval/pkg/utils"
)

type Options struct {
	Name     string
	PerTopic bool
	// Decimals rounds reported values when > 0.
	Decimals int
}

func Generate(res *runner.Result, opts Options) *Report {
	r := &Report{
		Meta: Meta{
			EvalID:      uuid.NewString(),
			Name:        opts.Name,
			RunTag:      res.RunTag,
			Version:     Version,
			Timestamp:   time.Now().UTC(),
			Topics:      res.Evaluated(),
			Environment: NewEnvironmentInfo(),
		},
		Config: Config{
			RelevanceLevel: res.Config.RelevanceLevel,
			MaxRetrieved:   res.Config.MaxRetrieved,
		},
		Timing: res.Timing,
	}

	round := func(v float64) float64 {
		if opts.Decimals > 0 {
			return utils.RoundDecimal(v, opts.Decimals)
		}
		return v
	}

	perLabel := make(map[string][]float64)
	for _, tr := range res.Topics {
		for _, l := range tr.Lines {
			perLabel[l.Label] = append(perLabel[l.Label], l.Value)
		}
	}

	for _, f := range res.Finals {
		m := f.Bound.Measure
		r.Config.Measures = append(r.Config.Measures, selection(m.Name(), f.Bound.Params.String()))
		for _, line := range m.FormatFinal(f.Bound.Params, f.Values) {
			v := Value{
				Measure:     m.Name(),
				Label:       line.Label,
				Value:       round(line.Value),
				Aggregation: m.Aggregation().String(),
				Topics:      f.Topics,
			}
			if xs := perLabel[line.Label]; len(xs) > 0 {
				v.Min = round(floats.Min(xs))
				v.Max = round(floats.Max(xs))
				if len(xs) > 1 {
					v.StdDev = round(stat.StdDev(xs, nil))
				}
			}
			r.Summary = append(r.Summary, v)
		}
	}

	if opts.PerTopic {
		for _, tr := range res.Topics {
			tv := TopicReport{TopicID: tr.TopicID, NumRet: tr.NumRet, NumRel: tr.NumRel}
			for _, l := range tr.Lines {
				tv.Values = append(tv.Values, TopicValue{Label: l.Label, Value: round(l.Value)})
			}
			r.PerTopic = append(r.PerTopic, tv)
		}
	}

	for _, s := range res.Skipped {
		r.Skipped = append(r.Skipped, s.TopicID)
	}

	return r
}

func selection(name, params string) string {
	if params == "" {
		return name
	}
	return name + "." + params
}
