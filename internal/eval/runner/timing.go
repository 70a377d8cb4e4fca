package runner

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TimingStats summarises how long each topic took to evaluate.
type TimingStats struct {
	Min         time.Duration `json:"min"`
	Max         time.Duration `json:"max"`
	Mean        time.Duration `json:"mean"`
	Median      time.Duration `json:"median"`
	P95         time.Duration `json:"p95"`
	Stddev      time.Duration `json:"stddev"`
	Total       time.Duration `json:"total"`
	SampleCount int           `json:"sample_count"`
}

func ComputeTimingStats(durations []time.Duration) TimingStats {
	if len(durations) == 0 {
		return TimingStats{}
	}

	ns := make([]float64, len(durations))
	var total time.Duration
	for i, d := range durations {
		ns[i] = float64(d)
		total += d
	}
	slices.Sort(ns)

	mean, std := stat.MeanStdDev(ns, nil)
	if len(ns) == 1 {
		std = 0
	}

	return TimingStats{
		Min:         time.Duration(ns[0]),
		Max:         time.Duration(ns[len(ns)-1]),
		Mean:        time.Duration(mean),
		Median:      time.Duration(stat.Quantile(0.5, stat.LinInterp, ns, nil)),
		P95:         time.Duration(stat.Quantile(0.95, stat.LinInterp, ns, nil)),
		Stddev:      time.Duration(std),
		Total:       total,
		SampleCount: len(durations),
	}
}

func (s TimingStats) IsZero() bool {
	return s.SampleCount == 0
}
