package measure

// Accumulator collects per-topic values for every slot of a plan.
type Accumulator struct {
	plan   *Plan
	totals []float64
	topics []int
}

func NewAccumulator(plan *Plan) *Accumulator {
	return &Accumulator{
		plan:   plan,
		totals: make([]float64, plan.Width()),
		topics: make([]int, plan.Width()),
	}
}

// Add folds one topic's values for b into the running totals.
func (a *Accumulator) Add(b Bound, values []float64) {
	end := b.Slot + b.Width
	b.Measure.Accumulate(a.totals[b.Slot:end], values)
	for i := b.Slot; i < end; i++ {
		a.topics[i]++
	}
}

// Final is the averaged outcome of one bound measure.
type Final struct {
	Bound  Bound
	Values []float64
	Topics int
}

func (a *Accumulator) Finalize() []Final {
	bound := a.plan.Measures()
	out := make([]Final, len(bound))
	for i, b := range bound {
		end := b.Slot + b.Width
		topics := a.topics[b.Slot:end]
		n := 0
		if len(topics) > 0 {
			n = topics[0]
		}
		out[i] = Final{
			Bound:  b,
			Values: b.Measure.Average(a.totals[b.Slot:end], topics),
			Topics: n,
		}
	}
	return out
}
