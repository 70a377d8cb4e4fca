// Package gain builds the per-topic table mapping relevance levels to gain values
// and walks it in ideal order.
package gain

import (
	"cmp"
	"iter"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// Func maps a level without an override to its gain.
type Func func(level int) float64

// Linear is the default gain: the level itself.
func Linear(level int) float64 {
	return float64(level)
}

type Bucket struct {
	Level int
	Count int
	Gain  float64
}

type Option func(*builder)

type builder struct {
	overrides []params.Pair
	fn        Func
}

func WithOverrides(pairs []params.Pair) Option {
	return func(b *builder) {
		b.overrides = pairs
	}
}

func WithGainFunc(fn Func) Option {
	return func(b *builder) {
		b.fn = fn
	}
}

// Table holds one bucket per level, sorted ascending by gain.
type Table struct {
	buckets []Bucket
	byLevel map[int]int
}

// Build creates the table from a level histogram (levels[l] = judged documents
// at level l). Overridden levels keep their gain but take the histogram count;
// every other level gets the gain function's value.
func Build(levels []int, opts ...Option) *Table {
	b := builder{fn: Linear}
	for _, opt := range opts {
		opt(&b)
	}

	buckets := make([]Bucket, 0, len(b.overrides)+len(levels))
	pos := make(map[int]int, len(b.overrides)+len(levels))
	for _, p := range b.overrides {
		pos[p.Level] = len(buckets)
		buckets = append(buckets, Bucket{Level: p.Level, Gain: p.Gain})
	}
	for level, count := range levels {
		if i, ok := pos[level]; ok {
			buckets[i].Count = count
			continue
		}
		pos[level] = len(buckets)
		buckets = append(buckets, Bucket{Level: level, Count: count, Gain: b.fn(level)})
	}

	slices.SortStableFunc(buckets, func(x, y Bucket) int {
		return cmp.Compare(x.Gain, y.Gain)
	})

	t := &Table{buckets: buckets, byLevel: make(map[int]int, len(buckets))}
	for i, bk := range buckets {
		t.byLevel[bk.Level] = i
	}
	return t
}

// Gain returns the gain of level, or 0 for a level the table does not know.
func (t *Table) Gain(level int) float64 {
	i, ok := t.byLevel[level]
	if !ok {
		return 0
	}
	return t.buckets[i].Gain
}

// GainOf returns the gain of a retrieved document. Sentinels have no gain.
func (t *Table) GainOf(g relevance.Grade) float64 {
	level, ok := g.Level()
	if !ok {
		return 0
	}
	return t.Gain(level)
}

func (t *Table) Buckets() []Bucket {
	return slices.Clone(t.buckets)
}

func (t *Table) Judged() int {
	var n int
	for _, b := range t.buckets {
		n += b.Count
	}
	return n
}

// Positive counts the documents whose level has a strictly positive gain.
func (t *Table) Positive() int {
	var n int
	for _, b := range t.buckets {
		if b.Gain > 0 {
			n += b.Count
		}
	}
	return n
}

// Ideal yields the gain at each position of the ideal ranking: buckets from the
// highest gain downward, each repeated Count times. It ends at the first bucket
// whose gain is not positive.
func (t *Table) Ideal() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := len(t.buckets) - 1; i >= 0; i-- {
			b := t.buckets[i]
			if b.Gain <= 0 {
				return
			}
			for range b.Count {
				if !yield(b.Gain) {
					return
				}
			}
		}
	}
}

// CumulativeIdeal returns the running sum of Ideal, one entry per ideal position.
func (t *Table) CumulativeIdeal() []float64 {
	ideal := slices.Collect(t.Ideal())
	if len(ideal) == 0 {
		return nil
	}
	return floats.CumSum(make([]float64, len(ideal)), ideal)
}
