package measure

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
)

// SelectAll selects every registered measure with default parameters.
const SelectAll = "all"

var (
	DefaultCutoffs = []int{5, 10, 15, 20, 30, 100, 200, 500, 1000}
	ShortCutoffs   = []int{5, 10, 15, 20, 30, 100}
)

// Registry is an ordered, name-keyed set of measures. It is read-only once built.
type Registry struct {
	order  []Measure
	byName map[string]Measure
}

func NewRegistry(ms ...Measure) (*Registry, error) {
	r := &Registry{byName: make(map[string]Measure, len(ms))}
	for _, m := range ms {
		if _, dup := r.byName[m.Name()]; dup {
			return nil, fmt.Errorf("measure %q registered twice", m.Name())
		}
		r.byName[m.Name()] = m
		r.order = append(r.order, m)
	}
	return r, nil
}

// Default returns a registry holding every built-in measure.
func Default() *Registry {
	r, err := NewRegistry(
		Precision(),
		Recall(),
		AveragePrecision(),
		RecipRank(),
		SetPrecision(),
		SetRecall(),
		SetF(),
		NDCG(),
		NDCG2Cut(),
		ERR(),
		ERR45(),
		QMeasure(),
		QM(),
		QMCut(),
		InfAP2(),
		MAE(),
		GMPrecision(),
		GMRecall(),
		GMRecipRank(),
		GMSetPrecision(),
		GMSetRecall(),
		GMSetF(),
		GMNDCG(),
		GMERR(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Lookup(name string) (Measure, bool) {
	m, ok := r.byName[name]
	return m, ok
}

func (r *Registry) All() []Measure {
	out := make([]Measure, len(r.order))
	copy(out, r.order)
	return out
}

// ParseSelection splits "P.5,10" into the measure name and its raw parameters.
func ParseSelection(sel string) (name, raw string) {
	name, raw, _ = strings.Cut(strings.TrimSpace(sel), ".")
	return name, raw
}

// Bound is a measure with parsed parameters and its slot range in the output vector.
type Bound struct {
	Measure Measure
	Params  params.Block
	Slot    int
	Width   int
}

func (b Bound) Labels() []string {
	return b.Measure.Labels(b.Params)
}

// Plan is the resolved, ordered list of measures for one evaluation.
type Plan struct {
	bound []Bound
	width int
}

// Plan resolves selections against the registry. Every parameter string is
// parsed here, so configuration errors surface before any topic is read.
// A measure selected twice keeps the last parameters. Measures are ordered as
// in the registry.
func (r *Registry) Plan(selections []string) (*Plan, error) {
	if len(selections) == 0 {
		selections = []string{SelectAll}
	}

	chosen := make(map[string]params.Block)
	for _, sel := range selections {
		name, raw := ParseSelection(sel)
		if name == SelectAll {
			if raw != "" {
				return nil, apperr.NewFieldValidation(SelectAll, "takes no parameters", nil)
			}
			for _, m := range r.order {
				if _, ok := chosen[m.Name()]; !ok {
					chosen[m.Name()] = m.Defaults()
				}
			}
			continue
		}

		m, ok := r.byName[name]
		if !ok {
			return nil, apperr.NewFieldValidation(name, "unknown measure", nil)
		}
		p, err := m.Setup(raw)
		if err != nil {
			return nil, err
		}
		chosen[name] = p
	}

	plan := &Plan{}
	for _, m := range r.order {
		p, ok := chosen[m.Name()]
		if !ok {
			continue
		}
		w := len(m.Labels(p))
		plan.bound = append(plan.bound, Bound{Measure: m, Params: p, Slot: plan.width, Width: w})
		plan.width += w
	}
	return plan, nil
}

func (p *Plan) Measures() []Bound {
	out := make([]Bound, len(p.bound))
	copy(out, p.bound)
	return out
}

// Width is the total number of output slots.
func (p *Plan) Width() int {
	return p.width
}
