// Package measure implements the effectiveness measures and the lifecycle every
// measure shares: setup, per-topic calculation, accumulation and averaging.
package measure

import (
	"errors"
	"math"
	"strconv"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// MinGeoMean floors per-topic values before taking logs in geometric means.
const MinGeoMean = 0.00001

// ErrUndefined is returned by Calc when a topic cannot contribute to a measure,
// e.g. recall on a topic without relevant documents.
var ErrUndefined = errors.New("measure undefined for topic")

type Aggregation uint8

const (
	Mean Aggregation = iota
	GeoMean
)

func (a Aggregation) String() string {
	if a == GeoMean {
		return "geometric"
	}
	return "arithmetic"
}

// Line is one printable output value.
type Line struct {
	Label string
	Value float64
}

type Measure interface {
	Name() string
	Help() string
	Aggregation() Aggregation
	Defaults() params.Block
	// Setup parses the raw parameter string; an empty string selects Defaults.
	Setup(raw string) (params.Block, error)
	// Calc returns one value per label for a single topic.
	Calc(c *relevance.Correlation, p params.Block) ([]float64, error)
	Accumulate(totals, values []float64)
	Average(totals []float64, topics []int) []float64
	Labels(p params.Block) []string
	FormatSingle(p params.Block, values []float64) []Line
	FormatFinal(p params.Block, values []float64) []Line
}

type base struct {
	name     string
	help     string
	defaults params.Block
	agg      Aggregation
}

func (b base) Name() string {
	return b.name
}

func (b base) Help() string {
	return b.help
}

func (b base) Aggregation() Aggregation {
	return b.agg
}

func (b base) Defaults() params.Block {
	return b.defaults
}

func (b base) Setup(raw string) (params.Block, error) {
	p, err := params.Parse(b.defaults.Kind(), raw, b.defaults)
	if err != nil {
		return params.Block{}, apperr.NewFieldValidation(b.name, "invalid parameters", err)
	}
	return p, nil
}

func (b base) Accumulate(totals, values []float64) {
	for i, v := range values {
		if b.agg == GeoMean {
			totals[i] += math.Log(max(v, MinGeoMean))
			continue
		}
		totals[i] += v
	}
}

// Average turns accumulated totals into final values. A slot no topic
// contributed to averages to 0.
func (b base) Average(totals []float64, topics []int) []float64 {
	out := make([]float64, len(totals))
	for i, total := range totals {
		if topics[i] == 0 {
			continue
		}
		mean := total / float64(topics[i])
		if b.agg == GeoMean {
			mean = math.Exp(mean)
		}
		out[i] = mean
	}
	return out
}

// Labels names each output value: name_k per cutoff, otherwise the name,
// suffixed with the raw parameters when they were given.
func (b base) Labels(p params.Block) []string {
	if p.Kind() == params.KindCutoffs {
		ks := p.Cutoffs()
		labels := make([]string, len(ks))
		for i, k := range ks {
			labels[i] = b.name + "_" + strconv.Itoa(k)
		}
		return labels
	}
	if p.Raw() != "" {
		return []string{b.name + "_" + p.Raw()}
	}
	return []string{b.name}
}

func (b base) FormatSingle(p params.Block, values []float64) []Line {
	return b.lines(p, values)
}

func (b base) FormatFinal(p params.Block, values []float64) []Line {
	return b.lines(p, values)
}

func (b base) lines(p params.Block, values []float64) []Line {
	labels := b.Labels(p)
	out := make([]Line, 0, len(values))
	for i, v := range values {
		if i >= len(labels) {
			break
		}
		out = append(out, Line{Label: labels[i], Value: v})
	}
	return out
}
