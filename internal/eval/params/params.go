// Package params holds the typed, immutable parameter blocks measures are
// configured with.
package params

import (
	"slices"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindNone Kind = iota
	KindCutoffs
	KindFloat
	KindPairs
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCutoffs:
		return "cutoffs"
	case KindFloat:
		return "float"
	case KindPairs:
		return "pairs"
	default:
		return "unknown"
	}
}

// Pair overrides the gain of one relevance level.
type Pair struct {
	Level int
	Gain  float64
}

// Block is a parsed parameter set. The zero value is a block of kind none.
// Slices are copied on the way in and out, so a Block can be shared freely.
type Block struct {
	kind    Kind
	raw     string
	cutoffs []int
	value   float64
	pairs   []Pair
}

func None() Block {
	return Block{kind: KindNone}
}

// Cutoffs builds a cutoff block; ks are sorted and de-duplicated.
func Cutoffs(ks ...int) Block {
	c := slices.Clone(ks)
	slices.Sort(c)
	return Block{kind: KindCutoffs, cutoffs: slices.Compact(c)}
}

func Float(v float64) Block {
	return Block{kind: KindFloat, value: v}
}

// Pairs builds a pair block. An empty pair block is valid and means "no overrides".
func Pairs(ps ...Pair) Block {
	return Block{kind: KindPairs, pairs: slices.Clone(ps)}
}

func (b Block) Kind() Kind {
	return b.kind
}

// Raw is the string the block was parsed from, empty for defaults.
func (b Block) Raw() string {
	return b.raw
}

func (b Block) Cutoffs() []int {
	return slices.Clone(b.cutoffs)
}

func (b Block) Float() float64 {
	return b.value
}

func (b Block) Pairs() []Pair {
	return slices.Clone(b.pairs)
}

func (b Block) withRaw(raw string) Block {
	b.raw = raw
	return b
}

// String renders the block in the same syntax Parse accepts.
func (b Block) String() string {
	if b.raw != "" {
		return b.raw
	}
	switch b.kind {
	case KindCutoffs:
		parts := make([]string, len(b.cutoffs))
		for i, k := range b.cutoffs {
			parts[i] = strconv.Itoa(k)
		}
		return strings.Join(parts, ",")
	case KindFloat:
		return strconv.FormatFloat(b.value, 'f', -1, 64)
	case KindPairs:
		parts := make([]string, len(b.pairs))
		for i, p := range b.pairs {
			parts[i] = strconv.Itoa(p.Level) + "=" + strconv.FormatFloat(p.Gain, 'f', -1, 64)
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
