package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
)

// Parse reads raw as a block of the given kind. An empty raw string yields def.
func Parse(kind Kind, raw string, def Block) (Block, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	switch kind {
	case KindNone:
		return Block{}, apperr.NewValidationf("takes no parameters, got %q", raw)
	case KindCutoffs:
		return ParseCutoffs(raw)
	case KindFloat:
		return ParseFloat(raw)
	case KindPairs:
		return ParsePairs(raw)
	default:
		return Block{}, apperr.NewValidationf("unknown parameter kind %d", kind)
	}
}

// ParseCutoffs parses "5,10,20". Values must be positive integers without
// duplicates; they are sorted ascending.
func ParseCutoffs(raw string) (Block, error) {
	parts := strings.Split(raw, ",")
	ks := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, p := range parts {
		k, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Block{}, apperr.NewValidationWrap(fmt.Sprintf("invalid cutoff %q", p), err)
		}
		if k <= 0 {
			return Block{}, apperr.NewValidationf("cutoff must be positive, got %d", k)
		}
		if seen[k] {
			return Block{}, apperr.NewValidationf("duplicate cutoff %d", k)
		}
		seen[k] = true
		ks = append(ks, k)
	}
	return Cutoffs(ks...).withRaw(raw), nil
}

func ParseFloat(raw string) (Block, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Block{}, apperr.NewValidationWrap(fmt.Sprintf("invalid number %q", raw), err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Block{}, apperr.NewValidationf("number must be finite, got %q", raw)
	}
	return Float(v).withRaw(raw), nil
}

// ParsePairs parses "level=gain" pairs such as "0=0,1=1,2=3.5". Levels are
// integers and may appear only once.
func ParsePairs(raw string) (Block, error) {
	parts := strings.Split(raw, ",")
	ps := make([]Pair, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, p := range parts {
		lvl, g, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok {
			return Block{}, apperr.NewValidationf("invalid pair %q, want level=gain", p)
		}
		level, err := strconv.Atoi(strings.TrimSpace(lvl))
		if err != nil {
			return Block{}, apperr.NewValidationWrap(fmt.Sprintf("invalid level in %q", p), err)
		}
		gain, err := strconv.ParseFloat(strings.TrimSpace(g), 64)
		if err != nil {
			return Block{}, apperr.NewValidationWrap(fmt.Sprintf("invalid gain in %q", p), err)
		}
		if math.IsNaN(gain) || math.IsInf(gain, 0) {
			return Block{}, apperr.NewValidationf("gain must be finite in %q", p)
		}
		if seen[level] {
			return Block{}, apperr.NewValidationf("duplicate level %d", level)
		}
		seen[level] = true
		ps = append(ps, Pair{Level: level, Gain: gain})
	}
	return Pairs(ps...).withRaw(raw), nil
}
