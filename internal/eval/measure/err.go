package measure

import (
	"math"

	"github.com/DjordjeVuckovic/rankeval/internal/eval/params"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

// DefaultMaxRating is the highest grade ERR expects when no parameter is given.
const DefaultMaxRating = 5.0

type expectedReciprocalRank struct {
	base
}

// ERR is Expected Reciprocal Rank (Chapelle et al., CIKM 2009). The user scans
// down the ranking and stops at each document with a probability derived from
// its grade.
func ERR() Measure {
	return &expectedReciprocalRank{base{
		name:     "err",
		help:     "Expected reciprocal rank; parameter is the maximum rating (default 5.0).",
		defaults: params.Float(DefaultMaxRating),
		agg:      Mean,
	}}
}

func GMERR() Measure {
	return &expectedReciprocalRank{base{
		name:     "gm_err",
		help:     "Expected reciprocal rank, geometric mean over topics.",
		defaults: params.Float(DefaultMaxRating),
		agg:      GeoMean,
	}}
}

func (m *expectedReciprocalRank) Calc(c *relevance.Correlation, p params.Block) ([]float64, error) {
	norm := math.Exp2(p.Float())
	err, _ := cascade(c.Grades, func(level int) float64 {
		if level <= 0 {
			return 0
		}
		return (math.Exp2(float64(level)) - 1) / norm
	})
	return []float64{err}, nil
}

type err45 struct {
	base
}

// ERR45 is ERR counting only grades above 3, normalised by the topic's
// highest judged level.
func ERR45() Measure {
	return &err45{base{
		name:     "err45",
		help:     "Expected reciprocal rank where only grades 4 and above carry gain.",
		defaults: params.None(),
		agg:      Mean,
	}}
}

func (m *err45) Calc(c *relevance.Correlation, _ params.Block) ([]float64, error) {
	norm := math.Exp2(float64(c.NumLevels() - 1))
	err, _ := cascade(c.Grades, func(level int) float64 {
		if level <= 3 {
			return 0
		}
		return (math.Exp2(float64(level-3)) - 1) / norm
	})
	return []float64{err}, nil
}

// cascade runs the ERR user model and returns the score together with the
// probability that the user is still scanning after the last document.
// Stop probabilities are capped at 1 so grades above the maximum rating
// cannot drive p negative.
func cascade(grades []relevance.Grade, stop func(level int) float64) (err, p float64) {
	p = 1.0
	for i, g := range grades {
		level, ok := g.Level()
		if !ok {
			continue
		}
		r := min(stop(level), 1)
		if r <= 0 {
			continue
		}
		err += p * r / float64(i+1)
		p *= 1 - r
	}
	return err, p
}
