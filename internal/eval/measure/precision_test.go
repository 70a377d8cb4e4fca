package measure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relevant at 1-based ranks 2, 4 and 9, one more relevant never retrieved
var sparseRun = []int{0, 1, 0, 1, 0, 0, 0, 0, 1, 0}

func TestPrecision(t *testing.T) {
	tests := []struct {
		name      string
		retrieved []int
		extra     []int
		raw       string
		want      []float64
	}{
		{
			name:      "sparse run",
			retrieved: sparseRun,
			extra:     []int{1},
			raw:       "5,10,20",
			want:      []float64{0.4, 0.3, 0.15},
		},
		{
			name:      "zero retrieved",
			retrieved: nil,
			extra:     []int{1, 2},
			raw:       "5,10",
			want:      []float64{0, 0},
		},
		{
			name:      "cutoff equals ranking length",
			retrieved: []int{1, 1, 0},
			raw:       "3",
			want:      []float64{2.0 / 3.0},
		},
		{
			name:      "sentinels are not relevant",
			retrieved: []int{notPooled, -1, 1},
			extra:     []int{-1},
			raw:       "1,3",
			want:      []float64{0, 1.0 / 3.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc(t, Precision(), tt.raw, correlate(t, tt.retrieved, tt.extra...))
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}
}

func TestPrecision_DefaultCutoffs(t *testing.T) {
	c := correlate(t, sparseRun, 1)

	got := calc(t, Precision(), "", c)
	assert.Len(t, got, len(DefaultCutoffs))

	got = calc(t, GMPrecision(), "", c)
	assert.Len(t, got, len(ShortCutoffs))
}

func TestRecall(t *testing.T) {
	c := correlate(t, sparseRun, 1)
	require.Equal(t, 4, c.NumRel)

	got := calc(t, Recall(), "5,10", c)
	assert.InDeltaSlice(t, []float64{0.5, 0.75}, got, 1e-9)
}

func TestRecall_MonotoneInK(t *testing.T) {
	runs := [][]int{
		sparseRun,
		{1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 1},
		{2, notPooled, 1, 0, 3, 1, 0, 0, 2},
	}

	for _, run := range runs {
		c := correlate(t, run, 1, 2)
		got := calc(t, Recall(), "1,2,3,5,8,13,100", c)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i], got[i-1])
		}
	}
}

func TestRecall_UndefinedWithoutRelevant(t *testing.T) {
	c := correlate(t, []int{0, 0}, 0)

	for _, m := range []Measure{Recall(), GMRecall(), SetRecall(), GMSetRecall()} {
		t.Run(m.Name(), func(t *testing.T) {
			_, err := m.Calc(c, m.Defaults())
			assert.True(t, errors.Is(err, ErrUndefined))
		})
	}
}

func TestGMPrecision_AllZeroTopicsFloorAggregate(t *testing.T) {
	m := GMPrecision()
	p := cutoffs(5)
	totals := make([]float64, 1)

	for range 3 {
		values, err := m.Calc(correlate(t, []int{0, 0, 0}, 1), p)
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, values)
		m.Accumulate(totals, values)
	}

	got := m.Average(totals, []int{3})
	assert.InDelta(t, MinGeoMean, got[0], 1e-15)
}
