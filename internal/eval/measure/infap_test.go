package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfAP2(t *testing.T) {
	tests := []struct {
		name      string
		retrieved []int
		extra     []int
		want      float64
	}{
		{name: "all not pooled", retrieved: []int{notPooled, notPooled, notPooled}, extra: []int{1}, want: 0},
		{name: "relevant at top only", retrieved: []int{1}, want: 1},
		{name: "mixed judgments", retrieved: []int{1, notPooled, 0, 1}, want: 0.8125},
		{name: "pooled unjudged counts like not pooled", retrieved: []int{1, -1, 0, 1}, want: 0.8125},
		{name: "no relevant judged", retrieved: []int{0, notPooled}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc(t, InfAP2(), "", correlate(t, tt.retrieved, tt.extra...))
			assert.InDelta(t, tt.want, got[0], 1e-9)
		})
	}
}

func TestInfAP2_FullyJudgedMatchesAP(t *testing.T) {
	c := correlate(t, []int{1, 0, 1, 0, 0, 1})

	inf := calc(t, InfAP2(), "", c)
	ap := calc(t, AveragePrecision(), "", c)
	assert.InDelta(t, ap[0], inf[0], 1e-4)
}
