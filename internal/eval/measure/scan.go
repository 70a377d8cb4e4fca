package measure

// scanCutoffs walks the ranking once. When the 0-based rank equals a cutoff k,
// value(k) is read before step consumes that rank, so it reflects exactly the
// first k documents. Cutoffs beyond the ranking read the final state.
func scanCutoffs(cutoffs []int, numRet int, step func(rank int), value func(k int) float64) []float64 {
	out := make([]float64, len(cutoffs))
	ci := 0
	for i := 0; i < numRet && ci < len(cutoffs); i++ {
		for ci < len(cutoffs) && cutoffs[ci] == i {
			out[ci] = value(cutoffs[ci])
			ci++
		}
		step(i)
	}
	for ; ci < len(cutoffs); ci++ {
		out[ci] = value(cutoffs[ci])
	}
	return out
}
