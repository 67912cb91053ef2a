// SPDX-License-Identifier: MIT

package partition

// Test bridge: exposes unexported helpers to partition_test only.

// Chunk mirrors chunk for black-box tests.
type Chunk struct {
	Start uint64
	Count uint64
}

// SplitRanksForTest wraps splitRanks.
func SplitRanksForTest(total uint64, parts int) []Chunk {
	in := splitRanks(total, parts)
	out := make([]Chunk, len(in))
	for i, c := range in {
		out[i] = Chunk{Start: c.start, Count: c.count}
	}

	return out
}

// ScoreForTest runs the scorer on one tuple and returns a copy of
// the sums with the variance.
func ScoreForTest(weights []float64, cuts []int, kind VarianceKind) ([]float64, float64) {
	sc := newScorer(weights, len(cuts)+1, kind)
	v := sc.score(cuts)
	sums := make([]float64, len(sc.sums))
	copy(sums, sc.sums)

	return sums, v
}

// ScorerUsesPrefixForTest reports whether the scorer takes the O(K) prefix-sum path.
func ScorerUsesPrefixForTest(weights []float64) bool {
	return newScorer(weights, 2, Sample).prefix != nil
}
