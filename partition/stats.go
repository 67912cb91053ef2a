// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// stats.go - group ranges, group sums and the variance of group sums.
//
// Exposed API:
//   - GroupRanges(n, cuts)          -> []Range   // inclusive index ranges of the K groups
//   - GroupSums(dst, weights, cuts) -> []float64 // direct summation per group
//   - Variance(sums, kind)          -> float64   // sample (K-1) or population (K)
//
// The search itself uses scorer. When every weight is an integer and the sum
// of their magnitudes stays within 2^53, every prefix sum is exact and a tuple
// costs O(K). Otherwise prefix differences could absorb small weights, so the
// scorer sums each group directly like GroupSums, at O(N) per tuple.

package partition

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Range is an inclusive index range [Lo, Hi] of one group.
type Range struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.Hi - r.Lo + 1 }

// GroupRanges returns the K = len(cuts)+1 ranges induced by cuts over n items:
// group 0 = [0, cuts[0]], group i = [cuts[i-1]+1, cuts[i]], last = [cuts[K-2]+1, n-1].
// Cuts are not validated; callers pass tuples produced by an Enumerator.
func GroupRanges(n int, cuts []int) []Range {
	out := make([]Range, len(cuts)+1)
	lo := 0
	for i, c := range cuts {
		out[i] = Range{Lo: lo, Hi: c}
		lo = c + 1
	}
	out[len(cuts)] = Range{Lo: lo, Hi: n - 1}

	return out
}

// GroupSums writes the K group sums for cuts into dst (reallocated when too
// short) and returns it.
func GroupSums(dst, weights []float64, cuts []int) []float64 {
	k := len(cuts) + 1
	if cap(dst) < k {
		dst = make([]float64, k)
	}
	dst = dst[:k]

	lo := 0
	for i, c := range cuts {
		dst[i] = floats.Sum(weights[lo : c+1])
		lo = c + 1
	}
	dst[k-1] = floats.Sum(weights[lo:])

	return dst
}

// Variance returns the variance of sums under the given convention.
// Sample divides the squared deviations by len(sums)-1, Population by len(sums).
func Variance(sums []float64, kind VarianceKind) float64 {
	if kind == Population {
		return stat.PopVariance(sums, nil)
	}

	return stat.Variance(sums, nil)
}

// SampleVariance is Variance(sums, Sample).
func SampleVariance(sums []float64) float64 {
	return stat.Variance(sums, nil)
}

// maxExactInt is the largest magnitude below which every integer is a float64.
const maxExactInt = 1 << 53

// scorer evaluates one cut tuple at a time. It owns its sums buffer, so every
// worker needs its own scorer.
type scorer struct {
	weights []float64
	prefix  []float64 // prefix[i] = weights[0] + ... + weights[i-1]; nil when not exact
	sums    []float64 // K group sums of the last scored tuple
	kind    VarianceKind
}

// newScorer builds prefix sums over weights for K groups when they are exact.
func newScorer(weights []float64, k int, kind VarianceKind) *scorer {
	return &scorer{
		weights: weights,
		prefix:  exactPrefix(weights),
		sums:    make([]float64, k),
		kind:    kind,
	}
}

// exactPrefix returns the prefix sums of weights, or nil when some weight is
// not an integer or the magnitudes add up past 2^53.
func exactPrefix(weights []float64) []float64 {
	var abs float64
	for _, w := range weights {
		if w != math.Trunc(w) {
			return nil
		}
		abs += math.Abs(w)
		if abs > maxExactInt {
			return nil
		}
	}

	prefix := make([]float64, len(weights)+1)
	for i, w := range weights {
		prefix[i+1] = prefix[i] + w
	}

	return prefix
}

// score fills s.sums for cuts and returns their variance.
func (s *scorer) score(cuts []int) float64 {
	if s.prefix == nil {
		s.sums = GroupSums(s.sums, s.weights, cuts)
		return Variance(s.sums, s.kind)
	}

	var (
		lo   = 0
		last = len(s.prefix) - 1
	)
	for i, c := range cuts {
		s.sums[i] = s.prefix[c+1] - s.prefix[lo]
		lo = c + 1
	}
	s.sums[len(cuts)] = s.prefix[last] - s.prefix[lo]

	return Variance(s.sums, s.kind)
}
