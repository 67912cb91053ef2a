// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// materialize.go - slices the label sequence into the final K groups.

package partition

// Materialize returns the K label groups induced by cuts, preserving input
// order within every group. Each group is a fresh slice, so mutating the
// result never aliases labels.
//
// Concatenating the groups in order reproduces labels exactly.
//
// Complexity: O(N) time and space.
func Materialize[L any](labels []L, cuts []int) [][]L {
	ranges := GroupRanges(len(labels), cuts)
	out := make([][]L, len(ranges))
	for i, r := range ranges {
		group := make([]L, r.Len())
		copy(group, labels[r.Lo:r.Hi+1])
		out[i] = group
	}

	return out
}
