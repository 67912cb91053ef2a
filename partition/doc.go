// Package partition splits an ordered sequence of N labeled weights into
// exactly K contiguous, non-empty groups so that the variance of the K group
// sums is minimal.
//
// 🚀 What does it solve?
//
//	Given weights w[0..N-1] (order fixed) and K, choose K-1 cut-points
//	c[0] < c[1] < ... < c[K-2] in [0, N-2]; group 0 is [0, c[0]], group i is
//	[c[i-1]+1, c[i]] and the last group is [c[K-2]+1, N-1]. Every admissible
//	tuple (there are C(N-1, K-1)) is scored; no pruning, no approximation.
//	Typical uses:
//	  • balancing ordered shards / test chunks / work batches by total weight
//	  • pooling adjacent sampling sites into groups of similar sample size
//	  • splitting a timeline into K contiguous periods of equal volume
//
// ✨ Key features:
//   - exact: every cut tuple is visited exactly once, lexicographic order
//   - tie-aware: Ties reports whether ≥2 tuples reach the minimum within ε
//   - deterministic: the first tuple (lowest combinatorial index) at the minimum wins
//   - cancellable: WithContext is polled between tuple evaluations
//   - optional parallel reduction: WithWorkers(n) keeps the same tie-break
//   - configurable numeric policy: WithEpsilon, WithSentinel, WithVarianceKind
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvpart/partition"
//
//	res, err := partition.Solve(
//		[]float64{4, 4, 4, 4},
//		[]string{"a", "b", "c", "d"},
//		2,
//	)
//	// res.CombinationsSearched == 3
//	// res.MinimumVariance == 0
//	// res.GroupSampleSizes == [8 8]
//	// res.GroupMembership == [[a b] [c d]]
//
// Errors are sentinels (errors.Is); IsInputError and IsInternalError separate
// bad input from internal defects.
//
// Performance:
//
//   - Time:   O(C(N-1, K-1) · K)
//   - Memory: O(N + K)
//
// Variance convention: sample variance (denominator K-1) by default;
// Population (denominator K) is available through WithVarianceKind.
package partition
