package partition_test

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpart/partition"
)

// TestSplitRanks_Cover checks that chunks are contiguous, non-empty and cover [0,total).
func TestSplitRanks_Cover(t *testing.T) {
	for _, tc := range []struct {
		total uint64
		parts int
	}{{1, 4}, {3, 8}, {10, 3}, {165, 16}, {1000, 7}, {5, 0}} {
		chunks := partition.SplitRanksForTest(tc.total, tc.parts)
		require.NotEmpty(t, chunks)
		var next uint64
		minC, maxC := chunks[0].Count, chunks[0].Count
		for _, c := range chunks {
			require.Equal(t, next, c.Start, "total=%d parts=%d", tc.total, tc.parts)
			require.Positive(t, c.Count)
			next += c.Count
			minC = min(minC, c.Count)
			maxC = max(maxC, c.Count)
		}
		require.Equal(t, tc.total, next)
		require.LessOrEqual(t, maxC-minC, uint64(1), "chunks are balanced")
	}
}

// TestParallel_MatchesSequential runs both drivers on the same random instances.
func TestParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(seedDet))
	for trial := 0; trial < 40; trial++ {
		n := 3 + rng.Intn(12)
		k := 2 + rng.Intn(n-2)
		w := randomInts(rng, n, 7)
		labels := letters(n)

		seq, err := partition.Solve(w, labels, k)
		require.NoError(t, err)

		for _, workers := range []int{2, 3, 8} {
			par, err := partition.Solve(w, labels, k, partition.WithWorkers(workers))
			require.NoError(t, err)
			require.Equal(t, seq.CombinationsSearched, par.CombinationsSearched, "w=%v k=%d", w, k)
			require.Equal(t, seq.Ties, par.Ties, "w=%v k=%d workers=%d", w, k, workers)
			require.Equal(t, seq.Cuts, par.Cuts, "lowest rank at the minimum wins")
			require.InDelta(t, seq.MinimumVariance, par.MinimumVariance, epsCmp)
			require.Equal(t, seq.GroupSampleSizes, par.GroupSampleSizes)
			require.Equal(t, seq.GroupMembership, par.GroupMembership)
		}
	}
}

// TestParallel_Scenario reproduces the four-equal-weights result with workers.
func TestParallel_Scenario(t *testing.T) {
	res, err := partition.Solve([]float64{4, 4, 4, 4}, []string{"a", "b", "c", "d"}, 2,
		partition.WithWorkers(4))
	require.NoError(t, err)
	require.Equal(t, uint64(3), res.CombinationsSearched)
	require.False(t, res.Ties)
	require.Equal(t, []float64{8, 8}, res.GroupSampleSizes)
	require.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, res.GroupMembership)
}

// TestParallel_TieAcrossChunks places equal minima in different chunks.
func TestParallel_TieAcrossChunks(t *testing.T) {
	// Two tuples, two workers: each tuple lands in its own chunk.
	res, err := partition.Solve([]float64{1, 2, 1}, letters(3), 2, partition.WithWorkers(2))
	require.NoError(t, err)
	require.True(t, res.Ties)
	require.Equal(t, []int{0}, res.Cuts)
	require.Equal(t, uint64(2), res.CombinationsSearched)
}

// TestParallel_Canceled propagates cancellation from any worker.
func TestParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := partition.Solve(make([]float64, 16), letters(16), 4,
		partition.WithContext(ctx), partition.WithWorkers(4), partition.WithProgress(1, nil))
	require.ErrorIs(t, err, partition.ErrCanceled)
	require.ErrorIs(t, err, context.Canceled)
}

// TestParallel_ProgressTotal checks that the final progress call reports every tuple.
func TestParallel_ProgressTotal(t *testing.T) {
	var last atomic.Uint64
	res, err := partition.Solve(make([]float64, 14), letters(14), 4,
		partition.WithWorkers(3),
		partition.WithProgress(10, func(p partition.Progress) {
			require.Equal(t, uint64(286), p.Total) // C(13,3)
			last.Store(p.Visited)
		}))
	require.NoError(t, err)
	require.Equal(t, uint64(286), res.CombinationsSearched)
	require.Equal(t, res.CombinationsSearched, last.Load())
}
