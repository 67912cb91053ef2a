package partition_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvpart/partition"
)

// TestGroupRanges_Partition checks that for every tuple the ranges are
// contiguous, non-empty and cover [0, n-1] exactly.
func TestGroupRanges_Partition(t *testing.T) {
	for _, tc := range []struct{ n, k int }{{2, 2}, {5, 2}, {6, 3}, {8, 5}, {7, 7}} {
		for _, cuts := range allTuples(tc.n-1, tc.k-1) {
			ranges := partition.GroupRanges(tc.n, cuts)
			require.Len(t, ranges, tc.k)
			require.Equal(t, 0, ranges[0].Lo)
			require.Equal(t, tc.n-1, ranges[tc.k-1].Hi)
			total := 0
			for i, r := range ranges {
				require.GreaterOrEqual(t, r.Len(), 1, "group %d of %v empty", i, cuts)
				if i > 0 {
					require.Equal(t, ranges[i-1].Hi+1, r.Lo, "gap/overlap at group %d of %v", i, cuts)
				}
				total += r.Len()
			}
			require.Equal(t, tc.n, total)
		}
	}
}

// TestGroupSums_Scenario uses the four equal weights from the package docs.
func TestGroupSums_Scenario(t *testing.T) {
	w := []float64{4, 4, 4, 4}
	assert.Equal(t, []float64{4, 12}, partition.GroupSums(nil, w, []int{0}))
	assert.Equal(t, []float64{8, 8}, partition.GroupSums(nil, w, []int{1}))
	assert.Equal(t, []float64{12, 4}, partition.GroupSums(nil, w, []int{2}))

	// dst is reused when large enough.
	dst := make([]float64, 0, 4)
	out := partition.GroupSums(dst, w, []int{0, 1, 2})
	assert.Equal(t, []float64{4, 4, 4, 4}, out)
	assert.Equal(t, 4, cap(out))
}

// TestVariance_Conventions checks sample (K-1) and population (K) denominators.
func TestVariance_Conventions(t *testing.T) {
	// mean 8, squared deviations 16+16 = 32
	assert.InDelta(t, 32.0, partition.Variance([]float64{4, 12}, partition.Sample), epsCmp)
	assert.InDelta(t, 16.0, partition.Variance([]float64{4, 12}, partition.Population), epsCmp)
	assert.InDelta(t, 32.0, partition.SampleVariance([]float64{12, 4}), epsCmp)
	assert.Equal(t, 0.0, partition.SampleVariance([]float64{8, 8}))

	// mean 2, squared deviations 1+1+0 = 2 → 2/2 and 2/3
	assert.InDelta(t, 1.0, partition.Variance([]float64{3, 1, 2}, partition.Sample), epsCmp)
	assert.InDelta(t, 2.0/3.0, partition.Variance([]float64{3, 1, 2}, partition.Population), epsCmp)
}

// TestScorer_MatchesDirectSums verifies the prefix-sum path against direct summation.
func TestScorer_MatchesDirectSums(t *testing.T) {
	rng := rand.New(rand.NewSource(seedDet))
	w := make([]float64, 11)
	for i := range w {
		w[i] = rng.Float64() * 50
	}
	for _, cuts := range allTuples(len(w)-1, 3) {
		sums, v := partition.ScoreForTest(w, cuts, partition.Sample)
		direct := partition.GroupSums(nil, w, cuts)
		require.InDeltaSlice(t, direct, sums, epsCmp, "cuts %v", cuts)
		require.InDelta(t, partition.SampleVariance(direct), v, epsCmp, "cuts %v", cuts)
		require.InDelta(t, floats.Sum(w), floats.Sum(sums), epsCmp)
	}
}

// TestScorer_LargeTotals keeps small weights visible next to a weight past 2^53.
func TestScorer_LargeTotals(t *testing.T) {
	w := []float64{1e16, 1, 1, 1, 1}
	require.False(t, partition.ScorerUsesPrefixForTest(w))

	sums, v := partition.ScoreForTest(w, []int{0, 1, 2, 3}, partition.Sample)
	require.Equal(t, []float64{1e16, 1, 1, 1, 1}, sums)
	require.Equal(t, partition.SampleVariance([]float64{1e16, 1, 1, 1, 1}), v)

	w = []float64{1e16, 3, 1, 1, 3, 2}
	for _, cuts := range allTuples(len(w)-1, 2) {
		sums, v := partition.ScoreForTest(w, cuts, partition.Sample)
		direct := partition.GroupSums(nil, w, cuts)
		require.Equal(t, direct, sums, "cuts %v", cuts)
		require.Equal(t, partition.SampleVariance(direct), v, "cuts %v", cuts)
	}
}

// TestScorer_PrefixPathSelection covers when prefix sums are exact.
func TestScorer_PrefixPathSelection(t *testing.T) {
	require.True(t, partition.ScorerUsesPrefixForTest([]float64{4, 4, -3, 0}))
	require.True(t, partition.ScorerUsesPrefixForTest([]float64{1 << 52, 1 << 52}))
	require.False(t, partition.ScorerUsesPrefixForTest([]float64{1 << 53, 1}))
	require.False(t, partition.ScorerUsesPrefixForTest([]float64{-(1 << 53), -1}))
	require.False(t, partition.ScorerUsesPrefixForTest([]float64{1, 0.5}))

	w := []float64{7, 1, 3, 3, 8, 2, 5}
	for _, cuts := range allTuples(len(w)-1, 3) {
		sums, _ := partition.ScoreForTest(w, cuts, partition.Population)
		require.Equal(t, partition.GroupSums(nil, w, cuts), sums, "cuts %v", cuts)
	}
}

// TestVarianceKind_Parse covers the textual forms accepted by configuration.
func TestVarianceKind_Parse(t *testing.T) {
	k, err := partition.ParseVarianceKind("")
	require.NoError(t, err)
	require.Equal(t, partition.Sample, k)

	k, err = partition.ParseVarianceKind("population")
	require.NoError(t, err)
	require.Equal(t, partition.Population, k)
	require.Equal(t, "population", k.String())

	_, err = partition.ParseVarianceKind("median")
	require.ErrorIs(t, err, partition.ErrInvalidOption)
}
