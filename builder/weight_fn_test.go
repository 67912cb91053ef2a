// Package builder_test contains unit tests for the WeightFn implementations
// in the builder package, covering both correct behavior and panic conditions.
package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpart/builder"
)

// TestWeightFnConstructors verifies that WeightFn constructors panic
// on invalid parameters according to their documented contracts.
func TestWeightFnConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constructor func() builder.WeightFn
	}{
		{"ConstantWeightFn_NaN", func() builder.WeightFn { return builder.ConstantWeightFn(math.NaN()) }},
		{"ConstantWeightFn_Inf", func() builder.WeightFn { return builder.ConstantWeightFn(math.Inf(1)) }},
		{"UniformWeightFn_maxLessThanMin", func() builder.WeightFn { return builder.UniformWeightFn(5, 4) }},
		{"NormalWeightFn_stddevNegative", func() builder.WeightFn { return builder.NormalWeightFn(0, -0.1) }},
		{"ExponentialWeightFn_zeroRate", func() builder.WeightFn { return builder.ExponentialWeightFn(0) }},
		{"ExponentialWeightFn_negativeRate", func() builder.WeightFn { return builder.ExponentialWeightFn(-1) }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Panics(t, func() { tc.constructor() }, tc.name)
		})
	}
}

// TestWeightFnBehavior covers the runtime behavior of each WeightFn:
//   - DefaultWeightFn always returns DefaultWeight.
//   - ConstantWeightFn returns the fixed value (negative allowed).
//   - UniformWeightFn returns DefaultWeight on nil RNG, and values in [min,max).
//   - NormalWeightFn / ExponentialWeightFn return non-negative integers.
func TestWeightFnBehavior(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	require.Equal(t, builder.DefaultWeight, builder.DefaultWeightFn(nil))
	require.Equal(t, builder.DefaultWeight, builder.DefaultWeightFn(rng))
	require.Equal(t, -2.5, builder.ConstantWeightFn(-2.5)(rng))

	uni := builder.UniformWeightFn(10, 20)
	require.Equal(t, builder.DefaultWeight, uni(nil))
	require.Equal(t, 7.0, builder.UniformWeightFn(7, 7)(rng))

	norm := builder.NormalWeightFn(50, 10)
	expo := builder.ExponentialWeightFn(0.1)
	require.Equal(t, builder.DefaultWeight, norm(nil))
	require.Equal(t, builder.DefaultWeight, expo(nil))

	for i := 0; i < 500; i++ {
		u := uni(rng)
		require.GreaterOrEqual(t, u, 10.0)
		require.Less(t, u, 20.0)

		w := builder.From1To100WeightFn(rng)
		require.GreaterOrEqual(t, w, 1.0)
		require.Less(t, w, 100.0)

		n := norm(rng)
		require.GreaterOrEqual(t, n, 0.0)
		require.Equal(t, math.Round(n), n)

		e := expo(rng)
		require.GreaterOrEqual(t, e, 0.0)
		require.Equal(t, math.Round(e), e)
	}
}
