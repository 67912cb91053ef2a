// SPDX-License-Identifier: MIT
// Package: lvpart/builder
//
// options.go - functional options for the builder package.
//
// Contract (strict):
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via the generator seed,
//     WithSeed or WithRand.
//   • No hidden globals; everything flows through builderConfig.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes the behavior of a generator by mutating a
// builderConfig instance before the sequence is produced.
// Complexity: applying N options costs O(N) time, O(1) space.
type BuilderOption func(*builderConfig)

// WithLabelScheme sets the deterministic label generator: idx -> string.
// Panics on nil to surface programmer error early.
func WithLabelScheme(fn LabelFn) BuilderOption {
	if fn == nil {
		panic("builder: WithLabelScheme(nil)")
	}
	return func(c *builderConfig) {
		c.labelFn = fn
	}
}

// WithRand provides an explicit RNG shared across generator calls.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed, overriding the
// generator's own seed argument.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn overrides the per-item weight generator. The function receives
// the resolved RNG. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithAmplitude sets the pulse amplitude A (>0).
// Panics if A <= 0 to avoid degenerate outputs.
func WithAmplitude(A float64) BuilderOption {
	if A <= 0 || math.IsInf(A, 0) || math.IsNaN(A) {
		panic("builder: WithAmplitude(A<=0)")
	}
	return func(c *builderConfig) {
		c.amplitude = A
	}
}

// WithFrequency sets the pulse base frequency f0 (>0, cycles per sample).
// Panics if f0 <= 0.
func WithFrequency(f0 float64) BuilderOption {
	if f0 <= 0 || math.IsInf(f0, 0) || math.IsNaN(f0) {
		panic("builder: WithFrequency(f0<=0)")
	}
	return func(c *builderConfig) {
		c.frequency = f0
	}
}

// WithDuty sets the rectangular duty cycle in [0,1]. Panics otherwise.
func WithDuty(d float64) BuilderOption {
	if !(d >= 0 && d <= 1) {
		panic("builder: WithDuty(d∉[0,1])")
	}
	return func(c *builderConfig) {
		c.duty = d
	}
}

// WithTriangular switches the pulse shape to a 0..A triangle.
func WithTriangular() BuilderOption {
	return func(c *builderConfig) {
		c.triangular = true
	}
}

// WithTrend sets the linear trend coefficient k (added as k*i).
// Any finite value is accepted (including 0).
func WithTrend(k float64) BuilderOption {
	if math.IsInf(k, 0) || math.IsNaN(k) {
		panic("builder: WithTrend(non-finite)")
	}
	return func(c *builderConfig) {
		c.trendK = k
	}
}

// WithNoise sets Gaussian noise sigma (>=0) for pulses.
// Panics if sigma < 0. Noise draws come from the resolved RNG.
func WithNoise(sigma float64) BuilderOption {
	if !(sigma >= 0) || math.IsInf(sigma, 0) {
		panic("builder: WithNoise(sigma<0)")
	}
	return func(c *builderConfig) {
		c.noiseSigma = sigma
	}
}
