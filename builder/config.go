// SPDX-License-Identifier: MIT
// Package: lvpart/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults (no surprises):
//   • labelFn     = DefaultLabelFn     ("0","1","2",...)
//   • rng         = nil                (generators fall back to their seed)
//   • weightFn    = DefaultWeightFn    (constant DefaultWeight)
//   • amplitude   = 1.0
//   • frequency   = 0.125              (pulse period ≈ 8 samples)
//   • duty        = 0.5
//   • triangular  = false
//   • trendK      = 0.0
//   • noiseSigma  = 0.0

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by generators.
// It is passed by VALUE to generators (immutable to callers).
type builderConfig struct {
	// Label strategy: index -> label (deterministic).
	labelFn LabelFn
	// RNG for stochastic draws; nil means "seed a local one".
	rng *rand.Rand
	// Weight generator for BuildItems.
	weightFn WeightFn

	// Pulse controls (BuildPulse / BuildPulseItems).
	amplitude  float64 // >0
	frequency  float64 // >0, cycles per sample
	duty       float64 // [0,1], rectangular only
	triangular bool    // rectangular(false) or triangular(true)
	trendK     float64 // any real
	noiseSigma float64 // >=0
}

// Deterministic defaults (named, no magic numbers).
const (
	defaultAmplitude  = 1.0   // pulse amplitude
	defaultFrequency  = 0.125 // base frequency, period ≈ 8
	defaultDuty       = 0.5   // rectangular duty cycle
	defaultTrend      = 0.0   // linear trend coefficient
	defaultNoiseSigma = 0.0   // Gaussian noise stdev
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		labelFn:    DefaultLabelFn,
		rng:        nil,
		weightFn:   DefaultWeightFn,
		amplitude:  defaultAmplitude,
		frequency:  defaultFrequency,
		duty:       defaultDuty,
		triangular: false,
		trendK:     defaultTrend,
		noiseSigma: defaultNoiseSigma,
	}

	// Apply options in the given order; last-wins semantics.
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// rngFrom returns cfg.rng if present (shared stream), else a local rand
// seeded by 'seed'. This keeps determinism across composed calls.
func rngFrom(cfg builderConfig, seed int64) *rand.Rand {
	if cfg.rng != nil {
		return cfg.rng
	}

	return rand.New(rand.NewSource(seed))
}
