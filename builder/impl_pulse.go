// SPDX-License-Identifier: MIT
// Package: lvpart/builder
//
// impl_pulse.go - deterministic rectangular/triangular pulse generator.
//
// Purpose (single responsibility):
//   • Provide a reproducible 1-D pulse sequence used as item weights for
//     tests, demos and fixtures (bursty sample sizes).
//   • Shape controls: rectangular (duty ∈ [0,1]) or triangular (0..A envelope).
//   • Optional linear trend and additive Gaussian noise, both deterministic.
//
// Contract:
//   • BuildPulse(n, seed, opts...) returns a slice of length n (or nil on invalid input).
//   • Strict determinism per (n, seed, options); no panics; no global state.
//   • O(n) time and O(n) memory; tiny constant factors.

package builder

import (
	"math"
	"math/rand"
)

// seqPulseParams holds all resolved knobs for the pulse generator.
type seqPulseParams struct {
	amp        float64 // amplitude > 0
	f0         float64 // base frequency > 0 (cycles/sample)
	duty       float64 // rectangular duty in [0,1]
	triangular bool    // rectangular(false) or triangular(true)
	sigma      float64 // Gaussian noise sigma ≥ 0
	trend      float64 // linear trend increment per sample
}

// extractPulseParams maps builderConfig → seqPulseParams.
func extractPulseParams(cfg builderConfig) seqPulseParams {
	return seqPulseParams{
		amp:        cfg.amplitude,
		f0:         cfg.frequency,
		duty:       cfg.duty,
		triangular: cfg.triangular,
		sigma:      cfg.noiseSigma,
		trend:      cfg.trendK,
	}
}

// BuildPulse returns a length-n pulse sequence with optional trend and noise.
// Shape:
//   - Rectangular: y ∈ {0, A} chosen by phase fraction < duty.
//   - Triangular:  y ∈ [0, A] via 1 − |2*frac − 1| (no trig).
//
// Additions:
//   - Linear trend: y += trend * i.
//   - Gaussian noise: y += sigma * N(0,1) (deterministic per seed).
//
// Validation:
//   - If n < 1 ⇒ return nil (invalid request).
//   - If parameters are invalid (A≤0, f0≤0, duty∉[0,1], sigma<0) ⇒ return nil.
//
// Complexity:
//   - O(n) time, O(n) memory, constant-small overhead.
func BuildPulse(n int, seed int64, opts ...BuilderOption) []float64 {
	if n < MinItems {
		return nil
	}
	cfg := newBuilderConfig(opts...)
	p := extractPulseParams(cfg)
	if validatePulse(MethodPulseItems, p) != nil {
		return nil
	}

	return pulse(n, p, rngFrom(cfg, seed))
}

// pulse fills n samples for validated parameters.
func pulse(n int, p seqPulseParams, rng *rand.Rand) []float64 {
	out := make([]float64, n)

	var (
		frac float64 // phase fraction in [0,1)
		base float64 // base waveform before trend/noise
		tri  float64 // triangular [0,1] envelope
	)
	for i := 0; i < n; i++ {
		// Phase fraction in [0,1): frac = (i*f0) mod 1.
		frac = math.Mod(float64(i)*p.f0, unitOne)

		if p.triangular {
			tri = unitOne - math.Abs(triDouble*frac-triCenter)
			base = p.amp * tri
		} else {
			if frac < p.duty {
				base = p.amp
			} else {
				base = unitZero
			}
		}

		base += p.trend * float64(i)

		if p.sigma > 0 {
			base += p.sigma * rng.NormFloat64()
		}

		out[i] = base
	}

	return out
}
