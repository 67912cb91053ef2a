// SPDX-License-Identifier: MIT
// Package: lvpart/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same n, seed and options ⇒ identical items.
//   - Safety: never panic; return sentinel errors (ErrBadSize, ErrOptionViolation).
//   - Labels and weights always have equal length n.

package builder

// Items is a labeled item sequence: Labels[i] names the item of weight Weights[i].
type Items struct {
	Labels  []string  `json:"labels"`
	Weights []float64 `json:"weights"`
}

// Len returns the number of items.
func (it Items) Len() int { return len(it.Weights) }

// BuildItems returns n items whose weights are drawn from the configured
// WeightFn (DefaultWeightFn unless overridden) and whose labels follow the
// configured LabelFn.
//
// RNG policy: WithRand / WithSeed take priority; otherwise a local source
// seeded by 'seed' is used.
//
// Errors:
//   - ErrBadSize if n < MinItems.
//
// Complexity: O(n) time, O(n) memory.
func BuildItems(n int, seed int64, opts ...BuilderOption) (Items, error) {
	if err := validateMin(MethodItems, n, MinItems); err != nil {
		return Items{}, err
	}
	cfg := newBuilderConfig(opts...)
	rng := rngFrom(cfg, seed)

	items := Items{
		Labels:  labels(cfg, n),
		Weights: make([]float64, n),
	}
	for i := range items.Weights {
		items.Weights[i] = cfg.weightFn(rng)
	}

	return items, nil
}

// BuildPulseItems returns n items whose weights follow BuildPulse for the same
// seed and options.
//
// Errors:
//   - ErrBadSize if n < MinItems;
//   - ErrOptionViolation if the resolved pulse parameters are invalid.
func BuildPulseItems(n int, seed int64, opts ...BuilderOption) (Items, error) {
	if err := validateMin(MethodPulseItems, n, MinItems); err != nil {
		return Items{}, err
	}
	cfg := newBuilderConfig(opts...)
	p := extractPulseParams(cfg)
	if err := validatePulse(MethodPulseItems, p); err != nil {
		return Items{}, err
	}

	return Items{
		Labels:  labels(cfg, n),
		Weights: pulse(n, p, rngFrom(cfg, seed)),
	}, nil
}

// labels renders n labels with cfg.labelFn.
func labels(cfg builderConfig, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = cfg.labelFn(i)
	}

	return out
}
