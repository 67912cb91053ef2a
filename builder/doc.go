// Package builder provides reusable "functional-options"-style generators for
// labeled item sequences: the weights/labels pairs consumed by the partition
// search, its benchmarks, the CLI `generate` command and golden tests.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption:     a function that mutates builderConfig before use.
//     – builderConfig:     holds RNG, label scheme, weight function, pulse knobs.
//   - Label schemes (LabelFn implementations):
//     – DefaultLabelFn:     decimal strings ("0","1",…).
//     – AlphabeticLabelFn:  lowercase spreadsheet letters ("a",…,"z","aa",…).
//     – ExcelColumnLabelFn: uppercase spreadsheet letters ("A",…,"Z","AA",…).
//     – AlphanumericLabelFn: base-36 strings ("0"…"z","10",…).
//     – HexLabelFn:         lowercase hexadecimal ("0","a","ff",…).
//     – PrefixedLabelFn:    prefix + decimal ("item0","item1",…).
//   - Weight distributions (WeightFn implementations):
//     – DefaultWeightFn:     constant weight DefaultWeight.
//     – ConstantWeightFn:    fixed user-provided value.
//     – UniformWeightFn:     uniform ∼U[min,max).
//     – NormalWeightFn:      Gaussian ∼N(mean,stddev), rounded, clipped at 0.
//     – ExponentialWeightFn: exponential ∼Exp(rate), rounded.
//   - Sequence generators:
//     – BuildItems:      n items, weights drawn from the configured WeightFn.
//     – BuildPulse:      deterministic rectangular/triangular pulse samples.
//     – BuildPulseItems: n items whose weights follow BuildPulse.
//
// Guarantees:
//
//   - Determinism: same (n, seed, options) ⇒ identical items.
//   - Fast-fail on invalid option parameters via panics in option-constructors.
//   - Structured runtime errors for invalid sizes, wrapping ErrBadSize.
//
// Example:
//
//	items, err := builder.BuildItems(12, 42,
//		builder.WithUniformWeight(1, 100),
//		builder.WithAlphabeticLabels())
//	if err != nil {
//		return err
//	}
//	res, err := partition.Solve(items.Weights, items.Labels, 3)
package builder
