// Package builder provides validation helpers to enforce
// parameter contracts in sequence generators.
//
// Each function returns a formatted error via builderErrorf
// when its precondition is violated.
package builder

// validateMin ensures that the provided integer 'got' is ≥ 'min'.
// Returns "<Method>: parameter must be ≥ <min>, got <got>: builder: invalid size/length".
//
// Complexity: O(1) time and space.
func validateMin(method string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrBadSize, "parameter must be ≥ %d, got %d", min, got)
	}

	return nil
}

// validatePulse checks the resolved waveform parameters.
func validatePulse(method string, p seqPulseParams) error {
	if p.amp <= 0 || p.f0 <= 0 || p.sigma < 0 || p.duty < 0 || p.duty > 1 {
		return builderErrorf(method, ErrOptionViolation,
			"pulse A=%g f0=%g duty=%g sigma=%g", p.amp, p.f0, p.duty, p.sigma)
	}

	return nil
}
