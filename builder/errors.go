// SPDX-License-Identifier: MIT
// Package: lvpart/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Generators attach context with builderErrorf, which keeps the sentinel
//     reachable through %w.
//   • Generators MUST NOT panic at runtime; validation panics are confined to
//     option constructor functions (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrBadSize indicates an invalid sequence length (n < MinItems).
// Usage: if errors.Is(err, ErrBadSize) { /* fix n */ }.
var ErrBadSize = errors.New("builder: invalid size/length")

// ErrOptionViolation indicates that the resolved configuration cannot produce
// a sequence (e.g. a pulse duty outside [0,1] set through a custom option).
// Option constructors panic on such values; this sentinel covers the values
// that only surface while resolving the configuration.
var ErrOptionViolation = errors.New("builder: invalid option value")

// builderErrorf prefixes err with the generator name and a formatted message.
// It returns an error of the form "<Method>: <message>: <err>" that still
// satisfies errors.Is(…, err).
//
// Complexity: O(len(format) + Σlen(args)), negligible for our use.
func builderErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
