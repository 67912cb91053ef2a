// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// errors.go - sentinel error set for the partition package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Context is attached with fmt.Errorf("...: %w", ErrX) at the call site.
//   - Two classes are kept apart: bad input (IsInputError) and internal defects
//     (IsInternalError). Cancellation belongs to neither.
//   - Nothing panics on user-triggered conditions.

package partition

import "errors"

var (
	// ErrInvalidGroupCount is returned when K < 2 or K > N.
	ErrInvalidGroupCount = errors.New("partition: group count must satisfy 2 <= k <= n")

	// ErrLengthMismatch is returned when weights and labels differ in length.
	ErrLengthMismatch = errors.New("partition: weights and labels must have the same length")

	// ErrMissingWeight is returned when a weight is missing (NaN).
	ErrMissingWeight = errors.New("partition: missing weight")

	// ErrNonFiniteWeight is returned when a weight is +Inf or -Inf.
	ErrNonFiniteWeight = errors.New("partition: weight is not finite")

	// ErrCombinationLimit is returned when C(N-1, K-1) exceeds the configured
	// limit or does not fit in 64 bits.
	ErrCombinationLimit = errors.New("partition: too many combinations")

	// ErrInvalidOption is returned when an Option received a meaningless value
	// (negative epsilon, NaN sentinel, negative worker count, ...).
	ErrInvalidOption = errors.New("partition: invalid option value")

	// ErrInternalInvariant signals a logic defect: the search finished without
	// ever improving on the sentinel. Given validated input this is unreachable
	// unless the caller's sentinel is below every achievable variance.
	ErrInternalInvariant = errors.New("partition: internal invariant violated")

	// ErrCanceled is returned when the search context is done before the
	// enumeration is exhausted. It wraps the context error.
	ErrCanceled = errors.New("partition: search canceled")
)

// inputErrors lists every sentinel that classifies as bad input.
var inputErrors = [...]error{
	ErrInvalidGroupCount,
	ErrLengthMismatch,
	ErrMissingWeight,
	ErrNonFiniteWeight,
	ErrCombinationLimit,
	ErrInvalidOption,
}

// IsInputError reports whether err was caused by invalid input or options.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsInternalError reports whether err signals an internal defect rather than
// bad input.
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternalInvariant)
}
