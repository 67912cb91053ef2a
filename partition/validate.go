// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// validate.go - input validation performed before any enumeration.
//
// Order (first failure wins):
//  1. option values (ErrInvalidOption)
//  2. group count 2 <= k <= n (ErrInvalidGroupCount)
//  3. len(weights) == len(labels) (ErrLengthMismatch)
//  4. no NaN weight (ErrMissingWeight), no ±Inf weight (ErrNonFiniteWeight)
//  5. C(n-1, k-1) fits and respects MaxCombinations (ErrCombinationLimit)
//
// Deterministic, side-effect free, O(n).

package partition

import (
	"fmt"
	"math"
)

// validateInput checks everything the search relies on and returns the
// number of cut tuples C(n-1, k-1).
func validateInput(weights []float64, nLabels, k int, opts Options) (uint64, error) {
	// Stage 1: options.
	if opts.err != nil {
		return 0, opts.err
	}

	// Stage 2: group count against the weight sequence.
	n := len(weights)
	if k < 2 || k > n {
		return 0, fmt.Errorf("k=%d, n=%d: %w", k, n, ErrInvalidGroupCount)
	}

	// Stage 3: parallel sequences.
	if n != nLabels {
		return 0, fmt.Errorf("%d weights, %d labels: %w", n, nLabels, ErrLengthMismatch)
	}

	// Stage 4: weights.
	for i, w := range weights {
		if math.IsNaN(w) {
			return 0, fmt.Errorf("weight at index %d: %w", i, ErrMissingWeight)
		}
		if math.IsInf(w, 0) {
			return 0, fmt.Errorf("weight at index %d is %v: %w", i, w, ErrNonFiniteWeight)
		}
	}

	// Stage 5: search size.
	total, err := Count(n-1, k-1)
	if err != nil {
		return 0, err
	}
	if opts.MaxCombinations > 0 && total > opts.MaxCombinations {
		return 0, fmt.Errorf("C(%d,%d)=%d exceeds limit %d: %w",
			n-1, k-1, total, opts.MaxCombinations, ErrCombinationLimit)
	}

	return total, nil
}
