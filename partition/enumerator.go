// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// enumerator.go - lexicographic generator of strictly increasing k-tuples over [0, n).
//
// Contract:
//   - The first tuple is (0, 1, ..., k-1); the last is (n-k, ..., n-1).
//   - Position i has maximum n-k+i.
//   - Next() applies the standard successor: the rightmost position below its
//     maximum is incremented and every position to its right is reset to
//     (left neighbour + 1). When no position can move, enumeration is exhausted.
//   - The last tuple is still yielded: callers score Tuple() first and then ask
//     Next() whether another tuple exists.
//   - Exactly C(n, k) tuples are yielded, none repeated, in strictly increasing
//     lexicographic (combinatorial number system) order.
//
// In partition terms n = N-1 cut slots and k = K-1 cut-points.
//
// Complexity:
//   - Next: amortised O(1), worst case O(k).
//   - Seek: O(n·k) binomial evaluations.

package partition

import (
	"fmt"
	"math/bits"
)

// Enumerator owns the current tuple and its per-position maxima.
// It is not safe for concurrent use; the parallel driver gives every worker
// its own Enumerator.
type Enumerator struct {
	n, k   int
	tuple  []int
	maxima []int
	rank   uint64 // lexicographic index of tuple
	total  uint64 // C(n, k)
}

// NewEnumerator returns an Enumerator positioned on the first tuple.
// It requires 1 <= k <= n and C(n, k) to fit in a uint64.
func NewEnumerator(n, k int) (*Enumerator, error) {
	if k < 1 || k > n {
		return nil, fmt.Errorf("enumerator k=%d n=%d: %w", k, n, ErrInvalidGroupCount)
	}
	total, err := Count(n, k)
	if err != nil {
		return nil, err
	}

	e := &Enumerator{
		n:      n,
		k:      k,
		tuple:  make([]int, k),
		maxima: make([]int, k),
		total:  total,
	}
	for i := 0; i < k; i++ {
		e.maxima[i] = n - k + i
	}
	e.Reset()

	return e, nil
}

// Reset rewinds to the first tuple (0, 1, ..., k-1).
func (e *Enumerator) Reset() {
	for i := range e.tuple {
		e.tuple[i] = i
	}
	e.rank = 0
}

// Tuple returns the current tuple. The slice is owned by the Enumerator and
// is overwritten by Next, Seek and Reset; copy it to keep it.
func (e *Enumerator) Tuple() []int { return e.tuple }

// Maxima returns the per-position upper bounds (read-only view).
func (e *Enumerator) Maxima() []int { return e.maxima }

// Rank returns the lexicographic index of the current tuple.
func (e *Enumerator) Rank() uint64 { return e.rank }

// Total returns C(n, k).
func (e *Enumerator) Total() uint64 { return e.total }

// Last reports whether the current tuple equals the all-maxima tuple.
// Since tuples are strictly increasing, the first position decides.
func (e *Enumerator) Last() bool { return e.tuple[0] == e.maxima[0] }

// Next advances to the successor tuple. It returns false, leaving the tuple
// unchanged, when the current tuple is the last one.
func (e *Enumerator) Next() bool {
	if e.Last() {
		return false
	}

	// Find the rightmost position that can still move.
	r := e.k - 1
	for e.tuple[r] == e.maxima[r] {
		r--
	}
	e.tuple[r]++
	for i := r + 1; i < e.k; i++ {
		e.tuple[i] = e.tuple[i-1] + 1
	}
	e.rank++

	return true
}

// Seek positions the Enumerator on the tuple with the given lexicographic rank.
//
// Unranking walks positions left to right: for candidate value v at position
// i, C(n-1-v, k-1-i) tuples share that prefix; skip whole blocks until rank
// falls inside one.
func (e *Enumerator) Seek(rank uint64) error {
	if rank >= e.total {
		return fmt.Errorf("seek rank %d of %d: %w", rank, e.total, ErrInvalidOption)
	}

	var (
		rest  = rank // rank remaining inside the current block
		start = 0    // smallest admissible value at position i
		block uint64 // tuples sharing the candidate prefix
	)
	for i := 0; i < e.k; i++ {
		for v := start; ; v++ {
			block, _ = binomial(e.n-1-v, e.k-1-i) // fits: block <= total
			if rest < block {
				e.tuple[i] = v
				start = v + 1
				break
			}
			rest -= block
		}
	}
	e.rank = rank

	return nil
}

// Count returns C(n, k) for 0 <= k <= n, or ErrCombinationLimit when the
// value does not fit in a uint64.
func Count(n, k int) (uint64, error) {
	if n < 0 || k < 0 || k > n {
		return 0, fmt.Errorf("count C(%d,%d): %w", n, k, ErrInvalidGroupCount)
	}
	c, ok := binomial(n, k)
	if !ok {
		return 0, fmt.Errorf("count C(%d,%d) overflows uint64: %w", n, k, ErrCombinationLimit)
	}

	return c, nil
}

// binomial computes C(n, k) with the multiplicative formula, reporting
// overflow. C(n, i)·(n-i) is always divisible by i+1, so every step is exact.
func binomial(n, k int) (uint64, bool) {
	if k < 0 || n < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}

	var (
		c      uint64 = 1
		hi, lo uint64
	)
	for i := 0; i < k; i++ {
		hi, lo = bits.Mul64(c, uint64(n-i))
		d := uint64(i + 1)
		if hi >= d {
			return 0, false // quotient would not fit
		}
		c, _ = bits.Div64(hi, lo, d)
	}

	return c, true
}
