// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// types.go - options, states and result types for the minimum-variance
// contiguous partition search.

package partition

import (
	"context"
	"fmt"
	"math"
)

// Numeric policy defaults.
const (
	// DefaultEpsilon is the absolute tolerance under which two variances are
	// considered tied.
	DefaultEpsilon = 1e-7

	// LegacySentinel is the historical "no minimum yet" value. It can be passed
	// through WithSentinel to keep the legacy ceiling on the minimum.
	LegacySentinel = 9999999.9

	// DefaultCheckEvery is how many tuples are scored between two context checks.
	DefaultCheckEvery = 4096
)

// DefaultSentinel is the initial minimum when no sentinel is supplied. +Inf
// guarantees that the first scored tuple always becomes the incumbent.
//
// This differs from the legacy finite ceiling LegacySentinel (9,999,999.9):
// with +Inf a minimum variance above that ceiling is returned instead of
// failing with ErrInternalInvariant. Pass WithSentinel(LegacySentinel) for the
// legacy behaviour.
var DefaultSentinel = math.Inf(1)

// VarianceKind selects the denominator used to compute the variance of group sums.
type VarianceKind int

const (
	// Sample divides by K-1 (default).
	Sample VarianceKind = iota

	// Population divides by K.
	Population
)

// String returns "sample" or "population".
func (k VarianceKind) String() string {
	switch k {
	case Sample:
		return "sample"
	case Population:
		return "population"
	default:
		return "unknown"
	}
}

// ParseVarianceKind maps "sample" / "population" onto a VarianceKind.
func ParseVarianceKind(s string) (VarianceKind, error) {
	switch s {
	case "", "sample":
		return Sample, nil
	case "population", "pop":
		return Population, nil
	default:
		return Sample, fmt.Errorf("variance kind %q: %w", s, ErrInvalidOption)
	}
}

// State is the lifecycle position of a Search.
type State int

const (
	StateInitialized State = iota // created, nothing validated yet
	StateEnumerating              // input validated, tuples being scored
	StateDone                     // enumeration exhausted, result extracted
	StateFailed                   // validation, cancellation or invariant failure
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateEnumerating:
		return "enumerating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress is handed to the progress hook while a search runs.
type Progress struct {
	Visited uint64 // tuples scored so far (summed across workers)
	Total   uint64 // C(N-1, K-1)
}

// Option configures a Search. Use with Solve(weights, labels, k, opts...).
type Option func(*Options)

// Options holds the resolved configuration of one search.
type Options struct {
	// Ctx allows cancellation between tuple evaluations; defaults to Background.
	Ctx context.Context

	// Epsilon is the absolute tie tolerance (>= 0).
	Epsilon float64

	// Sentinel is the initial minimum; the final minimum must be strictly below it.
	Sentinel float64

	// Variance selects the sample (K-1) or population (K) convention.
	Variance VarianceKind

	// Workers > 1 enables the parallel reduction. 0 and 1 mean sequential.
	Workers int

	// MaxCombinations rejects inputs whose C(N-1, K-1) exceeds it. 0 = unlimited.
	MaxCombinations uint64

	// CheckEvery is the number of tuples between context checks and progress calls.
	CheckEvery uint64

	// OnProgress, if non-nil, is called every CheckEvery tuples and once at the end.
	// It may be called from several goroutines when Workers > 1.
	OnProgress func(Progress)

	// err records the first invalid option value.
	err error
}

// DefaultOptions returns Options with:
//   - Background context
//   - Epsilon = DefaultEpsilon
//   - Sentinel = +Inf
//   - Sample variance
//   - sequential search, no combination limit, no progress hook
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Epsilon:         DefaultEpsilon,
		Sentinel:        DefaultSentinel,
		Variance:        Sample,
		Workers:         1,
		MaxCombinations: 0,
		CheckEvery:      DefaultCheckEvery,
		OnProgress:      nil,
	}
}

// invalid stores the first option violation; later ones are ignored.
func (o *Options) invalid() {
	if o.err == nil {
		o.err = ErrInvalidOption
	}
}

// WithContext sets the cancellation context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithEpsilon sets the tie tolerance. Negative or non-finite values are invalid.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			o.invalid()
			return
		}
		o.Epsilon = eps
	}
}

// WithSentinel sets the initial "no minimum found yet" value. NaN is invalid.
func WithSentinel(v float64) Option {
	return func(o *Options) {
		if math.IsNaN(v) {
			o.invalid()
			return
		}
		o.Sentinel = v
	}
}

// WithVarianceKind selects the variance convention.
func WithVarianceKind(k VarianceKind) Option {
	return func(o *Options) {
		if k != Sample && k != Population {
			o.invalid()
			return
		}
		o.Variance = k
	}
}

// WithWorkers sets the number of parallel workers. n < 0 is invalid.
//
// The rank space is split into contiguous chunks whose partial results are
// merged in rank order, so exactly equal or clearly separated minima give the
// same Cuts, MinimumVariance and Ties as the sequential scan. A chain of
// variances that differ pairwise by less than the tie tolerance but drift
// across a chunk boundary can be resolved differently; use 0 or 1 workers
// when that sub-epsilon case must match the sequential result exactly.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.invalid()
			return
		}
		o.Workers = n
	}
}

// WithMaxCombinations caps C(N-1, K-1); 0 disables the cap.
func WithMaxCombinations(limit uint64) Option {
	return func(o *Options) {
		o.MaxCombinations = limit
	}
}

// WithProgress installs fn, called every `every` tuples. every == 0 keeps the
// current CheckEvery.
func WithProgress(every uint64, fn func(Progress)) Option {
	return func(o *Options) {
		if every > 0 {
			o.CheckEvery = every
		}
		o.OnProgress = fn
	}
}

// gatherOptions applies opts over DefaultOptions.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.CheckEvery == 0 {
		o.CheckEvery = DefaultCheckEvery
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}

	return o
}

// Result is the immutable outcome of a search.
type Result[L any] struct {
	// CombinationsSearched is the number of cut tuples scored; always C(N-1, K-1).
	CombinationsSearched uint64 `json:"combinations_searched"`

	// Ties is true when at least two distinct tuples scored within Epsilon of the minimum.
	Ties bool `json:"ties"`

	// MinimumVariance is the variance of the group sums at the best tuple.
	MinimumVariance float64 `json:"minimum_variance"`

	// GroupSampleSizes holds the K group weight sums at the best tuple.
	GroupSampleSizes []float64 `json:"group_sample_sizes"`

	// GroupMembership holds the K label groups at the best tuple, in input order.
	GroupMembership [][]L `json:"group_membership"`

	// Cuts is the best cut tuple (index of the last item of every group but the last).
	Cuts []int `json:"cuts"`
}
