// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// search.go - the exhaustive minimum-variance search driver.
//
// States: StateInitialized -> StateEnumerating -> StateDone (or StateFailed).
//
// Per tuple:
//  1. score the tuple (group sums + variance) with the scorer;
//  2. compare against the running minimum with tolerance ε:
//     |v-min| < ε (or v == min)  -> tie: set Ties, keep the first best tuple;
//     v < min-ε                  -> strictly better: clear Ties, replace best;
//     otherwise                  -> no change;
//  3. count the tuple.
//
// The loop tests for the last tuple before scoring it, so the all-maxima
// tuple is scored and then the loop exits. After the loop the minimum must be
// strictly below the sentinel, else ErrInternalInvariant.
//
// Cancellation: Options.Ctx is polled every Options.CheckEvery tuples.
//
// Complexity: O(C(N-1,K-1)·K) time, O(N+K) memory.

package partition

import (
	"context"
	"fmt"
	"math"
)

// Search holds one minimum-variance search over a fixed input.
// It is not safe for concurrent use; Run may be called again and restarts
// from StateInitialized.
type Search[L any] struct {
	weights []float64
	labels  []L
	k       int
	opts    Options
	state   State
}

// NewSearch returns a Search in StateInitialized. Input is validated by Run.
func NewSearch[L any](weights []float64, labels []L, k int, opts ...Option) *Search[L] {
	return &Search[L]{
		weights: weights,
		labels:  labels,
		k:       k,
		opts:    gatherOptions(opts...),
		state:   StateInitialized,
	}
}

// State returns the lifecycle position of the last Run.
func (s *Search[L]) State() State { return s.state }

// Options returns the resolved options.
func (s *Search[L]) Options() Options { return s.opts }

// Solve validates the input, enumerates every cut tuple and returns the
// minimum-variance partition of weights/labels into k contiguous groups.
//
// Errors:
//   - ErrInvalidGroupCount, ErrLengthMismatch, ErrMissingWeight,
//     ErrNonFiniteWeight, ErrCombinationLimit, ErrInvalidOption (bad input);
//   - ErrCanceled (context done; wraps the context error);
//   - ErrInternalInvariant (no tuple ever beat the sentinel).
func Solve[L any](weights []float64, labels []L, k int, opts ...Option) (Result[L], error) {
	return NewSearch(weights, labels, k, opts...).Run()
}

// Run executes the search. No partial result is returned on error.
func (s *Search[L]) Run() (Result[L], error) {
	s.state = StateInitialized

	total, err := validateInput(s.weights, len(s.labels), s.k, s.opts)
	if err != nil {
		s.state = StateFailed
		return Result[L]{}, err
	}
	s.state = StateEnumerating

	var best *tracker
	if s.opts.Workers > 1 && total > 1 {
		best, err = s.runParallel(total)
	} else {
		best, err = s.runSequential(total)
	}
	if err != nil {
		s.state = StateFailed
		return Result[L]{}, err
	}

	res, err := s.extract(best, total)
	if err != nil {
		s.state = StateFailed
		return Result[L]{}, err
	}
	s.state = StateDone

	return res, nil
}

// runSequential scores every tuple in lexicographic order on one goroutine.
func (s *Search[L]) runSequential(total uint64) (*tracker, error) {
	e, err := NewEnumerator(len(s.weights)-1, s.k-1)
	if err != nil {
		return nil, err
	}
	var (
		sc    = newScorer(s.weights, s.k, s.opts.Variance)
		t     = newTracker(s.k, s.opts.Epsilon, s.opts.Sentinel)
		ctx   = s.opts.Ctx
		every = s.opts.CheckEvery
		since uint64 // tuples scored since the last poll
		last  bool   // current tuple is the all-maxima tuple
	)
	for !last {
		last = e.Last()

		t.observe(sc.score(e.Tuple()), e.Tuple(), sc.sums, e.Rank())

		since++
		if since == every {
			since = 0
			if err = pollContext(ctx); err != nil {
				return nil, err
			}
			s.report(t.visited, total)
		}

		if !last {
			e.Next()
		}
	}
	s.report(t.visited, total)

	return t, nil
}

// extract checks the post-conditions and builds the Result.
func (s *Search[L]) extract(t *tracker, total uint64) (Result[L], error) {
	if !t.found || !(t.min < s.opts.Sentinel) {
		return Result[L]{}, fmt.Errorf("minimum %v not below sentinel %v: %w",
			t.min, s.opts.Sentinel, ErrInternalInvariant)
	}
	if t.visited != total {
		return Result[L]{}, fmt.Errorf("visited %d of %d combinations: %w",
			t.visited, total, ErrInternalInvariant)
	}

	cuts := make([]int, len(t.best))
	copy(cuts, t.best)
	sums := make([]float64, len(t.bestSums))
	copy(sums, t.bestSums)

	return Result[L]{
		CombinationsSearched: t.visited,
		Ties:                 t.ties,
		MinimumVariance:      t.min,
		GroupSampleSizes:     sums,
		GroupMembership:      Materialize(s.labels, cuts),
		Cuts:                 cuts,
	}, nil
}

// report forwards progress to the hook, if any.
func (s *Search[L]) report(visited, total uint64) {
	if s.opts.OnProgress != nil {
		s.opts.OnProgress(Progress{Visited: visited, Total: total})
	}
}

// pollContext converts a done context into ErrCanceled.
func pollContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	return nil
}

// tracker is the tie-aware running minimum.
type tracker struct {
	eps      float64
	min      float64
	ties     bool
	found    bool // min has been replaced at least once
	bestRank uint64
	best     []int
	bestSums []float64
	visited  uint64
}

// newTracker starts a tracker at the sentinel.
func newTracker(k int, eps, sentinel float64) *tracker {
	return &tracker{
		eps:      eps,
		min:      sentinel,
		best:     make([]int, k-1),
		bestSums: make([]float64, k),
	}
}

// tied reports whether a and b are within the tie tolerance. Exact equality
// is always a tie, including when eps is 0.
func (t *tracker) tied(a, b float64) bool {
	return a == b || math.Abs(a-b) < t.eps
}

// observe applies one scored tuple.
func (t *tracker) observe(v float64, cuts []int, sums []float64, rank uint64) {
	switch {
	case t.tied(v, t.min):
		t.ties = true
	case v < t.min-t.eps:
		t.ties = false
		t.min = v
		t.found = true
		t.bestRank = rank
		copy(t.best, cuts)
		copy(t.bestSums, sums)
	}
	t.visited++
}

// merge folds a partial result that comes after t in rank order into t,
// applying the same tolerance rule as observe.
func (t *tracker) merge(o *tracker) {
	t.visited += o.visited
	if !o.found {
		if o.ties && !t.found {
			t.ties = true
		}
		return
	}

	switch {
	case t.tied(o.min, t.min):
		t.ties = true
	case o.min < t.min-t.eps:
		t.ties = o.ties
		t.min = o.min
		t.found = true
		t.bestRank = o.bestRank
		copy(t.best, o.best)
		copy(t.bestSums, o.bestSums)
	}
}
