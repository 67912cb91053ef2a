// SPDX-License-Identifier: MIT
// Package: lvpart/partition
//
// parallel.go - parallel reduction over the combinatorial index space.
//
// The rank range [0, C(N-1,K-1)) is split into contiguous chunks. Every chunk
// is scored by its own Enumerator (Seek to the chunk start), scorer and
// tracker. Partials are folded in ascending chunk order with the same ε rule
// as the sequential loop, so the retained tuple is the lowest combinatorial
// index at the minimum, independent of which worker finished first.
//
// Ties are exact whenever the variances at the minimum are exactly equal or
// clearly separated; a chain of values drifting by less than ε across chunk
// boundaries can be classified differently from the sequential scan.

package partition

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker oversubscribes workers so that uneven chunks even out.
const chunksPerWorker = 4

// chunk is a contiguous rank interval [start, start+count).
type chunk struct {
	start uint64
	count uint64
}

// splitRanks cuts [0, total) into at most parts contiguous, non-empty chunks
// whose sizes differ by at most one.
func splitRanks(total uint64, parts int) []chunk {
	if parts < 1 {
		parts = 1
	}
	if uint64(parts) > total {
		parts = int(total)
	}
	var (
		out   = make([]chunk, parts)
		size  = total / uint64(parts)
		extra = total % uint64(parts) // first `extra` chunks get one more rank
		start uint64
	)
	for i := range out {
		n := size
		if uint64(i) < extra {
			n++
		}
		out[i] = chunk{start: start, count: n}
		start += n
	}

	return out
}

// runParallel scores all tuples with opts.Workers goroutines.
func (s *Search[L]) runParallel(total uint64) (*tracker, error) {
	var (
		chunks   = splitRanks(total, s.opts.Workers*chunksPerWorker)
		partials = make([]*tracker, len(chunks))
		visited  atomic.Uint64 // shared progress counter
	)

	g, ctx := errgroup.WithContext(s.opts.Ctx)
	g.SetLimit(s.opts.Workers)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			t, err := s.scanChunk(ctx, c, &visited, total)
			if err != nil {
				return err
			}
			partials[i] = t

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fold in rank order starting from the sentinel.
	best := newTracker(s.k, s.opts.Epsilon, s.opts.Sentinel)
	for _, p := range partials {
		best.merge(p)
	}
	s.report(best.visited, total)

	return best, nil
}

// scanChunk scores c.count tuples starting at rank c.start.
func (s *Search[L]) scanChunk(ctx context.Context, c chunk, visited *atomic.Uint64, total uint64) (*tracker, error) {
	e, err := NewEnumerator(len(s.weights)-1, s.k-1)
	if err != nil {
		return nil, err
	}
	if err = e.Seek(c.start); err != nil {
		return nil, err
	}

	var (
		sc    = newScorer(s.weights, s.k, s.opts.Variance)
		t     = newTracker(s.k, s.opts.Epsilon, s.opts.Sentinel)
		every = s.opts.CheckEvery
		since uint64
	)
	for i := uint64(0); i < c.count; i++ {
		if i > 0 {
			e.Next()
		}
		t.observe(sc.score(e.Tuple()), e.Tuple(), sc.sums, e.Rank())

		since++
		if since == every {
			if err = pollContext(ctx); err != nil {
				return nil, err
			}
			s.report(visited.Add(since), total)
			since = 0
		}
	}
	visited.Add(since)

	return t, nil
}
