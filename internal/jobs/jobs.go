// Package jobs runs partition searches asynchronously.
//
// A Manager keeps jobs in memory, runs at most MaxConcurrent of them at a
// time, cancels them through their context (the search polls it between
// tuple evaluations) and drops finished jobs after ResultTTL.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvpart/internal/metrics"
	"github.com/katalvlaran/lvpart/partition"
)

// Status is the lifecycle position of a job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether s is a final status.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCanceled
}

var (
	// ErrNotFound is returned for unknown or expired job ids.
	ErrNotFound = errors.New("jobs: job not found")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("jobs: manager closed")
)

// Request is one search to run.
type Request struct {
	Weights []float64
	Labels  []string
	K       int
	Options []partition.Option // appended after the manager's base options
}

// Progress mirrors partition.Progress for JSON.
type Progress struct {
	Visited uint64 `json:"visited"`
	Total   uint64 `json:"total"`
}

// Job is a snapshot of one asynchronous search.
type Job struct {
	ID         string                    `json:"id"`
	Status     Status                    `json:"status"`
	Items      int                       `json:"items"`
	K          int                       `json:"k"`
	Progress   Progress                  `json:"progress"`
	Result     *partition.Result[string] `json:"result,omitempty"`
	Error      string                    `json:"error,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	StartedAt  *time.Time                `json:"started_at,omitempty"`
	FinishedAt *time.Time                `json:"finished_at,omitempty"`

	err error // original error, kept for classification
}

// Err returns the error the job failed with, if any.
func (j Job) Err() error { return j.err }

// Solver runs one search. The default calls partition.Solve.
type Solver func(ctx context.Context, req Request, opts []partition.Option) (partition.Result[string], error)

// Config tunes a Manager.
type Config struct {
	MaxConcurrent   int
	JobTimeout      time.Duration
	ResultTTL       time.Duration
	CleanupInterval time.Duration
	BaseOptions     []partition.Option // applied before every request's options
	Solver          Solver             // nil means partition.Solve
}

// entry is the mutable record behind a Job.
type entry struct {
	job    Job
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager handles background search jobs.
type Manager struct {
	cfg     Config
	log     zerolog.Logger
	metrics *metrics.Collector // may be nil

	mu     sync.RWMutex
	jobs   map[string]*entry
	closed bool

	slots chan struct{}
	wg    sync.WaitGroup
	stop  chan struct{}
	now   func() time.Time
}

// NewManager creates a manager and starts its cleanup loop.
func NewManager(cfg Config, log zerolog.Logger, m *metrics.Collector) *Manager {
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.Solver == nil {
		cfg.Solver = solve
	}
	mgr := &Manager{
		cfg:     cfg,
		log:     log.With().Str("component", "jobs").Logger(),
		metrics: m,
		jobs:    make(map[string]*entry),
		slots:   make(chan struct{}, cfg.MaxConcurrent),
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	if cfg.CleanupInterval > 0 && cfg.ResultTTL > 0 {
		mgr.wg.Add(1)
		go mgr.cleanupLoop()
	}

	return mgr
}

// solve is the default Solver.
func solve(_ context.Context, req Request, opts []partition.Option) (partition.Result[string], error) {
	return partition.Solve(req.Weights, req.Labels, req.K, opts...)
}

// Submit queues req and returns the queued job.
func (m *Manager) Submit(req Request) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Job{}, ErrClosed
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if m.cfg.JobTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), m.cfg.JobTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	e := &entry{
		job: Job{
			ID:        uuid.New().String(),
			Status:    StatusQueued,
			Items:     len(req.Weights),
			K:         req.K,
			CreatedAt: m.now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.jobs[e.job.ID] = e

	m.log.Info().
		Str("job_id", e.job.ID).
		Int("items", e.job.Items).
		Int("k", req.K).
		Msg("Job submitted")

	m.wg.Add(1)
	go m.process(ctx, e, req)

	return e.job, nil
}

// Get returns a snapshot of the job.
func (m *Manager) Get(id string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.jobs[id]
	if !ok {
		return Job{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return e.job, nil
}

// List returns snapshots of all jobs, oldest first.
func (m *Manager) List() []Job {
	m.mu.RLock()
	out := make([]Job, 0, len(m.jobs))
	for _, e := range m.jobs {
		out = append(out, e.job)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out
}

// Cancel stops a queued or running job. Finished jobs are returned unchanged.
func (m *Manager) Cancel(id string) (Job, error) {
	m.mu.Lock()
	e, ok := m.jobs[id]
	if !ok {
		m.mu.Unlock()
		return Job{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if e.job.Status == StatusQueued {
		// Never started: finish it here so it never takes a slot.
		m.finishLocked(e, nil, fmt.Errorf("%w: %w", partition.ErrCanceled, context.Canceled))
	}
	job := e.job
	m.mu.Unlock()

	e.cancel()
	m.log.Info().Str("job_id", id).Msg("Job cancel requested")

	return job, nil
}

// Wait blocks until the job is finished or ctx is done.
func (m *Manager) Wait(ctx context.Context, id string) (Job, error) {
	m.mu.RLock()
	e, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return Job{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return e.job, nil
}

// Close cancels every job, stops the cleanup loop and waits for workers.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for _, e := range m.jobs {
		e.cancel()
	}
	m.mu.Unlock()

	close(m.stop)
	m.wg.Wait()
}

// process waits for a slot, runs the search and records the outcome.
func (m *Manager) process(ctx context.Context, e *entry, req Request) {
	defer m.wg.Done()
	defer e.cancel()

	// Acquire worker slot
	select {
	case m.slots <- struct{}{}:
	case <-ctx.Done():
		m.finish(e, nil, fmt.Errorf("%w: %w", partition.ErrCanceled, ctx.Err()))
		return
	}
	defer func() { <-m.slots }()

	if !m.start(e) {
		return
	}
	if m.metrics != nil {
		m.metrics.JobsInflight.Inc()
		defer m.metrics.JobsInflight.Dec()
	}

	opts := make([]partition.Option, 0, len(m.cfg.BaseOptions)+len(req.Options)+2)
	opts = append(opts, m.cfg.BaseOptions...)
	opts = append(opts, req.Options...)
	opts = append(opts,
		partition.WithContext(ctx),
		partition.WithProgress(0, func(p partition.Progress) { m.progress(e, p) }),
	)

	began := m.now()
	res, err := m.cfg.Solver(ctx, req, opts)
	if m.metrics != nil {
		m.metrics.ObserveSearch(err, res.CombinationsSearched, m.now().Sub(began))
	}
	if err != nil {
		m.finish(e, nil, err)
		return
	}
	m.finish(e, &res, nil)
}

// start moves a queued job to running; false if it was canceled meanwhile.
func (m *Manager) start(e *entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.job.Status != StatusQueued {
		return false
	}
	now := m.now()
	e.job.Status = StatusRunning
	e.job.StartedAt = &now

	m.log.Debug().Str("job_id", e.job.ID).Msg("Job processing started")

	return true
}

// progress records the latest counters. Visited never goes backwards.
func (m *Manager) progress(e *entry, p partition.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.Visited > e.job.Progress.Visited {
		e.job.Progress.Visited = p.Visited
	}
	e.job.Progress.Total = p.Total
}

// finish records the outcome once.
func (m *Manager) finish(e *entry, res *partition.Result[string], err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finishLocked(e, res, err)
}

func (m *Manager) finishLocked(e *entry, res *partition.Result[string], err error) {
	if e.job.Status.Terminal() {
		return
	}
	now := m.now()
	e.job.FinishedAt = &now

	switch {
	case err == nil:
		e.job.Status = StatusSucceeded
		e.job.Result = res
		e.job.Progress = Progress{Visited: res.CombinationsSearched, Total: res.CombinationsSearched}
		m.log.Info().
			Str("job_id", e.job.ID).
			Uint64("combinations", res.CombinationsSearched).
			Float64("minimum_variance", res.MinimumVariance).
			Bool("ties", res.Ties).
			Msg("Job completed successfully")
	case errors.Is(err, partition.ErrCanceled):
		e.job.Status = StatusCanceled
		e.job.Error = err.Error()
		e.job.err = err
		m.log.Info().Str("job_id", e.job.ID).Err(err).Msg("Job canceled")
	default:
		e.job.Status = StatusFailed
		e.job.Error = err.Error()
		e.job.err = err
		m.log.Error().Str("job_id", e.job.ID).Err(err).Msg("Job failed")
	}
	close(e.done)
}

// cleanupLoop periodically drops expired jobs.
func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup()
		case <-m.stop:
			return
		}
	}
}

// Cleanup removes finished jobs older than ResultTTL and returns how many.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.cfg.ResultTTL)
	cleaned := 0
	for id, e := range m.jobs {
		if e.job.Status.Terminal() && e.job.FinishedAt != nil && e.job.FinishedAt.Before(cutoff) {
			delete(m.jobs, id)
			cleaned++
		}
	}
	if cleaned > 0 {
		m.log.Info().Int("cleaned_jobs", cleaned).Msg("Job cleanup completed")
	}

	return cleaned
}
