package jobs_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpart/internal/jobs"
	"github.com/katalvlaran/lvpart/internal/metrics"
	"github.com/katalvlaran/lvpart/partition"
)

const waitFor = 5 * time.Second

// blockingSolver runs until its context is done.
func blockingSolver(ctx context.Context, _ jobs.Request, _ []partition.Option) (partition.Result[string], error) {
	<-ctx.Done()
	return partition.Result[string]{}, fmt.Errorf("%w: %w", partition.ErrCanceled, ctx.Err())
}

func newManager(t *testing.T, cfg jobs.Config, m *metrics.Collector) *jobs.Manager {
	t.Helper()
	mgr := jobs.NewManager(cfg, zerolog.Nop(), m)
	t.Cleanup(mgr.Close)
	return mgr
}

func wait(t *testing.T, mgr *jobs.Manager, id string) jobs.Job {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	job, err := mgr.Wait(ctx, id)
	require.NoError(t, err)
	return job
}

func TestManager_Succeeds(t *testing.T) {
	m := metrics.NewCollector("test")
	mgr := newManager(t, jobs.Config{MaxConcurrent: 2}, m)

	queued, err := mgr.Submit(jobs.Request{
		Weights: []float64{4, 4, 4, 4},
		Labels:  []string{"a", "b", "c", "d"},
		K:       2,
	})
	require.NoError(t, err)
	require.Equal(t, jobs.StatusQueued, queued.Status)
	require.NotEmpty(t, queued.ID)
	require.Equal(t, 4, queued.Items)

	job := wait(t, mgr, queued.ID)
	require.Equal(t, jobs.StatusSucceeded, job.Status)
	require.NotNil(t, job.Result)
	require.Equal(t, []float64{8, 8}, job.Result.GroupSampleSizes)
	require.Equal(t, jobs.Progress{Visited: 3, Total: 3}, job.Progress)
	require.NotNil(t, job.StartedAt)
	require.NotNil(t, job.FinishedAt)
	require.NoError(t, job.Err())

	require.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues(metrics.OutcomeOK)))
	require.Equal(t, 3.0, testutil.ToFloat64(m.CombinationsSearched))
	require.Equal(t, 0.0, testutil.ToFloat64(m.JobsInflight))
}

func TestManager_InputErrorFails(t *testing.T) {
	mgr := newManager(t, jobs.Config{MaxConcurrent: 1}, nil)

	queued, err := mgr.Submit(jobs.Request{Weights: []float64{1, 2}, Labels: []string{"a", "b"}, K: 5})
	require.NoError(t, err)

	job := wait(t, mgr, queued.ID)
	require.Equal(t, jobs.StatusFailed, job.Status)
	require.ErrorIs(t, job.Err(), partition.ErrInvalidGroupCount)
	require.Nil(t, job.Result)
	require.NotEmpty(t, job.Error)
}

func TestManager_BaseOptionsApply(t *testing.T) {
	mgr := newManager(t, jobs.Config{
		MaxConcurrent: 1,
		BaseOptions:   []partition.Option{partition.WithMaxCombinations(2)},
	}, nil)

	queued, err := mgr.Submit(jobs.Request{
		Weights: []float64{4, 4, 4, 4},
		Labels:  []string{"a", "b", "c", "d"},
		K:       2,
	})
	require.NoError(t, err)
	require.ErrorIs(t, wait(t, mgr, queued.ID).Err(), partition.ErrCombinationLimit)

	// Request options come after the base and may relax it.
	queued, err = mgr.Submit(jobs.Request{
		Weights: []float64{4, 4, 4, 4},
		Labels:  []string{"a", "b", "c", "d"},
		K:       2,
		Options: []partition.Option{partition.WithMaxCombinations(0)},
	})
	require.NoError(t, err)
	require.Equal(t, jobs.StatusSucceeded, wait(t, mgr, queued.ID).Status)
}

func TestManager_CancelRunning(t *testing.T) {
	mgr := newManager(t, jobs.Config{MaxConcurrent: 1, Solver: blockingSolver}, nil)

	queued, err := mgr.Submit(jobs.Request{K: 2})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		job, err := mgr.Get(queued.ID)
		return err == nil && job.Status == jobs.StatusRunning
	}, waitFor, time.Millisecond)

	_, err = mgr.Cancel(queued.ID)
	require.NoError(t, err)

	job := wait(t, mgr, queued.ID)
	require.Equal(t, jobs.StatusCanceled, job.Status)
	require.ErrorIs(t, job.Err(), partition.ErrCanceled)
	require.ErrorIs(t, job.Err(), context.Canceled)
}

func TestManager_CancelQueued(t *testing.T) {
	mgr := newManager(t, jobs.Config{MaxConcurrent: 1, Solver: blockingSolver}, nil)

	first, err := mgr.Submit(jobs.Request{K: 2})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		job, _ := mgr.Get(first.ID)
		return job.Status == jobs.StatusRunning
	}, waitFor, time.Millisecond)

	second, err := mgr.Submit(jobs.Request{K: 2})
	require.NoError(t, err)

	job, err := mgr.Cancel(second.ID)
	require.NoError(t, err)
	require.Equal(t, jobs.StatusCanceled, job.Status, "queued jobs are canceled immediately")
	require.Nil(t, job.StartedAt)

	_, err = mgr.Cancel(first.ID)
	require.NoError(t, err)
	require.Equal(t, jobs.StatusCanceled, wait(t, mgr, first.ID).Status)
}

func TestManager_Timeout(t *testing.T) {
	mgr := newManager(t, jobs.Config{MaxConcurrent: 1, JobTimeout: 20 * time.Millisecond, Solver: blockingSolver}, nil)

	queued, err := mgr.Submit(jobs.Request{K: 2})
	require.NoError(t, err)

	job := wait(t, mgr, queued.ID)
	require.Equal(t, jobs.StatusCanceled, job.Status)
	require.ErrorIs(t, job.Err(), context.DeadlineExceeded)
}

func TestManager_NotFound(t *testing.T) {
	mgr := newManager(t, jobs.Config{}, nil)

	_, err := mgr.Get("nope")
	require.ErrorIs(t, err, jobs.ErrNotFound)
	_, err = mgr.Cancel("nope")
	require.ErrorIs(t, err, jobs.ErrNotFound)
	_, err = mgr.Wait(context.Background(), "nope")
	require.ErrorIs(t, err, jobs.ErrNotFound)
}

func TestManager_CleanupAndList(t *testing.T) {
	mgr := newManager(t, jobs.Config{MaxConcurrent: 2, ResultTTL: time.Millisecond}, nil)

	var ids []string
	for i := 0; i < 3; i++ {
		job, err := mgr.Submit(jobs.Request{Weights: []float64{1, 2, 3}, Labels: []string{"a", "b", "c"}, K: 2})
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}
	for _, id := range ids {
		wait(t, mgr, id)
	}

	list := mgr.List()
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		require.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, 3, mgr.Cleanup())
	require.Empty(t, mgr.List())
	_, err := mgr.Get(ids[0])
	require.ErrorIs(t, err, jobs.ErrNotFound)
}

func TestManager_Close(t *testing.T) {
	mgr := jobs.NewManager(jobs.Config{MaxConcurrent: 1, Solver: blockingSolver}, zerolog.Nop(), nil)

	queued, err := mgr.Submit(jobs.Request{K: 2})
	require.NoError(t, err)

	mgr.Close()
	job, err := mgr.Get(queued.ID)
	require.NoError(t, err)
	require.Equal(t, jobs.StatusCanceled, job.Status)

	_, err = mgr.Submit(jobs.Request{K: 2})
	require.ErrorIs(t, err, jobs.ErrClosed)
	mgr.Close() // idempotent
}
