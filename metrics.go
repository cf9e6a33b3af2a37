package phastar

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/phastar/model"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordSearch is called after each search job. outcome carries the
	// expansion counters; err is nil unless the job failed outright.
	RecordSearch(outcome model.Outcome, duration time.Duration, err error)

	// RecordSolve is called after each Solve call. jobs is the number of
	// submitted jobs, solved the number that found a solution.
	RecordSolve(jobs, solved int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSearch(model.Outcome, time.Duration, error) {}
func (NoopMetricsCollector) RecordSolve(int, int, time.Duration)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchSolved     atomic.Int64
	SearchTotalNanos atomic.Int64
	Expansions       atomic.Int64
	Generated        atomic.Int64
	SolveCount       atomic.Int64
	SolveJobs        atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(outcome model.Outcome, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	if outcome.Solved {
		b.SearchSolved.Add(1)
	}
	b.Expansions.Add(int64(outcome.Expansions))
	b.Generated.Add(int64(outcome.Generated))
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(jobs, solved int, duration time.Duration) {
	b.SolveCount.Add(1)
	b.SolveJobs.Add(int64(jobs))
}

// AverageSearchDuration returns the mean per-job search duration.
func (b *BasicMetricsCollector) AverageSearchDuration() time.Duration {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.SearchTotalNanos.Load() / count)
}
