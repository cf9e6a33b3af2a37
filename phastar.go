package phastar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/phastar/model"
	"github.com/hupe1980/phastar/pool"
	"github.com/hupe1980/phastar/searcher"
)

// Job describes one search job: the initial environment state and the
// batch evaluator the job's scoring requests go through. Jobs sharing an
// evaluator serialize their scoring across it; assigning jobs across
// several evaluators spreads the load.
type Job struct {
	Env       searcher.Environment
	Evaluator searcher.Evaluator
}

// Solver runs search jobs on a fixed-size worker pool.
type Solver struct {
	opts       options
	searchOpts searcher.Options
}

// New creates a Solver.
func New(optFns ...Option) *Solver {
	opts := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	searchOpts := searcher.DefaultOptions()
	for _, fn := range opts.searchOptions {
		fn(&searchOpts)
	}

	return &Solver{
		opts:       opts,
		searchOpts: searchOpts,
	}
}

// Solve runs all jobs and returns one outcome per job, in submission
// order regardless of completion order. Jobs are validated before any of
// them enters the concurrent pipeline; a validation failure rejects the
// whole call without starting a single search.
//
// A search failure is fatal to that job only: its siblings run to
// completion and their outcomes are returned alongside the joined
// per-job errors. A failed job's outcome is the zero value.
func (s *Solver) Solve(ctx context.Context, jobs []Job) ([]model.Outcome, error) {
	if err := s.validate(jobs); err != nil {
		return nil, err
	}

	start := time.Now()

	type indexed struct {
		job   Job
		index int
	}
	inputs := make([]indexed, len(jobs))
	for i, job := range jobs {
		inputs[i] = indexed{job: job, index: i}
	}

	jobErrs := make([]error, len(jobs))

	outcomes, err := pool.Run(ctx, s.opts.workers, func(ctx context.Context, in indexed) (model.Outcome, error) {
		jobStart := time.Now()
		outcome, err := searcher.SearchWithOptions(ctx, in.job.Env, in.job.Evaluator, s.searchOpts)
		s.opts.logger.LogSearch(in.index, outcome, time.Since(jobStart), err)
		s.opts.metrics.RecordSearch(outcome, time.Since(jobStart), err)
		if err != nil {
			// Recorded per job rather than returned, so the failure
			// does not cancel the siblings through the pool.
			jobErrs[in.index] = fmt.Errorf("job %d: %w", in.index, err)
			return model.Outcome{}, nil
		}
		return outcome, nil
	}, inputs)
	if err != nil {
		// Only cancellation of ctx can reach the pool itself.
		return nil, err
	}

	solved := 0
	for _, o := range outcomes {
		if o.Solved {
			solved++
		}
	}
	s.opts.logger.LogSolve(len(jobs), solved, time.Since(start))
	s.opts.metrics.RecordSolve(len(jobs), solved, time.Since(start))

	return outcomes, errors.Join(jobErrs...)
}

func (s *Solver) validate(jobs []Job) error {
	if err := s.searchOpts.Validate(); err != nil {
		return err
	}
	for i, job := range jobs {
		if job.Env == nil {
			return &ErrInvalidJob{Index: i, cause: ErrNilEnvironment}
		}
		if job.Evaluator == nil {
			return &ErrInvalidJob{Index: i, cause: ErrNilEvaluator}
		}
	}
	return nil
}
