package phastar

import (
	"errors"
	"fmt"
)

var (
	// ErrNilEnvironment is returned by Solve when a job has no environment.
	ErrNilEnvironment = errors.New("phastar: job has nil environment")
	// ErrNilEvaluator is returned by Solve when a job has no evaluator.
	ErrNilEvaluator = errors.New("phastar: job has nil evaluator")
)

// ErrInvalidJob wraps a validation failure for one job, identified by its
// submission index. Jobs are validated before any of them enters the
// concurrent pipeline.
//
// The underlying cause can be accessed via errors.Unwrap.
type ErrInvalidJob struct {
	Index int
	cause error
}

func (e *ErrInvalidJob) Error() string {
	return fmt.Sprintf("invalid job %d: %v", e.Index, e.cause)
}

func (e *ErrInvalidJob) Unwrap() error { return e.cause }
