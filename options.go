package phastar

import (
	"github.com/hupe1980/phastar/searcher"
)

type options struct {
	workers       int
	logger        *Logger
	metrics       MetricsCollector
	searchOptions []searcher.Option
}

// Option configures Solver behavior.
type Option func(*options)

// WithWorkers sets the number of pool workers that run search jobs in
// parallel. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithSearchOptions sets the per-job search options applied to every job.
//
// Example:
//
//	phastar.New(
//	    phastar.WithSearchOptions(
//	        searcher.WithNodeBudget(5000),
//	        searcher.WithBatchSize(64),
//	    ),
//	)
func WithSearchOptions(optFns ...searcher.Option) Option {
	return func(o *options) {
		o.searchOptions = append(o.searchOptions, optFns...)
	}
}
