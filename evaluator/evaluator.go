package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/hupe1980/phastar/model"
	"github.com/hupe1980/phastar/queue"
)

var (
	// ErrClosed is returned by Infer when the evaluator has been closed,
	// including for requests still buffered at shutdown time.
	ErrClosed = errors.New("evaluator: closed")
	// ErrNilModel is returned by New when no model is given.
	ErrNilModel = errors.New("evaluator: nil model")
)

// Model is the scoring oracle. Given N observations of the environment's
// fixed shape it returns N inference outputs, out[i] matching obs[i].
//
// A Model is invoked exclusively by its evaluator's single worker
// goroutine and must be repeat-callable with no caller-visible side
// effects between calls besides internal device state.
type Model interface {
	Infer(obs []model.Observation) ([]model.Inference, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(obs []model.Observation) ([]model.Inference, error)

// Infer implements Model.
func (f ModelFunc) Infer(obs []model.Observation) ([]model.Inference, error) {
	return f(obs)
}

type response struct {
	outputs []model.Inference
	err     error
}

// request is one submitted batch plus its one-shot result channel.
type request struct {
	inputs []model.Observation
	result chan response
}

// Stats holds cumulative evaluator counters.
type Stats struct {
	Batches      uint64 // request groups served
	Observations uint64 // observations scored
	Errors       uint64 // model invocations that failed
}

type atomicStats struct {
	batches      atomic.Uint64
	observations atomic.Uint64
	errors       atomic.Uint64
}

// Options configures a Batch evaluator.
type Options struct {
	// QueueSize bounds the number of buffered request groups. Size it to
	// the expected number of concurrent callers; the default is
	// 4 * callers as passed to New.
	QueueSize int

	// Limiter optionally throttles model invocations, e.g. to keep a
	// shared accelerator within a power or thermal envelope. Nil means
	// unlimited.
	Limiter *rate.Limiter

	// Logger receives worker lifecycle and failure logs. Nil disables
	// logging.
	Logger *slog.Logger
}

// Option customizes evaluator options.
type Option func(*Options)

// WithQueueSize overrides the submission queue capacity.
func WithQueueSize(n int) Option {
	return func(o *Options) { o.QueueSize = n }
}

// WithLimiter throttles model invocations with the given limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *Options) { o.Limiter = l }
}

// WithLogger sets the logger used by the worker goroutine.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Batch owns one Model and serializes all scoring through a single
// worker goroutine.
type Batch struct {
	model    Model
	queue    *queue.Bounded[*request]
	limiter  *rate.Limiter
	logger   *slog.Logger
	stats    atomicStats
	closed   atomic.Bool
	submitMu sync.RWMutex
	done     chan struct{}
}

// New creates a Batch bound to m and spawns its worker goroutine.
// callers is the expected number of concurrent submitters and sizes the
// default queue capacity.
func New(m Model, callers int, optFns ...Option) (*Batch, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if callers <= 0 {
		callers = 1
	}

	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = callers * 4
	}

	b := &Batch{
		model:   m,
		queue:   queue.NewBounded[*request](opts.QueueSize),
		limiter: opts.Limiter,
		logger:  opts.Logger,
		done:    make(chan struct{}),
	}

	go b.worker()

	return b, nil
}

// Infer scores a batch of observations, blocking until the worker has
// served the request. out[i] corresponds to obs[i].
//
// A canceled ctx abandons the wait; the batch may still be scored but the
// result is discarded. After Close, Infer fails fast with ErrClosed.
func (b *Batch) Infer(ctx context.Context, obs []model.Observation) ([]model.Inference, error) {
	if len(obs) == 0 {
		return nil, nil
	}
	req := &request{
		inputs: obs,
		result: make(chan response, 1),
	}

	b.submitMu.RLock()
	if b.closed.Load() {
		b.submitMu.RUnlock()
		return nil, ErrClosed
	}
	b.queue.Push(req)
	b.submitMu.RUnlock()

	select {
	case resp := <-req.result:
		return resp.outputs, resp.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stats returns cumulative counters for the evaluator.
func (b *Batch) Stats() Stats {
	return Stats{
		Batches:      b.stats.batches.Load(),
		Observations: b.stats.observations.Load(),
		Errors:       b.stats.errors.Load(),
	}
}

// Close stops the worker. Buffered, unstarted request groups are failed
// with ErrClosed rather than left pending, so no caller can hang across
// shutdown. Close is idempotent and returns once the worker has exited.
func (b *Batch) Close() {
	b.submitMu.Lock()
	if !b.closed.CompareAndSwap(false, true) {
		b.submitMu.Unlock()
		return
	}
	b.queue.Close()
	b.submitMu.Unlock()

	for _, req := range b.queue.Drain() {
		req.result <- response{err: ErrClosed}
	}
	<-b.done

	// The worker may have popped groups before the drain above; anything
	// still buffered after it exited is failed as well.
	for _, req := range b.queue.Drain() {
		req.result <- response{err: ErrClosed}
	}
}

// worker serially serves request groups until the queue is closed and
// drained.
func (b *Batch) worker() {
	defer close(b.done)

	if b.logger != nil {
		b.logger.Debug("evaluator worker started")
	}

	for {
		req, ok := b.queue.Pop()
		if !ok {
			if b.logger != nil {
				b.logger.Debug("evaluator worker stopped")
			}
			return
		}

		if b.limiter != nil {
			_ = b.limiter.Wait(context.Background())
		}

		outputs, err := b.model.Infer(req.inputs)
		if err == nil && len(outputs) != len(req.inputs) {
			err = fmt.Errorf("evaluator: model returned %d outputs for %d observations", len(outputs), len(req.inputs))
		}

		b.stats.batches.Add(1)
		b.stats.observations.Add(uint64(len(req.inputs)))
		if err != nil {
			b.stats.errors.Add(1)
			if b.logger != nil {
				b.logger.Error("batch inference failed", "batch_size", len(req.inputs), "error", err)
			}
			req.result <- response{err: err}
			continue
		}

		req.result <- response{outputs: outputs}
	}
}
