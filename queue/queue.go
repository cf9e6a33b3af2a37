// Package queue implements a bounded, blocking FIFO queue with a
// drain-and-close shutdown mode.
package queue

import (
	"sync"
)

// Bounded is a thread-safe FIFO queue with a capacity limit.
//
// Push blocks while the queue is full and Pop blocks while it is empty.
// Close wakes all waiters so blocked Pop calls can observe closure and
// return; it does not reject further Push calls — producers must stop
// pushing once shutdown begins.
type Bounded[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []T
	maxSize int
	closed  bool
}

// NewBounded creates a bounded queue with the given capacity.
// A capacity <= 0 is treated as 1.
func NewBounded[T any](maxSize int) *Bounded[T] {
	if maxSize <= 0 {
		maxSize = 1
	}
	q := &Bounded[T]{maxSize: maxSize}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues v, blocking while the queue is at capacity.
func (q *Bounded[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) >= q.maxSize {
		q.cond.Wait()
	}
	q.items = append(q.items, v)
	q.cond.Signal()
}

// Pop dequeues the oldest item, blocking while the queue is empty.
// Once the queue is closed and empty it returns the zero value and false
// immediately instead of blocking.
func (q *Bounded[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			var zero T
			return zero, false
		}
		q.cond.Wait()
	}

	v := q.items[0]
	var zero T
	q.items[0] = zero // release for GC
	q.items = q.items[1:]
	q.cond.Signal()
	return v, true
}

// Clear discards all buffered items.
func (q *Bounded[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	clear(q.items)
	q.items = q.items[:0]
	q.cond.Broadcast()
}

// Drain removes and returns all buffered items.
func (q *Bounded[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := make([]T, len(q.items))
	copy(drained, q.items)
	clear(q.items)
	q.items = q.items[:0]
	q.cond.Broadcast()
	return drained
}

// Close marks the queue closed and wakes all waiters. Blocked Pop calls
// return once the buffer empties. Closing twice is a no-op.
func (q *Bounded[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Bounded[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of buffered items at the time of the call.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether the queue is empty at the time of the call.
func (q *Bounded[T]) Empty() bool {
	return q.Len() == 0
}
