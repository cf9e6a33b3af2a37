// Package pool runs many independent jobs on a fixed-size worker pool,
// returning results re-ordered to match submission order.
package pool

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Run executes fn once per input using a fixed pool of worker goroutines.
// Each worker repeatedly claims the next unclaimed input until none
// remain, so completion order is unconstrained; outputs are written at
// their input's index and the returned slice always matches the input
// order and length.
//
// The first job error cancels the group's context and fails the whole
// run; no partial results are surfaced.
func Run[I, O any](ctx context.Context, workers int, fn func(ctx context.Context, input I) (O, error), inputs []I) ([]O, error) {
	if fn == nil {
		return nil, fmt.Errorf("pool: nil job function")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	outputs := make([]O, len(inputs))
	if len(inputs) == 0 {
		return outputs, nil
	}

	var next atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				idx := int(next.Add(1)) - 1
				if idx >= len(inputs) {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}

				out, err := fn(gctx, inputs[idx])
				if err != nil {
					return fmt.Errorf("pool: job %d: %w", idx, err)
				}
				outputs[idx] = out
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outputs, nil
}
