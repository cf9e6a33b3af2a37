package evaluator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/hupe1980/phastar/evaluator"
	"github.com/hupe1980/phastar/model"
)

// echoModel tags every output heuristic with the first entry of its
// observation, making cross-talk between batches detectable.
func echoModel() evaluator.Model {
	return evaluator.ModelFunc(func(obs []model.Observation) ([]model.Inference, error) {
		out := make([]model.Inference, len(obs))
		for i, o := range obs {
			out[i] = model.Inference{
				Policy:    []float64{1},
				LogPolicy: []float64{0},
				Heuristic: float64(o[0]),
			}
		}
		return out, nil
	})
}

func obsBatch(vals ...float32) []model.Observation {
	obs := make([]model.Observation, len(vals))
	for i, v := range vals {
		obs[i] = model.Observation{v}
	}
	return obs
}

func TestBatchInferLengthAndOrder(t *testing.T) {
	b, err := evaluator.New(echoModel(), 1)
	require.NoError(t, err)
	defer b.Close()

	out, err := b.Infer(context.Background(), obsBatch(3, 1, 4, 1, 5))
	require.NoError(t, err)
	require.Len(t, out, 5)

	for i, want := range []float64{3, 1, 4, 1, 5} {
		assert.Equal(t, want, out[i].Heuristic, "outputs[%d] must correspond to observations[%d]", i, i)
	}
}

func TestBatchInferEmpty(t *testing.T) {
	b, err := evaluator.New(echoModel(), 1)
	require.NoError(t, err)
	defer b.Close()

	out, err := b.Infer(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestBatchConcurrentCallersNoCrossTalk(t *testing.T) {
	const callers = 16

	b, err := evaluator.New(echoModel(), callers)
	require.NoError(t, err)
	defer b.Close()

	var wg sync.WaitGroup
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			for iter := 0; iter < 50; iter++ {
				tag := float32(c*1000 + iter)
				out, err := b.Infer(context.Background(), obsBatch(tag, tag, tag))
				if assert.NoError(t, err) && assert.Len(t, out, 3) {
					for _, inf := range out {
						assert.Equal(t, float64(tag), inf.Heuristic)
					}
				}
			}
		}(c)
	}
	wg.Wait()

	stats := b.Stats()
	assert.Equal(t, uint64(callers*50), stats.Batches)
	assert.Equal(t, uint64(callers*50*3), stats.Observations)
}

func TestBatchWithLimiter(t *testing.T) {
	b, err := evaluator.New(echoModel(), 1,
		evaluator.WithLimiter(rate.NewLimiter(1000, 10)),
		evaluator.WithQueueSize(2),
	)
	require.NoError(t, err)
	defer b.Close()

	for i := 0; i < 5; i++ {
		out, err := b.Infer(context.Background(), obsBatch(float32(i)))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, float64(i), out[0].Heuristic)
	}
}

func TestBatchModelErrorPropagates(t *testing.T) {
	wantErr := errors.New("device on fire")
	b, err := evaluator.New(evaluator.ModelFunc(func(obs []model.Observation) ([]model.Inference, error) {
		return nil, wantErr
	}), 1)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Infer(context.Background(), obsBatch(1))
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, uint64(1), b.Stats().Errors)
}

func TestBatchOutputCountMismatch(t *testing.T) {
	b, err := evaluator.New(evaluator.ModelFunc(func(obs []model.Observation) ([]model.Inference, error) {
		return make([]model.Inference, len(obs)+1), nil
	}), 1)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Infer(context.Background(), obsBatch(1, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 outputs for 2 observations")
}

func TestBatchNilModel(t *testing.T) {
	_, err := evaluator.New(nil, 1)
	require.ErrorIs(t, err, evaluator.ErrNilModel)
}

func TestBatchInferAfterCloseFailsFast(t *testing.T) {
	b, err := evaluator.New(echoModel(), 1)
	require.NoError(t, err)
	b.Close()

	_, err = b.Infer(context.Background(), obsBatch(1))
	require.ErrorIs(t, err, evaluator.ErrClosed)
}

func TestBatchCloseIdempotent(t *testing.T) {
	b, err := evaluator.New(echoModel(), 1)
	require.NoError(t, err)
	b.Close()
	b.Close()
}

func TestBatchCloseFailsBufferedRequests(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{}, 8)

	blocking := evaluator.ModelFunc(func(obs []model.Observation) ([]model.Inference, error) {
		started <- struct{}{}
		<-gate
		out := make([]model.Inference, len(obs))
		return out, nil
	})

	b, err := evaluator.New(blocking, 4)
	require.NoError(t, err)

	results := make(chan error, 3)

	// First request occupies the worker.
	go func() {
		_, err := b.Infer(context.Background(), obsBatch(1))
		results <- err
	}()
	<-started

	// Two more queue up behind the in-flight batch.
	for i := 0; i < 2; i++ {
		go func() {
			_, err := b.Infer(context.Background(), obsBatch(2))
			results <- err
		}()
	}
	time.Sleep(50 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		b.Close()
		close(closed)
	}()

	// Buffered, unstarted requests must fail with ErrClosed rather than
	// hang.
	for i := 0; i < 2; i++ {
		select {
		case err := <-results:
			require.ErrorIs(t, err, evaluator.ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("buffered request hung across shutdown")
		}
	}

	// The in-flight batch completes once the model returns.
	close(gate)
	select {
	case err := <-results:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("in-flight request did not complete")
	}

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close did not return after the worker exited")
	}
}

func TestBatchInferContextCanceled(t *testing.T) {
	gate := make(chan struct{})

	blocking := evaluator.ModelFunc(func(obs []model.Observation) ([]model.Inference, error) {
		<-gate
		return make([]model.Inference, len(obs)), nil
	})

	b, err := evaluator.New(blocking, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = b.Infer(ctx, obsBatch(1))
	require.ErrorIs(t, err, context.Canceled)

	close(gate)
	b.Close()
}
