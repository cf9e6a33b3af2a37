package phastar_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/phastar"
	"github.com/hupe1980/phastar/evaluator"
	"github.com/hupe1980/phastar/model"
	"github.com/hupe1980/phastar/searcher"
	"github.com/hupe1980/phastar/testutil"
)

func TestSolverEndToEnd(t *testing.T) {
	const (
		jobs    = 20
		workers = 4
	)

	// Alternating jobs share alternating evaluators, as a deployment with
	// two scoring devices would.
	evalA, err := evaluator.New(&testutil.UniformModel{Actions: testutil.ChainActions}, workers)
	require.NoError(t, err)
	defer evalA.Close()

	evalB, err := evaluator.New(&testutil.UniformModel{Actions: testutil.ChainActions}, workers)
	require.NoError(t, err)
	defer evalB.Close()

	metrics := &phastar.BasicMetricsCollector{}
	solver := phastar.New(
		phastar.WithWorkers(workers),
		phastar.WithMetricsCollector(metrics),
	)

	jobList := make([]phastar.Job, jobs)
	for i := range jobList {
		// Goal distance varies per job so outcomes differ by index.
		goal := i%5 + 1
		ev := evalA
		if i%2 == 1 {
			ev = evalB
		}
		jobList[i] = phastar.Job{
			Env:       &testutil.ChainEnv{Size: 6, Goal: goal},
			Evaluator: ev,
		}
	}

	outcomes, err := solver.Solve(context.Background(), jobList)
	require.NoError(t, err)
	require.Len(t, outcomes, jobs)

	for i, outcome := range outcomes {
		require.True(t, outcome.Solved, "job %d", i)
		assert.Len(t, outcome.Path, i%5+1, "outcomes must line up with submission order")
	}

	assert.Equal(t, int64(jobs), metrics.SearchCount.Load())
	assert.Equal(t, int64(jobs), metrics.SearchSolved.Load())
	assert.Equal(t, int64(1), metrics.SolveCount.Load())

	// Both evaluators actually served their share.
	assert.NotZero(t, evalA.Stats().Batches)
	assert.NotZero(t, evalB.Stats().Batches)
}

func TestSolverOneStepSolve(t *testing.T) {
	eval, err := evaluator.New(&testutil.ScriptModel{
		Score: func(model.Observation) ([]float64, float64) {
			return testutil.BiasedPolicy(testutil.ChainActions, testutil.ActionRight), 0
		},
	}, 1)
	require.NoError(t, err)
	defer eval.Close()

	solver := phastar.New(phastar.WithWorkers(1))

	outcomes, err := solver.Solve(context.Background(), []phastar.Job{{
		Env:       &testutil.ChainEnv{Size: 2, Goal: 1},
		Evaluator: eval,
	}})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	require.True(t, outcomes[0].Solved)
	assert.Equal(t, []model.Action{testutil.ActionRight}, outcomes[0].Path)
	assert.LessOrEqual(t, outcomes[0].Expansions, 2)
}

func TestSolverBudgetExhaustedIsNotAnError(t *testing.T) {
	eval, err := evaluator.New(&testutil.UniformModel{Actions: testutil.ChainActions}, 1)
	require.NoError(t, err)
	defer eval.Close()

	solver := phastar.New(
		phastar.WithWorkers(1),
		phastar.WithSearchOptions(searcher.WithNodeBudget(10)),
	)

	outcomes, err := solver.Solve(context.Background(), []phastar.Job{{
		Env:       &testutil.ChainEnv{Size: 8, Goal: -1, TrackSteps: true},
		Evaluator: eval,
	}})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.False(t, outcomes[0].Solved)
	assert.Equal(t, 10, outcomes[0].Expansions)
	assert.Nil(t, outcomes[0].Path)
}

func TestSolverJobFailureDoesNotSinkSiblings(t *testing.T) {
	wantErr := errors.New("device on fire")

	good, err := evaluator.New(&testutil.UniformModel{Actions: testutil.ChainActions}, 1)
	require.NoError(t, err)
	defer good.Close()

	bad, err := evaluator.New(evaluator.ModelFunc(func([]model.Observation) ([]model.Inference, error) {
		return nil, wantErr
	}), 1)
	require.NoError(t, err)
	defer bad.Close()

	solver := phastar.New(phastar.WithWorkers(2))

	outcomes, err := solver.Solve(context.Background(), []phastar.Job{
		{Env: &testutil.ChainEnv{Size: 3, Goal: 2}, Evaluator: good},
		{Env: &testutil.ChainEnv{Size: 3, Goal: 2}, Evaluator: bad},
		{Env: &testutil.ChainEnv{Size: 4, Goal: 3}, Evaluator: good},
	})

	// The failing job surfaces in the joined error; its siblings still
	// ran to completion and kept their slots.
	require.ErrorIs(t, err, wantErr)
	assert.Contains(t, err.Error(), "job 1")
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].Solved)
	assert.Len(t, outcomes[0].Path, 2)
	assert.Equal(t, model.Outcome{}, outcomes[1])
	assert.True(t, outcomes[2].Solved)
	assert.Len(t, outcomes[2].Path, 3)
}

func TestSolverValidatesJobsUpFront(t *testing.T) {
	eval, err := evaluator.New(&testutil.UniformModel{Actions: testutil.ChainActions}, 1)
	require.NoError(t, err)
	defer eval.Close()

	solver := phastar.New()

	t.Run("nil environment", func(t *testing.T) {
		_, err := solver.Solve(context.Background(), []phastar.Job{
			{Env: &testutil.ChainEnv{Size: 2, Goal: 1}, Evaluator: eval},
			{Env: nil, Evaluator: eval},
		})
		require.ErrorIs(t, err, phastar.ErrNilEnvironment)

		var invalid *phastar.ErrInvalidJob
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 1, invalid.Index)
	})

	t.Run("nil evaluator", func(t *testing.T) {
		_, err := solver.Solve(context.Background(), []phastar.Job{
			{Env: &testutil.ChainEnv{Size: 2, Goal: 1}, Evaluator: nil},
		})
		require.ErrorIs(t, err, phastar.ErrNilEvaluator)
	})

	// No search ran, so the evaluator never saw a batch.
	assert.Zero(t, eval.Stats().Batches)
}

func TestSolverEmptyJobs(t *testing.T) {
	solver := phastar.New()

	outcomes, err := solver.Solve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
