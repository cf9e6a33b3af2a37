// Package phastar provides neural-network-guided best-first search for
// puzzle-like sequential-decision environments.
//
// Phastar runs many independent PHS* (Policy-guided Heuristic Search, a
// generalized Levin tree search) jobs concurrently while funneling their
// scoring requests through a small number of serialized batch evaluators
// with request batching and backpressure.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	eval, _ := evaluator.New(myModel, numWorkers)
//	defer eval.Close()
//
//	solver := phastar.New(
//	    phastar.WithWorkers(numWorkers),
//	    phastar.WithSearchOptions(searcher.WithNodeBudget(2000)),
//	)
//
//	jobs := make([]phastar.Job, len(envs))
//	for i, env := range envs {
//	    jobs[i] = phastar.Job{Env: env, Evaluator: eval}
//	}
//
//	outcomes, _ := solver.Solve(ctx, jobs)   // outcomes[i] matches jobs[i]
//
// Each outcome is either solved with a reconstructable action path or not
// solved within the node budget; the latter is a normal negative result,
// not an error.
//
// # Concurrency Model
//
// Two layers. The job pool runs N searches in parallel; each search's
// loop is single-goroutine and synchronous. All jobs sharing one
// evaluator serialize their scoring calls through that evaluator's single
// worker goroutine, strictly FIFO by arrival. A model instance is only
// ever touched by its evaluator's worker.
//
// Close evaluators only after Solve has returned: the shutdown contract
// fails buffered requests with evaluator.ErrClosed instead of leaving
// callers pending.
package phastar
