package phastar_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/phastar"
	"github.com/hupe1980/phastar/evaluator"
	"github.com/hupe1980/phastar/testutil"
)

func Example() {
	eval, _ := evaluator.New(&testutil.UniformModel{Actions: testutil.ChainActions}, 1)
	defer eval.Close()

	solver := phastar.New(phastar.WithWorkers(1))

	outcomes, _ := solver.Solve(context.Background(), []phastar.Job{{
		Env:       &testutil.ChainEnv{Size: 4, Goal: 3},
		Evaluator: eval,
	}})

	fmt.Printf("solved=%v steps=%d\n", outcomes[0].Solved, len(outcomes[0].Path))
	// Output: solved=true steps=3
}
