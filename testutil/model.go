package testutil

import (
	"math"

	"github.com/hupe1980/phastar/model"
)

// UniformModel scores every observation with a uniform policy and a
// constant heuristic. It is fully deterministic.
type UniformModel struct {
	Actions   int
	Heuristic float64
}

// Infer implements evaluator.Model.
func (m *UniformModel) Infer(obs []model.Observation) ([]model.Inference, error) {
	out := make([]model.Inference, len(obs))
	for i := range obs {
		out[i] = scored(uniformPolicy(m.Actions), m.Heuristic)
	}
	return out, nil
}

// ScriptModel derives the policy and heuristic for each observation from
// a caller-supplied function, keeping tests deterministic while allowing
// state-dependent scores.
type ScriptModel struct {
	Score func(obs model.Observation) (policy []float64, heuristic float64)
}

// Infer implements evaluator.Model.
func (m *ScriptModel) Infer(obs []model.Observation) ([]model.Inference, error) {
	out := make([]model.Inference, len(obs))
	for i, o := range obs {
		policy, h := m.Score(o)
		out[i] = scored(policy, h)
	}
	return out, nil
}

// BiasedPolicy returns a distribution that puts weight ~1 on the favored
// action and spreads the remainder uniformly.
func BiasedPolicy(actions, favored int) []float64 {
	const rest = 1e-6
	policy := make([]float64, actions)
	for i := range policy {
		policy[i] = rest
	}
	policy[favored] = 1 - float64(actions-1)*rest
	return policy
}

func uniformPolicy(actions int) []float64 {
	policy := make([]float64, actions)
	for i := range policy {
		policy[i] = 1 / float64(actions)
	}
	return policy
}

func scored(policy []float64, heuristic float64) model.Inference {
	logits := make([]float64, len(policy))
	logPolicy := make([]float64, len(policy))
	for i, p := range policy {
		logits[i] = math.Log(p)
		logPolicy[i] = math.Log(p)
	}
	return model.Inference{
		Logits:    logits,
		Policy:    policy,
		LogPolicy: logPolicy,
		Heuristic: heuristic,
	}
}
