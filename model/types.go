package model

import (
	"fmt"
)

// Observation is the flat, channel-major numeric encoding of a single
// environment state. Its length is fixed per environment instance and
// equals Shape.Len().
type Observation = []float32

// Shape describes the fixed (channels, height, width) layout of
// observations produced by one environment instance.
type Shape struct {
	C int
	H int
	W int
}

// Len returns the flat observation length for the shape.
func (s Shape) Len() int {
	return s.C * s.H * s.W
}

// Validate checks that all dimensions are positive.
func (s Shape) Validate() error {
	if s.C <= 0 || s.H <= 0 || s.W <= 0 {
		return fmt.Errorf("model: invalid observation shape %s", s)
	}
	return nil
}

// String returns a string representation of the Shape.
func (s Shape) String() string {
	return fmt.Sprintf("Shape(%dx%dx%d)", s.C, s.H, s.W)
}

// Action identifies one environment action. Actions index into the policy
// vector, so the order returned by Environment.LegalActions must match the
// position semantics of the scored policy.
type Action = int

// NoAction marks a node that was not produced by any action (the root).
const NoAction Action = -1

// Inference is the network output for a single observation.
//
// Policy is a probability distribution over actions (entries sum to 1
// within floating tolerance). LogPolicy is the elementwise log of Policy,
// optionally smoothed toward uniform by a mixing factor.
type Inference struct {
	Logits    []float64
	Policy    []float64
	LogPolicy []float64
	Heuristic float64
}

// Outcome is the result of one search job.
//
// Exceeding the node budget is a normal negative result, not an error:
// Solved is false and Path is nil.
type Outcome struct {
	// Solved reports whether a solution state was expanded.
	Solved bool
	// Expansions is the number of nodes popped from the open set.
	Expansions int
	// Generated is the number of child nodes created after dead-end
	// pruning. Children reaching an already-seen state are still counted;
	// they share the canonical state but are distinct nodes.
	Generated int
	// Path is the root-to-solution action sequence when Solved is true.
	Path []Action
}
