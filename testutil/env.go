package testutil

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/phastar/model"
	"github.com/hupe1980/phastar/searcher"
)

// Chain-world actions, in the fixed order the policy vector uses.
const (
	ActionLeft  model.Action = 0
	ActionRight model.Action = 1
	ActionStay  model.Action = 2
)

// ChainActions is the number of legal actions in a ChainEnv.
const ChainActions = 3

// ChainEnv is a deterministic one-dimensional puzzle used in tests. The
// agent moves along positions 0..Size-1 and solves the puzzle by reaching
// Goal. A Goal outside the track makes the environment unsolvable.
type ChainEnv struct {
	// Size is the number of positions on the track.
	Size int
	// Goal is the solution position; set it < 0 or >= Size for an
	// unsolvable environment.
	Goal int
	// Pos is the current position.
	Pos int
	// Steps counts applied actions.
	Steps int
	// MaxSteps, when positive, makes any state with Steps >= MaxSteps a
	// terminal dead end (unless it is the solution).
	MaxSteps int
	// TrackSteps folds Steps into state identity. With it set, revisiting
	// a position after a different number of steps is a distinct state,
	// so the search tree is unbounded; without it, positions dedup.
	TrackSteps bool
}

var _ searcher.Environment = (*ChainEnv)(nil)

// Shape returns the observation shape of the environment.
func (e *ChainEnv) Shape() model.Shape {
	return model.Shape{C: 1, H: 1, W: e.Size}
}

// ApplyAction implements searcher.Environment.
func (e *ChainEnv) ApplyAction(a model.Action) {
	switch a {
	case ActionLeft:
		if e.Pos > 0 {
			e.Pos--
		}
	case ActionRight:
		if e.Pos < e.Size-1 {
			e.Pos++
		}
	case ActionStay:
	}
	e.Steps++
}

// IsSolution implements searcher.Environment.
func (e *ChainEnv) IsSolution() bool {
	return e.Pos == e.Goal
}

// IsTerminal implements searcher.Environment.
func (e *ChainEnv) IsTerminal() bool {
	if e.IsSolution() {
		return true
	}
	return e.MaxSteps > 0 && e.Steps >= e.MaxSteps
}

// LegalActions implements searcher.Environment.
func (e *ChainEnv) LegalActions() []model.Action {
	return []model.Action{ActionLeft, ActionRight, ActionStay}
}

// Observation implements searcher.Environment. It is a one-hot encoding
// of the current position.
func (e *ChainEnv) Observation() model.Observation {
	obs := make(model.Observation, e.Size)
	if e.Pos >= 0 && e.Pos < e.Size {
		obs[e.Pos] = 1
	}
	return obs
}

// Hash implements searcher.Environment.
func (e *ChainEnv) Hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(int64(e.Pos)))
	if e.TrackSteps {
		binary.LittleEndian.PutUint64(buf[8:16], uint64(int64(e.Steps)))
	}
	return xxhash.Sum64(buf[:])
}

// Equal implements searcher.Environment.
func (e *ChainEnv) Equal(other searcher.Environment) bool {
	o, ok := other.(*ChainEnv)
	if !ok {
		return false
	}
	if e.Pos != o.Pos {
		return false
	}
	if e.TrackSteps && e.Steps != o.Steps {
		return false
	}
	return true
}

// Clone implements searcher.Environment.
func (e *ChainEnv) Clone() searcher.Environment {
	c := *e
	return &c
}

// CollidingEnv wraps a ChainEnv and reports a constant hash, forcing
// every state through the store's equality fallback. Tests use it to
// prove that hash collisions never merge distinct states.
type CollidingEnv struct {
	ChainEnv
}

// Hash implements searcher.Environment.
func (e *CollidingEnv) Hash() uint64 {
	return 0xdead
}

// Equal implements searcher.Environment.
func (e *CollidingEnv) Equal(other searcher.Environment) bool {
	o, ok := other.(*CollidingEnv)
	if !ok {
		return false
	}
	return e.ChainEnv.Equal(&o.ChainEnv)
}

// Clone implements searcher.Environment.
func (e *CollidingEnv) Clone() searcher.Environment {
	c := *e
	return &c
}
