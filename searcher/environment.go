package searcher

import (
	"github.com/hupe1980/phastar/model"
)

// Environment is the puzzle simulation consumed by the search. State
// transition rules, rendering and cell-level physics live behind this
// interface; the search only requires that ApplyAction terminates.
type Environment interface {
	// ApplyAction advances the state in place.
	ApplyAction(a model.Action)

	// IsTerminal reports whether the state admits no further progress.
	IsTerminal() bool

	// IsSolution reports whether the state satisfies the solution
	// predicate.
	IsSolution() bool

	// LegalActions returns the legal action ids in a fixed deterministic
	// order. The order must exactly match the position semantics of the
	// scored policy vector.
	LegalActions() []model.Action

	// Observation returns the fixed-shape, channel-major encoding of the
	// state for the scoring model.
	Observation() model.Observation

	// Hash returns a 64-bit content hash of the logical state.
	Hash() uint64

	// Equal compares full logical state. It is the exact-equality
	// fallback behind Hash: two states sharing a hash must never be
	// merged without it.
	Equal(other Environment) bool

	// Clone returns an independent deep copy that can diverge from the
	// receiver.
	Clone() Environment
}
