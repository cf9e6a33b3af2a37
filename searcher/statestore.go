package searcher

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/phastar/internal/arena"
)

// stateEntry is the canonical, deduplicated copy of one observed state.
// All nodes reaching the same logical state share one entry, so closing
// the state once covers every path to it.
type stateEntry struct {
	env    Environment
	closed bool
}

// stateStore deduplicates states by 64-bit content hash with an
// exact-equality fallback. A roaring bitmap over hashes serves as a
// membership prefilter: a miss proves the state is new without touching
// the collision-chain map. Entries live in an append-only arena and never
// move, so nodes can hold raw *stateEntry references.
type stateStore struct {
	arena  *arena.Arena[stateEntry]
	seen   *roaring64.Bitmap
	byHash map[uint64][]*stateEntry
	closed int
}

func newStateStore(blockSize int) *stateStore {
	return &stateStore{
		arena:  arena.New[stateEntry](blockSize),
		seen:   roaring64.New(),
		byHash: make(map[uint64][]*stateEntry),
	}
}

// Intern returns the canonical entry for env, creating one if the state
// has not been observed. The returned bool reports whether the state
// already existed. Hash collisions are resolved by Equal; two distinct
// states sharing a hash chain side by side.
func (s *stateStore) Intern(env Environment) (*stateEntry, bool) {
	h := env.Hash()
	if s.seen.Contains(h) {
		for _, e := range s.byHash[h] {
			if e.env.Equal(env) {
				return e, true
			}
		}
	} else {
		s.seen.Add(h)
	}

	e := s.arena.Alloc()
	e.env = env
	s.byHash[h] = append(s.byHash[h], e)

	return e, false
}

// MarkClosed marks the entry's state as expanded. It returns false if the
// state was already closed.
func (s *stateStore) MarkClosed(e *stateEntry) bool {
	if e.closed {
		return false
	}
	e.closed = true
	s.closed++
	return true
}

// Len returns the number of distinct states interned.
func (s *stateStore) Len() int {
	return s.arena.Len()
}

// ClosedLen returns the number of distinct states expanded.
func (s *stateStore) ClosedLen() int {
	return s.closed
}
