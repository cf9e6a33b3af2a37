package arena

// DefaultBlockSize is the number of elements carved from each block.
const DefaultBlockSize = 2048

// Arena hands out pointers into fixed-size blocks. Blocks are only ever
// appended, never resized, so returned pointers stay valid until the
// arena is released.
type Arena[T any] struct {
	blocks    [][]T
	blockSize int
	used      int // elements used in the last block
	count     int
}

// New creates an arena with the given block size.
// A blockSize <= 0 falls back to DefaultBlockSize.
func New[T any](blockSize int) *Arena[T] {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Arena[T]{
		blocks:    [][]T{make([]T, blockSize)},
		blockSize: blockSize,
	}
}

// Alloc returns a pointer to a zero-valued element. The pointer never
// moves for the arena's lifetime.
func (a *Arena[T]) Alloc() *T {
	if a.used == a.blockSize {
		a.blocks = append(a.blocks, make([]T, a.blockSize))
		a.used = 0
	}
	last := a.blocks[len(a.blocks)-1]
	p := &last[a.used]
	a.used++
	a.count++
	return p
}

// Len returns the number of elements allocated so far.
func (a *Arena[T]) Len() int {
	return a.count
}

// Blocks returns the number of blocks currently held.
func (a *Arena[T]) Blocks() int {
	return len(a.blocks)
}

// Release drops all blocks. Every pointer previously returned by Alloc
// becomes invalid; do not call while allocations are in flight.
func (a *Arena[T]) Release() {
	a.blocks = [][]T{make([]T, a.blockSize)}
	a.used = 0
	a.count = 0
}
