// Package arena provides an append-only block allocator with stable
// element addresses.
//
// # Concurrency Model
//
// An Arena is owned by a single search job and must only be used from the
// goroutine running that job. It is NOT safe for concurrent use.
//
// # Memory Management
//
// The arena grows by appending fixed-size blocks and never resizes or
// moves existing storage, so a *T returned by Alloc remains valid for the
// arena's whole lifetime. Long-lived references (node parent links,
// canonical state pointers) depend on this.
package arena
