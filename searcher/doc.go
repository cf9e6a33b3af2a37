// Package searcher implements policy-guided heuristic search (PHS*), a
// generalized Levin tree search.
//
// The search explores a tree of environment states best-first, ordered by
// a cost that blends the cumulative log-probability of the path under a
// learned policy with a predicted remaining cost. With a zero heuristic
// the ordering reduces to pure Levin search, ln(g) - p.
//
// Each search job owns its node arena and canonical state store for its
// whole lifetime; nothing in this package is shared across jobs. Scoring
// is delegated to an evaluator.Batch, and sibling children are batched
// before submission to amortize model invocations.
package searcher
