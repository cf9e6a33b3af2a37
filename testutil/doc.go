// Package testutil provides deterministic helpers for tests: a seeded
// thread-safe RNG, a small chain-world environment and scripted scoring
// models. Everything here is reproducible given the same seed and inputs,
// which the search-determinism tests rely on.
package testutil
