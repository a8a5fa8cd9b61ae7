// Package testutil provides testing utilities for idxarena.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, reproducible random source for generating allocation
// and insertion workloads.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	values := rng.Ints(1000)           // payloads for arena allocation
//	keys := rng.Uint32s(1000, 1<<16)   // sparse map keys in [0, 1<<16)
package testutil
