package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Ints returns n pseudo-random non-negative ints.
func (r *RNG) Ints(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Int()
	}
	return out
}

// Uint32s returns n pseudo-random values in [0, bound). Duplicates are expected,
// which makes the result suitable as a key sequence with repeated inserts.
func (r *RNG) Uint32s(n int, bound uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(r.rand.Int63n(int64(bound)))
	}
	return out
}

// Perm returns a pseudo-random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}
