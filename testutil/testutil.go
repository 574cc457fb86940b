package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

const bases = "ACGT"

// Sequence returns n random nucleotides drawn from ACGT.
func (r *RNG) Sequence(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := make([]byte, n)
	for i := range seq {
		seq[i] = bases[r.rand.Intn(len(bases))]
	}
	return seq
}

// zipfLocked returns a Zipfian-distributed value in [0, n). The caller
// must hold the lock.
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// ZipfLengths returns n record lengths, each a multiple of unit, with a
// Zipfian number of units in [1, 100]. A few long records dominate, the way
// chromosomes dominate scaffolds in a genome assembly.
func (r *RNG) ZipfLengths(n, unit int, s float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	lengths := make([]int, n)
	for i := range lengths {
		lengths[i] = (100 - r.zipfLocked(100, s)) * unit
	}
	return lengths
}
