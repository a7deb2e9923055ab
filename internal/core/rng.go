package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// Each lattice, model and update rule owns its own RNG so independent runs
// never share generator state.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), 0)
	return &RNG{src: src, r: rand.New(src)}
}

// Seed resets the generator so that subsequent draws replay from seed.
func (r *RNG) Seed(seed int64) {
	r.src.Seed(uint64(seed), 0)
}

// Clone returns an independent generator that replays the receiver's
// remaining sequence.
func (r *RNG) Clone() *RNG {
	src := *r.src
	return &RNG{src: &src, r: rand.New(&src)}
}

// IntN returns a random int in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	return r.r.IntN(n)
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Uniform returns a random float64 in [min, max).
func (r *RNG) Uniform(min, max float64) float64 {
	return min + (max-min)*r.r.Float64()
}
