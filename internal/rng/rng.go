// Package rng provides the deterministic random source and card-deck
// dealers used by the obstacle simulation. All pattern decisions route
// through a Source so two clients seeded with the same weekly key produce
// an identical run.
package rng

// Source is a deterministic pseudo-random generator based on splitmix64.
// The algorithm is fixed here rather than delegated to math/rand so the
// generated sequence is bit-identical across Go versions and platforms.
// Not safe for concurrent use; the simulation is single-threaded.
type Source struct {
	state uint64
}

// New creates a Source with the given seed.
func New(seed int64) *Source {
	s := &Source{}
	s.Reset(seed)
	return s
}

// Reset reseeds the source, restarting the sequence.
func (s *Source) Reset(seed int64) {
	s.state = uint64(seed)
}

// next64 advances the state and returns the next 64-bit value.
func (s *Source) next64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	// Top 53 bits give a uniform double in [0, 1)
	return float64(s.next64()>>11) / (1 << 53)
}

// Intn returns a uniform integer in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(s.Float64() * float64(n))
}

// Range returns a uniform float64 in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// Shuffle performs a Fisher–Yates shuffle using the swap function.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
