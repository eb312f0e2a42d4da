package types

// RandomSource is the pseudo-random source used for centroid seeding.
//
// *rand.Rand from math/rand/v2 satisfies it. Only determinism for a given seed
// within one implementation is expected.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int

	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}
