package distort

import "math/rand/v2"

// Source supplies uniform integer draws for density checks.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewSource returns a deterministic source for the given seed and stream.
// Different streams with the same seed are independent.
func NewSource(seed, stream uint64) Source {
	return rand.New(rand.NewPCG(seed, stream^0x9e3779b97f4a7c15))
}

// RandomSource returns a source seeded from the runtime's entropy.
func RandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
