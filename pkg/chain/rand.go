package chain

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// RandomSource yields the draws that steer a generation walk. For a fixed
// seed the sequence of draws, and therefore the generated text, is
// reproducible. Implementations are not assumed safe for concurrent use;
// callers running generations in parallel should give each its own source.
type RandomSource interface {
	// Next returns an integer in [0, n). n must be positive.
	Next(n int) int
}

type pcgSource struct {
	rng *rand.Rand
}

func (s *pcgSource) Next(n int) int {
	return s.rng.IntN(n)
}

// NewSource returns a deterministic RandomSource seeded with the given value.
func NewSource(seed uint64) RandomSource {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

// NewSeedSource maps a textual seed onto a deterministic RandomSource via a
// stable 64-bit string hash, so the same seed text always reproduces the
// same generation.
func NewSeedSource(seed string) RandomSource {
	return NewSource(xxhash.Sum64String(seed))
}
