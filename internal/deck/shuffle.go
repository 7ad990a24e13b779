package deck

import "math/rand/v2"

// Rand is the random source consumed by Shuffle. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the process-wide math/rand/v2 source.
var DefaultRand Rand = globalRand{}

// Seeded returns a deterministic source for reproducible deals.
func Seeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes s in place with Fisher–Yates: for i from n-1 down to 1,
// pick j uniformly in [0, i] and swap. A nil r uses DefaultRand.
func Shuffle[T any](s []T, r Rand) {
	if r == nil {
		r = DefaultRand
	}
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Perm returns a shuffled permutation of 0..n-1.
func Perm(n int, r Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(p, r)
	return p
}
