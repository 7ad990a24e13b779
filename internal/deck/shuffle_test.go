package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_IsPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 52} {
		in := make([]int, n)
		for i := range in {
			in[i] = i * 7
		}
		out := make([]int, n)
		copy(out, in)
		Shuffle(out, Seeded(uint64(n)))

		require.Len(t, out, n)
		sorted := make([]int, n)
		copy(sorted, out)
		sort.Ints(sorted)
		assert.Equal(t, in, sorted, "shuffle of %d elements must keep the same multiset", n)
	}
}

func TestShuffle_EmptyAndSingleAreNoOps(t *testing.T) {
	var draws countingRand

	empty := []int{}
	Shuffle(empty, &draws)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	one := []int{5}
	Shuffle(one, &draws)
	assert.Equal(t, []int{5}, one)
	assert.Empty(t, draws.bounds, "nothing to swap, nothing drawn")
}

func TestShuffle_NilSourceUsesDefault(t *testing.T) {
	s := []string{"a", "b", "c"}
	Shuffle(s, nil)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s)
}

// countingRand records the bound of every draw and always answers 0.
type countingRand struct{ bounds []int }

func (c *countingRand) IntN(n int) int {
	c.bounds = append(c.bounds, n)
	return 0
}

func TestShuffle_DrawsFromShrinkingRange(t *testing.T) {
	r := &countingRand{}
	s := []int{0, 1, 2, 3}
	Shuffle(s, r)

	// i = 3, 2, 1 -> j in [0, i]
	assert.Equal(t, []int{4, 3, 2}, r.bounds)
	// j == 0 every time: swap(3,0), swap(2,0), swap(1,0)
	assert.Equal(t, []int{1, 2, 3, 0}, s)
}

func TestShuffle_UniformMarginals(t *testing.T) {
	const (
		n    = 4
		runs = 40000
	)
	r := Seeded(42)
	var counts [n][n]int
	for k := 0; k < runs; k++ {
		p := Perm(n, r)
		for pos, v := range p {
			counts[pos][v]++
		}
	}

	want := runs / n
	tolerance := want / 20
	for pos := 0; pos < n; pos++ {
		for v := 0; v < n; v++ {
			assert.InDelta(t, want, counts[pos][v], float64(tolerance),
				"element %d landed at position %d %d times", v, pos, counts[pos][v])
		}
	}
}

func TestSeeded_IsReproducible(t *testing.T) {
	assert.Equal(t, Perm(20, Seeded(7)), Perm(20, Seeded(7)))
}
