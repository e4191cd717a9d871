package randomset

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveContains(t *testing.T) {
	s := New[int]()
	assert.True(t, s.Add(3))
	assert.True(t, s.Add(5))
	assert.False(t, s.Add(3), "duplicate add")
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Contains(5))
	assert.True(t, s.Remove(5))
	assert.False(t, s.Remove(5), "second remove")
	assert.False(t, s.Contains(5))
	assert.Equal(t, 1, s.Len())
}

func TestRemoveKeepsIndexConsistent(t *testing.T) {
	s := Of(1, 2, 3, 4, 5)
	require.True(t, s.Remove(1))
	require.True(t, s.Remove(4))

	for _, v := range []int{2, 3, 5} {
		assert.True(t, s.Contains(v), "missing %d", v)
	}
	for _, v := range []int{1, 4} {
		assert.False(t, s.Contains(v), "unexpected %d", v)
	}

	// Every surviving value must still be removable through its slot.
	for _, v := range []int{5, 2, 3} {
		require.True(t, s.Remove(v))
	}
	assert.Zero(t, s.Len())
}

func TestPollRandomDrainsAll(t *testing.T) {
	s := Of("a", "b", "c", "d")
	rng := rand.New(rand.NewSource(7))

	var got []string
	for {
		x, ok := s.PollRandom(rng)
		if !ok {
			break
		}
		got = append(got, x)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Zero(t, s.Len())
}

func TestPollRandomEmpty(t *testing.T) {
	s := New[int]()
	_, ok := s.PollRandom(rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestPollRandomRoughlyUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	counts := make(map[int]int)
	const trials = 20000
	for i := 0; i < trials; i++ {
		s := Of(0, 1, 2, 3)
		x, ok := s.PollRandom(rng)
		require.True(t, ok)
		counts[x]++
	}
	for v := 0; v < 4; v++ {
		assert.InDelta(t, trials/4, counts[v], trials/20, "value %d", v)
	}
}

func TestValuesIsCopy(t *testing.T) {
	s := Of(1, 2)
	vals := s.Values()
	vals[0] = 99
	assert.False(t, s.Contains(99))
}
