package genome

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/evgen/randomset"
)

// IndexSampler draws distinct gene indices for mutation. It keeps one pool
// per genome length and refills it after every draw, so repeated calls do
// not allocate.
//
// A sampler belongs to a single simulation and is not safe for concurrent use.
type IndexSampler struct {
	pools map[int]*randomset.Set[int]
	drawn []int
}

// NewIndexSampler creates an empty sampler.
func NewIndexSampler() *IndexSampler {
	return &IndexSampler{pools: make(map[int]*randomset.Set[int])}
}

// PollSeveral returns k distinct indices from [0, length), chosen uniformly.
// The returned slice is reused by the next call.
func (s *IndexSampler) PollSeveral(length, k int, rng *rand.Rand) []int {
	if k < 0 || k > length {
		panic(fmt.Sprintf("genome: cannot sample %d indices from %d", k, length))
	}

	pool, ok := s.pools[length]
	if !ok {
		pool = randomset.New[int]()
		for i := 0; i < length; i++ {
			pool.Add(i)
		}
		s.pools[length] = pool
	}

	s.drawn = s.drawn[:0]
	for i := 0; i < k; i++ {
		idx, _ := pool.PollRandom(rng)
		s.drawn = append(s.drawn, idx)
	}
	for _, idx := range s.drawn {
		pool.Add(idx)
	}
	return s.drawn
}
