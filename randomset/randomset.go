// Package randomset provides a set with O(1) insert, remove, membership and
// uniform random removal.
package randomset

import "math/rand"

// Set is an unordered collection of distinct values backed by a dense slice
// and a value-to-slot index. Removal swaps the last element into the freed
// slot so every operation stays constant time.
//
// A Set is not safe for concurrent use.
type Set[T comparable] struct {
	items []T
	slots map[T]int
}

// New creates an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{slots: make(map[T]int)}
}

// Of creates a set holding the given values, in order.
func Of[T comparable](values ...T) *Set[T] {
	s := &Set[T]{
		items: make([]T, 0, len(values)),
		slots: make(map[T]int, len(values)),
	}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts x. Returns false if x was already present.
func (s *Set[T]) Add(x T) bool {
	if _, ok := s.slots[x]; ok {
		return false
	}
	s.slots[x] = len(s.items)
	s.items = append(s.items, x)
	return true
}

// Remove deletes x. Returns false if x was absent.
func (s *Set[T]) Remove(x T) bool {
	slot, ok := s.slots[x]
	if !ok {
		return false
	}
	s.removeAt(slot)
	return true
}

// Contains reports whether x is in the set.
func (s *Set[T]) Contains(x T) bool {
	_, ok := s.slots[x]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// PollRandom removes and returns a uniformly chosen element.
// Returns false when the set is empty; rng is not consumed in that case.
func (s *Set[T]) PollRandom(rng *rand.Rand) (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	slot := rng.Intn(len(s.items))
	x := s.items[slot]
	s.removeAt(slot)
	return x, true
}

// Values returns a copy of the elements in internal slot order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set[T]) removeAt(slot int) {
	last := len(s.items) - 1
	x := s.items[slot]
	if slot != last {
		moved := s.items[last]
		s.items[slot] = moved
		s.slots[moved] = slot
	}
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	delete(s.slots, x)
}
