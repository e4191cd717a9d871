package systems

import "cmp"

// Rank is the part of an animal's state that orders it within a cell.
type Rank struct {
	Energy   int
	Age      int
	Children int
	ID       uint64
}

// CompareRank orders a before b when a ranks higher: more energy, then
// older, then more children, then the lower id. Distinct ids make the
// order total.
func CompareRank(a, b Rank) int {
	if c := cmp.Compare(b.Energy, a.Energy); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Age, a.Age); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Children, a.Children); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
