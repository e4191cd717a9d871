package systems

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pthm-cable/evgen/components"
)

// Topology decides what happens when a step leaves the grid.
type Topology uint8

const (
	// Globe wraps east-west and reflects at the poles.
	Globe Topology = iota
	// Portal teleports the walker to a random cell at an energy cost.
	Portal
)

// ParseTopology maps a configuration name to a Topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(s) {
	case "globe":
		return Globe, nil
	case "portal":
		return Portal, nil
	}
	return 0, fmt.Errorf("unknown map variant %q", s)
}

func (t Topology) String() string {
	if t == Portal {
		return "portal"
	}
	return "globe"
}

// MoveOutcome classifies a resolved step.
type MoveOutcome uint8

const (
	Stepped MoveOutcome = iota
	Wrapped
	Reflected
	Teleported
)

// Move is a resolved step. Penalty is set when the walker owes the
// topology's energy cost.
type Move struct {
	To      components.Position
	Facing  components.Direction
	Outcome MoveOutcome
	Penalty bool
}

// ResolveMove computes where a walker at pos facing dir ends up.
// Only Portal consumes rng, and only when the step leaves the grid.
func (t Topology) ResolveMove(b components.Bounds, pos components.Position, dir components.Direction, rng *rand.Rand) Move {
	next := pos.Add(dir.Unit())
	if b.Contains(next) {
		return Move{To: next, Facing: dir, Outcome: Stepped}
	}

	if t == Portal {
		x := b.Min.X + rng.Intn(b.Width())
		y := b.Min.Y + rng.Intn(b.Height())
		facing := components.Direction(rng.Intn(components.NumDirections))
		return Move{To: components.Pos(x, y), Facing: facing, Outcome: Teleported, Penalty: true}
	}

	// Poles take priority over the date line on corner steps.
	if next.Y < b.Min.Y || next.Y > b.Max.Y {
		return Move{To: pos, Facing: dir.Opposite(), Outcome: Reflected}
	}
	if next.X < b.Min.X {
		next.X = b.Max.X
	} else {
		next.X = b.Min.X
	}
	return Move{To: next, Facing: dir, Outcome: Wrapped}
}
