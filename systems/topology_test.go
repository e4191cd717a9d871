package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/evgen/components"
)

func TestGlobeResolveMove(t *testing.T) {
	b := components.GridBounds(5, 5)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name    string
		pos     components.Position
		dir     components.Direction
		wantPos components.Position
		wantDir components.Direction
		outcome MoveOutcome
	}{
		{"inside", components.Pos(2, 2), components.North, components.Pos(2, 3), components.North, Stepped},
		{"north pole", components.Pos(1, 4), components.North, components.Pos(1, 4), components.South, Reflected},
		{"south pole", components.Pos(1, 0), components.SouthWest, components.Pos(1, 0), components.NorthEast, Reflected},
		{"west wrap", components.Pos(0, 1), components.West, components.Pos(4, 1), components.West, Wrapped},
		{"east wrap", components.Pos(4, 1), components.East, components.Pos(0, 1), components.East, Wrapped},
		{"east wrap diagonal", components.Pos(4, 1), components.NorthEast, components.Pos(0, 2), components.NorthEast, Wrapped},
		{"corner reflects", components.Pos(4, 4), components.NorthEast, components.Pos(4, 4), components.SouthWest, Reflected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Globe.ResolveMove(b, tt.pos, tt.dir, rng)
			assert.Equal(t, tt.wantPos, m.To)
			assert.Equal(t, tt.wantDir, m.Facing)
			assert.Equal(t, tt.outcome, m.Outcome)
			assert.False(t, m.Penalty)
		})
	}
}

func TestPortalResolveMove(t *testing.T) {
	b := components.GridBounds(5, 5)
	rng := rand.New(rand.NewSource(9))

	m := Portal.ResolveMove(b, components.Pos(2, 2), components.East, rng)
	assert.Equal(t, components.Pos(3, 2), m.To)
	assert.False(t, m.Penalty)

	for i := 0; i < 100; i++ {
		m = Portal.ResolveMove(b, components.Pos(4, 4), components.NorthEast, rng)
		assert.True(t, m.Penalty)
		assert.Equal(t, Teleported, m.Outcome)
		assert.True(t, b.Contains(m.To), "landed at %v", m.To)
		assert.Less(t, int(m.Facing), components.NumDirections)
	}
}

func TestPortalDeterministic(t *testing.T) {
	b := components.GridBounds(8, 6)
	a := rand.New(rand.NewSource(5))
	c := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		m1 := Portal.ResolveMove(b, components.Pos(0, 0), components.SouthWest, a)
		m2 := Portal.ResolveMove(b, components.Pos(0, 0), components.SouthWest, c)
		assert.Equal(t, m1, m2)
	}
}

func TestParseTopology(t *testing.T) {
	top, err := ParseTopology("Portal")
	assert.NoError(t, err)
	assert.Equal(t, Portal, top)
	_, err = ParseTopology("torus")
	assert.Error(t, err)
}
