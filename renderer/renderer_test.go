package renderer

import (
	"testing"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

func TestLayoutNorthIsUp(t *testing.T) {
	l := NewLayout(components.GridBounds(4, 3), 10)

	_, ySouth := l.CellOrigin(components.Pos(0, 0))
	_, yNorth := l.CellOrigin(components.Pos(0, 2))
	if ySouth != 20 || yNorth != 0 {
		t.Errorf("origins: south y=%v north y=%v, want 20 and 0", ySouth, yNorth)
	}
}

func TestLayoutCellAtRoundtrip(t *testing.T) {
	l := NewLayout(components.GridBounds(4, 3), 10)
	b := components.GridBounds(4, 3)

	for i := 0; i < b.Area(); i++ {
		pos := b.At(i)
		cx, cy := l.CellCenter(pos)
		got, ok := l.CellAt(cx, cy)
		if !ok || got != pos {
			t.Errorf("CellAt(center of %v) = %v, %v", pos, got, ok)
		}
	}
}

func TestLayoutCellAtOutside(t *testing.T) {
	l := NewLayout(components.GridBounds(4, 3), 10)

	tests := []struct {
		name   string
		wx, wy float32
	}{
		{"left", -1, 5},
		{"above", 5, -1},
		{"right", 40, 5},
		{"below", 5, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := l.CellAt(tt.wx, tt.wy); ok {
				t.Errorf("CellAt(%v, %v) should be outside", tt.wx, tt.wy)
			}
		})
	}
}

func TestEnergyHue(t *testing.T) {
	if h := energyHue(0, 60); h != 0 {
		t.Errorf("energyHue(0) = %v, want 0", h)
	}
	if h := energyHue(120, 60); h != 120 {
		t.Errorf("energyHue(120) = %v, want 120 (clamped)", h)
	}
	if h := energyHue(30, 60); h != 60 {
		t.Errorf("energyHue(30) = %v, want 60", h)
	}
}

func TestMovementInterpolation(t *testing.T) {
	from := components.Pos(2, 2)

	tests := []struct {
		name   string
		to     components.Position
		smooth bool
	}{
		{"step", components.Pos(3, 3), true},
		{"stay", components.Pos(2, 2), true},
		{"wrap", components.Pos(9, 2), false},
		{"teleport", components.Pos(5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStep(from, tt.to); got != tt.smooth {
				t.Errorf("isStep(%v, %v) = %v, want %v", from, tt.to, got, tt.smooth)
			}
		})
	}
}

func TestParticlesExpire(t *testing.T) {
	r := NewParticleRenderer(NewLayout(components.GridBounds(4, 3), 10))
	r.Emit(world.EpochReport{
		Births: []world.Birth{{Pos: components.Pos(1, 1)}},
		Deaths: []world.Death{{Pos: components.Pos(2, 2)}},
	}, nil)
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	for i := 0; i < particleLife; i++ {
		r.Update()
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d after %d frames, want 0", r.Len(), particleLife)
	}
}
