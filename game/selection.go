package game

import (
	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

// cellAtScreen returns the grid cell under a screen point.
func (g *Game) cellAtScreen(sx, sy float32) (components.Position, bool) {
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	return g.layout.CellAt(wx, wy)
}

// animalAtScreen returns the top-ranked living animal in the cell under a
// screen point.
func (g *Game) animalAtScreen(sx, sy float32) (world.AnimalInfo, bool) {
	pos, ok := g.cellAtScreen(sx, sy)
	if !ok {
		return world.AnimalInfo{}, false
	}
	for _, a := range g.sim.Map().AnimalsAt(pos) {
		if a.Alive {
			return a, true
		}
	}
	return world.AnimalInfo{}, false
}
