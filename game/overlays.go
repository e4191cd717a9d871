package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/ui"
	"github.com/pthm-cable/evgen/world"
)

var (
	colorTracked  = rl.Color{R: 255, G: 230, B: 60, A: 255}
	colorTrail    = rl.Color{R: 255, G: 230, B: 60, A: 140}
	colorDominant = rl.Color{R: 90, G: 200, B: 255, A: 255}
)

// handleOverlayKeys processes overlay toggle keys using the registry.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// highlight returns the predicate that outlines animals, or nil when no
// highlighting overlay is active.
func (g *Game) highlight() func(world.AnimalInfo) bool {
	if !g.overlays.IsEnabled(ui.OverlayDominant) || g.dominant == "" {
		return nil
	}
	dominant := g.dominant
	return func(a world.AnimalInfo) bool {
		return a.Genome == dominant
	}
}

// drawMapOverlays draws the overlays that sit on top of the animals.
func (g *Game) drawMapOverlays() {
	if g.overlays.IsEnabled(ui.OverlayEffects) {
		g.particles.Draw(g.camera)
	}

	if g.overlays.IsEnabled(ui.OverlayDominant) && g.dominant != "" {
		for _, a := range g.living {
			if a.Genome == g.dominant {
				g.animals.DrawSelection(g.camera, a.Pos, colorDominant)
			}
		}
	}

	id, ok := g.inspector.Tracked()
	if !ok {
		return
	}
	if g.overlays.IsEnabled(ui.OverlayTrails) {
		g.drawTrail(g.inspector.Trail())
	}
	if last := g.inspector.Last(); last.ID == id && last.Alive {
		g.animals.DrawSelection(g.camera, last.Pos, colorTracked)
	}
}

// drawTrail connects consecutive positions. Jumps across an edge or
// through a portal are left unconnected.
func (g *Game) drawTrail(trail []components.Position) {
	for i := 1; i < len(trail); i++ {
		from, to := trail[i-1], trail[i]
		if abs(from.X-to.X) > 1 || abs(from.Y-to.Y) > 1 {
			continue
		}
		fx, fy := g.camera.WorldToScreen(g.layout.CellCenter(from))
		tx, ty := g.camera.WorldToScreen(g.layout.CellCenter(to))
		rl.DrawLineEx(rl.Vector2{X: fx, Y: fy}, rl.Vector2{X: tx, Y: ty}, 2, colorTrail)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
