package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/camera"
	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

// Grid colors
var (
	groundColor    = rl.Color{R: 38, G: 33, B: 26, A: 255}
	preferredColor = rl.Color{R: 40, G: 58, B: 30, A: 255}
	toxicColor     = rl.Color{R: 58, G: 36, B: 56, A: 255}
	gridLineColor  = rl.Color{R: 255, G: 255, B: 255, A: 18}
	foliageColor   = rl.Color{R: 70, G: 170, B: 60, A: 255}
)

// GridOptions selects what the grid pass draws.
type GridOptions struct {
	ShowPreferred bool // shade preferred growth cells
	ShowLines     bool // cell borders
	ToxicPalette  bool // preferred cells mark corpses, not a jungle band
}

// GridRenderer draws the ground, preferred-cell shading and foliage.
type GridRenderer struct {
	layout Layout
}

// NewGridRenderer creates a grid renderer for the given layout.
func NewGridRenderer(layout Layout) *GridRenderer {
	return &GridRenderer{layout: layout}
}

// Draw renders every visible cell of the map.
func (r *GridRenderer) Draw(cam *camera.Camera, m *world.Map, opts GridOptions) {
	bounds := m.Bounds()
	size := r.layout.CellSize * cam.Zoom

	shade := preferredColor
	if opts.ToxicPalette {
		shade = toxicColor
	}

	for i := 0; i < bounds.Area(); i++ {
		pos := bounds.At(i)
		cx, cy := r.layout.CellCenter(pos)
		if !cam.IsVisible(cx, cy, r.layout.CellSize) {
			continue
		}

		ground := groundColor
		if opts.ShowPreferred && m.IsPreferredSpot(pos) {
			ground = shade
		}
		r.forEachScreenPos(cam, pos, func(sx, sy float32) {
			rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, ground)
			if opts.ShowLines {
				rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}, 1, gridLineColor)
			}
		})
	}

	for _, pos := range m.FoliagePositions() {
		r.drawPlant(cam, pos, size)
	}
}

// drawPlant renders a plant as a small leaf cluster.
func (r *GridRenderer) drawPlant(cam *camera.Camera, pos components.Position, size float32) {
	r.forEachScreenPos(cam, pos, func(sx, sy float32) {
		c := rl.Vector2{X: sx + size/2, Y: sy + size/2}
		leaf := size * 0.18
		rl.DrawCircleV(rl.Vector2{X: c.X - leaf, Y: c.Y}, leaf, foliageColor)
		rl.DrawCircleV(rl.Vector2{X: c.X + leaf, Y: c.Y}, leaf, foliageColor)
		rl.DrawCircleV(rl.Vector2{X: c.X, Y: c.Y - leaf}, leaf, foliageColor)
	})
}

// forEachScreenPos calls fn with the screen origin of a cell and of its
// ghost copy when the wrap seam is in view.
func (r *GridRenderer) forEachScreenPos(cam *camera.Camera, pos components.Position, fn func(sx, sy float32)) {
	forEachScreenPos(cam, r.layout, pos, fn)
}

func forEachScreenPos(cam *camera.Camera, layout Layout, pos components.Position, fn func(sx, sy float32)) {
	wx, wy := layout.CellOrigin(pos)
	sx, sy := cam.WorldToScreen(wx, wy)
	fn(sx, sy)
	if gx, ok := cam.GhostX(wx, layout.CellSize); ok {
		fn(gx, sy)
	}
}
