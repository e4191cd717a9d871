package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/camera"
	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

// highlightColor outlines animals picked out by an overlay.
var highlightColor = rl.Color{R: 255, G: 220, B: 60, A: 255}

// AnimalRenderer draws animals as triangles pointing where they face,
// gliding from their last cell while an epoch is shown.
type AnimalRenderer struct {
	layout     Layout
	fullEnergy float32 // energy drawn at full hue

	from map[uint64]components.Position
}

// NewAnimalRenderer creates an animal renderer. Animals at fullEnergy or
// more are drawn green, starving ones red.
func NewAnimalRenderer(layout Layout, fullEnergy int) *AnimalRenderer {
	return &AnimalRenderer{
		layout:     layout,
		fullEnergy: float32(max(fullEnergy, 1)),
		from:       make(map[uint64]components.Position),
	}
}

// TrackMoves remembers where animals came from in the last epoch.
// Only single steps glide; wraps and teleports jump.
func (r *AnimalRenderer) TrackMoves(moves []world.MoveEvent) {
	clear(r.from)
	for _, mv := range moves {
		if isStep(mv.From, mv.To) {
			r.from[mv.ID] = mv.From
		}
	}
}

// Draw renders animals. progress in [0, 1] is how far through the epoch
// the display is. highlight may be nil.
func (r *AnimalRenderer) Draw(cam *camera.Camera, animals []world.AnimalInfo, progress float32, highlight func(world.AnimalInfo) bool) {
	progress = min(max(progress, 0), 1)
	radius := r.layout.CellSize * 0.32 * cam.Zoom

	for _, a := range animals {
		wx, wy := r.layout.CellCenter(a.Pos)
		if from, ok := r.from[a.ID]; ok {
			fx, fy := r.layout.CellCenter(from)
			wx = fx + (wx-fx)*progress
			wy = fy + (wy-fy)*progress
		}
		if !cam.IsVisible(wx, wy, r.layout.CellSize) {
			continue
		}

		color := rl.ColorFromHSV(energyHue(a.Energy, r.fullEnergy), 0.75, 0.95)
		marked := highlight != nil && highlight(a)

		sx, sy := cam.WorldToScreen(wx, wy)
		drawFacingTriangle(sx, sy, a.Facing, radius, color, marked)
		if gx, ok := cam.GhostX(wx, r.layout.CellSize); ok {
			drawFacingTriangle(gx, sy, a.Facing, radius, color, marked)
		}
	}
}

// DrawSelection rings the cell an animal is on.
func (r *AnimalRenderer) DrawSelection(cam *camera.Camera, pos components.Position, color rl.Color) {
	radius := r.layout.CellSize * 0.48 * cam.Zoom
	forEachScreenPos(cam, r.layout, pos, func(sx, sy float32) {
		half := r.layout.CellSize * cam.Zoom / 2
		rl.DrawCircleLinesV(rl.Vector2{X: sx + half, Y: sy + half}, radius, color)
	})
}

// energyHue maps energy to a hue from red (0) to green (120).
func energyHue(energy int, full float32) float32 {
	t := float32(energy) / full
	return min(max(t, 0), 1) * 120
}

// isStep reports whether a move went at most one cell in each axis.
func isStep(from, to components.Position) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// drawFacingTriangle draws a triangle centered at (x, y) pointing along d.
func drawFacingTriangle(x, y float32, d components.Direction, radius float32, color rl.Color, outlined bool) {
	// Clockwise from north, with screen y growing downward
	angle := float64(d.Degrees()) * math.Pi / 180
	fx, fy := float32(math.Sin(angle)), -float32(math.Cos(angle))
	rx, ry := -fy, fx

	tip := rl.Vector2{X: x + fx*radius, Y: y + fy*radius}
	left := rl.Vector2{X: x - fx*radius*0.7 - rx*radius*0.7, Y: y - fy*radius*0.7 - ry*radius*0.7}
	right := rl.Vector2{X: x - fx*radius*0.7 + rx*radius*0.7, Y: y - fy*radius*0.7 + ry*radius*0.7}

	// raylib wants counter-clockwise winding
	rl.DrawTriangle(tip, left, right, color)
	if outlined {
		rl.DrawTriangleLines(tip, left, right, highlightColor)
	}
}
