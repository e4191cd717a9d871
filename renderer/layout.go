// Package renderer draws the grid, its foliage and its animals with raylib.
package renderer

import "github.com/pthm-cable/evgen/components"

// Layout maps grid cells to world pixels. Row 0 is the southern edge and is
// drawn at the bottom, so north points up on screen.
type Layout struct {
	CellSize   float32
	Cols, Rows int
}

// NewLayout creates a layout for a grid of the given size.
func NewLayout(bounds components.Bounds, cellSize float32) Layout {
	return Layout{CellSize: cellSize, Cols: bounds.Width(), Rows: bounds.Height()}
}

// WorldSize returns the grid extent in world pixels.
func (l Layout) WorldSize() (w, h float32) {
	return float32(l.Cols) * l.CellSize, float32(l.Rows) * l.CellSize
}

// CellOrigin returns the top-left corner of a cell in world pixels.
func (l Layout) CellOrigin(pos components.Position) (x, y float32) {
	return float32(pos.X) * l.CellSize, float32(l.Rows-1-pos.Y) * l.CellSize
}

// CellCenter returns the center of a cell in world pixels.
func (l Layout) CellCenter(pos components.Position) (x, y float32) {
	x, y = l.CellOrigin(pos)
	return x + l.CellSize/2, y + l.CellSize/2
}

// CellAt returns the cell under a world pixel.
func (l Layout) CellAt(wx, wy float32) (components.Position, bool) {
	if wx < 0 || wy < 0 {
		return components.Position{}, false
	}
	col := int(wx / l.CellSize)
	row := int(wy / l.CellSize)
	if col >= l.Cols || row >= l.Rows {
		return components.Position{}, false
	}
	return components.Pos(col, l.Rows-1-row), true
}
