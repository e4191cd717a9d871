package components

import "fmt"

// Position is a cell on the grid. X grows to the east, Y grows to the north.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Precedes reports whether p is at or below-left of o on both axes.
func (p Position) Precedes(o Position) bool {
	return p.X <= o.X && p.Y <= o.Y
}

// Follows reports whether p is at or above-right of o on both axes.
func (p Position) Follows(o Position) bool {
	return p.X >= o.X && p.Y >= o.Y
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds is an inclusive rectangle of cells.
type Bounds struct {
	Min, Max Position
}

// GridBounds returns the bounds of a width x height grid anchored at the origin.
func GridBounds(width, height int) Bounds {
	return Bounds{Max: Position{X: width - 1, Y: height - 1}}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Position) bool {
	return p.Follows(b.Min) && p.Precedes(b.Max)
}

// Width is the number of columns.
func (b Bounds) Width() int { return b.Max.X - b.Min.X + 1 }

// Height is the number of rows.
func (b Bounds) Height() int { return b.Max.Y - b.Min.Y + 1 }

// Area is the number of cells.
func (b Bounds) Area() int { return b.Width() * b.Height() }

// Index maps p to a row-major slot in [0, Area()).
func (b Bounds) Index(p Position) int {
	return (p.Y-b.Min.Y)*b.Width() + (p.X - b.Min.X)
}

// At is the inverse of Index.
func (b Bounds) At(i int) Position {
	w := b.Width()
	return Position{X: b.Min.X + i%w, Y: b.Min.Y + i/w}
}
