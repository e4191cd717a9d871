// Package systems holds the per-concern rules of the simulation: foliage
// growth, map topology, in-cell ranking and the cell index.
package systems

import (
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evgen/components"
)

// CellIndex maps each grid cell to the entities standing on it.
type CellIndex struct {
	bounds components.Bounds
	cells  [][]ecs.Entity // flat row-major grid of entity lists
	count  int
}

// NewCellIndex creates an empty index covering bounds.
func NewCellIndex(bounds components.Bounds) *CellIndex {
	cells := make([][]ecs.Entity, bounds.Area())
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 2)
	}
	return &CellIndex{bounds: bounds, cells: cells}
}

// Insert adds e at pos.
func (c *CellIndex) Insert(e ecs.Entity, pos components.Position) {
	i := c.slot(pos)
	c.cells[i] = append(c.cells[i], e)
	c.count++
}

// Remove deletes e from pos, keeping the order of the rest.
// Returns false if e was not there.
func (c *CellIndex) Remove(e ecs.Entity, pos components.Position) bool {
	i := c.slot(pos)
	k := slices.Index(c.cells[i], e)
	if k < 0 {
		return false
	}
	c.cells[i] = slices.Delete(c.cells[i], k, k+1)
	c.count--
	return true
}

// At returns the entities at pos. The slice is owned by the index.
func (c *CellIndex) At(pos components.Position) []ecs.Entity {
	return c.cells[c.slot(pos)]
}

// Occupied lists the non-empty cells in row-major order.
func (c *CellIndex) Occupied(dst []components.Position) []components.Position {
	for i, cell := range c.cells {
		if len(cell) > 0 {
			dst = append(dst, c.bounds.At(i))
		}
	}
	return dst
}

// Len is the number of indexed entities.
func (c *CellIndex) Len() int { return c.count }

func (c *CellIndex) slot(pos components.Position) int {
	if !c.bounds.Contains(pos) {
		panic(fmt.Sprintf("systems: cell %v outside %v..%v", pos, c.bounds.Min, c.bounds.Max))
	}
	return c.bounds.Index(pos)
}
