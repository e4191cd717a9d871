package world

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evgen/components"
)

// ObjectKind classifies what ObjectAt found.
type ObjectKind uint8

const (
	Empty ObjectKind = iota
	AnimalObject
	PlantObject
)

// Object is the most prominent thing on a cell: its top-ranked living
// animal, else its plant.
type Object struct {
	Kind   ObjectKind
	Animal AnimalInfo // set when Kind is AnimalObject
}

// AnimalInfo is a copy of an animal's observable state.
type AnimalInfo struct {
	ID        uint64               `inspect:"label"`
	Pos       components.Position  `inspect:"label"`
	Facing    components.Direction `inspect:"dir"`
	Energy    int                  `inspect:"bar,max:100"`
	Alive     bool                 `inspect:"bool"`
	Age       int                  `inspect:"label"`
	Children  int                  `inspect:"label"`
	Eaten     int                  `inspect:"label"`
	BornEpoch int                  `inspect:"label"`
	DiedEpoch int                  `inspect:"skip"`
	Genome    string               `inspect:"skip"`
	Cursor    int                  `inspect:"skip"`
}

// InBounds reports whether pos is on the grid.
func (m *Map) InBounds(pos components.Position) bool {
	return m.bounds.Contains(pos)
}

// HasFoliage reports whether pos holds a plant.
func (m *Map) HasFoliage(pos components.Position) bool {
	return m.bounds.Contains(pos) && m.foliage[m.bounds.Index(pos)]
}

// IsOccupied reports whether pos holds a living animal or a plant.
func (m *Map) IsOccupied(pos components.Position) bool {
	if !m.bounds.Contains(pos) {
		return false
	}
	return m.foliage[m.bounds.Index(pos)] || m.hasLiving(pos)
}

// ObjectAt returns the top-ranked living animal at pos, else the plant,
// else Empty.
func (m *Map) ObjectAt(pos components.Position) Object {
	if !m.bounds.Contains(pos) {
		return Object{}
	}
	if ranked := m.rankCell(pos); len(ranked) > 0 {
		return Object{Kind: AnimalObject, Animal: m.animal(ranked[0].entity).info()}
	}
	if m.foliage[m.bounds.Index(pos)] {
		return Object{Kind: PlantObject}
	}
	return Object{}
}

// AnimalsAt returns the living animals at pos, best ranked first.
func (m *Map) AnimalsAt(pos components.Position) []AnimalInfo {
	if !m.bounds.Contains(pos) {
		return nil
	}
	ranked := m.rankCell(pos)
	out := make([]AnimalInfo, len(ranked))
	for i, r := range ranked {
		out[i] = m.animal(r.entity).info()
	}
	return out
}

// IsPreferredSpot reports whether the grower currently prefers pos.
func (m *Map) IsPreferredSpot(pos components.Position) bool {
	return m.bounds.Contains(pos) && m.grower.IsPreferred(pos)
}

// Epoch returns the number of completed epochs.
func (m *Map) Epoch() int { return m.epoch }

// Bounds returns the inclusive grid rectangle.
func (m *Map) Bounds() components.Bounds { return m.bounds }

// FoliageCount returns the number of plants.
func (m *Map) FoliageCount() int { return m.foliageCount }

// AnimalCount returns the number of living animals.
func (m *Map) AnimalCount() int {
	n := 0
	for _, e := range m.animals {
		if _, _, _, energy, _, _ := m.animalMapper.Get(e); energy.Alive {
			n++
		}
	}
	return n
}

// FreeFieldCount returns the number of cells with neither a plant nor a
// living animal.
func (m *Map) FreeFieldCount() int {
	free := 0
	for i, hasPlant := range m.foliage {
		if !hasPlant && !m.hasLiving(m.bounds.At(i)) {
			free++
		}
	}
	return free
}

// Animals returns the living animals in ascending id order.
func (m *Map) Animals() []AnimalInfo {
	out := make([]AnimalInfo, 0, len(m.animals))
	for _, e := range m.animals {
		a := m.animal(e)
		if a.energy.Alive {
			out = append(out, a.info())
		}
	}
	return out
}

// Animal looks up an animal still on the map. Animals that died this epoch
// are found until the next cleanup.
func (m *Map) Animal(id uint64) (AnimalInfo, bool) {
	e, ok := m.byID[id]
	if !ok {
		return AnimalInfo{}, false
	}
	return m.animal(e).info(), true
}

// EnergyLevels appends the energy of every living animal to dst.
func (m *Map) EnergyLevels(dst []float64) []float64 {
	query := m.vitalsFilter.Query()
	for query.Next() {
		energy, _ := query.Get()
		if energy.Alive {
			dst = append(dst, float64(energy.Value))
		}
	}
	return dst
}

// Moves returns the relocations of the last epoch, in move order. The
// slice is reused by the next AdvanceEpoch.
func (m *Map) Moves() []MoveEvent { return m.moves }

// Report returns the summary of the last epoch.
func (m *Map) Report() EpochReport { return m.report }

// FoliagePositions returns every plant in row-major order.
func (m *Map) FoliagePositions() []components.Position {
	out := make([]components.Position, 0, m.foliageCount)
	for i, hasPlant := range m.foliage {
		if hasPlant {
			out = append(out, m.bounds.At(i))
		}
	}
	return out
}

func (m *Map) hasLiving(pos components.Position) bool {
	return slices.ContainsFunc(m.cells.At(pos), func(e ecs.Entity) bool {
		_, _, _, energy, _, _ := m.animalMapper.Get(e)
		return energy.Alive
	})
}
