// Package world implements the grid simulation kernel: animals, foliage and
// the epoch pipeline that advances them.
package world

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/genome"
	"github.com/pthm-cable/evgen/systems"
)

// Map owns every animal and plant of one simulation. For a fixed seed and
// settings the sequence of states is fully reproducible.
//
// A Map is not safe for concurrent use. Independent maps may run on
// separate goroutines.
type Map struct {
	settings Settings
	bounds   components.Bounds
	rng      *rand.Rand
	sampler  *genome.IndexSampler
	grower   *systems.Grower
	cells    *systems.CellIndex

	foliage      []bool // row-major, one flag per cell
	foliageCount int

	// ECS
	world        *ecs.World
	animalMapper *ecs.Map6[components.Identity, components.Position, components.Rotation, components.Energy, components.Lifecycle, components.Genome]
	vitalsFilter *ecs.Filter2[components.Energy, components.Lifecycle]

	animals []ecs.Entity // ascending id, dead ones included until cleanup
	byID    map[uint64]ecs.Entity
	nextID  uint64
	epoch   int

	moves     []MoveEvent
	report    EpochReport
	phaseHook func(Phase)

	// scratch buffers
	occupied []components.Position
	ranked   []ranked
}

// New creates a map, plants the starting foliage and places the starting
// animals. It panics if the settings are invalid; callers validate
// configuration first.
func New(s Settings, seed int64) *Map {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("world: invalid settings: %v", err))
	}

	bounds := components.GridBounds(s.Width, s.Height)
	w := ecs.NewWorld()
	m := &Map{
		settings:     s,
		bounds:       bounds,
		rng:          rand.New(rand.NewSource(seed)),
		sampler:      genome.NewIndexSampler(),
		grower:       systems.NewGrower(s.Growth, bounds),
		cells:        systems.NewCellIndex(bounds),
		foliage:      make([]bool, bounds.Area()),
		world:        w,
		animalMapper: ecs.NewMap6[components.Identity, components.Position, components.Rotation, components.Energy, components.Lifecycle, components.Genome](w),
		vitalsFilter: ecs.NewFilter2[components.Energy, components.Lifecycle](w),
		byID:         make(map[uint64]ecs.Entity),
		nextID:       1,
	}

	m.growFoliage(s.StartingFoliage)
	for i := 0; i < s.StartingAnimals; i++ {
		pos := components.Pos(m.rng.Intn(s.Width), m.rng.Intn(s.Height))
		facing := components.Direction(m.rng.Intn(components.NumDirections))
		g := genome.NewRandom(s.Genome, m.rng)
		m.spawn(pos, facing, s.StartingEnergy, g)
	}
	return m
}

// SetPhaseHook registers fn to be called as each pipeline step starts.
// Pass nil to remove it.
func (m *Map) SetPhaseHook(fn func(Phase)) {
	m.phaseHook = fn
}

// Settings returns the settings the map was built with.
func (m *Map) Settings() Settings { return m.settings }

// Grower exposes the foliage grower for read-only inspection.
func (m *Map) Grower() *systems.Grower { return m.grower }

// spawn creates an animal and indexes it. Any component pointers fetched
// before this call may be invalidated.
func (m *Map) spawn(pos components.Position, facing components.Direction, energy int, g *genome.Genotype) ecs.Entity {
	id := m.nextID
	m.nextID++

	e := m.animalMapper.NewEntity(
		&components.Identity{ID: id},
		&pos,
		&components.Rotation{Facing: facing},
		&components.Energy{Value: energy, Alive: energy > 0},
		&components.Lifecycle{BornEpoch: m.epoch},
		&components.Genome{Genotype: g},
	)
	m.animals = append(m.animals, e)
	m.byID[id] = e
	m.cells.Insert(e, pos)
	return e
}

func (m *Map) plant(pos components.Position) {
	i := m.bounds.Index(pos)
	if m.foliage[i] {
		panic(fmt.Sprintf("world: grower offered %v, which already has a plant", pos))
	}
	m.foliage[i] = true
	m.foliageCount++
}

func (m *Map) removePlant(pos components.Position) {
	i := m.bounds.Index(pos)
	if !m.foliage[i] {
		panic(fmt.Sprintf("world: no plant to remove at %v", pos))
	}
	m.foliage[i] = false
	m.foliageCount--
	m.grower.PlantEaten(pos)
}

func (m *Map) phase(p Phase) {
	if m.phaseHook != nil {
		m.phaseHook(p)
	}
}
