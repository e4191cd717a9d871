package world

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/genome"
	"github.com/pthm-cable/evgen/systems"
)

// animal is a view over one entity's components. The pointers are only
// valid until the next structural change of the ECS world.
type animal struct {
	entity ecs.Entity
	id     *components.Identity
	pos    *components.Position
	rot    *components.Rotation
	energy *components.Energy
	life   *components.Lifecycle
	genes  *components.Genome
}

func (m *Map) animal(e ecs.Entity) animal {
	id, pos, rot, energy, life, genes := m.animalMapper.Get(e)
	return animal{entity: e, id: id, pos: pos, rot: rot, energy: energy, life: life, genes: genes}
}

func (a animal) rank() systems.Rank {
	return systems.Rank{
		Energy:   a.energy.Value,
		Age:      a.life.Age,
		Children: a.life.Children,
		ID:       a.id.ID,
	}
}

func (a animal) eat(gain int) {
	a.energy.Value += gain
	a.life.Eaten++
}

func (a animal) loseEnergy(cost int) {
	a.energy.Value -= cost
}

// ageUp advances the animal one epoch. Returns false once it has starved.
func (a animal) ageUp() bool {
	a.life.Age++
	a.energy.Value--
	return a.energy.Value > 0
}

// move places the animal on to, heading facing.
func (a animal) move(to components.Position, facing components.Direction) {
	*a.pos = to
	a.rot.Facing = facing
}

func (a animal) canProcreate(minEnergy int) bool {
	return a.energy.Value >= minEnergy
}

// updateFacing turns the animal by its next gene.
func (a animal) updateFacing(rng *rand.Rand) {
	if !a.energy.Alive {
		panic(fmt.Sprintf("world: dead animal %d asked to turn", a.id.ID))
	}
	a.rot.Facing = a.rot.Facing.Rotate(a.genes.Genotype.NextDirection(rng))
}

func (a animal) info() AnimalInfo {
	return AnimalInfo{
		ID:        a.id.ID,
		Pos:       *a.pos,
		Facing:    a.rot.Facing,
		Energy:    a.energy.Value,
		Alive:     a.energy.Alive,
		Age:       a.life.Age,
		Children:  a.life.Children,
		Eaten:     a.life.Eaten,
		BornEpoch: a.life.BornEpoch,
		DiedEpoch: a.life.DiedEpoch,
		Genome:    a.genes.Genotype.String(),
		Cursor:    a.genes.Genotype.Cursor(),
	}
}

// markDead flags the animal for removal at the next cleanup.
func (m *Map) markDead(a animal) {
	a.energy.Alive = false
	a.life.DiedEpoch = m.epoch
}

// procreate breeds a with b and places the child on their cell. a must be
// the higher-ranked parent. The parent views are stale afterwards.
func (m *Map) procreate(a, b animal) {
	ea, eb := a.energy.Value, b.energy.Value
	if ea < eb {
		panic(fmt.Sprintf("world: parent %d (%d energy) ranked above %d (%d energy)", a.id.ID, ea, b.id.ID, eb))
	}
	ratio := float64(ea) / float64(ea+eb)
	child := genome.Crossover(a.genes.Genotype, b.genes.Genotype, ratio, m.settings.Genome, m.rng, m.sampler)

	cost := m.settings.ProcreationCost
	a.loseEnergy(cost)
	b.loseEnergy(cost)
	a.life.Children++
	b.life.Children++

	parentA, parentB := a.id.ID, b.id.ID
	pos := *a.pos
	facing := components.Direction(m.rng.Intn(components.NumDirections))
	e := m.spawn(pos, facing, 2*cost, child)

	id, _, _, energy, _, _ := m.animalMapper.Get(e)
	m.report.Births = append(m.report.Births, Birth{
		ID:      id.ID,
		ParentA: parentA,
		ParentB: parentB,
		Pos:     pos,
		Energy:  energy.Value,
		Genome:  child.String(),
	})
}
