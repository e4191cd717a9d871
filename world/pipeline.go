package world

import (
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/systems"
)

// AdvanceEpoch runs one epoch: remove the dead, move every animal, feed and
// breed cell by cell, grow foliage, then age every animal. Events and the
// report of the previous epoch are discarded.
func (m *Map) AdvanceEpoch() {
	m.moves = m.moves[:0]
	m.report = EpochReport{Epoch: m.epoch}

	m.phase(PhaseCleanup)
	m.removeDead()

	m.phase(PhaseMove)
	m.moveAnimals()
	m.removeDead()

	m.phase(PhaseFeed)
	m.feedAndBreed()

	m.phase(PhaseGrow)
	m.report.PlantsGrown = m.growFoliage(m.settings.DailyFoliage)

	m.phase(PhaseAge)
	m.ageAnimals()

	m.epoch++
}

// removeDead drops every animal marked dead, in ascending id order.
func (m *Map) removeDead() {
	// First pass: split the living from the dead (must complete before
	// any entity is removed)
	var dead []ecs.Entity
	kept := m.animals[:0]
	for _, e := range m.animals {
		_, _, _, energy, _, _ := m.animalMapper.Get(e)
		if energy.Alive {
			kept = append(kept, e)
		} else {
			dead = append(dead, e)
		}
	}
	m.animals = kept

	// Second pass: unindex and remove
	for _, e := range dead {
		a := m.animal(e)
		pos := *a.pos
		if !m.cells.Remove(e, pos) {
			panic(fmt.Sprintf("world: dead animal %d missing from cell %v", a.id.ID, pos))
		}
		delete(m.byID, a.id.ID)
		m.grower.AnimalDiedAt(pos)

		m.report.Deaths = append(m.report.Deaths, Death{
			ID:        a.id.ID,
			Pos:       pos,
			Age:       a.life.Age,
			Children:  a.life.Children,
			Eaten:     a.life.Eaten,
			DiedEpoch: a.life.DiedEpoch,
			Genome:    a.genes.Genotype.String(),
		})
		m.world.RemoveEntity(e)
	}
}

func (m *Map) moveAnimals() {
	cost := m.settings.ProcreationCost
	for _, e := range m.animals {
		a := m.animal(e)
		a.updateFacing(m.rng)

		from := *a.pos
		if !m.cells.Remove(e, from) {
			panic(fmt.Sprintf("world: animal %d missing from cell %v", a.id.ID, from))
		}

		mv := m.settings.Topology.ResolveMove(m.bounds, from, a.rot.Facing, m.rng)
		switch mv.Outcome {
		case systems.Wrapped:
			m.report.Wraps++
		case systems.Reflected:
			m.report.Reflections++
		case systems.Teleported:
			m.report.Teleports++
		}
		if mv.Penalty {
			a.loseEnergy(cost)
			if a.energy.Value <= 0 {
				m.markDead(a)
			}
		}

		a.move(mv.To, mv.Facing)
		m.cells.Insert(e, mv.To)
		m.moves = append(m.moves, MoveEvent{ID: a.id.ID, From: from, To: mv.To, Facing: mv.Facing})
	}
}

// feedAndBreed visits occupied cells in row-major order. The top-ranked
// animal eats the cell's plant, then the top two breed if the second has
// enough energy. Children join the cell but take no part this epoch.
func (m *Map) feedAndBreed() {
	m.occupied = m.cells.Occupied(m.occupied[:0])
	for _, pos := range m.occupied {
		ranked := m.rankCell(pos)
		if len(ranked) == 0 {
			continue
		}

		if m.HasFoliage(pos) {
			m.animal(ranked[0].entity).eat(m.settings.EnergyGain)
			m.removePlant(pos)
			m.report.Meals++
		}

		if len(ranked) >= 2 {
			a, b := m.animal(ranked[0].entity), m.animal(ranked[1].entity)
			if b.canProcreate(m.settings.MinProcreationEnergy) {
				m.procreate(a, b)
			}
		}
	}
}

// growFoliage plants up to n plants and returns how many were placed.
func (m *Map) growFoliage(n int) int {
	grown := 0
	for grown < n {
		pos, ok := m.grower.PlantSpot(m.rng)
		if !ok {
			break
		}
		m.plant(pos)
		grown++
	}
	return grown
}

func (m *Map) ageAnimals() {
	for _, e := range m.animals {
		a := m.animal(e)
		if !a.ageUp() {
			m.markDead(a)
		}
	}
}

type ranked struct {
	entity ecs.Entity
	rank   systems.Rank
}

// rankCell orders the living animals at pos, best first. The result is a
// scratch buffer reused by the next call.
func (m *Map) rankCell(pos components.Position) []ranked {
	m.ranked = m.ranked[:0]
	for _, e := range m.cells.At(pos) {
		a := m.animal(e)
		if !a.energy.Alive {
			continue
		}
		m.ranked = append(m.ranked, ranked{entity: e, rank: a.rank()})
	}
	slices.SortFunc(m.ranked, func(x, y ranked) int {
		return systems.CompareRank(x.rank, y.rank)
	})
	return m.ranked
}
