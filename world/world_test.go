package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/genome"
	"github.com/pthm-cable/evgen/systems"
)

func baseSettings() Settings {
	return Settings{
		Width:                20,
		Height:               10,
		Topology:             systems.Globe,
		Growth:               systems.Equatorial,
		StartingFoliage:      5,
		DailyFoliage:         2,
		EnergyGain:           5,
		StartingAnimals:      2,
		StartingEnergy:       30,
		MinProcreationEnergy: 15,
		ProcreationCost:      10,
		Genome:               genome.Params{Length: 32, MaxMutations: 5},
	}
}

// tinySettings describes a 1x1 grid on which every move ends where it
// started, so tests control exactly who shares the cell.
func tinySettings() Settings {
	s := baseSettings()
	s.Width, s.Height = 1, 1
	s.StartingFoliage, s.DailyFoliage = 0, 0
	s.StartingAnimals = 0
	s.MinProcreationEnergy, s.ProcreationCost = 30, 30
	s.Genome = genome.Params{Length: 4}
	return s
}

func still() *genome.Genotype {
	return genome.FromGenes([]uint8{0, 0, 0, 0}, 0, genome.Predestined)
}

func spawnAt(m *Map, energy int) uint64 {
	e := m.spawn(components.Pos(0, 0), components.North, energy, still())
	return m.animal(e).id.ID
}

func TestAgeUpUntilStarved(t *testing.T) {
	m := New(tinySettings(), 1)
	a := m.animal(m.byID[spawnAt(m, 4)])

	assert.True(t, a.ageUp())
	assert.True(t, a.ageUp())
	assert.True(t, a.ageUp())
	assert.False(t, a.ageUp())
	assert.Equal(t, 4, a.life.Age)
}

func TestMoveRelocatesAndTurns(t *testing.T) {
	s := baseSettings()
	s.StartingAnimals = 0
	m := New(s, 1)
	e := m.spawn(components.Pos(0, 0), components.North, 12, still())
	a := m.animal(e)

	a.move(components.Pos(3, 4), components.SouthWest)

	info, ok := m.Animal(a.id.ID)
	require.True(t, ok)
	assert.Equal(t, components.Pos(3, 4), info.Pos)
	assert.Equal(t, components.SouthWest, info.Facing)
	assert.Equal(t, 12, info.Energy, "moving itself costs nothing")
}

func TestProcreateEqualParents(t *testing.T) {
	m := New(tinySettings(), 1)
	first := spawnAt(m, 50)
	second := spawnAt(m, 50)

	m.feedAndBreed()

	require.Len(t, m.report.Births, 1)
	birth := m.report.Births[0]
	assert.Equal(t, 60, birth.Energy)
	assert.Equal(t, first, birth.ParentA, "lower id wins the tie")
	assert.Equal(t, second, birth.ParentB)

	for _, id := range []uint64{first, second} {
		info, ok := m.Animal(id)
		require.True(t, ok)
		assert.Equal(t, 20, info.Energy)
		assert.Equal(t, 1, info.Children)
	}
	child, ok := m.Animal(birth.ID)
	require.True(t, ok)
	assert.Equal(t, 60, child.Energy)
	assert.Zero(t, child.Age)
	assert.Equal(t, 3, m.AnimalCount())
}

func TestWeakPartnerDoesNotBreed(t *testing.T) {
	m := New(tinySettings(), 1)
	spawnAt(m, 50)
	spawnAt(m, 29)

	m.feedAndBreed()
	assert.Empty(t, m.report.Births)
	assert.Equal(t, 2, m.AnimalCount())
}

func TestTopAnimalEatsThenBreeds(t *testing.T) {
	s := tinySettings()
	s.StartingFoliage = 1
	m := New(s, 1)
	require.True(t, m.HasFoliage(components.Pos(0, 0)))

	weak := spawnAt(m, 40)
	strong := spawnAt(m, 50)
	m.feedAndBreed()

	assert.False(t, m.HasFoliage(components.Pos(0, 0)))
	assert.Equal(t, 1, m.report.Meals)

	info, _ := m.Animal(strong)
	assert.Equal(t, 1, info.Eaten)
	assert.Equal(t, 50+5-30, info.Energy)
	info, _ = m.Animal(weak)
	assert.Zero(t, info.Eaten)
	assert.Equal(t, 10, info.Energy)

	// The plant went back to the grower.
	assert.Equal(t, 1, m.grower.AvailablePreferred()+m.grower.AvailableRegular())
}

func TestObjectAtPrefersAnimal(t *testing.T) {
	s := tinySettings()
	s.StartingFoliage = 1
	m := New(s, 1)
	origin := components.Pos(0, 0)

	assert.Equal(t, PlantObject, m.ObjectAt(origin).Kind)
	assert.True(t, m.IsOccupied(origin))

	low := spawnAt(m, 10)
	high := spawnAt(m, 20)
	obj := m.ObjectAt(origin)
	require.Equal(t, AnimalObject, obj.Kind)
	assert.Equal(t, high, obj.Animal.ID)

	ranked := m.AnimalsAt(origin)
	require.Len(t, ranked, 2)
	assert.Equal(t, low, ranked[1].ID)

	assert.Equal(t, Empty, m.ObjectAt(components.Pos(3, 3)).Kind)
	assert.False(t, m.IsOccupied(components.Pos(-1, 0)))
}

func TestFullEpochOnSingleCell(t *testing.T) {
	m := New(tinySettings(), 1)
	spawnAt(m, 50)
	spawnAt(m, 50)

	m.AdvanceEpoch()

	assert.Equal(t, 1, m.Epoch())
	assert.Equal(t, 3, m.AnimalCount())
	r := m.Report()
	assert.Len(t, r.Births, 1)
	assert.Len(t, m.Moves(), 2)

	var energies []int
	for _, a := range m.Animals() {
		energies = append(energies, a.Energy)
		assert.Equal(t, 1, a.Age)
	}
	assert.Equal(t, []int{19, 19, 59}, energies)
}

func TestStarvedAnimalRemovedNextEpoch(t *testing.T) {
	s := tinySettings()
	s.Growth = systems.ToxicCorpses
	m := New(s, 1)
	id := spawnAt(m, 1)

	m.AdvanceEpoch()
	assert.Zero(t, m.AnimalCount())
	info, ok := m.Animal(id)
	require.True(t, ok, "dead animals stay until cleanup")
	assert.False(t, info.Alive)
	assert.Zero(t, info.DiedEpoch)
	assert.False(t, m.IsOccupied(components.Pos(0, 0)))

	m.AdvanceEpoch()
	_, ok = m.Animal(id)
	assert.False(t, ok)
	deaths := m.Report().Deaths
	require.Len(t, deaths, 1)
	assert.Equal(t, id, deaths[0].ID)
	assert.Equal(t, 1, deaths[0].Age)
	assert.Equal(t, 1, m.grower.DeathCount(components.Pos(0, 0)))
	assert.Empty(t, m.Moves())
}

func TestGlobePoleReflection(t *testing.T) {
	m := New(tinySettings(), 1)
	id := spawnAt(m, 10)

	m.AdvanceEpoch()
	moves := m.Moves()
	require.Len(t, moves, 1)
	assert.Equal(t, MoveEvent{ID: id, From: components.Pos(0, 0), To: components.Pos(0, 0), Facing: components.South}, moves[0])
	assert.Equal(t, 1, m.Report().Reflections)
}

func TestPortalPenaltyKills(t *testing.T) {
	s := tinySettings()
	s.Topology = systems.Portal
	s.MinProcreationEnergy, s.ProcreationCost = 10, 10
	m := New(s, 1)
	spawnAt(m, 5)
	survivor := spawnAt(m, 25)

	m.AdvanceEpoch()
	r := m.Report()
	assert.Equal(t, 2, r.Teleports)
	require.Len(t, r.Deaths, 1, "penalty death is cleaned up in the same epoch")
	assert.Equal(t, 1, m.AnimalCount())

	info, ok := m.Animal(survivor)
	require.True(t, ok)
	assert.Equal(t, 25-10-1, info.Energy)
}

func TestEmptyMapOnlyGrowsFoliage(t *testing.T) {
	s := baseSettings()
	s.StartingAnimals = 0
	m := New(s, 3)
	area := m.Bounds().Area()

	for i := 0; i < 200; i++ {
		m.AdvanceEpoch()
		require.LessOrEqual(t, m.FoliageCount(), area)
		require.Zero(t, m.AnimalCount())
		require.Empty(t, m.Moves())
	}
	assert.Equal(t, area, m.FoliageCount())
	assert.Zero(t, m.FreeFieldCount())
	assert.Equal(t, 200, m.Epoch())
}

func TestEmptyWorldStaysEmpty(t *testing.T) {
	s := baseSettings()
	s.StartingAnimals = 0
	s.StartingFoliage = 0
	s.DailyFoliage = 0
	m := New(s, 9)

	for i := 0; i < 25; i++ {
		m.AdvanceEpoch()
	}
	b := m.Bounds()
	for i := 0; i < b.Area(); i++ {
		pos := b.At(i)
		require.Equal(t, Empty, m.ObjectAt(pos).Kind, "cell %v", pos)
		require.False(t, m.IsOccupied(pos))
	}
	assert.Zero(t, m.AnimalCount())
	assert.Zero(t, m.FoliageCount())
	assert.Equal(t, b.Area(), m.FreeFieldCount())
}

func TestDeterministicForSeed(t *testing.T) {
	s := baseSettings()
	s.StartingAnimals = 30
	s.Genome.Behaviour = genome.Erratic
	a, b := New(s, 42), New(s, 42)

	for i := 0; i < 60; i++ {
		a.AdvanceEpoch()
		b.AdvanceEpoch()
		require.Equal(t, a.Moves(), b.Moves(), "epoch %d", i)
	}
	assert.Equal(t, a.Animals(), b.Animals())
	assert.Equal(t, a.FoliagePositions(), b.FoliagePositions())
}

func TestIndexesStayConsistent(t *testing.T) {
	variants := []struct {
		name     string
		topology systems.Topology
		growth   systems.GrowthVariant
	}{
		{"globe equator", systems.Globe, systems.Equatorial},
		{"portal toxic", systems.Portal, systems.ToxicCorpses},
	}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			s := baseSettings()
			s.Topology, s.Growth = v.topology, v.growth
			s.StartingAnimals = 40
			s.DailyFoliage = 10
			m := New(s, 7)
			area := m.Bounds().Area()

			for i := 0; i < 150; i++ {
				m.AdvanceEpoch()

				require.Equal(t, len(m.animals), m.cells.Len())
				require.Equal(t, len(m.animals), len(m.byID))
				free := m.grower.AvailablePreferred() + m.grower.AvailableRegular()
				require.Equal(t, area, free+m.FoliageCount())

				for _, info := range m.Animals() {
					require.Greater(t, info.Energy, 0)
					require.True(t, m.InBounds(info.Pos))
				}
				for _, mv := range m.Moves() {
					require.True(t, m.InBounds(mv.To))
				}
			}
		})
	}
}

func TestPhaseHookOrder(t *testing.T) {
	m := New(tinySettings(), 1)
	var phases []Phase
	m.SetPhaseHook(func(p Phase) { phases = append(phases, p) })
	m.AdvanceEpoch()
	assert.Equal(t, []Phase{PhaseCleanup, PhaseMove, PhaseFeed, PhaseGrow, PhaseAge}, phases)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"too wide", func(s *Settings) { s.Width = 51 }},
		{"zero height", func(s *Settings) { s.Height = 0 }},
		{"too much foliage", func(s *Settings) { s.StartingFoliage = 201 }},
		{"cost above minimum", func(s *Settings) { s.ProcreationCost = 16 }},
		{"zero cost", func(s *Settings) { s.ProcreationCost = 0 }},
		{"bad genome", func(s *Settings) { s.Genome.MaxMutations = 40 }},
	}
	require.NoError(t, baseSettings().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSettings()
			tt.mutate(&s)
			assert.Error(t, s.Validate())
			assert.Panics(t, func() { New(s, 1) })
		})
	}
}
