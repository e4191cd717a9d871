package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/evgen/config"
)

var testFitness = config.HallOfFameFitnessConfig{
	ChildrenWeight: 3,
	AgeWeight:      1,
	EatenWeight:    0.5,
}

func TestHallOfFameOrdersByFitness(t *testing.T) {
	hof := NewHallOfFame(3, testFitness)

	// Fitness 10, 17, 3, 11, 1
	assert.True(t, hof.Consider(DeathRecord{ID: 1, Age: 10}))
	assert.True(t, hof.Consider(DeathRecord{ID: 2, Age: 5, Children: 4}))
	assert.True(t, hof.Consider(DeathRecord{ID: 3, Age: 2, Eaten: 2}))
	assert.True(t, hof.Consider(DeathRecord{ID: 4, Age: 8, Children: 1}))
	assert.False(t, hof.Consider(DeathRecord{ID: 5, Age: 1}))

	require.Equal(t, 3, hof.Size())
	var ids []uint64
	for _, e := range hof.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint64{2, 4, 1}, ids)
	assert.InDelta(t, 17.0, hof.TopFitness(), 1e-9)
}

func TestHallOfFameCopiesLifetime(t *testing.T) {
	hof := NewHallOfFame(2, testFitness)
	hof.Consider(DeathRecord{
		ID:       9,
		Age:      3,
		Lifetime: &LifetimeStats{Generation: 4, PeakEnergy: 80, BirthEpoch: 11},
	})

	e := hof.Entries()[0]
	assert.Equal(t, 4, e.Generation)
	assert.Equal(t, 80, e.PeakEnergy)
	assert.Equal(t, 11, e.BornEpoch)
}

func TestHallOfFameDisabledSize(t *testing.T) {
	hof := NewHallOfFame(0, testFitness)
	assert.False(t, hof.Consider(DeathRecord{ID: 1, Age: 100}))
	assert.Zero(t, hof.TopFitness())
}
