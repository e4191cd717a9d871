package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(5)

	assert.False(t, c.ShouldFlush(4))
	assert.True(t, c.ShouldFlush(5))

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath(4)
	c.RecordDeath(6)
	c.RecordMeals(3)
	c.RecordGrowth(7)
	c.RecordEdges(1, 2, 3)

	stats := c.Flush(5, Sample{
		Animals:          4,
		Foliage:          9,
		FreeFields:       100,
		Energies:         []float64{10, 20, 30, 40},
		MostPopular:      "0011",
		MostPopularCount: 3,
		DistinctGenomes:  2,
	})

	assert.Equal(t, 0, stats.WindowStartEpoch)
	assert.Equal(t, 5, stats.WindowEndEpoch)
	assert.Equal(t, 2, stats.Births)
	assert.Equal(t, 2, stats.Deaths)
	assert.Equal(t, 3, stats.Meals)
	assert.Equal(t, 7, stats.PlantsGrown)
	assert.Equal(t, 1, stats.Teleports)
	assert.Equal(t, 2, stats.Wraps)
	assert.Equal(t, 3, stats.Reflections)
	assert.InDelta(t, 25.0, stats.AvgEnergy, 1e-9)
	assert.InDelta(t, 0.75, stats.DominantShare, 1e-9)
	assert.InDelta(t, 5.0, stats.AvgLifeLength, 1e-9)

	// Window counters reset, run totals do not.
	assert.False(t, c.ShouldFlush(9))
	c.RecordDeath(11)
	next := c.Flush(10, Sample{})
	assert.Equal(t, 5, next.WindowStartEpoch)
	assert.Equal(t, 0, next.Births)
	assert.Equal(t, 1, next.Deaths)
	assert.InDelta(t, 7.0, next.AvgLifeLength, 1e-9)
	assert.Zero(t, next.DominantShare)
}

func TestGenomePopularity(t *testing.T) {
	gp := NewGenomePopularity()

	name, n := gp.MostPopular()
	assert.Equal(t, "", name)
	assert.Zero(t, n)

	gp.Add("222", 3)
	gp.Add("111", 1)
	gp.Add("222", 2)
	gp.Add("111", 4)

	// Tie broken toward the smaller genome
	name, n = gp.MostPopular()
	assert.Equal(t, "111", name)
	assert.Equal(t, 2, n)

	gp.Add("222", 5)
	name, n = gp.MostPopular()
	assert.Equal(t, "222", name)
	assert.Equal(t, 3, n)

	// One animal counts once however often it is added
	gp.Add("111", 1)
	assert.Equal(t, 2, gp.Distinct())
	_, n = gp.MostPopular()
	assert.Equal(t, 3, n)
}

func TestLifetimeTrackerGenerations(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.RegisterFounder(1, 0, "00", 30)
	lt.RegisterFounder(2, 0, "11", 30)
	lt.RegisterChild(3, 4, 1, 2, "01", 20)
	lt.RegisterChild(4, 9, 3, 1, "02", 20)

	assert.Equal(t, 2, lt.Get(1).Children)
	assert.Equal(t, 1, lt.Get(3).Generation)
	assert.Equal(t, 2, lt.Get(4).Generation)
	assert.Equal(t, 2, lt.MaxGeneration())

	lt.UpdateEnergy(3, 55)
	lt.UpdateEnergy(3, 10)
	assert.Equal(t, 55, lt.Get(3).PeakEnergy)

	removed := lt.Remove(3)
	assert.Equal(t, uint64(3), removed.ID)
	assert.Nil(t, lt.Get(3))
	assert.Equal(t, 3, lt.Count())
}
