package telemetry

// Collector accumulates events within windows of epochs and produces
// WindowStats.
type Collector struct {
	windowEpochs     int
	windowStartEpoch int

	// Event counters for current window
	births      int
	deaths      int
	meals       int
	plantsGrown int
	teleports   int
	wraps       int
	reflections int

	// Whole-run totals
	lifeLengthSum int
	deathTotal    int
}

// NewCollector creates a collector that flushes every windowEpochs epochs.
func NewCollector(windowEpochs int) *Collector {
	if windowEpochs < 1 {
		windowEpochs = 1
	}
	return &Collector{windowEpochs: windowEpochs}
}

// RecordBirth records a birth.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death at the given age.
func (c *Collector) RecordDeath(age int) {
	c.deaths++
	c.lifeLengthSum += age
	c.deathTotal++
}

// RecordMeals records plants eaten.
func (c *Collector) RecordMeals(n int) {
	c.meals += n
}

// RecordGrowth records plants grown.
func (c *Collector) RecordGrowth(n int) {
	c.plantsGrown += n
}

// RecordEdges records how many moves crossed the grid edge.
func (c *Collector) RecordEdges(teleports, wraps, reflections int) {
	c.teleports += teleports
	c.wraps += wraps
	c.reflections += reflections
}

// ShouldFlush returns true if enough epochs have passed to flush the window.
func (c *Collector) ShouldFlush(epoch int) bool {
	return epoch-c.windowStartEpoch >= c.windowEpochs
}

// AvgLifeLength is the mean age at death over the whole run.
func (c *Collector) AvgLifeLength() float64 {
	if c.deathTotal == 0 {
		return 0
	}
	return Round2(float64(c.lifeLengthSum) / float64(c.deathTotal))
}

// Sample is the population state at the end of a window.
type Sample struct {
	Animals    int
	Foliage    int
	FreeFields int
	Energies   []float64

	// From the genome popularity tracker
	MostPopular      string
	MostPopularCount int
	DistinctGenomes  int
	MaxGeneration    int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(epoch int, s Sample) WindowStats {
	mean, std, p10, p50, p90 := ComputeEnergyStats(s.Energies)

	var share float64
	if s.Animals > 0 {
		share = float64(s.MostPopularCount) / float64(s.Animals)
	}

	stats := WindowStats{
		WindowStartEpoch: c.windowStartEpoch,
		WindowEndEpoch:   epoch,

		Animals:    s.Animals,
		Foliage:    s.Foliage,
		FreeFields: s.FreeFields,

		MostPopularGenome: s.MostPopular,
		MostPopularCount:  s.MostPopularCount,
		DominantShare:     Round2(share),
		DistinctGenomes:   s.DistinctGenomes,
		MaxGeneration:     s.MaxGeneration,

		AvgEnergy: Round2(mean),
		EnergyStd: Round2(std),
		EnergyP10: p10,
		EnergyP50: p50,
		EnergyP90: p90,

		AvgLifeLength: c.AvgLifeLength(),

		Births:      c.births,
		Deaths:      c.deaths,
		Meals:       c.meals,
		PlantsGrown: c.plantsGrown,
		Teleports:   c.teleports,
		Wraps:       c.wraps,
		Reflections: c.reflections,
	}

	// Reset for next window
	c.windowStartEpoch = epoch
	c.births = 0
	c.deaths = 0
	c.meals = 0
	c.plantsGrown = 0
	c.teleports = 0
	c.wraps = 0
	c.reflections = 0

	return stats
}

// WindowEpochs returns the number of epochs per window.
func (c *Collector) WindowEpochs() int {
	return c.windowEpochs
}
