// Package telemetry provides population tracking, bookmarking and
// experiment output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of epochs.
type WindowStats struct {
	WindowStartEpoch int `csv:"-"`
	WindowEndEpoch   int `csv:"day"`

	// Populations at window end
	Animals    int `csv:"animals"`
	Foliage    int `csv:"foliage"`
	FreeFields int `csv:"free_fields"`

	// Genomes at window end
	MostPopularGenome string  `csv:"most_popular_genome"`
	MostPopularCount  int     `csv:"most_popular_count"`
	DominantShare     float64 `csv:"dominant_share"`
	DistinctGenomes   int     `csv:"distinct_genomes"`
	MaxGeneration     int     `csv:"max_generation"`

	// Energy distribution (sampled at window end)
	AvgEnergy float64 `csv:"avg_energy"`
	EnergyStd float64 `csv:"energy_std"`
	EnergyP10 float64 `csv:"energy_p10"`
	EnergyP50 float64 `csv:"energy_p50"`
	EnergyP90 float64 `csv:"energy_p90"`

	// Mean age at death over the whole run
	AvgLifeLength float64 `csv:"avg_life_length"`

	// Events during window
	Births      int `csv:"births"`
	Deaths      int `csv:"deaths"`
	Meals       int `csv:"meals"`
	PlantsGrown int `csv:"plants_grown"`
	Teleports   int `csv:"teleports"`
	Wraps       int `csv:"wraps"`
	Reflections int `csv:"reflections"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean, population standard deviation and
// percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	std = math.Sqrt(variance)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Round2 rounds to two decimal places, the precision stats are reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartEpoch),
		slog.Int("day", s.WindowEndEpoch),
		slog.Int("animals", s.Animals),
		slog.Int("foliage", s.Foliage),
		slog.Int("free_fields", s.FreeFields),
		slog.String("most_popular_genome", s.MostPopularGenome),
		slog.Int("most_popular_count", s.MostPopularCount),
		slog.Float64("dominant_share", s.DominantShare),
		slog.Int("distinct_genomes", s.DistinctGenomes),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Float64("avg_energy", s.AvgEnergy),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("avg_life_length", s.AvgLifeLength),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("meals", s.Meals),
		slog.Int("plants_grown", s.PlantsGrown),
		slog.Int("teleports", s.Teleports),
		slog.Int("wraps", s.Wraps),
		slog.Int("reflections", s.Reflections),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
