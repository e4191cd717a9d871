package sim

import (
	"log/slog"

	"github.com/pthm-cable/evgen/telemetry"
	"github.com/pthm-cable/evgen/world"
)

// recordReport feeds one epoch's events into the collectors.
func (s *Sim) recordReport(r world.EpochReport) {
	for _, b := range r.Births {
		s.collector.RecordBirth()
		s.lifetime.RegisterChild(b.ID, r.Epoch, b.ParentA, b.ParentB, b.Genome, b.Energy)
	}

	for _, d := range r.Deaths {
		s.collector.RecordDeath(d.Age)
		stats := s.lifetime.Remove(d.ID)
		if s.hallOfFame != nil {
			s.hallOfFame.Consider(telemetry.DeathRecord{
				ID:        d.ID,
				Age:       d.Age,
				Children:  d.Children,
				Eaten:     d.Eaten,
				DiedEpoch: d.DiedEpoch,
				Genome:    d.Genome,
				Lifetime:  stats,
			})
		}
	}

	s.collector.RecordMeals(r.Meals)
	s.collector.RecordGrowth(r.PlantsGrown)
	s.collector.RecordEdges(r.Teleports, r.Wraps, r.Reflections)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Sim) flushTelemetry() {
	epoch := s.m.Epoch()
	if !s.collector.ShouldFlush(epoch) {
		return
	}

	s.samplePopulation()
	genome, count := s.popularity.MostPopular()

	stats := s.collector.Flush(epoch, telemetry.Sample{
		Animals:          s.m.AnimalCount(),
		Foliage:          s.m.FoliageCount(),
		FreeFields:       s.m.FreeFieldCount(),
		Energies:         s.energies,
		MostPopular:      genome,
		MostPopularCount: count,
		DistinctGenomes:  s.popularity.Distinct(),
		MaxGeneration:    s.lifetime.MaxGeneration(),
	})
	perfStats := s.perf.Stats()
	s.lastStats = stats

	// Call stats callback if provided
	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := s.output.WritePerf(perfStats, epoch); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		s.recent = append(s.recent, bm)
		if len(s.recent) > recentBookmarks {
			s.recent = s.recent[1:]
		}
	}
}

// samplePopulation rebuilds the genome counts from the living animals and
// collects their energies.
func (s *Sim) samplePopulation() {
	s.popularity = telemetry.NewGenomePopularity()
	for _, a := range s.m.Animals() {
		s.popularity.Add(a.Genome, a.ID)
		s.lifetime.UpdateEnergy(a.ID, a.Energy)
	}
	s.energies = s.m.EnergyLevels(s.energies[:0])
}
