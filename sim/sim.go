// Package sim runs a world map together with its telemetry. It has no
// graphics dependency so headless runs, the optimizer and tests share it.
package sim

import (
	"fmt"
	"log/slog"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"

	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/telemetry"
	"github.com/pthm-cable/evgen/world"
)

// recentBookmarks is how many bookmarks are kept for display.
const recentBookmarks = 8

// Options configures a simulation run.
type Options struct {
	Seed   int64
	Config *config.Config // nil uses config.Cfg()

	// Output goes to Output when set, else to OutputDir on disk.
	// Both empty disables file output.
	OutputDir string
	Output    billy.Filesystem

	LogStats      bool
	StatsWindow   int // epochs per stats window, 0 uses the config
	StatsCallback func(telemetry.WindowStats)
}

// Sim advances a world map and feeds every epoch into telemetry.
type Sim struct {
	opts Options
	cfg  *config.Config
	seed int64
	m    *world.Map

	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	bookmarks  *telemetry.BookmarkDetector
	popularity *telemetry.GenomePopularity
	lifetime   *telemetry.LifetimeTracker
	hallOfFame *telemetry.HallOfFame
	output     *telemetry.OutputManager

	logStats      bool
	statsCallback func(telemetry.WindowStats)

	lastStats telemetry.WindowStats
	recent    []telemetry.Bookmark
	energies  []float64
}

// New builds the map from the configuration and prepares telemetry.
func New(opts Options) (*Sim, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building world settings: %w", err)
	}

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		window = opts.StatsWindow
	}

	opts.Config = cfg
	s := &Sim{
		opts:          opts,
		cfg:           cfg,
		seed:          opts.Seed,
		m:             world.New(settings, opts.Seed),
		collector:     telemetry.NewCollector(window),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		popularity:    telemetry.NewGenomePopularity(),
		lifetime:      telemetry.NewLifetimeTracker(),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if cfg.HallOfFame.Enabled {
		s.hallOfFame = telemetry.NewHallOfFame(cfg.HallOfFame.Size, cfg.HallOfFame.Fitness)
	}

	switch {
	case opts.Output != nil:
		s.output, err = telemetry.NewOutputManagerFS(opts.Output)
	case opts.OutputDir != "":
		s.output, err = telemetry.NewOutputManager(opts.OutputDir)
	}
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		return nil, multierr.Append(err, s.output.Close())
	}

	s.m.SetPhaseHook(func(p world.Phase) {
		s.perf.StartPhase(string(p))
	})

	for _, a := range s.m.Animals() {
		s.lifetime.RegisterFounder(a.ID, a.BornEpoch, a.Genome, a.Energy)
		s.popularity.Add(a.Genome, a.ID)
	}

	slog.Info("simulation_created",
		"seed", opts.Seed,
		"width", settings.Width,
		"height", settings.Height,
		"topology", settings.Topology.String(),
		"growth", settings.Growth.String(),
		"animals", s.m.AnimalCount(),
		"foliage", s.m.FoliageCount(),
		"output_dir", s.output.Dir(),
	)
	return s, nil
}

// Step advances the map by one epoch and records it.
func (s *Sim) Step() {
	s.perf.StartEpoch()
	s.m.AdvanceEpoch()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordReport(s.m.Report())
	s.flushTelemetry()
	s.perf.EndEpoch()
}

// Run advances n epochs. It stops early once no animal is left and
// returns the number of epochs advanced.
func (s *Sim) Run(n int) int {
	for i := 0; i < n; i++ {
		if s.Extinct() {
			return i
		}
		s.Step()
	}
	return n
}

// Extinct reports whether every animal is gone.
func (s *Sim) Extinct() bool {
	return s.m.AnimalCount() == 0
}

// Map returns the simulated world.
func (s *Sim) Map() *world.Map { return s.m }

// Epoch returns the number of completed epochs.
func (s *Sim) Epoch() int { return s.m.Epoch() }

// Seed returns the seed the map was built with.
func (s *Sim) Seed() int64 { return s.seed }

// Config returns the configuration the run uses.
func (s *Sim) Config() *config.Config { return s.cfg }

// LastStats returns the most recently flushed window.
func (s *Sim) LastStats() telemetry.WindowStats { return s.lastStats }

// Perf returns the rolling performance stats.
func (s *Sim) Perf() *telemetry.PerfCollector { return s.perf }

// Popularity returns the genome tracker as of the last flush.
func (s *Sim) Popularity() *telemetry.GenomePopularity { return s.popularity }

// Lifetime returns the per-animal lineage tracker.
func (s *Sim) Lifetime() *telemetry.LifetimeTracker { return s.lifetime }

// HallOfFame returns the hall, or nil when disabled.
func (s *Sim) HallOfFame() *telemetry.HallOfFame { return s.hallOfFame }

// RecentBookmarks returns the latest bookmarks, oldest first.
func (s *Sim) RecentBookmarks() []telemetry.Bookmark { return s.recent }

// Restart builds a fresh run with the same options. The current run is
// closed only once the new one is ready; on error it keeps running.
func (s *Sim) Restart() (*Sim, error) {
	next, err := New(s.opts)
	if err != nil {
		return nil, err
	}
	if err := s.Close(); err != nil {
		slog.Warn("failed to close previous simulation", "error", err)
	}
	return next, nil
}

// Close writes the hall of fame and closes the output files.
func (s *Sim) Close() error {
	err := s.output.WriteHallOfFame(s.hallOfFame)
	return multierr.Append(err, s.output.Close())
}
