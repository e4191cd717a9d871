package sim

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"

	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/systems"
	"github.com/pthm-cable/evgen/telemetry"
)

func busyConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Animals.Starting = 20
	cfg.Foliage.Starting = 40
	cfg.Foliage.DailyGrowth = 10
	return cfg
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.World.Variant = "portal"
	cfg.Foliage.Variant = "toxic"

	s, err := SettingsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, systems.Portal, s.Topology)
	assert.Equal(t, systems.ToxicCorpses, s.Growth)
	assert.Equal(t, cfg.Animals.ProcreationEnergyLoss, s.ProcreationCost)
	assert.Equal(t, cfg.Genome.Length, s.Genome.Length)
}

func TestSettingsFromConfigRejectsUnknownVariant(t *testing.T) {
	cfg := config.Defaults()
	cfg.World.Variant = "donut"

	_, err := SettingsFromConfig(cfg)
	assert.Error(t, err)
}

func TestSimFlushesEveryWindow(t *testing.T) {
	var windows []telemetry.WindowStats
	s, err := New(Options{
		Seed:        7,
		Config:      busyConfig(),
		StatsWindow: 5,
		StatsCallback: func(ws telemetry.WindowStats) {
			windows = append(windows, ws)
		},
	})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 20; i++ {
		s.Step()
	}

	require.Len(t, windows, 4)
	for i, w := range windows {
		assert.Equal(t, (i+1)*5, w.WindowEndEpoch)
	}
	assert.Equal(t, windows[3], s.LastStats())
	assert.Equal(t, 20, s.Epoch())
}

func TestSimStatsMatchMap(t *testing.T) {
	s, err := New(Options{Seed: 3, Config: busyConfig(), StatsWindow: 1})
	require.NoError(t, err)
	defer s.Close()

	s.Step()
	stats := s.LastStats()
	m := s.Map()
	assert.Equal(t, m.AnimalCount(), stats.Animals)
	assert.Equal(t, m.FoliageCount(), stats.Foliage)
	assert.Equal(t, m.FreeFieldCount(), stats.FreeFields)

	// Brute-force count of the most popular genome
	counts := map[string]int{}
	best := 0
	for _, a := range m.Animals() {
		counts[a.Genome]++
		best = max(best, counts[a.Genome])
	}
	assert.Equal(t, best, stats.MostPopularCount)
	assert.Equal(t, len(counts), stats.DistinctGenomes)
}

func TestSimDeterministic(t *testing.T) {
	run := func() []telemetry.WindowStats {
		var out []telemetry.WindowStats
		s, err := New(Options{
			Seed:          11,
			Config:        busyConfig(),
			StatsWindow:   2,
			StatsCallback: func(ws telemetry.WindowStats) { out = append(out, ws) },
		})
		require.NoError(t, err)
		s.Run(30)
		require.NoError(t, s.Close())
		return out
	}
	assert.Equal(t, run(), run())
}

func TestSimWritesOutput(t *testing.T) {
	fs := memfs.New()
	cfg := config.Defaults()
	cfg.Animals.Starting = 4

	s, err := New(Options{Seed: 5, Config: cfg, Output: fs, StatsWindow: 1})
	require.NoError(t, err)

	advanced := s.Run(60)
	require.NoError(t, s.Close())

	f, err := fs.Open(telemetry.EpochsFile)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, advanced+1) // header plus one row per epoch

	_, err = fs.Stat(telemetry.ConfigFile)
	assert.NoError(t, err)
	_, err = fs.Stat(telemetry.HallOfFameFile)
	assert.NoError(t, err)
}

// brokenFS refuses to create files while broken is set.
type brokenFS struct {
	billy.Filesystem
	broken bool
}

func (fs *brokenFS) Create(name string) (billy.File, error) {
	if fs.broken {
		return nil, errors.New("disk full")
	}
	return fs.Filesystem.Create(name)
}

func TestSimRestart(t *testing.T) {
	fs := memfs.New()
	s, err := New(Options{Seed: 9, Config: busyConfig(), Output: fs})
	require.NoError(t, err)
	first := s.Map().Animals()
	s.Run(5)

	_, err = fs.Stat(telemetry.HallOfFameFile)
	require.Error(t, err, "nothing written before the run closes")

	next, err := s.Restart()
	require.NoError(t, err)
	defer next.Close()

	assert.Zero(t, next.Epoch())
	assert.Equal(t, first, next.Map().Animals(), "same seed, same founders")
	_, err = fs.Stat(telemetry.HallOfFameFile)
	assert.NoError(t, err, "previous run closed")
}

func TestSimRestartFailureKeepsCurrentRun(t *testing.T) {
	fs := &brokenFS{Filesystem: memfs.New()}
	s, err := New(Options{Seed: 9, Config: busyConfig(), Output: fs})
	require.NoError(t, err)
	s.Run(3)

	fs.broken = true
	next, err := s.Restart()
	require.Error(t, err)
	assert.Nil(t, next)

	s.Step()
	assert.Equal(t, 4, s.Epoch(), "current run still steps")
	assert.NoError(t, s.Close(), "current run closes exactly once")
}

func TestSimRunStopsAtExtinction(t *testing.T) {
	cfg := config.Defaults()
	cfg.Foliage.Starting = 0
	cfg.Foliage.DailyGrowth = 0
	cfg.Animals.Starting = 3
	cfg.Animals.StartingEnergy = 2

	s, err := New(Options{Seed: 1, Config: cfg})
	require.NoError(t, err)
	defer s.Close()

	advanced := s.Run(100)
	assert.Equal(t, 2, advanced)
	assert.True(t, s.Extinct())

	// The starved are removed, and judged, at the next cleanup.
	require.NotNil(t, s.HallOfFame())
	assert.Zero(t, s.HallOfFame().Size())
	s.Step()
	assert.Equal(t, 3, s.HallOfFame().Size())
	assert.Zero(t, s.Lifetime().Count())
}
