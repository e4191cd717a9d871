package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 20, cfg.World.Width)
	assert.Equal(t, 10, cfg.World.Height)
	assert.Equal(t, "globe", cfg.World.Variant)
	assert.Equal(t, 5, cfg.Foliage.Starting)
	assert.Equal(t, 5, cfg.Foliage.EnergyGain)
	assert.Equal(t, 2, cfg.Foliage.DailyGrowth)
	assert.Equal(t, "equator", cfg.Foliage.Variant)
	assert.Equal(t, 2, cfg.Animals.Starting)
	assert.Equal(t, 30, cfg.Animals.StartingEnergy)
	assert.Equal(t, 15, cfg.Animals.MinProcreationEnergy)
	assert.Equal(t, 10, cfg.Animals.ProcreationEnergyLoss)
	assert.Equal(t, 0, cfg.Genome.MinMutations)
	assert.Equal(t, 5, cfg.Genome.MaxMutations)
	assert.Equal(t, 32, cfg.Genome.Length)
	assert.Equal(t, "random", cfg.Genome.Mutation)
	assert.Equal(t, "predestined", cfg.Genome.Behaviour)

	assert.Equal(t, 200, cfg.Derived.Area)
	assert.Equal(t, 250*time.Millisecond, cfg.Derived.EpochInterval)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := writeFile(t, "world:\n  width: 40\n  variant: portal\ngenome:\n  behaviour: crazy\n")
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.World.Width)
	assert.Equal(t, 10, cfg.World.Height, "unset keys keep defaults")
	assert.Equal(t, "portal", cfg.World.Variant)
	assert.Equal(t, "crazy", cfg.Genome.Behaviour)
	assert.Equal(t, 400, cfg.Derived.Area)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadRejectsWholeFile(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "world:\n  width: 30\n  depth: 3\n"},
		{"wrong type", "world:\n  width: 30\nfoliage:\n  starting: lots\n"},
		{"too wide", "world:\n  width: 51\n"},
		{"cost above minimum", "animals:\n  procreation_energy_loss: 16\n"},
		{"mutations above length", "genome:\n  length: 4\n"},
		{"unknown variant", "foliage:\n  variant: desert\n"},
		{"malformed", "world: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, Defaults(), cfg, "a rejected file must not leak any value")
		})
	}
}

func TestLoadHallOfFameAndBookmarks(t *testing.T) {
	p := writeFile(t, `
hall_of_fame:
  size: 25
  fitness:
    children_weight: 1.5
bookmarks:
  stable_population:
    windows: 8
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.HallOfFame.Size)
	assert.True(t, cfg.HallOfFame.Enabled)
	assert.Equal(t, 1.5, cfg.HallOfFame.Fitness.ChildrenWeight)
	assert.Equal(t, 8, cfg.Bookmarks.StablePopulation.Windows)

	_, err = Load(writeFile(t, "telemetry:\n  hall_of_fame_size: 25\n"))
	assert.Error(t, err, "the hall of fame size lives under hall_of_fame")
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.World.Width = 0
	cfg.Genome.Mutation = "wild"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "world.width")
	assert.Contains(t, err.Error(), "genome.mutation")
}

func TestPresetsLoad(t *testing.T) {
	names := Presets()
	require.NotEmpty(t, names)
	for _, name := range names {
		cfg, err := LoadPreset(name)
		require.NoError(t, err, name)
		require.NoError(t, cfg.Validate(), name)
	}

	_, err := LoadPreset("missing")
	assert.Error(t, err)
}

func TestInitInstallsDefaultsOnError(t *testing.T) {
	defer Set(nil)
	err := Init(writeFile(t, "bogus: 1\n"))
	assert.Error(t, err)
	assert.Equal(t, Defaults(), Cfg())
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.World.Variant = "portal"
	cfg.Foliage.Starting = 17

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	back, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
