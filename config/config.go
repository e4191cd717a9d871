// Package config provides configuration loading and access for the simulation.
package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed presets/*.yaml
var presetFS embed.FS

// MaxSide is the largest grid width or height accepted.
const MaxSide = 50

// Variant names accepted in configuration files.
var (
	MapVariants       = []string{"globe", "portal"}
	FoliageVariants   = []string{"equator", "toxic"}
	MutationVariants  = []string{"random", "step"}
	BehaviourVariants = []string{"predestined", "crazy"}
)

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Foliage    FoliageConfig    `yaml:"foliage"`
	Animals    AnimalsConfig    `yaml:"animals"`
	Genome     GenomeConfig     `yaml:"genome"`
	Screen     ScreenConfig     `yaml:"screen"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	HallOfFame HallOfFameConfig `yaml:"hall_of_fame"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid size and edge behaviour.
type WorldConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Variant string `yaml:"variant"` // globe | portal
}

// FoliageConfig holds plant growth parameters.
type FoliageConfig struct {
	Starting    int    `yaml:"starting"`
	DailyGrowth int    `yaml:"daily_growth"`
	EnergyGain  int    `yaml:"energy_gain"` // energy per plant eaten
	Variant     string `yaml:"variant"`     // equator | toxic
}

// AnimalsConfig holds population and reproduction parameters.
type AnimalsConfig struct {
	Starting              int `yaml:"starting"`
	StartingEnergy        int `yaml:"starting_energy"`
	MinProcreationEnergy  int `yaml:"min_procreation_energy"`
	ProcreationEnergyLoss int `yaml:"procreation_energy_loss"`
}

// GenomeConfig holds genome length and mutation parameters.
type GenomeConfig struct {
	Length       int    `yaml:"length"`
	MinMutations int    `yaml:"min_mutations"`
	MaxMutations int    `yaml:"max_mutations"`
	Mutation     string `yaml:"mutation"`  // random | step
	Behaviour    string `yaml:"behaviour"` // predestined | crazy
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	TargetFPS       int     `yaml:"target_fps"`
	EpochsPerSecond float64 `yaml:"epochs_per_second"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // epochs per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PopulationBoom   PopulationBoomConfig   `yaml:"population_boom"`
	PopulationCrash  PopulationCrashConfig  `yaml:"population_crash"`
	GenomeDominance  GenomeDominanceConfig  `yaml:"genome_dominance"`
	StablePopulation StablePopulationConfig `yaml:"stable_population"`
}

// PopulationBoomConfig holds population boom detection parameters.
type PopulationBoomConfig struct {
	Multiplier float64 `yaml:"multiplier"` // animals > rolling mean * this
	MinAnimals int     `yaml:"min_animals"`
}

// PopulationCrashConfig holds population crash detection parameters.
type PopulationCrashConfig struct {
	DropFraction float64 `yaml:"drop_fraction"` // drop from recent peak
	MinDrop      int     `yaml:"min_drop"`
}

// GenomeDominanceConfig holds genome dominance detection parameters.
type GenomeDominanceConfig struct {
	Share      float64 `yaml:"share"` // fraction of living animals sharing one genome
	MinAnimals int     `yaml:"min_animals"`
}

// StablePopulationConfig holds stable population detection parameters.
type StablePopulationConfig struct {
	MaxCV      float64 `yaml:"max_cv"`
	Windows    int     `yaml:"windows"`
	MinAnimals int     `yaml:"min_animals"`
}

// HallOfFameConfig holds notable animal tracking parameters.
type HallOfFameConfig struct {
	Enabled bool                    `yaml:"enabled"`
	Size    int                     `yaml:"size"`
	Fitness HallOfFameFitnessConfig `yaml:"fitness"`
}

// HallOfFameFitnessConfig holds fitness calculation weights.
type HallOfFameFitnessConfig struct {
	ChildrenWeight float64 `yaml:"children_weight"`
	AgeWeight      float64 `yaml:"age_weight"`
	EatenWeight    float64 `yaml:"eaten_weight"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32       // Screen.Width as float32
	ScreenH32     float32       // Screen.Height as float32
	Area          int           // World.Width * World.Height
	EpochInterval time.Duration // wall time between epochs in graphics mode
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. A rejected file still installs the defaults; the
// returned error says why the file was rejected.
func Init(path string) error {
	cfg, err := Load(path)
	if cfg != nil {
		global = cfg
	}
	return err
}

// InitPreset is Init for one of the embedded presets.
func InitPreset(name string) error {
	cfg, err := LoadPreset(name)
	if cfg != nil {
		global = cfg
	}
	return err
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Set installs cfg as the global configuration.
func Set(cfg *Config) {
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. If the file cannot be
// read, has unknown keys or mistyped values, or fails validation, Load
// returns the untouched defaults together with the error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// LoadPreset loads an embedded preset by name, e.g. "toxic_step".
func LoadPreset(name string) (*Config, error) {
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return Defaults(), fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(Presets(), ", "))
	}
	return Parse(data)
}

// Presets lists the embedded preset names.
func Presets() []string {
	entries, _ := presetFS.ReadDir("presets")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Parse overlays YAML data on the defaults. See Load for the fallback rules.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()

	// Unmarshal into same struct - only overwrites fields present in data
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return Defaults(), fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()
	return cfg, nil
}

// Validate checks every value range and variant name.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	oneOf := func(field, value string, allowed []string) {
		check(slices.Contains(allowed, value), "%s: %q is not one of %s", field, value, strings.Join(allowed, ", "))
	}

	w, h := c.World.Width, c.World.Height
	check(w >= 1 && w <= MaxSide, "world.width: %d outside 1..%d", w, MaxSide)
	check(h >= 1 && h <= MaxSide, "world.height: %d outside 1..%d", h, MaxSide)
	oneOf("world.variant", c.World.Variant, MapVariants)

	check(c.Foliage.Starting >= 0 && c.Foliage.Starting <= w*h, "foliage.starting: %d outside 0..%d", c.Foliage.Starting, w*h)
	check(c.Foliage.DailyGrowth >= 0, "foliage.daily_growth: %d is negative", c.Foliage.DailyGrowth)
	check(c.Foliage.EnergyGain >= 0, "foliage.energy_gain: %d is negative", c.Foliage.EnergyGain)
	oneOf("foliage.variant", c.Foliage.Variant, FoliageVariants)

	a := c.Animals
	check(a.Starting >= 0, "animals.starting: %d is negative", a.Starting)
	check(a.StartingEnergy >= 1, "animals.starting_energy: %d must be positive", a.StartingEnergy)
	check(a.MinProcreationEnergy >= 1, "animals.min_procreation_energy: %d must be positive", a.MinProcreationEnergy)
	check(a.ProcreationEnergyLoss >= 1 && a.ProcreationEnergyLoss <= a.MinProcreationEnergy,
		"animals.procreation_energy_loss: %d outside 1..%d", a.ProcreationEnergyLoss, a.MinProcreationEnergy)

	g := c.Genome
	check(g.Length >= 1, "genome.length: %d must be positive", g.Length)
	check(g.MinMutations >= 0 && g.MinMutations <= g.MaxMutations && g.MaxMutations <= g.Length,
		"genome: need 0 <= min_mutations (%d) <= max_mutations (%d) <= length (%d)", g.MinMutations, g.MaxMutations, g.Length)
	oneOf("genome.mutation", g.Mutation, MutationVariants)
	oneOf("genome.behaviour", g.Behaviour, BehaviourVariants)

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen: size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	check(c.Screen.TargetFPS > 0, "screen.target_fps: %d must be positive", c.Screen.TargetFPS)
	check(c.Screen.EpochsPerSecond > 0, "screen.epochs_per_second: %v must be positive", c.Screen.EpochsPerSecond)

	check(c.Telemetry.StatsWindow >= 1, "telemetry.stats_window: %d must be positive", c.Telemetry.StatsWindow)
	check(c.Telemetry.BookmarkHistorySize >= 1, "telemetry.bookmark_history_size: %d must be positive", c.Telemetry.BookmarkHistorySize)
	check(c.Telemetry.PerfCollectorWindow >= 1, "telemetry.perf_collector_window: %d must be positive", c.Telemetry.PerfCollectorWindow)
	check(c.HallOfFame.Size >= 0, "hall_of_fame.size: %d is negative", c.HallOfFame.Size)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Area = c.World.Width * c.World.Height
	if c.Screen.EpochsPerSecond > 0 {
		c.Derived.EpochInterval = time.Duration(float64(time.Second) / c.Screen.EpochsPerSecond)
	}
}

// Encode writes the configuration as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return enc.Close()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
