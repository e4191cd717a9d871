// Package game drives the windowed simulation: epoch timing, input,
// rendering and panels around a sim.Sim.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/camera"
	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/inspector"
	"github.com/pthm-cable/evgen/renderer"
	"github.com/pthm-cable/evgen/sim"
	"github.com/pthm-cable/evgen/systems"
	"github.com/pthm-cable/evgen/ui"
	"github.com/pthm-cable/evgen/world"
)

// CellSize is the side of one grid cell in world units.
const CellSize = 32

// maxCatchUp bounds how many epochs one frame may run after a stall.
const maxCatchUp = 4

// Options configures a game instance.
type Options struct {
	Seed            int64
	Config          *config.Config // nil uses config.Cfg()
	OutputDir       string         // Empty disables file output
	LogStats        bool
	StatsWindow     int     // Epochs per stats window, 0 uses the config
	EpochsPerSecond float64 // 0 uses the config
}

// Game holds the simulation and everything drawn around it.
type Game struct {
	opts Options
	cfg  *config.Config
	sim  *sim.Sim

	// Rendering
	camera    *camera.Camera
	layout    renderer.Layout
	grid      *renderer.GridRenderer
	animals   *renderer.AnimalRenderer
	particles *renderer.ParticleRenderer

	// UI
	hud           *ui.HUD
	controls      *ui.ControlsPanel
	statsPanel    *ui.StatsPanel
	bookmarkPanel *ui.BookmarkPanel
	perfPanel     *ui.PerfPanel
	overlays      *ui.OverlayRegistry
	stages        *systems.StageRegistry
	inspector     *inspector.Inspector

	// State
	state        ui.ControlsState
	sinceEpoch   float32 // seconds since the last epoch
	living       []world.AnimalInfo
	dominant     string
	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a game. The raylib window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	opts.Config = cfg

	eps := opts.EpochsPerSecond
	if eps <= 0 {
		eps = cfg.Screen.EpochsPerSecond
	}

	g := &Game{
		opts:          opts,
		cfg:           cfg,
		hud:           ui.NewHUD(),
		controls:      ui.NewControlsPanel(10, 120, 220),
		statsPanel:    ui.NewStatsPanel(10, 0, 260),
		bookmarkPanel: ui.NewBookmarkPanel(0, 0, 320),
		perfPanel:     ui.NewPerfPanel(0, 0),
		overlays:      ui.NewOverlayRegistry(),
		stages:        systems.NewStageRegistry(),
		state: ui.ControlsState{
			EpochsPerSecond: float32(min(max(eps, ui.MinEpochsPerSecond), ui.MaxEpochsPerSecond)),
		},
		screenWidth:  float32(rl.GetScreenWidth()),
		screenHeight: float32(rl.GetScreenHeight()),
	}
	g.inspector = inspector.NewInspector(int32(g.screenWidth), cfg.Animals.StartingEnergy)

	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// start builds the first simulation.
func (g *Game) start() error {
	s, err := sim.New(sim.Options{
		Seed:        g.opts.Seed,
		Config:      g.cfg,
		OutputDir:   g.opts.OutputDir,
		LogStats:    g.opts.LogStats,
		StatsWindow: g.opts.StatsWindow,
	})
	if err != nil {
		return fmt.Errorf("starting simulation: %w", err)
	}
	g.attach(s)
	return nil
}

// attach switches to s and rebuilds the renderers sized for its grid.
func (g *Game) attach(s *sim.Sim) {
	g.sim = s

	m := s.Map()
	g.layout = renderer.NewLayout(m.Bounds(), CellSize)
	worldW, worldH := g.layout.WorldSize()
	g.camera = camera.New(g.screenWidth, g.screenHeight, worldW, worldH, m.Settings().Topology == systems.Globe)
	g.grid = renderer.NewGridRenderer(g.layout)
	g.animals = renderer.NewAnimalRenderer(g.layout, g.cfg.Animals.StartingEnergy)
	g.particles = renderer.NewParticleRenderer(g.layout)

	g.sinceEpoch = 0
	g.inspector.Untrack()
	g.refresh()
}

// reset discards the current run and starts over with the same seed. If
// the new run cannot be built the current one carries on.
func (g *Game) reset() {
	next, err := g.sim.Restart()
	if err != nil {
		slog.Error("failed to restart simulation", "error", err)
		return
	}
	g.attach(next)
	slog.Info("simulation_reset", "seed", g.opts.Seed)
}

// Update handles input and advances epochs according to the speed setting.
func (g *Game) Update() {
	g.handleInput()

	interval := 1 / g.state.EpochsPerSecond
	if !g.state.Paused {
		g.sinceEpoch += rl.GetFrameTime()
		for steps := 0; g.sinceEpoch >= interval && steps < maxCatchUp; steps++ {
			g.advance()
			g.sinceEpoch -= interval
		}
		if g.sinceEpoch > interval {
			g.sinceEpoch = interval
		}
	}

	g.particles.Update()
	g.sim.Perf().RecordFrame()
}

// advance runs one epoch and refreshes the cached view of the map.
func (g *Game) advance() {
	if g.sim.Extinct() {
		if !g.state.Paused {
			g.state.Paused = true
			slog.Info("simulation_paused", "reason", "extinct", "epoch", g.sim.Epoch())
		}
		return
	}
	g.sim.Step()

	m := g.sim.Map()
	g.animals.TrackMoves(m.Moves())
	g.particles.Emit(m.Report(), m.Moves())
	g.refresh()
}

func (g *Game) refresh() {
	m := g.sim.Map()
	g.living = m.Animals()
	g.dominant, _ = g.sim.Popularity().MostPopular()
	g.inspector.Refresh(m)
}

// progress is how far the current frame is between two epochs.
func (g *Game) progress() float32 {
	if g.state.Paused {
		return 1
	}
	return min(g.sinceEpoch*g.state.EpochsPerSecond, 1)
}

// Unload writes the final output and closes files.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close simulation", "error", err)
	}
}

// Epoch returns the number of completed epochs.
func (g *Game) Epoch() int {
	return g.sim.Epoch()
}

// Sim returns the running simulation.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}
