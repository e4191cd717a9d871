package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/game"
	"github.com/pthm-cable/evgen/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Embedded preset name (overrides -config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in epochs (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxEpochs := flag.Int("max-epochs", 0, "Stop after N epochs (0 = unlimited)")
	epochsPerSecond := flag.Float64("epochs-per-second", 0, "Initial speed in graphics mode (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// A rejected config still installs the defaults, so the run goes on.
	var err error
	if *preset != "" {
		err = config.InitPreset(*preset)
	} else {
		err = config.Init(*configPath)
	}
	if err != nil {
		slog.Warn("config_rejected", "path", *configPath, "preset", *preset, "error", err)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if *headless {
		runHeadless(cfg, rngSeed, *outputDir, *logStats, *statsWindow, *maxEpochs)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Evolution Grid")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetExitKey(rl.KeyEscape)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(game.Options{
		Seed:            rngSeed,
		Config:          cfg,
		OutputDir:       *outputDir,
		LogStats:        *logStats,
		StatsWindow:     *statsWindow,
		EpochsPerSecond: *epochsPerSecond,
	})
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxEpochs > 0 && g.Epoch() >= *maxEpochs {
			break
		}
	}
}

// runHeadless advances the simulation as fast as possible without raylib.
func runHeadless(cfg *config.Config, seed int64, outputDir string, logStats bool, statsWindow, maxEpochs int) {
	s, err := sim.New(sim.Options{
		Seed:        seed,
		Config:      cfg,
		OutputDir:   outputDir,
		LogStats:    logStats,
		StatsWindow: statsWindow,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close simulation", "error", err)
		}
	}()

	slog.Info("starting headless simulation",
		"seed", seed,
		"stats_window", statsWindow,
		"max_epochs", maxEpochs,
	)

	for maxEpochs <= 0 || s.Epoch() < maxEpochs {
		if s.Extinct() {
			slog.Info("extinct", "epoch", s.Epoch())
			return
		}
		s.Step()
	}
	slog.Info("max epochs reached", "epoch", s.Epoch())
}
