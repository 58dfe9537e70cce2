package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	modelPath := flag.String("model", "", "Model file (.glb, .gltf or .csv); overrides asset.path")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           rngSeed,
		ModelPath:      *modelPath,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		OutputDir:      *outputDir,
		Headless:       *headless,
	}

	if *headless {
		os.Exit(runHeadless(opts, *maxFrames))
	}
	os.Exit(runWindowed(opts, *maxFrames))
}

// runHeadless steps the session on the CPU at a fixed rate, no raylib needed.
func runHeadless(opts game.Options, maxFrames int) int {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless session",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_frames", maxFrames,
	)

	for {
		g.UpdateHeadless()

		if maxFrames > 0 && int(g.Frame()) >= maxFrames {
			slog.Info("max frames reached", "frame", g.Frame(), "state", g.Engine().State())
			return 0
		}
	}
}

func runWindowed(opts game.Options, maxFrames int) int {
	cfg := config.Cfg()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Morph")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxFrames > 0 && int(g.Frame()) >= maxFrames {
			break
		}
	}
	return 0
}
