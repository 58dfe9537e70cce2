// Package game runs a morph viewing session: an ark world of particle
// clouds, the frame loop, input and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// DT is the fixed step used by headless runs.
const DT = 1.0 / 60.0

// Options configures a session.
type Options struct {
	Seed           int64
	ModelPath      string // overrides asset.path when set
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
}

// Game holds the complete session state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	cloudMapper *ecs.Map4[components.Cloud, components.Transform, components.Visual, components.Autoplay]
	cloudFilter *ecs.Filter4[components.Cloud, components.Transform, components.Visual, components.Autoplay]
	autoplayMap *ecs.Map1[components.Autoplay]
	visualMap   *ecs.Map1[components.Visual]

	// Primary cloud driven by input and the control panel
	cloud  ecs.Entity
	engine *morph.Engine

	camera *camera.Camera

	// Rendering (nil in headless mode)
	background *renderer.BackgroundRenderer
	renderers  map[ecs.Entity]*renderer.MorphRenderer
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	perfPanel  *ui.PerfPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	frame      int64
	clock      float32
	headless   bool
	showStatus bool
	showPerf   bool
	dragging   bool
	positions  []mgl32.Vec3

	screenWidth, screenHeight float32
}

// NewGame loads the configured shapes and builds a session around them.
// config.Init must have been called. In windowed mode the raylib window
// must already exist.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	g := &Game{
		world:         world,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		cloudMapper:   ecs.NewMap4[components.Cloud, components.Transform, components.Visual, components.Autoplay](world),
		cloudFilter:   ecs.NewFilter4[components.Cloud, components.Transform, components.Visual, components.Autoplay](world),
		autoplayMap:   ecs.NewMap1[components.Autoplay](world),
		visualMap:     ecs.NewMap1[components.Visual](world),
		renderers:     make(map[ecs.Entity]*renderer.MorphRenderer),
		collector:     telemetry.NewCollector(opts.StatsWindowSec),
		perfCollector: telemetry.NewPerfCollector(60),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		showStatus:    true,
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	modelPath := cfg.Asset.Path
	if opts.ModelPath != "" {
		modelPath = opts.ModelPath
	}
	entity, engine, err := g.spawnCloud(modelPath, components.Transform{Scale: 1})
	if err != nil {
		om.Close()
		return nil, err
	}
	g.cloud = entity
	g.engine = engine

	g.camera = newCamera(cfg)

	if !opts.Headless {
		g.background = renderer.NewBackgroundRenderer(int32(g.screenWidth), int32(g.screenHeight), cfg.Derived.ClearColor)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(int32(g.screenWidth)-250, 10, 240)
		g.perfPanel = ui.NewPerfPanel(10, 240)
	}

	slog.Info("session ready",
		"run_id", om.RunID(),
		"shapes", g.engine.Set().Len(),
		"capacity", g.engine.Set().Capacity,
		"headless", opts.Headless,
	)
	return g, nil
}

func newCamera(cfg *config.Config) *camera.Camera {
	c := camera.New(
		float32(cfg.Camera.FOV), float32(cfg.Camera.Near), float32(cfg.Camera.Far),
		float32(cfg.Camera.Distance),
	)
	c.MinDistance = float32(cfg.Camera.MinDistance)
	c.MaxDistance = float32(cfg.Camera.MaxDistance)
	if cfg.Camera.Damping > 0 {
		c.Damping = float32(cfg.Camera.Damping)
	}
	return c
}

// Engine returns the primary cloud's morph engine.
func (g *Game) Engine() *morph.Engine {
	return g.engine
}

// Frame returns the number of updates run so far.
func (g *Game) Frame() int64 {
	return g.frame
}

// Clock returns the accumulated session time in seconds.
func (g *Game) Clock() float32 {
	return g.clock
}

// Unload flushes telemetry and frees resources.
func (g *Game) Unload() {
	g.flushTelemetry(true)
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	for e, r := range g.renderers {
		r.Unload()
		delete(g.renderers, e)
	}
	if g.background != nil {
		g.background.Unload()
	}
}
