package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/telemetry"
)

// Update runs one windowed frame: input, morph systems and GPU upload.
func (g *Game) Update() {
	frameStart := time.Now()
	g.perfCollector.BeginFrame()
	g.perfCollector.MarkRamping(g.engine.Active())

	g.perfCollector.Enter(telemetry.PhaseInput)
	g.handleInput()

	g.perfCollector.Enter(telemetry.PhaseMorph)
	g.step(rl.GetFrameTime())

	g.perfCollector.Enter(telemetry.PhaseUpload)
	g.uploadClouds()

	g.perfCollector.Enter(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(time.Since(frameStart))
	g.flushTelemetry(false)

	g.perfCollector.EndFrame()
}

// UpdateHeadless runs one fixed-step frame without raylib. Blended
// positions are computed on the CPU in place of the vertex shader.
func (g *Game) UpdateHeadless() {
	frameStart := time.Now()
	g.perfCollector.BeginFrame()
	g.perfCollector.MarkRamping(g.engine.Active())

	g.perfCollector.Enter(telemetry.PhaseMorph)
	g.step(DT)

	g.perfCollector.Enter(telemetry.PhaseCompute)
	g.positions = g.engine.ComputeAll(g.positions)
	g.perfCollector.AddParticles(len(g.positions))

	g.perfCollector.Enter(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(time.Since(frameStart))
	g.flushTelemetry(false)

	g.perfCollector.EndFrame()
}

// step advances the clock and every cloud by dt.
func (g *Game) step(dt float32) {
	g.frame++
	g.clock += dt
	g.camera.Update()
	g.autoplaySystem(dt)
	g.morphSystem(dt)
}

// autoplaySystem fires scheduled morphs.
func (g *Game) autoplaySystem(dt float32) {
	query := g.cloudFilter.Query()
	for query.Next() {
		cloud, _, _, auto := query.Get()
		target, ok := auto.Step(dt, cloud.Engine.Set().Len())
		if !ok {
			continue
		}
		if err := cloud.Engine.MorphTo(target); err != nil {
			slog.Warn("autoplay morph rejected", "cloud", cloud.Name, "target", target, "error", err)
		}
	}
}

// morphSystem advances every engine's ramp and time value.
func (g *Game) morphSystem(dt float32) {
	query := g.cloudFilter.Query()
	for query.Next() {
		cloud, _, _, _ := query.Get()
		cloud.Engine.Advance(dt)
		cloud.Engine.SetTime(g.clock)
	}
}

// uploadClouds rebinds GPU buffers of clouds whose shape pair changed.
func (g *Game) uploadClouds() {
	query := g.cloudFilter.Query()
	for query.Next() {
		cloud, _, visual, _ := query.Get()
		if !visual.Dirty {
			continue
		}
		r, ok := g.renderers[query.Entity()]
		if !ok {
			r = renderer.NewMorphRenderer()
			r.Init()
			g.renderers[query.Entity()] = r
		}
		if r.Bind(cloud.Engine) {
			cur, tgt := cloud.Engine.Pair()
			slog.Debug("cloud uploaded", "cloud", cloud.Name, "current", cur, "target", tgt)
		}
		visual.Dirty = false
	}
}

// morphToKey handles a morph request from the keyboard or panel. Invalid
// indices are logged and ignored.
func (g *Game) morphToKey(index int) {
	if err := g.engine.MorphTo(index); err != nil {
		slog.Warn("morph request ignored", "index", index, "error", err)
		return
	}
	// Manual input restarts the autoplay timer
	if auto := g.autoplayMap.Get(g.cloud); auto != nil {
		auto.Elapsed = 0
	}
}
