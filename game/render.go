package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/ui"
)

const controlsLegend = "[1-9] morph  [H] panel  [S] status  [P] perf  [drag] orbit  [wheel] zoom  [Home] reset  [F11] fullscreen"

// Draw renders the frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.background.Draw()

	g.drawClouds()

	state := g.engine.State()
	names := g.shapeNames()

	g.hud.Draw(ui.HUDData{
		Title:      "Morph",
		Shapes:     g.engine.Set().Len(),
		Capacity:   g.engine.Set().Capacity,
		Current:    names[state.CurrentIndex],
		Target:     names[state.TargetIndex],
		Progress:   state.Progress,
		Active:     g.engine.Active(),
		Autoplay:   g.autoplayEnabled(),
		FPS:        rl.GetFPS(),
		ColorA:     state.ColorA,
		ColorB:     state.ColorB,
		RunID:      g.outputManager.RunID(),
		ShowStatus: g.showStatus,
	})

	act := g.controls.Draw(ui.PanelState{
		ShapeNames: names,
		Current:    state.CurrentIndex,
		Target:     state.TargetIndex,
		Progress:   state.Progress,
		Active:     g.engine.Active(),
		ColorA:     state.ColorA,
		ColorB:     state.ColorB,
		Clear:      g.background.Color(),
		Autoplay:   g.autoplayEnabled(),
	})
	g.applyPanelActions(act)

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// drawClouds renders every visible cloud with the orbit camera.
func (g *Game) drawClouds() {
	res := morph.Resolution(
		int(g.screenWidth), int(g.screenHeight),
		rl.GetWindowScaleDPI().X, float32(config.Cfg().Screen.MaxPixelRatio),
	)

	renderer.BeginCamera(g.camera)
	query := g.cloudFilter.Query()
	for query.Next() {
		cloud, tr, visual, _ := query.Get()
		if !visual.Visible {
			continue
		}
		r, ok := g.renderers[query.Entity()]
		if !ok {
			continue
		}
		r.Draw(cloud.Engine.Uniforms(res), tr.Matrix())
	}
	rl.EndMode3D()
}

// shapeNames lists the primary cloud's shapes, falling back to a number
// for unnamed ones.
func (g *Game) shapeNames() []string {
	shapes := g.engine.Set().Shapes
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("shape %d", i+1)
		}
	}
	return names
}

func (g *Game) autoplayEnabled() bool {
	auto := g.autoplayMap.Get(g.cloud)
	return auto != nil && auto.Enabled
}
