package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/ui"
)

// shapeKeys maps number keys to shape indices.
var shapeKeys = []int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Number keys morph to the matching shape
	for i, key := range shapeKeys {
		if rl.IsKeyPressed(key) {
			g.morphToKey(i)
		}
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.showStatus = !g.showStatus
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	// Camera controls
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.background != nil {
		g.background.Resize(w, h)
	}
	if g.controls != nil {
		g.controls.SetPosition(int32(w)-250, 10)
	}
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	cfg := config.Cfg()
	mouse := rl.GetMousePosition()

	// Drags that start on the panel belong to its widgets
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.dragging = !g.controls.Contains(mouse)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		speed := float32(cfg.Camera.RotateSpeed)
		g.camera.Rotate(-delta.X*speed, delta.Y*speed)
	}

	// Zoom controls: mouse wheel or +/- keys
	zoomSpeed := float32(cfg.Camera.ZoomSpeed)
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.controls.Contains(mouse) {
		g.camera.Zoom(wheel * zoomSpeed)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.Zoom(zoomSpeed)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.Zoom(-zoomSpeed)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// applyPanelActions feeds control panel changes back into the session.
func (g *Game) applyPanelActions(act ui.PanelActions) {
	if act.MorphTo >= 0 {
		g.morphToKey(act.MorphTo)
	}
	if act.Scrubbed {
		g.engine.SetProgress(act.Progress)
	}
	if act.ColorsChanged {
		g.engine.SetColors(act.ColorA, act.ColorB)
	}
	if act.ClearChanged {
		g.background.SetColor(act.Clear)
	}
	if act.AutoplayChanged {
		if auto := g.autoplayMap.Get(g.cloud); auto != nil {
			auto.Enabled = act.Autoplay
			auto.Elapsed = 0
			slog.Info("autoplay toggled", "enabled", auto.Enabled)
		}
	}
}
