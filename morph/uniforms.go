package morph

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the per-frame scalar state handed to the renderer.
type Uniforms struct {
	Progress   float32
	Time       float32
	Size       float32
	Stagger    float32
	ColorA     color.RGBA
	ColorB     color.RGBA
	Resolution mgl32.Vec2
}

// Uniforms snapshots the engine state for a render call.
func (e *Engine) Uniforms(resolution mgl32.Vec2) Uniforms {
	return Uniforms{
		Progress:   e.state.Progress,
		Time:       e.state.Time,
		Size:       e.opts.Size,
		Stagger:    e.opts.Stagger,
		ColorA:     e.state.ColorA,
		ColorB:     e.state.ColorB,
		Resolution: resolution,
	}
}

// Pair returns the shape indices bound as current and target attributes.
func (e *Engine) Pair() (current, target int) {
	return e.state.CurrentIndex, e.state.TargetIndex
}

// Resolution returns the viewport size in physical pixels.
// pixelRatio is capped at maxRatio when maxRatio is positive.
func Resolution(width, height int, pixelRatio, maxRatio float32) mgl32.Vec2 {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if maxRatio > 0 && pixelRatio > maxRatio {
		pixelRatio = maxRatio
	}
	return mgl32.Vec2{float32(width) * pixelRatio, float32(height) * pixelRatio}
}
