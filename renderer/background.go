package renderer

import (
	_ "embed"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/background.fs
var backgroundFS string

// BackgroundRenderer fills the screen with the clear colour and a soft vignette.
type BackgroundRenderer struct {
	shader        rl.Shader
	resolutionLoc int32
	baseColorLoc  int32

	screenW, screenH float32
	baseColor        color.RGBA
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, base color.RGBA) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		baseColor: base,
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundFS)
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")

	b.initialized = true
}

// SetColor changes the backdrop colour.
func (b *BackgroundRenderer) SetColor(c color.RGBA) {
	b.baseColor = c
}

// Color returns the backdrop colour.
func (b *BackgroundRenderer) Color() color.RGBA {
	return b.baseColor
}

// Resize updates screen dimensions.
func (b *BackgroundRenderer) Resize(w, h float32) {
	b.screenW = w
	b.screenH = h
}

// Draw clears the frame and renders the backdrop.
func (b *BackgroundRenderer) Draw() {
	if !b.initialized {
		b.Init()
	}

	rl.ClearBackground(b.baseColor)

	rl.BeginShaderMode(b.shader)
	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.baseColorLoc, colorVec3(b.baseColor), rl.ShaderUniformVec3)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
