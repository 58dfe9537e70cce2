// Frame dump tool - renders one morph frame at a fixed progress to a PNG file.
//
// Usage: go run ./cmd/framedump -model model.glb -from 0 -to 1 -progress 0.5 -out frame.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/morph/asset"
	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/shape"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	modelPath := flag.String("model", "", "Model file (empty = procedural shapes)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	width := flag.Int("width", 1024, "Render width")
	height := flag.Int("height", 1024, "Render height")
	from := flag.Int("from", 0, "Current shape index")
	to := flag.Int("to", 1, "Target shape index")
	progress := flag.Float64("progress", 0.5, "Morph progress in [0,1]")
	timeVal := flag.Float64("time", 0, "Time uniform")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	if err := run(*configPath, *modelPath, *outPath, *width, *height, *from, *to, float32(*progress), float32(*timeVal), *seed); err != nil {
		fmt.Fprintf(os.Stderr, "framedump: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Frame rendered to: %s (%dx%d)\n", *outPath, *width, *height)
}

func run(configPath, modelPath, outPath string, width, height, from, to int, progress, timeVal float32, seed int64) error {
	if err := config.Init(configPath); err != nil {
		return err
	}
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(seed))

	shapes, err := asset.Load(modelPath, cfg.Asset.Normalize, rng)
	if err != nil {
		return err
	}
	set, err := shape.ResampleShapes(shapes, rng)
	if err != nil {
		return err
	}

	engine, err := morph.NewEngine(set, from, morph.Options{
		Duration:  float32(cfg.Morph.Duration),
		Ease:      cfg.Derived.Ease,
		Stagger:   float32(cfg.Morph.Stagger),
		Size:      float32(cfg.Particles.Size),
		NoiseSeed: rng.Int63(),
	})
	if err != nil {
		return err
	}
	if err := engine.MorphTo(to); err != nil {
		return err
	}
	engine.SetProgress(progress)
	engine.SetTime(timeVal)
	engine.SetColors(cfg.Derived.ColorA, cfg.Derived.ColorB)

	cam := camera.New(
		float32(cfg.Camera.FOV), float32(cfg.Camera.Near), float32(cfg.Camera.Far),
		float32(cfg.Camera.Distance),
	)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(width), int32(height), "Frame Dump")
	defer rl.CloseWindow()

	background := renderer.NewBackgroundRenderer(int32(width), int32(height), cfg.Derived.ClearColor)
	defer background.Unload()
	cloud := renderer.NewMorphRenderer()
	defer cloud.Unload()
	cloud.Bind(engine)

	target := rl.LoadRenderTexture(int32(width), int32(height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	background.Draw()
	renderer.BeginCamera(cam)
	cloud.Draw(engine.Uniforms(morph.Resolution(width, height, 1, 0)), mgl32.Ident4())
	rl.EndMode3D()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	defer rl.UnloadImage(img)

	if !rl.ExportImage(*img, outPath) {
		return fmt.Errorf("exporting %s", outPath)
	}
	return nil
}
