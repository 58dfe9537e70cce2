// Point cloud tool - converts a model file into a point CSV, a point GLB,
// or dumps the resampled particle set.
//
// Usage: go run ./cmd/pointcloud -model model.glb -out points.csv [-resample]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/morph/asset"
	"github.com/pthm-cable/morph/shape"
)

func main() {
	modelPath := flag.String("model", "", "Input model (.glb, .gltf or .csv; empty = procedural shapes)")
	outPath := flag.String("out", "points.csv", "Output file (.csv or .glb)")
	normalize := flag.Float64("normalize", 0, "Scale each shape's largest extent to this size (0 = keep)")
	resample := flag.Bool("resample", false, "Write the resampled particle set instead of the raw shapes")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := run(*modelPath, *outPath, *normalize, *resample, *seed); err != nil {
		slog.Error("pointcloud failed", "error", err)
		os.Exit(1)
	}
}

func run(modelPath, outPath string, normalize float64, resample bool, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	shapes, err := asset.Load(modelPath, normalize, rng)
	if err != nil {
		return err
	}

	if resample {
		set, err := shape.ResampleShapes(shapes, rng)
		if err != nil {
			return err
		}
		shapes = set.Shapes
		slog.Info("resampled", "shapes", set.Len(), "capacity", set.Capacity)
	}

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".csv":
		err = asset.SaveCSV(outPath, shapes)
	case ".glb":
		err = asset.SaveGLB(outPath, shapes)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	if err != nil {
		return err
	}

	for i, s := range shapes {
		slog.Info("shape written", "index", i, "name", s.Name, "points", len(s.Positions))
	}
	slog.Info("point cloud written", "path", outPath, "shapes", len(shapes))
	return nil
}
