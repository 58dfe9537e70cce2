// Package asset loads source shapes from model files.
package asset

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/morph/shape"
)

// Load reads shapes from path, choosing the decoder by extension.
// An empty path returns the procedural demo shapes.
// When normalize is positive every shape is centred and scaled to that extent.
func Load(path string, normalize float64, rng *rand.Rand) ([]shape.Shape, error) {
	var (
		shapes []shape.Shape
		err    error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		shapes = shape.Procedural(rng)
	case ext == ".glb" || ext == ".gltf":
		shapes, err = LoadGLTF(path)
	case ext == ".csv":
		shapes, err = LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%s: no shapes with positions: %w", path, shape.ErrInvalidInput)
	}

	if normalize > 0 {
		for i := range shapes {
			shapes[i].Positions = shape.Normalize(shapes[i].Positions, normalize)
		}
	}

	for i, s := range shapes {
		slog.Debug("loaded shape", "index", i, "name", s.Name, "points", s.PointCount)
	}
	return shapes, nil
}
