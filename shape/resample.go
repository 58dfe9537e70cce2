// Package shape holds source particle shapes and the resampler that pads
// them to a common capacity.
package shape

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidInput is returned when there are no shapes or a shape has no points.
var ErrInvalidInput = errors.New("invalid input")

// Shape is one source particle configuration.
type Shape struct {
	Name       string
	PointCount int          // Points before padding
	Positions  []mgl32.Vec3 // PointCount entries before resampling, Capacity after
}

// ParticleSet is the resampled, render-ready collection.
// It is never mutated after Resample returns.
type ParticleSet struct {
	Capacity int
	Shapes   []Shape
	Sizes    [][]float32 // Per shape, one weight in [0,1) per slot
}

// Len returns the number of shapes.
func (ps *ParticleSet) Len() int {
	return len(ps.Shapes)
}

// Flat returns a stride-3 copy of shape i's positions for GPU upload.
func (ps *ParticleSet) Flat(i int) []float32 {
	return Flatten(ps.Shapes[i].Positions)
}

// Resample pads every position list to the largest list's length.
// Slots past a list's original length copy a uniformly chosen original point.
// A nil rng uses a time-seeded source.
func Resample(positions [][]mgl32.Vec3, rng *rand.Rand) (*ParticleSet, error) {
	shapes := make([]Shape, len(positions))
	for i, p := range positions {
		shapes[i] = Shape{PointCount: len(p), Positions: p}
	}
	return ResampleShapes(shapes, rng)
}

// ResampleShapes is Resample for named shapes. Inputs are not modified.
func ResampleShapes(shapes []Shape, rng *rand.Rand) (*ParticleSet, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("resample: no shapes: %w", ErrInvalidInput)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	capacity := 0
	for i, s := range shapes {
		if len(s.Positions) == 0 {
			return nil, fmt.Errorf("resample: shape %d (%q) is empty: %w", i, s.Name, ErrInvalidInput)
		}
		if len(s.Positions) > capacity {
			capacity = len(s.Positions)
		}
	}

	ps := &ParticleSet{
		Capacity: capacity,
		Shapes:   make([]Shape, len(shapes)),
		Sizes:    make([][]float32, len(shapes)),
	}

	for i, s := range shapes {
		src := s.Positions
		out := make([]mgl32.Vec3, capacity)
		sizes := make([]float32, capacity)

		n := copy(out, src)
		for j := n; j < capacity; j++ {
			out[j] = src[rng.Intn(len(src))]
		}
		for j := range sizes {
			sizes[j] = rng.Float32()
		}

		ps.Shapes[i] = Shape{Name: s.Name, PointCount: len(src), Positions: out}
		ps.Sizes[i] = sizes
	}

	return ps, nil
}

// FromFlat converts a stride-3 float buffer into points.
func FromFlat(flat []float32) ([]mgl32.Vec3, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("flat buffer length %d is not a multiple of 3: %w", len(flat), ErrInvalidInput)
	}
	out := make([]mgl32.Vec3, len(flat)/3)
	for i := range out {
		out[i] = mgl32.Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out, nil
}

// Flatten converts points into a stride-3 float buffer.
func Flatten(points []mgl32.Vec3) []float32 {
	flat := make([]float32, len(points)*3)
	for i, p := range points {
		flat[i*3] = p[0]
		flat[i*3+1] = p[1]
		flat[i*3+2] = p[2]
	}
	return flat
}
