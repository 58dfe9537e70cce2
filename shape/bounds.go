package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds returns the axis-aligned bounding box of points.
// An empty slice yields a zero box.
func Bounds(points []mgl32.Vec3) r3.Box {
	if len(points) == 0 {
		return r3.Box{}
	}
	min := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range points {
		min.X = math.Min(min.X, float64(p[0]))
		min.Y = math.Min(min.Y, float64(p[1]))
		min.Z = math.Min(min.Z, float64(p[2]))
		max.X = math.Max(max.X, float64(p[0]))
		max.Y = math.Max(max.Y, float64(p[1]))
		max.Z = math.Max(max.Z, float64(p[2]))
	}
	return r3.Box{Min: min, Max: max}
}

// Normalize returns a copy of points centred on the origin and scaled so the
// largest box extent equals size. Degenerate inputs are only re-centred.
func Normalize(points []mgl32.Vec3, size float64) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(points))
	if len(points) == 0 {
		return out
	}

	box := Bounds(points)
	center := r3.Scale(0.5, r3.Add(box.Min, box.Max))
	extent := r3.Sub(box.Max, box.Min)
	largest := math.Max(extent.X, math.Max(extent.Y, extent.Z))

	scale := 1.0
	if largest > 0 && size > 0 {
		scale = size / largest
	}

	for i, p := range points {
		v := r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
		v = r3.Scale(scale, r3.Sub(v, center))
		out[i] = mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	return out
}
