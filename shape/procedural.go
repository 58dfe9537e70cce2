package shape

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere samples count points uniformly on a sphere surface.
func Sphere(count int, radius float32, rng *rand.Rand) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, count)
	for i := range out {
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		out[i] = mgl32.Vec3{
			float32(r*math.Cos(phi)) * radius,
			float32(z) * radius,
			float32(r*math.Sin(phi)) * radius,
		}
	}
	return out
}

// Torus samples count points on a torus lying in the XZ plane.
func Torus(count int, major, minor float32, rng *rand.Rand) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, count)
	for i := range out {
		u := 2 * math.Pi * rng.Float64()
		v := 2 * math.Pi * rng.Float64()
		ring := float64(major) + float64(minor)*math.Cos(v)
		out[i] = mgl32.Vec3{
			float32(ring * math.Cos(u)),
			float32(float64(minor) * math.Sin(v)),
			float32(ring * math.Sin(u)),
		}
	}
	return out
}

// Cube samples count points on the faces of an axis-aligned cube.
func Cube(count int, size float32, rng *rand.Rand) []mgl32.Vec3 {
	half := size / 2
	out := make([]mgl32.Vec3, count)
	for i := range out {
		a := (rng.Float32()*2 - 1) * half
		b := (rng.Float32()*2 - 1) * half
		face := rng.Intn(6)
		sign := float32(1)
		if face%2 == 1 {
			sign = -1
		}
		switch face / 2 {
		case 0:
			out[i] = mgl32.Vec3{sign * half, a, b}
		case 1:
			out[i] = mgl32.Vec3{a, sign * half, b}
		default:
			out[i] = mgl32.Vec3{a, b, sign * half}
		}
	}
	return out
}

// Helix samples count points along a helix around the Y axis.
func Helix(count int, radius, height float32, turns float64, rng *rand.Rand) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, count)
	for i := range out {
		t := rng.Float64()
		angle := t * turns * 2 * math.Pi
		jitter := float32(rng.NormFloat64()) * radius * 0.05
		out[i] = mgl32.Vec3{
			float32(math.Cos(angle))*radius + jitter,
			(float32(t) - 0.5) * height,
			float32(math.Sin(angle))*radius + jitter,
		}
	}
	return out
}

// Procedural returns the built-in demo shapes, used when no model is configured.
// Point counts differ on purpose so the resampler has padding to do.
func Procedural(rng *rand.Rand) []Shape {
	shapes := []Shape{
		{Name: "sphere", Positions: Sphere(8000, 3, rng)},
		{Name: "torus", Positions: Torus(5000, 3, 1, rng)},
		{Name: "cube", Positions: Cube(12000, 4, rng)},
		{Name: "helix", Positions: Helix(3000, 2.5, 6, 4, rng)},
	}
	for i := range shapes {
		shapes[i].PointCount = len(shapes[i].Positions)
	}
	return shapes
}
