package shape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBounds(t *testing.T) {
	box := Bounds([]mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})

	if box.Min.X != -1 || box.Min.Y != -2 || box.Min.Z != 0 {
		t.Errorf("min = %v, want (-1, -2, 0)", box.Min)
	}
	if box.Max.X != 1 || box.Max.Y != 4 || box.Max.Z != 5 {
		t.Errorf("max = %v, want (1, 4, 5)", box.Max)
	}
}

func TestNormalize(t *testing.T) {
	points := []mgl32.Vec3{{10, 10, 10}, {14, 12, 10}}
	out := Normalize(points, 2)

	box := Bounds(out)
	if math.Abs(box.Max.X-box.Min.X-2) > 1e-5 {
		t.Errorf("largest extent = %v, want 2", box.Max.X-box.Min.X)
	}
	cx := (box.Max.X + box.Min.X) / 2
	cy := (box.Max.Y + box.Min.Y) / 2
	if math.Abs(cx) > 1e-5 || math.Abs(cy) > 1e-5 {
		t.Errorf("centre = (%v, %v), want origin", cx, cy)
	}
	if points[0] != (mgl32.Vec3{10, 10, 10}) {
		t.Error("input was modified")
	}
}

func TestNormalizeSinglePoint(t *testing.T) {
	out := Normalize([]mgl32.Vec3{{3, 3, 3}}, 5)
	if out[0] != (mgl32.Vec3{}) {
		t.Errorf("single point should move to origin, got %v", out[0])
	}
}

func TestProceduralShapes(t *testing.T) {
	shapes := Procedural(rand.New(rand.NewSource(1)))
	if len(shapes) != 4 {
		t.Fatalf("got %d shapes, want 4", len(shapes))
	}
	for _, s := range shapes {
		if s.PointCount == 0 || s.PointCount != len(s.Positions) {
			t.Errorf("%s: point count %d, positions %d", s.Name, s.PointCount, len(s.Positions))
		}
	}

	for _, p := range Sphere(100, 3, rand.New(rand.NewSource(2))) {
		if d := p.Len(); math.Abs(float64(d-3)) > 1e-4 {
			t.Fatalf("sphere point at distance %v, want 3", d)
		}
	}
}
