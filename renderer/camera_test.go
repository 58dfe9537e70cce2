package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/morph/camera"
)

func TestClipPlanes(t *testing.T) {
	tests := []struct {
		name      string
		near, far float32
		wantNear  float64
		wantFar   float64
	}{
		{"configured", 0.1, 100, float64(float32(0.1)), 100},
		{"zero near", 0, 100, defaultNear, defaultFar},
		{"far before near", 10, 5, defaultNear, defaultFar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, far := clipPlanes(camera.New(35, tt.near, tt.far, 16))
			if near != tt.wantNear || far != tt.wantFar {
				t.Errorf("clipPlanes = (%v, %v), want (%v, %v)", near, far, tt.wantNear, tt.wantFar)
			}
		})
	}
}

func TestCamera3D(t *testing.T) {
	c := camera.New(35, 0.1, 100, 16)
	c.Target = mgl32.Vec3{1, 2, 3}

	rc := Camera3D(c)

	if rc.Fovy != 35 {
		t.Errorf("fovy = %v, want 35", rc.Fovy)
	}
	if rc.Target.X != 1 || rc.Target.Y != 2 || rc.Target.Z != 3 {
		t.Errorf("target = %v, want (1, 2, 3)", rc.Target)
	}
	if rc.Position.Z != 19 {
		t.Errorf("position z = %v, want 19", rc.Position.Z)
	}
}
