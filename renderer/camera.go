package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/morph/camera"
)

// Raylib's own clip planes, used when the camera's are unusable.
const (
	defaultNear = 0.01
	defaultFar  = 1000
)

// Camera3D converts an orbit camera into a raylib perspective camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position()),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up()),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// BeginCamera applies the camera's clip planes and enters 3D mode.
// Pair with rl.EndMode3D.
func BeginCamera(c *camera.Camera) {
	near, far := clipPlanes(c)
	rl.SetClipPlanes(near, far)
	rl.BeginMode3D(Camera3D(c))
}

// clipPlanes returns the near and far planes, falling back to raylib's
// defaults when near is not positive or far does not exceed it.
func clipPlanes(c *camera.Camera) (near, far float64) {
	if c.Near <= 0 || c.Far <= c.Near {
		return defaultNear, defaultFar
	}
	return float64(c.Near), float64(c.Far)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
