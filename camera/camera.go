// Package camera provides an orbit camera for viewing a particle cloud.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxPitch keeps the camera off the poles so the up vector stays valid.
const maxPitch = math.Pi/2 - 0.01

// Camera orbits a target point. Input accumulates as pending rotation and
// zoom that Update bleeds off with damping, giving the eased feel of an
// orbit control.
type Camera struct {
	// Target is the point the camera looks at
	Target mgl32.Vec3

	// Spherical coordinates around the target (radians)
	Yaw, Pitch float32
	Distance   float32

	// Projection parameters (FOV in degrees)
	FOV, Near, Far float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// Damping is the fraction of pending motion applied per update.
	// A value of 1 or more applies input immediately.
	Damping float32

	pendingYaw, pendingPitch, pendingZoom float32
	home                                  float32
}

// New creates a camera on the +Z axis looking at the origin.
func New(fov, near, far, distance float32) *Camera {
	return &Camera{
		Distance:    distance,
		FOV:         fov,
		Near:        near,
		Far:         far,
		MinDistance: near,
		MaxDistance: far,
		Damping:     1,
		home:        distance,
	}
}

// Rotate queues an orbit by the given yaw and pitch deltas in radians.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.pendingYaw += dYaw
	c.pendingPitch += dPitch
}

// Zoom queues a change of distance. Positive values move the camera closer.
func (c *Camera) Zoom(amount float32) {
	c.pendingZoom += amount
}

// Update applies a damped share of pending input.
func (c *Camera) Update() {
	k := c.Damping
	if k <= 0 || k > 1 {
		k = 1
	}

	dy := c.pendingYaw * k
	dp := c.pendingPitch * k
	dz := c.pendingZoom * k
	c.pendingYaw -= dy
	c.pendingPitch -= dp
	c.pendingZoom -= dz

	c.Yaw += dy
	c.Pitch = clamp(c.Pitch+dp, -maxPitch, maxPitch)
	c.SetDistance(c.Distance * (1 - dz))
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// Position returns the camera eye in world coordinates.
func (c *Camera) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		c.Distance * cp * float32(math.Sin(float64(c.Yaw))),
		c.Distance * float32(math.Sin(float64(c.Pitch))),
		c.Distance * cp * float32(math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset)
}

// Up returns the camera up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// Reset returns the camera to its initial orbit and drops queued input.
func (c *Camera) Reset() {
	c.Yaw, c.Pitch = 0, 0
	c.Distance = c.home
	c.pendingYaw, c.pendingPitch, c.pendingZoom = 0, 0, 0
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
