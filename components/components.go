// Package components defines ECS components for particle clouds.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/morph/morph"
)

// Cloud attaches a morph engine to an entity.
type Cloud struct {
	Engine *morph.Engine
	Name   string
}

// Transform places a cloud in world space.
type Transform struct {
	Position mgl32.Vec3
	Scale    float32
}

// Matrix returns the model matrix for the transform.
// A zero scale is treated as 1.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).Mul4(mgl32.Scale3D(s, s, s))
}

// Visual holds per-cloud render state.
type Visual struct {
	Visible bool
	Dirty   bool // current/target pair changed, GPU buffers need re-upload
}

// Autoplay cycles a cloud through a sequence of morph targets.
type Autoplay struct {
	Enabled  bool
	Interval float32 // seconds between triggers, measured from the previous trigger
	Sequence []int   // shape indices; empty cycles through every shape
	Elapsed  float32
	Next     int // position in Sequence (or shape index when Sequence is empty)
}

// Step advances the timer by dt. It returns the next target and true when
// a trigger is due. shapeCount bounds the cycle when Sequence is empty.
func (a *Autoplay) Step(dt float32, shapeCount int) (int, bool) {
	if !a.Enabled || a.Interval <= 0 || shapeCount <= 0 {
		return 0, false
	}
	a.Elapsed += dt
	if a.Elapsed < a.Interval {
		return 0, false
	}
	a.Elapsed -= a.Interval

	var target int
	if len(a.Sequence) > 0 {
		target = a.Sequence[a.Next%len(a.Sequence)]
		a.Next = (a.Next + 1) % len(a.Sequence)
	} else {
		target = a.Next % shapeCount
		a.Next = (a.Next + 1) % shapeCount
	}
	return target, true
}

// Reset restarts the timer and the sequence.
func (a *Autoplay) Reset() {
	a.Elapsed = 0
	a.Next = 0
}
