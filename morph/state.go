// Package morph blends a particle cloud between the shapes of a ParticleSet.
//
// The Engine owns a State cursor (current shape, target shape, progress) and a
// progress ramp that the frame loop samples once per frame via Advance. The
// blend itself is a per-slot linear interpolation; the GLSL vertex shader in
// the renderer evaluates the same function for every slot on the GPU.
package morph

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/pthm-cable/morph/shape"
)

// ErrIndexOutOfRange is returned for a shape index outside [0, shape count).
var ErrIndexOutOfRange = errors.New("shape index out of range")

// State is the mutable morph cursor.
type State struct {
	CurrentIndex int     // Shape fully shown at rest
	TargetIndex  int     // Shape being morphed toward
	Progress     float32 // 0 = at CurrentIndex, 1 = at TargetIndex
	Time         float32 // Latest time value, forwarded to the shader

	ColorA color.RGBA
	ColorB color.RGBA
}

// Initialize returns the rest state for initialIndex.
func Initialize(set *shape.ParticleSet, initialIndex int) (State, error) {
	if err := checkIndex(set, initialIndex); err != nil {
		return State{}, err
	}
	return State{
		CurrentIndex: initialIndex,
		TargetIndex:  initialIndex,
		Progress:     0,
	}, nil
}

func checkIndex(set *shape.ParticleSet, i int) error {
	if i < 0 || i >= set.Len() {
		return fmt.Errorf("index %d with %d shapes: %w", i, set.Len(), ErrIndexOutOfRange)
	}
	return nil
}
