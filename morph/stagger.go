package morph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/morph/shape"
)

// noiseFrequency scales positions before sampling noise so neighbouring
// particles get similar delays and the morph sweeps across the shape.
const noiseFrequency = 0.2

// maxStagger keeps the per-slot window from collapsing to zero width.
const maxStagger = 0.99

func clampStagger(s float32) float32 {
	return mgl32.Clamp(s, 0, maxStagger)
}

// staggerField caches one noise value in [0,1) per slot for every shape.
// The set is immutable, so the field is computed once.
type staggerField struct {
	values [][]float32
}

func newStaggerField(set *shape.ParticleSet, seed int64) *staggerField {
	noise := opensimplex.NewNormalized(seed)
	f := &staggerField{values: make([][]float32, set.Len())}
	for i, s := range set.Shapes {
		vals := make([]float32, len(s.Positions))
		for j, p := range s.Positions {
			v := noise.Eval3(
				float64(p[0])*noiseFrequency,
				float64(p[1])*noiseFrequency,
				float64(p[2])*noiseFrequency,
			)
			vals[j] = mgl32.Clamp(float32(v), 0, 1)
		}
		f.values[i] = vals
	}
	return f
}

// staggeredProgress delays slot progress by stagger*n and stretches the
// remaining window so every slot still spans 0 to 1.
func staggeredProgress(progress, stagger, n float32) float32 {
	if stagger <= 0 {
		return progress
	}
	delay := stagger * n
	return mgl32.Clamp((progress-delay)/(1-stagger), 0, 1)
}

// Noise returns the per-slot noise of shape i. It is what the renderer
// uploads as the noise attribute alongside shape i's positions.
func (e *Engine) Noise(i int) []float32 {
	return e.stagger.values[i]
}

// StaggeredPosition is ComputePosition with the per-slot delay applied.
// It equals ComputePosition when stagger is zero and at progress 0 and 1.
func (e *Engine) StaggeredPosition(slot int) mgl32.Vec3 {
	cur := e.set.Shapes[e.state.CurrentIndex].Positions[slot]
	tgt := e.set.Shapes[e.state.TargetIndex].Positions[slot]
	n := e.stagger.values[e.state.CurrentIndex][slot]
	return mix(cur, tgt, staggeredProgress(e.state.Progress, e.opts.Stagger, n))
}
