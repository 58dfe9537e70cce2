package morph

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/morph/shape"
	"github.com/pthm-cable/morph/tween"
)

// RestartPolicy decides where a new ramp starts when MorphTo is called.
type RestartPolicy uint8

const (
	// RestartFromZero forces progress to 0 on every MorphTo. Retargeting
	// mid-flight snaps the cloud back to the current shape.
	RestartFromZero RestartPolicy = iota
	// RestartFromProgress keeps the in-flight progress and ramps the rest of
	// the way over the remaining fraction of the duration.
	RestartFromProgress
)

// DefaultDuration is the ramp length in time units.
const DefaultDuration = 3

// Options configures an Engine.
type Options struct {
	Duration  float32    // Ramp length; DefaultDuration when zero
	Ease      tween.Ease // Nil is linear
	Restart   RestartPolicy
	Stagger   float32 // Per-slot delay fraction in [0,1); 0 disables
	Size      float32 // Point size uniform
	NoiseSeed int64
}

// DefaultOptions returns a linear three-unit ramp restarting from zero.
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Ease:     tween.Linear,
		Restart:  RestartFromZero,
		Size:     0.4,
	}
}

// Engine drives morphs over a fixed ParticleSet.
// It is not safe for concurrent use; the frame loop is its only writer.
type Engine struct {
	set   *shape.ParticleSet
	state State
	opts  Options
	ramp  *tween.Tween

	stagger   *staggerField
	listeners []func(Event)
}

// NewEngine creates an engine at rest on initialIndex.
func NewEngine(set *shape.ParticleSet, initialIndex int, opts Options) (*Engine, error) {
	state, err := Initialize(set, initialIndex)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Ease == nil {
		opts.Ease = tween.Linear
	}
	opts.Stagger = clampStagger(opts.Stagger)

	e := &Engine{
		set:     set,
		state:   state,
		opts:    opts,
		stagger: newStaggerField(set, opts.NoiseSeed),
	}
	return e, nil
}

// Set returns the particle set the engine blends over.
func (e *Engine) Set() *shape.ParticleSet {
	return e.set
}

// State returns a copy of the current cursor.
func (e *Engine) State() State {
	return e.state
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Active reports whether a ramp is in flight.
func (e *Engine) Active() bool {
	return e.ramp != nil
}

// Subscribe registers fn to receive morph events.
func (e *Engine) Subscribe(fn func(Event)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(kind EventKind) {
	ev := Event{
		Kind:     kind,
		From:     e.state.CurrentIndex,
		To:       e.state.TargetIndex,
		Progress: e.state.Progress,
		Time:     e.state.Time,
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}

// MorphTo starts a ramp toward target, replacing any ramp in flight.
// CurrentIndex is left alone until the ramp completes.
// An out-of-range target returns ErrIndexOutOfRange and changes nothing.
func (e *Engine) MorphTo(target int) error {
	if err := checkIndex(e.set, target); err != nil {
		return fmt.Errorf("morph: %w", err)
	}

	kind := EventStarted
	if e.ramp != nil {
		kind = EventRetargeted
	}

	from := float32(0)
	duration := e.opts.Duration
	if e.opts.Restart == RestartFromProgress && e.ramp != nil {
		from = e.state.Progress
		duration *= 1 - from
	}

	e.state.TargetIndex = target
	e.state.Progress = from
	e.ramp = tween.New(from, 1, duration, e.opts.Ease)

	e.emit(kind)
	return nil
}

// Advance samples the ramp after dt time units and writes Progress.
// It returns true on the frame the morph completes.
func (e *Engine) Advance(dt float32) bool {
	if e.ramp == nil {
		return false
	}

	e.state.Progress = e.ramp.Advance(dt)
	if !e.ramp.Done() {
		return false
	}

	e.ramp = nil
	e.emit(EventCompleted)
	e.state.CurrentIndex = e.state.TargetIndex
	return true
}

// SetProgress sets progress directly, clamped to [0,1], and cancels any ramp.
// Landing on 1 commits the target as the current shape, as a completed ramp
// would, so the next MorphTo starts from what is on screen.
func (e *Engine) SetProgress(p float32) {
	e.ramp = nil
	e.state.Progress = mgl32.Clamp(p, 0, 1)
	e.emit(EventScrubbed)
	if e.state.Progress == 1 {
		e.state.CurrentIndex = e.state.TargetIndex
	}
}

// SetTime stores the latest time value.
func (e *Engine) SetTime(t float32) {
	e.state.Time = t
}

// SetColors updates the two display colours.
func (e *Engine) SetColors(a, b color.RGBA) {
	e.state.ColorA = a
	e.state.ColorB = b
}

// ComputePosition returns the blended position of slot.
// slot must be below the set's capacity.
func (e *Engine) ComputePosition(slot int) mgl32.Vec3 {
	cur := e.set.Shapes[e.state.CurrentIndex].Positions[slot]
	tgt := e.set.Shapes[e.state.TargetIndex].Positions[slot]
	return mix(cur, tgt, e.state.Progress)
}

// ComputeAll writes every slot's blended position into dst, growing it if needed.
func (e *Engine) ComputeAll(dst []mgl32.Vec3) []mgl32.Vec3 {
	if cap(dst) < e.set.Capacity {
		dst = make([]mgl32.Vec3, e.set.Capacity)
	}
	dst = dst[:e.set.Capacity]

	cur := e.set.Shapes[e.state.CurrentIndex].Positions
	tgt := e.set.Shapes[e.state.TargetIndex].Positions
	for i := range dst {
		dst[i] = mix(cur[i], tgt[i], e.state.Progress)
	}
	return dst
}

// mix weights a by 1-t and b by t, so t=0 and t=1 return a and b exactly.
func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
