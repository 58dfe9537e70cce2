package tween

// Tween interpolates From to To over Duration time units.
type Tween struct {
	From, To float32
	Duration float32
	Ease     Ease

	elapsed float32
	value   float32
	done    bool
}

// New creates a tween positioned at its start value.
// A nil ease is linear. A non-positive duration completes on the first Advance.
func New(from, to, duration float32, ease Ease) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{
		From:     from,
		To:       to,
		Duration: duration,
		Ease:     ease,
		value:    from,
	}
}

// Advance moves the tween forward by dt and returns the new value.
// Negative dt is treated as zero.
func (tw *Tween) Advance(dt float32) float32 {
	if tw.done {
		return tw.value
	}
	if dt > 0 {
		tw.elapsed += dt
	}

	if tw.Duration <= 0 || tw.elapsed >= tw.Duration {
		tw.elapsed = tw.Duration
		tw.value = tw.To
		tw.done = true
		return tw.value
	}

	t := tw.elapsed / tw.Duration
	tw.value = tw.From + (tw.To-tw.From)*tw.Ease(t)
	return tw.value
}

// Value returns the most recently sampled value.
func (tw *Tween) Value() float32 {
	return tw.value
}

// Done reports whether the tween reached its end value.
func (tw *Tween) Done() bool {
	return tw.done
}

// Elapsed returns time spent so far, capped at Duration.
func (tw *Tween) Elapsed() float32 {
	return tw.elapsed
}
