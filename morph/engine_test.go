package morph

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/morph/shape"
	"github.com/pthm-cable/morph/tween"
)

// testSet builds four shapes with point counts [800, 500, 1200, 300].
func testSet(t *testing.T) *shape.ParticleSet {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	counts := []int{800, 500, 1200, 300}
	input := make([][]mgl32.Vec3, len(counts))
	for i, c := range counts {
		pts := make([]mgl32.Vec3, c)
		for j := range pts {
			pts[j] = mgl32.Vec3{
				rng.Float32()*10 - 5,
				rng.Float32()*10 - 5,
				rng.Float32()*10 - 5,
			}
		}
		input[i] = pts
	}
	set, err := shape.Resample(input, rng)
	require.NoError(t, err)
	return set
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(testSet(t), 0, opts)
	require.NoError(t, err)
	return e
}

func TestInitialize(t *testing.T) {
	set := testSet(t)

	a, err := Initialize(set, 2)
	require.NoError(t, err)
	b, err := Initialize(set, 2)
	require.NoError(t, err)

	assert.Equal(t, a, b, "initialize should be idempotent")
	assert.Equal(t, 2, a.CurrentIndex)
	assert.Equal(t, 2, a.TargetIndex)
	assert.Zero(t, a.Progress)

	_, err = Initialize(set, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = NewEngine(set, -1, DefaultOptions())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMorphToOutOfRangeLeavesStateUnchanged(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	require.NoError(t, e.MorphTo(1))
	e.Advance(1)
	before := e.State()
	wasActive := e.Active()

	for _, idx := range []int{-1, 4, 100} {
		err := e.MorphTo(idx)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: %v", idx, err)
		assert.Equal(t, before, e.State(), "index %d changed state", idx)
		assert.Equal(t, wasActive, e.Active())
	}
}

func TestComputePositionEndpoints(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	set := e.Set()
	require.NoError(t, e.MorphTo(3))

	for slot := 0; slot < set.Capacity; slot++ {
		require.Equal(t, set.Shapes[0].Positions[slot], e.ComputePosition(slot), "slot %d at progress 0", slot)
	}

	e.SetProgress(1)
	for slot := 0; slot < set.Capacity; slot++ {
		require.Equal(t, set.Shapes[3].Positions[slot], e.ComputePosition(slot), "slot %d at progress 1", slot)
	}
}

func TestComputePositionIsLinear(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	set := e.Set()
	require.NoError(t, e.MorphTo(1))
	e.Advance(0.75) // a quarter of the three-unit ramp

	assert.InDelta(t, 0.25, e.State().Progress, 1e-6)
	cur := set.Shapes[0].Positions[10]
	tgt := set.Shapes[1].Positions[10]
	want := cur.Add(tgt.Sub(cur).Mul(0.25))
	assert.True(t, want.ApproxEqualThreshold(e.ComputePosition(10), 1e-5))
}

func TestMorphCompletes(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	set := e.Set()

	require.NoError(t, e.MorphTo(2))
	assert.Equal(t, 0, e.State().CurrentIndex)
	assert.Equal(t, 2, e.State().TargetIndex)

	completed := false
	for i := 0; i < 200 && !completed; i++ {
		completed = e.Advance(1.0 / 60)
	}
	require.True(t, completed, "ramp should finish within 200 frames")

	st := e.State()
	assert.Equal(t, 2, st.CurrentIndex)
	assert.Equal(t, float32(1), st.Progress)
	assert.False(t, e.Active())
	for slot := 0; slot < set.Capacity; slot++ {
		require.Equal(t, set.Shapes[2].Positions[slot], e.ComputePosition(slot))
	}

	// Progress stays at 1 while idle.
	assert.False(t, e.Advance(5))
	assert.Equal(t, float32(1), e.State().Progress)
}

func TestRampTakesThreeUnits(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	require.NoError(t, e.MorphTo(1))

	assert.False(t, e.Advance(2.5))
	assert.True(t, e.Advance(0.5))
}

func TestRetargetMidFlightRestartsFromZero(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())

	require.NoError(t, e.MorphTo(1))
	e.Advance(1.5)
	require.InDelta(t, 0.5, e.State().Progress, 1e-6)

	require.NoError(t, e.MorphTo(3))
	st := e.State()
	assert.Equal(t, 3, st.TargetIndex)
	assert.Equal(t, 0, st.CurrentIndex, "current index must not move on retarget")
	assert.Zero(t, st.Progress, "new ramp restarts from zero")

	e.Advance(3)
	assert.Equal(t, 3, e.State().CurrentIndex)
}

func TestRetargetQuickSuccession(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())

	require.NoError(t, e.MorphTo(1))
	require.NoError(t, e.MorphTo(3))

	st := e.State()
	assert.Equal(t, 3, st.TargetIndex)
	assert.Equal(t, 0, st.CurrentIndex)
}

func TestRetargetFromProgressPolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.Restart = RestartFromProgress
	e := newTestEngine(t, opts)

	require.NoError(t, e.MorphTo(1))
	e.Advance(1.5)
	require.NoError(t, e.MorphTo(3))

	st := e.State()
	assert.Equal(t, 3, st.TargetIndex)
	assert.Equal(t, 0, st.CurrentIndex)
	assert.InDelta(t, 0.5, st.Progress, 1e-6, "progress carries over")

	// The remaining half takes half the duration.
	assert.False(t, e.Advance(1))
	assert.True(t, e.Advance(0.5))
	assert.Equal(t, 3, e.State().CurrentIndex)

	// From rest the policy still starts at zero.
	require.NoError(t, e.MorphTo(0))
	assert.Zero(t, e.State().Progress)
}

func TestStalledRampStaysMidBlend(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	require.NoError(t, e.MorphTo(2))
	e.Advance(1)

	for i := 0; i < 100; i++ {
		assert.False(t, e.Advance(0))
	}
	assert.True(t, e.Active())
	assert.InDelta(t, 1.0/3, e.State().Progress, 1e-6)
}

func TestSetProgressCancelsRamp(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	require.NoError(t, e.MorphTo(1))

	e.SetProgress(0.6)
	assert.False(t, e.Active())
	assert.False(t, e.Advance(10))
	assert.Equal(t, float32(0.6), e.State().Progress)

	e.SetProgress(7)
	assert.Equal(t, float32(1), e.State().Progress)
	e.SetProgress(-1)
	assert.Zero(t, e.State().Progress)
}

func TestScrubToEndCommitsTarget(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	set := e.Set()
	require.NoError(t, e.MorphTo(2))

	e.SetProgress(1)
	state := e.State()
	assert.Equal(t, 2, state.CurrentIndex)
	assert.Equal(t, 2, state.TargetIndex)
	assert.False(t, e.Active())

	// The next morph starts from the shape on screen
	require.NoError(t, e.MorphTo(1))
	state = e.State()
	assert.Equal(t, 2, state.CurrentIndex)
	assert.Equal(t, 1, state.TargetIndex)
	assert.Zero(t, state.Progress)
	for slot := 0; slot < set.Capacity; slot++ {
		require.Equal(t, set.Shapes[2].Positions[slot], e.ComputePosition(slot), "slot %d", slot)
	}
}

func TestScrubMidwayKeepsCurrent(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	require.NoError(t, e.MorphTo(3))

	e.SetProgress(0.999)
	assert.Equal(t, 0, e.State().CurrentIndex)
	assert.Equal(t, 3, e.State().TargetIndex)
}

func TestEasedRamp(t *testing.T) {
	opts := DefaultOptions()
	ease, err := tween.ByName("power2.in")
	require.NoError(t, err)
	opts.Ease = ease
	e := newTestEngine(t, opts)

	require.NoError(t, e.MorphTo(1))
	e.Advance(1.5)
	assert.Less(t, e.State().Progress, float32(0.5))
}

func TestSetTimeAndColors(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	a := color.RGBA{R: 255, G: 115, A: 255}
	b := color.RGBA{G: 145, B: 255, A: 255}

	e.SetTime(12.5)
	e.SetColors(a, b)
	e.SetTime(-3) // no validation

	u := e.Uniforms(mgl32.Vec2{800, 600})
	assert.Equal(t, float32(-3), u.Time)
	assert.Equal(t, a, u.ColorA)
	assert.Equal(t, b, u.ColorB)
	assert.Equal(t, float32(0.4), u.Size)
	assert.Equal(t, mgl32.Vec2{800, 600}, u.Resolution)
}

func TestComputeAll(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	require.NoError(t, e.MorphTo(2))
	e.Advance(1)

	out := e.ComputeAll(nil)
	require.Len(t, out, e.Set().Capacity)
	for _, slot := range []int{0, 299, 799, 1199} {
		assert.Equal(t, e.ComputePosition(slot), out[slot])
	}

	reused := e.ComputeAll(out)
	assert.Same(t, &out[0], &reused[0], "buffer with enough capacity is reused")
}

func TestEvents(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	var got []Event
	e.Subscribe(func(ev Event) { got = append(got, ev) })

	require.NoError(t, e.MorphTo(1))
	require.NoError(t, e.MorphTo(2))
	e.Advance(3)
	e.SetProgress(0.5)

	require.Len(t, got, 4)
	assert.Equal(t, EventStarted, got[0].Kind)
	assert.Equal(t, EventRetargeted, got[1].Kind)
	assert.Equal(t, EventCompleted, got[2].Kind)
	assert.Equal(t, 0, got[2].From)
	assert.Equal(t, 2, got[2].To)
	assert.Equal(t, EventScrubbed, got[3].Kind)
	assert.Equal(t, "completed", got[2].Kind.String())
}

func TestResolution(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		ratio, max float32
		want       mgl32.Vec2
	}{
		{"unit ratio", 1280, 720, 1, 2, mgl32.Vec2{1280, 720}},
		{"retina", 1280, 720, 2, 2, mgl32.Vec2{2560, 1440}},
		{"capped", 1000, 500, 3, 2, mgl32.Vec2{2000, 1000}},
		{"uncapped", 1000, 500, 3, 0, mgl32.Vec2{3000, 1500}},
		{"zero ratio", 10, 10, 0, 2, mgl32.Vec2{10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolution(tt.w, tt.h, tt.ratio, tt.max))
		})
	}
}
