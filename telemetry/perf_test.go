package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPerfCollector_PhaseAttribution(t *testing.T) {
	clock := newFakeClock()
	pc := NewPerfCollector(10)
	pc.now = clock.now

	for i := 0; i < 4; i++ {
		pc.BeginFrame()
		clock.advance(50 * time.Microsecond) // before any phase
		pc.Enter(PhaseMorph)
		clock.advance(100 * time.Microsecond)
		pc.Enter(PhaseCompute)
		clock.advance(300 * time.Microsecond)
		pc.EndFrame()
		clock.advance(16*time.Millisecond - 450*time.Microsecond)
	}

	stats := pc.Stats()

	if stats.Frames != 4 {
		t.Fatalf("frames = %d, want 4", stats.Frames)
	}
	if stats.AvgFrame != 450*time.Microsecond {
		t.Errorf("avg frame = %v, want 450µs", stats.AvgFrame)
	}
	if stats.PhaseAvg[PhaseMorph] != 100*time.Microsecond {
		t.Errorf("morph avg = %v, want 100µs", stats.PhaseAvg[PhaseMorph])
	}
	if stats.PhaseAvg[PhaseCompute] != 300*time.Microsecond {
		t.Errorf("compute avg = %v, want 300µs", stats.PhaseAvg[PhaseCompute])
	}
	if stats.PhaseAvg[PhaseInput] != 0 {
		t.Errorf("input avg = %v, want 0", stats.PhaseAvg[PhaseInput])
	}

	wantPct := 300.0 / 450.0 * 100
	if diff := stats.PhasePct[PhaseCompute] - wantPct; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("compute pct = %v, want %v", stats.PhasePct[PhaseCompute], wantPct)
	}

	// Frame starts are 16ms apart
	if stats.FPS < 62.4 || stats.FPS > 62.6 {
		t.Errorf("fps = %v, want 62.5", stats.FPS)
	}
}

func TestPerfCollector_RampSplit(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.Record(FrameProfile{Total: 2 * time.Millisecond, Ramping: true})
	pc.Record(FrameProfile{Total: 4 * time.Millisecond, Ramping: true})
	pc.Record(FrameProfile{Total: 1 * time.Millisecond})

	stats := pc.Stats()

	if stats.RampFrames != 2 {
		t.Errorf("ramp frames = %d, want 2", stats.RampFrames)
	}
	if stats.AvgRampFrame != 3*time.Millisecond {
		t.Errorf("avg ramp frame = %v, want 3ms", stats.AvgRampFrame)
	}
	if stats.AvgIdleFrame != time.Millisecond {
		t.Errorf("avg idle frame = %v, want 1ms", stats.AvgIdleFrame)
	}
	if stats.MaxFrame != 4*time.Millisecond {
		t.Errorf("max frame = %v, want 4ms", stats.MaxFrame)
	}
}

func TestPerfCollector_ComputePerParticle(t *testing.T) {
	pc := NewPerfCollector(10)

	var compute [phaseCount]time.Duration
	compute[PhaseCompute] = 2 * time.Millisecond
	pc.Record(FrameProfile{Total: 3 * time.Millisecond, Phases: compute, Particles: 1000})
	pc.Record(FrameProfile{Total: 3 * time.Millisecond, Phases: compute, Particles: 1000})
	// Frames without a CPU blend do not dilute the per-slot cost
	pc.Record(FrameProfile{Total: time.Millisecond})

	stats := pc.Stats()

	if stats.ComputePerParticle != 2*time.Microsecond {
		t.Errorf("compute per particle = %v, want 2µs", stats.ComputePerParticle)
	}
	if got := stats.ToCSV(5).ComputeNSPerSlot; got != 2000 {
		t.Errorf("csv compute ns per slot = %d, want 2000", got)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 1; i <= 5; i++ {
		pc.Record(FrameProfile{Total: time.Duration(i) * time.Millisecond})
	}

	stats := pc.Stats()

	// Only frames 3, 4 and 5 remain
	if stats.Frames != 3 {
		t.Fatalf("frames = %d, want 3", stats.Frames)
	}
	if stats.AvgFrame != 4*time.Millisecond {
		t.Errorf("avg frame = %v, want 4ms", stats.AvgFrame)
	}
	if stats.MaxFrame != 5*time.Millisecond {
		t.Errorf("max frame = %v, want 5ms", stats.MaxFrame)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.Frames != 0 || stats.AvgFrame != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats for empty collector, got %+v", stats)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInput, "input"},
		{PhaseCompute, "compute"},
		{PhaseTelemetry, "telemetry"},
		{phaseCount, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
