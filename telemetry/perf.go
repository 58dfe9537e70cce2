package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one timed section of a morph frame.
type Phase uint8

const (
	PhaseInput     Phase = iota // keys, mouse, camera
	PhaseMorph                  // autoplay and ramp advance
	PhaseCompute                // CPU blend of every slot (headless)
	PhaseUpload                 // re-upload of a changed shape pair
	PhaseTelemetry              // stats windows and CSV output
	phaseCount
)

var phaseNames = [phaseCount]string{"input", "morph", "compute", "upload", "telemetry"}

func (ph Phase) String() string {
	if ph >= phaseCount {
		return "unknown"
	}
	return phaseNames[ph]
}

// Phases lists every phase in frame order.
func Phases() []Phase {
	return []Phase{PhaseInput, PhaseMorph, PhaseCompute, PhaseUpload, PhaseTelemetry}
}

// FrameProfile is the timing of one frame.
type FrameProfile struct {
	Start     time.Time
	Total     time.Duration
	Phases    [phaseCount]time.Duration
	Ramping   bool // a morph ramp was in flight
	Particles int  // slots blended in the compute phase
}

// PerfCollector keeps the profiles of the last few frames.
// Frames are split into phases with Enter; time between BeginFrame and the
// first Enter is not attributed to any phase.
type PerfCollector struct {
	now func() time.Time

	ring  []FrameProfile
	next  int
	count int

	cur        FrameProfile
	open       bool
	phase      Phase
	phaseStart time.Time
}

// NewPerfCollector creates a collector over the last window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:  time.Now,
		ring: make([]FrameProfile, window),
	}
}

// BeginFrame starts profiling a frame.
func (p *PerfCollector) BeginFrame() {
	p.cur = FrameProfile{Start: p.now()}
	p.open = false
}

// Enter closes the running phase, if any, and starts ph.
func (p *PerfCollector) Enter(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.open = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.open {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
		p.open = false
	}
}

// MarkRamping flags the frame as part of an in-flight morph.
func (p *PerfCollector) MarkRamping(ramping bool) {
	p.cur.Ramping = ramping
}

// AddParticles counts slots blended during the frame.
func (p *PerfCollector) AddParticles(n int) {
	p.cur.Particles += n
}

// EndFrame closes the frame and stores its profile.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	p.closePhase(now)
	p.cur.Total = now.Sub(p.cur.Start)
	p.Record(p.cur)
}

// Record stores a finished profile, evicting the oldest when full.
func (p *PerfCollector) Record(fp FrameProfile) {
	p.ring[p.next] = fp
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// profiles returns stored profiles oldest first.
func (p *PerfCollector) profiles() []FrameProfile {
	out := make([]FrameProfile, 0, p.count)
	start := (p.next - p.count + len(p.ring)) % len(p.ring)
	for i := 0; i < p.count; i++ {
		out = append(out, p.ring[(start+i)%len(p.ring)])
	}
	return out
}

// PerfStats summarises the stored frames.
type PerfStats struct {
	Frames   int
	AvgFrame time.Duration
	P99Frame time.Duration
	MaxFrame time.Duration
	FPS      float64 // from the spacing of frame starts

	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64

	RampFrames   int
	AvgRampFrame time.Duration
	AvgIdleFrame time.Duration

	// Compute phase cost per blended slot, 0 when nothing was blended.
	ComputePerParticle time.Duration
}

// Stats aggregates the stored frames.
func (p *PerfCollector) Stats() PerfStats {
	frames := p.profiles()
	s := PerfStats{Frames: len(frames)}
	if len(frames) == 0 {
		return s
	}

	totals := make([]float64, len(frames))
	var ramp, idle []float64
	var phaseSum [phaseCount]time.Duration
	var computeTime time.Duration
	var particles int

	for i, f := range frames {
		totals[i] = float64(f.Total)
		if f.Total > s.MaxFrame {
			s.MaxFrame = f.Total
		}
		if f.Ramping {
			ramp = append(ramp, float64(f.Total))
		} else {
			idle = append(idle, float64(f.Total))
		}
		for ph, d := range f.Phases {
			phaseSum[ph] += d
		}
		if f.Particles > 0 {
			computeTime += f.Phases[PhaseCompute]
			particles += f.Particles
		}
	}

	s.AvgFrame = time.Duration(stat.Mean(totals, nil))
	sorted := append([]float64(nil), totals...)
	sort.Float64s(sorted)
	s.P99Frame = time.Duration(Percentile(sorted, 0.99))

	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / time.Duration(len(frames))
		if s.AvgFrame > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgFrame) * 100
		}
	}

	s.RampFrames = len(ramp)
	if len(ramp) > 0 {
		s.AvgRampFrame = time.Duration(stat.Mean(ramp, nil))
	}
	if len(idle) > 0 {
		s.AvgIdleFrame = time.Duration(stat.Mean(idle, nil))
	}
	if particles > 0 {
		s.ComputePerParticle = computeTime / time.Duration(particles)
	}

	if len(frames) > 1 {
		span := frames[len(frames)-1].Start.Sub(frames[0].Start)
		if span > 0 {
			s.FPS = float64(len(frames)-1) / span.Seconds()
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("p99_frame_us", s.P99Frame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int("ramp_frames", s.RampFrames),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	if s.ComputePerParticle > 0 {
		attrs = append(attrs, slog.Int64("compute_ns_per_particle", s.ComputePerParticle.Nanoseconds()))
	}
	for _, ph := range Phases() {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd        float64 `csv:"window_end"`
	Frames           int     `csv:"frames"`
	AvgFrameUS       int64   `csv:"avg_frame_us"`
	P99FrameUS       int64   `csv:"p99_frame_us"`
	MaxFrameUS       int64   `csv:"max_frame_us"`
	FPS              float64 `csv:"fps"`
	RampFrames       int     `csv:"ramp_frames"`
	AvgRampFrameUS   int64   `csv:"avg_ramp_frame_us"`
	AvgIdleFrameUS   int64   `csv:"avg_idle_frame_us"`
	ComputeNSPerSlot int64   `csv:"compute_ns_per_slot"`
	InputPct         float64 `csv:"input_pct"`
	MorphPct         float64 `csv:"morph_pct"`
	ComputePct       float64 `csv:"compute_pct"`
	UploadPct        float64 `csv:"upload_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for a window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd float64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		Frames:           s.Frames,
		AvgFrameUS:       s.AvgFrame.Microseconds(),
		P99FrameUS:       s.P99Frame.Microseconds(),
		MaxFrameUS:       s.MaxFrame.Microseconds(),
		FPS:              s.FPS,
		RampFrames:       s.RampFrames,
		AvgRampFrameUS:   s.AvgRampFrame.Microseconds(),
		AvgIdleFrameUS:   s.AvgIdleFrame.Microseconds(),
		ComputeNSPerSlot: s.ComputePerParticle.Nanoseconds(),
		InputPct:         s.PhasePct[PhaseInput],
		MorphPct:         s.PhasePct[PhaseMorph],
		ComputePct:       s.PhasePct[PhaseCompute],
		UploadPct:        s.PhasePct[PhaseUpload],
		TelemetryPct:     s.PhasePct[PhaseTelemetry],
	}
}
