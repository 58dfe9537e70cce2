package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`

	// Frame timing
	Frames      int     `csv:"frames"`
	FPS         float64 `csv:"fps"`
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP90MS  float64 `csv:"frame_p90_ms"`
	FrameP99MS  float64 `csv:"frame_p99_ms"`

	// Events during window
	Started    int `csv:"started"`
	Retargeted int `csv:"retargeted"`
	Completed  int `csv:"completed"`
	Scrubbed   int `csv:"scrubbed"`

	// Morph state at window end
	CurrentIndex int     `csv:"current"`
	TargetIndex  int     `csv:"target"`
	Progress     float64 `csv:"progress"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Float64("fps", s.FPS),
		slog.Float64("frame_p50_ms", s.FrameP50MS),
		slog.Float64("frame_p99_ms", s.FrameP99MS),
		slog.Int("started", s.Started),
		slog.Int("retargeted", s.Retargeted),
		slog.Int("completed", s.Completed),
		slog.Int("current", s.CurrentIndex),
		slog.Int("target", s.TargetIndex),
		slog.Float64("progress", s.Progress),
	)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFrameStats calculates mean, std, and percentiles from frame times.
// The standard deviation is the unbiased sample estimate.
func ComputeFrameStats(values []float64) (mean, std, p50, p90, p99 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	p99 = Percentile(sorted, 0.99)

	return mean, std, p50, p90, p99
}
