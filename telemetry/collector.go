package telemetry

import (
	"time"

	"github.com/pthm-cable/morph/morph"
)

// Collector accumulates frame times and morph events within time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStart float64
	frames      []float64 // frame durations in milliseconds

	// Event counters for current window
	started    int
	retargeted int
	completed  int
	scrubbed   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in animation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records the duration of one frame.
func (c *Collector) RecordFrame(d time.Duration) {
	c.frames = append(c.frames, float64(d)/float64(time.Millisecond))
}

// RecordEvent counts a morph event.
func (c *Collector) RecordEvent(ev morph.Event) {
	switch ev.Kind {
	case morph.EventStarted:
		c.started++
	case morph.EventRetargeted:
		c.retargeted++
	case morph.EventCompleted:
		c.completed++
	case morph.EventScrubbed:
		c.scrubbed++
	}
}

// ShouldFlush returns true if the window has elapsed at time now.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, state morph.State) WindowStats {
	mean, std, p50, p90, p99 := ComputeFrameStats(c.frames)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Frames:      len(c.frames),

		FrameMeanMS: mean,
		FrameStdMS:  std,
		FrameP50MS:  p50,
		FrameP90MS:  p90,
		FrameP99MS:  p99,

		Started:    c.started,
		Retargeted: c.retargeted,
		Completed:  c.completed,
		Scrubbed:   c.scrubbed,

		CurrentIndex: state.CurrentIndex,
		TargetIndex:  state.TargetIndex,
		Progress:     float64(state.Progress),
	}
	if mean > 0 {
		stats.FPS = 1000 / mean
	}

	// Reset for next window
	c.windowStart = now
	c.frames = c.frames[:0]
	c.started = 0
	c.retargeted = 0
	c.completed = 0
	c.scrubbed = 0

	return stats
}
