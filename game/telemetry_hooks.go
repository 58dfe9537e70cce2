package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/telemetry"
)

// onMorphEvent records engine events and flags the cloud for re-upload.
func (g *Game) onMorphEvent(entity ecs.Entity, ev morph.Event) {
	slog.Info("morph", "frame", g.frame, "event", ev)

	g.collector.RecordEvent(ev)
	if err := g.outputManager.WriteEvent(telemetry.NewEventRecord("", g.frame, ev)); err != nil {
		slog.Error("failed to write event", "error", err)
	}

	if visual := g.visualMap.Get(entity); visual != nil {
		visual.Dirty = true
	}
}

// flushTelemetry closes the stats window when it has elapsed, or
// unconditionally when force is set.
func (g *Game) flushTelemetry(force bool) {
	now := float64(g.clock)
	if !force && !g.collector.ShouldFlush(now) {
		return
	}

	stats := g.collector.Flush(now, g.engine.State())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		slog.Info("stats", "window", stats)
		slog.Info("perf", "frames", perfStats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, now); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}
}

// PerfStats returns the rolling performance statistics.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}
