package morph

import "log/slog"

// EventKind identifies a morph lifecycle event.
type EventKind uint8

const (
	EventStarted    EventKind = iota // MorphTo with no ramp in flight
	EventRetargeted                  // MorphTo replaced an in-flight ramp
	EventCompleted                   // Ramp reached 1, current index moved to target
	EventScrubbed                    // Progress set directly, ramp cancelled
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventRetargeted:
		return "retargeted"
	case EventCompleted:
		return "completed"
	case EventScrubbed:
		return "scrubbed"
	default:
		return "unknown"
	}
}

// Event describes a change to the morph state.
type Event struct {
	Kind     EventKind
	From     int // Current index when the event fired
	To       int // Target index when the event fired
	Progress float32
	Time     float32
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", e.Kind.String()),
		slog.Int("from", e.From),
		slog.Int("to", e.To),
		slog.Float64("progress", float64(e.Progress)),
		slog.Float64("time", float64(e.Time)),
	)
}
