// Package telemetry records morph activity and frame timing to CSV.
package telemetry

import "github.com/pthm-cable/morph/morph"

// EventRecord is one row of events.csv.
type EventRecord struct {
	RunID    string  `csv:"run_id"`
	Frame    int64   `csv:"frame"`
	Kind     string  `csv:"kind"`
	From     int     `csv:"from"`
	To       int     `csv:"to"`
	Progress float32 `csv:"progress"`
	Time     float32 `csv:"time"`
}

// NewEventRecord flattens a morph event for CSV export.
func NewEventRecord(runID string, frame int64, ev morph.Event) EventRecord {
	return EventRecord{
		RunID:    runID,
		Frame:    frame,
		Kind:     ev.Kind.String(),
		From:     ev.From,
		To:       ev.To,
		Progress: ev.Progress,
		Time:     ev.Time,
	}
}
