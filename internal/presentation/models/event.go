package models

import "time"

// EventKind distinguishes state changes from cosmetic frames.
type EventKind string

const (
	EventTransition EventKind = "transition"
	EventFrame      EventKind = "frame"
)

// Event is what subscribers of a sequencer receive.
type Event struct {
	Seq        uint64      `json:"seq"`
	At         time.Time   `json:"at"`
	Kind       EventKind   `json:"kind"`
	State      State       `json:"state"`
	Transition *Transition `json:"transition,omitempty"`
	Frame      *Frame      `json:"frame,omitempty"`
}

// Snapshot is a read-only view of a sequencer. Seq is the sequence number of
// the last event published before the view was taken; events with a higher
// Seq happened after it.
type Snapshot struct {
	Seq     uint64     `json:"seq"`
	State   State      `json:"state"`
	Steps   []StepView `json:"steps"`
	Frame   *Frame     `json:"frame,omitempty"`
	Entered time.Time  `json:"entered_at"`
	Subject string     `json:"subject"`
}

// StepView pairs a step with its indicator status.
type StepView struct {
	Step
	Status StepStatus `json:"status"`
}

// StepViews derives the indicator row for s.
func StepViews(s State) []StepView {
	views := make([]StepView, len(Steps))
	for i, step := range Steps {
		views[i] = StepView{Step: step, Status: s.StepStatus(i)}
	}
	return views
}
