package models

import "fmt"

// State is the sequencer's whole decision state. Step is meaningful only
// while Phase is PhaseRunning and is zero otherwise.
type State struct {
	Phase Phase `json:"phase"`
	Step  int   `json:"step"`
}

// Initial is the state a new presentation starts in.
var Initial = State{Phase: PhaseIdle}

// Valid checks the state invariants.
func (s State) Valid() bool {
	if !s.Phase.IsValid() {
		return false
	}
	if s.Phase == PhaseRunning {
		return s.Step >= 0 && s.Step < StepCount
	}
	return s.Step == 0
}

// CurrentStep returns the active step while running.
func (s State) CurrentStep() (Step, bool) {
	if s.Phase != PhaseRunning || s.Step < 0 || s.Step >= StepCount {
		return Step{}, false
	}
	return Steps[s.Step], true
}

// StepStatus derives the indicator status of step index i.
func (s State) StepStatus(i int) StepStatus {
	switch {
	case s.Phase == PhaseIdle:
		return StepPending
	case s.Phase.IsPostRunning():
		return StepComplete
	case i < s.Step:
		return StepComplete
	case i == s.Step:
		return StepActive
	default:
		return StepPending
	}
}

func (s State) String() string {
	if s.Phase == PhaseRunning {
		return fmt.Sprintf("%s[%d]", s.Phase, s.Step)
	}
	return s.Phase.String()
}
