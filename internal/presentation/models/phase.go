package models

import (
	"fmt"
	"strings"

	dErrors "chimera/pkg/domain-errors"
)

// Phase is the top-level state of a presentation. Exactly one is active.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseRunning    Phase = "RUNNING"
	PhaseFinalizing Phase = "FINALIZING"
	PhaseApproval   Phase = "APPROVAL"
	PhaseGenerating Phase = "GENERATING"
	PhaseOnboarding Phase = "ONBOARDING"
	PhaseComplete   Phase = "COMPLETE"
)

// Phases lists every phase in presentation order.
var Phases = []Phase{
	PhaseIdle,
	PhaseRunning,
	PhaseFinalizing,
	PhaseApproval,
	PhaseGenerating,
	PhaseOnboarding,
	PhaseComplete,
}

// ParsePhase validates a phase name (case-insensitive).
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown phase %q", s))
	}
	return p, nil
}

func (p Phase) String() string {
	return string(p)
}

// IsValid reports whether p is one of the seven phases.
func (p Phase) IsValid() bool {
	return p.Order() >= 0
}

// Order is p's position in Phases, or -1.
func (p Phase) Order() int {
	for i, candidate := range Phases {
		if candidate == p {
			return i
		}
	}
	return -1
}

// IsPostRunning reports whether every step has already completed in p.
func (p Phase) IsPostRunning() bool {
	return p.Order() > PhaseRunning.Order()
}
