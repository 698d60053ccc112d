package presentation

import (
	"fmt"
	"time"

	"chimera/internal/presentation/models"
	"chimera/pkg/platform/sentinel"
)

// Delays are the fixed dwell times of the timer-driven phases.
type Delays struct {
	Finalizing time.Duration
	Approval   time.Duration
	Generating time.Duration
	Onboarding time.Duration
}

// DefaultDelays matches the presentation script: 3s, 7s, 5s, 3s.
var DefaultDelays = Delays{
	Finalizing: 3 * time.Second,
	Approval:   7 * time.Second,
	Generating: 5 * time.Second,
	Onboarding: 3 * time.Second,
}

// For returns the dwell time of p, or false if p leaves on a user action or
// scene completion instead.
func (d Delays) For(p models.Phase) (time.Duration, bool) {
	switch p {
	case models.PhaseFinalizing:
		return d.Finalizing, true
	case models.PhaseApproval:
		return d.Approval, true
	case models.PhaseGenerating:
		return d.Generating, true
	case models.PhaseOnboarding:
		return d.Onboarding, true
	default:
		return 0, false
	}
}

// Total is the wall time from entering Finalizing to entering Complete.
func (d Delays) Total() time.Duration {
	return d.Finalizing + d.Approval + d.Generating + d.Onboarding
}

// Next applies trigger to s. It is pure: every transition of the
// presentation is decided here and nowhere else. Pairs outside the table
// return an error wrapping sentinel.ErrInvalidState and leave s unchanged.
func Next(s models.State, trigger models.Trigger) (models.State, error) {
	switch trigger {
	case models.TriggerStart:
		if s.Phase == models.PhaseIdle {
			return models.State{Phase: models.PhaseRunning, Step: 0}, nil
		}
	case models.TriggerSceneComplete:
		if s.Phase == models.PhaseRunning {
			if s.Step < models.StepCount-1 {
				return models.State{Phase: models.PhaseRunning, Step: s.Step + 1}, nil
			}
			return models.State{Phase: models.PhaseFinalizing}, nil
		}
	case models.TriggerDelayElapsed:
		switch s.Phase {
		case models.PhaseFinalizing:
			return models.State{Phase: models.PhaseApproval}, nil
		case models.PhaseApproval:
			return models.State{Phase: models.PhaseGenerating}, nil
		case models.PhaseGenerating:
			return models.State{Phase: models.PhaseOnboarding}, nil
		case models.PhaseOnboarding:
			return models.State{Phase: models.PhaseComplete}, nil
		}
	case models.TriggerReset:
		if s.Phase == models.PhaseComplete {
			return models.Initial, nil
		}
	}
	return s, fmt.Errorf("%s from %s: %w", trigger, s, sentinel.ErrInvalidState)
}
