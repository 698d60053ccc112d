package scenes

import (
	"time"

	"chimera/internal/presentation/models"
)

const (
	interimCountdown = 15
	interimTick      = time.Second
)

// Interim summarises the first three checks and counts down into EDD.
type Interim struct{}

func (Interim) Kind() models.Scene { return models.SceneInterim }

func (Interim) Play(m Mount) {
	remaining := interimCountdown
	frame := models.Frame{
		Scene:     models.SceneInterim,
		Headline:  "STATUS: CLEARED",
		Caption:   "System requires deep-dive analysis of corporate structures and digital footprint to finalize risk assessment.",
		Countdown: intPtr(remaining),
		Items: []models.Item{
			{Label: "Identity", Status: "VERIFIED"},
			{Label: "World-Check", Status: "0 HITS"},
			{Label: "AML Score", Status: "LOW RISK"},
		},
	}
	m.Emit(frame)

	m.Timers.Every(interimTick, func() bool {
		remaining--
		frame.Countdown = intPtr(remaining)
		frame.Progress = float64(interimCountdown-remaining) / interimCountdown * 100
		if remaining <= 0 {
			frame.Finished = true
			m.Emit(frame)
			m.Done()
			return false
		}
		m.Emit(frame)
		return true
	})
}
