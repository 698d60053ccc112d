package scenes

import (
	"time"

	"chimera/internal/presentation/models"
)

const (
	ekycScanDuration = 1500 * time.Millisecond
	ekycScanTick     = 250 * time.Millisecond
	ekycHold         = time.Second
)

// EKYC is the biometric identity check.
type EKYC struct{}

func (EKYC) Kind() models.Scene { return models.SceneEKYC }

func (EKYC) Play(m Mount) {
	frame := models.Frame{
		Scene:    models.SceneEKYC,
		Headline: "ANALYZING BIOMETRICS",
		Caption:  "Face mesh // liveness detection",
	}
	m.Emit(frame)

	elapsed := time.Duration(0)
	m.Timers.Every(ekycScanTick, func() bool {
		elapsed += ekycScanTick
		if elapsed >= ekycScanDuration {
			frame.Progress = 100
			frame.Headline = "Identity Verified"
			frame.Caption = "Biometric match confirmed"
			frame.Finished = true
			m.Emit(frame)
			m.Timers.After(ekycHold, m.Done)
			return false
		}
		frame.Progress = float64(elapsed) / float64(ekycScanDuration) * 100
		m.Emit(frame)
		return true
	})
}
