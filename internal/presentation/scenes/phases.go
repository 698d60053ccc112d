package scenes

import (
	"context"
	"time"

	"chimera/internal/presentation/models"
)

// Idle waits for the operator.
type Idle struct{}

func (Idle) Kind() models.Scene { return models.SceneIdle }

func (Idle) Play(m Mount) {
	m.Emit(models.Frame{
		Scene:    models.SceneIdle,
		Headline: "INITIALIZE SYSTEM",
		Caption:  "Project Chimera // SYSTEM V2.7 // SECURED CONNECTION",
	})
}

// Finalizing aggregates the step results.
type Finalizing struct{}

func (Finalizing) Kind() models.Scene { return models.SceneFinalizing }

func (Finalizing) Play(m Mount) {
	m.Emit(models.Frame{
		Scene:    models.SceneFinalizing,
		Headline: "SYSTEM ANALYSING",
		Caption:  "Aggregating 428 Data Points...",
	})
}

const approvalReveal = 1200 * time.Millisecond

// ApprovalItems are revealed one at a time.
var ApprovalItems = []models.Item{
	{Label: "Senior Management Approved", Status: "GRANTED"},
	{Label: "Source of Wealth", Status: "VERIFIED"},
	{Label: "Adverse Media", Status: "CLEARED"},
	{Label: "Transaction Monitoring", Status: "ENABLED"},
}

// Approval reveals the sign-off checklist.
type Approval struct{}

func (Approval) Kind() models.Scene { return models.SceneApproval }

func (Approval) Play(m Mount) {
	visible := 0
	emit := func() {
		m.Emit(models.Frame{
			Scene:    models.SceneApproval,
			Headline: "SYSTEM APPROVAL",
			Progress: float64(visible) / float64(len(ApprovalItems)) * 100,
			Items:    append([]models.Item(nil), ApprovalItems[:visible]...),
			Finished: visible == len(ApprovalItems),
		})
	}
	emit()
	m.Timers.Every(approvalReveal, func() bool {
		visible++
		emit()
		return visible < len(ApprovalItems)
	})
}

// Report synthesises the final report and, when a narrator is configured,
// shows its narrative once it arrives.
type Report struct {
	Narrator Narrator
}

func (Report) Kind() models.Scene { return models.SceneReport }

func (r Report) Play(m Mount) {
	frame := models.Frame{
		Scene:    models.SceneReport,
		Headline: "SYNTHESIZING FINAL REPORT",
		Caption:  "Encrypting // Signing // Archiving",
	}
	m.Emit(frame)
	if r.Narrator == nil {
		return
	}

	subject := m.Subject
	m.Spawn(func(ctx context.Context) func() {
		text := r.Narrator.Generate(ctx, subject.Name, subject.Verified, subject.Score)
		return func() {
			frame.Narrative = text
			frame.Finished = true
			m.Emit(frame)
		}
	})
}

// Onboarding celebrates the result.
type Onboarding struct{}

func (Onboarding) Kind() models.Scene { return models.SceneOnboarding }

func (Onboarding) Play(m Mount) {
	m.Emit(models.Frame{
		Scene:    models.SceneOnboarding,
		Headline: "USER SUCCESSFULLY ONBOARDED",
		Caption:  "Identity Verified // Access Granted",
		Progress: 100,
		Finished: true,
	})
}

// Complete is the closing slide.
type Complete struct{}

func (Complete) Kind() models.Scene { return models.SceneComplete }

func (Complete) Play(m Mount) {
	m.Emit(models.Frame{
		Scene:    models.SceneComplete,
		Headline: "Welcome to Labuan International Compliance Conference 2025",
		Caption:  "System Reset",
		Finished: true,
	})
}
