package handler

import (
	"time"

	"chimera/internal/presentation/models"
)

// PresentationResponse is the JSON view of one presentation.
type PresentationResponse struct {
	ID          string            `json:"id"`
	Subject     string            `json:"subject"`
	Phase       models.Phase      `json:"phase"`
	Step        int               `json:"step"`
	CurrentStep *models.Step      `json:"current_step,omitempty"`
	Steps       []models.StepView `json:"steps"`
	Frame       *models.Frame     `json:"frame,omitempty"`
	EnteredAt   time.Time         `json:"entered_at"`
	CreatedAt   time.Time         `json:"created_at"`
	Seq         uint64            `json:"seq"`
}

type ListResponse struct {
	Presentations []PresentationResponse `json:"presentations"`
}

type HistoryResponse struct {
	ID          string              `json:"id"`
	Transitions []models.Transition `json:"transitions"`
}

// FromPresentation maps the service view to its wire form.
func FromPresentation(p *models.Presentation) PresentationResponse {
	resp := PresentationResponse{
		ID:        p.ID.String(),
		Subject:   p.Subject,
		Phase:     p.State.Phase,
		Step:      p.State.Step,
		Steps:     p.Steps,
		Frame:     p.Frame,
		EnteredAt: p.Entered,
		CreatedAt: p.CreatedAt,
		Seq:       p.Seq,
	}
	if step, ok := p.State.CurrentStep(); ok {
		resp.CurrentStep = &step
	}
	return resp
}
