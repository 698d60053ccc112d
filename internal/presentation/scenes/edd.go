package scenes

import (
	"time"

	"chimera/internal/presentation/models"
)

const (
	eddDuration = 10 * time.Second
	eddHold     = time.Second
)

// EDDModule is one enhanced-due-diligence analysis panel.
type EDDModule struct {
	ID      string
	Title   string
	Details []string
}

// EDDModules run one after another, each for an equal share of the scene.
var EDDModules = []EDDModule{
	{ID: "financial", Title: "FINANCIAL LINKAGES", Details: []string{"Tracing beneficial ownership", "Cross-border transaction mapping", "Hidden asset detection"}},
	{ID: "corporate", Title: "CORPORATE STRUCTURE", Details: []string{"Shell company analysis", "Offshore registry lookup", "Director association graph"}},
	{ID: "digital", Title: "DIGITAL FOOTPRINT", Details: []string{"Dark web credential check", "Social graph analysis", "Device fingerprinting"}},
	{ID: "predictive", Title: "PREDICTIVE MODELING", Details: []string{"Behavioral anomaly detection", "Future risk projection", "Synthetic identity scoring"}},
}

// EDD is the enhanced due diligence deep dive.
type EDD struct{}

func (EDD) Kind() models.Scene { return models.SceneEDD }

func (EDD) Play(m Mount) {
	stepDuration := eddDuration / time.Duration(len(EDDModules))
	active, completed := 0, 0

	m.Emit(eddFrame(active, completed))

	m.Timers.Every(stepDuration, func() bool {
		completed++
		if active+1 >= len(EDDModules) {
			active = len(EDDModules)
			m.Emit(eddFrame(active, completed))
			m.Timers.After(eddHold, m.Done)
			return false
		}
		active++
		m.Emit(eddFrame(active, completed))
		return true
	})
}

func eddFrame(active, completed int) models.Frame {
	items := make([]models.Item, len(EDDModules))
	for i, mod := range EDDModules {
		status := string(models.StepPending)
		switch {
		case i < completed:
			status = string(models.StepComplete)
		case i == active:
			status = string(models.StepActive)
		}
		items[i] = models.Item{Label: mod.Title, Status: status, Details: mod.Details}
	}

	half := 0.0
	if active < len(EDDModules) {
		half = 0.5
	}
	progress := min((float64(completed)+half)/float64(len(EDDModules))*100, 100)

	frame := models.Frame{
		Scene:    models.SceneEDD,
		Headline: "PROCESSING DATA STREAMS...",
		Progress: progress,
		Items:    items,
	}
	if active >= len(EDDModules) {
		frame.Headline = "COMPILATION COMPLETE"
		frame.Finished = true
	} else {
		frame.Caption = "> SCANNING: " + EDDModules[active].Details[0]
	}
	return frame
}
