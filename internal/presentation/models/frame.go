package models

// Scene names a presentational view. Running-phase scenes share the step ID.
type Scene string

const (
	SceneIdle       Scene = "idle"
	SceneEKYC       Scene = Scene(StepEKYC)
	SceneWorldCheck Scene = Scene(StepWorldCheck)
	SceneAML        Scene = Scene(StepAML)
	SceneInterim    Scene = Scene(StepInterim)
	SceneEDD        Scene = Scene(StepEDD)
	SceneFinalizing Scene = "finalizing"
	SceneApproval   Scene = "approval"
	SceneReport     Scene = "report"
	SceneOnboarding Scene = "onboarding"
	SceneComplete   Scene = "complete"
)

// Frame is one cosmetic snapshot of a scene. Values are decoration only.
type Frame struct {
	Scene     Scene    `json:"scene"`
	Progress  float64  `json:"progress"`
	Headline  string   `json:"headline"`
	Caption   string   `json:"caption,omitempty"`
	Score     *int     `json:"score,omitempty"`
	Countdown *int     `json:"countdown,omitempty"`
	Lines     []string `json:"lines,omitempty"`
	Items     []Item   `json:"items,omitempty"`
	Bars      []Bar    `json:"bars,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Finished  bool     `json:"finished"`
}

// Item is a checklist row or analysis module.
type Item struct {
	Label   string   `json:"label"`
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

// Bar is one column of a mock chart.
type Bar struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Clone returns a copy whose slices and pointers do not alias f.
func (f Frame) Clone() Frame {
	out := f
	if f.Score != nil {
		v := *f.Score
		out.Score = &v
	}
	if f.Countdown != nil {
		v := *f.Countdown
		out.Countdown = &v
	}
	out.Lines = append([]string(nil), f.Lines...)
	out.Bars = append([]Bar(nil), f.Bars...)
	if f.Items != nil {
		out.Items = make([]Item, len(f.Items))
		for i, item := range f.Items {
			item.Details = append([]string(nil), item.Details...)
			out.Items[i] = item
		}
	}
	return out
}
