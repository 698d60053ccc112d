// Package scenes holds the presentational views of the sequencer. A scene is
// told when it is mounted, emits cosmetic frames, and (for Running-phase
// steps) calls Done once when its script ends. Scenes never see or change
// sequencer state.
package scenes

import (
	"context"
	"math/rand/v2"

	"chimera/internal/presentation/models"
	"chimera/pkg/platform/clock"
)

// FinalRiskScore is where the AML scene settles and what the report quotes.
const FinalRiskScore = 12

// Subject is the person the presentation pretends to screen.
type Subject struct {
	Name     string
	Verified bool
	Score    int
}

// Narrator produces the report narrative. It never fails; fallbacks are text.
type Narrator interface {
	Generate(ctx context.Context, name string, verified bool, score int) string
}

// Mount is everything a scene may touch while it is on screen. Timers are
// stopped and Spawn contexts cancelled when the scene is unmounted.
type Mount struct {
	Timers  *clock.Group
	Rand    *rand.Rand
	Subject Subject

	// Emit publishes a frame. The scene may keep mutating its own copy.
	Emit func(models.Frame)
	// Done tells the sequencer the scene has finished. Extra calls are ignored.
	Done func()
	// Spawn runs work off the loop. The returned func, if any, is applied on
	// the loop only while the scene is still mounted.
	Spawn func(work func(ctx context.Context) func())
}

// Scene is a presentational view.
type Scene interface {
	Kind() models.Scene
	Play(m Mount)
}

// Catalog maps sequencer states to scenes.
type Catalog struct {
	steps  []Scene
	phases map[models.Phase]Scene
}

// NewCatalog builds the catalog used by the presentation. narrator may be nil,
// in which case the report scene shows no narrative.
func NewCatalog(narrator Narrator) *Catalog {
	return &Catalog{
		steps: []Scene{
			EKYC{},
			WorldCheck{},
			AML{},
			Interim{},
			EDD{},
		},
		phases: map[models.Phase]Scene{
			models.PhaseIdle:       Idle{},
			models.PhaseFinalizing: Finalizing{},
			models.PhaseApproval:   Approval{},
			models.PhaseGenerating: Report{Narrator: narrator},
			models.PhaseOnboarding: Onboarding{},
			models.PhaseComplete:   Complete{},
		},
	}
}

// NewCatalogFrom builds a catalog from explicit scenes, one per step in step
// order plus one per non-running phase.
func NewCatalogFrom(steps []Scene, phases map[models.Phase]Scene) *Catalog {
	return &Catalog{steps: steps, phases: phases}
}

// For returns the scene shown in state s.
func (c *Catalog) For(s models.State) Scene {
	if s.Phase == models.PhaseRunning {
		if s.Step >= 0 && s.Step < len(c.steps) {
			return c.steps[s.Step]
		}
		return nil
	}
	return c.phases[s.Phase]
}

func intPtr(v int) *int {
	return &v
}
