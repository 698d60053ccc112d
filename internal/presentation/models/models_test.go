package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "chimera/pkg/domain-errors"
)

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase(" approval ")
	require.NoError(t, err)
	assert.Equal(t, PhaseApproval, p)

	_, err = ParsePhase("PAUSED")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestPhaseOrder(t *testing.T) {
	for i, p := range Phases {
		assert.Equal(t, i, p.Order())
	}
	assert.Equal(t, -1, Phase("PAUSED").Order())
	assert.False(t, PhaseRunning.IsPostRunning())
	assert.True(t, PhaseFinalizing.IsPostRunning())
	assert.True(t, PhaseComplete.IsPostRunning())
}

func TestStateValid(t *testing.T) {
	assert.True(t, Initial.Valid())
	assert.True(t, State{Phase: PhaseRunning, Step: StepCount - 1}.Valid())
	assert.False(t, State{Phase: PhaseRunning, Step: StepCount}.Valid())
	assert.False(t, State{Phase: PhaseRunning, Step: -1}.Valid())
	assert.False(t, State{Phase: PhaseApproval, Step: 2}.Valid(), "step only meaningful while running")
	assert.False(t, State{Phase: "PAUSED"}.Valid())
}

func TestStepStatus(t *testing.T) {
	t.Run("idle leaves every step pending", func(t *testing.T) {
		for i := range Steps {
			assert.Equal(t, StepPending, Initial.StepStatus(i))
		}
	})

	t.Run("running splits around the active step", func(t *testing.T) {
		s := State{Phase: PhaseRunning, Step: 2}
		assert.Equal(t, StepComplete, s.StepStatus(0))
		assert.Equal(t, StepComplete, s.StepStatus(1))
		assert.Equal(t, StepActive, s.StepStatus(2))
		assert.Equal(t, StepPending, s.StepStatus(3))
	})

	t.Run("after running every step is complete", func(t *testing.T) {
		for _, p := range []Phase{PhaseFinalizing, PhaseApproval, PhaseGenerating, PhaseOnboarding, PhaseComplete} {
			views := StepViews(State{Phase: p})
			for _, v := range views {
				assert.Equal(t, StepComplete, v.Status, "phase %s step %s", p, v.ID)
			}
		}
	})
}

func TestCurrentStep(t *testing.T) {
	step, ok := State{Phase: PhaseRunning, Step: 4}.CurrentStep()
	require.True(t, ok)
	assert.Equal(t, StepEDD, step.ID)

	_, ok = State{Phase: PhaseComplete}.CurrentStep()
	assert.False(t, ok)
}

func TestFrameClone(t *testing.T) {
	score := 12
	f := Frame{
		Score: &score,
		Lines: []string{"a"},
		Items: []Item{{Label: "x", Details: []string{"d"}}},
	}
	c := f.Clone()
	*c.Score = 80
	c.Lines[0] = "b"
	c.Items[0].Details[0] = "e"

	assert.Equal(t, 12, *f.Score)
	assert.Equal(t, "a", f.Lines[0])
	assert.Equal(t, "d", f.Items[0].Details[0])
}
