package presentation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chimera/internal/presentation/models"
	"chimera/pkg/platform/sentinel"
)

func running(step int) models.State {
	return models.State{Phase: models.PhaseRunning, Step: step}
}

func phase(p models.Phase) models.State {
	return models.State{Phase: p}
}

func TestNext_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    models.State
		trigger models.Trigger
		to      models.State
	}{
		{"start enters running at step 0", phase(models.PhaseIdle), models.TriggerStart, running(0)},
		{"scene completion advances step", running(0), models.TriggerSceneComplete, running(1)},
		{"scene completion advances middle step", running(3), models.TriggerSceneComplete, running(4)},
		{"last scene completion finalizes", running(4), models.TriggerSceneComplete, phase(models.PhaseFinalizing)},
		{"finalizing delay", phase(models.PhaseFinalizing), models.TriggerDelayElapsed, phase(models.PhaseApproval)},
		{"approval delay", phase(models.PhaseApproval), models.TriggerDelayElapsed, phase(models.PhaseGenerating)},
		{"generating delay", phase(models.PhaseGenerating), models.TriggerDelayElapsed, phase(models.PhaseOnboarding)},
		{"onboarding delay", phase(models.PhaseOnboarding), models.TriggerDelayElapsed, phase(models.PhaseComplete)},
		{"reset returns to idle", phase(models.PhaseComplete), models.TriggerReset, models.Initial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.trigger)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestNext_RejectsEverythingElse(t *testing.T) {
	allowed := map[models.Phase]map[models.Trigger]bool{
		models.PhaseIdle:       {models.TriggerStart: true},
		models.PhaseRunning:    {models.TriggerSceneComplete: true},
		models.PhaseFinalizing: {models.TriggerDelayElapsed: true},
		models.PhaseApproval:   {models.TriggerDelayElapsed: true},
		models.PhaseGenerating: {models.TriggerDelayElapsed: true},
		models.PhaseOnboarding: {models.TriggerDelayElapsed: true},
		models.PhaseComplete:   {models.TriggerReset: true},
	}
	triggers := []models.Trigger{
		models.TriggerStart,
		models.TriggerSceneComplete,
		models.TriggerDelayElapsed,
		models.TriggerReset,
	}

	for _, p := range models.Phases {
		for _, trig := range triggers {
			if allowed[p][trig] {
				continue
			}
			from := phase(p)
			got, err := Next(from, trig)
			require.Error(t, err, "%s on %s", trig, p)
			assert.ErrorIs(t, err, sentinel.ErrInvalidState)
			assert.Equal(t, from, got, "rejected transition must not move")
		}
	}
}

func TestNext_NeverSkipsOrReorders(t *testing.T) {
	s := models.Initial
	s, err := Next(s, models.TriggerStart)
	require.NoError(t, err)

	visited := []models.State{s}
	for s.Phase != models.PhaseComplete {
		trig := models.TriggerDelayElapsed
		if s.Phase == models.PhaseRunning {
			trig = models.TriggerSceneComplete
		}
		next, err := Next(s, trig)
		require.NoError(t, err)
		assert.LessOrEqual(t, next.Phase.Order()-s.Phase.Order(), 1, "phase skipped from %s to %s", s, next)
		assert.GreaterOrEqual(t, next.Phase.Order(), s.Phase.Order(), "phase went backwards")
		if next.Phase == models.PhaseRunning {
			assert.Equal(t, s.Step+1, next.Step)
		}
		s = next
		visited = append(visited, s)
	}

	want := []models.State{
		{Phase: models.PhaseRunning, Step: 0},
		{Phase: models.PhaseRunning, Step: 1},
		{Phase: models.PhaseRunning, Step: 2},
		{Phase: models.PhaseRunning, Step: 3},
		{Phase: models.PhaseRunning, Step: 4},
		{Phase: models.PhaseFinalizing},
		{Phase: models.PhaseApproval},
		{Phase: models.PhaseGenerating},
		{Phase: models.PhaseOnboarding},
		{Phase: models.PhaseComplete},
	}
	assert.Equal(t, want, visited)
}

func TestDelays(t *testing.T) {
	d, ok := DefaultDelays.For(models.PhaseApproval)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, d)

	_, ok = DefaultDelays.For(models.PhaseRunning)
	assert.False(t, ok)
	_, ok = DefaultDelays.For(models.PhaseComplete)
	assert.False(t, ok)

	assert.Equal(t, 18*time.Second, DefaultDelays.Total())
}
