package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chimera/internal/presentation/models"
	"chimera/pkg/platform/sentinel"
)

type fakePlayer struct {
	state  models.State
	starts int
	resets int
}

func (p *fakePlayer) Start() error {
	p.starts++
	if p.state.Phase != models.PhaseIdle {
		return fmt.Errorf("start from %s: %w", p.state, sentinel.ErrInvalidState)
	}
	p.state = models.State{Phase: models.PhaseRunning}
	return nil
}

func (p *fakePlayer) Reset() error {
	p.resets++
	if p.state.Phase != models.PhaseComplete {
		return fmt.Errorf("reset from %s: %w", p.state, sentinel.ErrInvalidState)
	}
	p.state = models.Initial
	return nil
}

func (p *fakePlayer) Snapshot() models.Snapshot {
	return models.Snapshot{State: p.state, Steps: models.StepViews(p.state), Subject: "Ahmad Razak"}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_IdleView(t *testing.T) {
	m := New(&fakePlayer{state: models.Initial}, make(chan models.Event))
	view := m.View()
	assert.Contains(t, view, "READY TO SCREEN")
	assert.Contains(t, view, "subject: Ahmad Razak")
	assert.Contains(t, view, "enter/space start")
}

func TestModel_StartKeys(t *testing.T) {
	for _, k := range []string{"enter", " "} {
		t.Run(k, func(t *testing.T) {
			p := &fakePlayer{state: models.Initial}
			m := New(p, make(chan models.Event))

			next, cmd := m.Update(key(k))
			assert.Nil(t, cmd)
			assert.Equal(t, 1, p.starts)
			assert.Empty(t, next.(Model).notice)
		})
	}
}

func TestModel_InvalidKeysShowNotice(t *testing.T) {
	p := &fakePlayer{state: models.State{Phase: models.PhaseRunning, Step: 1}}
	m := New(p, make(chan models.Event))

	next, _ := m.Update(key("enter"))
	assert.Contains(t, next.(Model).View(), "start is only available from IDLE")

	next, _ = next.Update(key("r"))
	assert.Equal(t, 1, p.resets)
	assert.Contains(t, next.(Model).View(), "reset is only available once COMPLETE")
}

func TestModel_Events(t *testing.T) {
	events := make(chan models.Event, 2)
	m := New(&fakePlayer{state: models.Initial}, events)

	running := models.State{Phase: models.PhaseRunning, Step: 2}
	score := 42
	next, cmd := m.Update(eventMsg(models.Event{
		Kind:  models.EventFrame,
		State: running,
		Frame: &models.Frame{
			Scene:    models.SceneAML,
			Progress: 50,
			Headline: "CALCULATING RISK",
			Score:    &score,
			Lines:    []string{"a", "b", "c", "d", "e", "f", "g"},
		},
	}))
	require.NotNil(t, cmd)
	model := next.(Model)
	assert.Equal(t, running, model.State())

	view := model.View()
	assert.Contains(t, view, "CALCULATING RISK")
	assert.Contains(t, view, "RISK SCORE 42/100")
	assert.Contains(t, view, "✓ Identity Verification")
	assert.Contains(t, view, "● AML Risk Scoring")
	assert.NotContains(t, view, "> a")
	assert.Contains(t, view, "> g")

	next, _ = model.Update(eventMsg(models.Event{
		Kind:  models.EventTransition,
		State: models.State{Phase: models.PhaseRunning, Step: 3},
	}))
	assert.NotContains(t, next.(Model).View(), "CALCULATING RISK")

	events <- models.Event{Seq: 9, Kind: models.EventTransition, State: models.State{Phase: models.PhaseFinalizing}}
	msg := waitForEvent(events)()
	assert.Equal(t, uint64(9), msg.(eventMsg).Seq)
}

func TestModel_QuitsWhenEventsClose(t *testing.T) {
	events := make(chan models.Event)
	close(events)
	m := New(&fakePlayer{state: models.Initial}, events)

	msg := waitForEvent(events)()
	require.IsType(t, closedMsg{}, msg)
	next, cmd := m.Update(msg)
	assert.True(t, next.(Model).closed)
	assert.True(t, isQuit(cmd))
}

func TestModel_QuitKey(t *testing.T) {
	m := New(&fakePlayer{state: models.Initial}, make(chan models.Event))
	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
}

func TestModel_CompleteShowsNarrative(t *testing.T) {
	p := &fakePlayer{state: models.State{Phase: models.PhaseComplete}}
	m := New(p, make(chan models.Event))
	next, _ := m.Update(eventMsg(models.Event{
		Kind:  models.EventFrame,
		State: p.state,
		Frame: &models.Frame{Scene: models.SceneComplete, Progress: 100, Headline: "ONBOARDING COMPLETE", Narrative: "Subject cleared."},
	}))
	view := next.(Model).View()
	assert.Contains(t, view, "Subject cleared.")
	assert.Contains(t, view, "r reset")

	next, _ = next.Update(key("r"))
	assert.Equal(t, 1, p.resets)
	assert.Equal(t, models.Initial, p.state)
}
