package presentation

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"chimera/internal/presentation/models"
	"chimera/internal/presentation/scenes"
	"chimera/pkg/platform/clock"
	"chimera/pkg/platform/sentinel"
)

var epoch = time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)

// Script lengths of the five Running-phase scenes, in step order.
var stepDurations = []time.Duration{
	2500 * time.Millisecond,
	7500 * time.Millisecond,
	6500 * time.Millisecond,
	15 * time.Second,
	11 * time.Second,
}

type stubNarrator struct {
	calls atomic.Int32
	text  string
}

func (n *stubNarrator) Generate(_ context.Context, _ string, _ bool, _ int) string {
	n.calls.Add(1)
	return n.text
}

func newTestSequencer(t *testing.T, catalog *scenes.Catalog) (*Sequencer, *clock.Virtual) {
	t.Helper()
	v := clock.NewVirtual(epoch)
	s := New(Options{
		Clock:   v,
		Catalog: catalog,
		Rand:    rand.New(rand.NewPCG(7, 11)),
		Label:   t.Name(),
	})
	t.Cleanup(s.Close)
	return s, v
}

func runSteps(v *clock.Virtual) {
	for _, d := range stepDurations {
		v.Advance(d)
	}
}

func TestSequencer_StartsIdle(t *testing.T) {
	s, _ := newTestSequencer(t, nil)

	snap := s.Snapshot()
	assert.Equal(t, models.Initial, snap.State)
	assert.Equal(t, DefaultSubjectName, snap.Subject)
	require.NotNil(t, snap.Frame)
	assert.Equal(t, models.SceneIdle, snap.Frame.Scene)
	for _, step := range snap.Steps {
		assert.Equal(t, models.StepPending, step.Status)
	}
	assert.Empty(t, s.History())
}

func TestSequencer_FullRun(t *testing.T) {
	narrator := &stubNarrator{text: "Subject cleared."}
	s, v := newTestSequencer(t, scenes.NewCatalog(narrator))

	require.NoError(t, s.Start())
	assert.Equal(t, models.State{Phase: models.PhaseRunning, Step: 0}, s.Snapshot().State)

	for i, d := range stepDurations {
		v.Advance(d - time.Millisecond)
		assert.Equal(t, models.State{Phase: models.PhaseRunning, Step: i}, s.Snapshot().State, "step %d left early", i)
		v.Advance(time.Millisecond)
	}
	assert.Equal(t, models.PhaseFinalizing, s.Snapshot().State.Phase)

	phases := []struct {
		delay time.Duration
		next  models.Phase
	}{
		{DefaultDelays.Finalizing, models.PhaseApproval},
		{DefaultDelays.Approval, models.PhaseGenerating},
		{DefaultDelays.Generating, models.PhaseOnboarding},
		{DefaultDelays.Onboarding, models.PhaseComplete},
	}
	for _, p := range phases {
		before := s.Snapshot().State.Phase
		v.Advance(p.delay - time.Millisecond)
		assert.Equal(t, before, s.Snapshot().State.Phase)
		v.Advance(time.Millisecond)
		assert.Equal(t, p.next, s.Snapshot().State.Phase)
	}

	history := s.History()
	require.Len(t, history, 10)
	finalizing := history[5]
	assert.Equal(t, models.PhaseFinalizing, finalizing.To.Phase)
	assert.Equal(t, 18*time.Second, history[9].At.Sub(finalizing.At))
	for i := 1; i < len(history); i++ {
		assert.Equal(t, history[i-1].To, history[i].From, "history must chain")
	}

	snap := s.Snapshot()
	for _, step := range snap.Steps {
		assert.Equal(t, models.StepComplete, step.Status)
	}
	assert.Zero(t, v.Pending(), "complete must leave no timers behind")
	assert.Eventually(t, func() bool { return narrator.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSequencer_CompleteStaysUntilReset(t *testing.T) {
	s, v := newTestSequencer(t, nil)
	require.NoError(t, s.Start())
	runSteps(v)
	v.Advance(DefaultDelays.Total())
	require.Equal(t, models.PhaseComplete, s.Snapshot().State.Phase)

	v.Advance(time.Hour)
	assert.Equal(t, models.PhaseComplete, s.Snapshot().State.Phase)

	require.NoError(t, s.Reset())
	assert.Equal(t, models.Initial, s.Snapshot().State)

	require.NoError(t, s.Start())
	assert.Equal(t, models.State{Phase: models.PhaseRunning}, s.Snapshot().State)
	history := s.History()
	assert.Equal(t, models.TriggerReset, history[len(history)-2].Trigger)
}

func TestSequencer_RejectsInvalidTriggers(t *testing.T) {
	s, v := newTestSequencer(t, nil)

	err := s.Reset()
	require.ErrorIs(t, err, sentinel.ErrInvalidState)
	assert.Equal(t, models.Initial, s.Snapshot().State)

	require.NoError(t, s.Start())
	err = s.Start()
	require.ErrorIs(t, err, sentinel.ErrInvalidState)

	v.Advance(stepDurations[0])
	err = s.Reset()
	require.ErrorIs(t, err, sentinel.ErrInvalidState)
	assert.Equal(t, models.State{Phase: models.PhaseRunning, Step: 1}, s.Snapshot().State)
	assert.Len(t, s.History(), 2)
}

type captureScene struct {
	kind   models.Scene
	mounts *[]scenes.Mount
}

func (c captureScene) Kind() models.Scene { return c.kind }

func (c captureScene) Play(m scenes.Mount) { *c.mounts = append(*c.mounts, m) }

func captureCatalog(mounts *[]scenes.Mount) *scenes.Catalog {
	steps := make([]scenes.Scene, models.StepCount)
	for i := range steps {
		steps[i] = captureScene{kind: models.Scene(models.Steps[i].ID), mounts: mounts}
	}
	return scenes.NewCatalogFrom(steps, nil)
}

func TestSequencer_DoneHonouredOnceWhileMounted(t *testing.T) {
	var mounts []scenes.Mount
	s, _ := newTestSequencer(t, captureCatalog(&mounts))

	require.NoError(t, s.Start())
	require.Len(t, mounts, 1)
	first := mounts[0]

	s.loop.Do(first.Done)
	assert.Equal(t, models.State{Phase: models.PhaseRunning, Step: 1}, s.Snapshot().State)

	s.loop.Do(first.Done)
	assert.Equal(t, models.State{Phase: models.PhaseRunning, Step: 1}, s.Snapshot().State, "repeated done")

	require.Len(t, mounts, 2)
	second := mounts[1]
	second.Timers.After(time.Second, func() {})

	s.loop.Do(second.Done)
	assert.True(t, second.Timers.Stopped(), "unmount stops the scene's timers")
	s.loop.Do(first.Done)
	assert.Equal(t, models.State{Phase: models.PhaseRunning, Step: 2}, s.Snapshot().State, "stale done")
}

func TestSequencer_DoneFromLastStepFinalizes(t *testing.T) {
	var mounts []scenes.Mount
	s, v := newTestSequencer(t, captureCatalog(&mounts))

	require.NoError(t, s.Start())
	for i := 0; i < models.StepCount; i++ {
		s.loop.Do(mounts[i].Done)
	}
	assert.Equal(t, models.PhaseFinalizing, s.Snapshot().State.Phase)

	v.Advance(DefaultDelays.Total())
	assert.Equal(t, models.PhaseComplete, s.Snapshot().State.Phase)
}

func TestSequencer_CustomDelays(t *testing.T) {
	v := clock.NewVirtual(epoch)
	var mounts []scenes.Mount
	s := New(Options{
		Clock:   v,
		Catalog: captureCatalog(&mounts),
		Delays:  Delays{Finalizing: time.Second, Approval: time.Second, Generating: time.Second, Onboarding: time.Second},
	})
	defer s.Close()

	require.NoError(t, s.Start())
	for i := 0; i < models.StepCount; i++ {
		s.loop.Do(mounts[i].Done)
	}
	v.Advance(4 * time.Second)
	assert.Equal(t, models.PhaseComplete, s.Snapshot().State.Phase)
}

func TestSequencer_Subscribe(t *testing.T) {
	s, v := newTestSequencer(t, nil)
	events, cancel := s.Subscribe(1024)
	defer cancel()

	require.NoError(t, s.Start())
	v.Advance(stepDurations[0])

	var transitions []models.Transition
	var last uint64
	for len(events) > 0 {
		ev := <-events
		assert.Greater(t, ev.Seq, last)
		last = ev.Seq
		switch ev.Kind {
		case models.EventTransition:
			require.NotNil(t, ev.Transition)
			assert.Equal(t, ev.Transition.To, ev.State)
			transitions = append(transitions, *ev.Transition)
		case models.EventFrame:
			require.NotNil(t, ev.Frame)
		}
	}
	require.Len(t, transitions, 2)
	assert.Equal(t, models.TriggerStart, transitions[0].Trigger)
	assert.Equal(t, models.TriggerSceneComplete, transitions[1].Trigger)
}

func TestSequencer_WatchHasNoGapAfterSnapshot(t *testing.T) {
	s, v := newTestSequencer(t, nil)
	require.NoError(t, s.Start())
	v.Advance(stepDurations[0] / 2)

	snap, events, cancel := s.Watch(1024)
	defer cancel()
	assert.NotZero(t, snap.Seq)
	assert.Equal(t, models.State{Phase: models.PhaseRunning}, snap.State)

	v.Advance(stepDurations[0])
	require.NotZero(t, len(events))
	first := <-events
	assert.Equal(t, snap.Seq+1, first.Seq, "the next event follows the snapshot directly")

	s.Close()
	closed, late, _ := s.Watch(1)
	_, open := <-late
	assert.False(t, open)
	assert.GreaterOrEqual(t, closed.Seq, first.Seq)
}

func TestSequencer_SlowSubscriberKeepsLatestTransition(t *testing.T) {
	s, v := newTestSequencer(t, nil)
	events, cancel := s.Subscribe(1)
	defer cancel()

	require.NoError(t, s.Start())
	runSteps(v)

	require.Len(t, events, 1)
	ev := <-events
	assert.Equal(t, models.EventTransition, ev.Kind)
	assert.Equal(t, models.PhaseFinalizing, ev.State.Phase)
}

func TestSequencer_ReportShowsNarrative(t *testing.T) {
	narrator := &stubNarrator{text: "Ahmad Razak presents no adverse findings."}
	s, v := newTestSequencer(t, scenes.NewCatalog(narrator))
	events, cancel := s.Subscribe(1024)
	defer cancel()

	require.NoError(t, s.Start())
	runSteps(v)
	v.Advance(DefaultDelays.Finalizing + DefaultDelays.Approval)
	require.Equal(t, models.PhaseGenerating, s.Snapshot().State.Phase)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Kind == models.EventFrame && ev.Frame.Narrative != "" {
				assert.Equal(t, narrator.text, ev.Frame.Narrative)
				assert.Equal(t, models.SceneReport, ev.Frame.Scene)
				return
			}
		case <-deadline:
			t.Fatal("narrative frame never arrived")
		}
	}
}

func TestSequencer_Close(t *testing.T) {
	s, v := newTestSequencer(t, nil)
	events, _ := s.Subscribe(8)

	require.NoError(t, s.Start())
	v.Advance(time.Second)
	require.NotZero(t, v.Pending())

	s.Close()
	assert.Zero(t, v.Pending())

	for range events {
	}
	_, open := <-events
	assert.False(t, open)

	require.ErrorIs(t, s.Start(), sentinel.ErrUnavailable)
	v.Advance(time.Minute)
	assert.Equal(t, models.State{Phase: models.PhaseRunning}, s.Snapshot().State)

	s.Close()
	late, _ := s.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}

func TestSequencer_RealClockDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(Options{
		Clock:   clock.Scale(clock.Real{}, 1000),
		Catalog: scenes.NewCatalog(&stubNarrator{text: "ok"}),
	})
	events, cancel := s.Subscribe(512)
	defer cancel()

	require.NoError(t, s.Start())
	deadline := time.After(5 * time.Second)
wait:
	for {
		select {
		case ev := <-events:
			if ev.Kind == models.EventTransition && ev.State.Phase == models.PhaseComplete {
				break wait
			}
		case <-deadline:
			t.Fatal("presentation did not complete")
		}
	}
	s.Close()
}
