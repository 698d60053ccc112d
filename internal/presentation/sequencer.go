package presentation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"chimera/internal/presentation/metrics"
	"chimera/internal/presentation/models"
	"chimera/internal/presentation/scenes"
	"chimera/pkg/platform/clock"
	"chimera/pkg/platform/sentinel"
)

const maxHistory = 256

// Options configures a Sequencer. Zero values get working defaults.
type Options struct {
	Clock   clock.Clock
	Catalog *scenes.Catalog
	Delays  Delays
	Subject scenes.Subject
	Rand    *rand.Rand
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Label identifies the sequencer in logs.
	Label string
}

// Sequencer owns one presentation: its state, the mounted scene and the
// phase delay. All mutation happens on its loop.
type Sequencer struct {
	loop    *clock.Loop
	catalog *scenes.Catalog
	delays  Delays
	subject scenes.Subject
	rand    *rand.Rand
	logger  *slog.Logger
	metrics *metrics.Metrics
	label   string

	state   models.State
	entered time.Time
	frame   *models.Frame
	history []models.Transition
	seq     uint64

	phase  *clock.Group
	scene  *mount
	subs   map[uint64]chan models.Event
	nextID uint64
	closed bool

	workers sync.WaitGroup
}

type mount struct {
	kind   models.Scene
	timers *clock.Group
	ctx    context.Context
	cancel context.CancelFunc
	done   bool
}

// New returns a sequencer in Idle with the idle scene mounted.
func New(opts Options) *Sequencer {
	c := opts.Clock
	if c == nil {
		c = clock.Real{}
	}
	if opts.Catalog == nil {
		opts.Catalog = scenes.NewCatalog(nil)
	}
	if opts.Delays == (Delays{}) {
		opts.Delays = DefaultDelays
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>17))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Subject == (scenes.Subject{}) {
		opts.Subject = scenes.Subject{Name: DefaultSubjectName, Verified: true, Score: scenes.FinalRiskScore}
	}
	if opts.Subject.Name == "" {
		opts.Subject.Name = DefaultSubjectName
	}

	loop := clock.NewLoop(c)
	s := &Sequencer{
		loop:    loop,
		catalog: opts.Catalog,
		delays:  opts.Delays,
		subject: opts.Subject,
		rand:    opts.Rand,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		label:   opts.Label,
		state:   models.Initial,
		phase:   clock.NewGroup(loop),
		subs:    make(map[uint64]chan models.Event),
	}
	loop.Do(func() {
		s.entered = loop.Now()
		s.metrics.IncrementPhaseEntered(s.state.Phase.String())
		s.mount(s.state)
	})
	return s
}

// DefaultSubjectName is the name screened when none is configured.
const DefaultSubjectName = "Ahmad Razak"

// Start moves Idle to Running at step 0.
func (s *Sequencer) Start() error {
	var err error
	s.loop.Do(func() {
		err = s.fire(models.TriggerStart)
	})
	return err
}

// Reset moves Complete back to Idle.
func (s *Sequencer) Reset() error {
	var err error
	s.loop.Do(func() {
		err = s.fire(models.TriggerReset)
	})
	return err
}

// Snapshot returns the current state, step indicators and latest frame.
func (s *Sequencer) Snapshot() models.Snapshot {
	var snap models.Snapshot
	s.loop.Do(func() {
		snap = s.snapshot()
	})
	return snap
}

func (s *Sequencer) snapshot() models.Snapshot {
	snap := models.Snapshot{
		Seq:     s.seq,
		State:   s.state,
		Steps:   models.StepViews(s.state),
		Entered: s.entered,
		Subject: s.subject.Name,
	}
	if s.frame != nil {
		f := s.frame.Clone()
		snap.Frame = &f
	}
	return snap
}

// History returns the transitions taken so far, oldest first.
func (s *Sequencer) History() []models.Transition {
	var out []models.Transition
	s.loop.Do(func() {
		out = append([]models.Transition(nil), s.history...)
	})
	return out
}

// Subscribe delivers every subsequent event on the returned channel. The
// channel is closed by cancel or Close. A full buffer drops frames; a
// transition displaces the oldest buffered event instead.
func (s *Sequencer) Subscribe(buffer int) (<-chan models.Event, func()) {
	_, ch, cancel := s.Watch(buffer)
	return ch, cancel
}

// Watch is Subscribe plus the snapshot taken at the moment of registration.
// Every event on the channel has a Seq greater than the snapshot's, so the
// snapshot followed by the events is a gap-free view of the presentation.
func (s *Sequencer) Watch(buffer int) (models.Snapshot, <-chan models.Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan models.Event, buffer)
	var (
		key  uint64
		snap models.Snapshot
	)
	s.loop.Do(func() {
		snap = s.snapshot()
		if s.closed {
			close(ch)
			return
		}
		key = s.nextID
		s.nextID++
		s.subs[key] = ch
	})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.loop.Do(func() {
				if sub, ok := s.subs[key]; ok && sub == ch {
					delete(s.subs, key)
					close(ch)
				}
			})
		})
	}
	return snap, ch, cancel
}

// Close unmounts the scene, cancels every timer and closes subscriber
// channels. It waits for in-flight background work. It is idempotent.
func (s *Sequencer) Close() {
	s.loop.Do(func() {
		if s.closed {
			return
		}
		s.closed = true
		s.unmount()
		s.phase.Stop()
		for key, ch := range s.subs {
			delete(s.subs, key)
			close(ch)
		}
	})
	s.workers.Wait()
}

// fire applies trigger through the transition table. Must run on the loop.
func (s *Sequencer) fire(trigger models.Trigger) error {
	if s.closed {
		return sentinel.ErrUnavailable
	}
	next, err := Next(s.state, trigger)
	if err != nil {
		s.metrics.IncrementRejected(string(trigger))
		s.logger.Debug("trigger rejected",
			"presentation", s.label,
			"trigger", string(trigger),
			"state", s.state.String(),
		)
		return err
	}
	s.enter(next, trigger)
	return nil
}

func (s *Sequencer) enter(next models.State, trigger models.Trigger) {
	s.unmount()
	s.phase.Stop()
	s.phase = clock.NewGroup(s.loop)

	now := s.loop.Now()
	s.metrics.ObservePhaseDwell(s.state.Phase.String(), now.Sub(s.entered))
	tr := models.Transition{From: s.state, To: next, Trigger: trigger, At: now}
	s.state = next
	s.entered = now
	s.frame = nil
	s.history = append(s.history, tr)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	s.metrics.IncrementPhaseEntered(next.Phase.String())
	s.logger.Info("presentation transition",
		"presentation", s.label,
		"from", tr.From.String(),
		"to", tr.To.String(),
		"trigger", string(trigger),
	)
	s.publish(models.Event{Kind: models.EventTransition, Transition: &tr})

	s.mount(next)
	if d, ok := s.delays.For(next.Phase); ok {
		s.phase.After(d, func() {
			// The group is replaced on every entry, so this only fires for
			// the phase that scheduled it.
			if err := s.fire(models.TriggerDelayElapsed); err != nil {
				s.logger.Error("phase delay rejected", "presentation", s.label, "error", err)
			}
		})
	}
}

func (s *Sequencer) mount(state models.State) {
	scene := s.catalog.For(state)
	if scene == nil {
		s.logger.Warn("no scene for state", "presentation", s.label, "state", state.String())
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &mount{
		kind:   scene.Kind(),
		timers: clock.NewGroup(s.loop),
		ctx:    ctx,
		cancel: cancel,
	}
	s.scene = m
	scene.Play(scenes.Mount{
		Timers:  m.timers,
		Rand:    s.rand,
		Subject: s.subject,
		Emit:    func(f models.Frame) { s.emit(m, f) },
		Done:    func() { s.done(m) },
		Spawn:   func(work func(context.Context) func()) { s.spawn(m, work) },
	})
}

func (s *Sequencer) unmount() {
	if s.scene == nil {
		return
	}
	s.scene.timers.Stop()
	s.scene.cancel()
	s.scene = nil
}

func (s *Sequencer) emit(m *mount, f models.Frame) {
	if s.scene != m {
		return
	}
	stored := f.Clone()
	s.frame = &stored
	sent := f.Clone()
	s.publish(models.Event{Kind: models.EventFrame, Frame: &sent})
}

func (s *Sequencer) done(m *mount) {
	if s.scene != m || m.done {
		return
	}
	m.done = true
	if err := s.fire(models.TriggerSceneComplete); err != nil {
		s.logger.Warn("scene completion ignored",
			"presentation", s.label,
			"scene", string(m.kind),
			"error", err,
		)
	}
}

func (s *Sequencer) spawn(m *mount, work func(context.Context) func()) {
	if s.closed {
		return
	}
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		apply := work(m.ctx)
		if apply == nil {
			return
		}
		s.loop.Do(func() {
			if s.scene != m {
				return
			}
			apply()
		})
	}()
}

func (s *Sequencer) publish(e models.Event) {
	s.seq++
	e.Seq = s.seq
	e.At = s.loop.Now()
	e.State = s.state
	for _, ch := range s.subs {
		select {
		case ch <- e:
			continue
		default:
		}
		if e.Kind != models.EventTransition {
			s.metrics.IncrementDropped()
			continue
		}
		select {
		case <-ch:
			s.metrics.IncrementDropped()
		default:
		}
		select {
		case ch <- e:
		default:
			s.metrics.IncrementDropped()
		}
	}
}
