package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"chimera/internal/presentation"
	"chimera/internal/presentation/metrics"
	"chimera/internal/presentation/models"
	"chimera/internal/presentation/scenes"
	"chimera/internal/presentation/store"
	id "chimera/pkg/domain"
	dErrors "chimera/pkg/domain-errors"
	"chimera/pkg/platform/clock"
	"chimera/pkg/platform/sentinel"
	"chimera/pkg/requestcontext"
)

const (
	defaultMaxPresentations = 16
	maxSubjectLength        = 128
)

type Store interface {
	Save(ctx context.Context, session *store.Session, limit int) error
	FindByID(ctx context.Context, pid id.PresentationID) (*store.Session, error)
	Delete(ctx context.Context, pid id.PresentationID) (*store.Session, error)
	List(ctx context.Context) ([]*store.Session, error)
}

// Service manages independent presentation sessions.
type Service struct {
	store   Store
	catalog *scenes.Catalog
	clock   clock.Clock
	delays  presentation.Delays
	subject string
	limit   int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock drives every sequencer from c. Tests pass a virtual clock.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func WithDelays(d presentation.Delays) Option {
	return func(s *Service) {
		s.delays = d
	}
}

// WithDefaultSubject sets the name screened when Create gets none.
func WithDefaultSubject(name string) Option {
	return func(s *Service) {
		s.subject = name
	}
}

// WithMaxPresentations bounds concurrently registered sessions.
func WithMaxPresentations(n int) Option {
	return func(s *Service) {
		s.limit = n
	}
}

// New constructs a Service.
func New(st Store, catalog *scenes.Catalog, opts ...Option) *Service {
	s := &Service{
		store:   st,
		catalog: catalog,
		clock:   clock.Real{},
		delays:  presentation.DefaultDelays,
		subject: presentation.DefaultSubjectName,
		limit:   defaultMaxPresentations,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new presentation in Idle.
func (s *Service) Create(ctx context.Context, subject string) (*models.Presentation, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = s.subject
	}
	if utf8.RuneCountInString(subject) > maxSubjectLength {
		return nil, dErrors.New(dErrors.CodeValidation, "subject must be at most 128 characters")
	}

	pid := id.NewPresentationID()
	session := &store.Session{
		ID:        pid,
		CreatedAt: s.clock.Now(),
		Sequencer: presentation.New(presentation.Options{
			Clock:   s.clock,
			Catalog: s.catalog,
			Delays:  s.delays,
			Subject: scenes.Subject{Name: subject, Verified: true, Score: scenes.FinalRiskScore},
			Logger:  s.logger,
			Metrics: s.metrics,
			Label:   pid.String(),
		}),
	}
	if err := s.store.Save(ctx, session, s.limit); err != nil {
		session.Sequencer.Close()
		if errors.Is(err, store.ErrLimitReached) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "presentation limit reached")
		}
		return nil, translate(err, "failed to register presentation")
	}
	s.metrics.IncrementActive()

	s.logger.InfoContext(ctx, "presentation created",
		"request_id", requestcontext.RequestID(ctx),
		"presentation_id", pid.String(),
	)
	return view(session), nil
}

// Get returns the current view of a presentation.
func (s *Service) Get(ctx context.Context, pid id.PresentationID) (*models.Presentation, error) {
	session, err := s.find(ctx, pid)
	if err != nil {
		return nil, err
	}
	return view(session), nil
}

// List returns every registered presentation, oldest first.
func (s *Service) List(ctx context.Context) ([]*models.Presentation, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list presentations")
	}
	out := make([]*models.Presentation, len(sessions))
	for i, session := range sessions {
		out[i] = view(session)
	}
	return out, nil
}

// Start begins the Running phase. Only an Idle presentation can start.
func (s *Service) Start(ctx context.Context, pid id.PresentationID) (*models.Presentation, error) {
	session, err := s.find(ctx, pid)
	if err != nil {
		return nil, err
	}
	if err := session.Sequencer.Start(); err != nil {
		return nil, translate(err, "presentation can only be started from IDLE")
	}
	s.logger.InfoContext(ctx, "presentation started",
		"request_id", requestcontext.RequestID(ctx),
		"presentation_id", pid.String(),
	)
	return view(session), nil
}

// Reset returns a Complete presentation to Idle.
func (s *Service) Reset(ctx context.Context, pid id.PresentationID) (*models.Presentation, error) {
	session, err := s.find(ctx, pid)
	if err != nil {
		return nil, err
	}
	if err := session.Sequencer.Reset(); err != nil {
		return nil, translate(err, "presentation can only be reset from COMPLETE")
	}
	s.logger.InfoContext(ctx, "presentation reset",
		"request_id", requestcontext.RequestID(ctx),
		"presentation_id", pid.String(),
	)
	return view(session), nil
}

// History returns the transitions a presentation has taken.
func (s *Service) History(ctx context.Context, pid id.PresentationID) ([]models.Transition, error) {
	session, err := s.find(ctx, pid)
	if err != nil {
		return nil, err
	}
	return session.Sequencer.History(), nil
}

// Subscribe returns the presentation as of registration and streams every
// later event until cancel is called, the presentation is deleted, or the
// service closes.
func (s *Service) Subscribe(ctx context.Context, pid id.PresentationID, buffer int) (*models.Presentation, <-chan models.Event, func(), error) {
	session, err := s.find(ctx, pid)
	if err != nil {
		return nil, nil, nil, err
	}
	snap, events, cancel := session.Sequencer.Watch(buffer)
	return &models.Presentation{ID: session.ID, CreatedAt: session.CreatedAt, Snapshot: snap}, events, cancel, nil
}

// Delete stops and unregisters a presentation.
func (s *Service) Delete(ctx context.Context, pid id.PresentationID) error {
	session, err := s.store.Delete(ctx, pid)
	if err != nil {
		return translate(err, "presentation not found")
	}
	session.Sequencer.Close()
	s.metrics.DecrementActive()
	s.logger.InfoContext(ctx, "presentation deleted",
		"request_id", requestcontext.RequestID(ctx),
		"presentation_id", pid.String(),
	)
	return nil
}

// Close stops every presentation. Used at shutdown.
func (s *Service) Close(ctx context.Context) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list presentations at shutdown", "error", err)
		return
	}
	for _, session := range sessions {
		if _, err := s.store.Delete(ctx, session.ID); err != nil {
			continue
		}
		session.Sequencer.Close()
		s.metrics.DecrementActive()
	}
}

func (s *Service) find(ctx context.Context, pid id.PresentationID) (*store.Session, error) {
	session, err := s.store.FindByID(ctx, pid)
	if err != nil {
		return nil, translate(err, "presentation not found")
	}
	return session, nil
}

// translate maps infrastructure sentinels onto client-facing codes.
func translate(err error, message string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "presentation not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "presentation already registered")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Wrap(err, dErrors.CodeInvalidState, message)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "presentation is shutting down")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "presentation operation failed")
	}
}

func view(session *store.Session) *models.Presentation {
	return &models.Presentation{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		Snapshot:  session.Sequencer.Snapshot(),
	}
}
