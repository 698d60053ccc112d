package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chimera/internal/platform/metrics"
	"chimera/internal/presentation/models"
	id "chimera/pkg/domain"
	"chimera/pkg/platform/httputil"
	"chimera/pkg/requestcontext"
)

// Service defines the interface for presentation operations.
type Service interface {
	Create(ctx context.Context, subject string) (*models.Presentation, error)
	List(ctx context.Context) ([]*models.Presentation, error)
	Get(ctx context.Context, pid id.PresentationID) (*models.Presentation, error)
	Start(ctx context.Context, pid id.PresentationID) (*models.Presentation, error)
	Reset(ctx context.Context, pid id.PresentationID) (*models.Presentation, error)
	Delete(ctx context.Context, pid id.PresentationID) error
	History(ctx context.Context, pid id.PresentationID) ([]models.Transition, error)
	Subscribe(ctx context.Context, pid id.PresentationID, buffer int) (*models.Presentation, <-chan models.Event, func(), error)
}

// Handler wires presentation endpoints to the presentation service.
type Handler struct {
	service   Service
	logger    *slog.Logger
	metrics   *metrics.Metrics
	heartbeat time.Duration
}

// New constructs a presentation handler with its dependencies.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service:   service,
		logger:    logger,
		metrics:   m,
		heartbeat: 15 * time.Second,
	}
}

// Register mounts presentation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/presentations", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Delete("/", h.HandleDelete)
			r.Post("/start", h.HandleStart)
			r.Post("/reset", h.HandleReset)
			r.Get("/history", h.HandleHistory)
			r.Get("/events", h.HandleEvents)
		})
	})
}

// HandleCreate handles POST /presentations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req := &CreateRequest{}
	if r.ContentLength != 0 {
		var ok bool
		req, ok = httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	p, err := h.service.Create(ctx, req.Subject)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create presentation",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/presentations/"+p.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, FromPresentation(p))
}

// HandleList handles GET /presentations.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list presentations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	resp := ListResponse{Presentations: make([]PresentationResponse, len(list))}
	for i, p := range list {
		resp.Presentations[i] = FromPresentation(p)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /presentations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.withPresentation(w, r, "get", h.service.Get)
}

// HandleStart handles POST /presentations/{id}/start.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	h.withPresentation(w, r, "start", h.service.Start)
}

// HandleReset handles POST /presentations/{id}/reset.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.withPresentation(w, r, "reset", h.service.Reset)
}

// HandleDelete handles DELETE /presentations/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, pid, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(ctx, pid); err != nil {
		h.logFailure(ctx, "delete", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleHistory handles GET /presentations/{id}/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, pid, ok := h.parseID(w, r)
	if !ok {
		return
	}
	transitions, err := h.service.History(ctx, pid)
	if err != nil {
		h.logFailure(ctx, "history", err)
		httputil.WriteError(w, err)
		return
	}
	if transitions == nil {
		transitions = []models.Transition{}
	}
	httputil.WriteJSON(w, http.StatusOK, HistoryResponse{ID: pid.String(), Transitions: transitions})
}

func (h *Handler) withPresentation(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	call func(context.Context, id.PresentationID) (*models.Presentation, error),
) {
	ctx, pid, ok := h.parseID(w, r)
	if !ok {
		return
	}
	p, err := call(ctx, pid)
	if err != nil {
		h.logFailure(ctx, op, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPresentation(p))
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (context.Context, id.PresentationID, bool) {
	ctx := r.Context()
	pid, err := id.ParsePresentationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return ctx, pid, false
	}
	return requestcontext.WithPresentationID(ctx, pid), pid, true
}

func (h *Handler) logFailure(ctx context.Context, op string, err error) {
	h.logger.WarnContext(ctx, "presentation request failed",
		"request_id", requestcontext.RequestID(ctx),
		"presentation_id", requestcontext.PresentationID(ctx).String(),
		"api_version", requestcontext.APIVersion(ctx).String(),
		"operation", op,
		"error", err,
	)
}
