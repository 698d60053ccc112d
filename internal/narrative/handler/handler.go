package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chimera/pkg/platform/httputil"
	"chimera/pkg/requestcontext"
)

// Service produces report narratives.
type Service interface {
	Generate(ctx context.Context, name string, verified bool, score int) string
}

// Handler exposes narrative generation for ad-hoc previews.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a narrative handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts narrative endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/narrative", h.HandleGenerate)
}

// HandleGenerate handles POST /narrative requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	text := h.service.Generate(ctx, req.Name, req.IsVerified(), req.RiskScore())

	h.logger.InfoContext(ctx, "narrative generated",
		"request_id", requestID,
		"api_version", requestcontext.APIVersion(ctx).String(),
		"score", req.RiskScore(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, GenerateResponse{Narrative: text})
}
