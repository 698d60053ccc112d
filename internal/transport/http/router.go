package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chimera/internal/platform/metrics"
	"chimera/internal/platform/middleware"
	id "chimera/pkg/domain"
	dErrors "chimera/pkg/domain-errors"
	"chimera/pkg/platform/clock"
	"chimera/pkg/platform/httputil"
	"chimera/pkg/platform/middleware/requesttime"
	"chimera/pkg/platform/middleware/version"
)

// Registrar mounts a feature's routes on a versioned subrouter.
type Registrar interface {
	Register(r chi.Router)
}

// Deps is what the router needs from main.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Clock   clock.Clock
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	V1             []Registrar
}

// NewRouter wires the public endpoints. Transport concerns stay here; handlers
// delegate to services.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.LatencyMiddleware(d.Metrics))
	r.Use(requesttime.Middleware(d.Clock))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"method_not_allowed","error_description":"method not allowed"}` + "\n"))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.Route("/"+id.APIVersionV1.String(), func(v1 chi.Router) {
		v1.Use(version.ExtractVersion(id.APIVersionV1))
		v1.Use(middleware.ContentTypeJSON)
		for _, reg := range d.V1 {
			reg.Register(v1)
		}
	})
	return r
}
