package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "chimera/pkg/domain"
	"chimera/pkg/requestcontext"
)

// WithRequestID sets the request ID the RequestID middleware would assign.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithAPIVersion sets the route version the version middleware would extract.
func WithAPIVersion(req *http.Request, v id.APIVersion) *http.Request {
	return req.WithContext(requestcontext.WithAPIVersion(req.Context(), v))
}

// WithURLParams attaches chi route parameters so a handler method can be
// called directly without going through the router.
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
