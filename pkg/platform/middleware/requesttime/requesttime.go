// Package requesttime pins one "now" per request so every timestamp a
// request produces agrees.
package requesttime

import (
	"net/http"

	"chimera/pkg/platform/clock"
	"chimera/pkg/requestcontext"
)

// Middleware stores c.Now() in the request context at the start of the request.
func Middleware(c clock.Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), c.Now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
