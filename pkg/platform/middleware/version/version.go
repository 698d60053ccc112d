// Package version provides middleware that pins a request to the API version
// of the route group it matched.
package version

import (
	"fmt"
	"net/http"

	id "chimera/pkg/domain"
	dErrors "chimera/pkg/domain-errors"
	"chimera/pkg/platform/httputil"
	"chimera/pkg/requestcontext"
)

// Header carries the API version. Clients may send it to state the version
// they were written against; responses echo the version that served them.
const Header = "X-API-Version"

// ExtractVersion records the version of the chi subrouter a request matched.
// A request whose Header names an unknown version, or one newer than the
// route serves, is rejected with 400 before reaching the handler.
//
//	r.Route("/v1", func(v1 chi.Router) {
//	    v1.Use(version.ExtractVersion(id.APIVersionV1))
//	})
func ExtractVersion(version id.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(Header, version.String())
			if raw := r.Header.Get(Header); raw != "" {
				requested, err := id.ParseAPIVersion(raw)
				if err == nil && !version.IsAtLeast(requested) {
					err = dErrors.New(dErrors.CodeBadRequest,
						fmt.Sprintf("API version %s is not served under /%s", requested, version))
				}
				if err != nil {
					httputil.WriteError(w, err)
					return
				}
			}
			ctx := requestcontext.WithAPIVersion(r.Context(), version)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
