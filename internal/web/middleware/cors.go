// Package middleware holds the HTTP middleware that is specific to
// this service; generic concerns come from chi's middleware package.
package middleware

import (
	"net/http"
	"os"
	"strings"
)

// allowedOrigins reads the comma-separated WEB_ALLOWED_ORIGINS env var
// into a lookup set. Localhost is handled separately and never needs
// listing.
func allowedOrigins() map[string]struct{} {
	origins := make(map[string]struct{})
	if env := os.Getenv("WEB_ALLOWED_ORIGINS"); env != "" {
		for _, o := range strings.Split(env, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				origins[o] = struct{}{}
			}
		}
	}
	return origins
}

// isLocalhostOrigin reports whether the origin is http(s)://localhost
// on any port.
func isLocalhostOrigin(origin string) bool {
	for _, scheme := range []string{"http://localhost", "https://localhost"} {
		if origin == scheme || strings.HasPrefix(origin, scheme+":") {
			return true
		}
	}
	return false
}

// isOriginAllowed checks whether a request origin should receive CORS
// headers.
func isOriginAllowed(origin string, allowed map[string]struct{}) bool {
	if origin == "" {
		return false
	}
	if isLocalhostOrigin(origin) {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// CORS returns middleware answering cross-origin requests against the
// JSON API. The API is unauthenticated and only ever exchanges JSON,
// so no credentials are allowed and Content-Type is the single header
// a browser needs to preflight.
func CORS() func(http.Handler) http.Handler {
	allowed := allowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if isOriginAllowed(origin, allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
