package middleware

import (
	"context"
	"net/http"
	"time"
)

// WithTimeout attaches a deadline to the request context so a stalled
// database call cannot hold its pooled connection indefinitely. Not applied
// to the WebSocket route, which is long-lived on purpose.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
