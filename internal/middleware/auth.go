package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mwesterdijk/spullendelen/internal/auth"
)

// RequireAuth verifies the Authorization bearer token and injects the user
// id into the request context. Handlers behind it may assume an
// authenticated identity is present.
func RequireAuth(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "missing or malformed Authorization header")
				return
			}

			userID, err := auth.UserIDFromToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), userID)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"message":  message,
		"code":     "UNAUTHORIZED",
		"datetime": time.Now().UTC().Format(time.RFC3339),
	})
}
