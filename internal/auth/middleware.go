package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

// userIDKey carries the authenticated user's ID through the request context.
const userIDKey contextKey = "auth.userID"

// Middleware gates routes behind a valid Bearer token.
type Middleware struct {
	tokens *JWT
}

func NewMiddleware(tokens *JWT) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the Authorization header and injects the token
// owner's ID into the request context. Missing, malformed, expired, or
// tampered tokens all get 401 with {"error": "unauthorized"}.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" {
			writeUnauthorized(w)
			return
		}

		userID, err := m.tokens.Parse(tokenString)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user's ID, or "" when the request did not
// pass through Authenticate.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
