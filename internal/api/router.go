// Package api wires the HTTP surface: routing, request decoding, validation,
// and the JSON responses the clients consume.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tmoore/bookmarkd/internal/auth"
	"github.com/tmoore/bookmarkd/internal/build"
	"github.com/tmoore/bookmarkd/internal/config"
	"github.com/tmoore/bookmarkd/internal/store"
)

// Deps holds all dependencies required to build the router.
type Deps struct {
	Log         *zap.Logger
	Credentials *auth.Service
	Gate        *auth.Middleware
	Bookmarks   *store.BookmarkStore

	// ExposeErrors includes internal error detail in 500 responses. Leave it
	// off in production.
	ExposeErrors bool
	RateLimit    config.RateLimit
}

// NewRouter builds the full HTTP handler: health check, public auth routes,
// and the token-gated bookmark routes.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(deps.Log))
	if deps.RateLimit.RPS > 0 {
		r.Use(rateLimitByIP(deps.RateLimit.RPS, deps.RateLimit.Burst))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": build.Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)

		registerAuthRoutes(r, deps)

		r.Group(func(r chi.Router) {
			r.Use(deps.Gate.Authenticate)
			registerBookmarkRoutes(r, deps)
		})
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
