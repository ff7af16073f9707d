package api

import (
	"log/slog"
	"net/http"

	"github.com/dom/whatnot-go/internal/api/handlers"
	"github.com/dom/whatnot-go/internal/api/middleware"
	"github.com/dom/whatnot-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the health check and the read-only /api/v1 routes.
func NewRouter(platform handlers.Platform, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	userHandler := handlers.NewUserHandler(platform, logger)
	liveHandler := handlers.NewLiveHandler(platform, cfg.Gateway.WatchInterval, logger)
	accountHandler := handlers.NewAccountHandler(platform, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.Gateway.KeyHash, logger))

		r.Route("/users", func(r chi.Router) {
			r.Get("/{username}", userHandler.GetByUsername)
			r.Get("/id/{id}", userHandler.GetByID)
			r.Get("/id/{id}/lives", userHandler.GetLives)
		})

		r.Route("/lives", func(r chi.Router) {
			r.Get("/{id}", liveHandler.Get)
			r.Get("/{id}/watch", liveHandler.Watch)
		})

		// Needs the gateway's own platform session
		r.Route("/me", func(r chi.Router) {
			r.Get("/", accountHandler.Me)
			r.Get("/payment", accountHandler.Payment)
		})
	})

	return r
}
