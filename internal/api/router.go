package api

import (
	"net/http"

	"github.com/asterah/chaos-full-nightmare/internal/api/handlers"
	"github.com/asterah/chaos-full-nightmare/internal/api/middleware"
	"github.com/asterah/chaos-full-nightmare/internal/config"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/asterah/chaos-full-nightmare/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	combatantHandler := handlers.NewCombatantHandler(services.Combatant, logger)
	rulesHandler := handlers.NewRulesHandler(services.Session.Rules())
	sessionHandler := handlers.NewSessionHandler(services.Session, hub, logger)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, cfg.AllowedOrigins, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, logger))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/combatants", func(r chi.Router) {
			r.Get("/", combatantHandler.GetAll)
			r.Get("/{id}", combatantHandler.Get)

			// Syncing rewrites the shared catalog
			r.With(middleware.Auth(services.Auth, logger)).Post("/sync", combatantHandler.Sync)
		})

		r.Get("/rules", rulesHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, logger))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", sessionHandler.Create)
				r.Get("/{id}", sessionHandler.Get)
				r.Put("/{id}/tier", sessionHandler.SetTier)
				r.Put("/{id}/slots", sessionHandler.SetSlotCount)

				r.Route("/{id}/slots/{index}", func(r chi.Router) {
					r.Get("/", sessionHandler.GetSlot)
					r.Put("/combatant", sessionHandler.ChangeCombatant)
					r.Post("/actions", sessionHandler.Apply)
					r.Post("/undo", sessionHandler.Undo)
					r.Post("/reset", sessionHandler.Reset)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me/sessions", sessionHandler.GetUserSessions)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
