package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/schedule-assistant/internal/handlers"
	"github.com/GregMSThompson/schedule-assistant/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Get("/metrics", deps.Metrics.Handler().ServeHTTP)
	}

	sys := handlers.NewSystemHandlers(deps)
	r.Get("/health", sys.Health)
	r.Post("/debug", sys.Debug)

	ch := handlers.NewChatHandlers(deps)
	r.Group(func(r chi.Router) {
		if deps.Firebase != nil {
			r.Use(middleware.NewMiddleware(deps.Firebase).FirebaseAuth)
		}
		r.Mount("/chat", ch.ChatRoutes())
	})
	return r
}
