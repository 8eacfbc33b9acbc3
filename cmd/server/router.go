package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/focus-api/internal/api"
	apiMiddleware "github.com/phrazzld/focus-api/internal/api/middleware"
)

// requestTimeout bounds every request, including both database reads.
const requestTimeout = 30 * time.Second

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	focusHandler := api.NewFocusHandler(app.focusService, app.config.Focus, app.logger)

	var healthHandler *api.HealthHandler
	if app.backend != nil {
		healthHandler = api.NewHealthHandler(app.backend.DB)
	} else {
		healthHandler = api.NewHealthHandler(nil)
	}

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/focus", focusHandler.GetFocusTasks)
		})
	})

	return r
}
