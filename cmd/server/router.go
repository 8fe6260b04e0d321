package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/posts-api/internal/api/middleware"
	"github.com/phrazzld/posts-api/internal/api/shared"
	"github.com/phrazzld/posts-api/internal/store"
)

const healthCheckTimeout = 2 * time.Second

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Recoverer(app.funnel))
	if app.metrics != nil {
		r.Use(apiMiddleware.Metrics(app.metrics))
	}

	r.NotFound(app.funnel.NotFound())
	r.MethodNotAllowed(app.funnel.MethodNotAllowed())

	for _, c := range app.controllers {
		c.Mount(r)
	}

	r.Get("/health", app.health)

	if app.metrics != nil {
		r.Method(http.MethodGet, app.config.Metrics.Path, app.metrics.Handler())
	}

	return r
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := app.posts.Ping(ctx); err != nil {
		app.funnel.Handle(w, r, shared.WrapHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable", store.ErrUnavailable))
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
