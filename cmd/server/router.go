package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	taskHandler := api.NewTaskHandler(
		app.taskStore,
		app.logger,
		api.WithRedactErrors(app.config.Server.RedactErrors),
	)

	r.Route("/tasks", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}

		r.Post("/", taskHandler.CreateTask)
		// An empty taskId reaches the handlers so they answer with a JSON 400.
		r.Get("/", taskHandler.GetTask)
		r.Put("/", taskHandler.UpdateTask)
		r.Delete("/", taskHandler.DeleteTask)
		r.Get("/{taskId}", taskHandler.GetTask)
		r.Put("/{taskId}", taskHandler.UpdateTask)
		r.Delete("/{taskId}", taskHandler.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	return r
}
