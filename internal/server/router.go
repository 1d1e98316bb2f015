package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Areg888/toolbox-app/internal/calculator"
	"github.com/Areg888/toolbox-app/internal/catalog"
	"github.com/Areg888/toolbox-app/internal/handlers"
	"github.com/Areg888/toolbox-app/internal/observability"
	"github.com/Areg888/toolbox-app/internal/todo"
)

// Dependencies are the domain handlers mounted by NewRouter.
type Dependencies struct {
	Calculator *calculator.Handler
	Todos      *todo.Handler
}

func NewRouter(deps Dependencies) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)
	r.Get("/tools", catalog.List)

	r.Handle("/metrics", observability.PrometheusHandler())

	if deps.Calculator != nil {
		calculator.RegisterRoutes(r, deps.Calculator)
	}
	if deps.Todos != nil {
		todo.RegisterRoutes(r, deps.Todos)
	}

	return r
}
