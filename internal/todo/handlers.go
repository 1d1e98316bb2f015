package todo

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Areg888/toolbox-app/internal/handlers"
	"github.com/Areg888/toolbox-app/internal/observability"
)

var tracer = otel.Tracer("todo")

// AddRequest is the JSON body for POST /todos.
type AddRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// EditRequest is the JSON body for PATCH /todos/{id}.
type EditRequest struct {
	Text string `json:"text"`
}

// ListResponse is the JSON response for GET /todos.
type ListResponse struct {
	Filter Filter `json:"filter"`
	Todos  []Todo `json:"todos"`
	Stats  Stats  `json:"stats"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the to-do endpoints under /todos.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/todos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Get("/stats", h.Stats)
		r.Delete("/completed", h.ClearCompleted)
		r.Patch("/{id}", h.Edit)
		r.Post("/{id}/toggle", h.Toggle)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /todos?filter=all|active|completed.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ListResponse{
		Filter: f,
		Todos:  h.svc.List(f),
		Stats:  h.svc.Stats(),
	})
}

// Stats handles GET /todos/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, h.svc.Stats())
}

// Add handles POST /todos.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "add", http.StatusCreated, func(span trace.Span) (any, error) {
		var req AddRequest
		if err := handlers.DecodeJSON(w, r, &req); err != nil {
			return nil, errBadBody{err}
		}
		t, err := h.svc.Add(r.Context(), req.Text, req.Priority)
		span.SetAttributes(attribute.String("todo.id", t.ID))
		return t, err
	})
}

// Edit handles PATCH /todos/{id}.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "edit", http.StatusOK, func(trace.Span) (any, error) {
		var req EditRequest
		if err := handlers.DecodeJSON(w, r, &req); err != nil {
			return nil, errBadBody{err}
		}
		return h.svc.Edit(r.Context(), chi.URLParam(r, "id"), req.Text)
	})
}

// Toggle handles POST /todos/{id}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "toggle", http.StatusOK, func(trace.Span) (any, error) {
		return h.svc.Toggle(r.Context(), chi.URLParam(r, "id"))
	})
}

// Delete handles DELETE /todos/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "delete", http.StatusNoContent, func(trace.Span) (any, error) {
		return nil, h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	})
}

// ClearCompleted handles DELETE /todos/completed.
func (h *Handler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "clear_completed", http.StatusOK, func(trace.Span) (any, error) {
		n, err := h.svc.ClearCompleted(r.Context())
		return map[string]int{"removed": n}, err
	})
}

// errBadBody marks a request body decoding failure.
type errBadBody struct{ err error }

func (e errBadBody) Error() string { return e.err.Error() }
func (e errBadBody) Unwrap() error { return e.err }

// mutate wraps a change in a span, maps service errors to HTTP statuses
// and writes the result. A nil result with StatusNoContent writes no body.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, opName string, status int, run func(trace.Span) (any, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "todo."+opName,
		trace.WithAttributes(
			attribute.String("todo.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	result, err := run(span)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, errorMessage(err), err, statusFor(err), w)
		return
	}

	mutationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))
	logger.Info("todo list changed",
		zap.String("operation", opName),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	handlers.WriteJSON(w, status, result)
}

func statusFor(err error) int {
	var bad errBadBody
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyText), errors.Is(err, ErrInvalidPriority):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	var bad errBadBody
	if errors.As(err, &bad) {
		return "invalid request body"
	}
	if statusFor(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
