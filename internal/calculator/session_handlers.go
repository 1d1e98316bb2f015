package calculator

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Areg888/toolbox-app/internal/calculator/engine"
	"github.com/Areg888/toolbox-app/internal/handlers"
	"github.com/Areg888/toolbox-app/internal/observability"
)

var errEmptyInput = errors.New("one of tokens or keys is required")

// tokens resolves the request into engine tokens. Keys are mapped through
// the keyboard table.
func (req InputRequest) tokens() ([]engine.Token, error) {
	switch {
	case len(req.Tokens) > 0 && len(req.Keys) > 0:
		return nil, errors.New("tokens and keys are mutually exclusive")
	case len(req.Tokens) > 0:
		return req.Tokens, nil
	case len(req.Keys) > 0:
		return engine.KeyTokens(req.Keys...)
	default:
		return nil, errEmptyInput
	}
}

// CreateSession handles POST /calculator/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, snap := h.sessions.Create()

	observability.LoggerWithTrace(r.Context()).Info("calculator session created",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{ID: id, State: snap})
}

// GetSession handles GET /calculator/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := h.sessions.Snapshot(id)
	if err != nil {
		reject(w, r, "session.get", err, http.StatusNotFound)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, State: snap})
}

// DeleteSession handles DELETE /calculator/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		reject(w, r, "session.delete", err, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Input handles POST /calculator/sessions/{id}/input.
func (h *Handler) Input(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.input",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req InputRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.input", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	tokens, err := req.tokens()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.input", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	snap, err := h.apply(ctx, id, tokens)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, "session.input", err.Error(), err, http.StatusNotFound, w)
		return
	case err != nil:
		observability.RecordError(ctx, span, logger, errorCounter, "session.input", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Int("calculator.session.tokens", len(tokens)),
		attribute.String("calculator.display", snap.Display),
	)
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, State: snap})
}

// apply runs tokens against a session and counts them.
func (h *Handler) apply(ctx context.Context, id string, tokens []engine.Token) (engine.Snapshot, error) {
	snap, err := h.sessions.Apply(id, tokens...)
	if err != nil {
		return snap, err
	}

	for _, t := range tokens {
		inputCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("token", string(t.Kind))))
	}
	return snap, nil
}
