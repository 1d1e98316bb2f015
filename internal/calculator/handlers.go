package calculator

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Areg888/toolbox-app/internal/calculator/engine"
	"github.com/Areg888/toolbox-app/internal/handlers"
	"github.com/Areg888/toolbox-app/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// errNonFinite is returned when a stateless result cannot be encoded as a
// JSON number.
var errNonFinite = errors.New("result is not a finite number")

// Handler serves the calculator endpoints.
type Handler struct {
	sessions *SessionStore
	upgrader websocket.Upgrader
}

func NewHandler(sessions *SessionStore) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ---------------------------------------------------------------------------
// Handlers: stateless operations
// ---------------------------------------------------------------------------

// Binary returns the handler for POST /calculator/{op}.
func (h *Handler) Binary(op engine.Operator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalcRequest
		h.compute(w, r, op.String(), &req, func() (CalcResponse, error) {
			result := engine.Apply(req.A, req.B, op)
			return CalcResponse{Operation: op.String(), A: req.A, B: req.B, Result: result}, finite(result)
		})
	}
}

// Function handles POST /calculator/function/{name}.
func (h *Handler) Function(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	fn, err := engine.ParseFunction(name)
	if err != nil {
		reject(w, r, "function", err, http.StatusNotFound)
		return
	}

	var req FunctionRequest
	h.compute(w, r, fn.String(), &req, func() (CalcResponse, error) {
		result := engine.Evaluate(fn, req.X)
		return CalcResponse{Operation: fn.String(), A: req.X, Result: result}, finite(result)
	})
}

// reject records a request that fails before any calculator work starts
// and writes the error response.
func reject(w http.ResponseWriter, r *http.Request, opName string, err error, status int) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, status, w)
}

func finite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s", errNonFinite, engine.FormatNumber(v))
	}
	return nil
}

// compute is the shared implementation for stateless operations: span,
// body decoding, timing, metrics, trace-correlated logging and the JSON
// response. run is called after req has been decoded.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request, opName string, req any, run func() (CalcResponse, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if err := handlers.DecodeJSON(w, r, req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	resp, err := run()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", resp.A),
		attribute.Float64("calculator.operand.b", resp.B),
	)

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusUnprocessableEntity, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, resp.Result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", resp.Result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", resp.Result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", resp.A),
		zap.Float64("b", resp.B),
		zap.Float64("result", resp.Result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Handler: chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It applies each step to a running
// total strictly left to right, with a child span per step.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", errors.New("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		if !step.Op.Valid() {
			err := fmt.Errorf("step %d: %w", i, engine.ErrUnknownOperator)
			observability.RecordError(ctx, span, logger, errorCounter, "chain", err.Error(), err, http.StatusBadRequest, w)
			return
		}

		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op.String()),
				attribute.Float64("chain.step.input", running),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		stepStart := time.Now()
		prev := running
		running = engine.Apply(running, step.Value, step.Op)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err := finite(running); err != nil {
			err = fmt.Errorf("step %d: %w", i, err)

			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, span, logger, errorCounter, step.Op.String(), err.Error(), err, http.StatusUnprocessableEntity, w)
			return
		}

		attrs := metric.WithAttributes(attribute.String("operation", step.Op.String()))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", prev),
			attribute.Float64("result", running),
		))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op.String()),
			zap.Float64("input", prev),
			zap.Float64("value", step.Value),
			zap.Float64("result", running),
		)

		results = append(results, ChainResult{
			Op:     step.Op.String(),
			Value:  step.Value,
			Result: running,
		})
	}

	resultGauge.Record(ctx, running, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
	})
}
