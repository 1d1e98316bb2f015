package calculator

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Areg888/toolbox-app/internal/calculator/engine"
	"github.com/Areg888/toolbox-app/internal/observability"
)

const (
	streamWriteWait = 5 * time.Second
	streamReadLimit = 4096
)

// Stream handles GET /calculator/sessions/{id}/ws. After the upgrade the
// current state is sent once; every inbound StreamMessage is then applied
// to the session and answered with one StreamFrame. Frames are handled
// one at a time, in arrival order.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx).With(
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	id := chi.URLParam(r, "id")

	snap, err := h.sessions.Snapshot(id)
	if err != nil {
		reject(w, r, "session.stream", err, http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(streamReadLimit)
	logger = logger.With(zap.String("session_id", id))
	logger.Info("calculator stream opened")

	if err := writeFrame(conn, StreamFrame{State: &snap}); err != nil {
		logger.Warn("calculator stream write failed", zap.Error(err))
		return
	}

	for {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("calculator stream closed unexpectedly", zap.Error(err))
			}
			break
		}

		frame, fatal := h.handleMessage(r, id, msg)
		if err := writeFrame(conn, frame); err != nil {
			logger.Warn("calculator stream write failed", zap.Error(err))
			break
		}
		if fatal {
			break
		}
	}

	logger.Info("calculator stream closed")
}

// handleMessage applies one inbound message. fatal is true when the
// session no longer exists and the stream should end.
func (h *Handler) handleMessage(r *http.Request, id string, msg StreamMessage) (frame StreamFrame, fatal bool) {
	var token engine.Token
	switch {
	case msg.Token != nil && msg.Key != "":
		return StreamFrame{Error: "key and token are mutually exclusive"}, false
	case msg.Token != nil:
		token = *msg.Token
	default:
		var err error
		token, err = engine.KeyToken(msg.Key)
		if err != nil {
			return StreamFrame{Error: err.Error()}, false
		}
	}

	snap, err := h.apply(r.Context(), id, []engine.Token{token})
	if err != nil {
		errorCounter.Add(r.Context(), 1)
		return StreamFrame{Error: err.Error()}, errors.Is(err, ErrSessionNotFound)
	}
	return StreamFrame{State: &snap}, false
}

func writeFrame(conn *websocket.Conn, frame StreamFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
