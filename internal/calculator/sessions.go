package calculator

import (
	"container/list"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Areg888/toolbox-app/internal/calculator/engine"
)

// ErrSessionNotFound is returned for unknown or evicted session IDs.
var ErrSessionNotFound = errors.New("calculator session not found")

// DefaultMaxSessions is used when NewSessionStore gets a non-positive limit.
const DefaultMaxSessions = 1024

type session struct {
	id    string
	state engine.State
}

// SessionStore owns one engine state per calculator session. All access is
// serialised by a single mutex, so inputs arriving concurrently over HTTP
// and websocket are applied one batch at a time. When full, creating a
// session evicts the least recently used one.
type SessionStore struct {
	mu       sync.Mutex
	max      int
	order    *list.List // front is most recently used
	sessions map[string]*list.Element
}

func NewSessionStore(max int) *SessionStore {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &SessionStore{
		max:      max,
		order:    list.New(),
		sessions: make(map[string]*list.Element),
	}
}

// Create starts a session in the initial engine state.
func (s *SessionStore) Create() (string, engine.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.order.Len() >= s.max {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.sessions, oldest.Value.(*session).id)
	}

	sess := &session{id: uuid.NewString(), state: engine.New()}
	s.sessions[sess.id] = s.order.PushFront(sess)

	return sess.id, sess.state.Snapshot()
}

// Snapshot returns the current render view of a session.
func (s *SessionStore) Snapshot(id string) (engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return sess.state.Snapshot(), nil
}

// Apply runs tokens against a session atomically: if any token is invalid
// the session is left as it was.
func (s *SessionStore) Apply(id string, tokens ...engine.Token) (engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return engine.Snapshot{}, err
	}

	next, err := engine.Run(sess.state, tokens...)
	if err != nil {
		return engine.Snapshot{}, err
	}
	sess.state = next

	return next.Snapshot(), nil
}

// Delete drops a session.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.order.Remove(elem)
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// lookup must be called with s.mu held. It marks the session as recently used.
func (s *SessionStore) lookup(id string) (*session, error) {
	elem, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.order.MoveToFront(elem)
	return elem.Value.(*session), nil
}

// RegisterSessionGauge exposes the live session count on reg as
// toolbox_calculator_sessions_active.
func RegisterSessionGauge(reg prometheus.Registerer, store *SessionStore) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "toolbox",
		Subsystem: "calculator",
		Name:      "sessions_active",
		Help:      "Number of live calculator sessions.",
	}, func() float64 {
		return float64(store.Len())
	})

	if err := reg.Register(gauge); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return err
	}
	return nil
}
