package todo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service holds the to-do list in memory and writes it through to a Store
// on every change. A change that fails to persist is not applied.
type Service struct {
	mu    sync.Mutex
	store Store
	todos []Todo

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService loads the current list from store.
func NewService(ctx context.Context, store Store, opts ...Option) (*Service, error) {
	todos, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}

	s := &Service{
		store: store,
		todos: todos,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add appends a new, active task. Text is trimmed; an empty priority means
// medium.
func (s *Service) Add(ctx context.Context, text string, priority string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, ErrEmptyText
	}

	p, err := ParsePriority(priority)
	if err != nil {
		return Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Todo{
		ID:        s.newID(),
		Text:      text,
		Priority:  p,
		CreatedAt: s.now().UTC(),
	}

	next := append(slices.Clone(s.todos), t)
	if err := s.commit(ctx, next); err != nil {
		return Todo{}, err
	}
	return t, nil
}

// Toggle flips completion, stamping or clearing CompletedAt.
func (s *Service) Toggle(ctx context.Context, id string) (Todo, error) {
	return s.update(ctx, id, func(t *Todo) {
		t.Completed = !t.Completed
		if t.Completed {
			at := s.now().UTC()
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
	})
}

// Edit replaces the text of a task.
func (s *Service) Edit(ctx context.Context, id, text string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, ErrEmptyText
	}
	return s.update(ctx, id, func(t *Todo) {
		t.Text = text
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := slices.Delete(slices.Clone(s.todos), i, i+1)
	return s.commit(ctx, next)
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.todos), FilterCompleted.match)
	removed := len(s.todos) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns the tasks matching f in insertion order.
func (s *Service) List(f Filter) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if f.match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.todos)}
	for _, t := range s.todos {
		if t.Completed {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}

func (s *Service) update(ctx context.Context, id string, mutate func(*Todo)) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := slices.Clone(s.todos)
	mutate(&next[i])
	if err := s.commit(ctx, next); err != nil {
		return Todo{}, err
	}
	return next[i], nil
}

// index must be called with s.mu held.
func (s *Service) index(id string) int {
	return slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
}

// commit must be called with s.mu held.
func (s *Service) commit(ctx context.Context, next []Todo) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save todos: %w", err)
	}
	s.todos = next
	return nil
}
