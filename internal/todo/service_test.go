package todo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type failingStore struct {
	MemoryStore
	err error
}

func (s *failingStore) Save(ctx context.Context, todos []Todo) error {
	return s.err
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	next := 0

	svc, err := NewService(context.Background(), store,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		}),
	)
	if err != nil {
		t.Fatalf("creating service: %v", err)
	}
	return svc
}

func TestServiceAdd(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	got, err := svc.Add(ctx, "  buy milk  ", "")
	if err != nil {
		t.Fatalf("adding todo: %v", err)
	}

	if got.ID != "id-1" || got.Text != "buy milk" || got.Priority != PriorityMedium || got.Completed {
		t.Fatalf("unexpected todo %+v", got)
	}
	if got.CompletedAt != nil {
		t.Fatal("expected CompletedAt to be nil")
	}
	if store.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", store.Saves())
	}

	persisted, _ := store.Load(ctx)
	if len(persisted) != 1 || persisted[0].ID != "id-1" {
		t.Fatalf("expected todo to be persisted, got %+v", persisted)
	}
}

func TestServiceAddValidation(t *testing.T) {
	svc := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "   ", "high"); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := svc.Add(ctx, "task", "urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if n := len(svc.List(FilterAll)); n != 0 {
		t.Fatalf("expected no todos, got %d", n)
	}
}

func TestServiceToggle(t *testing.T) {
	svc := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	added, _ := svc.Add(ctx, "write report", "high")

	done, err := svc.Toggle(ctx, added.ID)
	if err != nil {
		t.Fatalf("toggling: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("expected completed todo with timestamp, got %+v", done)
	}

	undone, err := svc.Toggle(ctx, added.ID)
	if err != nil {
		t.Fatalf("toggling back: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Fatalf("expected active todo without timestamp, got %+v", undone)
	}

	if _, err := svc.Toggle(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceEditAndDelete(t *testing.T) {
	svc := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	a, _ := svc.Add(ctx, "a", "low")
	b, _ := svc.Add(ctx, "b", "low")

	edited, err := svc.Edit(ctx, a.ID, " a2 ")
	if err != nil {
		t.Fatalf("editing: %v", err)
	}
	if edited.Text != "a2" || edited.Priority != PriorityLow {
		t.Fatalf("unexpected edited todo %+v", edited)
	}

	if _, err := svc.Edit(ctx, a.ID, ""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	remaining := svc.List(FilterAll)
	if len(remaining) != 1 || remaining[0].ID != b.ID {
		t.Fatalf("expected only %s to remain, got %+v", b.ID, remaining)
	}
}

func TestServiceFilterStatsAndClearCompleted(t *testing.T) {
	svc := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		if _, err := svc.Add(ctx, text, ""); err != nil {
			t.Fatalf("adding %q: %v", text, err)
		}
	}
	if _, err := svc.Toggle(ctx, "id-2"); err != nil {
		t.Fatalf("toggling: %v", err)
	}

	if got := svc.Stats(); got != (Stats{Total: 3, Active: 2, Completed: 1}) {
		t.Fatalf("unexpected stats %+v", got)
	}
	if got := svc.List(FilterActive); len(got) != 2 || got[0].Text != "one" || got[1].Text != "three" {
		t.Fatalf("unexpected active list %+v", got)
	}
	if got := svc.List(FilterCompleted); len(got) != 1 || got[0].Text != "two" {
		t.Fatalf("unexpected completed list %+v", got)
	}

	removed, err := svc.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("clearing completed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if got := svc.Stats(); got != (Stats{Total: 2, Active: 2}) {
		t.Fatalf("unexpected stats after clear %+v", got)
	}
}

func TestServiceDoesNotApplyFailedSave(t *testing.T) {
	store := &failingStore{err: errors.New("disk full")}
	svc := newTestService(t, store)

	if _, err := svc.Add(context.Background(), "task", ""); err == nil {
		t.Fatal("expected save error")
	}
	if n := len(svc.List(FilterAll)); n != 0 {
		t.Fatalf("expected failed add to be discarded, got %d todos", n)
	}
}

func TestServiceLoadsExistingTodos(t *testing.T) {
	store := NewMemoryStore(Todo{ID: "x", Text: "persisted", Priority: PriorityHigh})
	svc := newTestService(t, store)

	got := svc.List(FilterAll)
	if len(got) != 1 || got[0].Text != "persisted" {
		t.Fatalf("expected stored todo to load, got %+v", got)
	}
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{"": FilterAll, "all": FilterAll, "Active": FilterActive, "completed": FilterCompleted} {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %q, got %q (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFilter("done"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}
