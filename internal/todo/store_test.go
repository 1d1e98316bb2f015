package todo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreMissingFileLoadsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "todos.json"))

	todos, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", todos)
	}
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todos.json")
	store := NewFileStore(path)
	ctx := context.Background()

	done := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	want := []Todo{
		{ID: "a", Text: "first", Priority: PriorityLow, CreatedAt: done.Add(-time.Hour)},
		{ID: "b", Text: "second", Priority: PriorityHigh, Completed: true, CreatedAt: done.Add(-time.Minute), CompletedAt: &done},
	}

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("saving: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d todos, got %d", len(want), len(got))
	}
	if got[1].CompletedAt == nil || !got[1].CompletedAt.Equal(done) {
		t.Fatalf("expected CompletedAt %v, got %v", done, got[1].CompletedAt)
	}
	if got[0].CompletedAt != nil || got[0].Text != "first" {
		t.Fatalf("unexpected first todo %+v", got[0])
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the store file to remain, got %d entries", len(entries))
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFileStore(filepath.Join(t.TempDir(), "todos.json"))
	if err := store.Save(ctx, nil); err == nil {
		t.Fatal("expected context error")
	}
}
