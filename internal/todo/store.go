package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Store persists the complete to-do list as one value.
type Store interface {
	Load(ctx context.Context) ([]Todo, error)
	Save(ctx context.Context, todos []Todo) error
}

// FileStore keeps the list as a JSON array in a single file. Writes go to
// a temporary file that is renamed over the target, so a crash never
// leaves a half-written list behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns an empty list when the file does not exist yet.
func (s *FileStore) Load(ctx context.Context) ([]Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Todo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read todo store: %w", err)
	}

	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("decode todo store %s: %w", s.path, err)
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

func (s *FileStore) Save(ctx context.Context, todos []Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if todos == nil {
		todos = []Todo{}
	}
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("encode todo store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create todo store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".todos-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace todo store: %w", err)
	}
	return nil
}

// MemoryStore keeps the list in memory. Useful for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	todos []Todo
	saves int
}

func NewMemoryStore(todos ...Todo) *MemoryStore {
	return &MemoryStore{todos: slices.Clone(todos)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.todos == nil {
		return []Todo{}, nil
	}
	return slices.Clone(s.todos), nil
}

func (s *MemoryStore) Save(ctx context.Context, todos []Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = slices.Clone(todos)
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
