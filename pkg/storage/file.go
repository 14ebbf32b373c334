package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/trackgen/pkg/errors"
	trackio "github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/run"
)

// FileStore is a file-based run archive for CLI use.
// Runs are stored as JSON files named by run ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/trackgen/runs/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "trackgen", "runs")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) runPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, r *run.Run) error {
	if err := errors.ValidateRunID(r.ID); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := trackio.WriteRun(&buf, r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.runPath(r.ID), buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write run %s", r.ID)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*run.Run, error) {
	if err := errors.ValidateRunID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.runPath(id), id)
}

func (s *FileStore) read(path, id string) (*run.Run, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, NotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read run %s", id)
	}
	return trackio.ReadRun(bytes.NewReader(data))
}

func (s *FileStore) List(ctx context.Context, limit int) ([]run.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read run dir")
	}
	out := make([]run.Summary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := s.read(filepath.Join(s.baseDir, name), strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, r.Summarize())
	}
	return newestFirst(out, normalizeLimit(limit)), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateRunID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.runPath(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove run %s", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding run files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
