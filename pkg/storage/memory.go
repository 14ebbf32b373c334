package storage

import (
	"context"
	"sync"

	"github.com/matzehuels/trackgen/pkg/run"
)

// MemoryStore keeps runs in a map.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*run.Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*run.Run)}
}

func (s *MemoryStore) Save(ctx context.Context, r *run.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*run.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, NotFound(id)
	}
	return r, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]run.Summary, error) {
	s.mu.RLock()
	out := make([]run.Summary, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r.Summarize())
	}
	s.mu.RUnlock()
	return newestFirst(out, normalizeLimit(limit)), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
