package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/track"
)

func makeRun(t *testing.T, seed uint64, at time.Time) *run.Run {
	t.Helper()
	cfg := track.DefaultConfig()
	cfg.ElementCount = 5
	res, err := track.NewEngine(track.WithSeed(seed)).Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r := run.New(cfg, seed, res)
	r.CreatedAt = at
	return r
}

func stores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			r := makeRun(t, 1, time.Now().UTC().Truncate(time.Second))
			if err := s.Save(ctx, r); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Get(ctx, r.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != r.ID || got.Seed != r.Seed || len(got.Result.Records) != len(r.Result.Records) {
				t.Errorf("Get = %+v, want %+v", got.Summarize(), r.Summarize())
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, uuid.NewString())
			if !errors.Is(err, errors.ErrCodeRunNotFound) {
				t.Errorf("Get(missing) error = %v, want RUN_NOT_FOUND", err)
			}
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var ids []string
			for i := range 4 {
				r := makeRun(t, uint64(i+1), base.Add(time.Duration(i)*time.Minute))
				if err := s.Save(ctx, r); err != nil {
					t.Fatal(err)
				}
				ids = append(ids, r.ID)
			}

			list, err := s.List(ctx, 3)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("List returned %d runs, want 3", len(list))
			}
			for i, want := range []string{ids[3], ids[2], ids[1]} {
				if list[i].ID != want {
					t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
				}
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			r := makeRun(t, 1, time.Now().UTC())
			if err := s.Save(ctx, r); err != nil {
				t.Fatal(err)
			}
			if err := s.Delete(ctx, r.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, r.ID); !errors.Is(err, errors.ErrCodeRunNotFound) {
				t.Errorf("Get after Delete error = %v", err)
			}
			if err := s.Delete(ctx, r.ID); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(context.Background(), "../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidRunID) {
		t.Errorf("Get(bad id) error = %v, want INVALID_RUN_ID", err)
	}
}

func TestFileStoreSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, uuid.NewString()+".json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), makeRun(t, 2, time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("List returned %d runs, want 1", len(list))
	}
}
