// Package storage archives generation runs.
//
// A [Store] keeps complete runs so the HTTP API can list them and re-render
// their previews on demand. Implementations:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: one JSON file per run, for the CLI
//   - mongo.Store: MongoDB-backed, for shared deployments
//
// Get returns an error with code errors.ErrCodeRunNotFound when no run has
// the requested ID.
package storage

import (
	"context"
	"slices"

	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/run"
)

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store is the interface for run archives.
type Store interface {
	// Save stores r, replacing any run with the same ID.
	Save(ctx context.Context, r *run.Run) error

	// Get returns the run with the given ID.
	Get(ctx context.Context, id string) (*run.Run, error)

	// List returns summaries of the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]run.Summary, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// NotFound returns the error stores report for a missing run.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// newestFirst sorts summaries by creation time, newest first, with ID as a
// tie-breaker, and truncates to limit.
func newestFirst(out []run.Summary, limit int) []run.Summary {
	slices.SortFunc(out, func(a, b run.Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
