// Package spawn hands generated placements to whatever builds the game
// entities.
//
// The generator only produces [track.PlacementRecord] values. A [Spawner]
// turns each record into a renderable or physics object in the host engine.
// Two spawners ship with the package: [Collector] keeps records in memory
// and [JSONLines] streams them to a writer for an external process.
package spawn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/matzehuels/trackgen/pkg/track"
)

// Spawner instantiates one placed element.
type Spawner interface {
	Spawn(ctx context.Context, rec track.PlacementRecord) error
}

// Func adapts a function to [Spawner].
type Func func(ctx context.Context, rec track.PlacementRecord) error

// Spawn calls f(ctx, rec).
func (f Func) Spawn(ctx context.Context, rec track.PlacementRecord) error { return f(ctx, rec) }

// Dispatch hands every record of res to s in order. It stops at the first
// spawner error or when ctx is cancelled, and returns the number of records
// spawned.
func Dispatch(ctx context.Context, res *track.Result, s Spawner) (int, error) {
	for i, rec := range res.Records {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.Spawn(ctx, rec); err != nil {
			return i, fmt.Errorf("spawn slot %d (%s): %w", rec.Slot, rec.Type, err)
		}
	}
	return len(res.Records), nil
}

// AsSink lets s receive records straight from the engine as they are
// accepted, instead of after the run.
func AsSink(ctx context.Context, s Spawner) track.Sink {
	return track.SinkFunc(func(rec track.PlacementRecord) error {
		return s.Spawn(ctx, rec)
	})
}

// Collector stores spawned records. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	records []track.PlacementRecord
}

// Spawn appends rec.
func (c *Collector) Spawn(_ context.Context, rec track.PlacementRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return nil
}

// Records returns a copy of the collected records.
func (c *Collector) Records() []track.PlacementRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]track.PlacementRecord(nil), c.records...)
}

// JSONLines writes one JSON object per record.
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines returns a spawner writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

// Spawn writes rec as a single line.
func (j *JSONLines) Spawn(_ context.Context, rec track.PlacementRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enc.Encode(rec)
}

var (
	_ Spawner = (*Collector)(nil)
	_ Spawner = (*JSONLines)(nil)
	_ Spawner = Func(nil)
)
