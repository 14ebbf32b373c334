// Package run defines the serializable record of one generation run.
//
// A [Run] bundles the configuration, seed and result of a run under a UUID
// so a track can be cached, archived, served over HTTP and re-rendered later
// without regenerating it.
package run

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/trackgen/pkg/track"
)

// Run is one generation run.
type Run struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Seed      uint64        `json:"seed"`
	Config    track.Config  `json:"config"`
	Result    *track.Result `json:"result"`
}

// New wraps a result in a Run with a fresh random ID.
func New(cfg track.Config, seed uint64, res *track.Result) *Run {
	return &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Config:    cfg,
		Result:    res,
	}
}

// Placed returns the number of records in the run.
func (r *Run) Placed() int {
	if r.Result == nil {
		return 0
	}
	return len(r.Result.Records)
}

// Summary is the list view of a run.
type Summary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Seed         uint64    `json:"seed"`
	ElementCount int       `json:"element_count"`
	Placed       int       `json:"placed"`
	Terminated   bool      `json:"terminated"`
}

// Summarize returns the list view of r.
func (r *Run) Summarize() Summary {
	s := Summary{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Seed:         r.Seed,
		ElementCount: r.Config.ElementCount,
		Placed:       r.Placed(),
	}
	if r.Result != nil {
		s.Terminated = r.Result.Stats.Terminated
	}
	return s
}
