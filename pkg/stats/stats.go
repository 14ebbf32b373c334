// Package stats summarizes a generated track.
//
// [Summarize] compares the observed type mix against the probabilities the
// configuration asks for, describes the forward gaps between consecutive
// placements and counts how often each lane was used. [WriteHistogram]
// plots the gap distribution.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/trackgen/pkg/track"
)

// TypeShare is the observed and configured share of one content type.
type TypeShare struct {
	Type     track.ContentType `json:"type"`
	Count    int               `json:"count"`
	Observed float64           `json:"observed"`
	Expected float64           `json:"expected"`
}

// Gaps describes forward spacing between consecutive placements.
type Gaps struct {
	N      int       `json:"n"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"std_dev"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Values []float64 `json:"-"`
}

// Summary is the statistical view of one run.
type Summary struct {
	Placed    int         `json:"placed"`
	Skipped   int         `json:"skipped"`
	Attempts  int         `json:"attempts"`
	Rejection float64     `json:"rejection_rate"`
	Types     []TypeShare `json:"types"`
	Gaps      Gaps        `json:"gaps"`
	// LaneCounts is indexed by lane; nil in freeform mode.
	LaneCounts []int `json:"lane_counts,omitempty"`
}

// Summarize computes the summary of res generated from cfg. cfg should be
// the normalized configuration the run used.
func Summarize(res *track.Result, cfg track.Config) Summary {
	s := Summary{
		Placed:   len(res.Records),
		Skipped:  len(res.Stats.SkippedSlots),
		Attempts: res.Stats.Attempts,
	}
	if s.Attempts > 0 {
		s.Rejection = float64(res.Stats.Rejected) / float64(s.Attempts)
	}
	s.Types = typeShares(res, cfg)
	s.Gaps = gaps(res)
	if cfg.UseLanes {
		s.LaneCounts = laneCounts(res, cfg)
	}
	return s
}

// ExpectedShares returns the probability of each content type on an
// unforced slot after resource fallbacks.
func ExpectedShares(cfg track.Config) map[track.ContentType]float64 {
	res, _ := track.Resolve(cfg.Resources)
	out := make(map[track.ContentType]float64, len(track.ContentTypes))
	for t, p := range track.NewTypeSelector(cfg).Probabilities() {
		out[res.Lookup(t)] += p
	}
	return out
}

func typeShares(res *track.Result, cfg track.Config) []TypeShare {
	expected := ExpectedShares(cfg)
	out := make([]TypeShare, 0, len(track.ContentTypes))
	for _, t := range track.ContentTypes {
		ts := TypeShare{Type: t, Count: res.Count(t), Expected: expected[t]}
		if n := len(res.Records); n > 0 {
			ts.Observed = float64(ts.Count) / float64(n)
		}
		out = append(out, ts)
	}
	return out
}

func gaps(res *track.Result) Gaps {
	if len(res.Records) < 2 {
		return Gaps{}
	}
	vals := make([]float64, 0, len(res.Records)-1)
	for i := 1; i < len(res.Records); i++ {
		vals = append(vals, res.Records[i].Position.Z-res.Records[i-1].Position.Z)
	}
	g := Gaps{N: len(vals), Values: vals}
	g.Mean, g.StdDev = stat.MeanStdDev(vals, nil)
	if math.IsNaN(g.StdDev) {
		g.StdDev = 0
	}
	g.Min = slices.Min(vals)
	g.Max = slices.Max(vals)
	return g
}

func laneCounts(res *track.Result, cfg track.Config) []int {
	lanes := track.NewLaneModel(cfg)
	out := make([]int, len(lanes.Lanes()))
	for _, rec := range res.Records {
		if i := lanes.LaneIndex(rec.Position.X); i >= 0 {
			out[i]++
		}
	}
	return out
}
