package track

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Sink receives each record the moment it is accepted.
type Sink interface {
	Emit(PlacementRecord) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(PlacementRecord) error

// Emit calls f(rec).
func (f SinkFunc) Emit(rec PlacementRecord) error { return f(rec) }

// Attempt describes one proposed candidate.
type Attempt struct {
	Slot     int
	Number   int // 1-based within the slot
	Z        float64
	X        float64
	Type     ContentType
	Accepted bool
}

// AttemptObserver is called once per candidate, accepted or not.
type AttemptObserver func(Attempt)

// Option configures an [Engine].
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(d Drawer) Option {
	return func(e *Engine) { e.rng = d }
}

// WithSeed sets a PCG random source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = NewRand(seed) }
}

// WithLogger sets the logger used for configuration warnings and run events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSink streams accepted records to s as well as collecting them.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithObserver registers fn to see every attempt.
func WithObserver(fn AttemptObserver) Option {
	return func(e *Engine) { e.observe = fn }
}

// Engine runs the placement loop. An Engine is not safe for concurrent use
// because it owns its random source; create one engine per goroutine.
type Engine struct {
	rng     Drawer
	logger  *log.Logger
	sink    Sink
	observe AttemptObserver
}

// NewEngine returns an engine with a PCG source seeded with [DefaultSeed]
// unless another source is supplied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(DefaultSeed)
	}
	return e
}

// Generate normalizes cfg and runs the placement loop.
//
// For each slot the forward cursor advances by a uniform spacing on every
// attempt, failed ones included, and never rewinds. The first time it passes
// EndZ the run ends and the records accumulated so far are returned. A slot
// that uses up MaxAttemptsPerSlot without a fit is skipped.
//
// The only error sources are a configuration that cannot be normalized and
// a sink that rejects a record.
func (e *Engine) Generate(cfg Config) (*Result, error) {
	cfg, adjustments, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	for _, a := range adjustments {
		e.logger.Warn("config adjusted", "field", a.Field, "from", a.From, "to", a.To)
	}
	resolution, missing := Resolve(cfg.Resources)
	for _, t := range missing {
		e.logger.Warn("resource missing, placing obstacles instead", "type", t)
	}

	lanes := NewLaneModel(cfg)
	selector := NewTypeSelector(cfg)
	registry := NewRegistry()

	res := &Result{
		Records: make([]PlacementRecord, 0, recordCapacity(cfg)),
		Counts:  make(map[ContentType]int, len(ContentTypes)),
	}
	cursor := cfg.StartZ

	e.logger.Debug("generating track",
		"elements", cfg.ElementCount,
		"start_z", cfg.StartZ,
		"end_z", cfg.EndZ,
		"lanes", len(lanes.Lanes()),
	)

	for slot := 0; slot < cfg.ElementCount; slot++ {
		placed := false
		for attempt := 1; attempt <= cfg.MaxAttemptsPerSlot && !placed; attempt++ {
			res.Stats.Attempts++
			cursor += uniform(e.rng, cfg.MinSpacing, cfg.MaxSpacing)
			if cursor > cfg.EndZ {
				res.Stats.Terminated = true
				res.Stats.FinalZ = cursor
				e.logger.Debug("cursor passed end of track", "slot", slot, "z", cursor, "placed", len(res.Records))
				e.logSummary(res)
				return res, nil
			}

			x := lanes.PickX(e.rng)
			typ := resolution.Lookup(selector.Pick(slot, e.rng))
			spec := cfg.Types.Spec(typ)
			candidate := Footprint{
				Center:     Vec2{X: x, Z: cursor},
				HalfExtent: spec.HalfExtent,
				Type:       typ,
			}

			placed = !registry.Overlaps(candidate, cfg.Margin)
			if e.observe != nil {
				e.observe(Attempt{Slot: slot, Number: attempt, Z: cursor, X: x, Type: typ, Accepted: placed})
			}
			if !placed {
				res.Stats.Rejected++
				continue
			}

			rec := PlacementRecord{
				Slot:     slot,
				Type:     typ,
				Position: Vec3{X: x, Y: spec.Height, Z: cursor},
			}
			if e.sink != nil {
				if err := e.sink.Emit(rec); err != nil {
					return nil, fmt.Errorf("emit slot %d: %w", slot, err)
				}
			}
			res.Records = append(res.Records, rec)
			registry.Register(candidate)
			res.Counts[typ]++
		}
		if !placed {
			res.Stats.SkippedSlots = append(res.Stats.SkippedSlots, slot)
			e.logger.Debug("slot skipped", "slot", slot, "z", cursor)
		}
		res.Stats.SlotsProcessed++
	}

	res.Stats.FinalZ = cursor
	e.logSummary(res)
	return res, nil
}

// maxRecordPrealloc bounds the up-front allocation for the record slice.
const maxRecordPrealloc = 4096

// recordCapacity estimates how many records fit between StartZ and EndZ,
// bounded by ElementCount and maxRecordPrealloc.
func recordCapacity(cfg Config) int {
	n := float64(min(cfg.ElementCount, maxRecordPrealloc))
	if fit := (cfg.EndZ-cfg.StartZ)/cfg.MinSpacing + 1; fit < n {
		n = fit
	}
	return max(int(n), 0)
}

// logSummary reports placed counts per group. Tiny obstacles count as
// obstacles and both pad kinds count as pads.
func (e *Engine) logSummary(res *Result) {
	e.logger.Info("track generated",
		"obstacles", res.Count(Obstacle)+res.Count(TinyObstacle),
		"pads", res.Count(Pad)+res.Count(InteractivePad),
		"platforms", res.Count(Platform),
		"skipped", len(res.Stats.SkippedSlots),
		"terminated", res.Stats.Terminated,
		"final_z", res.Stats.FinalZ,
	)
}
