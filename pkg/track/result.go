package track

// PlacementRecord is one accepted placement, handed to whatever instantiates
// the element in the game world.
type PlacementRecord struct {
	// Slot is the loop iteration that produced the record.
	Slot     int         `json:"slot"`
	Type     ContentType `json:"type"`
	Position Vec3        `json:"position"`
}

// Stats describes how a run went.
type Stats struct {
	// SlotsProcessed counts slots whose retry loop ran to completion,
	// placed or skipped. A slot cut short by termination is not counted.
	SlotsProcessed int `json:"slots_processed"`
	// Attempts counts candidates proposed over the run.
	Attempts int `json:"attempts"`
	// Rejected counts candidates that failed the overlap test.
	Rejected int `json:"rejected"`
	// SkippedSlots lists slots that exhausted their attempts.
	SkippedSlots []int `json:"skipped_slots,omitempty"`
	// Terminated is set when the cursor passed EndZ before every slot ran.
	Terminated bool `json:"terminated"`
	// FinalZ is the cursor position when the run stopped.
	FinalZ float64 `json:"final_z"`
}

// Result is the output of one generation run.
type Result struct {
	Records []PlacementRecord   `json:"records"`
	Counts  map[ContentType]int `json:"counts"`
	Stats   Stats               `json:"stats"`
}

// Count returns the number of records of type t.
func (r *Result) Count(t ContentType) int {
	return r.Counts[t]
}

// Footprints rebuilds the ground footprints of every record from types.
func (r *Result) Footprints(types TypeTable) []Footprint {
	out := make([]Footprint, len(r.Records))
	for i, rec := range r.Records {
		out[i] = Footprint{
			Center:     Vec2{X: rec.Position.X, Z: rec.Position.Z},
			HalfExtent: types.Spec(rec.Type).HalfExtent,
			Type:       rec.Type,
		}
	}
	return out
}
