package track

import "math"

// Footprint is the axis-aligned ground rectangle of a placed element.
type Footprint struct {
	Center     Vec2        `json:"center"`
	HalfExtent Vec2        `json:"half_extent"`
	Type       ContentType `json:"type"`
}

// Overlaps reports whether the rectangles of f and o, each inflated by
// margin, intersect. The test is strict: rectangles that exactly touch do
// not overlap.
func (f Footprint) Overlaps(o Footprint, margin float64) bool {
	return math.Abs(f.Center.X-o.Center.X) < f.HalfExtent.X+o.HalfExtent.X+margin &&
		math.Abs(f.Center.Z-o.Center.Z) < f.HalfExtent.Z+o.HalfExtent.Z+margin
}

// Registry holds every footprint placed during a run. It is append-only and
// scanned linearly; runs are small enough that a spatial index does not pay.
type Registry struct {
	footprints []Footprint
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Overlaps reports whether candidate collides with any registered footprint.
func (r *Registry) Overlaps(candidate Footprint, margin float64) bool {
	for _, f := range r.footprints {
		if candidate.Overlaps(f, margin) {
			return true
		}
	}
	return false
}

// Register adds f. The registry does not check f against existing entries.
func (r *Registry) Register(f Footprint) {
	r.footprints = append(r.footprints, f)
}

// Len returns the number of registered footprints.
func (r *Registry) Len() int { return len(r.footprints) }

// Footprints returns a copy of the registered footprints in insertion order.
func (r *Registry) Footprints() []Footprint {
	return append([]Footprint(nil), r.footprints...)
}
