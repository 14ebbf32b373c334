package track

import "testing"

func TestFootprintOverlaps(t *testing.T) {
	half := Vec2{X: 0.5, Z: 0.5}
	at := func(x, z float64) Footprint { return Footprint{Center: Vec2{X: x, Z: z}, HalfExtent: half} }

	tests := []struct {
		name   string
		a, b   Footprint
		margin float64
		want   bool
	}{
		{"same center", at(0, 0), at(0, 0), 0, true},
		{"inside margin on z", at(0, 0), at(0, 1.125), 0.25, true},
		{"touching inflated edge", at(0, 0), at(0, 1.25), 0.25, false},
		{"beyond margin", at(0, 0), at(0, 2), 0.25, false},
		{"other lane", at(-2, 0), at(2, 0), 0.25, false},
		{"separated on x only", at(0, 0), at(1.5, 0.1), 0.25, false},
		{"separated on z only", at(0, 0), at(0.1, 1.5), 0.25, false},
		{"diagonal overlap", at(0, 0), at(0.75, 0.75), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b, tt.margin); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a, tt.margin); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	f := Footprint{Center: Vec2{Z: 10}, HalfExtent: Vec2{X: 0.5, Z: 0.5}}

	if r.Overlaps(f, 0.2) {
		t.Error("empty registry should not report overlaps")
	}
	r.Register(f)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	near := Footprint{Center: Vec2{Z: 11}, HalfExtent: Vec2{X: 0.5, Z: 0.5}}
	if !r.Overlaps(near, 0.2) {
		t.Error("candidate within 1.2 on z should overlap")
	}
	far := Footprint{Center: Vec2{Z: 12}, HalfExtent: Vec2{X: 0.5, Z: 0.5}}
	if r.Overlaps(far, 0.2) {
		t.Error("candidate 2 units away should not overlap")
	}

	got := r.Footprints()
	got[0].Center.Z = 99
	if r.Footprints()[0].Center.Z != 10 {
		t.Error("Footprints() must return a copy")
	}
}
