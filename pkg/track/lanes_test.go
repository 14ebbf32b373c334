package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLaneModelEvenSpacing(t *testing.T) {
	tests := []struct {
		name string
		xMin float64
		xMax float64
		n    int
		want []float64
	}{
		{"two lanes", -2, 2, 2, []float64{-2, 2}},
		{"three lanes", -3, 3, 3, []float64{-3, 0, 3}},
		{"five lanes", 0, 8, 5, []float64{0, 2, 4, 6, 8}},
		{"zero width", 0, 0, 2, []float64{0, 0}},
		{"single lane midpoint", 2, 6, 1, []float64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLaneModel(Config{XMin: tt.xMin, XMax: tt.xMax, UseLanes: true, LaneCount: tt.n})
			if diff := cmp.Diff(tt.want, m.Lanes()); diff != "" {
				t.Errorf("Lanes() mismatch (-want +got):\n%s", diff)
			}
			if m.Freeform() {
				t.Error("lane model should not be freeform")
			}
		})
	}
}

func TestLaneModelFreeform(t *testing.T) {
	m := NewLaneModel(Config{XMin: -1, XMax: 3, LaneCount: 4})
	if !m.Freeform() {
		t.Fatal("expected freeform model when lanes are disabled")
	}
	if m.Lanes() != nil {
		t.Errorf("Lanes() = %v, want nil", m.Lanes())
	}
	for _, r := range []float64{0, 0.25, 0.5, 0.999} {
		x := m.PickX(&seqDrawer{vals: []float64{r}})
		if want := -1 + 4*r; x != want {
			t.Errorf("PickX(%v) = %v, want %v", r, x, want)
		}
	}
}

func TestLaneModelPickX(t *testing.T) {
	m := NewLaneModel(Config{XMin: -3, XMax: 3, UseLanes: true, LaneCount: 3})
	tests := []struct {
		r    float64
		want float64
	}{
		{0, -3},
		{0.33, -3},
		{0.34, 0},
		{0.66, 0},
		{0.67, 3},
		{0.9999, 3},
	}
	for _, tt := range tests {
		if got := m.PickX(&seqDrawer{vals: []float64{tt.r}}); got != tt.want {
			t.Errorf("PickX(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestLaneIndex(t *testing.T) {
	m := NewLaneModel(Config{XMin: 0, XMax: 4, UseLanes: true, LaneCount: 3})
	if got := m.LaneIndex(2); got != 1 {
		t.Errorf("LaneIndex(2) = %d, want 1", got)
	}
	if got := m.LaneIndex(1.5); got != -1 {
		t.Errorf("LaneIndex(1.5) = %d, want -1", got)
	}
}

// seqDrawer replays vals in order and wraps around.
type seqDrawer struct {
	vals []float64
	i    int
}

func (s *seqDrawer) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}
