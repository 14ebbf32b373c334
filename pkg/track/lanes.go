package track

// LaneModel derives the lateral anchor positions of a track.
type LaneModel struct {
	xMin, xMax float64
	lanes      []float64
}

// NewLaneModel builds the lane set for cfg. When cfg.UseLanes is false the
// model is freeform and X is sampled uniformly from [XMin, XMax].
//
// Lanes sit at evenly spaced fractions t = i/(LaneCount-1) of the usable
// width, so the outer lanes touch XMin and XMax. A single lane sits at the
// midpoint.
func NewLaneModel(cfg Config) LaneModel {
	m := LaneModel{xMin: cfg.XMin, xMax: cfg.XMax}
	if !cfg.UseLanes {
		return m
	}
	n := max(cfg.LaneCount, 1)
	m.lanes = make([]float64, n)
	for i := range n {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		m.lanes[i] = cfg.XMin + t*(cfg.XMax-cfg.XMin)
	}
	return m
}

// Freeform reports whether X is sampled continuously instead of from lanes.
func (m LaneModel) Freeform() bool { return m.lanes == nil }

// Lanes returns a copy of the lane coordinates, or nil in freeform mode.
func (m LaneModel) Lanes() []float64 {
	if m.lanes == nil {
		return nil
	}
	return append([]float64(nil), m.lanes...)
}

// PickX chooses a lateral position with a single draw from d.
func (m LaneModel) PickX(d Drawer) float64 {
	if m.Freeform() {
		return uniform(d, m.xMin, m.xMax)
	}
	i := int(d.Float64() * float64(len(m.lanes)))
	return m.lanes[min(max(i, 0), len(m.lanes)-1)]
}

// LaneIndex returns the index of the lane at exactly x, or -1.
func (m LaneModel) LaneIndex(x float64) int {
	for i, l := range m.lanes {
		if l == x {
			return i
		}
	}
	return -1
}
