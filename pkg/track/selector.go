package track

// TypeSelector picks the content type for a slot.
//
// Chances are taken in priority order pad, interactive pad, platform. Each is
// clamped to [0, 1] and then to whatever mass the earlier types left, so the
// cumulative bounds never pass 1 and obstacle keeps a non-negative remainder.
type TypeSelector struct {
	bounds     [3]float64
	order      [3]ContentType
	tinyChance float64
	everyN     int
	forced     ContentType
}

// NewTypeSelector builds a selector from the chances and forced-type rule in cfg.
func NewTypeSelector(cfg Config) TypeSelector {
	s := TypeSelector{
		order:      [3]ContentType{Pad, InteractivePad, Platform},
		tinyChance: clamp01(cfg.TinyChance),
		everyN:     max(cfg.ForceTypeEveryN, 0),
		forced:     cfg.ForcedType,
	}
	cum := 0.0
	for i, p := range []float64{cfg.PadChance, cfg.InteractivePadChance, cfg.PlatformChance} {
		cum += min(clamp01(p), 1-cum)
		s.bounds[i] = cum
	}
	return s
}

// Probabilities returns the effective probability of each type after
// clamping. Obstacle and TinyObstacle split the remainder by TinyChance.
func (s TypeSelector) Probabilities() map[ContentType]float64 {
	p := make(map[ContentType]float64, len(ContentTypes))
	prev := 0.0
	for i, t := range s.order {
		p[t] = s.bounds[i] - prev
		prev = s.bounds[i]
	}
	rest := 1 - prev
	p[TinyObstacle] = rest * s.tinyChance
	p[Obstacle] = rest - p[TinyObstacle]
	return p
}

// Forced reports whether slot is covered by the forced-type rule.
func (s TypeSelector) Forced(slot int) bool {
	return s.everyN > 0 && (slot+1)%s.everyN == 0
}

// Pick returns the type for slot. Forced slots consume no draws. Otherwise
// one draw selects the type and, when that type is obstacle, a second draw
// decides the tiny substitution.
//
// Skipping the draw on forced slots means the random stream differs from a
// selector that draws a type and then overrides it: the same seed yields a
// different track once any slot is forced.
func (s TypeSelector) Pick(slot int, d Drawer) ContentType {
	if s.Forced(slot) {
		return s.forced
	}
	r := d.Float64()
	for i, b := range s.bounds {
		if r < b {
			return s.order[i]
		}
	}
	if d.Float64() < s.tinyChance {
		return TinyObstacle
	}
	return Obstacle
}
