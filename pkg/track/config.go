package track

import (
	"fmt"
	"math"
	"reflect"

	"github.com/matzehuels/trackgen/pkg/errors"
)

// Defaults used by DefaultConfig and by normalization clamps.
const (
	DefaultElementCount       = 30
	DefaultStartZ             = 0.0
	DefaultEndZ               = 300.0
	DefaultMinSpacing         = 6.0
	DefaultMaxSpacing         = 12.0
	DefaultLaneCount          = 3
	DefaultMaxAttemptsPerSlot = 5
	DefaultMargin             = 0.2
	DefaultEdgePadding        = 0.4

	// MinSpacingFloor is the smallest spacing normalization allows. Spacing
	// must be positive for the cursor to make forward progress.
	MinSpacingFloor = 0.01

	// MinLaneCount is the smallest lane count normalization allows.
	MinLaneCount = 2
)

// TypeSpec holds the geometry of one content type.
type TypeSpec struct {
	// HalfExtent is the half size of the ground footprint on X and Z.
	HalfExtent Vec2 `json:"half_extent" toml:"half_extent"`
	// Height is the Y coordinate the element is placed at.
	Height float64 `json:"height" toml:"height"`
}

// TypeTable maps every content type to its geometry.
type TypeTable struct {
	Obstacle       TypeSpec `json:"obstacle" toml:"obstacle"`
	TinyObstacle   TypeSpec `json:"tiny_obstacle" toml:"tiny_obstacle"`
	Pad            TypeSpec `json:"pad" toml:"pad"`
	InteractivePad TypeSpec `json:"interactive_pad" toml:"interactive_pad"`
	Platform       TypeSpec `json:"platform" toml:"platform"`
}

// Spec returns the geometry for t. Unknown types get the obstacle geometry.
func (tt TypeTable) Spec(t ContentType) TypeSpec {
	switch t {
	case TinyObstacle:
		return tt.TinyObstacle
	case Pad:
		return tt.Pad
	case InteractivePad:
		return tt.InteractivePad
	case Platform:
		return tt.Platform
	default:
		return tt.Obstacle
	}
}

func (tt *TypeTable) spec(t ContentType) *TypeSpec {
	switch t {
	case TinyObstacle:
		return &tt.TinyObstacle
	case Pad:
		return &tt.Pad
	case InteractivePad:
		return &tt.InteractivePad
	case Platform:
		return &tt.Platform
	default:
		return &tt.Obstacle
	}
}

// Resources records which content types have a renderable asset behind them.
// The obstacle type is always available and has no flag.
type Resources struct {
	Pad            bool `json:"pad" toml:"pad"`
	InteractivePad bool `json:"interactive_pad" toml:"interactive_pad"`
	Platform       bool `json:"platform" toml:"platform"`
	TinyObstacle   bool `json:"tiny_obstacle" toml:"tiny_obstacle"`
}

// AllResources returns a Resources value with every asset present.
func AllResources() Resources {
	return Resources{Pad: true, InteractivePad: true, Platform: true, TinyObstacle: true}
}

// Has reports whether a resource exists for t.
func (r Resources) Has(t ContentType) bool {
	switch t {
	case Pad:
		return r.Pad
	case InteractivePad:
		return r.InteractivePad
	case Platform:
		return r.Platform
	case TinyObstacle:
		return r.TinyObstacle
	default:
		return true
	}
}

// Config is the input of a generation run. It is treated as immutable:
// [Config.Normalize] returns a corrected copy rather than editing in place.
type Config struct {
	ElementCount int     `json:"element_count" toml:"element_count"`
	StartZ       float64 `json:"start_z" toml:"start_z"`
	EndZ         float64 `json:"end_z" toml:"end_z"`
	MinSpacing   float64 `json:"min_spacing" toml:"min_spacing"`
	MaxSpacing   float64 `json:"max_spacing" toml:"max_spacing"`

	// Usable lateral range.
	XMin      float64 `json:"x_min" toml:"x_min"`
	XMax      float64 `json:"x_max" toml:"x_max"`
	UseLanes  bool    `json:"use_lanes" toml:"use_lanes"`
	LaneCount int     `json:"lane_count" toml:"lane_count"`

	// TrackWidth, when positive, replaces XMin and XMax with the width of a
	// track centred on x = 0, inset by EdgePadding on both sides.
	TrackWidth  float64 `json:"track_width" toml:"track_width"`
	EdgePadding float64 `json:"edge_padding" toml:"edge_padding"`

	Types TypeTable `json:"types" toml:"types"`

	PadChance            float64 `json:"pad_chance" toml:"pad_chance"`
	InteractivePadChance float64 `json:"interactive_pad_chance" toml:"interactive_pad_chance"`
	PlatformChance       float64 `json:"platform_chance" toml:"platform_chance"`
	// TinyChance is the probability that an obstacle becomes a tiny obstacle.
	TinyChance float64 `json:"tiny_chance" toml:"tiny_chance"`

	Margin             float64 `json:"margin" toml:"margin"`
	MaxAttemptsPerSlot int     `json:"max_attempts_per_slot" toml:"max_attempts_per_slot"`

	// ForceTypeEveryN forces ForcedType on every Nth slot. Zero disables it.
	ForceTypeEveryN int         `json:"force_type_every_n" toml:"force_type_every_n"`
	ForcedType      ContentType `json:"forced_type" toml:"forced_type"`

	Resources Resources `json:"resources" toml:"resources"`
}

// DefaultConfig returns a three-lane configuration with every resource present.
func DefaultConfig() Config {
	return Config{
		ElementCount: DefaultElementCount,
		StartZ:       DefaultStartZ,
		EndZ:         DefaultEndZ,
		MinSpacing:   DefaultMinSpacing,
		MaxSpacing:   DefaultMaxSpacing,
		XMin:         -3,
		XMax:         3,
		UseLanes:     true,
		LaneCount:    DefaultLaneCount,
		EdgePadding:  DefaultEdgePadding,
		Types: TypeTable{
			Obstacle:       TypeSpec{HalfExtent: Vec2{X: 0.5, Z: 0.5}, Height: 0.5},
			TinyObstacle:   TypeSpec{HalfExtent: Vec2{X: 0.3, Z: 0.3}, Height: 0.25},
			Pad:            TypeSpec{HalfExtent: Vec2{X: 0.6, Z: 0.6}, Height: 0.05},
			InteractivePad: TypeSpec{HalfExtent: Vec2{X: 0.6, Z: 0.6}, Height: 0.05},
			Platform:       TypeSpec{HalfExtent: Vec2{X: 1.0, Z: 3.0}, Height: 1.5},
		},
		PadChance:            0.15,
		InteractivePadChance: 0.05,
		PlatformChance:       0.1,
		TinyChance:           0.2,
		Margin:               DefaultMargin,
		MaxAttemptsPerSlot:   DefaultMaxAttemptsPerSlot,
		ForcedType:           Pad,
		Resources:            AllResources(),
	}
}

// Adjustment records one correction made by [Config.Normalize].
type Adjustment struct {
	Field string
	From  any
	To    any
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s: %v -> %v", a.Field, a.From, a.To)
}

// Normalize returns a copy of c with out-of-range values clamped into range,
// together with the list of corrections made. Range problems never fail a
// run. Non-finite numbers and an unknown forced type cannot be corrected and
// are reported as INVALID_CONFIG errors.
//
// A positive TrackWidth is resolved here: the returned config carries the
// derived XMin and XMax.
func (c Config) Normalize() (Config, []Adjustment, error) {
	if err := c.checkFinite(); err != nil {
		return c, nil, err
	}
	if !c.ForcedType.Valid() {
		return c, nil, errors.New(errors.ErrCodeInvalidConfig, "forced_type: unknown content type %d", int(c.ForcedType))
	}

	n := c
	var adj []Adjustment
	note := func(field string, from, to any) {
		adj = append(adj, Adjustment{Field: field, From: from, To: to})
	}

	if n.ElementCount < 0 {
		note("element_count", n.ElementCount, 0)
		n.ElementCount = 0
	}
	if n.EndZ < n.StartZ {
		note("end_z", n.EndZ, n.StartZ)
		n.EndZ = n.StartZ
	}
	if n.MinSpacing < MinSpacingFloor {
		note("min_spacing", n.MinSpacing, MinSpacingFloor)
		n.MinSpacing = MinSpacingFloor
	}
	if n.MaxSpacing < n.MinSpacing {
		note("max_spacing", n.MaxSpacing, n.MinSpacing)
		n.MaxSpacing = n.MinSpacing
	}
	if n.TrackWidth < 0 {
		note("track_width", n.TrackWidth, 0.0)
		n.TrackWidth = 0
	}
	if n.EdgePadding < 0 {
		note("edge_padding", n.EdgePadding, 0.0)
		n.EdgePadding = 0
	}
	if n.TrackWidth > 0 {
		half := n.TrackWidth / 2
		n.XMin, n.XMax = -half+n.EdgePadding, half-n.EdgePadding
	}
	if n.XMax < n.XMin {
		note("x_range", [2]float64{n.XMin, n.XMax}, [2]float64{n.XMax, n.XMin})
		n.XMin, n.XMax = n.XMax, n.XMin
	}
	if n.LaneCount < MinLaneCount {
		note("lane_count", n.LaneCount, MinLaneCount)
		n.LaneCount = MinLaneCount
	}
	if n.MaxAttemptsPerSlot < 1 {
		note("max_attempts_per_slot", n.MaxAttemptsPerSlot, 1)
		n.MaxAttemptsPerSlot = 1
	}
	if n.Margin < 0 {
		note("margin", n.Margin, 0.0)
		n.Margin = 0
	}
	if n.ForceTypeEveryN < 0 {
		note("force_type_every_n", n.ForceTypeEveryN, 0)
		n.ForceTypeEveryN = 0
	}

	for _, p := range []struct {
		field string
		v     *float64
	}{
		{"pad_chance", &n.PadChance},
		{"interactive_pad_chance", &n.InteractivePadChance},
		{"platform_chance", &n.PlatformChance},
		{"tiny_chance", &n.TinyChance},
	} {
		if v := clamp01(*p.v); v != *p.v {
			note(p.field, *p.v, v)
			*p.v = v
		}
	}

	for _, t := range ContentTypes {
		s := n.Types.spec(t)
		if s.HalfExtent.X < 0 {
			note("types."+t.String()+".half_extent.x", s.HalfExtent.X, 0.0)
			s.HalfExtent.X = 0
		}
		if s.HalfExtent.Z < 0 {
			note("types."+t.String()+".half_extent.z", s.HalfExtent.Z, 0.0)
			s.HalfExtent.Z = 0
		}
	}

	return n, adj, nil
}

// checkFinite rejects NaN and infinite values in any float field, including
// the nested type table.
func (c Config) checkFinite() error {
	return walkFloats(reflect.ValueOf(c), "", func(path string, f float64) error {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: value must be finite, got %v", path, f)
		}
		return nil
	})
}

func walkFloats(v reflect.Value, prefix string, fn func(string, float64) error) error {
	switch v.Kind() {
	case reflect.Float64:
		return fn(prefix, v.Float())
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			name := t.Field(i).Tag.Get("json")
			if prefix != "" {
				name = prefix + "." + name
			}
			if err := walkFloats(v.Field(i), name, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
