package track

import "github.com/matzehuels/trackgen/pkg/errors"

// DebugPadSlot marks a record that does not belong to the slot sequence.
const DebugPadSlot = -1

// DebugPad returns a single jump pad at mid-track on the centre lane, or at
// x = 0 on a freeform track. It is meant for checking pad tuning in a level
// without running the generator; it ignores the registry and consumes no
// random draws.
//
// The pad sits at the midpoint of [StartZ, EndZ], pulled back to at least
// one unit before EndZ but never before StartZ.
func DebugPad(cfg Config) (PlacementRecord, error) {
	cfg, _, err := cfg.Normalize()
	if err != nil {
		return PlacementRecord{}, err
	}
	if !cfg.Resources.Has(Pad) {
		return PlacementRecord{}, errors.New(errors.ErrCodeNotFound, "pad resource missing")
	}

	x := 0.0
	if lanes := NewLaneModel(cfg).Lanes(); len(lanes) > 0 {
		x = lanes[len(lanes)/2]
	}
	z := min((cfg.StartZ+cfg.EndZ)/2, cfg.EndZ-1)
	z = max(z, cfg.StartZ)

	return PlacementRecord{
		Slot:     DebugPadSlot,
		Type:     Pad,
		Position: Vec3{X: x, Y: cfg.Types.Pad.Height, Z: z},
	}, nil
}
