package track

import (
	"testing"

	"github.com/matzehuels/trackgen/pkg/errors"
)

func TestDebugPad(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		wantX float64
		wantZ float64
	}{
		{"centre lane mid track", func(c *Config) {}, 0, 150},
		{"even lane count picks upper middle", func(c *Config) { c.LaneCount = 4; c.XMin, c.XMax = 0, 3 }, 2, 150},
		{"freeform", func(c *Config) { c.UseLanes = false; c.XMin, c.XMax = 2, 6 }, 0, 150},
		{"short track pulls back from end", func(c *Config) { c.StartZ, c.EndZ = 0, 1.5 }, 0, 0.5},
		{"empty track stays at start", func(c *Config) { c.StartZ, c.EndZ = 10, 10 }, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			rec, err := DebugPad(cfg)
			if err != nil {
				t.Fatalf("DebugPad() error = %v", err)
			}
			if rec.Type != Pad || rec.Slot != DebugPadSlot {
				t.Errorf("record = %+v, want a pad outside the slot sequence", rec)
			}
			if rec.Position.X != tt.wantX || rec.Position.Z != tt.wantZ {
				t.Errorf("position = (%v, %v), want (%v, %v)", rec.Position.X, rec.Position.Z, tt.wantX, tt.wantZ)
			}
			if rec.Position.Y != cfg.Types.Pad.Height {
				t.Errorf("Y = %v, want pad height %v", rec.Position.Y, cfg.Types.Pad.Height)
			}
		})
	}
}

func TestDebugPadWithoutResource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resources.Pad = false
	if _, err := DebugPad(cfg); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("DebugPad() error = %v, want NOT_FOUND", err)
	}
}
