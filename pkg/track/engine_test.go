package track

import (
	"bytes"
	stderrors "errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/stat/distuv"
)

// flatConfig places obstacles on a single zero-width lane pair with fixed
// spacing and no random content.
func flatConfig() Config {
	cfg := DefaultConfig()
	cfg.XMin, cfg.XMax = 0, 0
	cfg.LaneCount = 2
	cfg.PadChance, cfg.InteractivePadChance, cfg.PlatformChance, cfg.TinyChance = 0, 0, 0, 0
	cfg.MinSpacing, cfg.MaxSpacing = 10, 10
	return cfg
}

func zs(recs []PlacementRecord) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.Position.Z
	}
	return out
}

func TestGenerateFixedSpacing(t *testing.T) {
	cfg := flatConfig()
	cfg.ElementCount = 5
	cfg.StartZ, cfg.EndZ = 0, 100

	res, err := NewEngine(WithSeed(1)).Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if diff := cmp.Diff([]float64{10, 20, 30, 40, 50}, zs(res.Records)); diff != "" {
		t.Errorf("z positions mismatch (-want +got):\n%s", diff)
	}
	for _, r := range res.Records {
		if r.Type != Obstacle {
			t.Errorf("slot %d: type %v, want obstacle", r.Slot, r.Type)
		}
		if r.Position.X != 0 || r.Position.Y != cfg.Types.Obstacle.Height {
			t.Errorf("slot %d: position %+v", r.Slot, r.Position)
		}
	}
	if res.Count(Obstacle) != 5 {
		t.Errorf("Count(obstacle) = %d, want 5", res.Count(Obstacle))
	}
	if res.Stats.Terminated {
		t.Error("run should not terminate early")
	}
	if res.Stats.SlotsProcessed != 5 {
		t.Errorf("SlotsProcessed = %d, want 5", res.Stats.SlotsProcessed)
	}
}

func TestGenerateStopsPastEnd(t *testing.T) {
	cfg := flatConfig()
	cfg.ElementCount = 10
	cfg.StartZ, cfg.EndZ = 0, 15

	res, err := NewEngine().Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if diff := cmp.Diff([]float64{10}, zs(res.Records)); diff != "" {
		t.Errorf("z positions mismatch (-want +got):\n%s", diff)
	}
	if !res.Stats.Terminated {
		t.Error("expected early termination")
	}
	if res.Stats.SlotsProcessed != 1 {
		t.Errorf("SlotsProcessed = %d, want 1", res.Stats.SlotsProcessed)
	}
	if res.Stats.FinalZ != 20 {
		t.Errorf("FinalZ = %v, want 20", res.Stats.FinalZ)
	}
}

func TestGenerateRetriesFurtherAlong(t *testing.T) {
	cfg := flatConfig()
	cfg.ElementCount = 2
	cfg.MinSpacing, cfg.MaxSpacing = 1, 1
	cfg.Margin = 0.2
	cfg.MaxAttemptsPerSlot = 3

	var attempts []Attempt
	res, err := NewEngine(WithObserver(func(a Attempt) { attempts = append(attempts, a) })).Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Slot 1 first lands at z=2, within 0.5+0.5+0.2 of z=1, and retries at z=3.
	if diff := cmp.Diff([]float64{1, 3}, zs(res.Records)); diff != "" {
		t.Errorf("z positions mismatch (-want +got):\n%s", diff)
	}
	want := []Attempt{
		{Slot: 0, Number: 1, Z: 1, Type: Obstacle, Accepted: true},
		{Slot: 1, Number: 1, Z: 2, Type: Obstacle, Accepted: false},
		{Slot: 1, Number: 2, Z: 3, Type: Obstacle, Accepted: true},
	}
	if diff := cmp.Diff(want, attempts); diff != "" {
		t.Errorf("attempts mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.Rejected != 1 || res.Stats.Attempts != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestGenerateSkipsExhaustedSlot(t *testing.T) {
	cfg := flatConfig()
	cfg.ElementCount = 3
	cfg.MinSpacing, cfg.MaxSpacing = 1, 1
	cfg.Types.Obstacle.HalfExtent = Vec2{X: 0.5, Z: 2}
	cfg.Margin = 0
	cfg.MaxAttemptsPerSlot = 2

	res, err := NewEngine().Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Footprints need 4 units of separation: slot 0 at z=1, slot 1 tries
	// z=2,3 and is skipped, slot 2 tries z=4 (rejected) then z=5.
	if diff := cmp.Diff([]float64{1, 5}, zs(res.Records)); diff != "" {
		t.Errorf("z positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, res.Stats.SkippedSlots); diff != "" {
		t.Errorf("skipped slots mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.SlotsProcessed != 3 {
		t.Errorf("SlotsProcessed = %d, want 3", res.Stats.SlotsProcessed)
	}
}

func TestGenerateCertainPad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElementCount = 40
	cfg.EndZ = 1000
	cfg.PadChance, cfg.InteractivePadChance, cfg.PlatformChance = 1, 0, 0

	res, err := NewEngine(WithSeed(3)).Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Records) == 0 {
		t.Fatal("no records placed")
	}
	for _, r := range res.Records {
		if r.Type != Pad {
			t.Errorf("slot %d: type %v, want pad", r.Slot, r.Type)
		}
	}
	if res.Count(Pad) != len(res.Records) {
		t.Errorf("Count(pad) = %d, want %d", res.Count(Pad), len(res.Records))
	}
}

func TestGenerateForcedEveryThird(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElementCount = 30
	cfg.EndZ = 1000
	cfg.PadChance = 0
	cfg.ForceTypeEveryN = 3
	cfg.ForcedType = Pad

	res, err := NewEngine(WithSeed(5)).Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	pads := 0
	for _, r := range res.Records {
		forced := (r.Slot+1)%3 == 0
		if forced && r.Type != Pad {
			t.Errorf("slot %d: type %v, want forced pad", r.Slot, r.Type)
		}
		if !forced && r.Type == Pad {
			t.Errorf("slot %d: unexpected pad with pad_chance=0", r.Slot)
		}
		if r.Type == Pad {
			pads++
		}
	}
	if pads == 0 {
		t.Error("no forced pads placed")
	}
}

func TestGenerateMissingResourceFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElementCount = 20
	cfg.EndZ = 1000
	cfg.PlatformChance = 1
	cfg.Resources.Platform = false

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	res, err := NewEngine(WithLogger(logger)).Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Count(Platform) != 0 {
		t.Errorf("placed %d platforms without a resource", res.Count(Platform))
	}
	if res.Count(Obstacle)+res.Count(TinyObstacle) != len(res.Records) || len(res.Records) == 0 {
		t.Errorf("counts = %v, records = %d", res.Counts, len(res.Records))
	}
	if n := strings.Count(buf.String(), "resource missing"); n != 1 {
		t.Errorf("logged missing resource %d times, want once", n)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a, err := NewEngine(WithSeed(11)).Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEngine(WithSeed(11)).Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different results (-a +b):\n%s", diff)
	}
	c, err := NewEngine(WithSeed(12)).Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(zs(a.Records), zs(c.Records)) {
		t.Error("different seeds produced identical tracks")
	}
}

func TestGenerateSinkError(t *testing.T) {
	boom := stderrors.New("boom")
	sink := SinkFunc(func(PlacementRecord) error { return boom })
	_, err := NewEngine(WithSink(sink)).Generate(DefaultConfig())
	if !stderrors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want wrapped sink error", err)
	}
}

func TestGenerateSinkSeesRecordsInOrder(t *testing.T) {
	var got []PlacementRecord
	sink := SinkFunc(func(r PlacementRecord) error { got = append(got, r); return nil })
	res, err := NewEngine(WithSink(sink), WithSeed(2)).Generate(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(res.Records, got); diff != "" {
		t.Errorf("sink records mismatch (-result +sink):\n%s", diff)
	}
}

func TestGenerateZeroElements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElementCount = -3
	res, err := NewEngine().Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 0 || res.Stats.Attempts != 0 {
		t.Errorf("expected empty run, got %+v", res.Stats)
	}
}

func TestGenerateInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElementCount = 80
	cfg.EndZ = 600
	cfg.MinSpacing, cfg.MaxSpacing = 0.5, 4
	cfg.ForceTypeEveryN = 4
	cfg.ForcedType = InteractivePad
	cfg.MaxAttemptsPerSlot = 4

	lanes := NewLaneModel(cfg)
	for seed := uint64(1); seed <= 40; seed++ {
		var attempts []Attempt
		eng := NewEngine(WithSeed(seed), WithObserver(func(a Attempt) { attempts = append(attempts, a) }))
		res, err := eng.Generate(cfg)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		// No two margin-inflated footprints intersect.
		fps := res.Footprints(cfg.Types)
		for i := range fps {
			for j := i + 1; j < len(fps); j++ {
				if fps[i].Overlaps(fps[j], cfg.Margin) {
					t.Fatalf("seed %d: records %d and %d overlap", seed, i, j)
				}
			}
		}

		// The cursor never moves backwards, even across rejected attempts.
		perSlot := map[int]int{}
		for i, a := range attempts {
			if i > 0 && a.Z < attempts[i-1].Z {
				t.Fatalf("seed %d: cursor moved back at attempt %d", seed, i)
			}
			perSlot[a.Slot]++
		}
		for slot, n := range perSlot {
			if n > cfg.MaxAttemptsPerSlot {
				t.Fatalf("seed %d: slot %d used %d attempts", seed, slot, n)
			}
		}

		for i, r := range res.Records {
			if r.Position.Z < cfg.StartZ || r.Position.Z > cfg.EndZ {
				t.Fatalf("seed %d: z %v out of bounds", seed, r.Position.Z)
			}
			if i > 0 && r.Position.Z-res.Records[i-1].Position.Z < cfg.MinSpacing-1e-9 {
				t.Fatalf("seed %d: records %d and %d closer than min spacing", seed, i-1, i)
			}
			if lanes.LaneIndex(r.Position.X) < 0 {
				t.Fatalf("seed %d: x %v is not a lane", seed, r.Position.X)
			}
			if (r.Slot+1)%cfg.ForceTypeEveryN == 0 && r.Type != InteractivePad {
				t.Fatalf("seed %d: slot %d type %v, want forced interactive pad", seed, r.Slot, r.Type)
			}
		}
	}
}

func TestGenerateDistribution(t *testing.T) {
	cfg := Config{
		ElementCount:         20000,
		StartZ:               0,
		EndZ:                 1e9,
		MinSpacing:           1,
		MaxSpacing:           1,
		XMin:                 -1,
		XMax:                 1,
		LaneCount:            2,
		PadChance:            0.2,
		InteractivePadChance: 0.1,
		PlatformChance:       0.3,
		TinyChance:           0.25,
		MaxAttemptsPerSlot:   1,
		ForcedType:           Pad,
		Resources:            AllResources(),
	}

	res, err := NewEngine(WithSeed(2024)).Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != cfg.ElementCount {
		t.Fatalf("placed %d of %d", len(res.Records), cfg.ElementCount)
	}

	want := NewTypeSelector(cfg).Probabilities()
	n := float64(len(res.Records))
	chi2 := 0.0
	for _, typ := range ContentTypes {
		exp := want[typ] * n
		obs := float64(res.Count(typ))
		chi2 += (obs - exp) * (obs - exp) / exp
		if got := obs / n; math.Abs(got-want[typ]) > 0.02 {
			t.Errorf("frequency of %v = %.4f, want %.4f", typ, got, want[typ])
		}
	}
	crit := distuv.ChiSquared{K: float64(len(ContentTypes) - 1)}.Quantile(0.9999)
	if chi2 > crit {
		t.Errorf("chi-square %.2f exceeds critical value %.2f", chi2, crit)
	}
}

func TestGenerateHugeElementCount(t *testing.T) {
	cfg := flatConfig()
	cfg.ElementCount = math.MaxInt
	cfg.StartZ, cfg.EndZ = 0, 15

	res, err := NewEngine().Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Records) != 1 || !res.Stats.Terminated {
		t.Errorf("records = %d, terminated = %v; want 1 record and early termination",
			len(res.Records), res.Stats.Terminated)
	}
}

func TestRecordCapacity(t *testing.T) {
	tests := []struct {
		name  string
		count int
		endZ  float64
		want  int
	}{
		{"bounded by count", 5, 1000, 5},
		{"bounded by track length", 1000, 45, 5},
		{"bounded by prealloc limit", math.MaxInt, 1e9, maxRecordPrealloc},
		{"empty", 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := flatConfig()
			cfg.ElementCount = tt.count
			cfg.StartZ, cfg.EndZ = 0, tt.endZ
			if got := recordCapacity(cfg); got != tt.want {
				t.Errorf("recordCapacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateLogsSummary(t *testing.T) {
	tests := []struct {
		name string
		endZ float64
	}{
		{"completed", 1000},
		{"terminated", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := flatConfig()
			cfg.ElementCount = 5
			cfg.StartZ, cfg.EndZ = 0, tt.endZ

			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
			res, err := NewEngine(WithLogger(logger)).Generate(cfg)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			out := buf.String()
			if n := strings.Count(out, "track generated"); n != 1 {
				t.Fatalf("summary logged %d times:\n%s", n, out)
			}
			want := "obstacles=" + strconv.Itoa(len(res.Records))
			if !strings.Contains(out, want) {
				t.Errorf("summary %q lacks %q", out, want)
			}
		})
	}
}
