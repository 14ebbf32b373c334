package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgen/pkg/cache"
	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/spawn"
	"github.com/matzehuels/trackgen/pkg/storage"
	"github.com/matzehuels/trackgen/pkg/track"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should validate: %v", err)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Config == nil || opts.Config.ElementCount != track.DefaultConfig().ElementCount {
		t.Errorf("Config = %+v, want defaults", opts.Config)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Seed: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	cfg := opts.Config
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Config != cfg || opts.Seed != 3 {
		t.Error("options changed on second call")
	}
}

func TestOptionsConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.toml")
	if err := os.WriteFile(path, []byte("element_count = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{ConfigPath: path}
	if err := opts.ValidateForGenerate(); err != nil {
		t.Fatalf("ValidateForGenerate: %v", err)
	}
	if opts.Config.ElementCount != 7 {
		t.Errorf("ElementCount = %d, want 7", opts.Config.ElementCount)
	}

	// explicit config wins
	cfg := track.DefaultConfig()
	cfg.ElementCount = 2
	opts = Options{ConfigPath: path, Config: &cfg}
	if err := opts.ValidateForGenerate(); err != nil {
		t.Fatal(err)
	}
	if opts.Config.ElementCount != 2 {
		t.Errorf("ElementCount = %d, want 2", opts.Config.ElementCount)
	}
}

func TestOptionsRejectsInvalidConfig(t *testing.T) {
	cfg := track.DefaultConfig()
	cfg.ForcedType = track.ContentType(99)
	opts := Options{Config: &cfg}
	if err := opts.ValidateForGenerate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{Scale: -1}
	opts.SetRenderDefaults()
	if opts.Scale <= 0 {
		t.Errorf("Scale = %v, want default", opts.Scale)
	}
}

func newTestRunner(t *testing.T, store storage.Store) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, store, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
}

func TestRunnerGenerateCaches(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := newTestRunner(t, store)

	first, hit, err := r.GenerateWithCacheInfo(ctx, Options{Seed: 11})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if hit {
		t.Error("first run reported a cache hit")
	}

	second, hit, err := r.GenerateWithCacheInfo(ctx, Options{Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second run missed the cache")
	}
	if second.ID != first.ID || second.Placed() != first.Placed() {
		t.Errorf("cached run %s (%d placed) differs from %s (%d placed)",
			second.ID, second.Placed(), first.ID, first.Placed())
	}

	refreshed, hit, err := r.GenerateWithCacheInfo(ctx, Options{Seed: 11, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit || refreshed.ID == first.ID {
		t.Error("Refresh did not regenerate")
	}
	if refreshed.Placed() != first.Placed() {
		t.Error("regeneration with the same seed is not deterministic")
	}

	if _, err := store.Get(ctx, first.ID); err != nil {
		t.Errorf("run not archived: %v", err)
	}
}

func TestRunnerGenerateDifferentSeeds(t *testing.T) {
	r := newTestRunner(t, nil)
	a, err := r.Generate(context.Background(), Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Generate(context.Background(), Options{Seed: 2})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("different seeds shared a cached run")
	}
}

func TestRunnerGenerateWithSink(t *testing.T) {
	r := newTestRunner(t, nil)
	var got spawn.Collector
	rn, err := r.Generate(context.Background(), Options{
		Seed: 4,
		Sink: spawn.AsSink(context.Background(), &got),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Records()) != rn.Placed() {
		t.Errorf("sink saw %d records, run has %d", len(got.Records()), rn.Placed())
	}
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t, nil)
	opts := Options{Seed: 5, Formats: []string{FormatSVG, FormatJSON}}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing")
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), res.Run.ID) {
		t.Error("json artifact does not carry the run id")
	}
	if res.CacheInfo.GenerateHit || res.CacheInfo.RenderHit {
		t.Errorf("first execute hit the cache: %+v", res.CacheInfo)
	}

	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.GenerateHit || !res.CacheInfo.RenderHit {
		t.Errorf("second execute missed the cache: %+v", res.CacheInfo)
	}
}

func TestRunnerExecuteInvalidFormat(t *testing.T) {
	r := newTestRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}
