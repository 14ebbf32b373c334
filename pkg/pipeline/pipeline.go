// Package pipeline provides the generate → render pipeline for trackgen.
//
// This package implements the complete pipeline that the CLI and the HTTP
// server share, so both apply the same defaults, caching and archiving.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: normalize the configuration and run the placement engine
//  2. Render: draw previews of the run (SVG, PNG, PDF) or encode it as JSON
//
// Generation is deterministic in (normalized config, seed), so a generated
// run is cached under that pair and a repeated request returns the same run,
// ID included.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ConfigPath: "track.toml",
//	    Seed:       7,
//	    Formats:    []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	r, err := runner.Generate(ctx, opts)
//	artifacts, err := runner.Render(ctx, r, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgen/pkg/cache"
	"github.com/matzehuels/trackgen/pkg/errors"
	trackio "github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/render"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/track"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultSeed is used when Options.Seed is zero.
const DefaultSeed = track.DefaultSeed

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Config  *track.Config `json:"config,omitempty"`
	Seed    uint64        `json:"seed,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	ShowMargins bool     `json:"show_margins,omitempty"`

	// Runtime options (not serialized)
	ConfigPath string      `json:"-"`
	Logger     *log.Logger `json:"-"`
	Sink       track.Sink  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Run is the generated run.
	Run *run.Run

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate loads the configuration and applies generation defaults.
// An explicit Config wins over ConfigPath; with neither, the default config
// is used.
func (o *Options) ValidateForGenerate() error {
	if o.Config == nil {
		cfg := track.DefaultConfig()
		if o.ConfigPath != "" {
			var err error
			if cfg, err = trackio.ReadConfig(o.ConfigPath); err != nil {
				return err
			}
		}
		o.Config = &cfg
	}
	if _, _, err := o.Config.Normalize(); err != nil {
		return err
	}
	o.SetGenerateDefaults()
	return nil
}

// SetGenerateDefaults sets default values for generation.
func (o *Options) SetGenerateDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = render.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NormalizedConfig returns the normalized form of o.Config.
// ValidateForGenerate must have succeeded first.
func (o *Options) NormalizedConfig() (track.Config, error) {
	if o.Config == nil {
		return track.Config{}, fmt.Errorf("options not validated")
	}
	cfg, _, err := o.Config.Normalize()
	return cfg, err
}

// RenderOptions returns the preview options for o.
func (o *Options) RenderOptions() []render.Option {
	opts := []render.Option{render.WithScale(o.Scale)}
	if o.ShowMargins {
		opts = append(opts, render.WithMargins())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Scale:       o.Scale,
		ShowMargins: o.ShowMargins,
	}
}
