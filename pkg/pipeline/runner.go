package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgen/pkg/cache"
	trackio "github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/observability"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/storage"
	"github.com/matzehuels/trackgen/pkg/track"
)

// Runner encapsulates pipeline execution with caching and archiving.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its backends - it doesn't keep
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  storage.Store // optional; nil disables archiving
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, store storage.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  store,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	genStart := time.Now()
	rn, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Run = rn
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated track",
		"run", rn.ID,
		"placed", rn.Placed(),
		"skipped", len(rn.Result.Stats.SkippedSlots),
		"cached", genHit,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, rn, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a run with caching and returns cache hit info.
// The run is archived in the store when one is configured.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (rn *run.Run, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	cfg, err := opts.NormalizedConfig()
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, cfg.ElementCount, opts.Seed)
	start := time.Now()
	defer func() {
		var outcome observability.GenerateOutcome
		if rn != nil {
			outcome = observability.GenerateOutcome{
				Placed:     rn.Placed(),
				Skipped:    len(rn.Result.Stats.SkippedSlots),
				Attempts:   rn.Result.Stats.Attempts,
				Terminated: rn.Result.Stats.Terminated,
				Cached:     hit,
			}
		}
		hooks.OnGenerateComplete(ctx, outcome, time.Since(start), err)
	}()

	cacheKey := r.Keyer.ResultKey(cache.ConfigHash(cfg), opts.Seed)

	// A sink must see every record, so it always forces a fresh run.
	useCache := !opts.Refresh && opts.Sink == nil
	if useCache {
		if cached, ok := r.cachedRun(ctx, cacheKey); ok {
			return cached, true, r.archive(ctx, cached)
		}
	}

	engineOpts := []track.Option{
		track.WithSeed(opts.Seed),
		track.WithLogger(opts.Logger),
	}
	if opts.Sink != nil {
		engineOpts = append(engineOpts, track.WithSink(opts.Sink))
	}
	res, err := track.NewEngine(engineOpts...).Generate(*opts.Config)
	if err != nil {
		return nil, false, err
	}
	rn = run.New(cfg, opts.Seed, res)

	if !opts.Refresh {
		var buf bytes.Buffer
		if err := trackio.WriteRun(&buf, rn); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.ResultTTL); err != nil {
				r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "result", buf.Len())
			}
		}
	}
	return rn, false, r.archive(ctx, rn)
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*run.Run, error) {
	rn, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return rn, err
}

func (r *Runner) cachedRun(ctx context.Context, key string) (*run.Run, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	rn, err := trackio.ReadRun(bytes.NewReader(data))
	if err != nil {
		// Unreadable entries are regenerated and overwritten.
		r.Logger.Debug("discarding cached run", "key", key, "error", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return rn, true
}

func (r *Runner) archive(ctx context.Context, rn *run.Run) error {
	if r.Store == nil {
		return nil
	}
	if err := r.Store.Save(ctx, rn); err != nil {
		return fmt.Errorf("archive run %s: %w", rn.ID, err)
	}
	return nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rn *run.Run, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	var runData bytes.Buffer
	if err := trackio.WriteRun(&runData, rn); err != nil {
		return nil, false, fmt.Errorf("serialize run for cache key: %w", err)
	}
	runHash := cache.Hash(runData.Bytes())

	// Try to get all formats from cache
	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(runHash, opts.ArtifactKeyOpts(format))
		data, ok, err := r.Cache.Get(ctx, key)
		if err != nil || !ok {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	rendered, err := Render(rn, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(runHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, rn *run.Run, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, rn, opts)
	return artifacts, err
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
