// Package pkg provides the core libraries for trackgen, a procedural content
// generator for endless-runner tracks.
//
// # Overview
//
// Trackgen places obstacles, jump pads, interactive pads and elevated
// platforms along the forward (Z) axis of a track. Placement uses lane
// snapping or freeform lateral sampling, randomized spacing, per-type
// probability weighting and a hard rule that no two footprints overlap.
//
// # Architecture
//
// The typical data flow:
//
//	Config (TOML / JSON)
//	         ↓
//	    [track] package (normalize, place records)
//	         ↓
//	    [run] package (ID, seed, normalized config, result)
//	         ↓
//	    [render] / [stats] / [spawn] packages
//	         ↓
//	    SVG/PDF/PNG/JSON output, histograms, spawned entities
//
// # Quick Start
//
//	import "github.com/matzehuels/trackgen/pkg/track"
//
//	cfg := track.DefaultConfig()
//	cfg.ElementCount = 100
//	res, err := track.NewEngine(track.WithSeed(42)).Generate(cfg)
//	for _, rec := range res.Records {
//	    fmt.Println(rec.Slot, rec.Type, rec.Position)
//	}
//
// # Main Packages
//
// [track] - Lane model, type selector, footprint registry and the placement
// engine. Everything else is tooling around it.
//
// [pipeline] - Generate and render with caching and archiving. Used by the
// CLI and the HTTP server so both behave the same.
//
// [cache] - File, Redis and null caches keyed by config hash and seed.
//
// [storage] - Run archive: memory, file and MongoDB backends.
//
// [server] - chi HTTP API over the pipeline.
//
// [render] - Top-down previews drawn with tdewolff/canvas.
//
// [stats] - Observed type shares, spacing gaps and lane occupancy.
//
// [io] - Config and run codecs.
//
// [track]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/track
// [render]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/render
// [stats]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/stats
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/storage
// [server]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/server
// [io]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/io
//
// [run]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/run
// [spawn]: https://pkg.go.dev/github.com/matzehuels/trackgen/pkg/spawn
package pkg
