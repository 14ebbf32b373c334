// Package track generates the playable content of a single endless-runner
// track.
//
// # Overview
//
// A track is a forward (Z) axis between [Config.StartZ] and [Config.EndZ]
// with a usable lateral (X) range. The generator walks the forward axis slot
// by slot and places obstacles, jump pads, interactive pads and platforms
// using rejection sampling:
//
//  1. Advance the forward cursor by a random spacing in [MinSpacing, MaxSpacing]
//  2. Pick a lateral position (one of the lanes, or freeform)
//  3. Pick a content type by weighted draw (or the periodic forced type)
//  4. Accept the candidate if its footprint does not overlap anything placed
//
// A rejected candidate is discarded and the slot retries further along the
// axis, up to [Config.MaxAttemptsPerSlot] times. The cursor never rewinds:
// once it passes EndZ the whole run stops and the records placed so far are
// returned.
//
// # Components
//
//   - [LaneModel]: lateral anchor positions derived from the usable width
//   - [TypeSelector]: weighted content-type draw with forced override
//   - [Registry]: footprints placed so far and the overlap test
//   - [Engine]: the generation loop
//
// # Usage
//
//	cfg := track.DefaultConfig()
//	cfg.ElementCount = 40
//
//	eng := track.NewEngine(track.WithSeed(7), track.WithLogger(logger))
//	res, err := eng.Generate(cfg)
//	if err != nil {
//	    return err
//	}
//	for _, rec := range res.Records {
//	    spawn(rec.Type, rec.Position)
//	}
//
// # Determinism
//
// All randomness comes from the [Drawer] passed with [WithRand] or the PCG
// source created by [WithSeed]. Two runs with the same configuration and seed
// produce identical results. The engine holds no global state, so separate
// engines may run in parallel.
package track
