// Package io reads and writes trackgen's file formats.
//
// # Config Files
//
// Generation configs are TOML (preferred) or JSON. Every key is optional:
// decoding starts from [track.DefaultConfig] and overrides only the keys
// present in the file. Unknown TOML keys are rejected so typos do not pass
// silently.
//
//	element_count = 40
//	end_z = 400.0
//	min_spacing = 6.0
//	max_spacing = 12.0
//	force_type_every_n = 5
//	forced_type = "pad"
//
//	[types.platform]
//	half_extent = { x = 1.0, z = 3.0 }
//	height = 1.5
//
//	[resources]
//	interactive_pad = false
//
// # Run Files
//
// A generated run is written as indented JSON containing its ID, seed,
// config and result, so it can be re-rendered or inspected later:
//
//	{
//	  "id": "6f1c...",
//	  "seed": 42,
//	  "config": { ... },
//	  "result": {
//	    "records": [{"slot": 0, "type": "obstacle", "position": {"x": -3, "y": 0.5, "z": 8.1}}],
//	    "counts": {"obstacle": 1},
//	    "stats": { ... }
//	  }
//	}
package io
