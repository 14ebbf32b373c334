package pipeline

import (
	"bytes"
	"fmt"

	trackio "github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/render"
	"github.com/matzehuels/trackgen/pkg/run"
)

// Render generates output artifacts for r in the requested formats.
func Render(r *run.Run, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = trackio.WriteRun(&buf, r)
			data = buf.Bytes()
		default:
			data, err = render.Render(r, format, opts.RenderOptions()...)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
