package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/matzehuels/trackgen/pkg/run"
)

// Render draws r in the given format.
func Render(r *run.Run, format string, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(r, opts...)
	case FormatPNG:
		return RenderPNG(r, opts...)
	case FormatPDF:
		return RenderPDF(r, opts...)
	default:
		return nil, ValidateFormat(format)
	}
}

// RenderSVG draws r as SVG.
func RenderSVG(r *run.Run, opts ...Option) ([]byte, error) {
	if err := check(r); err != nil {
		return nil, err
	}
	c := draw(r, newOptions(opts))

	var buf bytes.Buffer
	w := svg.New(&buf, c.W, c.H, nil)
	c.RenderTo(w)
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF draws r as a single-page PDF.
func RenderPDF(r *run.Run, opts ...Option) ([]byte, error) {
	if err := check(r); err != nil {
		return nil, err
	}
	c := draw(r, newOptions(opts))

	var buf bytes.Buffer
	w := pdf.New(&buf, c.W, c.H, nil)
	c.RenderTo(w)
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG rasterizes r.
func RenderPNG(r *run.Run, opts ...Option) ([]byte, error) {
	if err := check(r); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	c := draw(r, o)

	img := rasterizer.Draw(c, canvas.DPMM(o.dpmm), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func check(r *run.Run) error {
	if r == nil || r.Result == nil {
		return fmt.Errorf("render: run has no result")
	}
	return nil
}
