package render

import "fmt"

// Supported preview formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats lists the preview formats in a stable order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF}

const (
	// DefaultScale is millimetres of page per world unit.
	DefaultScale = 2.0

	// DefaultDPMM is the raster resolution for PNG output.
	DefaultDPMM = 4.0
)

// Option configures rendering.
type Option func(*options)

type options struct {
	scale       float64
	dpmm        float64
	showMargins bool
}

// WithScale sets millimetres per world unit. Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

// WithResolution sets PNG dots per millimetre. Non-positive values are ignored.
func WithResolution(dpmm float64) Option {
	return func(o *options) {
		if dpmm > 0 {
			o.dpmm = dpmm
		}
	}
}

// WithMargins outlines the margin-inflated footprint of every element.
func WithMargins() Option {
	return func(o *options) { o.showMargins = true }
}

func newOptions(opts []Option) options {
	o := options{scale: DefaultScale, dpmm: DefaultDPMM}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateFormat checks that format is a supported preview format.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid preview format: %q (must be one of: svg, png, pdf)", format)
}
