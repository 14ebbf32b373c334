package stats

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultBins is the histogram bin count used by [WriteHistogram].
const DefaultBins = 12

// WriteHistogram plots the gap distribution of s as a PNG image.
func WriteHistogram(w io.Writer, s Summary, bins int) error {
	if s.Gaps.N == 0 {
		return fmt.Errorf("histogram: need at least two placements")
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Forward spacing (n=%d, mean %.2f)", s.Gaps.N, s.Gaps.Mean)
	p.X.Label.Text = "Gap"
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(s.Gaps.Values), bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	p.Add(h)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write histogram: %w", err)
	}
	return nil
}
