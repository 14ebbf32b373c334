// Package render draws a top-down preview of a generated track.
//
// # Overview
//
// The preview is a plan view of the ground plane: the forward axis runs up
// the page, the lateral axis across it. The track surface, lane centre
// lines and the footprint of every placed element are drawn, each element
// coloured by content type. With [WithMargins] the margin-inflated
// footprint used by the overlap test is outlined as well, which makes
// spacing problems easy to spot.
//
// Drawing goes through github.com/tdewolff/canvas, so one scene serves all
// output formats:
//
//	svg, err := render.RenderSVG(run)
//	png, err := render.RenderPNG(run, render.WithScale(4))
//	pdf, err := render.RenderPDF(run, render.WithMargins())
//
// The preview is a tooling aid for level designers; the generator itself
// never draws anything.
package render
