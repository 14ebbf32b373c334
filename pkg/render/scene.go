package render

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/track"
)

var (
	colorGround  = canvas.Hex("#2b2d31")
	colorLane    = canvas.Hex("#5c5f66")
	colorBound   = canvas.Hex("#d0d3d9")
	colorMargin  = canvas.Hex("#e0b43c")
	colorPerType = map[track.ContentType]color.RGBA{
		track.Obstacle:       canvas.Hex("#d9534f"),
		track.TinyObstacle:   canvas.Hex("#f0906c"),
		track.Pad:            canvas.Hex("#3fb27f"),
		track.InteractivePad: canvas.Hex("#4aa3df"),
		track.Platform:       canvas.Hex("#9b7fd4"),
	}
	transparent = color.RGBA{}
)

const (
	laneWidth   = 0.3
	boundWidth  = 0.5
	marginWidth = 0.25
)

// scene is the track laid out in page millimetres.
type scene struct {
	width, height float64
	originX       float64 // page x of world x = 0
	originZ       float64 // page y of world z = 0
	scale         float64
}

func newScene(r *run.Run, o options) scene {
	cfg := r.Config
	pad := padding(cfg) + cfg.Margin
	w := (cfg.XMax - cfg.XMin + 2*pad) * o.scale
	h := (cfg.EndZ - cfg.StartZ + 2*pad) * o.scale
	return scene{
		width:   max(w, 1),
		height:  max(h, 1),
		originX: (pad - cfg.XMin) * o.scale,
		originZ: (pad - cfg.StartZ) * o.scale,
		scale:   o.scale,
	}
}

// padding leaves room for the widest and longest footprint at the edges.
func padding(cfg track.Config) float64 {
	p := 1.0
	for _, t := range track.ContentTypes {
		he := cfg.Types.Spec(t).HalfExtent
		p = max(p, he.X, he.Z)
	}
	return p
}

func (s scene) px(x float64) float64 { return s.originX + x*s.scale }
func (s scene) pz(z float64) float64 { return s.originZ + z*s.scale }

// draw paints the preview of r onto a new canvas.
func draw(r *run.Run, o options) *canvas.Canvas {
	s := newScene(r, o)
	cfg := r.Config

	c := canvas.New(s.width, s.height)
	ctx := canvas.NewContext(c)

	ctx.SetFillColor(colorGround)
	ctx.SetStrokeColor(transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(s.width, s.height))

	drawBounds(ctx, s, cfg)
	if cfg.UseLanes {
		drawLanes(ctx, s, cfg)
	}
	for _, fp := range r.Result.Footprints(cfg.Types) {
		drawFootprint(ctx, s, fp, cfg.Margin, o.showMargins)
	}
	return c
}

func drawBounds(ctx *canvas.Context, s scene, cfg track.Config) {
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(colorBound)
	ctx.SetStrokeWidth(boundWidth)
	w := (cfg.XMax - cfg.XMin) * s.scale
	h := (cfg.EndZ - cfg.StartZ) * s.scale
	ctx.DrawPath(s.px(cfg.XMin), s.pz(cfg.StartZ), canvas.Rectangle(w, h))
}

func drawLanes(ctx *canvas.Context, s scene, cfg track.Config) {
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(colorLane)
	ctx.SetStrokeWidth(laneWidth)
	length := (cfg.EndZ - cfg.StartZ) * s.scale
	for _, x := range track.NewLaneModel(cfg).Lanes() {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(0, length)
		ctx.DrawPath(s.px(x), s.pz(cfg.StartZ), p)
	}
}

func drawFootprint(ctx *canvas.Context, s scene, fp track.Footprint, margin float64, showMargin bool) {
	he := fp.HalfExtent
	ctx.SetStrokeColor(transparent)
	ctx.SetFillColor(colorPerType[fp.Type])
	ctx.DrawPath(
		s.px(fp.Center.X-he.X), s.pz(fp.Center.Z-he.Z),
		canvas.Rectangle(2*he.X*s.scale, 2*he.Z*s.scale),
	)
	if !showMargin {
		return
	}
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(colorMargin)
	ctx.SetStrokeWidth(marginWidth)
	ctx.DrawPath(
		s.px(fp.Center.X-he.X-margin), s.pz(fp.Center.Z-he.Z-margin),
		canvas.Rectangle(2*(he.X+margin)*s.scale, 2*(he.Z+margin)*s.scale),
	)
}
