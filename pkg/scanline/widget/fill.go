package widget

import "github.com/BrandonKowalski/scanline/pkg/scanline/gfx"

// Fill paints its node's area with a single colour.
type Fill struct {
	Color gfx.Color
}

func (f Fill) Draw(ctx DrawContext) {
	ctx.Canvas.FillRect(ctx.Clip, f.Color)
}

// Border paints a frame of the given width inside the node's area.
type Border struct {
	Color gfx.Color
	Width int
}

func (b Border) Draw(ctx DrawContext) {
	w := b.Width
	if w <= 0 {
		return
	}
	r := ctx.Bounds
	edges := []gfx.Rect{
		gfx.XYWH(r.X, r.Y, r.W, w),
		gfx.XYWH(r.X, r.Y2()-w, r.W, w),
		gfx.XYWH(r.X, r.Y+w, w, r.H-2*w),
		gfx.XYWH(r.X2()-w, r.Y+w, w, r.H-2*w),
	}
	for _, e := range edges {
		if clipped, ok := e.Intersect(ctx.Clip); ok {
			ctx.Canvas.FillRect(clipped, b.Color)
		}
	}
}
