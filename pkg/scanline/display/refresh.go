package display

import (
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// RefreshPending redraws the oldest dirty area. It returns false when there
// was nothing to do or the driver is busy, in which case the area stays
// queued.
func (d *Display) RefreshPending() bool {
	if d.drv.Busy {
		return false
	}
	r, ok := d.queue.Get()
	if !ok {
		return false
	}
	d.Refresh(r)
	d.queue.Pop()
	return true
}

// Refresh composes area, given in active content coordinates, and flushes it
// band by band. While a transition runs the whole panel is redrawn instead.
// A call made while the driver is busy is dropped.
func (d *Display) Refresh(area gfx.Rect) {
	if d.drv.Busy {
		d.logger.Debug("display: refresh skipped, driver busy", "area", area.String())
		return
	}
	if !d.tree.Valid(d.active) {
		d.logger.Warn("display: refresh without a live active screen")
		return
	}

	d.drv.Busy = true
	defer func() { d.drv.Busy = false }()

	if d.tree.Valid(d.prev) {
		d.flushAnimated()
		return
	}
	d.flushDirect(area)
}

// project maps a content-space rectangle onto the panel for the given scroll
// offset. A rectangle the size of the panel is snapped back to the origin.
func project(r gfx.Rect, off gfx.Point, width, height int) (gfx.Rect, bool) {
	if r.W == width && r.H == height {
		return gfx.XYWH(0, 0, width, height), true
	}
	x, w := clampAxis(r.X, r.W, off.X, width)
	y, h := clampAxis(r.Y, r.H, off.Y, height)
	out := gfx.XYWH(x, y, w, h)
	return out, !out.Empty()
}

// clampAxis shifts [start, start+length) by -offset and clips the result to
// [0, extent). A start left of the panel shortens the span.
func clampAxis(start, length, offset, extent int) (int, int) {
	start -= offset
	if start < 0 {
		length += start
		start = 0
	}
	if start+length > extent {
		length = extent - start
	}
	return start, max(length, 0)
}

func (d *Display) band(area gfx.Rect, y int) *gfx.Canvas {
	b := gfx.XYWH(area.X, y, area.W, min(d.bandHeight, area.Y2()-y))
	return gfx.NewCanvas(d.buf[:b.W*b.H], b)
}

func (d *Display) flush(c *gfx.Canvas) {
	d.drv.Flush(c.Area, c.Pix)
	d.flushCount++
}

func (d *Display) composeTopLayer(c *gfx.Canvas) {
	if d.tree.Valid(d.topLayer) {
		d.tree.Compose(d.topLayer, c, gfx.Point{}, c.Area)
	}
}

func (d *Display) flushDirect(area gfx.Rect) {
	target, ok := project(area, d.areaAct.Origin(), d.drv.Width, d.drv.Height)
	if !ok {
		return
	}
	bg := d.tree.Background(d.active)
	offset := d.tree.Area(d.active).Origin().Add(d.areaAct.Origin().Neg())

	for y := target.Y; y < target.Y2(); y += d.bandHeight {
		c := d.band(target, y)
		gfx.Fill(c.Pix, bg)
		d.tree.Compose(d.active, c, offset, c.Area)
		d.composeTopLayer(c)
		d.flush(c)
	}
}

// regions splits the panel between the incoming and outgoing screen for the
// current transition progress.
func (d *Display) regions() (act, prev gfx.Rect) {
	panel := d.drv.Bounds()
	pos := d.tree.Area(d.active).Origin()

	if d.transition.Horizontal() {
		aw := min(abs(pos.X-d.transStart), panel.W)
		if d.transition.Leading() {
			return gfx.XYWH(0, 0, aw, panel.H), gfx.XYWH(aw, 0, panel.W-aw, panel.H)
		}
		return gfx.XYWH(panel.W-aw, 0, aw, panel.H), gfx.XYWH(0, 0, panel.W-aw, panel.H)
	}
	ah := min(abs(pos.Y-d.transStart), panel.H)
	if d.transition.Leading() {
		return gfx.XYWH(0, 0, panel.W, ah), gfx.XYWH(0, ah, panel.W, panel.H-ah)
	}
	return gfx.XYWH(0, panel.H-ah, panel.W, ah), gfx.XYWH(0, 0, panel.W, panel.H-ah)
}

func (d *Display) flushAnimated() {
	panel := d.drv.Bounds()
	actRegion, prevRegion := d.regions()
	actOffset := d.tree.Area(d.active).Origin()
	// The outgoing screen keeps its scroll offset until the transition ends.
	prevOffset := d.tree.Area(d.prev).Origin().Add(d.areaAct.Origin().Neg())

	for y := 0; y < panel.H; y += d.bandHeight {
		c := d.band(panel, y)
		d.composeRegion(c, d.prev, prevRegion, prevOffset)
		d.composeRegion(c, d.active, actRegion, actOffset)
		d.composeTopLayer(c)
		d.flush(c)
	}
}

func (d *Display) composeRegion(c *gfx.Canvas, scr widget.Handle, region gfx.Rect, offset gfx.Point) {
	clip, ok := region.Intersect(c.Area)
	if !ok {
		return
	}
	c.Clear(clip, d.tree.Background(scr))
	d.tree.Compose(scr, c, offset, clip)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
