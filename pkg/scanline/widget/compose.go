package widget

import "github.com/BrandonKowalski/scanline/pkg/scanline/gfx"

// DrawContext is handed to a Drawer for one node and one band.
type DrawContext struct {
	Canvas *gfx.Canvas
	// Bounds is the node's area in panel coordinates.
	Bounds gfx.Rect
	// Clip is the part of the canvas the drawer may write to.
	Clip gfx.Rect
}

// Drawer is a node's draw routine. Implementations must not write outside
// ctx.Clip.
type Drawer interface {
	Draw(ctx DrawContext)
}

// DrawerFunc adapts a function to Drawer.
type DrawerFunc func(ctx DrawContext)

func (f DrawerFunc) Draw(ctx DrawContext) { f(ctx) }

// Compose draws the visible descendants of root that intersect clip into the
// canvas. offset maps the screen's content coordinates to panel coordinates.
// Children are drawn in insertion order, parents before children.
func (t *Tree) Compose(root Handle, canvas *gfx.Canvas, offset gfx.Point, clip gfx.Rect) {
	clip, ok := clip.Intersect(canvas.Area)
	if !ok {
		return
	}
	if n := t.get(root); n == nil || !n.visible {
		return
	}
	t.composeChildren(root, canvas, offset, clip)
}

// composeChildren re-resolves handles on every step: a drawer may add nodes
// and grow the arena underneath us.
func (t *Tree) composeChildren(parent Handle, canvas *gfx.Canvas, offset gfx.Point, clip gfx.Rect) {
	for i := 0; ; i++ {
		p := t.get(parent)
		if p == nil || i >= len(p.children) {
			return
		}
		h := p.children[i]
		c := t.get(h)
		if c == nil || !c.visible {
			continue
		}
		bounds := c.area.Translate(offset)
		if visible, ok := bounds.Intersect(clip); ok && c.drawer != nil {
			c.drawer.Draw(DrawContext{Canvas: canvas, Bounds: bounds, Clip: visible})
		}

		c = t.get(h)
		if c == nil || len(c.children) == 0 {
			continue
		}
		childClip := clip
		if c.clipChildren {
			var ok bool
			if childClip, ok = clip.Intersect(bounds); !ok {
				continue
			}
		}
		t.composeChildren(h, canvas, offset, childClip)
	}
}
