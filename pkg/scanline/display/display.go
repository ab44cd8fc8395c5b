// Package display drives a panel through a strip buffer.
//
// A Display never holds a full frame. Every refresh composes the requested
// area one band of BandHeight rows at a time into a single reusable line
// buffer and hands each band to the driver's flush callback. Areas to redraw
// are collected in a dirty.Queue and drained by RefreshPending, one area per
// refresh period.
//
// Coordinates: widget areas are in the active screen's content coordinates.
// The active area's origin is the current scroll offset, so a content pixel
// (x, y) appears on the panel at (x-offX, y-offY) while no transition runs.
// During a transition each screen's root X/Y holds its panel position. The
// top layer is always in panel coordinates.
package display

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/scanline/pkg/scanline/anim"
	"github.com/BrandonKowalski/scanline/pkg/scanline/dirty"
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// DefaultBandHeight is the number of rows composed per flush.
const DefaultBandHeight = 10

var (
	ErrNoDriver      = errors.New("display: driver with a flush callback and a non-zero resolution is required")
	ErrBufferAlloc   = errors.New("display: line buffer allocation failed")
	ErrInvalidScreen = errors.New("display: screen handle is not live")
)

// InputGate suspends input dispatch while screens are moving.
type InputGate interface {
	Suspend()
	Resume()
}

type noGate struct{}

func (noGate) Suspend() {}
func (noGate) Resume()  {}

// Options tunes a Display. Zero values select defaults.
type Options struct {
	BandHeight    int
	DirtyCapacity int
	Logger        *slog.Logger
	// Alloc provides the line buffer. It may return nil or a short slice to
	// signal that memory is not available.
	Alloc func(n int) []gfx.Color
	// Animations drives transitions. A private scheduler is created when nil.
	Animations *anim.Scheduler
	Input      InputGate
}

// Display is the compositor state for one panel. It is not safe for
// concurrent use.
type Display struct {
	drv    *Driver
	tree   *widget.Tree
	logger *slog.Logger
	anims  *anim.Scheduler
	input  InputGate

	buf        []gfx.Color
	bandHeight int
	queue      *dirty.Queue

	active   widget.Handle
	prev     widget.Handle
	topLayer widget.Handle

	areaAct gfx.Rect
	areaMax gfx.Rect

	transition Type
	transStart int
	transAnim  anim.ID
	inFlight   bool
	flushCount int
}

// New creates a display for drv drawing from tree.
func New(drv *Driver, tree *widget.Tree, opts Options) (*Display, error) {
	if drv == nil || drv.Flush == nil || drv.Width <= 0 || drv.Height <= 0 {
		return nil, ErrNoDriver
	}
	if opts.BandHeight <= 0 {
		opts.BandHeight = DefaultBandHeight
	}
	opts.BandHeight = min(opts.BandHeight, drv.Height)
	if opts.DirtyCapacity <= 0 {
		opts.DirtyCapacity = dirty.DefaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Alloc == nil {
		opts.Alloc = func(n int) []gfx.Color { return make([]gfx.Color, n) }
	}
	if opts.Animations == nil {
		opts.Animations = anim.NewScheduler(anim.DefaultSlots, opts.Logger)
	}
	if opts.Input == nil {
		opts.Input = noGate{}
	}

	n := drv.Width * opts.BandHeight
	buf := opts.Alloc(n)
	if len(buf) < n {
		opts.Logger.Error("display: line buffer allocation failed", "want", n, "got", len(buf))
		return nil, fmt.Errorf("%w: want %d colours, got %d", ErrBufferAlloc, n, len(buf))
	}

	panel := drv.Bounds()
	return &Display{
		drv:        drv,
		tree:       tree,
		logger:     opts.Logger,
		anims:      opts.Animations,
		input:      opts.Input,
		buf:        buf[:n],
		bandHeight: opts.BandHeight,
		queue:      dirty.New(opts.DirtyCapacity, panel),
		areaAct:    panel,
		areaMax:    panel,
	}, nil
}

// Driver returns the panel the display flushes to.
func (d *Display) Driver() *Driver { return d.drv }

// Tree returns the widget tree screens are composed from.
func (d *Display) Tree() *widget.Tree { return d.tree }

// BandHeight returns the number of rows composed per flush.
func (d *Display) BandHeight() int { return d.bandHeight }

// Active returns the screen currently shown.
func (d *Display) Active() widget.Handle { return d.active }

// Previous returns the outgoing screen while a transition runs.
func (d *Display) Previous() widget.Handle { return d.prev }

// InTransition reports whether a transition has been scheduled and not yet
// completed.
func (d *Display) InTransition() bool { return d.inFlight }

// Transition returns the type of the running transition, None at rest.
func (d *Display) Transition() Type { return d.transition }

// TopLayer returns the overlay root, zero when unset.
func (d *Display) TopLayer() widget.Handle { return d.topLayer }

// SetTopLayer installs an overlay drawn above the active screen in every
// band. Pass the zero handle to remove it.
func (d *Display) SetTopLayer(h widget.Handle) {
	d.topLayer = h
	d.Invalidate(widget.Handle{})
}

// ActiveArea returns the visible window: origin is the scroll offset, size
// is the panel resolution.
func (d *Display) ActiveArea() gfx.Rect { return d.areaAct }

// MaxArea returns the scrollable extent of the active screen.
func (d *Display) MaxArea() gfx.Rect { return d.areaMax }

// Flushes returns the number of bands flushed since the display was created.
func (d *Display) Flushes() int { return d.flushCount }

// Pending reports whether dirty areas are waiting.
func (d *Display) Pending() bool { return d.queue.Check() }

// InvalidateArea queues r, in active content coordinates, for redraw.
func (d *Display) InvalidateArea(r gfx.Rect) {
	if err := d.queue.Append(r); err != nil {
		d.logger.Debug("display: dirty queue overflow", "area", r.String(), "error", err)
	}
}

// Invalidate queues a node's area for redraw. The zero handle, a screen root
// or the top layer root redraws the whole active area.
func (d *Display) Invalidate(h widget.Handle) {
	if h.IsZero() {
		d.InvalidateArea(d.areaAct)
		return
	}
	if !d.tree.Valid(h) {
		return
	}
	if d.tree.Parent(h).IsZero() {
		d.InvalidateArea(d.areaAct)
		return
	}
	r := d.tree.Area(h)
	if d.rootOf(h) == d.topLayer {
		r = r.Translate(d.areaAct.Origin())
	}
	d.InvalidateArea(r)
}

func (d *Display) rootOf(h widget.Handle) widget.Handle {
	for {
		p := d.tree.Parent(h)
		if p.IsZero() {
			return h
		}
		h = p
	}
}

// ReloadMaxArea recomputes the scrollable extent from the active screen's
// visible descendants.
func (d *Display) ReloadMaxArea() {
	panel := d.drv.Bounds()
	if !d.tree.Valid(d.active) {
		d.areaMax = panel
		return
	}
	d.areaMax = d.tree.Extent(d.active, panel)
}

// Scroll moves the visible window to content position (x, y), limited to the
// scrollable extent, and schedules a full redraw.
func (d *Display) Scroll(x, y int) {
	a := &d.areaAct
	a.X = clampScroll(x, a.W, d.areaMax.X, d.areaMax.X2())
	a.Y = clampScroll(y, a.H, d.areaMax.Y, d.areaMax.Y2())

	d.queue.SetOverflow(*a)
	d.queue.Reset()
	d.InvalidateArea(*a)
}

func clampScroll(pos, size, lo, hi int) int {
	switch {
	case pos < lo:
		return lo
	case pos+size > hi:
		if size < hi {
			return hi - size
		}
		if pos > 0 {
			return 0
		}
	}
	return pos
}

func (d *Display) resetActiveArea() {
	d.areaAct = d.drv.Bounds()
	d.queue.SetOverflow(d.areaAct)
	d.queue.Reset()
}
