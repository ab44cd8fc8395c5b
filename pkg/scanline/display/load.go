package display

import (
	"errors"

	"github.com/BrandonKowalski/scanline/pkg/scanline/anim"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// LoadScreen makes scr the active screen using tr. When destroyPrev is set
// the outgoing screen is destroyed once it is no longer visible; otherwise it
// is parked at the panel origin so it can be shown again later.
//
// A transition already in flight is completed first, so at most one outgoing
// screen is ever tracked.
func (d *Display) LoadScreen(scr widget.Handle, tr Transition, destroyPrev bool) error {
	if !d.tree.Valid(scr) {
		d.logger.Warn("display: load of invalid screen")
		return ErrInvalidScreen
	}
	if d.inFlight {
		d.logger.Debug("display: completing in-flight transition", "type", d.transition.String())
		d.anims.Finish(d.transAnim)
	}

	old := d.active
	if old == scr {
		d.Invalidate(widget.Handle{})
		return nil
	}
	if !d.tree.Valid(old) {
		tr.Type = None
	}

	d.tree.SetUsing(scr, true)
	d.tree.MarkDeletePending(scr, false)
	if tr.Type == None {
		d.swap(scr, old, tr, destroyPrev)
		return nil
	}

	d.tree.MarkDeletePending(old, destroyPrev)
	from := tr.Type.startOffset(d.drv.Width, d.drv.Height)
	id, err := d.anims.Start(anim.Animation{
		Name:     "screen:" + tr.Type.String(),
		From:     from,
		To:       0,
		Duration: tr.Duration,
		Delay:    tr.Delay,
		Ease:     tr.Ease,
		OnStart:  func() { d.transitionStart(scr, old, tr.Type, from) },
		OnExec:   func(v int) { d.transitionExec(v, from) },
		OnReady:  func() { d.transitionReady(old) },
	})
	if err != nil {
		d.logger.Warn("display: transition not scheduled, loading without animation", "error", err)
		d.tree.MarkDeletePending(old, false)
		d.swap(scr, old, Instant, false)
		if destroyPrev {
			d.destroy(old)
		}
		return nil
	}
	d.transAnim = id
	d.transition = tr.Type
	d.inFlight = true
	return nil
}

func (d *Display) swap(scr, old widget.Handle, tr Transition, destroyPrev bool) {
	d.active = scr
	d.transition = None
	d.tree.SetUsing(old, false)
	d.resetActiveArea()
	d.ReloadMaxArea()
	d.Invalidate(widget.Handle{})

	if !destroyPrev || !d.tree.Valid(old) {
		return
	}
	d.tree.MarkDeletePending(old, true)
	_, err := d.anims.Start(anim.Animation{
		Name:     "screen:delete",
		Duration: tr.Duration,
		Delay:    tr.Delay,
		OnReady:  func() { d.destroy(old) },
	})
	if errors.Is(err, anim.ErrNoSlot) {
		d.destroy(old)
	}
}

// destroy hands old to the tree's deferred collector unless it came back
// into use in the meantime.
func (d *Display) destroy(old widget.Handle) {
	if !d.tree.Valid(old) || old == d.active || old == d.prev {
		return
	}
	d.tree.SetUsing(old, false)
	d.tree.Destroy(old)
}

func (d *Display) transitionStart(scr, old widget.Handle, t Type, from int) {
	d.prev = old
	d.active = scr
	d.transition = t
	d.transStart = from

	area := d.drv.Bounds()
	if t.Horizontal() {
		area.X = from
	} else {
		area.Y = from
	}
	d.tree.SetArea(scr, area)
	d.input.Suspend()
	d.InvalidateArea(d.areaAct)
}

func (d *Display) transitionExec(v, from int) {
	if d.transition.Horizontal() {
		d.tree.SetX(d.active, v)
		if d.transition.Moves() {
			d.tree.SetX(d.prev, v-from)
		}
	} else {
		d.tree.SetY(d.active, v)
		if d.transition.Moves() {
			d.tree.SetY(d.prev, v-from)
		}
	}
	d.InvalidateArea(d.areaAct)
}

func (d *Display) transitionReady(old widget.Handle) {
	d.tree.SetUsing(old, false)
	if d.tree.DeletePending(old) {
		d.prev = widget.Handle{}
		d.destroy(old)
	} else {
		d.tree.SetArea(old, d.drv.Bounds())
	}

	d.prev = widget.Handle{}
	d.transition = None
	d.inFlight = false
	d.tree.SetArea(d.active, d.drv.Bounds())
	d.resetActiveArea()
	d.ReloadMaxArea()
	d.Invalidate(widget.Handle{})
	d.input.Resume()
}
