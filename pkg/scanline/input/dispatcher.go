package input

import (
	"log/slog"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// Dispatcher queues events and delivers them to per-node handlers. It is
// driven from a single goroutine.
type Dispatcher struct {
	tree     *widget.Tree
	gate     *Gate
	handlers map[widget.Handle]Handler
	queue    []Event
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher for tree. A nil gate gets a fresh one.
func NewDispatcher(tree *widget.Tree, gate *Gate, logger *slog.Logger) *Dispatcher {
	if gate == nil {
		gate = NewGate()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		tree:     tree,
		gate:     gate,
		handlers: make(map[widget.Handle]Handler),
		logger:   logger,
	}
}

func (d *Dispatcher) Gate() *Gate { return d.gate }

// On installs the handler for node h, replacing any previous one. A nil
// handler removes it.
func (d *Dispatcher) On(h widget.Handle, fn Handler) {
	if fn == nil {
		delete(d.handlers, h)
		return
	}
	d.handlers[h] = fn
}

// Post queues ev and takes a reference on its target. It reports false when
// the event was dropped because input is suspended or the target is gone.
func (d *Dispatcher) Post(ev Event) bool {
	if d.gate.Suspended() {
		d.logger.Debug("input: event dropped, input suspended", "kind", ev.Kind.String())
		return false
	}
	if !d.tree.Retain(ev.Target) {
		return false
	}
	d.queue = append(d.queue, ev)
	return true
}

// Touch resolves t against the screen root, whose content is shown at the
// given scroll offset, and posts it to the nearest node with a handler.
func (d *Dispatcher) Touch(root widget.Handle, offset gfx.Point, t Touch) bool {
	pos := t.Pos.Add(offset)
	for h := d.tree.NodeAt(root, pos.X, pos.Y); !h.IsZero(); h = d.tree.Parent(h) {
		if _, ok := d.handlers[h]; ok {
			return d.Post(Event{Kind: t.Kind, Target: h, Pos: pos})
		}
	}
	return false
}

// Pending returns the number of queued events.
func (d *Dispatcher) Pending() int { return len(d.queue) }

// Dispatch delivers every queued event and releases its reference. Events
// whose target was destroyed after posting are dropped. Handlers may post
// new events; those are delivered by the next call.
func (d *Dispatcher) Dispatch() int {
	queue := d.queue
	d.queue = nil
	delivered := 0
	for _, ev := range queue {
		fn, ok := d.handlers[ev.Target]
		if ok && d.tree.Valid(ev.Target) && !d.tree.DeletePending(ev.Target) {
			fn(ev)
			delivered++
		}
		d.tree.Release(ev.Target)
	}
	d.prune()
	return delivered
}

// Clear drops queued events, releasing their references.
func (d *Dispatcher) Clear() {
	for _, ev := range d.queue {
		d.tree.Release(ev.Target)
	}
	d.queue = nil
}

func (d *Dispatcher) prune() {
	for h := range d.handlers {
		if !d.tree.Valid(h) {
			delete(d.handlers, h)
		}
	}
}
