// Package dirty implements the pending-redraw queue: a fixed-capacity ring of
// rectangles that coalesces overlapping requests.
//
// The ring keeps one slot free so that a full ring can be told apart from an
// empty one, which means a queue created with capacity N holds at most N-1
// pending rectangles. When no slot is left the queue promotes everything to a
// single overflow rectangle (normally the display's full active area) instead
// of dropping a request.
//
// The consumer checks out the oldest rectangle with Get and releases it with
// Pop once it is drawn. Rectangles appended in between never merge into the
// checked-out slot, so an invalidation made while drawing survives the Pop.
package dirty

import (
	"errors"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

// DefaultCapacity matches the slot count used by small panel controllers.
const DefaultCapacity = 32

// ErrOverflow is returned by Append when the ring was full and the pending
// work was promoted to the overflow rectangle. The request is not lost.
var ErrOverflow = errors.New("dirty: queue full, promoted to overflow area")

// Queue is a single-producer / single-consumer ring of dirty rectangles.
type Queue struct {
	areas    []gfx.Rect
	joined   []bool
	idxW     int
	idxR     int
	held     bool
	overflow gfx.Rect
}

// New creates a queue with the given slot count. Capacities below 2 are
// raised to 2 so at least one rectangle can be pending.
func New(capacity int, overflow gfx.Rect) *Queue {
	if capacity < 2 {
		capacity = 2
	}
	return &Queue{
		areas:    make([]gfx.Rect, capacity),
		joined:   make([]bool, capacity),
		overflow: overflow,
	}
}

// SetOverflow changes the rectangle used when the ring overflows.
func (q *Queue) SetOverflow(r gfx.Rect) {
	q.overflow = r
}

// Capacity returns the number of slots in the ring.
func (q *Queue) Capacity() int {
	return len(q.areas)
}

func (q *Queue) next(idx int) int {
	idx++
	if idx == len(q.areas) {
		return 0
	}
	return idx
}

// Len returns the number of occupied slots, joined ones included.
func (q *Queue) Len() int {
	if q.idxW >= q.idxR {
		return q.idxW - q.idxR
	}
	return len(q.areas) - q.idxR + q.idxW
}

// Check reports whether any work is pending.
func (q *Queue) Check() bool {
	return q.idxW != q.idxR
}

func (q *Queue) full() bool {
	return q.next(q.idxW) == q.idxR
}

// Append schedules r for redraw. Empty rectangles are ignored. A rectangle
// touching a pending entry is merged into it; the grown entry then absorbs
// any other pending entries it now touches, which are flagged as joined.
func (q *Queue) Append(r gfx.Rect) error {
	if r.Empty() {
		return nil
	}

	for i := q.idxR; i != q.idxW; i = q.next(i) {
		if q.joined[i] || q.checkedOut(i) || !q.areas[i].Touches(r) {
			continue
		}
		q.areas[i] = q.areas[i].Union(r)
		q.absorb(i)
		return nil
	}

	if q.full() {
		promoted := q.overflow
		if promoted.Empty() {
			promoted = r
			for i := q.idxR; i != q.idxW; i = q.next(i) {
				if !q.joined[i] {
					promoted = promoted.Union(q.areas[i])
				}
			}
		}
		q.Reset()
		q.areas[q.idxW] = promoted
		q.Push()
		return ErrOverflow
	}

	q.areas[q.idxW] = r
	q.joined[q.idxW] = false
	q.Push()
	return nil
}

// absorb merges every pending entry touching slot target into it, repeating
// until the union stops growing.
func (q *Queue) absorb(target int) {
	for grown := true; grown; {
		grown = false
		for i := q.idxR; i != q.idxW; i = q.next(i) {
			if i == target || q.joined[i] || q.checkedOut(i) || !q.areas[target].Touches(q.areas[i]) {
				continue
			}
			q.areas[target] = q.areas[target].Union(q.areas[i])
			q.joined[i] = true
			grown = true
		}
	}
}

func (q *Queue) checkedOut(idx int) bool {
	return q.held && idx == q.idxR
}

// Push commits the slot at the write index.
func (q *Queue) Push() {
	q.idxW = q.next(q.idxW)
}

// Pop releases the slot checked out by the last Get. It does nothing when no
// slot is checked out, including after an overflow reset dropped it.
func (q *Queue) Pop() {
	if !q.held {
		return
	}
	q.held = false
	q.pop()
}

func (q *Queue) pop() {
	if !q.Check() {
		return
	}
	q.joined[q.idxR] = false
	q.idxR = q.next(q.idxR)
}

// Get checks out the oldest pending rectangle that was not merged elsewhere,
// popping joined slots on the way. The slot stays queued until Pop.
func (q *Queue) Get() (gfx.Rect, bool) {
	if q.held {
		return q.areas[q.idxR], true
	}
	for q.Check() {
		if !q.joined[q.idxR] {
			q.held = true
			return q.areas[q.idxR], true
		}
		q.pop()
	}
	return gfx.Rect{}, false
}

// Reset drops all pending work.
func (q *Queue) Reset() {
	clear(q.areas)
	clear(q.joined)
	q.held = false
	q.idxR = 0
	q.idxW = 0
}
