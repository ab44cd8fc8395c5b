// Package input carries touch input from the device to widget handlers.
//
// Events are queued by Post and delivered by Dispatch from the compositor's
// tick. A queued event holds a reference on its target node so that a screen
// destroyed in the meantime is not freed until the event has been delivered.
// While the Gate is suspended (during screen transitions) new events are
// dropped.
package input

import "go.uber.org/atomic"

// Gate turns input dispatch on and off. It is safe for concurrent use; the
// touch reader checks it from its own goroutine.
type Gate struct {
	suspended *atomic.Bool
}

func NewGate() *Gate {
	return &Gate{suspended: atomic.NewBool(false)}
}

// Suspend makes dispatchers and touch sources drop input until Resume.
func (g *Gate) Suspend() { g.suspended.Store(true) }

// Resume lets input through again.
func (g *Gate) Resume() { g.suspended.Store(false) }

func (g *Gate) Suspended() bool { return g.suspended.Load() }
