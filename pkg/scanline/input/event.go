package input

import (
	"fmt"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// Kind is the phase of a touch.
type Kind int

const (
	Press Kind = iota
	Move
	Release
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case Release:
		return "Release"
	default:
		return "Unknown"
	}
}

// Touch is a raw contact in panel coordinates.
type Touch struct {
	Kind Kind
	Pos  gfx.Point
}

func (t Touch) String() string {
	return fmt.Sprintf("%s(%d,%d)", t.Kind, t.Pos.X, t.Pos.Y)
}

// Event is a touch resolved to the node it landed on. Pos is in the target
// screen's content coordinates.
type Event struct {
	Kind   Kind
	Target widget.Handle
	Pos    gfx.Point
}

// Handler receives events for one node.
type Handler func(ev Event)
