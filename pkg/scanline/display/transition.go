package display

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Type is a screen transition style. Left and Up variants bring the incoming
// screen in from the left or top edge; Right and Down from the opposite edge.
// Move variants push the outgoing screen away in lockstep, Cover variants
// slide the incoming screen over a stationary outgoing one.
type Type int

const (
	None Type = iota
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	CoverLeft
	CoverRight
	CoverUp
	CoverDown
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case CoverLeft:
		return "CoverLeft"
	case CoverRight:
		return "CoverRight"
	case CoverUp:
		return "CoverUp"
	case CoverDown:
		return "CoverDown"
	default:
		return "Unknown"
	}
}

// Edge is the panel edge an incoming screen enters from.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

type typeInfo struct {
	inverse Type
	edge    Edge
	move    bool
}

var types = [...]typeInfo{
	None:       {inverse: None, edge: EdgeNone},
	MoveLeft:   {inverse: MoveRight, edge: EdgeLeft, move: true},
	MoveRight:  {inverse: MoveLeft, edge: EdgeRight, move: true},
	MoveUp:     {inverse: MoveDown, edge: EdgeTop, move: true},
	MoveDown:   {inverse: MoveUp, edge: EdgeBottom, move: true},
	CoverLeft:  {inverse: CoverRight, edge: EdgeLeft},
	CoverRight: {inverse: CoverLeft, edge: EdgeRight},
	CoverUp:    {inverse: CoverDown, edge: EdgeTop},
	CoverDown:  {inverse: CoverUp, edge: EdgeBottom},
}

func (t Type) info() typeInfo {
	if t < 0 || int(t) >= len(types) {
		return types[None]
	}
	return types[t]
}

// Inverse returns the transition that undoes t, used for back navigation.
func (t Type) Inverse() Type { return t.info().inverse }

// Edge returns the edge the incoming screen enters from.
func (t Type) Edge() Edge { return t.info().edge }

// Moves reports whether the outgoing screen slides along with the incoming one.
func (t Type) Moves() bool { return t.info().move }

// Horizontal reports whether the transition runs along the x axis.
func (t Type) Horizontal() bool {
	e := t.Edge()
	return e == EdgeLeft || e == EdgeRight
}

// Leading reports whether the incoming screen occupies the left or top part
// of the panel while the transition runs.
func (t Type) Leading() bool {
	e := t.Edge()
	return e == EdgeLeft || e == EdgeTop
}

// startOffset is the incoming screen's coordinate along the transition axis
// when the transition begins. It always ends at 0.
func (t Type) startOffset(width, height int) int {
	switch t.Edge() {
	case EdgeLeft:
		return -width
	case EdgeRight:
		return width
	case EdgeTop:
		return -height
	case EdgeBottom:
		return height
	}
	return 0
}

// Transition bundles a type with its timing.
type Transition struct {
	Type     Type
	Duration time.Duration
	Delay    time.Duration
	// Ease shapes the motion; nil selects ease-in-out.
	Ease ease.TweenFunc
}

// Instant is a transition that swaps screens immediately.
var Instant = Transition{Type: None}
