// Package widget holds the on-screen object tree the compositor draws from.
//
// Nodes live in an arena and are addressed by generation-checked handles, so
// a handle kept after its node was freed is detected instead of dereferenced.
// Children are index lists, which keeps iteration safe while the tree is
// being modified. A screen is simply a root node.
//
// Destruction is deferred: Destroy marks a node delete-pending and Sweep,
// called at the end of a tick, frees it once the destroy delay has passed and
// nothing references it. Collect frees eligible requests immediately.
package widget

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

// Handle addresses a node in a Tree. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

type node struct {
	gen      uint32
	alive    bool
	name     string
	parent   Handle
	children []Handle

	area          gfx.Rect
	visible       bool
	clipChildren  bool
	ignoreExtent  bool
	background    gfx.Color
	drawer        Drawer
	refs          int
	using         bool
	deletePending bool
}

// Tree is an arena of nodes. It is not safe for concurrent use; all calls are
// expected from the compositor's tick.
type Tree struct {
	nodes        []node
	free         []uint32
	pending      []destroyRequest
	destroyDelay time.Duration
	logger       *slog.Logger
}

type destroyRequest struct {
	handle Handle
	age    time.Duration
}

// NewTree creates an empty tree. Slot 0 is reserved so that the zero Handle
// never resolves.
func NewTree(logger *slog.Logger) *Tree {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tree{
		nodes:  make([]node, 1, 64),
		logger: logger,
	}
}

func (t *Tree) get(h Handle) *node {
	if h.index == 0 || int(h.index) >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[h.index]
	if !n.alive || n.gen != h.gen {
		return nil
	}
	return n
}

// Valid reports whether h still refers to a live node.
func (t *Tree) Valid(h Handle) bool {
	return t.get(h) != nil
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return len(t.nodes) - 1 - len(t.free)
}

func (t *Tree) alloc(n node) Handle {
	var idx uint32
	if k := len(t.free); k > 0 {
		idx = t.free[k-1]
		t.free = t.free[:k-1]
		n.gen = t.nodes[idx].gen + 1
		t.nodes[idx] = n
	} else {
		idx = uint32(len(t.nodes))
		n.gen = 1
		t.nodes = append(t.nodes, n)
	}
	t.nodes[idx].alive = true
	return Handle{index: idx, gen: t.nodes[idx].gen}
}

// NewScreen creates a root node covering area with the given background.
func (t *Tree) NewScreen(name string, area gfx.Rect, background gfx.Color) Handle {
	return t.alloc(node{
		name:       name,
		area:       area,
		visible:    true,
		background: background,
	})
}

// Add creates a child of parent. The area is in the screen's content
// coordinates. It returns the zero handle if parent is not live.
func (t *Tree) Add(parent Handle, name string, area gfx.Rect, d Drawer) Handle {
	if t.get(parent) == nil {
		t.logger.Warn("widget: add to invalid parent", "name", name)
		return Handle{}
	}
	h := t.alloc(node{
		name:    name,
		parent:  parent,
		area:    area,
		visible: true,
		drawer:  d,
	})
	p := t.get(parent)
	p.children = append(p.children, h)
	return h
}

// Name returns the node's debug name.
func (t *Tree) Name(h Handle) string {
	if n := t.get(h); n != nil {
		return n.name
	}
	return ""
}

// Parent returns the parent handle, zero for roots.
func (t *Tree) Parent(h Handle) Handle {
	if n := t.get(h); n != nil {
		return n.parent
	}
	return Handle{}
}

// Children returns a copy of the child list.
func (t *Tree) Children(h Handle) []Handle {
	n := t.get(h)
	if n == nil {
		return nil
	}
	out := make([]Handle, len(n.children))
	copy(out, n.children)
	return out
}

// Area returns the node rectangle.
func (t *Tree) Area(h Handle) gfx.Rect {
	if n := t.get(h); n != nil {
		return n.area
	}
	return gfx.Rect{}
}

// SetArea replaces the node rectangle.
func (t *Tree) SetArea(h Handle, r gfx.Rect) {
	if n := t.get(h); n != nil {
		n.area = r
	}
}

// SetX moves the node horizontally.
func (t *Tree) SetX(h Handle, x int) {
	if n := t.get(h); n != nil {
		n.area.X = x
	}
}

// SetY moves the node vertically.
func (t *Tree) SetY(h Handle, y int) {
	if n := t.get(h); n != nil {
		n.area.Y = y
	}
}

// Visible reports whether the node is drawn and hit-tested.
func (t *Tree) Visible(h Handle) bool {
	n := t.get(h)
	return n != nil && n.visible
}

// SetVisible shows or hides the node together with its subtree.
func (t *Tree) SetVisible(h Handle, v bool) {
	if n := t.get(h); n != nil {
		n.visible = v
	}
}

// SetClipChildren makes the node clip its descendants to its own area.
func (t *Tree) SetClipChildren(h Handle, clip bool) {
	if n := t.get(h); n != nil {
		n.clipChildren = clip
	}
}

// SetIgnoreExtent excludes the node from the scrollable extent, letting it
// overflow the panel without enlarging the scroll range.
func (t *Tree) SetIgnoreExtent(h Handle, ignore bool) {
	if n := t.get(h); n != nil {
		n.ignoreExtent = ignore
	}
}

// Background returns a screen's fill colour.
func (t *Tree) Background(h Handle) gfx.Color {
	if n := t.get(h); n != nil {
		return n.background
	}
	return gfx.Hex(0x000000)
}

// SetBackground replaces a screen's fill colour.
func (t *Tree) SetBackground(h Handle, c gfx.Color) {
	if n := t.get(h); n != nil {
		n.background = c
	}
}

// SetDrawer replaces the node's draw routine.
func (t *Tree) SetDrawer(h Handle, d Drawer) {
	if n := t.get(h); n != nil {
		n.drawer = d
	}
}

// Using reports whether the node is currently displayed or transitioning.
func (t *Tree) Using(h Handle) bool {
	n := t.get(h)
	return n != nil && n.using
}

// SetUsing marks the node as shown or transitioning, which blocks its
// destruction.
func (t *Tree) SetUsing(h Handle, using bool) {
	if n := t.get(h); n != nil {
		n.using = using
	}
}

// DeletePending reports whether a destroy was requested for the node.
func (t *Tree) DeletePending(h Handle) bool {
	n := t.get(h)
	return n != nil && n.deletePending
}

// MarkDeletePending flags the node for destruction once its transition ends.
func (t *Tree) MarkDeletePending(h Handle, pending bool) {
	if n := t.get(h); n != nil {
		n.deletePending = pending
	}
}

// Extent returns the bounding box of root's visible descendants together with
// bounds, skipping nodes flagged with SetIgnoreExtent.
func (t *Tree) Extent(root Handle, bounds gfx.Rect) gfx.Rect {
	ext := bounds
	var walk func(h Handle)
	walk = func(h Handle) {
		n := t.get(h)
		if n == nil {
			return
		}
		for _, c := range n.children {
			cn := t.get(c)
			if cn == nil || !cn.visible {
				continue
			}
			walk(c)
			if !cn.ignoreExtent && !cn.area.Empty() {
				ext = ext.Union(cn.area)
			}
		}
	}
	walk(root)
	return ext
}

// NodeAt returns the topmost visible descendant of root whose area contains
// the point, or root itself when none does. The point is in content
// coordinates.
func (t *Tree) NodeAt(root Handle, x, y int) Handle {
	n := t.get(root)
	if n == nil || !n.visible {
		return Handle{}
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		cn := t.get(c)
		if cn == nil || !cn.visible || !cn.area.Contains(x, y) {
			continue
		}
		return t.NodeAt(c, x, y)
	}
	return root
}
