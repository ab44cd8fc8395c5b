package router

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// Screen is a type-safe identifier for screens.
// Applications should define their own Screen constants using iota.
type Screen int

// ScreenNone marks a missing screen, for example the previous screen of the
// first entry. Navigation failures also return it.
const ScreenNone Screen = -1

// DefaultDepth is used when Options.Depth is not set.
const DefaultDepth = 10

var (
	ErrNotRegistered = errors.New("router: screen not registered")
	ErrFactoryFailed = errors.New("router: screen factory returned no screen")
	ErrStackFull     = errors.New("router: navigation stack full")
	ErrStackEmpty    = errors.New("router: navigation stack empty")
	ErrInvalidDepth  = errors.New("router: stack depth must be positive")
)

// Factory builds a screen in tree and returns its root.
type Factory func(tree *widget.Tree) widget.Handle

// Entry pairs a screen id with its factory for RegisterList.
type Entry struct {
	Screen  Screen
	Factory Factory
}

// Display is the part of display.Display the router drives.
type Display interface {
	Active() widget.Handle
	LoadScreen(scr widget.Handle, tr display.Transition, destroyPrev bool) error
	Invalidate(h widget.Handle)
}

// LoadParams describes one navigation.
type LoadParams struct {
	Screen     Screen
	Transition display.Transition
	// DestroyPrev destroys the outgoing screen once it is off the panel.
	DestroyPrev bool
}

type Options struct {
	Depth  int
	Logger *slog.Logger
}

// Router manages screen navigation for one display.
type Router struct {
	tree      *widget.Tree
	disp      Display
	factories map[Screen]Factory
	stack     *Stack
	logger    *slog.Logger

	home       Screen
	homeAlive  bool
	homeHandle widget.Handle
}

// New creates a new Router.
func New(tree *widget.Tree, disp Display, opts Options) *Router {
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		tree:      tree,
		disp:      disp,
		factories: make(map[Screen]Factory),
		stack:     NewStack(opts.Depth),
		logger:    opts.Logger,
		home:      ScreenNone,
	}
}

// Register adds a screen factory to the router.
func (r *Router) Register(screen Screen, fn Factory) *Router {
	r.factories[screen] = fn
	return r
}

// RegisterList registers every entry and resets the stack to depth.
func (r *Router) RegisterList(entries []Entry, depth int) error {
	for _, e := range entries {
		r.Register(e.Screen, e.Factory)
	}
	return r.SetDepth(depth)
}

// SetDepth replaces the stack with an empty one of the given depth. Screens
// remembered by the old stack are destroyed.
func (r *Router) SetDepth(depth int) error {
	if depth <= 0 {
		return ErrInvalidDepth
	}
	r.Clear()
	r.stack = NewStack(depth)
	return nil
}

// SetHome designates the screen that collapses the history when reached.
// With aliveForever the home screen is built once and never destroyed.
func (r *Router) SetHome(screen Screen, aliveForever bool) {
	r.home = screen
	r.homeAlive = aliveForever
	if !aliveForever {
		r.homeHandle = widget.Handle{}
	}
}

func (r *Router) Home() Screen { return r.home }

// Stack returns the navigation stack.
func (r *Router) Stack() *Stack { return r.stack }

func (r *Router) pinned(h widget.Handle) bool {
	return r.homeAlive && !h.IsZero() && h == r.homeHandle
}

// live returns the handle to use for screen, building it when none of the
// candidates is still live.
func (r *Router) live(screen Screen, candidates ...widget.Handle) (widget.Handle, error) {
	for _, h := range candidates {
		if r.tree.Valid(h) && !r.tree.DeletePending(h) {
			return h, nil
		}
	}
	if screen == r.home && r.pinned(r.homeHandle) && r.tree.Valid(r.homeHandle) {
		return r.homeHandle, nil
	}

	fn, ok := r.factories[screen]
	if !ok || fn == nil {
		r.logger.Error("router: screen not registered", "screen", int(screen))
		return widget.Handle{}, fmt.Errorf("%w: %d", ErrNotRegistered, screen)
	}
	h := fn(r.tree)
	if !r.tree.Valid(h) {
		r.logger.Error("router: screen factory failed", "screen", int(screen))
		return widget.Handle{}, fmt.Errorf("%w: %d", ErrFactoryFailed, screen)
	}
	if screen == r.home && r.homeAlive {
		r.homeHandle = h
	}
	return h, nil
}

// release destroys h unless it is shown, pinned or listed in keep.
func (r *Router) release(h widget.Handle, keep []widget.Handle) {
	if !r.tree.Valid(h) || r.pinned(h) || h == r.disp.Active() {
		return
	}
	for _, k := range keep {
		if h == k {
			return
		}
	}
	r.tree.Destroy(h)
}

func (r *Router) releaseEntries(entries []StackEntry, keep ...widget.Handle) {
	for _, e := range entries {
		r.release(e.PrevAlive, keep)
		r.release(e.Handle, keep)
	}
}

// PushScreenOnly records a navigation to p.Screen without touching the
// display. It returns the new top entry and whether the outgoing screen
// should be destroyed. On error the stack is left unchanged.
func (r *Router) PushScreenOnly(p LoadParams) (StackEntry, bool, error) {
	if _, ok := r.factories[p.Screen]; !ok {
		r.logger.Error("router: screen not registered", "screen", int(p.Screen))
		return StackEntry{}, false, fmt.Errorf("%w: %d", ErrNotRegistered, p.Screen)
	}

	destroyPrev := p.DestroyPrev
	entry := StackEntry{Current: p.Screen, Prev: ScreenNone, Transition: p.Transition}

	// Where the new entry lands once newer frames are discarded.
	cut := r.stack.Len()
	var reuse widget.Handle
	found := r.stack.Search(p.Screen)
	if found >= 0 {
		prior := r.stack.entries[found]
		cut = found
		reuse = prior.Handle
		entry.Prev = prior.Prev
		entry.PrevAlive = prior.PrevAlive
		destroyPrev = true
	} else if top := r.stack.Peek(); top != nil {
		entry.Prev = top.Current
		entry.PrevAlive = top.Handle
	}
	if p.Screen == r.home {
		cut = 0
	}
	if cut >= r.stack.Depth() {
		r.logger.Error("router: navigation stack full", "screen", int(p.Screen), "depth", r.stack.Depth())
		return StackEntry{}, false, ErrStackFull
	}

	h, err := r.live(p.Screen, reuse)
	if err != nil {
		return StackEntry{}, false, err
	}
	entry.Handle = h

	if r.pinned(r.disp.Active()) {
		destroyPrev = false
	}
	if (found < 0 && destroyPrev) || entry.PrevAlive == h {
		entry.PrevAlive = widget.Handle{}
	}

	r.releaseEntries(r.stack.truncate(cut), h, entry.PrevAlive)
	if err := r.stack.Push(entry); err != nil {
		r.logger.Error("router: push failed", "screen", int(p.Screen), "error", err)
		return StackEntry{}, false, err
	}
	return entry, destroyPrev, nil
}

// Load navigates to p.Screen, playing p.Transition.
func (r *Router) Load(p LoadParams) error {
	entry, destroyPrev, err := r.PushScreenOnly(p)
	if err != nil {
		return err
	}
	if entry.Handle == r.disp.Active() {
		r.disp.Invalidate(widget.Handle{})
		return nil
	}
	return r.disp.LoadScreen(entry.Handle, p.Transition, destroyPrev)
}

// GoBack returns step screens back in the history with the inverse of the
// transition that led forward. A step of zero or less only reports the
// previous screen without navigating. It returns the screen now shown, or
// ScreenNone with an error.
func (r *Router) GoBack(step int) (Screen, error) {
	if r.stack.IsEmpty() {
		r.logger.Warn("router: go back on empty stack")
		return ScreenNone, ErrStackEmpty
	}
	if step <= 0 {
		return r.stack.Peek().Prev, nil
	}

	step = min(step, r.stack.Len())
	frontier := *r.stack.PeekBy(step - 1)
	tr := frontier.Transition
	tr.Type = tr.Type.Inverse()

	target := frontier.Prev
	if target == ScreenNone {
		if r.home != ScreenNone {
			target = r.home
		} else {
			target = r.stack.Bottom().Current
		}
	}
	resetToHome := target == r.home

	// Candidates for a live target, in order of preference.
	var below *StackEntry
	if !resetToHome {
		below = r.stack.PeekBy(step)
	}
	var candidates []widget.Handle
	if frontier.Current == target {
		candidates = append(candidates, frontier.Handle)
	}
	if frontier.Prev == target {
		candidates = append(candidates, frontier.PrevAlive)
	}
	if below != nil && below.Current == target {
		candidates = append(candidates, below.Handle)
	}
	h, err := r.live(target, candidates...)
	if err != nil {
		return ScreenNone, err
	}

	if resetToHome {
		r.releaseEntries(r.stack.truncate(0), h)
	} else {
		r.releaseEntries(r.stack.truncate(r.stack.Len()-step), h)
	}

	if top := r.stack.Peek(); top != nil && top.Current == target {
		top.Handle = h
	} else {
		entry := StackEntry{Current: target, Handle: h, Prev: ScreenNone}
		if top != nil {
			entry.Prev = top.Current
		}
		if err := r.stack.Push(entry); err != nil {
			r.logger.Error("router: push failed", "screen", int(target), "error", err)
			return ScreenNone, err
		}
	}

	if h == r.disp.Active() {
		r.disp.Invalidate(widget.Handle{})
		return target, nil
	}
	if err := r.disp.LoadScreen(h, tr, !r.pinned(r.disp.Active())); err != nil {
		return ScreenNone, err
	}
	return target, nil
}

// Current returns the screen on top of the stack.
func (r *Router) Current() Screen {
	if top := r.stack.Peek(); top != nil {
		return top.Current
	}
	return ScreenNone
}

// PrevID returns the screen the top entry replaced.
func (r *Router) PrevID() Screen {
	if top := r.stack.Peek(); top != nil {
		return top.Prev
	}
	return ScreenNone
}

// PrevIDBy returns the screen step entries below the top.
func (r *Router) PrevIDBy(step int) Screen {
	if e := r.stack.PeekBy(step); e != nil {
		return e.Current
	}
	return ScreenNone
}

func (r *Router) IsCurrent(screen Screen) bool {
	top := r.stack.Peek()
	return top != nil && top.Current == screen
}

func (r *Router) IsPrev(screen Screen) bool {
	top := r.stack.Peek()
	return top != nil && top.Prev == screen
}

// Depth returns the number of entries on the stack.
func (r *Router) Depth() int {
	return r.stack.Len()
}

// Clear empties the history, destroying remembered screens that are not on
// the panel.
func (r *Router) Clear() {
	if r.stack == nil {
		return
	}
	r.releaseEntries(r.stack.truncate(0))
}
