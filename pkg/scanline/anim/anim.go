// Package anim is a small cooperative animation scheduler. Animations
// interpolate one integer value between two endpoints and report it through
// callbacks; the caller advances them by calling Tick from its own loop.
//
// The scheduler has a fixed number of slots. Start fails with ErrNoSlot
// rather than growing, which lets callers fall back to doing the work
// synchronously.
package anim

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultSlots is enough for one transition plus a pending screen delete.
const DefaultSlots = 8

// ErrNoSlot is returned by Start when every slot is in use.
var ErrNoSlot = errors.New("anim: no free animation slot")

// Animation describes one interpolation. Callbacks are optional. OnExec
// receives the current value on every tick once the delay has elapsed;
// OnReady runs once after the final OnExec(To).
type Animation struct {
	Name     string
	From, To int
	Duration time.Duration
	Delay    time.Duration
	// Ease defaults to ease.InOutQuad.
	Ease ease.TweenFunc

	OnStart func()
	OnExec  func(v int)
	OnReady func()
}

// ID identifies a started animation. It goes stale once the animation ends.
type ID struct {
	index int
	gen   uint32
}

type slot struct {
	gen     uint32
	live    bool
	started bool
	anim    Animation
	tween   *gween.Tween
	delay   time.Duration
}

// Scheduler runs animations from a single goroutine.
type Scheduler struct {
	slots  []slot
	logger *slog.Logger
}

// NewScheduler creates a scheduler with n slots.
func NewScheduler(n int, logger *slog.Logger) *Scheduler {
	if n < 1 {
		n = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{slots: make([]slot, n), logger: logger}
}

// Start schedules a. It runs no callback itself; the first Tick after the
// delay calls OnStart and OnExec.
func (s *Scheduler) Start(a Animation) (ID, error) {
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.live {
			continue
		}
		if a.Ease == nil {
			a.Ease = ease.InOutQuad
		}
		sl.gen++
		sl.live = true
		sl.started = false
		sl.anim = a
		sl.delay = a.Delay
		sl.tween = nil
		if a.Duration > 0 {
			sl.tween = gween.New(float32(a.From), float32(a.To), float32(a.Duration.Seconds()), a.Ease)
		}
		return ID{index: i, gen: sl.gen}, nil
	}
	s.logger.Warn("anim: scheduler full", "name", a.Name, "slots", len(s.slots))
	return ID{}, ErrNoSlot
}

func (s *Scheduler) lookup(id ID) *slot {
	if id.gen == 0 || id.index < 0 || id.index >= len(s.slots) {
		return nil
	}
	sl := &s.slots[id.index]
	if !sl.live || sl.gen != id.gen {
		return nil
	}
	return sl
}

// Running reports whether id has not finished yet.
func (s *Scheduler) Running(id ID) bool {
	return s.lookup(id) != nil
}

// Active returns the number of live animations.
func (s *Scheduler) Active() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].live {
			n++
		}
	}
	return n
}

// Tick advances every animation that was live when the call began by dt.
// Animations started from a callback first move on the next Tick.
func (s *Scheduler) Tick(dt time.Duration) {
	ids := make([]ID, 0, len(s.slots))
	for i := range s.slots {
		if s.slots[i].live {
			ids = append(ids, ID{index: i, gen: s.slots[i].gen})
		}
	}
	for _, id := range ids {
		s.step(id, dt)
	}
}

func (s *Scheduler) step(id ID, dt time.Duration) {
	sl := s.lookup(id)
	if sl == nil {
		return
	}
	if sl.delay > 0 {
		if dt < sl.delay {
			sl.delay -= dt
			return
		}
		dt -= sl.delay
		sl.delay = 0
	}
	if !sl.started {
		sl.started = true
		if sl.anim.OnStart != nil {
			sl.anim.OnStart()
		}
		// OnStart may have finished or replaced this animation.
		if sl = s.lookup(id); sl == nil {
			return
		}
	}

	value, done := float32(sl.anim.To), true
	if sl.tween != nil {
		value, done = sl.tween.Update(float32(dt.Seconds()))
	}
	if done {
		s.complete(id)
		return
	}
	if sl.anim.OnExec != nil {
		sl.anim.OnExec(int(math.Round(float64(value))))
	}
}

// Finish jumps id to its end value and runs its remaining callbacks now.
func (s *Scheduler) Finish(id ID) {
	sl := s.lookup(id)
	if sl == nil {
		return
	}
	if !sl.started {
		sl.started = true
		if sl.anim.OnStart != nil {
			sl.anim.OnStart()
		}
		if s.lookup(id) == nil {
			return
		}
	}
	s.complete(id)
}

// FinishAll finishes every live animation in slot order.
func (s *Scheduler) FinishAll() {
	for i := range s.slots {
		if s.slots[i].live {
			s.Finish(ID{index: i, gen: s.slots[i].gen})
		}
	}
}

// Cancel drops id without running further callbacks.
func (s *Scheduler) Cancel(id ID) {
	if sl := s.lookup(id); sl != nil {
		sl.live = false
		sl.anim = Animation{}
		sl.tween = nil
	}
}

// complete frees the slot before OnReady so the callback may start a new
// animation in it.
func (s *Scheduler) complete(id ID) {
	sl := s.lookup(id)
	a := sl.anim
	sl.live = false
	sl.anim = Animation{}
	sl.tween = nil
	if a.OnExec != nil {
		a.OnExec(a.To)
	}
	if a.OnReady != nil {
		a.OnReady()
	}
}
