package scanline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/input"
	"github.com/BrandonKowalski/scanline/pkg/scanline/internal"
	"github.com/BrandonKowalski/scanline/pkg/scanline/router"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

const (
	screenHome router.Screen = iota
	screenNext
)

type recorder struct {
	flushes []gfx.Rect
}

func (r *recorder) flush(area gfx.Rect, _ []gfx.Color) {
	r.flushes = append(r.flushes, area)
}

func newCompositor(t *testing.T) (*Compositor, *recorder) {
	t.Helper()
	rec := &recorder{}
	drv := &display.Driver{Width: 40, Height: 20, Flush: rec.flush}
	c, err := New(drv, Options{Logger: discard()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, rec
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func screen(name string) router.Factory {
	return func(tree *widget.Tree) widget.Handle {
		return tree.NewScreen(name, gfx.XYWH(0, 0, 40, 20), gfx.Hex(0x000000))
	}
}

func TestNewRequiresDriver(t *testing.T) {
	_, err := New(nil, Options{})
	if !errors.Is(err, ErrNoDriver) {
		t.Fatalf("err = %v, want ErrNoDriver", err)
	}
	if !IsSetupError(err) {
		t.Error("missing driver should be reported as a setup error")
	}

	_, err = New(&display.Driver{Width: 10, Height: 10}, Options{})
	if !errors.Is(err, ErrNoDriver) {
		t.Errorf("driver without flush: err = %v, want ErrNoDriver", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Panel.BandHeight = 0
	drv := &display.Driver{Width: 40, Height: 20, Flush: func(gfx.Rect, []gfx.Color) {}}

	_, err := New(drv, Options{Config: cfg, Logger: discard()})
	if !errors.Is(err, internal.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	var setupErr *Error
	if !errors.As(err, &setupErr) || setupErr.Op != "config" {
		t.Errorf("err = %#v, want a config setup error", err)
	}
}

func TestDriverResolutionWins(t *testing.T) {
	c, _ := newCompositor(t)
	if got := c.Config().Panel; got.Width != 40 || got.Height != 20 {
		t.Errorf("panel = %dx%d, want 40x20", got.Width, got.Height)
	}
}

func TestTickRefreshesOncePerPeriod(t *testing.T) {
	c, rec := newCompositor(t)
	c.Router.Register(screenHome, screen("home"))
	if err := c.Load(screenHome, display.None, false); err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.Tick(10 * time.Millisecond)
	if len(rec.flushes) != 0 {
		t.Fatalf("flushed %d bands before the refresh period elapsed", len(rec.flushes))
	}

	c.Tick(20 * time.Millisecond)
	// 20 rows in bands of 10.
	if len(rec.flushes) != 2 {
		t.Fatalf("flushes = %v, want two bands", rec.flushes)
	}
	if c.Display.Pending() {
		t.Error("dirty area should have been consumed")
	}

	c.Tick(30 * time.Millisecond)
	if len(rec.flushes) != 2 {
		t.Errorf("idle tick flushed again: %v", rec.flushes)
	}
}

func TestFeedReachesHandler(t *testing.T) {
	c, _ := newCompositor(t)
	var button widget.Handle
	c.Router.Register(screenHome, func(tree *widget.Tree) widget.Handle {
		root := tree.NewScreen("home", gfx.XYWH(0, 0, 40, 20), gfx.Hex(0x000000))
		button = tree.Add(root, "button", gfx.XYWH(10, 5, 10, 10), nil)
		return root
	})
	if err := c.Load(screenHome, display.None, false); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var got []input.Event
	c.Input.On(button, func(ev input.Event) { got = append(got, ev) })

	if !c.Feed(input.Touch{Kind: input.Press, Pos: gfx.Point{X: 12, Y: 7}}) {
		t.Fatal("touch on the button was not queued")
	}
	if c.Feed(input.Touch{Kind: input.Press, Pos: gfx.Point{X: 1, Y: 1}}) {
		t.Error("touch outside any handler should not be queued")
	}
	c.Tick(time.Millisecond)

	if len(got) != 1 || got[0].Target != button || got[0].Kind != input.Press {
		t.Fatalf("events = %+v, want one press on the button", got)
	}
}

func TestTickDrainsAttachedTouches(t *testing.T) {
	c, _ := newCompositor(t)
	var root widget.Handle
	c.Router.Register(screenHome, func(tree *widget.Tree) widget.Handle {
		root = tree.NewScreen("home", gfx.XYWH(0, 0, 40, 20), gfx.Hex(0x000000))
		return root
	})
	_ = c.Load(screenHome, display.None, false)

	presses := 0
	c.Input.On(root, func(input.Event) { presses++ })

	ch := make(chan input.Touch, 4)
	ch <- input.Touch{Kind: input.Press, Pos: gfx.Point{X: 3, Y: 3}}
	ch <- input.Touch{Kind: input.Release, Pos: gfx.Point{X: 3, Y: 3}}
	close(ch)
	c.AttachTouch(ch)

	c.Tick(time.Millisecond)
	if presses != 2 {
		t.Errorf("delivered %d events, want 2", presses)
	}
}

func TestTouchesDroppedDuringTransition(t *testing.T) {
	c, _ := newCompositor(t)
	var next widget.Handle
	c.Router.Register(screenHome, screen("home")).
		Register(screenNext, func(tree *widget.Tree) widget.Handle {
			next = tree.NewScreen("next", gfx.XYWH(0, 0, 40, 20), gfx.Hex(0x000000))
			return next
		})
	_ = c.Load(screenHome, display.None, false)
	_ = c.Load(screenNext, display.MoveLeft, false)

	c.Tick(30 * time.Millisecond)
	if !c.Display.InTransition() {
		t.Fatal("transition should still be running")
	}
	c.Input.On(next, func(input.Event) { t.Error("event delivered mid-transition") })
	if c.Feed(input.Touch{Kind: input.Press, Pos: gfx.Point{X: 3, Y: 3}}) {
		t.Error("touch accepted while input is suspended")
	}

	for i := 0; i < 20 && c.Display.InTransition(); i++ {
		c.Tick(30 * time.Millisecond)
	}
	if c.Display.InTransition() {
		t.Fatal("transition never finished")
	}
	if c.Input.Gate().Suspended() {
		t.Error("input still suspended after the transition")
	}
}

func TestTickCollectsDestroyedScreens(t *testing.T) {
	c, _ := newCompositor(t)
	var home widget.Handle
	c.Router.Register(screenHome, func(tree *widget.Tree) widget.Handle {
		home = tree.NewScreen("home", gfx.XYWH(0, 0, 40, 20), gfx.Hex(0x000000))
		return home
	}).Register(screenNext, screen("next"))

	_ = c.Load(screenHome, display.None, false)
	_ = c.Load(screenNext, display.None, true)
	c.Tick(time.Millisecond)

	if !c.Tree.Valid(home) || !c.Tree.DeletePending(home) {
		t.Fatal("destroyed screen should wait out the destroy delay")
	}

	c.Tick(c.Config().Animation.DestroyDelay.Duration)
	if c.Tree.Valid(home) {
		t.Error("destroyed screen still live after the destroy delay")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	c, _ := newCompositor(t)
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := c.Run(ctx, func() error {
		ticks++
		if ticks == 3 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	stop := errors.New("stop")
	if err := c.Run(context.Background(), func() error { return stop }); !errors.Is(err, stop) {
		t.Errorf("Run = %v, want the afterTick error", err)
	}

	c.Close()
	if err := c.Run(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close = %v, want ErrClosed", err)
	}
}

func TestIsSetupError(t *testing.T) {
	wrapped := fmt.Errorf("start: %w", NewError("touch", errors.New("no such device")))
	if !IsSetupError(wrapped) {
		t.Error("wrapped setup error not recognised")
	}
	if IsSetupError(errors.New("plain")) || IsSetupError(nil) {
		t.Error("plain errors are not setup errors")
	}
	if got, want := wrapped.Error(), "start: scanline: touch: no such device"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
