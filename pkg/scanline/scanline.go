// Package scanline is a strip-buffer compositor for small touch panels.
//
// A Compositor ties together the widget tree, the display refresh scheduler,
// the animation scheduler, the navigation router and input dispatch. It runs
// on a single goroutine: call Tick from your own loop or let Run drive it.
// Nothing in the compositor is a package-level singleton, so several
// compositors (one per panel, or one per test) can coexist.
package scanline

import (
	"context"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/scanline/pkg/scanline/anim"
	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/input"
	"github.com/BrandonKowalski/scanline/pkg/scanline/internal"
	"github.com/BrandonKowalski/scanline/pkg/scanline/router"
	"github.com/BrandonKowalski/scanline/pkg/scanline/theme"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// Config is the compositor configuration, normally decoded from TOML.
type Config = internal.Config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config { return internal.DefaultConfig() }

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return Config{}, NewError("config", err)
	}
	return cfg, nil
}

// LoadConfigFromEnv loads the file named by SCANLINE_CONFIG and applies the
// WINDOW_WIDTH, WINDOW_HEIGHT, SCANLINE_LOG_LEVEL and SCANLINE_TOUCH_DEVICE
// overrides.
func LoadConfigFromEnv() (Config, error) {
	cfg, err := internal.LoadConfigFromEnv()
	if err != nil {
		return Config{}, NewError("config", err)
	}
	return cfg, nil
}

// Options configures a Compositor.
type Options struct {
	Config Config
	// Logger receives the compositor's own logs. The internal JSON logger is
	// used when nil.
	Logger *slog.Logger
	// Alloc provides the line buffer; see display.Options.
	Alloc func(n int) []gfx.Color
	Theme theme.Theme
}

// Compositor is the context every operation hangs off.
type Compositor struct {
	Tree    *widget.Tree
	Display *display.Display
	Router  *router.Router
	Input   *input.Dispatcher
	Anims   *anim.Scheduler

	cfg     Config
	theme   theme.Theme
	logger  *slog.Logger
	touches <-chan input.Touch

	sinceRefresh time.Duration
	closed       bool
}

// New builds a compositor drawing to drv. A zero Options.Config selects the
// defaults; the driver's resolution always wins over the configured panel
// size.
func New(drv *display.Driver, opts Options) (*Compositor, error) {
	if drv == nil || drv.Flush == nil {
		return nil, NewError("display", ErrNoDriver)
	}
	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = internal.DefaultConfig()
	}
	cfg.Panel.Width, cfg.Panel.Height = drv.Width, drv.Height
	if err := cfg.Validate(); err != nil {
		return nil, NewError("config", err)
	}

	logger := opts.Logger
	if logger == nil {
		internal.SetInternalLogLevel(internal.ParseLevel(cfg.Log.InternalLevel))
		logger = internal.GetInternalLogger()
	}
	th := opts.Theme
	if th.Name == "" {
		th = theme.Teal()
	}

	tree := widget.NewTree(logger)
	tree.SetDestroyDelay(cfg.Animation.DestroyDelay.Duration)
	anims := anim.NewScheduler(cfg.Animation.Slots, logger)
	dispatcher := input.NewDispatcher(tree, input.NewGate(), logger)

	disp, err := display.New(drv, tree, display.Options{
		BandHeight:    cfg.Panel.BandHeight,
		DirtyCapacity: cfg.Refresh.DirtyCapacity,
		Logger:        logger,
		Alloc:         opts.Alloc,
		Animations:    anims,
		Input:         dispatcher.Gate(),
	})
	if err != nil {
		return nil, NewError("display", err)
	}

	c := &Compositor{
		Tree:    tree,
		Display: disp,
		Router:  router.New(tree, disp, router.Options{Depth: cfg.Stack.Depth, Logger: logger}),
		Input:   dispatcher,
		Anims:   anims,
		cfg:     cfg,
		theme:   th,
		logger:  logger,
	}
	logger.Debug("compositor ready",
		"width", drv.Width, "height", drv.Height,
		"band_height", disp.BandHeight(), "stack_depth", cfg.Stack.Depth)
	return c, nil
}

// Config returns the configuration in effect, panel size taken from the
// driver.
func (c *Compositor) Config() Config { return c.cfg }

func (c *Compositor) Theme() theme.Theme { return c.theme }

func (c *Compositor) Logger() *slog.Logger { return c.logger }

// Transition returns a transition of type t using the configured duration.
func (c *Compositor) Transition(t display.Type) display.Transition {
	return display.Transition{Type: t, Duration: c.cfg.Animation.Duration.Duration}
}

// AttachTouch makes Tick consume touches from ch, typically
// input.TouchSource.Events.
func (c *Compositor) AttachTouch(ch <-chan input.Touch) {
	c.touches = ch
}

// Feed routes one touch to the active screen.
func (c *Compositor) Feed(t input.Touch) bool {
	if c.Input.Gate().Suspended() {
		return false
	}
	return c.Input.Touch(c.Display.Active(), c.Display.ActiveArea().Origin(), t)
}

// Load navigates to screen with the configured transition duration.
func (c *Compositor) Load(screen router.Screen, t display.Type, destroyPrev bool) error {
	return c.Router.Load(router.LoadParams{
		Screen:      screen,
		Transition:  c.Transition(t),
		DestroyPrev: destroyPrev,
	})
}

// Tick advances the compositor by dt: pending touches are routed and
// dispatched, animations advance, at most one dirty area is redrawn per
// refresh period, and destroyed screens nobody references any more are
// freed once they have waited the configured destroy delay.
func (c *Compositor) Tick(dt time.Duration) {
	c.drainTouches()
	c.Input.Dispatch()
	c.Anims.Tick(dt)

	c.sinceRefresh += dt
	if period := c.cfg.Refresh.Period.Duration; c.sinceRefresh >= period {
		// Missed periods are not made up for.
		c.sinceRefresh = 0
		c.Display.RefreshPending()
	}

	if n := c.Tree.Sweep(dt); n > 0 {
		c.logger.Debug("freed destroyed screens", "count", n, "live", c.Tree.Len())
	}
}

func (c *Compositor) drainTouches() {
	if c.touches == nil {
		return
	}
	for {
		select {
		case t, ok := <-c.touches:
			if !ok {
				c.touches = nil
				return
			}
			c.Feed(t)
		default:
			return
		}
	}
}

// Run calls Tick every animation period until ctx is done. afterTick, when
// not nil, runs after every tick on the same goroutine; a host uses it to
// present frames and poll its own events.
func (c *Compositor) Run(ctx context.Context, afterTick func() error) error {
	if c.closed {
		return ErrClosed
	}
	ticker := time.NewTicker(c.cfg.Animation.Period.Duration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			c.Tick(now.Sub(last))
			last = now
			if afterTick == nil {
				continue
			}
			if err := afterTick(); err != nil {
				return err
			}
		}
	}
}

// Close drops queued input and empties the navigation history.
func (c *Compositor) Close() {
	c.Input.Clear()
	c.Router.Clear()
	c.Tree.Collect()
	c.closed = true
}

// SetLogPath sets the full path for the log file, including filename.
// Call before New to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger flushes and closes the log file.
func CloseLogger() {
	internal.CloseLogger()
}
