package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

var ErrNoTouchAxes = errors.New("input: device reports no absolute X/Y axes")

type axis struct {
	min, max int32
	size     int
}

func (a axis) scale(v int32) int {
	span := a.max - a.min
	if span <= 0 {
		return int(v)
	}
	p := int(int64(v-a.min) * int64(a.size-1) / int64(span))
	return min(max(p, 0), a.size-1)
}

// decoder folds evdev events into touches, one per SYN_REPORT.
type decoder struct {
	x, y    axis
	pos     gfx.Point
	down    bool
	wasDown bool
	moved   bool
}

func (d *decoder) feed(ev *evdev.InputEvent) (Touch, bool) {
	switch ev.Type {
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_X, evdev.ABS_MT_POSITION_X:
			d.pos.X = d.x.scale(ev.Value)
			d.moved = true
		case evdev.ABS_Y, evdev.ABS_MT_POSITION_Y:
			d.pos.Y = d.y.scale(ev.Value)
			d.moved = true
		}
	case evdev.EV_KEY:
		if ev.Code == evdev.BTN_TOUCH {
			d.down = ev.Value != 0
		}
	case evdev.EV_SYN:
		if ev.Code != evdev.SYN_REPORT {
			return Touch{}, false
		}
		moved := d.moved
		d.moved = false
		switch {
		case d.down && !d.wasDown:
			d.wasDown = true
			return Touch{Kind: Press, Pos: d.pos}, true
		case !d.down && d.wasDown:
			d.wasDown = false
			return Touch{Kind: Release, Pos: d.pos}, true
		case d.down && moved:
			return Touch{Kind: Move, Pos: d.pos}, true
		}
	}
	return Touch{}, false
}

// TouchSource reads a touchscreen through evdev on its own goroutine and
// delivers touches, scaled to the panel resolution, over a channel.
type TouchSource struct {
	dev     *evdev.InputDevice
	dec     decoder
	events  chan Touch
	gate    *Gate
	running *atomic.Bool
	logger  *slog.Logger
}

// OpenTouch opens the event device at path (for example /dev/input/event1)
// and scales its axes to a width x height panel.
func OpenTouch(path string, width, height int, gate *Gate, logger *slog.Logger) (*TouchSource, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}

	infos, err := dev.AbsInfos()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("input: read axes of %s: %w", path, err)
	}
	xi, okX := infos[evdev.ABS_X]
	yi, okY := infos[evdev.ABS_Y]
	if !okX || !okY {
		dev.Close()
		return nil, ErrNoTouchAxes
	}

	name, _ := dev.Name()
	logger.Info("input: touch device opened", "path", path, "name", name,
		"x_min", xi.Minimum, "x_max", xi.Maximum, "y_min", yi.Minimum, "y_max", yi.Maximum)

	return &TouchSource{
		dev: dev,
		dec: decoder{
			x: axis{min: xi.Minimum, max: xi.Maximum, size: width},
			y: axis{min: yi.Minimum, max: yi.Maximum, size: height},
		},
		events:  make(chan Touch, 32),
		gate:    gate,
		running: atomic.NewBool(false),
		logger:  logger,
	}, nil
}

// Events returns the channel touches are delivered on. It is closed when Run
// returns.
func (s *TouchSource) Events() <-chan Touch { return s.events }

func (s *TouchSource) Running() bool { return s.running.Load() }

// Run reads the device until ctx is cancelled or the device fails. Touches
// arriving while the gate is suspended are discarded here so they never
// reach the compositor.
func (s *TouchSource) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("input: touch source already running")
	}
	defer s.running.Store(false)
	defer close(s.events)

	stop := context.AfterFunc(ctx, func() { s.dev.Close() })
	defer stop()

	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("input: touch read failed", "error", err)
			return fmt.Errorf("input: read: %w", err)
		}
		t, ok := s.dec.feed(ev)
		if !ok || (s.gate != nil && s.gate.Suspended()) {
			continue
		}
		select {
		case s.events <- t:
		default:
			s.logger.Debug("input: touch dropped, consumer behind", "touch", t.String())
		}
	}
}

// Close releases the device. Run returns once the pending read fails.
func (s *TouchSource) Close() error {
	return s.dev.Close()
}
