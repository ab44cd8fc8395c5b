// Package sdl runs a compositor inside an SDL2 window, standing in for a
// real panel during development. The window keeps a streaming texture the
// size of the panel; every flushed band is copied into it and the texture is
// presented once per host loop iteration.
package sdl

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/input"
)

var ErrQuit = errors.New("sdl: window closed")

// Options configures a simulator window.
type Options struct {
	Title         string
	Width         int
	Height        int
	WindowOptions WindowOptions
	Logger        *slog.Logger
}

// Window wraps the SDL window, renderer and panel texture.
type Window struct {
	Window   *sdl2.Window
	Renderer *sdl2.Renderer
	Texture  *sdl2.Texture
	Title    string

	width, height   int
	scale           int32
	hasVSync        bool
	lastPresentTime uint64
	changed         bool
	pressed         bool
	logger          *slog.Logger
}

// Open initialises SDL video and creates a window showing a panel of the
// given resolution.
func Open(opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("sdl: invalid panel size %dx%d", opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := sdl2.Init(sdl2.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}

	scale := opts.WindowOptions.scale()
	w, h := int32(opts.Width), int32(opts.Height)

	logger.Debug("Initializing SDL Window", "width", w*scale, "height", h*scale)

	window, err := sdl2.CreateWindow(opts.Title, sdl2.WINDOWPOS_CENTERED, sdl2.WINDOWPOS_CENTERED,
		w*scale, h*scale, opts.WindowOptions.ToSDLFlags())
	if err != nil {
		sdl2.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	renderer, err := sdl2.CreateRenderer(window, -1, sdl2.RENDERER_ACCELERATED|sdl2.RENDERER_PRESENTVSYNC)
	if err != nil {
		logger.Error("Failed to create accelerated renderer, falling back to software", "error", err)
		renderer, err = sdl2.CreateRenderer(window, -1, sdl2.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		sdl2.Quit()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}
	renderer.SetLogicalSize(w, h)

	texture, err := renderer.CreateTexture(sdl2.PIXELFORMAT_ARGB8888, sdl2.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl2.Quit()
		return nil, fmt.Errorf("sdl: create texture: %w", err)
	}

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl2.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Texture:  texture,
		Title:    opts.Title,
		width:    opts.Width,
		height:   opts.Height,
		scale:    scale,
		hasVSync: vsync,
		logger:   logger,
	}, nil
}

// Driver returns a display driver flushing into the window.
func (w *Window) Driver() *display.Driver {
	return &display.Driver{Width: w.width, Height: w.height, Flush: w.Flush}
}

// Flush copies one band into the panel texture.
func (w *Window) Flush(area gfx.Rect, pixels []gfx.Color) {
	if area.Empty() || len(pixels) < area.W*area.H {
		return
	}
	rect := &sdl2.Rect{X: int32(area.X), Y: int32(area.Y), W: int32(area.W), H: int32(area.H)}
	if err := w.Texture.Update(rect, unsafe.Pointer(unsafe.SliceData(pixels)), area.W*4); err != nil {
		w.logger.Error("Failed to update panel texture", "area", area.String(), "error", err)
		return
	}
	w.changed = true
}

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) {
	if title == w.Title {
		return
	}
	w.Title = title
	w.Window.SetTitle(title)
}

// Present shows the texture if anything was flushed since the last call and
// enforces ~60fps frame timing when VSync is not available.
func (w *Window) Present() {
	if w.changed {
		w.Renderer.Clear()
		w.Renderer.Copy(w.Texture, nil, nil)
		w.Renderer.Present()
		w.changed = false
	}
	if !w.hasVSync {
		now := sdl2.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl2.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl2.GetTicks64()
	}
}

// PollEvents drains the SDL queue, converting the left mouse button into
// touches delivered to fn. It returns ErrQuit once the window was closed.
func (w *Window) PollEvents(fn func(input.Touch)) error {
	for event := sdl2.PollEvent(); event != nil; event = sdl2.PollEvent() {
		switch e := event.(type) {
		case *sdl2.QuitEvent:
			return ErrQuit
		case *sdl2.MouseButtonEvent:
			if e.Button != sdl2.BUTTON_LEFT {
				continue
			}
			kind := input.Release
			if e.Type == sdl2.MOUSEBUTTONDOWN {
				kind = input.Press
			}
			w.pressed = kind == input.Press
			fn(input.Touch{Kind: kind, Pos: gfx.Point{X: int(e.X), Y: int(e.Y)}})
		case *sdl2.MouseMotionEvent:
			if !w.pressed {
				continue
			}
			fn(input.Touch{Kind: input.Move, Pos: gfx.Point{X: int(e.X), Y: int(e.Y)}})
		case *sdl2.WindowEvent:
			if e.Event == sdl2.WINDOWEVENT_EXPOSED {
				w.changed = true
			}
		}
	}
	return nil
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	if w.Texture != nil {
		w.Texture.Destroy()
	}
	w.Renderer.Destroy()
	w.Window.Destroy()
	sdl2.Quit()
}
