package sdl

import sdl2 "github.com/veandco/go-sdl2/sdl"

type WindowOptions struct {
	Borderless  bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable   bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen  bool // Fullscreen mode (SDL_WINDOW_FULLSCREEN)
	AlwaysOnTop bool // Window stays above others (SDL_WINDOW_ALWAYS_ON_TOP)
	Hidden      bool // Start hidden (omits SDL_WINDOW_SHOWN)
	// Scale enlarges the window by an integer factor; the panel resolution
	// stays the logical size.
	Scale int
}

func (wo WindowOptions) IsZero() bool {
	return wo == WindowOptions{}
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl2.WINDOW_SHOWN
	}

	if wo.Resizable {
		flags |= sdl2.WINDOW_RESIZABLE
	}

	if wo.Borderless {
		flags |= sdl2.WINDOW_BORDERLESS
	}

	if wo.Fullscreen {
		flags |= sdl2.WINDOW_FULLSCREEN
	}

	if wo.AlwaysOnTop {
		flags |= sdl2.WINDOW_ALWAYS_ON_TOP
	}

	return flags
}

func (wo WindowOptions) scale() int32 {
	if wo.Scale < 1 {
		return 1
	}
	return int32(wo.Scale)
}
