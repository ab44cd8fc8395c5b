// Command simulator runs the scanline compositor in an SDL2 window with a few
// demo screens. Mouse clicks act as touches.
//
// Configuration comes from the file named by SCANLINE_CONFIG, with
// WINDOW_WIDTH and WINDOW_HEIGHT overriding the panel size. ENVIRONMENT=DEV
// turns on debug logging of the compositor internals.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/BrandonKowalski/scanline/pkg/scanline"
	"github.com/BrandonKowalski/scanline/pkg/scanline/constants"
	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/input"
	"github.com/BrandonKowalski/scanline/pkg/scanline/platform/sdl"
	"github.com/BrandonKowalski/scanline/pkg/scanline/theme"
)

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "simulator:", err)
		if scanline.IsSetupError(err) {
			// Configuration, window or device problems: nothing was shown.
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	lang := flag.String("lang", "en", "language of the window title")
	scale := flag.Int("scale", 1, "integer window scale factor")
	themeName := flag.String("theme", "teal", "built-in theme: teal or dark")
	themeFile := flag.String("theme-file", "", "TOML theme file overriding -theme")
	touch := flag.Bool("touch", false, "also read touches from the configured evdev device")
	flag.Parse()

	cfg, err := scanline.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	if cfg.Log.Path != "" {
		scanline.SetLogPath(cfg.Log.Path)
	}
	scanline.SetRawLogLevel(cfg.Log.Level)
	defer scanline.CloseLogger()
	logger := scanline.GetLogger()

	th, err := loadTheme(*themeName, *themeFile)
	if err != nil {
		return scanline.NewError("theme", err)
	}

	titles, err := sdl.NewTitles(*lang)
	if err != nil {
		return scanline.NewError("i18n", err)
	}
	baseTitle := titles.Window("scanline", cfg.Panel.Width, cfg.Panel.Height)

	win, err := sdl.Open(sdl.Options{
		Title:  baseTitle,
		Width:  cfg.Panel.Width,
		Height: cfg.Panel.Height,
		WindowOptions: sdl.WindowOptions{
			Borderless: !constants.IsDevMode(),
			Scale:      *scale,
		},
		Logger: logger,
	})
	if err != nil {
		return scanline.NewError("window", err)
	}
	defer win.Close()

	c, err := scanline.New(win.Driver(), scanline.Options{Config: cfg, Theme: th})
	if err != nil {
		return err
	}
	defer c.Close()

	demo, err := newDemo(c, logger)
	if err != nil {
		return err
	}
	if err := demo.register(); err != nil {
		return err
	}
	if err := c.Load(ScreenHome, display.None, false); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *touch {
		src, err := input.OpenTouch(cfg.Input.Device, cfg.Panel.Width, cfg.Panel.Height, c.Input.Gate(), logger)
		if err != nil {
			return scanline.NewError("touch", err)
		}
		defer src.Close()
		go func() {
			if err := src.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Touch device stopped", "error", err)
			}
		}()
		c.AttachTouch(src.Events())
	}

	logger.Info("Simulator started", "width", cfg.Panel.Width, "height", cfg.Panel.Height, "theme", th.Name)

	err = c.Run(ctx, func() error {
		if err := win.PollEvents(func(t input.Touch) { c.Feed(t) }); err != nil {
			return err
		}
		win.SetTitle(baseTitle + " - " + titles.Depth(c.Router.Depth()))
		win.Present()
		return nil
	})
	if errors.Is(err, sdl.ErrQuit) {
		return nil
	}
	return err
}

func loadTheme(name, path string) (theme.Theme, error) {
	if path == "" {
		return theme.ByName(name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return theme.Theme{}, fmt.Errorf("read theme: %w", err)
	}
	return theme.Parse(name, string(data))
}
