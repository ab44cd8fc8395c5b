package main

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/scanline/pkg/scanline"
	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/input"
	"github.com/BrandonKowalski/scanline/pkg/scanline/router"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

//go:embed assets/*.svg
var assets embed.FS

const (
	ScreenHome router.Screen = iota
	ScreenList
	ScreenSettings
	ScreenAbout
)

const (
	headerHeight = 48
	rowHeight    = 64
	margin       = 12
	listRows     = 24
)

// demo owns the simulator's screens. Every factory builds its screen from
// scratch; the router decides which ones stay alive.
type demo struct {
	c      *scanline.Compositor
	icons  map[string]*widget.Icon
	logger *slog.Logger

	toast widget.Handle

	dragging   bool
	dragOrigin gfx.Point
	dragScroll gfx.Point
}

func newDemo(c *scanline.Compositor, logger *slog.Logger) (*demo, error) {
	d := &demo{c: c, icons: make(map[string]*widget.Icon), logger: logger}
	cache := widget.NewRasterCache()
	for _, name := range []string{"back", "info", "list", "gear"} {
		data, err := assets.ReadFile("assets/" + name + ".svg")
		if err != nil {
			return nil, err
		}
		icon, err := widget.NewIcon(name, data, cache)
		if err != nil {
			return nil, err
		}
		icon.Logger = logger
		d.icons[name] = icon
	}
	return d, nil
}

func (d *demo) register() error {
	d.c.Router.SetHome(ScreenHome, true)
	return d.c.Router.RegisterList([]router.Entry{
		{Screen: ScreenHome, Factory: d.home},
		{Screen: ScreenList, Factory: d.list},
		{Screen: ScreenSettings, Factory: d.settings},
		{Screen: ScreenAbout, Factory: d.about},
	}, d.c.Config().Stack.Depth)
}

func (d *demo) panel() gfx.Rect {
	return d.c.Display.Driver().Bounds()
}

func (d *demo) navigate(screen router.Screen, t display.Type) {
	if err := d.c.Load(screen, t, false); err != nil {
		d.logger.Error("Navigation failed", "screen", int(screen), "error", err)
	}
}

func (d *demo) back() {
	if _, err := d.c.Router.GoBack(1); err != nil {
		d.logger.Warn("Go back failed", "error", err)
	}
}

// button adds a pressable row that highlights while held and calls fn on
// release.
func (d *demo) button(tree *widget.Tree, parent widget.Handle, name string, area gfx.Rect, icon string, fn func()) widget.Handle {
	th := d.c.Theme()
	h := tree.Add(parent, name, area, widget.Fill{Color: th.Surface})
	tree.Add(h, name+":border", area, widget.Border{Color: th.Accent, Width: 2})
	if i, ok := d.icons[icon]; ok {
		slot := area.Inset(gfx.UniformInsets(margin))
		slot.W = slot.H
		tree.Add(h, name+":icon", slot, i)
	}

	d.c.Input.On(h, func(ev input.Event) {
		switch ev.Kind {
		case input.Press:
			tree.SetDrawer(h, widget.Fill{Color: th.Highlight})
			d.c.Display.Invalidate(h)
		case input.Release:
			tree.SetDrawer(h, widget.Fill{Color: th.Surface})
			d.c.Display.Invalidate(h)
			if fn != nil && tree.Area(h).Contains(ev.Pos.X, ev.Pos.Y) {
				fn()
			}
		}
	})
	return h
}

// header adds a title bar with a back button.
func (d *demo) header(tree *widget.Tree, root widget.Handle) {
	p := d.panel()
	th := d.c.Theme()
	tree.Add(root, "header", gfx.XYWH(0, 0, p.W, headerHeight), widget.Fill{Color: th.Accent})
	d.button(tree, root, "back", gfx.XYWH(0, 0, headerHeight+margin, headerHeight), "back", d.back)
}

func (d *demo) home(tree *widget.Tree) widget.Handle {
	p := d.panel()
	th := d.c.Theme()
	root := tree.NewScreen("home", p, th.Background)
	tree.Add(root, "header", gfx.XYWH(0, 0, p.W, headerHeight), widget.Fill{Color: th.Accent})

	entries := []struct {
		name   string
		icon   string
		screen router.Screen
		tr     display.Type
	}{
		{"list", "list", ScreenList, display.MoveLeft},
		{"settings", "gear", ScreenSettings, display.CoverUp},
		{"about", "info", ScreenAbout, display.CoverLeft},
	}
	y := headerHeight + margin
	for _, e := range entries {
		d.button(tree, root, e.name, gfx.XYWH(margin, y, p.W-2*margin, rowHeight), e.icon,
			func() { d.navigate(e.screen, e.tr) })
		y += rowHeight + margin
	}
	return root
}

// list is taller than the panel; dragging scrolls it.
func (d *demo) list(tree *widget.Tree) widget.Handle {
	p := d.panel()
	th := d.c.Theme()
	root := tree.NewScreen("list", p, th.Background)

	y := headerHeight + margin
	for i := 0; i < listRows; i++ {
		tree.Add(root, fmt.Sprintf("row-%d", i), gfx.XYWH(margin, y, p.W-2*margin, rowHeight/2), widget.Fill{Color: th.Surface})
		y += rowHeight/2 + margin
	}
	d.header(tree, root)
	d.c.Input.On(root, d.drag)
	return root
}

func (d *demo) drag(ev input.Event) {
	act := d.c.Display.ActiveArea()
	// ev.Pos is in content coordinates; convert back to the panel so the
	// delta does not chase the scroll it causes.
	panel := gfx.Point{X: ev.Pos.X - act.X, Y: ev.Pos.Y - act.Y}
	switch ev.Kind {
	case input.Press:
		d.dragging = true
		d.dragOrigin = panel
		d.dragScroll = act.Origin()
	case input.Move:
		if d.dragging {
			d.c.Display.Scroll(d.dragScroll.X, d.dragScroll.Y-(panel.Y-d.dragOrigin.Y))
		}
	case input.Release:
		d.dragging = false
	}
}

func (d *demo) settings(tree *widget.Tree) widget.Handle {
	p := d.panel()
	root := tree.NewScreen("settings", p, d.c.Theme().Background)
	d.header(tree, root)
	d.button(tree, root, "toast", gfx.XYWH(margin, headerHeight+margin, p.W-2*margin, rowHeight), "info", d.toggleToast)
	d.button(tree, root, "about", gfx.XYWH(margin, headerHeight+rowHeight+2*margin, p.W-2*margin, rowHeight), "gear",
		func() { d.navigate(ScreenAbout, display.MoveUp) })
	return root
}

func (d *demo) about(tree *widget.Tree) widget.Handle {
	p := d.panel()
	th := d.c.Theme()
	root := tree.NewScreen("about", p, th.Background)
	d.header(tree, root)
	size := min(p.W, p.H) / 3
	tree.Add(root, "logo", gfx.XYWH((p.W-size)/2, (p.H-size)/2, size, size), d.icons["info"])
	d.button(tree, root, "home", gfx.XYWH(margin, p.H-rowHeight-margin, p.W-2*margin, rowHeight), "list",
		func() { d.navigate(ScreenHome, display.None) })
	return root
}

// toggleToast shows or hides a banner on the top layer, above whatever
// screen is active.
func (d *demo) toggleToast() {
	tree := d.c.Tree
	if tree.Valid(d.toast) {
		d.c.Display.SetTopLayer(widget.Handle{})
		tree.Destroy(d.toast)
		d.toast = widget.Handle{}
		return
	}
	p := d.panel()
	area := gfx.XYWH(0, p.H-rowHeight, p.W, rowHeight)
	d.toast = tree.NewScreen("toast", area, 0)
	tree.Add(d.toast, "toast:banner", area, widget.Fill{Color: d.c.Theme().Overlay})
	slot := area.Inset(gfx.UniformInsets(margin))
	slot.W = slot.H
	tree.Add(d.toast, "toast:icon", slot, d.icons["info"])
	d.c.Display.SetTopLayer(d.toast)
}
