package router_test

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/scanline/pkg/scanline/anim"
	"github.com/BrandonKowalski/scanline/pkg/scanline/display"
	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
	"github.com/BrandonKowalski/scanline/pkg/scanline/router"
	"github.com/BrandonKowalski/scanline/pkg/scanline/widget"
)

// Screen identifiers - use typed constants for compile-time safety
const (
	ScreenGameList router.Screen = iota
	ScreenGameDetail
	ScreenSettings
)

func screenOf(name string, bg uint32) router.Factory {
	return func(t *widget.Tree) widget.Handle {
		fmt.Println("build", name)
		return t.NewScreen(name, gfx.XYWH(0, 0, 240, 320), gfx.Hex(bg))
	}
}

// Example demonstrates forward navigation with a transition and going back.
func Example() {
	tree := widget.NewTree(nil)
	anims := anim.NewScheduler(anim.DefaultSlots, nil)
	drv := &display.Driver{Width: 240, Height: 320, Flush: func(gfx.Rect, []gfx.Color) {}}
	disp, _ := display.New(drv, tree, display.Options{Animations: anims})

	r := router.New(tree, disp, router.Options{Depth: 4})
	r.Register(ScreenGameList, screenOf("list", 0x202020)).
		Register(ScreenGameDetail, screenOf("detail", 0x303030))

	slide := display.Transition{Type: display.MoveRight, Duration: 300 * time.Millisecond}

	_ = r.Load(router.LoadParams{Screen: ScreenGameList})
	_ = r.Load(router.LoadParams{Screen: ScreenGameDetail, Transition: slide})
	for anims.Active() > 0 {
		anims.Tick(30 * time.Millisecond)
	}
	fmt.Println("showing", tree.Name(disp.Active()), "depth", r.Depth())

	back, _ := r.GoBack(1)
	fmt.Println("back to", back, "playing", disp.Transition())
	for anims.Active() > 0 {
		anims.Tick(30 * time.Millisecond)
	}
	fmt.Println("showing", tree.Name(disp.Active()), "depth", r.Depth())

	// Output:
	// build list
	// build detail
	// showing detail depth 2
	// back to 0 playing MoveLeft
	// showing list depth 1
}

// Example_home demonstrates how reaching the home screen collapses history.
func Example_home() {
	tree := widget.NewTree(nil)
	drv := &display.Driver{Width: 240, Height: 320, Flush: func(gfx.Rect, []gfx.Color) {}}
	disp, _ := display.New(drv, tree, display.Options{})

	r := router.New(tree, disp, router.Options{})
	r.Register(ScreenGameList, screenOf("list", 0x202020)).
		Register(ScreenGameDetail, screenOf("detail", 0x303030)).
		Register(ScreenSettings, screenOf("settings", 0x404040))
	r.SetHome(ScreenGameList, true)

	for _, s := range []router.Screen{ScreenGameList, ScreenGameDetail, ScreenSettings, ScreenGameList} {
		_ = r.Load(router.LoadParams{Screen: s, DestroyPrev: true})
		fmt.Println("depth", r.Depth())
	}

	// Output:
	// build list
	// depth 1
	// build detail
	// depth 2
	// build settings
	// depth 3
	// depth 1
}
