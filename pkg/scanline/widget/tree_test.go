package widget

import (
	"fmt"
	"testing"
	"time"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

func TestZeroHandleNeverValid(t *testing.T) {
	tree := NewTree(nil)
	if tree.Valid(Handle{}) {
		t.Fatal("zero handle resolved")
	}
	if got := tree.Add(Handle{}, "orphan", gfx.XYWH(0, 0, 1, 1), nil); !got.IsZero() {
		t.Fatalf("Add to zero parent = %v, want zero handle", got)
	}
}

func TestStaleHandleAfterFree(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	tree.Free(scr)

	if tree.Valid(scr) {
		t.Fatal("freed handle still valid")
	}
	// The slot is reused with a new generation.
	again := tree.NewScreen("next", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	if tree.Valid(scr) {
		t.Error("stale handle resolved to the reused slot")
	}
	if !tree.Valid(again) {
		t.Error("new screen not valid")
	}
}

func TestDeferredDestroyWaitsForReferences(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	btn := tree.Add(scr, "button", gfx.XYWH(10, 10, 50, 20), nil)

	tree.Retain(btn)
	tree.Destroy(scr)

	if n := tree.Collect(); n != 0 {
		t.Fatalf("Collect freed %d while a child was referenced", n)
	}
	if !tree.Valid(scr) || !tree.DeletePending(scr) {
		t.Fatal("screen should survive, flagged delete-pending")
	}

	tree.Release(btn)
	if n := tree.Collect(); n != 1 {
		t.Fatalf("Collect = %d, want 1", n)
	}
	if tree.Valid(scr) || tree.Valid(btn) {
		t.Error("subtree not freed")
	}
	if tree.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", tree.Pending())
	}
}

func TestSweepWaitsForDestroyDelay(t *testing.T) {
	tree := NewTree(nil)
	tree.SetDestroyDelay(300 * time.Millisecond)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	tree.Destroy(scr)

	if n := tree.Sweep(200 * time.Millisecond); n != 0 || !tree.Valid(scr) {
		t.Fatalf("Sweep freed %d before the delay ran out", n)
	}
	if n := tree.Sweep(100 * time.Millisecond); n != 1 || tree.Valid(scr) {
		t.Fatalf("Sweep = %d, want the screen freed after 300ms", n)
	}
}

func TestSweepRetriesAFullDelay(t *testing.T) {
	tree := NewTree(nil)
	tree.SetDestroyDelay(300 * time.Millisecond)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	tree.Retain(scr)
	tree.Destroy(scr)

	if tree.Sweep(300*time.Millisecond) != 0 {
		t.Fatal("referenced screen freed")
	}
	tree.Release(scr)
	if tree.Sweep(200*time.Millisecond) != 0 {
		t.Fatal("retry did not wait another full delay")
	}
	if tree.Sweep(100*time.Millisecond) != 1 {
		t.Fatal("screen not freed after the retry delay")
	}
}

func TestSweepWithoutDelayFreesImmediately(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	tree.Destroy(scr)
	if tree.Sweep(0) != 1 {
		t.Error("zero delay should free on the first sweep")
	}
}

func TestDestroyWaitsWhileUsing(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	tree.SetUsing(scr, true)
	tree.Destroy(scr)
	tree.Destroy(scr)

	if tree.Collect() != 0 || tree.Pending() != 1 {
		t.Fatal("in-use screen must stay queued exactly once")
	}
	tree.SetUsing(scr, false)
	if tree.Collect() != 1 {
		t.Fatal("screen not freed once released")
	}
}

func TestExtentSkipsIgnoredNodes(t *testing.T) {
	tree := NewTree(nil)
	panel := gfx.XYWH(0, 0, 240, 320)
	scr := tree.NewScreen("list", panel, gfx.Hex(0x000000))
	tree.Add(scr, "row", gfx.XYWH(0, 300, 240, 100), nil)
	badge := tree.Add(scr, "badge", gfx.XYWH(230, 0, 40, 10), nil)
	tree.SetIgnoreExtent(badge, true)

	if got, want := tree.Extent(scr, panel), gfx.XYWH(0, 0, 240, 400); got != want {
		t.Errorf("Extent = %v, want %v", got, want)
	}
}

func TestNodeAtPicksTopmost(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x000000))
	tree.Add(scr, "under", gfx.XYWH(0, 0, 100, 100), nil)
	over := tree.Add(scr, "over", gfx.XYWH(50, 50, 100, 100), nil)

	if got := tree.NodeAt(scr, 60, 60); got != over {
		t.Errorf("NodeAt = %s, want over", tree.Name(got))
	}
	if got := tree.NodeAt(scr, 200, 300); got != scr {
		t.Errorf("NodeAt outside children = %s, want screen", tree.Name(got))
	}
}

func TestComposeClipsToBand(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 4, 4), gfx.Hex(0x000000))
	red := gfx.Hex(0xFF0000)
	tree.Add(scr, "box", gfx.XYWH(0, 0, 4, 4), Fill{Color: red})

	band := gfx.XYWH(0, 2, 4, 1)
	buf := make([]gfx.Color, band.W*band.H)
	canvas := gfx.NewCanvas(buf, band)
	tree.Compose(scr, canvas, gfx.Point{}, band)

	for i, c := range buf {
		if c != red {
			t.Fatalf("pixel %d = %08x, want red", i, uint32(c))
		}
	}
}

func TestComposeHonoursClipChildren(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 8, 1), gfx.Hex(0x000000))
	box := tree.Add(scr, "box", gfx.XYWH(0, 0, 2, 1), nil)
	tree.SetClipChildren(box, true)
	tree.Add(box, "wide", gfx.XYWH(0, 0, 8, 1), Fill{Color: gfx.Hex(0xFFFFFF)})

	area := gfx.XYWH(0, 0, 8, 1)
	buf := make([]gfx.Color, 8)
	tree.Compose(scr, gfx.NewCanvas(buf, area), gfx.Point{}, area)

	for x, c := range buf {
		lit := c != 0
		if lit != (x < 2) {
			t.Errorf("pixel %d lit=%v", x, lit)
		}
	}
}

func TestComposeAppliesOffset(t *testing.T) {
	tree := NewTree(nil)
	scr := tree.NewScreen("home", gfx.XYWH(0, 0, 4, 1), gfx.Hex(0x000000))
	var got gfx.Rect
	tree.Add(scr, "probe", gfx.XYWH(10, 0, 2, 1), DrawerFunc(func(ctx DrawContext) {
		got = ctx.Bounds
	}))

	area := gfx.XYWH(0, 0, 4, 1)
	tree.Compose(scr, gfx.NewCanvas(make([]gfx.Color, 4), area), gfx.Point{X: -9}, area)
	if want := gfx.XYWH(1, 0, 2, 1); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func ExampleTree_Destroy() {
	tree := NewTree(nil)
	scr := tree.NewScreen("settings", gfx.XYWH(0, 0, 240, 320), gfx.Hex(0x202020))
	tree.Retain(scr)
	tree.Destroy(scr)

	fmt.Println("freed:", tree.Collect(), "valid:", tree.Valid(scr))
	tree.Release(scr)
	fmt.Println("freed:", tree.Collect(), "valid:", tree.Valid(scr))
	// Output:
	// freed: 0 valid: true
	// freed: 1 valid: false
}
