package widget

import (
	"bytes"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

func TestRasterCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewRasterCacheWithSize(2)
	a := image.NewRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewRGBA(image.Rect(0, 0, 1, 1))
	d := image.NewRGBA(image.Rect(0, 0, 1, 1))

	c.Set("a", a)
	c.Set("b", b)
	c.Get("a")
	c.Set("d", d)

	if c.Get("b") != nil {
		t.Error("b should have been evicted")
	}
	if c.Get("a") != a || c.Get("d") != d {
		t.Error("recently used entries evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func TestIconRasterizesAndCaches(t *testing.T) {
	cache := NewRasterCache()
	icon, err := NewIcon("square", []byte(squareSVG), cache)
	if err != nil {
		t.Fatalf("NewIcon: %v", err)
	}

	area := gfx.XYWH(0, 0, 8, 8)
	buf := make([]gfx.Color, area.W*area.H)
	icon.Draw(DrawContext{Canvas: gfx.NewCanvas(buf, area), Bounds: area, Clip: area})

	if got := buf[4*8+4]; got.R() < 0xF0 || got.G() > 0x10 {
		t.Errorf("centre pixel = %08x, want red", uint32(got))
	}
	if cache.Len() != 1 {
		t.Errorf("cache Len = %d, want 1", cache.Len())
	}
	first, _ := icon.Rasterize(8, 8)
	second, _ := icon.Rasterize(8, 8)
	if first != second {
		t.Error("second rasterisation not served from cache")
	}
}

func TestNewIconRejectsGarbage(t *testing.T) {
	if _, err := NewIcon("bad", []byte("<svg"), nil); err == nil {
		t.Error("expected parse error")
	}
}

func TestBrokenIconLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	icon := &Icon{
		Name:   "broken",
		SVG:    []byte("<svg"),
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	}

	area := gfx.XYWH(0, 0, 8, 8)
	buf := make([]gfx.Color, area.W*area.H)
	for range 3 {
		icon.Draw(DrawContext{Canvas: gfx.NewCanvas(buf, area), Bounds: area, Clip: area})
	}

	if n := strings.Count(logs.String(), "icon not drawn"); n != 1 {
		t.Errorf("logged %d times, want once:\n%s", n, logs.String())
	}
	if !strings.Contains(logs.String(), "name=broken") {
		t.Errorf("log does not name the icon: %s", logs.String())
	}
	if buf[0] != 0 {
		t.Error("broken icon drew pixels")
	}
}
