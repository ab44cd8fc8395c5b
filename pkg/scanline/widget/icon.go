package widget

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

// Icon draws an SVG document scaled to its node's area. Rasterised images are
// shared through Cache so that every band of a refresh reuses one raster.
type Icon struct {
	Name  string
	SVG   []byte
	Cache *RasterCache
	// Logger reports an icon that cannot be rendered. Nil discards.
	Logger *slog.Logger

	failed error
}

// NewIcon parses svg once to fail early on malformed input.
func NewIcon(name string, svg []byte, cache *RasterCache) (*Icon, error) {
	if _, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.StrictErrorMode); err != nil {
		return nil, fmt.Errorf("widget: parse icon %q: %w", name, err)
	}
	if cache == nil {
		cache = NewRasterCache()
	}
	return &Icon{Name: name, SVG: svg, Cache: cache}, nil
}

// Rasterize renders the icon at w x h, consulting the cache first.
func (i *Icon) Rasterize(w, h int) (*image.RGBA, error) {
	key := fmt.Sprintf("%s@%dx%d", i.Name, w, h)
	if i.Cache != nil {
		if img := i.Cache.Get(key); img != nil {
			return img, nil
		}
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(i.SVG), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("widget: parse icon %q: %w", i.Name, err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	if i.Cache != nil {
		i.Cache.Set(key, img)
	}
	return img, nil
}

// Draw blits the icon scaled to the node's bounds.
func (i *Icon) Draw(ctx DrawContext) {
	if ctx.Bounds.Empty() {
		return
	}
	if i.failed != nil {
		return
	}
	img, err := i.Rasterize(ctx.Bounds.W, ctx.Bounds.H)
	if err != nil {
		// Logged once; the icon stays blank from here on.
		i.failed = err
		if i.Logger != nil {
			i.Logger.Warn("widget: icon not drawn", "name", i.Name, "error", err)
		}
		return
	}
	Blit(ctx.Canvas, img, ctx.Bounds.Origin(), ctx.Clip)
}

// Blit composites img with its top-left corner at dst onto the canvas,
// touching only pixels inside clip.
func Blit(c *gfx.Canvas, img *image.RGBA, dst gfx.Point, clip gfx.Rect) {
	b := img.Bounds()
	area, ok := gfx.XYWH(dst.X, dst.Y, b.Dx(), b.Dy()).Intersect(clip)
	if !ok {
		return
	}
	for y := area.Y; y < area.Y2(); y++ {
		for x := area.X; x < area.X2(); x++ {
			off := img.PixOffset(b.Min.X+x-dst.X, b.Min.Y+y-dst.Y)
			p := img.Pix[off : off+4 : off+4]
			if p[3] == 0 {
				continue
			}
			// image.RGBA is premultiplied; undo it before blending.
			r, g, bl := p[0], p[1], p[2]
			if a := p[3]; a != 0xFF {
				r = uint8(uint32(r) * 0xFF / uint32(a))
				g = uint8(uint32(g) * 0xFF / uint32(a))
				bl = uint8(uint32(bl) * 0xFF / uint32(a))
			}
			c.Set(x, y, gfx.RGBA(r, g, bl, p[3]).Over(c.At(x, y)))
		}
	}
}
