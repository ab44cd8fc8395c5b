package display

import "github.com/BrandonKowalski/scanline/pkg/scanline/gfx"

// FlushFunc hands one composed band to the panel. pixels holds area.W*area.H
// colours, row-major with a stride of area.W, and is only valid for the
// duration of the call.
type FlushFunc func(area gfx.Rect, pixels []gfx.Color)

// Driver describes the panel. Busy is set while a refresh is composing and
// may also be set by the host while the panel is not ready for writes.
type Driver struct {
	Width  int
	Height int
	Busy   bool
	Flush  FlushFunc
}

// Bounds returns the panel rectangle at the origin.
func (d *Driver) Bounds() gfx.Rect {
	return gfx.XYWH(0, 0, d.Width, d.Height)
}
