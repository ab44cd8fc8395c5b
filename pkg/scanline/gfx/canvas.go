package gfx

// Canvas is a window onto the line buffer. Area is the panel rectangle the
// buffer currently represents; pixel (x, y) in panel coordinates lives at
// Pix[(y-Area.Y)*Stride + (x-Area.X)].
type Canvas struct {
	Pix    []Color
	Area   Rect
	Stride int
}

// NewCanvas wraps buf for the given panel area with a stride equal to the
// area width.
func NewCanvas(buf []Color, area Rect) *Canvas {
	return &Canvas{Pix: buf, Area: area, Stride: area.W}
}

func (c *Canvas) offset(x, y int) int {
	return (y-c.Area.Y)*c.Stride + (x - c.Area.X)
}

// At returns the pixel at panel coordinates (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if !c.Area.Contains(x, y) {
		return 0
	}
	return c.Pix[c.offset(x, y)]
}

// Set writes one pixel, ignoring coordinates outside the canvas.
func (c *Canvas) Set(x, y int, col Color) {
	if !c.Area.Contains(x, y) {
		return
	}
	c.Pix[c.offset(x, y)] = col
}

// FillRect paints r, clipped to the canvas, with an opaque or blended colour.
func (c *Canvas) FillRect(r Rect, col Color) {
	r, ok := r.Intersect(c.Area)
	if !ok {
		return
	}
	opaque := col.A() == 0xFF
	for y := r.Y; y < r.Y2(); y++ {
		row := c.Pix[c.offset(r.X, y) : c.offset(r.X, y)+r.W]
		if opaque {
			Fill(row, col)
			continue
		}
		for i := range row {
			row[i] = col.Over(row[i])
		}
	}
}

// Clear overwrites r, clipped to the canvas, with col without blending.
func (c *Canvas) Clear(r Rect, col Color) {
	r, ok := r.Intersect(c.Area)
	if !ok {
		return
	}
	for y := r.Y; y < r.Y2(); y++ {
		Fill(c.Pix[c.offset(r.X, y):c.offset(r.X, y)+r.W], col)
	}
}
