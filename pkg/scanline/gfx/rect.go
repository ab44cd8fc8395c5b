// Package gfx holds the geometry and pixel types shared by the compositor:
// rectangles, points, colours and the band canvas that draw routines write
// into.
package gfx

import "fmt"

// Point is a coordinate pair, also used as a translation offset.
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Neg returns the opposite offset.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Rect is an axis-aligned rectangle. X2/Y2 are exclusive.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// XYWH builds a Rect.
func XYWH(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) X2() int { return r.X + r.W }
func (r Rect) Y2() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Translate moves the rectangle by the offset.
func (r Rect) Translate(off Point) Rect {
	return Rect{X: r.X + off.X, Y: r.Y + off.Y, W: r.W, H: r.H}
}

// Contains reports whether the pixel at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X2() && y >= r.Y && y < r.Y2()
}

// Intersect returns the common part of r and o. The boolean is false when
// they do not share any pixel.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X2(), o.X2())
	y2 := min(r.Y2(), o.Y2())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, true
}

// Touches reports whether r and o overlap or share an edge. Dirty areas that
// only touch are still worth merging.
func (r Rect) Touches(o Rect) bool {
	return r.X <= o.X2() && r.X2() >= o.X && r.Y <= o.Y2() && r.Y2() >= o.Y
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.X2(), o.X2())
	y2 := max(r.Y2(), o.Y2())
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Inset shrinks the rectangle by the given insets, never below zero size.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: r.W - in.Left - in.Right,
		H: r.H - in.Top - in.Bottom,
	}
	out.W = max(out.W, 0)
	out.H = max(out.H, 0)
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Insets defines spacing on all four sides of a rectangle.
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// UniformInsets creates Insets with the same value on all sides.
func UniformInsets(value int) Insets {
	return Insets{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}
