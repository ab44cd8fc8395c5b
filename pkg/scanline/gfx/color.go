package gfx

// Color is a 32-bit ARGB8888 pixel, the layout most panel controllers and the
// SDL simulator accept without conversion.
type Color uint32

// Hex converts a 0xRRGGBB value into an opaque Color.
func Hex(hex uint32) Color {
	return Color(0xFF000000 | (hex & 0x00FFFFFF))
}

// RGBA builds a Color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Over blends c on top of dst using c's alpha.
func (c Color) Over(dst Color) Color {
	a := uint32(c.A())
	switch a {
	case 0xFF:
		return c
	case 0:
		return dst
	}
	inv := 0xFF - a
	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*inv) / 0xFF)
	}
	return RGBA(blend(c.R(), dst.R()), blend(c.G(), dst.G()), blend(c.B(), dst.B()), 0xFF)
}

// Fill sets every element of buf to c.
func Fill(buf []Color, c Color) {
	if len(buf) == 0 {
		return
	}
	buf[0] = c
	for filled := 1; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}
