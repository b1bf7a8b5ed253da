package pixel

import "image/color"

// RGB565Model converts colors to RGB565.
var RGB565Model color.Model = color.ModelFunc(rgb565Model)

// Common colors.
var (
	Black   = RGB565{0x0000}
	White   = RGB565{0xFFFF}
	Red     = RGB565{0xF800}
	Green   = RGB565{0x07E0}
	Blue    = RGB565{0x001F}
	Cyan    = RGB565{0x07FF}
	Magenta = RGB565{0xF81F}
	Yellow  = RGB565{0xFFE0}
)

// RGB565 represents a 16-bit 5-6-5 RGB color, as sent over the bus.
type RGB565 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

// RGB returns the color for 8-bit components.
func RGB(r, g, b uint8) RGB565 {
	return RGB565{uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3}
}

func (c RGB565) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

// RGBA8 returns the 8-bit components of c.
func (c RGB565) RGBA8() color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}

// Swap returns c with red and blue exchanged, for panels wired BGR.
func (c RGB565) Swap() RGB565 {
	return RGB565{c.V&0x07E0 | c.V>>11 | (c.V&0x001F)<<11}
}

func rgb565Model(c color.Color) color.Color {
	return RGB565{Encode(c)}
}

// Encode returns the 16-bit encoding of any color. Alpha is ignored.
func Encode(c color.Color) uint16 {
	switch c := c.(type) {
	case RGB565:
		return c.V
	case color.RGBA:
		return RGB(c.R, c.G, c.B).V
	case color.Gray:
		return RGB(c.Y, c.Y, c.Y).V
	default:
		r, g, b, _ := c.RGBA()
		r = (r & 0xF800)
		g = (g & 0xFC00) >> 5
		b = (b & 0xF800) >> 11
		return uint16(r | g | b)
	}
}
