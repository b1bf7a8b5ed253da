// Package draw renders shapes and text on displays that only know how to plot
// a pixel and fill a rectangle.
//
// Everything is clipped to the surface before it reaches the display.
package draw

import (
	"image"
	"image/color"
)

// Surface is a display with the two drawing primitives.
type Surface interface {
	// Size is the logical surface size.
	Size() image.Point

	// DrawPixel sets the pixel at p.
	DrawPixel(p image.Point, c color.Color) error

	// FillRectangle fills r with a solid color.
	FillRectangle(r image.Rectangle, c color.Color) error
}

// Drawer is implemented by surfaces that can stream an image themselves.
type Drawer interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Copy aligns r.Min in dst with sp in src and copies the rectangle r.
// Uniform sources are filled.
func Copy(dst Surface, r image.Rectangle, src image.Image, sp image.Point) error {
	if d, ok := dst.(Drawer); ok {
		return d.Draw(r, src, sp)
	}

	clipped := r.Intersect(bounds(dst))
	sp = sp.Add(clipped.Min.Sub(r.Min))
	if u, ok := src.(*image.Uniform); ok {
		return Box(dst, clipped, u.C)
	}

	p := newPlotter(dst, nil)
	for y := 0; y < clipped.Dy(); y++ {
		for x := 0; x < clipped.Dx(); x++ {
			p.c = src.At(sp.X+x, sp.Y+y)
			p.set(clipped.Min.X+x, clipped.Min.Y+y)
		}
	}
	return p.err
}

// Clear fills the whole surface.
func Clear(dst Surface, c color.Color) error {
	return dst.FillRectangle(bounds(dst), c)
}

func bounds(s Surface) image.Rectangle {
	return image.Rectangle{Max: s.Size()}
}

// plotter keeps the first error, further drawing is skipped.
type plotter struct {
	dst    Surface
	bounds image.Rectangle
	c      color.Color
	err    error
}

func newPlotter(dst Surface, c color.Color) *plotter {
	return &plotter{dst: dst, bounds: bounds(dst), c: c}
}

func (p *plotter) set(x, y int) {
	pt := image.Pt(x, y)
	if p.err != nil || !pt.In(p.bounds) {
		return
	}
	p.err = p.dst.DrawPixel(pt, p.c)
}

func (p *plotter) fill(r image.Rectangle) {
	r = r.Intersect(p.bounds)
	if p.err != nil || r.Empty() {
		return
	}
	p.err = p.dst.FillRectangle(r, p.c)
}

// hline fills w pixels to the right of (x, y).
func (p *plotter) hline(x, y, w int) {
	if w <= 0 {
		return
	}
	p.fill(image.Rect(x, y, x+w, y+1))
}

// vline fills h pixels below (x, y).
func (p *plotter) vline(x, y, h int) {
	if h <= 0 {
		return
	}
	p.fill(image.Rect(x, y, x+1, y+h))
}
