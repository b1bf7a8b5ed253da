package draw

import (
	"image"
	"image/color"
)

// Corner quadrants.
const (
	topLeft     = 1 << iota
	topRight    // 2
	bottomRight // 4
	bottomLeft  // 8
)

// Line draws a line between two points, both included.
func Line(dst Surface, a, b image.Point, c color.Color) error {
	p := newPlotter(dst, c)
	switch {
	case a.Y == b.Y:
		x := min(a.X, b.X)
		p.hline(x, a.Y, max(a.X, b.X)-x+1)
	case a.X == b.X:
		y := min(a.Y, b.Y)
		p.vline(a.X, y, max(a.Y, b.Y)-y+1)
	default:
		bresenham(p, a.X, a.Y, b.X, b.Y)
	}
	return p.err
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Surface, x, y, w int, c color.Color) error {
	p := newPlotter(dst, c)
	p.hline(x, y, w)
	return p.err
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Surface, x, y, h int, c color.Color) error {
	p := newPlotter(dst, c)
	p.vline(x, y, h)
	return p.err
}

// Rectangle draws the outline of rect.
func Rectangle(dst Surface, rect image.Rectangle, c color.Color) error {
	rect = rect.Canon()
	var (
		p = newPlotter(dst, c)
		w = rect.Dx()
		h = rect.Dy()
	)
	p.hline(rect.Min.X, rect.Min.Y, w)
	p.hline(rect.Min.X, rect.Max.Y-1, w)
	p.vline(rect.Min.X, rect.Min.Y+1, h-2)
	p.vline(rect.Max.X-1, rect.Min.Y+1, h-2)
	return p.err
}

// Box draws a filled rectangle.
func Box(dst Surface, rect image.Rectangle, c color.Color) error {
	p := newPlotter(dst, c)
	p.fill(rect.Canon())
	return p.err
}

// RoundedRectangle draws the outline of rect with radius pixels rounded corners.
func RoundedRectangle(dst Surface, rect image.Rectangle, radius int, c color.Color) error {
	rect = rect.Canon()
	var (
		p = newPlotter(dst, c)
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
		r = clampRadius(radius, w, h)
	)
	p.hline(x+r, y, w-2*r)
	p.hline(x+r, y+h-1, w-2*r)
	p.vline(x, y+r, h-2*r)
	p.vline(x+w-1, y+r, h-2*r)
	corner(p, x+r, y+r, r, topLeft)
	corner(p, x+w-r-1, y+r, r, topRight)
	corner(p, x+w-r-1, y+h-r-1, r, bottomRight)
	corner(p, x+r, y+h-r-1, r, bottomLeft)
	return p.err
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox(dst Surface, rect image.Rectangle, radius int, c color.Color) error {
	rect = rect.Canon()
	var (
		p = newPlotter(dst, c)
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
		r = clampRadius(radius, w, h)
	)
	if w == 0 || h == 0 {
		return nil
	}
	p.fill(image.Rect(x+r, y, x+w-r, y+h))
	filledCorner(p, x+w-r-1, y+r, r, topRight, h-2*r-1)
	filledCorner(p, x+r, y+r, r, topLeft, h-2*r-1)
	return p.err
}

// Circle draws the outline of a circle.
func Circle(dst Surface, center image.Point, radius int, c color.Color) error {
	p := newPlotter(dst, c)
	if radius < 0 {
		return nil
	}
	x0, y0 := center.X, center.Y
	p.set(x0, y0+radius)
	p.set(x0, y0-radius)
	p.set(x0+radius, y0)
	p.set(x0-radius, y0)
	corner(p, x0, y0, radius, topLeft|topRight|bottomRight|bottomLeft)
	return p.err
}

// FilledCircle draws a filled circle.
func FilledCircle(dst Surface, center image.Point, radius int, c color.Color) error {
	p := newPlotter(dst, c)
	if radius < 0 {
		return nil
	}
	p.vline(center.X, center.Y-radius, 2*radius+1)
	filledCorner(p, center.X, center.Y, radius, topLeft|topRight, 0)
	return p.err
}

func clampRadius(r, w, h int) int {
	return max(0, min(r, w/2, h/2))
}

// corner draws the quadrants of a circle outline, without the four
// axis-aligned extremes.
func corner(p *plotter, x0, y0, radius, quadrants int) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrants&bottomRight != 0 {
			p.set(x0+x, y0+y)
			p.set(x0+y, y0+x)
		}
		if quadrants&topRight != 0 {
			p.set(x0+x, y0-y)
			p.set(x0+y, y0-x)
		}
		if quadrants&bottomLeft != 0 {
			p.set(x0-y, y0+x)
			p.set(x0-x, y0+y)
		}
		if quadrants&topLeft != 0 {
			p.set(x0-y, y0-x)
			p.set(x0-x, y0-y)
		}
	}
}

// filledCorner fills the right (topRight) or left (topLeft) half of a circle
// with vertical runs, stretched down by delta pixels.
func filledCorner(p *plotter, x0, y0, radius, sides, delta int) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
		px   = x
		py   = y
	)
	delta++
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if x < y+1 {
			if sides&topRight != 0 {
				p.vline(x0+x, y0-y, 2*y+delta)
			}
			if sides&topLeft != 0 {
				p.vline(x0-x, y0-y, 2*y+delta)
			}
		}
		if y != py {
			if sides&topRight != 0 {
				p.vline(x0+py, y0-px, 2*px+delta)
			}
			if sides&topLeft != 0 {
				p.vline(x0-py, y0-px, 2*px+delta)
			}
			py = y
		}
		px = x
	}
}

func bresenham(p *plotter, x1, y1, x2, y2 int) {
	var (
		dx = abs(x2 - x1)
		dy = -abs(y2 - y1)
		sx = 1
		sy = 1
		e  = dx + dy
	)
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	for {
		p.set(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
