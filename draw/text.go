package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is a small fixed width face.
var DefaultFace font.Face = basicfont.Face7x13

// NewTrueTypeFace returns the Go Regular font at size points.
func NewTrueTypeFace(size float64) (font.Face, error) {
	return ParseTrueTypeFace(goregular.TTF, size)
}

// ParseTrueTypeFace parses a TrueType font and returns a face at size points.
func ParseTrueTypeFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Text draws s with its baseline starting at dot and returns the dot for the
// text that follows. Glyphs are rasterized into a mask and sent to dst as
// horizontal runs, anti-aliased edges are thresholded.
func Text(dst Surface, face font.Face, dot image.Point, s string, c color.Color) (image.Point, error) {
	if face == nil {
		face = DefaultFace
	}

	bounds, advance := font.BoundString(face, s)
	next := dot.Add(image.Pt(advance.Round(), 0))
	r := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	).Add(dot)
	if r.Empty() {
		return next, nil
	}

	mask := image.NewAlpha(r)
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(s)

	p := newPlotter(dst, c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := -1
		for x := r.Min.X; x <= r.Max.X; x++ {
			on := x < r.Max.X && mask.AlphaAt(x, y).A >= 0x80
			switch {
			case on && start < 0:
				start = x
			case !on && start >= 0:
				p.hline(start, y, x-start)
				start = -1
			}
		}
	}
	return next, p.err
}
