// Package tinygo adapts displays to the TinyGo drivers.Displayer interface, so
// tinyfont, tinydraw and friends can render on them.
package tinygo

import (
	"errors"
	"image"
	"image/color"

	"tinygo.org/x/drivers"

	"github.com/BeatGlow/lcd"
)

// ErrMirrored is returned for mirrored rotations, the controller can not mirror.
var ErrMirrored = errors.New("tinygo: mirrored rotations are not supported")

// Display is the part of lcd.Display used by the adapter.
type Display interface {
	Size() image.Point
	DrawPixel(p image.Point, c color.Color) error
	FillRectangle(r image.Rectangle, c color.Color) error
	SetRotation(lcd.Rotation) error
}

var _ drivers.Displayer = (*Displayer)(nil)

// Displayer draws on a Display.
//
// SetPixel can not report errors, the first one is kept and returned by
// Display. Drawing is not buffered.
type Displayer struct {
	d        Display
	rotation drivers.Rotation
	err      error
}

// New returns an adapter for d. The display is assumed to be unrotated.
func New(d Display) *Displayer {
	return &Displayer{d: d, rotation: drivers.Rotation0}
}

func (d *Displayer) Size() (x, y int16) {
	size := d.d.Size()
	return int16(size.X), int16(size.Y)
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y))
	if d.err != nil || !p.In(image.Rectangle{Max: d.d.Size()}) {
		return
	}
	d.err = d.d.DrawPixel(p, c)
}

// Display returns the first SetPixel error since the last call.
func (d *Displayer) Display() error {
	err := d.err
	d.err = nil
	return err
}

// FillRectangle fills the rectangle of width x height pixels at (x, y), clipped
// to the display.
func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height))
	r = r.Intersect(image.Rectangle{Max: d.d.Size()})
	if r.Empty() {
		return nil
	}
	return d.d.FillRectangle(r, c)
}

// Rotation returns the current rotation.
func (d *Displayer) Rotation() drivers.Rotation {
	return d.rotation
}

func (d *Displayer) SetRotation(rotation drivers.Rotation) error {
	var r lcd.Rotation
	switch rotation {
	case drivers.Rotation0:
		r = lcd.NoRotation
	case drivers.Rotation90:
		r = lcd.Rotate90
	case drivers.Rotation180:
		r = lcd.Rotate180
	case drivers.Rotation270:
		r = lcd.Rotate270
	default:
		return ErrMirrored
	}
	if err := d.d.SetRotation(r); err != nil {
		return err
	}
	d.rotation = rotation
	return nil
}
