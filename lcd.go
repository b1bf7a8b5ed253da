// Package lcd contains a driver for ILI932x TFT controllers on a bit-banged 16-bit parallel bus.
//
// The driver does not buffer frames, every drawing call results in bus
// transactions. It is not safe for concurrent use.
package lcd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
)

var debug bool

func init() {
	debug = os.Getenv("LCD_DEBUG") != ""
}

// Errors
var (
	ErrHardwareEnable    = errors.New("lcd: hardware enable failed")
	ErrInit              = errors.New("lcd: initialization failed")
	ErrInvalidWindow     = errors.New("lcd: invalid window")
	ErrInvalidRotationID = errors.New("lcd: invalid rotation")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90°
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270°
)

// RotationFromID converts a numeric rotation (0-3) into a Rotation.
func RotationFromID(id uint32) (Rotation, error) {
	if id > uint32(Rotate270) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRotationID, id)
	}
	return Rotation(id), nil
}

// ParseRotation parses a rotation as given on a command line.
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(s) {
	case "", "no", "0":
		return NoRotation, nil
	case "90", "right", "cw":
		return Rotate90, nil
	case "180", "flip":
		return Rotate180, nil
	case "270", "left", "ccw":
		return Rotate270, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRotationID, s)
	}
}

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Add returns the rotation r turned by n quarter turns.
func (r Rotation) Add(n int) Rotation {
	return Rotation(((int(r)+n)%4 + 4) % 4)
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return NoRotation.Add(-int(r))
}

// IsSwapped reports whether r exchanges width and height.
func (r Rotation) IsSwapped() bool {
	return r%2 == 1
}

func (r Rotation) valid() bool {
	return r <= Rotate270
}

// Display is the drawing surface of a TFT panel.
//
// Coordinates are logical: they follow the current rotation.
type Display interface {
	draw.Image

	// Close the display driver.
	Close() error

	// Size is the logical display size.
	Size() image.Point

	// DrawPixel sets the pixel at p.
	DrawPixel(p image.Point, c color.Color) error

	// FillRectangle fills r with a solid color.
	FillRectangle(r image.Rectangle, c color.Color) error

	// MaxBottomRight is the largest drawable logical coordinate.
	MaxBottomRight() image.Point

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the backlight level.
	SetContrast(level uint8) error

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error

	// Refresh reports errors from drawing through the draw.Image interface.
	Refresh() error
}

// Config is the display configuration.
type Config struct {
	// Width of the panel in native orientation, in pixels.
	Width int

	// Height of the panel in native orientation, in pixels.
	Height int
}
