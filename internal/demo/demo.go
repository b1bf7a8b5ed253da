// Package demo draws the test pattern of the lcd-demo and lcd-sim commands.
package demo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/lcd"
	"github.com/BeatGlow/lcd/draw"
	"github.com/BeatGlow/lcd/pixel"
	"github.com/BeatGlow/lcd/tinygo"
)

// DefaultInterval is the time between two animation steps.
const DefaultInterval = 50 * time.Millisecond

const (
	gradientWidth  = 96
	gradientHeight = 48
	ballRadius     = 6
)

// Run draws the static part of the pattern and animates the rest every
// interval until ctx is done.
func Run(ctx context.Context, d lcd.Display, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if err := Frame(d); err != nil {
		return err
	}

	var (
		offset int
		ticker = time.NewTicker(interval)
	)
	defer ticker.Stop()

	for {
		if err := Step(d, offset); err != nil {
			return err
		}
		offset++

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Frame clears d and draws the border and the captions.
func Frame(d lcd.Display) error {
	size := d.Size()
	if err := draw.Clear(d, pixel.Black); err != nil {
		return err
	}
	if err := draw.Rectangle(d, image.Rectangle{Max: size}, pixel.White); err != nil {
		return err
	}

	face, err := draw.NewTrueTypeFace(20)
	if err != nil {
		return err
	}
	defer face.Close()

	dot, err := draw.Text(d, face, image.Pt(8, 26), "ILI932x", pixel.Yellow)
	if err != nil {
		return err
	}
	if _, err = draw.Text(d, nil, dot.Add(image.Pt(6, 0)), fmt.Sprintf("%dx%d", size.X, size.Y), pixel.Cyan); err != nil {
		return err
	}

	t := tinygo.New(d)
	tinyfont.WriteLine(t, &tinyfont.Picopixel, 8, int16(size.Y-8), "tinyfont on a parallel bus", color.RGBA{G: 0xff, A: 0xff})
	return t.Display()
}

// Step draws animation step n.
func Step(d lcd.Display, n int) error {
	var (
		size   = d.Size()
		center = size.Div(2)
		r      = image.Rect(0, 0, gradientWidth, gradientHeight).Add(center.Sub(image.Pt(gradientWidth/2, gradientHeight/2)))
	)
	if err := draw.Copy(d, r, gradient(n), image.Point{}); err != nil {
		return err
	}

	// Ball bouncing in the lane below the gradient.
	var (
		lane = size.X - 2*(ballRadius+2)
		x    = n % (2 * lane)
		y    = r.Max.Y + ballRadius + 8
		ball = pixel.RGB(uint8(n*7), 0xff-uint8(n*3), 0x80)
	)
	if x >= lane {
		x = 2*lane - x
	}
	x += ballRadius + 2
	if err := draw.Box(d, image.Rect(1, y-ballRadius, size.X-1, y+ballRadius+1), pixel.Black); err != nil {
		return err
	}
	if err := draw.FilledCircle(d, image.Pt(x, y), ballRadius, ball); err != nil {
		return err
	}

	// Rounded box above the gradient cycling through the primaries.
	box := image.Rect(r.Min.X, r.Min.Y-28, r.Max.X, r.Min.Y-8)
	primaries := []color.Color{pixel.Red, pixel.Green, pixel.Blue}
	if err := draw.RoundedBox(d, box, 6, primaries[(n/20)%len(primaries)]); err != nil {
		return err
	}
	return draw.RoundedRectangle(d, box.Inset(-2), 8, pixel.White)
}

func gradient(offset int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, gradientWidth, gradientHeight))
	for y := 0; y < gradientHeight; y++ {
		for x := 0; x < gradientWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x + y + offset),
				G: uint8(x - y + offset),
				B: uint8(x + y - offset),
				A: 0xff,
			})
		}
	}
	return img
}
