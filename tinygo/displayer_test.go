package tinygo

import (
	"errors"
	"image/color"
	"testing"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/lcd"
	"github.com/BeatGlow/lcd/lcdtest"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func newTestDisplayer(t *testing.T) (*Displayer, *lcdtest.Panel) {
	t.Helper()
	panel := lcdtest.NewPanel(0, 0)
	c, err := lcd.OpenParallel(&lcd.ParallelConfig{
		Data:      panel.Data(),
		CS:        panel.CS,
		RS:        panel.RS,
		WR:        panel.WR,
		RD:        panel.RD,
		Backlight: panel.Backlight,
		Delay:     new(lcdtest.Delay),
		Enable:    func() error { return nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	d, err := lcd.New(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = d.Init(); err != nil {
		t.Fatal(err)
	}
	panel.ClearLog()
	return New(d), panel
}

func TestSize(t *testing.T) {
	d, _ := newTestDisplayer(t)
	if x, y := d.Size(); x != 240 || y != 320 {
		t.Errorf("expected 240x320, got %dx%d", x, y)
	}
	if err := d.SetRotation(drivers.Rotation90); err != nil {
		t.Fatal(err)
	}
	if x, y := d.Size(); x != 320 || y != 240 {
		t.Errorf("expected 320x240, got %dx%d", x, y)
	}
	if r := d.Rotation(); r != drivers.Rotation90 {
		t.Errorf("expected rotation 90, got %d", r)
	}
	if err := d.SetRotation(drivers.Rotation(4)); !errors.Is(err, ErrMirrored) {
		t.Errorf("expected ErrMirrored, got %v", err)
	}
	if r := d.Rotation(); r != drivers.Rotation90 {
		t.Errorf("expected rotation to be unchanged, got %d", r)
	}
}

func TestSetPixel(t *testing.T) {
	d, panel := newTestDisplayer(t)
	d.SetPixel(1, 2, red)
	d.SetPixel(-1, 2, red)
	d.SetPixel(240, 0, red)
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	if v := panel.Pixel(1, 2); v != 0xF800 {
		t.Errorf("expected red at (1,2), got %#04x", v)
	}
	if n := panel.GRAMWrites(); n != 1 {
		t.Errorf("expected pixels outside of the display to be dropped, got %d writes", n)
	}

	panel.WR.Fail = errors.New("boom")
	d.SetPixel(3, 3, red)
	panel.WR.Fail = nil
	if err := d.Display(); err == nil {
		t.Error("expected the drawing error")
	}
	if err := d.Display(); err != nil {
		t.Errorf("expected the error to be cleared, got %v", err)
	}
}

func TestFillRectangle(t *testing.T) {
	d, panel := newTestDisplayer(t)
	if err := d.FillRectangle(230, 315, 20, 20, red); err != nil {
		t.Fatal(err)
	}
	if n := panel.GRAMWrites(); n != 52 {
		t.Errorf("expected a clipped 10x5 fill in bursts of 4, got %d writes", n)
	}
	if v := panel.Pixel(239, 319); v != 0xF800 {
		t.Errorf("expected red in the corner, got %#04x", v)
	}
	if err := d.FillRectangle(0, 0, 0, 10, red); err != nil {
		t.Fatal(err)
	}
	if n := panel.GRAMWrites(); n != 52 {
		t.Errorf("expected an empty fill to be dropped, got %d writes", n)
	}
}

func TestTinyfont(t *testing.T) {
	d, panel := newTestDisplayer(t)
	tinyfont.WriteLine(d, &tinyfont.Picopixel, 10, 20, "lcd", red)
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	if panel.GRAMWrites() == 0 {
		t.Error("expected text to be drawn")
	}
	var found bool
	for y := 10; y <= 20 && !found; y++ {
		for x := 10; x < 24; x++ {
			if panel.Pixel(x, y) == 0xF800 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected red pixels near the text origin")
	}
}
