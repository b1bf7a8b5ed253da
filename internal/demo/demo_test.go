package demo

import (
	"context"
	"testing"
	"time"

	"github.com/BeatGlow/lcd"
	"github.com/BeatGlow/lcd/lcdtest"
)

func newTestDisplay(t *testing.T) (*lcd.ILI932x, *lcdtest.Panel) {
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
	return d, panel
}

func TestRun(t *testing.T) {
	for _, rotation := range []lcd.Rotation{lcd.NoRotation, lcd.Rotate90} {
		t.Run(rotation.String(), func(it *testing.T) {
			d, panel := newTestDisplay(it)
			if err := d.SetRotation(rotation); err != nil {
				it.Fatal(err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := Run(ctx, d, time.Millisecond); err != nil {
				it.Fatal(err)
			}

			if panel.GRAMWrites() < 240*320 {
				it.Errorf("expected at least a full screen of writes, got %d", panel.GRAMWrites())
			}
			// The border is white on every side.
			size := panel.Size()
			for _, p := range [][2]int{{0, 0}, {size.X - 1, 0}, {0, size.Y - 1}, {size.X - 1, size.Y - 1}} {
				if v := panel.Pixel(p[0], p[1]); v != 0xFFFF {
					it.Errorf("expected white border at (%d,%d), got %#04x", p[0], p[1], v)
				}
			}
			if v := panel.Violations(); len(v) != 0 {
				it.Errorf("unexpected bus violations %q", v)
			}
		})
	}
}

func TestStepAnimates(t *testing.T) {
	d, panel := newTestDisplay(t)
	if err := Step(d, 0); err != nil {
		t.Fatal(err)
	}
	before := panel.Snapshot()
	if err := Step(d, 1); err != nil {
		t.Fatal(err)
	}
	after := panel.Snapshot()

	var changed int
	for i := range before.Pix {
		if before.Pix[i] != after.Pix[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Error("expected consecutive steps to differ")
	}
}
