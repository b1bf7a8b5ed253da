// Command lcd-sim runs the demo pattern on a simulated ILI932x and shows its
// graphics RAM in a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/BeatGlow/lcd"
	"github.com/BeatGlow/lcd/internal/demo"
	"github.com/BeatGlow/lcd/lcdtest"
)

func main() {
	scaleFlag := flag.Int("scale", 2, "Window scale")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	intervalFlag := flag.Duration("interval", demo.DefaultInterval, "Animation interval")
	flag.Parse()

	rotation, err := lcd.ParseRotation(*rotateFlag)
	if err != nil {
		fatal(err)
	}

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
		fatal(err)
	}

	output, err := lcd.New(c, nil)
	if err != nil {
		fatal(err)
	}
	if err = output.Init(); err != nil {
		fatal(err)
	}
	if err = output.SetRotation(rotation); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s, device code %#04x\n", output, output.ID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- demo.Run(ctx, output, *intervalFlag)
	}()

	size, scale := panel.Size(), *scaleFlag
	ebiten.SetWindowTitle(fmt.Sprintf("lcd-sim %s (%s)", panel, rotation))
	ebiten.SetWindowSize(size.X*scale, size.Y*scale)
	err = ebiten.RunGame(&viewer{panel: panel, done: done})
	cancel()
	if err != nil {
		fatal(err)
	}
}

// viewer shows the panel GRAM in native orientation, like the glass.
type viewer struct {
	panel *lcdtest.Panel
	done  <-chan error
	img   *image.RGBA
	gram  *ebiten.Image
}

func (v *viewer) Update() error {
	select {
	case err := <-v.done:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}

	// Only the GRAM is shown, the register log would grow forever.
	v.panel.ClearLog()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.img == nil {
		size := v.panel.Size()
		v.img = image.NewRGBA(image.Rectangle{Max: size})
		v.gram = ebiten.NewImage(size.X, size.Y)
	}
	v.panel.SnapshotInto(v.img)
	v.gram.WritePixels(v.img.Pix)
	screen.DrawImage(v.gram, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := v.panel.Size()
	return size.X, size.Y
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
