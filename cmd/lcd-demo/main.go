package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/BeatGlow/lcd"
	"github.com/BeatGlow/lcd/conn"
	"github.com/BeatGlow/lcd/internal/demo"
)

func main() {
	dataFlag := flag.String("data", strings.Join(lcd.DefaultPinNames.Data, ","), "Data GPIO pins D0..D15, comma separated")
	fastFlag := flag.Int("fast", -1, "Drive the data bus through the bcm283x registers, starting at this GPIO number (Raspberry Pi only)")
	csPinFlag := flag.String("cs", lcd.DefaultPinNames.CS, "Chip select GPIO pin (CS)")
	rsPinFlag := flag.String("rs", lcd.DefaultPinNames.RS, "Register select GPIO pin (RS)")
	wrPinFlag := flag.String("wr", lcd.DefaultPinNames.WR, "Write strobe GPIO pin (WR)")
	rdPinFlag := flag.String("rd", lcd.DefaultPinNames.RD, "Read strobe GPIO pin (RD)")
	blPinFlag := flag.String("bl", lcd.DefaultPinNames.Backlight, "Backlight GPIO pin, empty to disable")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	contrastFlag := flag.Uint("contrast", 0xff, "Backlight level (0-255)")
	intervalFlag := flag.Duration("interval", demo.DefaultInterval, "Animation interval")
	flag.Parse()

	rotation, err := lcd.ParseRotation(*rotateFlag)
	if err != nil {
		fatal(err)
	}
	contrast, err := contrastLevel(*contrastFlag)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using rotation: %s\n", rotation)

	if err = lcd.HostInit(); err != nil {
		fatal(err)
	}

	config := &lcd.ParallelConfig{
		CS:                 pin(*csPinFlag),
		RS:                 pin(*rsPinFlag),
		WR:                 pin(*wrPinFlag),
		RD:                 pin(*rdPinFlag),
		BacklightFrequency: lcd.DefaultParallelConfig.BacklightFrequency,
	}
	if *blPinFlag != "" {
		config.Backlight = pin(*blPinFlag)
	} else {
		config.Backlight = gpio.INVALID
	}
	if *fastFlag >= 0 {
		if config.Port, err = conn.NewBCM283xPort(*fastFlag); err != nil {
			fatal(err)
		}
	} else {
		for _, name := range strings.Split(*dataFlag, ",") {
			config.Data = append(config.Data, pin(strings.TrimSpace(name)))
		}
	}

	c, err := lcd.OpenParallel(config)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", c)

	output, err := lcd.New(c, nil)
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer output.Close()

	if err = output.Init(); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s, device code %#04x\n", output, output.ID())

	if err = output.SetRotation(rotation); err != nil {
		fatal(err)
	}
	if err = output.SetContrast(contrast); err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("hit control-c to stop...")
	if err = demo.Run(ctx, output, *intervalFlag); err != nil {
		_ = output.Close()
		fatal(err)
	}
}

// pin looks up a GPIO by name, unknown names are invalid rather than nil so
// they are not replaced by the default pins.
func pin(name string) gpio.PinIO {
	if p := gpioreg.ByName(name); p != nil {
		return p
	}
	return gpio.INVALID
}

func contrastLevel(v uint) (uint8, error) {
	if v > 0xff {
		return 0, fmt.Errorf("contrast %d out of range (0-255)", v)
	}
	return uint8(v), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
