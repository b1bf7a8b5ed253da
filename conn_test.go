package lcd

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/lcd/lcdtest"
)

var errBoom = errors.New("boom")

func noEnable() error { return nil }

func testParallelConfig(panel *lcdtest.Panel, delay *lcdtest.Delay) *ParallelConfig {
	config := &ParallelConfig{
		Data:      panel.Data(),
		CS:        panel.CS,
		RS:        panel.RS,
		WR:        panel.WR,
		RD:        panel.RD,
		Backlight: panel.Backlight,
		Enable:    noEnable,
	}
	if delay != nil {
		config.Delay = delay
	}
	return config
}

func TestOpenParallel(t *testing.T) {
	t.Run("enable", func(it *testing.T) {
		config := testParallelConfig(lcdtest.NewPanel(0, 0), nil)
		config.Enable = func() error { return errBoom }
		if _, err := OpenParallel(config); !errors.Is(err, ErrHardwareEnable) || !errors.Is(err, errBoom) {
			it.Errorf("expected ErrHardwareEnable wrapping the cause, got %v", err)
		}
	})

	pinTests := []struct {
		name  string
		clear func(*ParallelConfig)
		err   error
	}{
		{"cs", func(c *ParallelConfig) { c.CS = gpio.INVALID }, ErrCSPin},
		{"rs", func(c *ParallelConfig) { c.RS = gpio.INVALID }, ErrRSPin},
		{"wr", func(c *ParallelConfig) { c.WR = gpio.INVALID }, ErrWRPin},
		{"rd", func(c *ParallelConfig) { c.RD = gpio.INVALID }, ErrRDPin},
		{"data", func(c *ParallelConfig) { c.Data = c.Data[:8] }, ErrDataPin},
	}
	for _, test := range pinTests {
		t.Run(test.name, func(it *testing.T) {
			config := testParallelConfig(lcdtest.NewPanel(0, 0), nil)
			test.clear(config)
			if _, err := OpenParallel(config); !errors.Is(err, test.err) {
				it.Errorf("expected %v, got %v", test.err, err)
			}
		})
	}

	t.Run("config is not modified", func(it *testing.T) {
		config := testParallelConfig(lcdtest.NewPanel(0, 0), nil)
		c, err := OpenParallel(config)
		if err != nil {
			it.Fatal(err)
		}
		defer c.Close()
		if config.Delay != nil || config.BacklightFrequency != 0 {
			it.Error("expected defaults to be applied to a copy")
		}
	})
}

func TestConnRegisters(t *testing.T) {
	panel := lcdtest.NewPanel(0, 0)
	delay := new(lcdtest.Delay)
	c, err := OpenParallel(testParallelConfig(panel, delay))
	if err != nil {
		t.Fatal(err)
	}
	if err = c.SetOutputMode(); err != nil {
		t.Fatal(err)
	}

	if err = c.WriteRegister(0x07, 0x0133); err != nil {
		t.Fatal(err)
	}
	if v := panel.Register(0x07); v != 0x0133 {
		t.Errorf("expected register 0x07 to be 0x0133, got %#04x", v)
	}

	id, err := c.ReadRegister(0x00)
	if err != nil {
		t.Fatal(err)
	}
	if id != lcdtest.DeviceCode {
		t.Errorf("expected device code %#04x, got %#04x", lcdtest.DeviceCode, id)
	}

	if err = c.WriteRepeat(0x22, 0xF800, 0); !errors.Is(err, ErrRepeatCount) {
		t.Errorf("expected ErrRepeatCount, got %v", err)
	}
	if err = c.WriteRepeat(0x22, 0xF800, 3); err != nil {
		t.Fatal(err)
	}
	if err = c.WriteWords(0x22, 0x07E0, 0x001F); err != nil {
		t.Fatal(err)
	}
	if n := panel.GRAMWrites(); n != 5 {
		t.Errorf("expected 5 GRAM writes, got %d", n)
	}
	for x, want := range []uint16{0xF800, 0xF800, 0xF800, 0x07E0, 0x001F} {
		if v := panel.Pixel(x, 0); v != want {
			t.Errorf("expected %#04x at (%d,0), got %#04x", want, x, v)
		}
	}

	if err = c.WriteRegister(0x20, 3); err != nil {
		t.Fatal(err)
	}
	if err = c.WriteRegister(0x21, 0); err != nil {
		t.Fatal(err)
	}
	words, err := c.ReadWords(0x22, 2)
	if err != nil {
		t.Fatal(err)
	}
	if words[0] != 0x07E0 || words[1] != 0x001F {
		t.Errorf("expected 0x07e0 0x001f, got %#04x %#04x", words[0], words[1])
	}

	if err = c.Close(); err != nil {
		t.Fatal(err)
	}
	if panel.Selected() {
		t.Error("expected chip select to be released")
	}
	if v := panel.Violations(); len(v) != 0 {
		t.Errorf("unexpected violations %q", v)
	}
}

func TestConnBacklight(t *testing.T) {
	panel := lcdtest.NewPanel(0, 0)
	c, err := OpenParallel(testParallelConfig(panel, new(lcdtest.Delay)))
	if err != nil {
		t.Fatal(err)
	}

	if err = c.Backlight(gpio.High); err != nil {
		t.Fatal(err)
	}
	if l, _ := panel.BacklightLevel(); l != gpio.High {
		t.Error("expected backlight on")
	}
	if err = c.SetBacklight(gpio.DutyHalf); err != nil {
		t.Fatal(err)
	}
	if _, duty := panel.BacklightLevel(); duty != gpio.DutyHalf {
		t.Errorf("expected duty %s, got %s", gpio.DutyHalf, duty)
	}
}
