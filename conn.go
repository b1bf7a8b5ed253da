package lcd

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/lcd/conn"
)

// Conn errors.
var (
	ErrCSPin       = errors.New("lcd: chip select (CS) GPIO pin is invalid")
	ErrRSPin       = errors.New("lcd: register select (RS) GPIO pin is invalid")
	ErrWRPin       = errors.New("lcd: write strobe (WR) GPIO pin is invalid")
	ErrRDPin       = errors.New("lcd: read strobe (RD) GPIO pin is invalid")
	ErrDataPin     = errors.New("lcd: data GPIO pins are invalid")
	ErrRepeatCount = errors.New("lcd: repeat count must be positive")
)

// Conn is the register protocol for communicating with the controller.
type Conn interface {
	conn.Delayer

	String() string

	// Close releases the bus.
	Close() error

	// Backlight switches the backlight.
	Backlight(gpio.Level) error

	// SetBacklight dims the backlight.
	SetBacklight(duty gpio.Duty) error

	// SetOutputMode switches the data lines to outputs.
	SetOutputMode() error

	// WriteRegister writes data to register index.
	WriteRegister(index, data uint16) error

	// ReadRegister reads register index.
	ReadRegister(index uint16) (uint16, error)

	// WriteRepeat writes data count times to register index in one transaction.
	WriteRepeat(index, data uint16, count int) error

	// WriteWords writes words to register index in one transaction.
	WriteWords(index uint16, words ...uint16) error

	// ReadWords reads n words from register index in one transaction, after
	// discarding the dummy word the controller returns first.
	ReadWords(index uint16, n int) ([]uint16, error)
}

// ParallelConfig describes the parallel bus configuration.
//
// Lines left nil are looked up by their DefaultPinNames name once the GPIO
// peripherals are enabled.
type ParallelConfig struct {
	// Data lines D0..D15. Ignored if Port is set.
	Data []gpio.PinIO

	// Port overrides Data, for example with a conn.BCM283xPort.
	Port conn.Port

	CS        gpio.PinOut
	RS        gpio.PinOut
	WR        gpio.PinOut
	RD        gpio.PinOut
	Backlight gpio.PinOut

	// Delay is the timing source, defaults to conn.SpinDelay.
	Delay conn.Delayer

	// BacklightFrequency is the PWM frequency used for dimming.
	BacklightFrequency physic.Frequency

	// Enable brings up the GPIO peripherals. Defaults to host.Init.
	Enable func() error
}

// DefaultParallelConfig are the default configuration values.
var DefaultParallelConfig = ParallelConfig{
	BacklightFrequency: 2 * physic.KiloHertz,
}

// PinNames are gpioreg names of the bus lines.
type PinNames struct {
	Data      []string
	CS        string
	RS        string
	WR        string
	RD        string
	Backlight string
}

// DefaultPinNames wires the data bus to GPIO4..GPIO19 and the control lines
// to GPIO20..GPIO24 on a Raspberry Pi header.
var DefaultPinNames = PinNames{
	Data: []string{
		"GPIO4", "GPIO5", "GPIO6", "GPIO7", "GPIO8", "GPIO9", "GPIO10", "GPIO11",
		"GPIO12", "GPIO13", "GPIO14", "GPIO15", "GPIO16", "GPIO17", "GPIO18", "GPIO19",
	},
	CS:        "GPIO20",
	RS:        "GPIO21",
	WR:        "GPIO22",
	RD:        "GPIO23",
	Backlight: "GPIO24",
}

func (n PinNames) resolve(config *ParallelConfig) {
	lookup := func(pin *gpio.PinOut, name string) {
		if *pin == nil && name != "" {
			if p := gpioreg.ByName(name); p != nil {
				*pin = p
			}
		}
	}
	lookup(&config.CS, n.CS)
	lookup(&config.RS, n.RS)
	lookup(&config.WR, n.WR)
	lookup(&config.RD, n.RD)
	lookup(&config.Backlight, n.Backlight)

	if config.Port == nil && len(config.Data) == 0 {
		for _, name := range n.Data {
			config.Data = append(config.Data, gpioreg.ByName(name))
		}
	}
}

// HostInit is the default ParallelConfig.Enable.
func HostInit() error {
	_, err := host.Init()
	return err
}

type parallelConn struct {
	*conn.Parallel
	conn.Delayer
	frequency physic.Frequency
}

// OpenParallel enables the GPIO peripherals and opens a parallel bus.
func OpenParallel(config *ParallelConfig) (Conn, error) {
	if config == nil {
		config = new(ParallelConfig)
		*config = DefaultParallelConfig
	}

	enable := config.Enable
	if enable == nil {
		enable = HostInit
	}
	if err := enable(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHardwareEnable, err)
	}

	resolved := *config
	config = &resolved
	DefaultPinNames.resolve(config)

	for _, check := range []struct {
		pin gpio.PinOut
		err error
	}{
		{config.CS, ErrCSPin},
		{config.RS, ErrRSPin},
		{config.WR, ErrWRPin},
		{config.RD, ErrRDPin},
	} {
		if check.pin == nil || check.pin == gpio.INVALID {
			return nil, check.err
		}
	}

	port := config.Port
	if port == nil {
		p, err := conn.NewPinPort(config.Data...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataPin, err)
		}
		port = p
	}

	backlight := config.Backlight
	if backlight == gpio.INVALID {
		backlight = nil
	}

	delay := config.Delay
	if delay == nil {
		delay = conn.SpinDelay{}
	}

	frequency := config.BacklightFrequency
	if frequency == 0 {
		frequency = DefaultParallelConfig.BacklightFrequency
	}

	return &parallelConn{
		Parallel:  conn.NewParallel(port, delay, config.CS, config.RS, config.WR, config.RD, backlight),
		Delayer:   delay,
		frequency: frequency,
	}, nil
}

func (c *parallelConn) Close() error {
	return c.Parallel.Halt()
}

func (c *parallelConn) SetBacklight(duty gpio.Duty) error {
	return c.Parallel.BacklightPWM(duty, c.frequency)
}

func (c *parallelConn) WriteRegister(index, data uint16) error {
	return c.Transaction(func() error {
		if err := c.SelectRegister(index); err != nil {
			return err
		}
		c.DelayUs(1)
		return c.WriteDataWord(data)
	})
}

func (c *parallelConn) ReadRegister(index uint16) (data uint16, err error) {
	err = c.Transaction(func() (err error) {
		if err = c.SelectRegister(index); err != nil {
			return
		}
		c.DelayUs(1)
		data, err = c.ReadDataWord()
		return
	})
	return
}

func (c *parallelConn) WriteRepeat(index, data uint16, count int) error {
	if count < 1 {
		return ErrRepeatCount
	}
	return c.Transaction(func() error {
		if err := c.SelectRegister(index); err != nil {
			return err
		}
		c.DelayUs(1)
		if err := c.WriteDataWord(data); err != nil {
			return err
		}
		for n := count - 1; n > 0; n-- {
			if err := c.Strobe(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *parallelConn) WriteWords(index uint16, words ...uint16) error {
	return c.Transaction(func() error {
		if err := c.SelectRegister(index); err != nil {
			return err
		}
		c.DelayUs(1)
		for _, word := range words {
			if err := c.WriteDataWord(word); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *parallelConn) ReadWords(index uint16, n int) (words []uint16, err error) {
	words = make([]uint16, n)
	err = c.Transaction(func() error {
		if err := c.SelectRegister(index); err != nil {
			return err
		}
		c.DelayUs(1)
		if _, err := c.ReadDataWord(); err != nil {
			return err
		}
		for i := range words {
			v, err := c.ReadDataWord()
			if err != nil {
				return err
			}
			words[i] = v
		}
		return nil
	})
	return
}
