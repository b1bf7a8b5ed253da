package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Parallel errors.
var (
	ErrNestedTransaction = errors.New("conn: parallel bus transaction is already open")
	ErrNoBacklight       = errors.New("conn: no backlight pin")
)

// Parallel is an 8080-style parallel bus with 16 data lines and active-low
// chip select, write and read strobes plus a register select line (low selects
// the index register, high selects data).
//
// The bus is not safe for concurrent use.
type Parallel struct {
	port      Port
	delay     Delayer
	cs        gpio.PinOut
	rs        gpio.PinOut
	wr        gpio.PinOut
	rd        gpio.PinOut
	backlight gpio.PinOut
	inTx      bool
}

// NewParallel returns a bus on the provided lines. backlight may be nil.
func NewParallel(port Port, delay Delayer, cs, rs, wr, rd, backlight gpio.PinOut) *Parallel {
	if delay == nil {
		delay = SpinDelay{}
	}
	return &Parallel{
		port:      port,
		delay:     delay,
		cs:        cs,
		rs:        rs,
		wr:        wr,
		rd:        rd,
		backlight: backlight,
	}
}

func (b *Parallel) String() string {
	return fmt.Sprintf("parallel bus %s cs=%s rs=%s wr=%s rd=%s", b.port, b.cs, b.rs, b.wr, b.rd)
}

// Halt deasserts chip select and releases the data lines.
func (b *Parallel) Halt() error {
	if err := b.cs.Out(gpio.High); err != nil {
		return err
	}
	return b.port.Halt()
}

// SetOutputMode switches the data lines to push-pull outputs.
func (b *Parallel) SetOutputMode() error {
	return b.port.Output()
}

// SetInputMode switches the data lines to floating inputs.
func (b *Parallel) SetInputMode() error {
	return b.port.Input()
}

// DriveBus drives v onto the data lines.
func (b *Parallel) DriveBus(v uint16) error {
	return b.port.Write(v)
}

// SampleBus reads the data lines.
func (b *Parallel) SampleBus() (uint16, error) {
	return b.port.Read()
}

// Backlight switches the backlight line.
func (b *Parallel) Backlight(level gpio.Level) error {
	if b.backlight == nil {
		return ErrNoBacklight
	}
	return b.backlight.Out(level)
}

// BacklightPWM dims the backlight, if the backlight line supports PWM.
func (b *Parallel) BacklightPWM(duty gpio.Duty, f physic.Frequency) error {
	if b.backlight == nil {
		return ErrNoBacklight
	}
	return b.backlight.PWM(duty, f)
}

// Transaction selects the device, runs fn and deselects the device.
//
// Chip select is released on every path; the error of fn takes precedence over
// an error releasing chip select. Transactions do not nest.
func (b *Parallel) Transaction(fn func() error) (err error) {
	if b.inTx {
		return ErrNestedTransaction
	}
	for _, pin := range []gpio.PinOut{b.rs, b.rd, b.wr} {
		if err = pin.Out(gpio.High); err != nil {
			return
		}
	}
	if err = b.cs.Out(gpio.Low); err != nil {
		return
	}
	b.inTx = true
	b.delay.DelayUs(1)

	defer func() {
		b.delay.DelayUs(1)
		b.inTx = false
		if csErr := b.cs.Out(gpio.High); err == nil {
			err = csErr
		}
	}()

	return fn()
}

// SelectRegister latches index into the controller's index register.
func (b *Parallel) SelectRegister(index uint16) error {
	if err := b.rs.Out(gpio.Low); err != nil {
		return err
	}
	if err := b.port.Write(index); err != nil {
		return err
	}
	if err := b.pulse(b.wr); err != nil {
		return err
	}
	return b.rs.Out(gpio.High)
}

// WriteDataWord writes one data word to the selected register.
func (b *Parallel) WriteDataWord(data uint16) error {
	if err := b.port.Write(data); err != nil {
		return err
	}
	return b.pulse(b.wr)
}

// Strobe writes the word currently on the bus again.
func (b *Parallel) Strobe() error {
	b.delay.DelayUs(1)
	return b.pulse(b.wr)
}

// ReadDataWord reads one data word from the selected register.
//
// RD is released and the data lines are driven again on every path, the first
// error is returned.
func (b *Parallel) ReadDataWord() (v uint16, err error) {
	defer func() {
		if rdErr := b.rd.Out(gpio.High); err == nil {
			err = rdErr
		}
		if outErr := b.port.Output(); err == nil {
			err = outErr
		}
		if err != nil {
			v = 0
		}
	}()

	if err = b.port.Input(); err != nil {
		return
	}
	if err = b.rd.Out(gpio.Low); err != nil {
		return
	}
	b.delay.DelayUs(1)
	return b.port.Read()
}

func (b *Parallel) pulse(strobe gpio.PinOut) error {
	if err := strobe.Out(gpio.Low); err != nil {
		return err
	}
	b.delay.DelayUs(1)
	return strobe.Out(gpio.High)
}
