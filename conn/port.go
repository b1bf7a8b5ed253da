package conn

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// PortWidth is the number of data lines on a parallel port.
const PortWidth = 16

// Port errors.
var (
	ErrPortWidth = fmt.Errorf("conn: parallel port needs exactly %d data lines", PortWidth)
	ErrPortPin   = errors.New("conn: parallel port data pin is invalid")
)

// Port is a 16-bit wide bidirectional data port.
type Port interface {
	String() string

	// Halt releases the data lines.
	Halt() error

	// Output switches all data lines to push-pull outputs, driving the last written value.
	Output() error

	// Input switches all data lines to floating inputs.
	Input() error

	// Write drives v onto the data lines, bit n on line n. Only valid in output mode.
	Write(v uint16) error

	// Read samples the data lines. Only valid in input mode.
	Read() (uint16, error)
}

// PinPort is a Port made of 16 individual GPIO lines.
type PinPort struct {
	pins  [PortWidth]gpio.PinIO
	latch uint16
	input bool
}

// NewPinPort returns a Port for the provided data lines, D0 first.
func NewPinPort(pins ...gpio.PinIO) (*PinPort, error) {
	if len(pins) != PortWidth {
		return nil, ErrPortWidth
	}
	p := new(PinPort)
	for i, pin := range pins {
		if pin == nil || pin == gpio.INVALID {
			return nil, fmt.Errorf("%w: D%d", ErrPortPin, i)
		}
		p.pins[i] = pin
	}
	return p, nil
}

func (p *PinPort) String() string {
	names := make([]string, 0, PortWidth)
	for _, pin := range p.pins {
		names = append(names, pin.Name())
	}
	return "port[" + strings.Join(names, ",") + "]"
}

func (p *PinPort) Halt() error {
	if err := p.Input(); err != nil {
		return err
	}
	for _, pin := range p.pins {
		if err := pin.Halt(); err != nil {
			return err
		}
	}
	return nil
}

func (p *PinPort) Output() error {
	for i, pin := range p.pins {
		if err := pin.Out(bitLevel(p.latch, i)); err != nil {
			return fmt.Errorf("conn: D%d output: %w", i, err)
		}
	}
	p.input = false
	return nil
}

func (p *PinPort) Input() error {
	for i, pin := range p.pins {
		if err := pin.In(gpio.Float, gpio.NoEdge); err != nil {
			return fmt.Errorf("conn: D%d input: %w", i, err)
		}
	}
	p.input = true
	return nil
}

func (p *PinPort) Write(v uint16) error {
	// Only lines that change are touched, every line is a syscall on most hosts.
	changed := p.latch ^ v
	p.latch = v
	if p.input {
		return nil
	}
	for i, pin := range p.pins {
		if changed&(1<<i) == 0 {
			continue
		}
		if err := pin.Out(bitLevel(v, i)); err != nil {
			return fmt.Errorf("conn: D%d write: %w", i, err)
		}
	}
	return nil
}

func (p *PinPort) Read() (uint16, error) {
	var v uint16
	for i, pin := range p.pins {
		if pin.Read() == gpio.High {
			v |= 1 << i
		}
	}
	return v, nil
}

func bitLevel(v uint16, bit int) gpio.Level {
	return gpio.Level(v&(1<<bit) != 0)
}
