package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3/bcm283x"
)

// BCM283x port errors.
var (
	ErrNoBCM283x    = errors.New("conn: bcm283x GPIO is not present")
	ErrBCM283xRange = errors.New("conn: bcm283x port must be within GPIO0..GPIO31")
)

// BCM283xPort is a Port on 16 consecutive Raspberry Pi GPIO lines.
//
// Writes and reads hit the GPIO set/clear/level registers directly, so all 16
// lines change on the same bus cycle. Direction changes still go through the
// individual pins.
type BCM283xPort struct {
	PinPort
	bank bank0
}

// bank0 places a 16-bit word on GPIO0..GPIO31.
type bank0 struct {
	shift uint
	mask  uint32
}

func newBank0(first int) (bank0, error) {
	if first < 0 || first+PortWidth > 32 {
		return bank0{}, fmt.Errorf("%w, got GPIO%d..GPIO%d", ErrBCM283xRange, first, first+PortWidth-1)
	}
	return bank0{
		shift: uint(first),
		mask:  0xffff << uint(first),
	}, nil
}

// levels returns the bits to set and to clear for driving v.
func (b bank0) levels(v uint16) (set, reset uint32) {
	set = uint32(v) << b.shift
	return set, ^set & b.mask
}

// word extracts the port value from the bank levels.
func (b bank0) word(levels uint32) uint16 {
	return uint16((levels & b.mask) >> b.shift)
}

// NewBCM283xPort returns a port on GPIO<first> .. GPIO<first+15>. host.Init must have run.
func NewBCM283xPort(first int) (*BCM283xPort, error) {
	bank, err := newBank0(first)
	if err != nil {
		return nil, err
	}
	if !bcm283x.Present() {
		return nil, ErrNoBCM283x
	}

	pins := make([]gpio.PinIO, PortWidth)
	for i := range pins {
		pins[i] = gpioreg.ByName(fmt.Sprintf("GPIO%d", first+i))
	}
	p, err := NewPinPort(pins...)
	if err != nil {
		return nil, err
	}

	return &BCM283xPort{
		PinPort: *p,
		bank:    bank,
	}, nil
}

func (p *BCM283xPort) String() string {
	return fmt.Sprintf("bcm283x port GPIO%d..GPIO%d", p.bank.shift, p.bank.shift+PortWidth-1)
}

func (p *BCM283xPort) Write(v uint16) error {
	p.latch = v
	if p.input {
		return nil
	}
	set, reset := p.bank.levels(v)
	bcm283x.PinsClear0To31(reset)
	bcm283x.PinsSet0To31(set)
	return nil
}

func (p *BCM283xPort) Read() (uint16, error) {
	return p.bank.word(bcm283x.PinsRead0To31()), nil
}
