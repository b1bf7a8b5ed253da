// Package lcdtest simulates an ILI932x controller wired to mock GPIO pins.
//
// The simulated controller decodes the chip select, register select, write
// and read strobes like the real chip does, keeps its registers and graphics
// RAM, and records protocol violations of the host.
package lcdtest

import (
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/lcd/pixel"
)

// DeviceCode is returned when reading register 0x00.
const DeviceCode = 0x9328

// Registers with side effects.
const (
	regDeviceCode = 0x00
	regEntryMode  = 0x03
	regGRAMHorAd  = 0x20
	regGRAMVerAd  = 0x21
	regGRAM       = 0x22
	regHorStart   = 0x50
	regHorEnd     = 0x51
	regVerStart   = 0x52
	regVerEnd     = 0x53
)

// Entry mode bits.
const (
	entryAM  = 1 << 3
	entryID0 = 1 << 4
	entryID1 = 1 << 5
)

type line uint8

const (
	lineData line = iota
	lineCS
	lineRS
	lineWR
	lineRD
	lineBacklight
)

// Pin is a mock GPIO line connected to a Panel.
type Pin struct {
	gpiotest.Pin

	// Fail is returned by Out, In and PWM when set.
	Fail error

	panel *Panel
	line  line
	bit   uint
}

func (p *Pin) Out(l gpio.Level) error {
	if p.Fail != nil {
		return p.Fail
	}
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.panel.out(p, l)
	return nil
}

func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if p.Fail != nil {
		return p.Fail
	}
	if err := p.Pin.In(pull, edge); err != nil {
		return err
	}
	p.panel.in(p)
	return nil
}

func (p *Pin) Read() gpio.Level {
	if p.line != lineData {
		return p.Pin.Read()
	}
	return p.panel.sample(p.bit)
}

func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	if p.Fail != nil {
		return p.Fail
	}
	if p.line != lineBacklight {
		return fmt.Errorf("lcdtest: %s does not support PWM", p.N)
	}
	p.panel.pwm(duty)
	return nil
}

// Write is a register write seen by the controller.
type Write struct {
	Index uint16
	Data  uint16
}

func (w Write) String() string {
	return fmt.Sprintf("%#02x=%#04x", w.Index, w.Data)
}

// Panel is a simulated ILI932x controller. It is safe to inspect from other
// goroutines while a driver is using the pins.
type Panel struct {
	D         [16]*Pin
	CS        *Pin
	RS        *Pin
	WR        *Pin
	RD        *Pin
	Backlight *Pin

	mu         sync.Mutex
	size       image.Point
	cs         gpio.Level
	rs         gpio.Level
	wr         gpio.Level
	rd         gpio.Level
	bl         gpio.Level
	duty       gpio.Duty
	bus        uint16 // levels driven by the host
	input      uint16 // host data lines in input mode
	driving    bool
	answer     uint16 // levels driven by the controller
	index      uint16
	dummy      bool
	regs       map[uint16]uint16
	ac         image.Point
	gram       []uint16
	log        []Write
	gramWrites int
	gramReads  int
	violations []string
}

// NewPanel returns a controller with a native resolution of width x height
// pixels. Zero values select 240x320.
func NewPanel(width, height int) *Panel {
	if width == 0 {
		width = 240
	}
	if height == 0 {
		height = 320
	}

	p := &Panel{
		size:  image.Pt(width, height),
		cs:    gpio.High,
		rs:    gpio.High,
		wr:    gpio.High,
		rd:    gpio.High,
		input: 0xFFFF,
		gram:  make([]uint16, width*height),
	}
	p.reset()

	for i := range p.D {
		p.D[i] = p.newPin(fmt.Sprintf("D%d", i), i, lineData, gpio.Low)
		p.D[i].bit = uint(i)
	}
	p.CS = p.newPin("CS", 20, lineCS, gpio.High)
	p.RS = p.newPin("RS", 21, lineRS, gpio.High)
	p.WR = p.newPin("WR", 22, lineWR, gpio.High)
	p.RD = p.newPin("RD", 23, lineRD, gpio.High)
	p.Backlight = p.newPin("BL", 24, lineBacklight, gpio.Low)
	return p
}

func (p *Panel) newPin(name string, num int, role line, level gpio.Level) *Pin {
	return &Pin{
		Pin:   gpiotest.Pin{N: name, Num: num, L: level},
		panel: p,
		line:  role,
	}
}

func (p *Panel) reset() {
	p.regs = map[uint16]uint16{
		regEntryMode: entryID0 | entryID1,
		regHorEnd:    uint16(p.size.X - 1),
		regVerEnd:    uint16(p.size.Y - 1),
	}
}

func (p *Panel) String() string {
	return fmt.Sprintf("lcdtest panel %dx%d", p.size.X, p.size.Y)
}

// Data returns the data lines, D0 first.
func (p *Panel) Data() []gpio.PinIO {
	pins := make([]gpio.PinIO, len(p.D))
	for i, pin := range p.D {
		pins[i] = pin
	}
	return pins
}

// Size is the native resolution.
func (p *Panel) Size() image.Point {
	return p.size
}

// Register returns the last value written to register index.
func (p *Panel) Register(index uint16) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.regs[index]
}

// Writes returns the register writes since the last ClearLog. GRAM data
// writes are only counted, see GRAMWrites.
func (p *Panel) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Write(nil), p.log...)
}

// GRAMWrites is the number of words written to GRAM since the last ClearLog.
func (p *Panel) GRAMWrites() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gramWrites
}

// GRAMReads is the number of words read from GRAM, dummy reads included,
// since the last ClearLog.
func (p *Panel) GRAMReads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gramReads
}

// ClearLog forgets the recorded writes and counters.
func (p *Panel) ClearLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = p.log[:0]
	p.gramWrites = 0
	p.gramReads = 0
}

// Violations returns the protocol violations seen so far.
func (p *Panel) Violations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.violations...)
}

// Selected reports whether chip select is asserted.
func (p *Panel) Selected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cs == gpio.Low
}

// BacklightLevel returns the backlight line level and the last PWM duty.
func (p *Panel) BacklightLevel() (gpio.Level, gpio.Duty) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bl, p.duty
}

// Address is the GRAM address counter in native coordinates.
func (p *Panel) Address() image.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ac
}

// Pixel returns the GRAM word at native (x, y).
func (p *Panel) Pixel(x, y int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !(image.Point{x, y}).In(image.Rectangle{Max: p.size}) {
		return 0
	}
	return p.gram[y*p.size.X+x]
}

// Snapshot returns the GRAM contents in native orientation.
func (p *Panel) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: p.size})
	p.SnapshotInto(img)
	return img
}

// SnapshotInto copies the GRAM contents into img, which must be at least as
// large as the panel.
func (p *Panel) SnapshotInto(img *image.RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for y := 0; y < p.size.Y; y++ {
		for x := 0; x < p.size.X; x++ {
			img.SetRGBA(x, y, pixel.RGB565{V: p.gram[y*p.size.X+x]}.RGBA8())
		}
	}
}

func (p *Panel) violation(format string, args ...any) {
	p.violations = append(p.violations, fmt.Sprintf(format, args...))
}

func (p *Panel) out(pin *Pin, l gpio.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch pin.line {
	case lineData:
		mask := uint16(1) << pin.bit
		p.input &^= mask
		if l {
			p.bus |= mask
		} else {
			p.bus &^= mask
		}
		if p.driving {
			p.violation("D%d driven by host during read", pin.bit)
		}

	case lineCS:
		p.cs = l

	case lineRS:
		p.rs = l

	case lineWR:
		if p.wr == l {
			return
		}
		p.wr = l
		switch {
		case p.cs == gpio.High:
			if l == gpio.Low {
				p.violation("WR strobe with CS high")
			}
		case l == gpio.High:
			p.latch()
		}

	case lineRD:
		if p.rd == l {
			return
		}
		p.rd = l
		switch {
		case l == gpio.High:
			p.driving = false
		case p.cs == gpio.High:
			p.violation("RD strobe with CS high")
		default:
			p.drive()
		}

	case lineBacklight:
		p.bl = l
	}
}

func (p *Panel) in(pin *Pin) {
	if pin.line != lineData {
		return
	}
	p.mu.Lock()
	p.input |= 1 << pin.bit
	p.mu.Unlock()
}

func (p *Panel) pwm(duty gpio.Duty) {
	p.mu.Lock()
	p.duty = duty
	p.bl = duty > 0
	p.mu.Unlock()
}

func (p *Panel) sample(bit uint) gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	mask := uint16(1) << bit
	switch {
	case p.input&mask == 0:
		return p.bus&mask != 0
	case p.driving:
		return p.answer&mask != 0
	default:
		return gpio.Low
	}
}

// latch handles the rising edge of WR.
func (p *Panel) latch() {
	if p.input != 0 {
		p.violation("write with data lines %#04x in input mode", p.input)
		return
	}
	if p.rs == gpio.Low {
		p.index = p.bus
		if p.index == regGRAM {
			p.dummy = true
		}
		return
	}

	data := p.bus
	switch p.index {
	case regGRAM:
		if p.ac.In(image.Rectangle{Max: p.size}) {
			p.gram[p.ac.Y*p.size.X+p.ac.X] = data
		} else {
			p.violation("GRAM write outside of the panel at %s", p.ac)
		}
		p.gramWrites++
		p.advance()
		return
	case regGRAMHorAd:
		p.ac.X = int(data)
		p.dummy = true
	case regGRAMVerAd:
		p.ac.Y = int(data)
		p.dummy = true
	}
	p.regs[p.index] = data
	p.log = append(p.log, Write{Index: p.index, Data: data})
}

// drive handles the falling edge of RD.
func (p *Panel) drive() {
	if p.input != 0xFFFF {
		p.violation("read with data lines %#04x driven by host", ^p.input)
	}
	p.driving = true
	if p.rs == gpio.Low {
		p.answer = 0
		return
	}

	switch p.index {
	case regDeviceCode:
		p.answer = DeviceCode
	case regGRAM:
		p.gramReads++
		if p.dummy {
			p.dummy = false
			p.answer = 0
			return
		}
		if p.ac.In(image.Rectangle{Max: p.size}) {
			p.answer = p.gram[p.ac.Y*p.size.X+p.ac.X]
		} else {
			p.answer = 0
		}
		p.advance()
	default:
		p.answer = p.regs[p.index]
	}
}

// advance moves the address counter the way the entry mode register says,
// wrapping inside the window.
func (p *Panel) advance() {
	var (
		mode     = p.regs[regEntryMode]
		hsa, hea = int(p.regs[regHorStart]), int(p.regs[regHorEnd])
		vsa, vea = int(p.regs[regVerStart]), int(p.regs[regVerEnd])
		dx, dy   = -1, -1
		wrapped  bool
	)
	if mode&entryID0 != 0 {
		dx = 1
	}
	if mode&entryID1 != 0 {
		dy = 1
	}

	if mode&entryAM == 0 {
		if p.ac.X, wrapped = step(p.ac.X, dx, hsa, hea); wrapped {
			p.ac.Y, _ = step(p.ac.Y, dy, vsa, vea)
		}
	} else {
		if p.ac.Y, wrapped = step(p.ac.Y, dy, vsa, vea); wrapped {
			p.ac.X, _ = step(p.ac.X, dx, hsa, hea)
		}
	}
}

func step(v, d, lo, hi int) (int, bool) {
	v += d
	switch {
	case v > hi:
		if d > 0 {
			return lo, true
		}
		return hi, false
	case v < lo:
		if d < 0 {
			return hi, true
		}
		return lo, false
	default:
		return v, false
	}
}
