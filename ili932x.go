package lcd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/lcd/conn"
	"github.com/BeatGlow/lcd/pixel"
)

const (
	ili932xDefaultWidth  = 240
	ili932xDefaultHeight = 320
)

var (
	_ Display        = (*ILI932x)(nil)
	_ display.Drawer = (*ILI932x)(nil)
)

// ILI932x drives an ILI9325/ILI9328 controller.
type ILI932x struct {
	c        Conn
	native   image.Point
	rotation Rotation
	id       uint16
	err      error
}

// New returns a driver that takes ownership of c. The controller is not
// touched until Init is called.
func New(c Conn, config *Config) (*ILI932x, error) {
	if config == nil {
		config = new(Config)
	}

	width, height := config.Width, config.Height
	if width == 0 {
		width = ili932xDefaultWidth
	}
	if height == 0 {
		height = ili932xDefaultHeight
	}
	if width < 0 || height < 0 || width > ili932xDefaultWidth || height > ili932xDefaultHeight {
		return nil, fmt.Errorf("lcd: invalid size %dx%d, maximum size is %dx%d", width, height, ili932xDefaultWidth, ili932xDefaultHeight)
	}

	return &ILI932x{
		c:        c,
		native:   image.Pt(width, height),
		rotation: NoRotation,
	}, nil
}

func (d *ILI932x) String() string {
	size := d.Size()
	return fmt.Sprintf("ILI932x %dx%d on %s", size.X, size.Y, d.c)
}

// ID is the device code read during Init, 0x9325 or 0x9328 for a responding controller.
func (d *ILI932x) ID() uint16 {
	return d.id
}

// Init runs the power-on sequence. It must complete before drawing; after a
// failure the whole sequence has to be repeated.
func (d *ILI932x) Init() (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrInit, err)
		}
	}()

	if err = d.c.Backlight(gpio.High); errors.Is(err, conn.ErrNoBacklight) {
		log.Println("lcd: no backlight control")
	} else if err != nil {
		return
	}
	if err = d.c.SetOutputMode(); err != nil {
		return
	}
	d.c.DelayMs(130)

	if d.id, err = d.c.ReadRegister(ili932xStartOsc); err != nil {
		return
	}
	if debug {
		log.Printf("lcd: device code %#04x", d.id)
	}

	if err = d.c.WriteRegister(ili932xStartOsc, 0x0001); err != nil {
		return
	}
	d.c.DelayMs(50)

	if err = d.writeRegisters(ili932xDriverSetup); err != nil {
		return
	}
	d.c.DelayMs(200)

	if err = d.writeRegisters(ili932xPowerSupply); err != nil {
		return
	}
	d.c.DelayMs(50)

	if err = d.c.WriteRegister(ili932xPowCtrl3, 0x001A); err != nil { // VCIRE, VRH
		return
	}
	d.c.DelayMs(50)

	if err = d.writeRegisters([]register{
		{ili932xPowCtrl4, 0x1800}, // VDV: VCOM amplitude
		{ili932xPowCtrl7, 0x002A}, // VCM: VCOMH
	}); err != nil {
		return
	}
	d.c.DelayMs(50)

	if err = d.writeRegisters(ili932xGamma); err != nil {
		return
	}
	if err = d.SetRotation(NoRotation); err != nil {
		return
	}
	if err = d.resetWindow(); err != nil {
		return
	}
	if err = d.writeRegisters([]register{
		{ili932xGRAMHorAddr, 0x0000},
		{ili932xGRAMVerAddr, 0x0000},
	}); err != nil {
		return
	}
	if err = d.writeRegisters(ili932xPanelSetup); err != nil {
		return
	}
	return d.c.WriteRegister(ili932xDispCtrl1, ili932xDisplayOn)
}

func (d *ILI932x) writeRegisters(registers []register) error {
	for _, r := range registers {
		if err := d.c.WriteRegister(r.index, r.data); err != nil {
			return fmt.Errorf("lcd: register %#02x: %w", r.index, err)
		}
	}
	return nil
}

// Close turns the display off and releases the bus.
func (d *ILI932x) Close() error {
	if err := d.Halt(); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

// Halt turns the display and backlight off.
func (d *ILI932x) Halt() error {
	if err := d.Show(false); err != nil {
		return err
	}
	if err := d.c.Backlight(gpio.Low); err != nil && !errors.Is(err, conn.ErrNoBacklight) {
		return err
	}
	return nil
}

func (d *ILI932x) Show(show bool) error {
	var value = ili932xDisplayOff
	if show {
		value = ili932xDisplayOn
	}
	return d.c.WriteRegister(ili932xDispCtrl1, value)
}

// SetContrast dims the backlight. Without PWM support the backlight is
// switched off at level 0 and on otherwise.
func (d *ILI932x) SetContrast(level uint8) error {
	const step = gpio.DutyMax / 0xFF
	err := d.c.SetBacklight(step * gpio.Duty(level))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, conn.ErrNoBacklight):
		return nil
	default:
		if debug {
			log.Printf("lcd: backlight PWM: %v", err)
		}
		return d.c.Backlight(gpio.Level(level > 0))
	}
}

// Rotation is the current rotation.
func (d *ILI932x) Rotation() Rotation {
	return d.rotation
}

// SetRotation changes the address update direction of the controller.
// Existing content is not redrawn.
func (d *ILI932x) SetRotation(rotation Rotation) error {
	if !rotation.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRotationID, rotation)
	}

	var mode uint16
	switch rotation {
	case NoRotation:
		mode = ili932xEntryID0 | ili932xEntryID1
	case Rotate90:
		mode = ili932xEntryAM | ili932xEntryID1
	case Rotate180:
		mode = 0
	case Rotate270:
		mode = ili932xEntryAM | ili932xEntryID0
	}

	d.rotation = rotation
	return d.c.WriteRegister(ili932xEntryMode, mode|ili932xEntryBGR)
}

// Size is the logical display size.
func (d *ILI932x) Size() image.Point {
	return LogicalSize(d.rotation, d.native)
}

// MaxBottomRight is the largest drawable logical coordinate.
func (d *ILI932x) MaxBottomRight() image.Point {
	return d.Size().Sub(image.Pt(1, 1))
}

func (d *ILI932x) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.Size()}
}

func (d *ILI932x) ColorModel() color.Model {
	return pixel.RGB565Model
}

// DrawPixel sets the pixel at p. Points outside of the display are not
// checked, the controller wraps them to an undefined address.
func (d *ILI932x) DrawPixel(p image.Point, c color.Color) error {
	if err := d.setAddress(ToNative(d.rotation, p, d.native)); err != nil {
		return err
	}
	return d.c.WriteRepeat(ili932xRWGRAM, pixel.Encode(c), 1)
}

// ReadPixel reads back the pixel at p from the controller's graphics RAM.
func (d *ILI932x) ReadPixel(p image.Point) (pixel.RGB565, error) {
	if err := d.setAddress(ToNative(d.rotation, p, d.native)); err != nil {
		return pixel.RGB565{}, err
	}
	words, err := d.c.ReadWords(ili932xRWGRAM, 1)
	if err != nil {
		return pixel.RGB565{}, err
	}
	return pixel.RGB565{V: words[0]}, nil
}

// FillRectangle fills r with c. The controller window is programmed once and
// the color is streamed by repeating the write strobe.
func (d *ILI932x) FillRectangle(r image.Rectangle, c color.Color) error {
	if r.Min.X > r.Max.X || r.Min.Y > r.Max.Y {
		return fmt.Errorf("%w: %s", ErrInvalidWindow, r)
	}
	if r.Empty() {
		return nil
	}
	if err := d.setWindow(r); err != nil {
		return err
	}

	// GRAM writes go in bursts of 4 words.
	n := (r.Dx()*r.Dy() + 3) &^ 3
	if debug {
		log.Printf("lcd: fill %s with %d words", r, n)
	}
	if err := d.c.WriteRepeat(ili932xRWGRAM, pixel.Encode(c), n); err != nil {
		return err
	}
	return d.resetWindow()
}

// Clear fills the display with black.
func (d *ILI932x) Clear() error {
	return d.FillRectangle(d.Bounds(), pixel.Black)
}

// Draw copies src, aligned at sp, into r. Uniform sources are filled, others
// are streamed pixel by pixel into the window in the controller's address
// update order.
func (d *ILI932x) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	clipped := r.Intersect(d.Bounds())
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))

	if u, ok := src.(*image.Uniform); ok {
		return d.FillRectangle(clipped, u.C)
	}

	words := make([]uint16, 0, clipped.Dx()*clipped.Dy())
	for y := 0; y < clipped.Dy(); y++ {
		for x := 0; x < clipped.Dx(); x++ {
			words = append(words, pixel.Encode(src.At(sp.X+x, sp.Y+y)))
		}
	}

	if err := d.setWindow(clipped); err != nil {
		return err
	}
	if err := d.c.WriteWords(ili932xRWGRAM, words...); err != nil {
		return err
	}
	return d.resetWindow()
}

// At reads the pixel at (x, y) back from the controller.
func (d *ILI932x) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(d.Bounds()) {
		return color.Transparent
	}
	c, err := d.ReadPixel(image.Pt(x, y))
	if err != nil {
		d.keep(err)
	}
	return c
}

// Set draws the pixel at (x, y). Errors are reported by Refresh.
func (d *ILI932x) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(d.Bounds()) {
		return
	}
	d.keep(d.DrawPixel(image.Pt(x, y), c))
}

// Refresh returns the first error from At or Set since the last call. Drawing
// is unbuffered, there is nothing to redraw.
func (d *ILI932x) Refresh() error {
	err := d.err
	d.err = nil
	return err
}

func (d *ILI932x) keep(err error) {
	if err != nil && d.err == nil {
		d.err = err
	}
}

func (d *ILI932x) setAddress(p image.Point) error {
	if err := d.c.WriteRegister(ili932xGRAMHorAddr, uint16(p.X)); err != nil {
		return err
	}
	return d.c.WriteRegister(ili932xGRAMVerAddr, uint16(p.Y))
}

// setWindow confines GRAM access to the logical rectangle r and points the
// address counter at its logical top left corner.
func (d *ILI932x) setWindow(r image.Rectangle) error {
	lo, hi := nativeWindow(d.rotation, r, d.native)
	if lo.X > hi.X || lo.Y > hi.Y {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, lo, hi)
	}
	if debug {
		log.Printf("lcd: window rotation %s (%d,%d)-(%d,%d)", d.rotation, lo.X, lo.Y, hi.X, hi.Y)
	}

	if err := d.writeRegisters([]register{
		{ili932xHorStartAddr, uint16(lo.X)},
		{ili932xHorEndAddr, uint16(hi.X)},
		{ili932xVerStartAddr, uint16(lo.Y)},
		{ili932xVerEndAddr, uint16(hi.Y)},
	}); err != nil {
		return err
	}
	return d.setAddress(ToNative(d.rotation, r.Min, d.native))
}

// resetWindow opens the window to the full panel.
func (d *ILI932x) resetWindow() error {
	return d.writeRegisters([]register{
		{ili932xHorStartAddr, 0},
		{ili932xHorEndAddr, uint16(d.native.X - 1)},
		{ili932xVerStartAddr, 0},
		{ili932xVerEndAddr, uint16(d.native.Y - 1)},
	})
}
