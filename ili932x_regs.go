package lcd

// Registers (from ILI9328.pdf).
const (
	ili932xStartOsc        = 0x00 // Start Oscillation, reads the device code
	ili932xDrivOutCtrl     = 0x01 // Driver Output Control 1
	ili932xDrivWavCtrl     = 0x02 // LCD Driving Control
	ili932xEntryMode       = 0x03 // Entry Mode
	ili932xResizeCtrl      = 0x04 // Resize Control
	ili932xDispCtrl1       = 0x07 // Display Control 1
	ili932xDispCtrl2       = 0x08 // Display Control 2
	ili932xDispCtrl3       = 0x09 // Display Control 3
	ili932xDispCtrl4       = 0x0A // Display Control 4
	ili932xRGBIfCtrl1      = 0x0C // RGB Display Interface Control 1
	ili932xFrmMarkerPos    = 0x0D // Frame Marker Position
	ili932xRGBIfCtrl2      = 0x0F // RGB Display Interface Control 2
	ili932xPowCtrl1        = 0x10 // Power Control 1
	ili932xPowCtrl2        = 0x11 // Power Control 2
	ili932xPowCtrl3        = 0x12 // Power Control 3
	ili932xPowCtrl4        = 0x13 // Power Control 4
	ili932xGRAMHorAddr     = 0x20 // Horizontal GRAM Address Set
	ili932xGRAMVerAddr     = 0x21 // Vertical GRAM Address Set
	ili932xRWGRAM          = 0x22 // Write Data to GRAM
	ili932xPowCtrl7        = 0x29 // Power Control 7
	ili932xFrmRateColCtrl  = 0x2B // Frame Rate and Color Control
	ili932xGammaCtrl1      = 0x30
	ili932xGammaCtrl2      = 0x31
	ili932xGammaCtrl3      = 0x32
	ili932xGammaCtrl4      = 0x35
	ili932xGammaCtrl5      = 0x36
	ili932xGammaCtrl6      = 0x37
	ili932xGammaCtrl7      = 0x38
	ili932xGammaCtrl8      = 0x39
	ili932xGammaCtrl9      = 0x3C
	ili932xGammaCtrl10     = 0x3D
	ili932xHorStartAddr    = 0x50 // Horizontal Address Start Position
	ili932xHorEndAddr      = 0x51 // Horizontal Address End Position
	ili932xVerStartAddr    = 0x52 // Vertical Address Start Position
	ili932xVerEndAddr      = 0x53 // Vertical Address End Position
	ili932xGateScanCtrl1   = 0x60 // Driver Output Control 2
	ili932xGateScanCtrl2   = 0x61 // Base Image Display Control
	ili932xGateScanCtrl3   = 0x6A // Vertical Scroll Control
	ili932xPartImg1DispPos = 0x80
	ili932xPartImg1Start   = 0x81
	ili932xPartImg1End     = 0x82
	ili932xPartImg2DispPos = 0x83
	ili932xPartImg2Start   = 0x84
	ili932xPartImg2End     = 0x85
	ili932xPanelIfCtrl1    = 0x90
	ili932xPanelIfCtrl2    = 0x92
	ili932xPanelIfCtrl3    = 0x93
	ili932xPanelIfCtrl4    = 0x95
	ili932xPanelIfCtrl5    = 0x97
	ili932xPanelIfCtrl6    = 0x98
)

// Entry Mode (R03h) bit fields.
const (
	ili932xEntryAM  uint16 = 1 << 3  // AM: address update in vertical direction first
	ili932xEntryID0 uint16 = 1 << 4  // I/D0: horizontal increment
	ili932xEntryID1 uint16 = 1 << 5  // I/D1: vertical increment
	ili932xEntryBGR uint16 = 1 << 12 // BGR: swap red and blue
)

// Display Control 1 (R07h) values.
const (
	ili932xDisplayOff uint16 = 0x0000
	ili932xDisplayOn  uint16 = 0x0133 // BASEE, GON, DTE, D1-0: base image shown
)

// register is one register write of an initialization table.
type register struct {
	index uint16
	data  uint16
}

// Initialization tables, in datasheet order. The delays between the tables are
// part of the power supply start-up sequence.
var (
	ili932xDriverSetup = []register{
		{ili932xDrivOutCtrl, 0x0100}, // SS: source output shift
		{ili932xDrivWavCtrl, 0x0700}, // line inversion
		{ili932xResizeCtrl, 0x0000},
		{ili932xDispCtrl2, 0x0202}, // front and back porch: 2 lines
		{ili932xDispCtrl3, 0x0000},
		{ili932xDispCtrl4, 0x0000},
		{ili932xRGBIfCtrl1, 0x0000},
		{ili932xFrmMarkerPos, 0x0000},
		{ili932xRGBIfCtrl2, 0x0000},
		{ili932xPowCtrl1, 0x0000},
		{ili932xPowCtrl2, 0x0007},
		{ili932xPowCtrl3, 0x0000},
		{ili932xPowCtrl4, 0x0000},
	}
	ili932xPowerSupply = []register{
		{ili932xPowCtrl1, 0x1690}, // SAP, BT, APE, AP
		{ili932xPowCtrl2, 0x0227}, // DC1, DC0, VC
	}
	ili932xGamma = []register{
		{ili932xGammaCtrl1, 0x0000},
		{ili932xGammaCtrl2, 0x0000},
		{ili932xGammaCtrl3, 0x0000},
		{ili932xGammaCtrl4, 0x0206},
		{ili932xGammaCtrl5, 0x0808},
		{ili932xGammaCtrl6, 0x0007},
		{ili932xGammaCtrl7, 0x0201},
		{ili932xGammaCtrl8, 0x0000},
		{ili932xGammaCtrl9, 0x0000},
		{ili932xGammaCtrl10, 0x0000},
	}
	ili932xPanelSetup = []register{
		{ili932xGateScanCtrl1, 0xA700}, // GS, NL: 320 lines
		{ili932xGateScanCtrl2, 0x0003}, // NDL, REV
		{ili932xGateScanCtrl3, 0x0000},
		{ili932xPanelIfCtrl1, 0x0010},
		{ili932xPanelIfCtrl2, 0x0000},
		{ili932xPanelIfCtrl3, 0x0003},
		{ili932xPanelIfCtrl4, 0x1100},
		{ili932xPanelIfCtrl5, 0x0000},
		{ili932xPanelIfCtrl6, 0x0000},
	}
)
