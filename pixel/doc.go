// Package pixel implements the 16-bit color encoding used by TFT controllers.
//
// The colors are compatible with Go's native [color.Color] and [color.Model] interfaces.
package pixel
