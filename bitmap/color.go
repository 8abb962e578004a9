// Package bitmap holds the pixel grid the renderer writes into and
// knows how to store it as BMP, PNG or TIFF.
package bitmap

import "image/color"

// Color is a packed RGBA value: red in the low byte, then green, blue and alpha.
type Color uint32

// Sentinel is the dark blue the canvas is reset to before rendering,
// so unwritten pixels stand out.
var Sentinel = MakeRGBA(0, 0, 255, 0)

func MakeRGBA(r, g, b, a uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

func (c Color) R() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c >> 16) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// RGBA implements color.Color.
// The alpha byte does not carry opacity, every cell is reported opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xff}.RGBA()
}
