package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Canvas is a width × height grid of colors stored in row-major order.
//
// Writes to distinct cells may happen from different goroutines at the same time.
// Writes to the same cell must be synchronized by the caller.
type Canvas struct {
	w, h int
	pix  []Color
}

var _ image.Image = (*Canvas)(nil)

// New allocates a canvas. All cells start as zero (black).
func New(width, height int) *Canvas {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("bitmap: negative dimensions %dx%d", width, height))
	}
	return &Canvas{w: width, h: height, pix: make([]Color, width*height)}
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// Reset paints every cell with col.
func (c *Canvas) Reset(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// SetPixel writes col at (x, y). It panics when the point is outside the canvas.
func (c *Canvas) SetPixel(x, y int, col Color) {
	c.pix[c.offset(x, y)] = col
}

// Pixel returns the color at (x, y). It panics when the point is outside the canvas.
func (c *Canvas) Pixel(x, y int) Color {
	return c.pix[c.offset(x, y)]
}

func (c *Canvas) offset(x, y int) int {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		panic(fmt.Sprintf("bitmap: pixel (%d,%d) outside %dx%d canvas", x, y, c.w, c.h))
	}
	return y*c.w + x
}

func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

// Opaque reports true, cells carry no transparency.
func (c *Canvas) Opaque() bool { return true }

func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.w, c.h) }

func (c *Canvas) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(c.Bounds())) {
		return color.RGBA{}
	}
	return c.pix[y*c.w+x]
}

const headerLen = 8

// MarshalBinary encodes the canvas as big-endian uint32 width and height
// followed by every cell as a big-endian uint32.
func (c *Canvas) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerLen+4*len(c.pix))
	binary.BigEndian.PutUint32(buf[0:], uint32(c.w))
	binary.BigEndian.PutUint32(buf[4:], uint32(c.h))
	for i, p := range c.pix {
		binary.BigEndian.PutUint32(buf[headerLen+4*i:], uint32(p))
	}
	return buf, nil
}

var errShortCanvas = errors.New("bitmap: truncated canvas data")

// UnmarshalBinary decodes data produced by MarshalBinary, replacing the canvas contents.
func (c *Canvas) UnmarshalBinary(data []byte) error {
	if len(data) < headerLen {
		return errShortCanvas
	}
	w := int(binary.BigEndian.Uint32(data[0:]))
	h := int(binary.BigEndian.Uint32(data[4:]))
	body := data[headerLen:]
	if w < 0 || h < 0 || len(body)/4 != w*h || len(body)%4 != 0 {
		return fmt.Errorf("%w: %dx%d canvas with %d bytes of pixels", errShortCanvas, w, h, len(body))
	}

	pix := make([]Color, w*h)
	for i := range pix {
		pix[i] = Color(binary.BigEndian.Uint32(body[4*i:]))
	}
	c.w, c.h, c.pix = w, h, pix
	return nil
}
