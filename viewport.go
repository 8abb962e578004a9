package mandel

import "image"

// Viewport is the window of the complex plane spread over the rendered image.
//
// Horizontally it covers Width pixel columns. Vertically it covers Rows pixel
// rows, which for FramingShifted is the number of rows the bands render and
// for FramingSymmetric is the full image height.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	Width      int
	Rows       int
}

// ViewportOf derives the plane window of a render.
func ViewportOf(c RenderConfig) Viewport {
	vp := Viewport{
		XMin:  c.CenterX - c.Scale,
		XMax:  c.CenterX + c.Scale,
		Width: c.Width,
	}

	switch c.framing() {
	case FramingSymmetric:
		vp.YMin = c.CenterY - c.Scale
		vp.YMax = c.CenterY + c.Scale
		vp.Rows = c.Height
	default:
		// Each worker sees [ycenter-yscale, ycenter+yscale] around a center
		// already moved down by one yscale, and walks it with the global row
		// index, so the bands stack into one window n worker-windows tall.
		yscale := c.Scale / float64(c.Threads)
		ycenter := c.CenterY - yscale
		vp.YMin = ycenter - yscale
		vp.YMax = vp.YMin + float64(c.Threads)*2*yscale
		vp.Rows = c.Threads * (c.Height / c.Threads)
	}
	return vp
}

// X maps pixel column i to the real axis.
func (vp Viewport) X(i int) float64 {
	return vp.XMin + float64(i)*(vp.XMax-vp.XMin)/float64(vp.Width)
}

// Y maps pixel row j to the imaginary axis.
func (vp Viewport) Y(j int) float64 {
	if vp.Rows == 0 {
		return vp.YMin
	}
	return vp.YMin + float64(j)*(vp.YMax-vp.YMin)/float64(vp.Rows)
}

// PixelBand is the strip of rows owned by one worker.
type PixelBand struct {
	Index    int // worker number, starting at 1
	RowStart int
	RowCount int

	// YMin and YMax bound the band's slice of the plane.
	YMin, YMax float64
}

// Y maps the band-local row jl to the imaginary axis.
func (b PixelBand) Y(jl int) float64 {
	return b.YMin + float64(jl)*(b.YMax-b.YMin)/float64(b.RowCount)
}

// Rect returns the canvas rectangle the band covers in an image width pixels wide.
func (b PixelBand) Rect(width int) image.Rectangle {
	return image.Rect(0, b.RowStart, width, b.RowStart+b.RowCount)
}

// Bands partitions the image rows among c.Threads workers.
//
// Every band is height/threads rows tall. When the thread count does not
// divide the height the last height%threads rows belong to no band and are
// never rendered. There are no bands without at least one thread.
func Bands(c RenderConfig) []PixelBand {
	if c.Threads < 1 {
		return nil
	}
	vp := ViewportOf(c)
	rowCount, starts := splitRows(c.Height, c.Threads)

	bands := make([]PixelBand, 0, len(starts))
	for i, start := range starts {
		bands = append(bands, PixelBand{
			Index:    i + 1,
			RowStart: start,
			RowCount: rowCount,
			YMin:     vp.Y(start),
			YMax:     vp.Y(start + rowCount),
		})
	}
	return bands
}

// Unrendered lists the rows no band of c covers.
func Unrendered(c RenderConfig) []int {
	if c.Threads < 1 {
		return nil
	}
	var rows []int
	for j := c.Threads * (c.Height / c.Threads); j < c.Height; j++ {
		rows = append(rows, j)
	}
	return rows
}

// splitRows returns the height of each of n equal bands and the first row of
// band t (1-based) at index t-1: rowCount*(t-1).
func splitRows(height, n int) (rowCount int, starts []int) {
	if n <= 0 {
		panic("band count must be positive")
	}

	rowCount = height / n
	starts = make([]int, n)
	for t := 1; t <= n; t++ {
		starts[t-1] = rowCount * (t - 1)
	}
	return rowCount, starts
}
