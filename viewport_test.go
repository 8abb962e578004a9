package mandel

import (
	"math"
	"slices"
	"testing"
)

func TestViewportShifted(t *testing.T) {
	c := RenderConfig{Scale: 2, Width: 4, Height: 4, MaxIterations: 50, Threads: 1}
	got := ViewportOf(c)
	want := Viewport{XMin: -2, XMax: 2, YMin: -4, YMax: 0, Width: 4, Rows: 4}
	if got != want {
		t.Fatalf("ViewportOf = %+v, want %+v", got, want)
	}

	// two threads halve yscale, so the window moves up by one unit
	c.Threads = 2
	got = ViewportOf(c)
	want = Viewport{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Width: 4, Rows: 4}
	if got != want {
		t.Fatalf("ViewportOf(threads=2) = %+v, want %+v", got, want)
	}
}

func TestViewportSymmetric(t *testing.T) {
	base := RenderConfig{CenterX: 1, CenterY: -0.5, Scale: 0.5, Width: 10, Height: 8, MaxIterations: 10, Framing: FramingSymmetric}
	for _, n := range []int{1, 2, 3, 4, 8} {
		c := base
		c.Threads = n
		got := ViewportOf(c)
		want := Viewport{XMin: 0.5, XMax: 1.5, YMin: -1, YMax: 0, Width: 10, Rows: 8}
		if got != want {
			t.Errorf("threads=%d: ViewportOf = %+v, want %+v", n, got, want)
		}
	}
}

// The shifted framing must place every row where a worker walking its
// own [ycenter-yscale, ycenter+yscale] window with the global row index would.
func TestShiftedMatchesPerWorkerWindow(t *testing.T) {
	c := RenderConfig{CenterX: -0.5, CenterY: 0.25, Scale: 1.5, Width: 16, Height: 12, MaxIterations: 10}
	for _, n := range []int{1, 2, 3, 4, 6, 5} {
		c.Threads = n
		yscale := c.Scale / float64(n)
		ycenter := c.CenterY - yscale
		ymin, ymax := ycenter-yscale, ycenter+yscale
		height := c.Height / n

		for _, b := range Bands(c) {
			for jl := range b.RowCount {
				j := b.RowStart + jl
				want := ymin + float64(j)*(ymax-ymin)/float64(height)
				if got := b.Y(jl); math.Abs(got-want) > 1e-12 {
					t.Errorf("threads=%d row %d: y = %v, want %v", n, j, got, want)
				}
			}
		}
	}
}

func TestBandsCoverImage(t *testing.T) {
	const height = 12
	for _, n := range []int{1, 2, 3, 4, 6, 12} {
		c := RenderConfig{Scale: 1, Width: 3, Height: height, MaxIterations: 1, Threads: n}
		bands := Bands(c)
		if len(bands) != n {
			t.Fatalf("threads=%d: %d bands", n, len(bands))
		}

		next := 0
		for k, b := range bands {
			if b.Index != k+1 {
				t.Errorf("threads=%d: band %d has index %d", n, k, b.Index)
			}
			if b.RowStart != next {
				t.Errorf("threads=%d: band %d starts at %d, want %d", n, b.Index, b.RowStart, next)
			}
			if b.RowCount != height/n {
				t.Errorf("threads=%d: band %d has %d rows", n, b.Index, b.RowCount)
			}
			next = b.RowStart + b.RowCount
		}
		if next != height {
			t.Errorf("threads=%d: bands end at row %d, want %d", n, next, height)
		}
		if rows := Unrendered(c); len(rows) != 0 {
			t.Errorf("threads=%d: unrendered rows %v", n, rows)
		}
	}
}

func TestBandWindowsStack(t *testing.T) {
	for _, f := range []Framing{FramingShifted, FramingSymmetric} {
		c := RenderConfig{Scale: 3, Width: 5, Height: 30, MaxIterations: 1, Threads: 5, Framing: f}
		vp := ViewportOf(c)
		bands := Bands(c)

		if bands[0].YMin != vp.YMin {
			t.Errorf("%s: first band starts at %v, want %v", f, bands[0].YMin, vp.YMin)
		}
		for k := 1; k < len(bands); k++ {
			if bands[k].YMin != bands[k-1].YMax {
				t.Errorf("%s: gap between band %d and %d", f, k, k+1)
			}
		}
		last := bands[len(bands)-1]
		if math.Abs(last.YMax-vp.YMax) > 1e-12 {
			t.Errorf("%s: last band ends at %v, want %v", f, last.YMax, vp.YMax)
		}
	}
}

func TestBandsRemainder(t *testing.T) {
	c := RenderConfig{Scale: 2, Width: 4, Height: 10, MaxIterations: 10, Threads: 3}
	bands := Bands(c)

	starts := make([]int, len(bands))
	for i, b := range bands {
		starts[i] = b.RowStart
		if b.RowCount != 3 {
			t.Errorf("band %d has %d rows, want 3", b.Index, b.RowCount)
		}
	}
	if !slices.Equal(starts, []int{0, 3, 6}) {
		t.Errorf("band starts = %v", starts)
	}
	if rows := Unrendered(c); !slices.Equal(rows, []int{9}) {
		t.Errorf("Unrendered = %v, want [9]", rows)
	}
}

func TestBandsMoreThreadsThanRows(t *testing.T) {
	c := RenderConfig{Scale: 2, Width: 4, Height: 2, MaxIterations: 10, Threads: 3}
	for _, b := range Bands(c) {
		if b.RowCount != 0 || b.RowStart != 0 {
			t.Errorf("band %d = %+v, want empty", b.Index, b)
		}
	}
	if rows := Unrendered(c); !slices.Equal(rows, []int{0, 1}) {
		t.Errorf("Unrendered = %v, want [0 1]", rows)
	}
}

func TestBandsWithoutThreads(t *testing.T) {
	for _, n := range []int{0, -3} {
		c := RenderConfig{Scale: 2, Width: 4, Height: 4, MaxIterations: 10, Threads: n}
		if bands := Bands(c); bands != nil {
			t.Errorf("threads=%d: Bands = %+v, want nil", n, bands)
		}
		if rows := Unrendered(c); rows != nil {
			t.Errorf("threads=%d: Unrendered = %v, want nil", n, rows)
		}
	}
}

func TestBandRect(t *testing.T) {
	b := PixelBand{Index: 2, RowStart: 3, RowCount: 3}
	r := b.Rect(7)
	if r.Min.X != 0 || r.Min.Y != 3 || r.Max.X != 7 || r.Max.Y != 6 {
		t.Errorf("Rect = %v", r)
	}
}
