package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestMakeRGBA(t *testing.T) {
	c := MakeRGBA(1, 2, 3, 4)
	if c != 0x04030201 {
		t.Fatalf("MakeRGBA(1,2,3,4) = %#08x, want 0x04030201", uint32(c))
	}
	if c.R() != 1 || c.G() != 2 || c.B() != 3 || c.A() != 4 {
		t.Errorf("channels = %d %d %d %d", c.R(), c.G(), c.B(), c.A())
	}

	// alpha byte is not opacity
	_, _, _, a := MakeRGBA(9, 9, 9, 0).RGBA()
	if a != 0xffff {
		t.Errorf("alpha = %#x, want opaque", a)
	}
}

func TestCanvasResetAndSet(t *testing.T) {
	c := New(3, 2)
	c.Reset(Sentinel)
	c.SetPixel(2, 1, MakeRGBA(7, 7, 7, 0))

	for y := range c.Height() {
		for x := range c.Width() {
			want := Sentinel
			if x == 2 && y == 1 {
				want = MakeRGBA(7, 7, 7, 0)
			}
			if got := c.Pixel(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %#08x, want %#08x", x, y, uint32(got), uint32(want))
			}
		}
	}
}

func TestCanvasSetOutOfBoundsPanics(t *testing.T) {
	c := New(2, 2)
	for _, p := range []image.Point{{-1, 0}, {2, 0}, {0, 2}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SetPixel(%d,%d) did not panic", p.X, p.Y)
				}
			}()
			c.SetPixel(p.X, p.Y, Sentinel)
		}()
	}
}

func TestMarshalBinary(t *testing.T) {
	c := New(4, 3)
	for y := range 3 {
		for x := range 4 {
			c.SetPixel(x, y, MakeRGBA(uint8(x), uint8(y), uint8(x+y), 0))
		}
	}

	data, err := c.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != headerLen+4*12 {
		t.Fatalf("len(data) = %d", len(data))
	}

	var d Canvas
	if err := d.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if d.Width() != 4 || d.Height() != 3 {
		t.Fatalf("decoded %dx%d", d.Width(), d.Height())
	}
	for y := range 3 {
		for x := range 4 {
			if d.Pixel(x, y) != c.Pixel(x, y) {
				t.Errorf("pixel (%d,%d) differs", x, y)
			}
		}
	}

	if err := d.UnmarshalBinary(data[:len(data)-1]); !errors.Is(err, errShortCanvas) {
		t.Errorf("truncated data: err = %v", err)
	}
	if err := d.UnmarshalBinary(data[:3]); !errors.Is(err, errShortCanvas) {
		t.Errorf("short header: err = %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"mandel.bmp", BMP, false},
		{"mandel.BMP", BMP, false},
		{"out/mandel.png", PNG, false},
		{"a.tif", TIFF, false},
		{"a.tiff", TIFF, false},
		{"mandel", BMP, false},
		{"mandel.jpg", "", true},
	}
	for _, tc := range tests {
		got, err := FormatFor(tc.path)
		if (err != nil) != tc.err {
			t.Errorf("FormatFor(%q) err = %v", tc.path, err)
			continue
		}
		if tc.err && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFor(%q) err = %v, want ErrUnknownFormat", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func testCanvas() *Canvas {
	c := New(5, 4)
	c.Reset(Sentinel)
	c.SetPixel(0, 0, MakeRGBA(255, 255, 255, 0))
	c.SetPixel(4, 3, MakeRGBA(128, 128, 128, 0))
	return c
}

func checkDecoded(t *testing.T, c *Canvas, img image.Image) {
	t.Helper()
	if img.Bounds() != c.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), c.Bounds())
	}
	for y := range c.Height() {
		for x := range c.Width() {
			got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			want := c.Pixel(x, y)
			if got.R != want.R() || got.G != want.G() || got.B != want.B() || got.A != 255 {
				t.Errorf("pixel (%d,%d) = %v, want %#08x", x, y, got, uint32(want))
			}
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	c := testCanvas()
	dir := t.TempDir()

	decoders := map[string]func(*os.File) (image.Image, error){
		"mandel.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"mandel.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"mandel.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := c.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			img, err := decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			checkDecoded(t, c, img)
		})
	}
}

func TestSaveAsIgnoresExtension(t *testing.T) {
	c := testCanvas()
	path := filepath.Join(t.TempDir(), "image.out")
	if err := c.SaveAs(path, PNG); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	checkDecoded(t, c, img)

	// Save refuses the extension before touching the file system
	jpg := filepath.Join(t.TempDir(), "mandel.jpg")
	if err := c.Save(jpg); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(%q) err = %v", jpg, err)
	}
	if _, err := os.Stat(jpg); !os.IsNotExist(err) {
		t.Errorf("%s was created", jpg)
	}
}

func TestSaveUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "mandel.bmp")
	if err := testCanvas().Save(path); err == nil {
		t.Fatal("Save into missing directory succeeded")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testCanvas(), "gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v", err)
	}
}
