package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an image file format the canvas can be stored as.
type Format string

const (
	BMP  Format = "bmp"
	PNG  Format = "png"
	TIFF Format = "tiff"
)

var ErrUnknownFormat = errors.New("bitmap: unknown image format")

// ParseFormat accepts a format name or file extension, with or without the leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "bmp":
		return BMP, nil
	case "png":
		return PNG, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFor picks the format from the file extension of path.
// Paths without an extension are written as BMP.
func FormatFor(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return BMP, nil
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	}
	return "image/png"
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case BMP:
		return bmp.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Save stores c at path, in the format implied by its extension.
func (c *Canvas) Save(path string) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	return c.SaveAs(path, f)
}

// SaveAs stores c at path in format f, whatever the extension says.
func (c *Canvas) SaveAs(path string, f Format) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if err := Encode(out, c, f); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}
