package mandel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/marben/mandel/bitmap"
)

// Frame is a finished render as it travels between a server and its clients.
type Frame struct {
	Canvas *bitmap.Canvas
	Failed []string // one entry per band that was not rendered
}

// maxFrameBytes bounds a decompressed frame. A 16 megapixel canvas takes 64MiB.
const maxFrameBytes = 1 << 30

// EncodeAll and DecodeAll may be used concurrently.
var (
	frameEncoder = mustEncoder()
	frameDecoder = mustDecoder()
)

func mustEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(err)
	}
	return enc
}

func mustDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxFrameBytes))
	if err != nil {
		panic(err)
	}
	return dec
}

var errBadFrame = errors.New("malformed frame")

// MarshalBinary encodes the failure list followed by the canvas binary encoding,
// all of it zstd compressed. A frame without a canvas encodes to no bytes.
func (f Frame) MarshalBinary() ([]byte, error) {
	if f.Canvas == nil {
		return []byte{}, nil
	}

	raw := binary.AppendUvarint(nil, uint64(len(f.Failed)))
	for _, s := range f.Failed {
		raw = binary.AppendUvarint(raw, uint64(len(s)))
		raw = append(raw, s...)
	}
	pix, err := f.Canvas.MarshalBinary()
	if err != nil {
		return nil, err
	}
	raw = append(raw, pix...)

	return frameEncoder.EncodeAll(raw, make([]byte, 0, len(raw)/8)), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		*f = Frame{}
		return nil
	}

	raw, err := frameDecoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("%w: zstd: %v", errBadFrame, err)
	}

	n, k := binary.Uvarint(raw)
	if k <= 0 || n > uint64(len(raw)) {
		return fmt.Errorf("%w: failure count", errBadFrame)
	}
	raw = raw[k:]

	var failed []string
	for range n {
		l, k := binary.Uvarint(raw)
		if k <= 0 || l > uint64(len(raw)-k) {
			return fmt.Errorf("%w: failure message", errBadFrame)
		}
		failed = append(failed, string(raw[k:k+int(l)]))
		raw = raw[k+int(l):]
	}

	var c bitmap.Canvas
	if err := c.UnmarshalBinary(raw); err != nil {
		return fmt.Errorf("%w: %v", errBadFrame, err)
	}
	f.Canvas, f.Failed = &c, failed
	return nil
}
