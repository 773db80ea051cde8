package raster

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
)

// Layout describes the fixed-offset binary raster format.
//
// The stream starts with HeaderOffset opaque bytes, followed by Width×Height
// row-major pixel groups of PixelStride bytes. Each group stores its channels
// in B, G, R, A order.
type Layout struct {
	HeaderOffset int `json:"header_offset"`
	Width        int `json:"width"`
	Height       int `json:"height"`
	PixelStride  int `json:"pixel_stride"`
}

// DefaultLayout is the layout of the detector frames the viewer was built for.
var DefaultLayout = Layout{
	HeaderOffset: 3072,
	Width:        2082,
	Height:       2217,
	PixelStride:  4,
}

// PixelBytes returns the number of bytes occupied by pixel data.
func (l Layout) PixelBytes() int {
	return l.Width * l.Height * l.PixelStride
}

// Size returns the minimum stream length needed to decode the layout.
func (l Layout) Size() int {
	return l.HeaderOffset + l.PixelBytes()
}

// Validate checks that the layout can describe a readable image.
func (l Layout) Validate() error {
	switch {
	case l.HeaderOffset < 0:
		return &DecodeError{Kind: InvalidLayout, Detail: fmt.Sprintf("negative header offset %d", l.HeaderOffset)}
	case l.Width <= 0 || l.Height <= 0:
		return &DecodeError{Kind: InvalidLayout, Detail: fmt.Sprintf("invalid dimensions %dx%d", l.Width, l.Height)}
	case l.PixelStride < 4:
		return &DecodeError{Kind: InvalidLayout, Detail: fmt.Sprintf("pixel stride %d is smaller than a BGRA group", l.PixelStride)}
	case !l.fits():
		return &DecodeError{Kind: InvalidLayout, Detail: fmt.Sprintf("%dx%d pixels of %d bytes after %d header bytes overflow the addressable size",
			l.Width, l.Height, l.PixelStride, l.HeaderOffset)}
	}
	return nil
}

// fits reports whether Size can be computed without overflowing int.
// It assumes non-negative fields.
func (l Layout) fits() bool {
	hi, pixels := bits.Mul64(uint64(l.Width), uint64(l.Height))
	if hi != 0 || pixels > math.MaxInt {
		return false
	}
	hi, n := bits.Mul64(pixels, uint64(l.PixelStride))
	return hi == 0 && n <= uint64(math.MaxInt-l.HeaderOffset)
}

// DecodeErrorKind classifies decode failures.
type DecodeErrorKind int

const (
	// TooSmall means the input is shorter than the layout requires.
	TooSmall DecodeErrorKind = iota + 1
	// Truncated means the stream ended while pixel data was being read.
	Truncated
	// InvalidLayout means the layout parameters themselves are unusable.
	InvalidLayout
)

func (k DecodeErrorKind) String() string {
	switch k {
	case TooSmall:
		return "too small"
	case Truncated:
		return "truncated"
	case InvalidLayout:
		return "invalid layout"
	default:
		return "unknown"
	}
}

// DecodeError is returned when raw raster data cannot be decoded.
// No partial buffer is ever returned alongside it.
type DecodeError struct {
	Kind   DecodeErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return "raster decode: " + e.Kind.String()
	}
	return "raster decode: " + e.Kind.String() + ": " + e.Detail
}

// Is lets errors.Is match a DecodeError against the sentinel of its kind.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Detail == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrTooSmall  = &DecodeError{Kind: TooSmall}
	ErrTruncated = &DecodeError{Kind: Truncated}
)

// DecodeBytes decodes an in-memory raster.
//
// It fails with a TooSmall DecodeError when data is shorter than
// layout.Size(). Trailing bytes beyond the pixel data are ignored.
func DecodeBytes(data []byte, layout Layout) (*Buffer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(data) < layout.Size() {
		return nil, &DecodeError{
			Kind:   TooSmall,
			Detail: fmt.Sprintf("have %d bytes, need %d", len(data), layout.Size()),
		}
	}
	return convert(data[layout.HeaderOffset:layout.Size()], layout), nil
}

// Decode reads a raster from a stream. The header is skipped, then exactly
// layout.PixelBytes() bytes are read. A stream that ends early fails with a
// Truncated DecodeError.
func Decode(r io.Reader, layout Layout) (*Buffer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	if n, err := io.CopyN(io.Discard, r, int64(layout.HeaderOffset)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{
				Kind:   Truncated,
				Detail: fmt.Sprintf("header ended after %d of %d bytes", n, layout.HeaderOffset),
			}
		}
		return nil, fmt.Errorf("failed to skip raster header: %w", err)
	}

	// Memory grows with the bytes actually read, not with the declared layout.
	want := layout.PixelBytes()
	data, err := io.ReadAll(io.LimitReader(r, int64(want)))
	if err != nil {
		return nil, fmt.Errorf("failed to read raster pixels: %w", err)
	}
	if len(data) < want {
		return nil, &DecodeError{
			Kind:   Truncated,
			Detail: fmt.Sprintf("read %d of %d pixel bytes", len(data), want),
		}
	}

	return convert(data, layout), nil
}

// convert turns BGRA groups into intensities. data holds exactly the pixel section.
func convert(data []byte, layout Layout) *Buffer {
	count := layout.Width * layout.Height
	b := &Buffer{
		width:  layout.Width,
		height: layout.Height,
		pix:    make([]uint8, count),
		alpha:  make([]uint8, count),
	}
	for i := 0; i < count; i++ {
		g := data[i*layout.PixelStride : i*layout.PixelStride+4]
		b.pix[i] = Luminance(g[2], g[1], g[0])
		b.alpha[i] = g[3]
	}
	return b
}
