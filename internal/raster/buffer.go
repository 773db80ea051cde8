package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// MaxIntensity is the largest value a pixel can hold.
const MaxIntensity = 255

// Buffer is an immutable grayscale raster of Width×Height intensity values.
//
// Buffer implements image.Image with a color.GrayModel so it can be handed
// directly to image processing libraries. Pixel storage is private: every
// operation that alters pixels returns a new Buffer, which keeps a buffer
// held by an editing session from being changed behind its back.
//
// # Alpha
//
// Buffers produced by the decoder keep the per-pixel alpha byte of the source
// format as display metadata. Alpha never takes part in any computation and
// is dropped by derived buffers.
type Buffer struct {
	width  int
	height int
	pix    []uint8
	alpha  []uint8
}

// New returns a width×height buffer with every pixel set to value.
func New(width, height int, value uint8) *Buffer {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	pix := make([]uint8, width*height)
	if value != 0 {
		for i := range pix {
			pix[i] = value
		}
	}
	return &Buffer{width: width, height: height, pix: pix}
}

// FromPix builds a buffer from row-major intensities. The slice is copied.
func FromPix(width, height int, pix []uint8) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel data length %d does not match %dx%d", len(pix), width, height)
	}
	cp := make([]uint8, len(pix))
	copy(cp, pix)
	return &Buffer{width: width, height: height, pix: cp}, nil
}

// FromImage converts any image to a Buffer.
//
// Pixels whose red, green and blue components are equal keep that value
// unchanged, so a grayscale image survives a round trip through an RGBA
// representation bit-exactly. Other pixels are reduced with Luminance.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := &Buffer{width: w, height: h, pix: make([]uint8, w*h)}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			off := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(b.pix[y*w:(y+1)*w], g.Pix[off:off+w])
		}
		return b
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(bl>>8)
			if r8 == g8 && g8 == b8 {
				b.pix[y*w+x] = r8
			} else {
				b.pix[y*w+x] = Luminance(r8, g8, b8)
			}
		}
	}
	return b
}

// Luminance reduces an RGB triple to a single intensity using the ITU-R
// BT.601 weights, rounded to the nearest integer and clamped to [0,255].
func Luminance(r, g, b uint8) uint8 {
	v := math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
	if v < 0 {
		return 0
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return uint8(v)
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool { return b == nil || b.width == 0 || b.height == 0 }

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image. The origin is always (0,0).
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image. Out-of-bounds coordinates read as black.
func (b *Buffer) At(x, y int) color.Color {
	v, _ := b.Intensity(x, y)
	return color.Gray{Y: v}
}

// Intensity returns the value at (x, y) and whether the point lies inside the buffer.
func (b *Buffer) Intensity(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return b.pix[y*b.width+x], true
}

// Pix returns a copy of the row-major intensity data.
func (b *Buffer) Pix() []uint8 {
	cp := make([]uint8, len(b.pix))
	copy(cp, b.pix)
	return cp
}

// Alpha returns a copy of the alpha metadata, or nil when the buffer has none.
func (b *Buffer) Alpha() []uint8 {
	if b.alpha == nil {
		return nil
	}
	cp := make([]uint8, len(b.alpha))
	copy(cp, b.alpha)
	return cp
}

// Gray returns an independent *image.Gray copy of the buffer.
func (b *Buffer) Gray() *image.Gray {
	g := image.NewGray(b.Bounds())
	copy(g.Pix, b.pix)
	return g
}

// Sub extracts the region r as a new buffer. It returns false when r is
// empty or not fully contained in the buffer.
func (b *Buffer) Sub(r image.Rectangle) (*Buffer, bool) {
	if r.Empty() || !r.In(b.Bounds()) {
		return nil, false
	}
	w, h := r.Dx(), r.Dy()
	out := &Buffer{width: w, height: h, pix: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		src := (r.Min.Y+y)*b.width + r.Min.X
		copy(out.pix[y*w:(y+1)*w], b.pix[src:src+w])
	}
	return out, true
}

// Derive returns a copy of the buffer after fn has edited the copied pixels.
// fn receives the row-major data and the row stride (equal to Width).
func (b *Buffer) Derive(fn func(pix []uint8, stride int)) *Buffer {
	out := &Buffer{width: b.width, height: b.height, pix: b.Pix()}
	fn(out.pix, out.width)
	return out
}

// Equal reports whether both buffers have the same size and intensities.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
