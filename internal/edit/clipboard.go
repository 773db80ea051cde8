package edit

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// BlendMode selects how pasted pixels combine with the pixels beneath them.
type BlendMode int

const (
	// BlendAnd is the bitwise AND of the two intensities.
	BlendAnd BlendMode = iota
	// BlendOr is the bitwise OR.
	BlendOr
	// BlendXor is the bitwise XOR. Pasting the same region twice with XOR
	// restores the original pixels.
	BlendXor
	// BlendAverage is the arithmetic mean, rounded down.
	BlendAverage
)

var blendNames = map[BlendMode]string{
	BlendAnd:     "AND",
	BlendOr:      "OR",
	BlendXor:     "XOR",
	BlendAverage: "BLEND",
}

func (m BlendMode) String() string {
	if s, ok := blendNames[m]; ok {
		return s
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode parses AND, OR, XOR or BLEND, case-insensitively.
func ParseBlendMode(s string) (BlendMode, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for m, name := range blendNames {
		if name == u {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode %q (want AND, OR, XOR or BLEND)", s)
}

func (m BlendMode) combine(dst, src uint8) uint8 {
	switch m {
	case BlendAnd:
		return dst & src
	case BlendOr:
		return dst | src
	case BlendXor:
		return dst ^ src
	default:
		return uint8((uint16(dst) + uint16(src)) / 2)
	}
}

// Clipboard holds at most one copied region.
type Clipboard struct {
	buf *raster.Buffer
}

// Copy stores the region r of img. Regions that are empty or not fully
// inside the image leave the clipboard unchanged and return false.
func (c *Clipboard) Copy(img *raster.Buffer, r image.Rectangle) bool {
	sub, ok := img.Sub(r)
	if !ok {
		return false
	}
	c.buf = sub
	return true
}

// Contents returns the copied region, if any.
func (c *Clipboard) Contents() (*raster.Buffer, bool) {
	return c.buf, c.buf != nil
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() { c.buf = nil }

// Paste composites src onto a copy of dst with its top-left corner at at.
// Pixels landing outside dst are skipped one by one, so a region hanging
// over an edge is pasted partially. dst itself is not modified.
func Paste(dst, src *raster.Buffer, at image.Point, mode BlendMode) *raster.Buffer {
	sw, sh := src.Width(), src.Height()
	dw, dh := dst.Width(), dst.Height()
	spix := src.Pix()

	return dst.Derive(func(pix []uint8, stride int) {
		for y := 0; y < sh; y++ {
			ty := at.Y + y
			if ty < 0 || ty >= dh {
				continue
			}
			for x := 0; x < sw; x++ {
				tx := at.X + x
				if tx < 0 || tx >= dw {
					continue
				}
				i := ty*stride + tx
				pix[i] = mode.combine(pix[i], spix[y*sw+x])
			}
		}
	})
}

// Fill returns a copy of img with the region r, clamped to the image, set
// to value.
func Fill(img *raster.Buffer, r image.Rectangle, value uint8) *raster.Buffer {
	r = r.Intersect(img.Bounds())
	return img.Derive(func(pix []uint8, stride int) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := pix[y*stride+r.Min.X : y*stride+r.Max.X]
			for i := range row {
				row[i] = value
			}
		}
	})
}
