package raster

import (
	"math"
	"strings"

	"github.com/anthonynsimon/bild/histogram"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL is a color in hue (0-360), saturation (0-100), lightness (0-100).
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// PixelInfo describes the value under a single image-space point.
//
// Intensity is the computational value. Hex and HSL render the same value
// as a display color for status readouts, and Alpha is the display-only
// alpha byte when the buffer carries one.
type PixelInfo struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Intensity uint8  `json:"intensity"`
	Hex       string `json:"hex"`
	HSL       HSL    `json:"hsl"`
	Alpha     *uint8 `json:"alpha,omitempty"`
}

// QueryPixel reports the pixel at (x, y). Out-of-bounds points return false
// and no info.
func QueryPixel(b *Buffer, x, y int) (*PixelInfo, bool) {
	v, ok := b.Intensity(x, y)
	if !ok {
		return nil, false
	}

	f := float64(v) / MaxIntensity
	c := colorful.Color{R: f, G: f, B: f}
	h, s, l := c.Hsl()

	info := &PixelInfo{
		X:         x,
		Y:         y,
		Intensity: v,
		Hex:       strings.ToUpper(c.Hex()),
		HSL: HSL{
			H: int(math.Round(h)),
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
	if b.alpha != nil {
		a := b.alpha[y*b.width+x]
		info.Alpha = &a
	}
	return info, true
}

// Histogram holds 256 intensity bins for a buffer.
type Histogram struct {
	Bins  []int   `json:"bins"`
	Total int     `json:"total"`
	Min   uint8   `json:"min"`
	Max   uint8   `json:"max"`
	Mean  float64 `json:"mean"`
}

// ComputeHistogram counts intensities over the whole buffer.
// It produces the data an external histogram display renders.
func ComputeHistogram(b *Buffer) *Histogram {
	// All three channels of the gray image are equal; the red bins suffice.
	rgba := histogram.NewRGBAHistogram(b.Gray())
	bins := make([]int, MaxIntensity+1)
	copy(bins, rgba.R.Bins)

	h := &Histogram{Bins: bins}
	first := true
	var sum float64
	for v, n := range bins {
		if n == 0 {
			continue
		}
		if first {
			h.Min = uint8(v)
			first = false
		}
		h.Max = uint8(v)
		h.Total += n
		sum += float64(v) * float64(n)
	}
	if h.Total > 0 {
		h.Mean = math.Round(sum/float64(h.Total)*100) / 100
	}
	return h
}
