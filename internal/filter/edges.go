package filter

import (
	"image"
	"math"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Default hysteresis thresholds of the edges builtin.
const (
	DefaultEdgeLow  = 50
	DefaultEdgeHigh = 150
)

// plane is a width×height grid of normalized intensities.
type plane struct {
	w, h int
	v    []float64
}

func newPlane(w, h int) *plane {
	return &plane{w: w, h: h, v: make([]float64, w*h)}
}

// at reads with clamped (replicated) borders.
func (p *plane) at(x, y int) float64 {
	return p.v[clamp(y, 0, p.h-1)*p.w+clamp(x, 0, p.w-1)]
}

// Edges performs Canny-style edge detection and returns a binary map with
// edges at 255 and everything else at 0.
//
// # Algorithm
//
//  1. Intensities normalized to 0-1
//  2. 5x5 Gaussian blur (sigma ≈ 1.4) to reduce noise
//  3. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  4. Non-maximum suppression thins edges to one pixel
//  5. Hysteresis: magnitudes above high/255 are edges; those above low/255
//     are edges only when next to a strong one
//
// Lower thresholds find more edges but also more noise.
func Edges(src image.Image, low, high int) *image.Gray {
	buf := raster.FromImage(src)
	w, h := buf.Width(), buf.Height()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	gray := newPlane(w, h)
	for i, v := range buf.Pix() {
		gray.v[i] = float64(v) / raster.MaxIntensity
	}
	blurred := gaussian5(gray)

	mag := newPlane(w, h)
	dir := newPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := blurred.at(x+1, y-1) + 2*blurred.at(x+1, y) + blurred.at(x+1, y+1) -
				blurred.at(x-1, y-1) - 2*blurred.at(x-1, y) - blurred.at(x-1, y+1)
			gy := blurred.at(x-1, y+1) + 2*blurred.at(x, y+1) + blurred.at(x+1, y+1) -
				blurred.at(x-1, y-1) - 2*blurred.at(x, y-1) - blurred.at(x+1, y-1)
			mag.v[y*w+x] = math.Sqrt(gx*gx + gy*gy)
			dir.v[y*w+x] = math.Atan2(gy, gx)
		}
	}

	thin := suppress(mag, dir)

	lowT := float64(low) / raster.MaxIntensity
	highT := float64(high) / raster.MaxIntensity
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := thin.v[y*w+x]
			if v >= highT || (v >= lowT && strongNeighbor(thin, x, y, highT)) {
				out.Pix[y*out.Stride+x] = raster.MaxIntensity
			}
		}
	}
	return out
}

// suppress keeps only magnitudes that are local maxima along the gradient.
// Border pixels are always suppressed.
func suppress(mag, dir *plane) *plane {
	w, h := mag.w, mag.h
	out := newPlane(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			a := dir.v[y*w+x]
			m := mag.v[y*w+x]

			var n1, n2 float64
			switch {
			case (a >= -math.Pi/8 && a < math.Pi/8) || a >= 7*math.Pi/8 || a < -7*math.Pi/8:
				n1, n2 = mag.at(x-1, y), mag.at(x+1, y)
			case (a >= math.Pi/8 && a < 3*math.Pi/8) || (a >= -7*math.Pi/8 && a < -5*math.Pi/8):
				n1, n2 = mag.at(x+1, y-1), mag.at(x-1, y+1)
			case (a >= 3*math.Pi/8 && a < 5*math.Pi/8) || (a >= -5*math.Pi/8 && a < -3*math.Pi/8):
				n1, n2 = mag.at(x, y-1), mag.at(x, y+1)
			default:
				n1, n2 = mag.at(x-1, y-1), mag.at(x+1, y+1)
			}

			if m >= n1 && m >= n2 {
				out.v[y*w+x] = m
			}
		}
	}
	return out
}

func strongNeighbor(p *plane, x, y int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			if p.at(x+kx, y+ky) >= high {
				return true
			}
		}
	}
	return false
}

var gaussKernel = [5][5]float64{
	{1, 4, 7, 4, 1},
	{4, 16, 26, 16, 4},
	{7, 26, 41, 26, 7},
	{4, 16, 26, 16, 4},
	{1, 4, 7, 4, 1},
}

// gaussian5 applies the 5x5 kernel above, normalized by its sum of 273.
func gaussian5(p *plane) *plane {
	out := newPlane(p.w, p.h)
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += p.at(x+kx, y+ky) * gaussKernel[ky+2][kx+2]
				}
			}
			out.v[y*p.w+x] = sum / 273
		}
	}
	return out
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
