package radial

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// diskBuffer draws a filled bright disk on a dark background.
func diskBuffer(t *testing.T, w, h int, cx, cy, r float64) *raster.Buffer {
	t.Helper()
	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				pix[y*w+x] = 255
			}
		}
	}
	b, err := raster.FromPix(w, h, pix)
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}
	return b
}

func TestFindCenter(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
	}{
		{"centered", 40, 40},
		{"off center", 28, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := diskBuffer(t, 80, 80, tt.cx, tt.cy, 15)

			est, err := FindCenter(img, 13, 17)
			if err != nil {
				t.Fatalf("FindCenter failed: %v", err)
			}
			if math.Abs(est.Center.X-tt.cx) > 1 || math.Abs(est.Center.Y-tt.cy) > 1 {
				t.Errorf("center: got (%v, %v), want (%v, %v)", est.Center.X, est.Center.Y, tt.cx, tt.cy)
			}
			if est.EdgePixels == 0 || est.Votes == 0 {
				t.Errorf("estimate: %+v", est)
			}
		})
	}
}

func TestFindCenter_Errors(t *testing.T) {
	img := raster.New(30, 30, 100)

	if _, err := FindCenter(img, 0, 5); !errors.Is(err, ErrInvalidSweepRange) {
		t.Errorf("rMin 0: got %v, want ErrInvalidSweepRange", err)
	}
	if _, err := FindCenter(img, 8, 4); !errors.Is(err, ErrInvalidSweepRange) {
		t.Errorf("reversed range: got %v, want ErrInvalidSweepRange", err)
	}
	if _, err := FindCenter(img, 3, 6); !errors.Is(err, ErrNoCenter) {
		t.Errorf("uniform image: got %v, want ErrNoCenter", err)
	}
}

func TestFindCenter_RadiusCappedAtDiagonal(t *testing.T) {
	img := diskBuffer(t, 40, 40, 20, 20, 8)

	capped, err := FindCenter(img, 6, math.MaxInt)
	if err != nil {
		t.Fatalf("FindCenter failed: %v", err)
	}
	// ceil(hypot(40, 40)) = 57
	want, err := FindCenter(img, 6, 57)
	if err != nil {
		t.Fatalf("FindCenter failed: %v", err)
	}
	if *capped != *want {
		t.Errorf("got %+v, want %+v", capped, want)
	}
}
