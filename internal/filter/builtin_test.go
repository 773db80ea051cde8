package filter

import (
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

func TestBuiltins_AllRun(t *testing.T) {
	r := NewBuiltinRegistry()
	img := raster.New(16, 12, 100)

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			out, err := r.Apply(name, img)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if out.Width() != 16 || out.Height() != 12 {
				t.Errorf("dimensions: got %dx%d, want 16x12", out.Width(), out.Height())
			}
		})
	}
}

func TestBuiltins_Invert(t *testing.T) {
	r := NewBuiltinRegistry()
	img, err := raster.FromPix(2, 1, []uint8{0, 200})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}

	out, err := r.Apply("invert", img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	got := out.Pix()
	if got[0] != 255 || got[1] != 55 {
		t.Errorf("invert: got %v, want [255 55]", got)
	}
}

func TestBuiltins_Threshold(t *testing.T) {
	r := NewBuiltinRegistry()
	img, err := raster.FromPix(3, 1, []uint8{10, 127, 240})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}

	out, err := r.Apply("threshold", img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	got := out.Pix()
	if got[0] != 0 || got[2] != 255 {
		t.Errorf("threshold: got %v, want dark=0 bright=255", got)
	}
}

func TestBuiltins_Names(t *testing.T) {
	want := []string{"blur", "brighten", "contrast", "darken", "edges", "invert", "median", "sharpen", "threshold"}
	got := NewBuiltinRegistry().Names()
	if len(got) != len(want) {
		t.Fatalf("Names: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}
