package edit

import (
	"image"
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// twoByThree returns
//
//	1 2
//	3 4
//	5 6
func twoByThree(t *testing.T) *raster.Buffer {
	t.Helper()
	b, err := raster.FromPix(2, 3, []uint8{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}
	return b
}

func assertPix(t *testing.T, b *raster.Buffer, w, h int, want []uint8) {
	t.Helper()
	if b.Width() != w || b.Height() != h {
		t.Fatalf("dimensions: got %dx%d, want %dx%d", b.Width(), b.Height(), w, h)
	}
	got := b.Pix()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixels: got %v, want %v", got, want)
		}
	}
}

func TestRotate(t *testing.T) {
	img := twoByThree(t)

	tests := []struct {
		name string
		r    Rotation
		w, h int
		want []uint8
	}{
		{"clockwise", RotateCW, 3, 2, []uint8{5, 3, 1, 6, 4, 2}},
		{"counter-clockwise", RotateCCW, 3, 2, []uint8{2, 4, 6, 1, 3, 5}},
		{"half turn", Rotate180, 2, 3, []uint8{6, 5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPix(t, Rotate(img, tt.r), tt.w, tt.h, tt.want)
		})
	}
}

func TestFlip(t *testing.T) {
	img := twoByThree(t)
	assertPix(t, Flip(img, Horizontal), 2, 3, []uint8{2, 1, 4, 3, 6, 5})
	assertPix(t, Flip(img, Vertical), 2, 3, []uint8{5, 6, 3, 4, 1, 2})
}

func TestCrop(t *testing.T) {
	img := twoByThree(t)

	out, ok := Crop(img, image.Rect(0, 1, 2, 3))
	if !ok {
		t.Fatal("Crop failed for a valid region")
	}
	assertPix(t, out, 2, 2, []uint8{3, 4, 5, 6})

	if _, ok := Crop(img, image.Rect(1, 1, 1, 2)); ok {
		t.Error("Crop should reject an empty region")
	}
	if _, ok := Crop(img, image.Rect(0, 0, 3, 3)); ok {
		t.Error("Crop should reject a region outside the image")
	}
}

func TestResize(t *testing.T) {
	img := raster.New(10, 10, 200)

	out, err := Resize(img, 5, 20)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if out.Width() != 5 || out.Height() != 20 {
		t.Errorf("dimensions: got %dx%d, want 5x20", out.Width(), out.Height())
	}
	if v, _ := out.Intensity(2, 10); v != 200 {
		t.Errorf("uniform image changed value: got %d, want 200", v)
	}

	out, err = Resize(img, 4, 0)
	if err != nil {
		t.Fatalf("Resize keeping aspect failed: %v", err)
	}
	if out.Width() != 4 || out.Height() != 4 {
		t.Errorf("dimensions: got %dx%d, want 4x4", out.Width(), out.Height())
	}

	bad := [][2]int{{0, 0}, {-1, 5}, {MaxDimension + 1, 5}}
	for _, wh := range bad {
		if _, err := Resize(img, wh[0], wh[1]); err == nil {
			t.Errorf("Resize(%d,%d) should fail", wh[0], wh[1])
		}
	}
}

func TestParseRotationAndAxis(t *testing.T) {
	if r, err := ParseRotation("CW"); err != nil || r != RotateCW {
		t.Errorf("ParseRotation(CW): got %v, %v", r, err)
	}
	if r, err := ParseRotation("270"); err != nil || r != RotateCCW {
		t.Errorf("ParseRotation(270): got %v, %v", r, err)
	}
	if _, err := ParseRotation("45"); err == nil {
		t.Error("ParseRotation should reject 45")
	}
	if a, err := ParseAxis("v"); err != nil || a != Vertical {
		t.Errorf("ParseAxis(v): got %v, %v", a, err)
	}
	if _, err := ParseAxis("diagonal"); err == nil {
		t.Error("ParseAxis should reject diagonal")
	}
}
