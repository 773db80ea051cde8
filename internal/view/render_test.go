package view

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func createGrayImage(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestRender_Fit(t *testing.T) {
	img := createGrayImage(100, 50, 200)
	tr := NewTransform()
	if err := tr.ZoomFit(SizeOf(img), Size{Width: 50, Height: 50}); err != nil {
		t.Fatalf("ZoomFit failed: %v", err)
	}

	out, err := Render(img, tr, Size{Width: 50, Height: 50})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 25 {
		t.Errorf("dimensions: got %dx%d, want 50x25", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := out.GrayAt(10, 10).Y; got != 200 {
		t.Errorf("pixel: got %d, want 200", got)
	}
}

func TestRender_ZoomInClipsToViewport(t *testing.T) {
	img := createGrayImage(10, 10, 0)
	img.SetGray(0, 0, color.Gray{Y: 255})

	tr := NewTransform()
	for i := 0; i < 4; i++ {
		tr.ZoomIn() // ~2.07
	}

	out, err := Render(img, tr, Size{Width: 8, Height: 6})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 6 {
		t.Errorf("dimensions: got %dx%d, want 8x6", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := out.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("top-left: got %d, want 255", got)
	}
	if got := out.GrayAt(7, 5).Y; got != 0 {
		t.Errorf("bottom-right: got %d, want 0", got)
	}
}

func TestRender_EmptyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 0, 0))
	if _, err := Render(img, NewTransform(), Size{Width: 10, Height: 10}); err == nil {
		t.Error("Render should fail for an empty image")
	}
}

func TestRenderPNG(t *testing.T) {
	img := createGrayImage(20, 20, 128)
	tr := NewTransform()

	result, err := RenderPNG(img, tr, Size{})
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.Width != 20 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 20x20", result.Width, result.Height)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	pngImg, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	r, _, _, _ := pngImg.At(5, 5).RGBA()
	if uint8(r>>8) != 128 {
		t.Errorf("pixel: got %d, want 128", uint8(r>>8))
	}
}
