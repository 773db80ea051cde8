package view

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// RenderResult contains the displayed portion of the image.
type RenderResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Zoom        float64 `json:"zoom"`
	FitMode     bool    `json:"fit_mode"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// Render scales img by the transform's zoom factor and clips the result to
// the viewport, anchored at the image origin. An empty viewport disables
// clipping.
//
// Zooming in past 1:1 uses nearest-neighbor sampling so individual pixels
// stay distinguishable; zooming out uses bilinear filtering.
func Render(img image.Image, t *Transform, viewport Size) (*image.Gray, error) {
	imgSize := SizeOf(img)
	if imgSize.Empty() {
		return nil, ErrEmptyImage
	}
	t.Sync(imgSize, viewport)

	out := t.ScaledSize(imgSize)
	if !viewport.Empty() {
		out.Width = min(out.Width, viewport.Width)
		out.Height = min(out.Height, viewport.Height)
	}
	if out.Empty() {
		return nil, fmt.Errorf("zoom %.4f renders %dx%d image to nothing", t.Zoom(), imgSize.Width, imgSize.Height)
	}

	src := image.Rect(0, 0,
		min(imgSize.Width, int(math.Ceil(float64(out.Width)/t.Zoom()))),
		min(imgSize.Height, int(math.Ceil(float64(out.Height)/t.Zoom()))),
	).Add(img.Bounds().Min)

	dst := image.NewGray(image.Rect(0, 0, out.Width, out.Height))
	var scaler draw.Scaler = draw.ApproxBiLinear
	if t.Zoom() >= 1 {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst, nil
}

// RenderPNG renders img and encodes the result as a base64 PNG.
func RenderPNG(img image.Image, t *Transform, viewport Size) (*RenderResult, error) {
	dst, err := Render(img, t, viewport)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode view: %w", err)
	}

	return &RenderResult{
		Width:       dst.Bounds().Dx(),
		Height:      dst.Bounds().Dy(),
		Zoom:        t.Zoom(),
		FitMode:     t.FitMode(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
