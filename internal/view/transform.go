package view

import (
	"errors"
	"image"
	"math"
)

const (
	// ZoomStep is the factor applied by one zoom in or zoom out.
	ZoomStep = 1.2
	// MinZoom is the hard floor of the zoom factor outside fit mode.
	MinZoom = 0.01
	// MaxZoom is the ceiling of the zoom factor outside fit mode.
	MaxZoom = 1000
)

// ErrEmptyImage is returned by ZoomFit for an image without pixels.
var ErrEmptyImage = errors.New("cannot fit an empty image")

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// SizeOf returns the size of an image's bounds.
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Point is a position in viewport or image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pixel returns the integer pixel containing p.
func (p Point) Pixel() image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// Transform maps between image space and viewport space.
//
// In fit mode the zoom factor is derived from the image and viewport sizes
// and cannot be set directly; ZoomIn and ZoomOut leave fit mode. The
// viewport is not owned by the transform: callers pass it on every query
// so that a resized viewport is picked up before any mapping is done.
//
// Transform is not safe for concurrent use.
type Transform struct {
	zoom float64
	fit  bool
}

// NewTransform returns a transform at 1:1 zoom, outside fit mode.
func NewTransform() *Transform {
	return &Transform{zoom: 1.0}
}

// Zoom returns the current zoom factor.
func (t *Transform) Zoom() float64 { return t.zoom }

// FitMode reports whether the zoom factor is derived from the viewport.
func (t *Transform) FitMode() bool { return t.fit }

// ZoomIn enlarges the view by ZoomStep, never above MaxZoom, and leaves fit
// mode.
func (t *Transform) ZoomIn() {
	t.zoom *= ZoomStep
	if t.zoom > MaxZoom {
		t.zoom = MaxZoom
	}
	t.fit = false
}

// ZoomOut shrinks the view by ZoomStep, never below MinZoom, and leaves fit mode.
func (t *Transform) ZoomOut() {
	t.zoom /= ZoomStep
	if t.zoom < MinZoom {
		t.zoom = MinZoom
	}
	t.fit = false
}

// Wheel applies one mouse-wheel notch: a positive delta zooms in, a
// negative delta zooms out. Only the sign of delta is used.
func (t *Transform) Wheel(delta int) {
	switch {
	case delta > 0:
		t.ZoomIn()
	case delta < 0:
		t.ZoomOut()
	}
}

// ZoomFit enters fit mode and derives the zoom factor so the image fills
// the viewport on at least one axis.
func (t *Transform) ZoomFit(img, viewport Size) error {
	if img.Empty() {
		return ErrEmptyImage
	}
	t.fit = true
	t.zoom = fitZoom(img, viewport)
	return nil
}

// Sync recomputes the derived zoom factor for the current viewport when in
// fit mode. It is a no-op outside fit mode or for an empty image.
func (t *Transform) Sync(img, viewport Size) {
	if t.fit && !img.Empty() {
		t.zoom = fitZoom(img, viewport)
	}
}

func fitZoom(img, viewport Size) float64 {
	return math.Min(
		float64(viewport.Width)/float64(img.Width),
		float64(viewport.Height)/float64(img.Height),
	)
}

// ScaledSize returns the displayed size of an image at the current zoom.
func (t *Transform) ScaledSize(img Size) Size {
	return Size{
		Width:  int(math.Round(float64(img.Width) * t.zoom)),
		Height: int(math.Round(float64(img.Height) * t.zoom)),
	}
}

// ToImage maps a viewport point into image space.
//
// The zoom factor is first re-derived for viewport when in fit mode, so the
// mapping always matches the image as it would be displayed right now.
func (t *Transform) ToImage(p Point, img, viewport Size) Point {
	t.Sync(img, viewport)
	return Point{X: p.X / t.zoom, Y: p.Y / t.zoom}
}

// ToViewport maps an image-space point into viewport space.
func (t *Transform) ToViewport(p Point, img, viewport Size) Point {
	t.Sync(img, viewport)
	return Point{X: p.X * t.zoom, Y: p.Y * t.zoom}
}

// State is a snapshot of the transform for reporting.
type State struct {
	Zoom       float64 `json:"zoom"`
	FitMode    bool    `json:"fit_mode"`
	ScaledSize Size    `json:"scaled_size"`
}

// Snapshot reports the transform state for an image.
func (t *Transform) Snapshot(img Size) State {
	return State{
		Zoom:       t.zoom,
		FitMode:    t.fit,
		ScaledSize: t.ScaledSize(img),
	}
}
