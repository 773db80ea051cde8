package edit

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// MaxDimension bounds the width and height accepted by Resize.
const MaxDimension = 1 << 14

// Rotation is a quarter-turn rotation.
type Rotation int

const (
	// RotateCW turns the image 90 degrees clockwise.
	RotateCW Rotation = iota
	// RotateCCW turns the image 90 degrees counter-clockwise.
	RotateCCW
	// Rotate180 turns the image half a turn.
	Rotate180
)

// ParseRotation accepts "cw", "ccw" and "180" (also "90" and "270" as
// clockwise and counter-clockwise).
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "90", "right":
		return RotateCW, nil
	case "ccw", "270", "left":
		return RotateCCW, nil
	case "180":
		return Rotate180, nil
	default:
		return 0, fmt.Errorf("unknown rotation %q (want cw, ccw or 180)", s)
	}
}

// Axis is the mirror axis of a flip.
type Axis int

const (
	// Horizontal mirrors left to right.
	Horizontal Axis = iota
	// Vertical mirrors top to bottom.
	Vertical
)

// ParseAxis accepts "horizontal"/"h" and "vertical"/"v".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown flip axis %q (want horizontal or vertical)", s)
	}
}

// Rotate returns img turned by a quarter-turn multiple.
func Rotate(img *raster.Buffer, r Rotation) *raster.Buffer {
	src := img.Gray()
	switch r {
	case RotateCW:
		return raster.FromImage(imaging.Rotate270(src))
	case RotateCCW:
		return raster.FromImage(imaging.Rotate90(src))
	default:
		return raster.FromImage(imaging.Rotate180(src))
	}
}

// Flip returns img mirrored along axis.
func Flip(img *raster.Buffer, axis Axis) *raster.Buffer {
	if axis == Vertical {
		return raster.FromImage(imaging.FlipV(img.Gray()))
	}
	return raster.FromImage(imaging.FlipH(img.Gray()))
}

// Crop extracts r. It returns false for an empty region or one reaching
// outside the image.
func Crop(img *raster.Buffer, r image.Rectangle) (*raster.Buffer, bool) {
	if r.Empty() || !r.In(img.Bounds()) {
		return nil, false
	}
	return raster.FromImage(imaging.Crop(img.Gray(), r)), true
}

// Resize scales img to width×height with a Lanczos filter. A zero width or
// height preserves the aspect ratio from the other dimension.
func Resize(img *raster.Buffer, width, height int) (*raster.Buffer, error) {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, fmt.Errorf("invalid resize target %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("resize target %dx%d exceeds %d pixels per side", width, height, MaxDimension)
	}
	out := raster.FromImage(imaging.Resize(img.Gray(), width, height, imaging.Lanczos))
	if out.Empty() {
		return nil, fmt.Errorf("resize to %dx%d produced an empty image", width, height)
	}
	return out, nil
}
