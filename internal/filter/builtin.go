package filter

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Builtins returns the filters shipped with the server.
//
//   - invert: 255 - v
//   - blur: Gaussian blur, radius 2
//   - sharpen: 3x3 sharpen kernel
//   - median: median filter, radius 1
//   - brighten / darken: ±20% brightness
//   - contrast: +30% contrast
//   - threshold: binarize at 128
//   - edges: Canny-style edge map (see Edges)
func Builtins() map[string]Func {
	return map[string]Func{
		"invert": func(src image.Image) image.Image {
			return effect.Invert(src)
		},
		"blur": func(src image.Image) image.Image {
			return blur.Gaussian(src, 2.0)
		},
		"sharpen": func(src image.Image) image.Image {
			return effect.Sharpen(src)
		},
		"median": func(src image.Image) image.Image {
			return effect.Median(src, 1.0)
		},
		"brighten": func(src image.Image) image.Image {
			return adjust.Brightness(src, 0.2)
		},
		"darken": func(src image.Image) image.Image {
			return adjust.Brightness(src, -0.2)
		},
		"contrast": func(src image.Image) image.Image {
			return adjust.Contrast(src, 0.3)
		},
		"threshold": func(src image.Image) image.Image {
			return segment.Threshold(src, 128)
		},
		"edges": func(src image.Image) image.Image {
			return Edges(src, DefaultEdgeLow, DefaultEdgeHigh)
		},
	}
}

// NewBuiltinRegistry returns a registry preloaded with Builtins.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for name, fn := range Builtins() {
		// Names in the builtin map are unique and non-empty.
		_ = r.Register(name, fn)
	}
	return r
}
