// Package raster holds the canonical in-memory image and its decoder.
//
// A Buffer is a grayscale grid of Width×Height intensities in the range
// 0-255. Buffers are immutable once built; editing code derives new buffers
// instead of changing existing ones.
//
// # Coordinate System
//
// All pixel coordinates are 0-based image-space coordinates:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive and Max is exclusive
//
// # Binary Format
//
// The decoder reads a legacy fixed-layout format: an opaque header of
// HeaderOffset bytes followed by Width×Height pixel groups of PixelStride
// bytes in B, G, R, A order. Each group is reduced to one intensity with
// round(0.299·R + 0.587·G + 0.114·B).
//
// # Error Handling
//
// Decode failures return a *DecodeError and never a partial Buffer:
//   - TooSmall: the input is shorter than the layout requires
//   - Truncated: the stream ended while pixels were being read
//   - InvalidLayout: the layout parameters are unusable
//
// # Thread Safety
//
// Buffers are safe to read concurrently. The Cache type is safe for
// concurrent use.
package raster
