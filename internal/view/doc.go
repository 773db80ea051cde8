// Package view maps between image space and viewport space.
//
// A Transform holds the zoom factor and fit mode of one open image. The
// viewport size is supplied on each query rather than stored, and every
// mapping re-derives the fit-mode zoom for the viewport it is given, so a
// selection drawn on screen always maps to the pixels currently displayed.
//
// Render produces the displayed portion of an image for a presentation
// layer; it never changes the image itself.
package view
