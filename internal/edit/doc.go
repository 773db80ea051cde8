// Package edit implements the editing model of an open image.
//
// A Session owns the current image and is the only place it can change:
// rotate, flip, crop, resize, paste, cut and plugin filters all build a new
// buffer and pass it to Session.SetImage, which pushes the previous image
// onto a bounded History (16 entries by default) so it can be undone.
// There is no redo.
//
// Selections are made with a two-state machine (Idle, Selecting) driven by
// pointer events in viewport coordinates, mapped to image space through the
// session's view transform at the moment each event arrives.
//
// The clipboard holds one copied region. Paste combines it with the image
// using one of four blend operators: AND, OR, XOR and BLEND (mean, rounded
// down). Pixels falling outside the image are skipped individually.
//
// # Soft Conditions
//
// Copying or cropping an empty selection, pasting an empty clipboard and
// undoing with no history are not errors. The operations return false and
// leave all state as it was.
package edit
