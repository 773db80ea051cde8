package edit

import "image"

// SelectState is the state of the selection state machine.
type SelectState int

const (
	// Idle means no drag is in progress.
	Idle SelectState = iota
	// Selecting means a drag started and has not been released yet.
	Selecting
)

func (s SelectState) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// Selector tracks a rubber-band selection in image space.
//
// A drag begins with PointerDown, updates with PointerMove and ends with
// PointerUp. The selection is the box spanning the start point and the
// latest pointer position, clamped to the image bounds, with no minimum
// size. Leaving the window does not end a drag: only PointerUp does.
type Selector struct {
	state  SelectState
	start  image.Point
	rect   image.Rectangle
	bounds image.Rectangle
}

// State returns the current state.
func (s *Selector) State() SelectState { return s.state }

// Selection returns the current selection, which may be empty.
func (s *Selector) Selection() image.Rectangle { return s.rect }

// PointerDown starts a drag at p within an image of the given bounds.
// A press during a drag restarts it.
func (s *Selector) PointerDown(p image.Point, bounds image.Rectangle) {
	s.state = Selecting
	s.start = p
	s.bounds = bounds
	s.rect = s.span(p)
}

// PointerMove updates the live selection. It returns false when no drag is
// in progress.
func (s *Selector) PointerMove(p image.Point) bool {
	if s.state != Selecting {
		return false
	}
	s.rect = s.span(p)
	return true
}

// PointerUp finalizes the selection and returns to Idle. It returns false
// when no drag is in progress.
func (s *Selector) PointerUp(p image.Point) bool {
	if s.state != Selecting {
		return false
	}
	s.rect = s.span(p)
	s.state = Idle
	return true
}

// Set replaces the selection directly, clamped to bounds, and ends any drag.
func (s *Selector) Set(r image.Rectangle, bounds image.Rectangle) {
	s.state = Idle
	s.bounds = bounds
	s.rect = r.Canon().Intersect(bounds)
}

// Clear drops the selection and ends any drag.
func (s *Selector) Clear() {
	*s = Selector{}
}

func (s *Selector) span(p image.Point) image.Rectangle {
	return image.Rectangle{Min: s.start, Max: p}.Canon().Intersect(s.bounds)
}
