package edit

import (
	"image"
	"testing"
)

func TestSelector_Drag(t *testing.T) {
	var s Selector
	bounds := image.Rect(0, 0, 100, 80)

	s.PointerDown(image.Pt(30, 20), bounds)
	if s.State() != Selecting {
		t.Fatalf("state: got %v, want selecting", s.State())
	}

	if !s.PointerMove(image.Pt(10, 50)) {
		t.Error("PointerMove should update during a drag")
	}
	if got := s.Selection(); got != image.Rect(10, 20, 30, 50) {
		t.Errorf("live selection: got %v, want (10,20)-(30,50)", got)
	}

	if !s.PointerUp(image.Pt(60, 70)) {
		t.Error("PointerUp should finish a drag")
	}
	if s.State() != Idle {
		t.Errorf("state: got %v, want idle", s.State())
	}
	if got := s.Selection(); got != image.Rect(30, 20, 60, 70) {
		t.Errorf("final selection: got %v, want (30,20)-(60,70)", got)
	}
}

func TestSelector_ClampsToBounds(t *testing.T) {
	var s Selector
	bounds := image.Rect(0, 0, 50, 50)

	s.PointerDown(image.Pt(40, 40), bounds)
	// Dragging past the window edge keeps updating and clamps.
	s.PointerMove(image.Pt(500, -20))
	if got := s.Selection(); got != image.Rect(40, 0, 50, 40) {
		t.Errorf("selection: got %v, want (40,0)-(50,40)", got)
	}
}

func TestSelector_NoMinimumSize(t *testing.T) {
	var s Selector
	s.PointerDown(image.Pt(5, 5), image.Rect(0, 0, 10, 10))
	s.PointerUp(image.Pt(5, 5))
	if !s.Selection().Empty() {
		t.Errorf("click without drag: got %v, want empty", s.Selection())
	}
	if s.State() != Idle {
		t.Error("PointerUp should return to idle")
	}
}

func TestSelector_IgnoresEventsWhenIdle(t *testing.T) {
	var s Selector
	if s.PointerMove(image.Pt(1, 1)) {
		t.Error("PointerMove should be ignored when idle")
	}
	if s.PointerUp(image.Pt(1, 1)) {
		t.Error("PointerUp should be ignored when idle")
	}
	if !s.Selection().Empty() {
		t.Error("ignored events changed the selection")
	}
}

func TestSelector_SetAndClear(t *testing.T) {
	var s Selector
	s.Set(image.Rect(20, 20, -5, 5), image.Rect(0, 0, 10, 10))
	if got := s.Selection(); got != image.Rect(0, 5, 10, 10) {
		t.Errorf("Set: got %v, want (0,5)-(10,10)", got)
	}
	s.Clear()
	if !s.Selection().Empty() || s.State() != Idle {
		t.Error("Clear did not reset the selector")
	}
}
