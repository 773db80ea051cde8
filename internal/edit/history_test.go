package edit

import (
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

func TestHistory_PushPop(t *testing.T) {
	h := NewHistory(3)
	a, b := raster.New(1, 1, 1), raster.New(1, 1, 2)
	h.Push(a)
	h.Push(b)

	if h.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", h.Len())
	}
	got, ok := h.Pop()
	if !ok || got != b {
		t.Error("Pop should return the most recent entry")
	}
	got, ok = h.Pop()
	if !ok || got != a {
		t.Error("Pop should return entries in LIFO order")
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop on empty history should fail")
	}
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(3)
	bufs := make([]*raster.Buffer, 5)
	for i := range bufs {
		bufs[i] = raster.New(1, 1, uint8(i))
		h.Push(bufs[i])
		if h.Len() > h.Cap() {
			t.Fatalf("Len %d exceeds capacity %d", h.Len(), h.Cap())
		}
	}

	for want := 4; want >= 2; want-- {
		got, ok := h.Pop()
		if !ok || got != bufs[want] {
			t.Fatalf("Pop: expected buffer %d", want)
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len: got %d, want 0", h.Len())
	}
}

func TestHistory_DefaultCapacity(t *testing.T) {
	if got := NewHistory(0).Cap(); got != DefaultHistoryCapacity {
		t.Errorf("Cap: got %d, want %d", got, DefaultHistoryCapacity)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(4)
	h.Push(raster.New(1, 1, 0))
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", h.Len())
	}
}
