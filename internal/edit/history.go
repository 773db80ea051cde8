package edit

import "github.com/ironsheep/raster-tools-mcp/internal/raster"

// DefaultHistoryCapacity is the number of past images kept for undo.
const DefaultHistoryCapacity = 16

// History is a bounded stack of past images. When full, pushing evicts the
// oldest entry. There is no redo: a popped image's successor is gone.
type History struct {
	capacity int
	items    []*raster.Buffer
}

// NewHistory returns an empty history holding at most capacity images.
// A capacity below 1 selects DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity, items: make([]*raster.Buffer, 0, capacity)}
}

// Push records b as the most recent past state.
func (h *History) Push(b *raster.Buffer) {
	if len(h.items) == h.capacity {
		copy(h.items, h.items[1:])
		h.items[len(h.items)-1] = b
		return
	}
	h.items = append(h.items, b)
}

// Pop removes and returns the most recent past state.
func (h *History) Pop() (*raster.Buffer, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	last := len(h.items) - 1
	b := h.items[last]
	h.items[last] = nil
	h.items = h.items[:last]
	return b, true
}

// Len returns the number of stored states.
func (h *History) Len() int { return len(h.items) }

// Cap returns the capacity.
func (h *History) Cap() int { return h.capacity }

// Clear drops every stored state.
func (h *History) Clear() {
	for i := range h.items {
		h.items[i] = nil
	}
	h.items = h.items[:0]
}
