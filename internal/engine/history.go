package engine

import "KolamStudio/internal/shape"

// DefaultHistoryCapacity bounds the undo stack when Options leaves it unset.
const DefaultHistoryCapacity = 100

// history is a LIFO of committed-list snapshots. When full, the oldest
// snapshot is dropped.
type history struct {
	snapshots [][]shape.Shape
	capacity  int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &history{capacity: capacity}
}

func (h *history) push(s []shape.Shape) {
	if len(h.snapshots) == h.capacity {
		copy(h.snapshots, h.snapshots[1:])
		h.snapshots[len(h.snapshots)-1] = nil
		h.snapshots = h.snapshots[:len(h.snapshots)-1]
	}
	h.snapshots = append(h.snapshots, s)
}

func (h *history) pop() ([]shape.Shape, bool) {
	n := len(h.snapshots)
	if n == 0 {
		return nil, false
	}
	s := h.snapshots[n-1]
	h.snapshots[n-1] = nil
	h.snapshots = h.snapshots[:n-1]
	return s, true
}

func (h *history) len() int {
	return len(h.snapshots)
}

func (h *history) clear() {
	h.snapshots = nil
}

// snapshot deep-copies the committed list so later in-place edits (move,
// curve handles) do not leak into history.
func snapshot(shapes []shape.Shape) []shape.Shape {
	out := make([]shape.Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
