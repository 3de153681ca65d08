package engine

import (
	"KolamStudio/internal/geom"
	"KolamStudio/internal/shape"
)

// Begin makes s the in-progress shape. Anything already in progress is
// dropped without touching history.
func (c *Canvas) Begin(s shape.Shape) {
	if s == nil {
		return
	}
	c.mu.Lock()
	c.resetGestureLocked()
	c.inProgress = s
	c.mode = ModeDrawing
	c.bump()
	c.mu.Unlock()
	c.notify()
}

// Update applies fn to the in-progress shape.
func (c *Canvas) Update(fn func(shape.Shape)) {
	c.mu.Lock()
	if c.inProgress == nil {
		c.mu.Unlock()
		return
	}
	fn(c.inProgress)
	c.bump()
	c.mu.Unlock()
	c.notify()
}

// Commit moves the in-progress shape into the committed list through
// AddShape. A committed curve enters edit mode. It reports whether a shape
// was committed.
func (c *Canvas) Commit() bool {
	c.mu.Lock()
	s := c.inProgress
	if c.mode != ModeDrawing || s == nil {
		c.mu.Unlock()
		return false
	}
	c.inProgress = nil
	c.mode = ModeIdle
	c.addShapeLocked(s)
	if s.Kind() == shape.KindCurve {
		c.editing = len(c.shapes) - 1
	}
	c.mu.Unlock()
	c.notify()
	return true
}

// Discard drops the in-progress shape without committing it.
func (c *Canvas) Discard() {
	c.mu.Lock()
	if c.inProgress == nil {
		c.mu.Unlock()
		return
	}
	c.inProgress = nil
	if c.mode == ModeDrawing {
		c.mode = ModeIdle
	}
	c.bump()
	c.mu.Unlock()
	c.notify()
}

// topHitLocked returns the index of the topmost committed shape hit at p
// and the hit detail, or -1.
func (c *Canvas) topHitLocked(p geom.Point) (int, shape.Hit) {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		if h := c.shapes[i].HitTest(p); h.OK() {
			return i, h
		}
	}
	return -1, shape.Hit{}
}

// BeginMove selects the topmost shape under p for dragging. Curves enter
// curve editing: a handle drags that point alone, the body drags all three.
// It reports false when nothing is hit.
func (c *Canvas) BeginMove(p geom.Point) bool {
	c.mu.Lock()
	idx, hit := c.topHitLocked(p)
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.resetGestureLocked()
	c.selected = idx
	c.last = p
	c.pending = snapshot(c.shapes)
	if c.shapes[idx].Kind() == shape.KindCurve {
		c.mode = ModeEditingCurve
		c.dragPart = hit.Part
		c.editing = idx
	} else {
		c.mode = ModeMoving
		c.dragPart = shape.PartBody
	}
	c.log.Debug("shape selected", "kind", c.shapes[idx].Kind(), "id", c.shapes[idx].Identity(), "part", c.dragPart, "mode", c.mode)
	c.bump()
	c.mu.Unlock()
	c.notify()
	return true
}

// BeginCurveEdit starts dragging a handle of the curve in edit mode when p
// is within the handle tolerance of one. It reports false otherwise.
func (c *Canvas) BeginCurveEdit(p geom.Point) bool {
	c.mu.Lock()
	if c.editing < 0 || c.editing >= len(c.shapes) {
		c.mu.Unlock()
		return false
	}
	curve, ok := c.shapes[c.editing].(*shape.Curve)
	if !ok {
		c.mu.Unlock()
		return false
	}
	part := curve.HitHandle(p)
	if part == shape.PartNone {
		c.mu.Unlock()
		return false
	}
	editing := c.editing
	c.resetGestureLocked()
	c.mode = ModeEditingCurve
	c.selected = editing
	c.dragPart = part
	c.last = p
	c.pending = snapshot(c.shapes)
	c.bump()
	c.mu.Unlock()
	c.notify()
	return true
}

// Drag moves the selected shape, or the grabbed curve handle, by the
// pointer delta since the previous call. The first non-zero delta of a
// gesture pushes the pre-drag snapshot onto the undo stack.
func (c *Canvas) Drag(p geom.Point) {
	c.mu.Lock()
	if (c.mode != ModeMoving && c.mode != ModeEditingCurve) || c.selected < 0 || c.selected >= len(c.shapes) {
		c.mu.Unlock()
		return
	}
	d := p.Sub(c.last)
	if d.X == 0 && d.Y == 0 {
		c.mu.Unlock()
		return
	}
	if c.pending != nil {
		c.history.push(c.pending)
		c.pending = nil
	}
	s := c.shapes[c.selected]
	if curve, ok := s.(*shape.Curve); ok && c.mode == ModeEditingCurve {
		curve.MovePart(c.dragPart, d.X, d.Y)
	} else {
		s.Translate(d.X, d.Y)
	}
	c.last = p
	c.bump()
	c.mu.Unlock()
	c.notify()
}

// EndDrag releases the selection. Curve edit mode stays on.
func (c *Canvas) EndDrag() {
	c.mu.Lock()
	if c.mode != ModeMoving && c.mode != ModeEditingCurve {
		c.mu.Unlock()
		return
	}
	c.resetGestureLocked()
	c.bump()
	c.mu.Unlock()
	c.notify()
}

// ExitCurveEdit leaves curve edit mode.
func (c *Canvas) ExitCurveEdit() {
	c.mu.Lock()
	if c.editing < 0 {
		c.mu.Unlock()
		return
	}
	c.editing = -1
	c.bump()
	c.mu.Unlock()
	c.notify()
}

// DeleteAt removes the topmost shape hit at p. The removal is undoable.
// It reports false when nothing is hit.
func (c *Canvas) DeleteAt(p geom.Point) bool {
	c.mu.Lock()
	idx, _ := c.topHitLocked(p)
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	removed := c.shapes[idx]
	c.history.push(snapshot(c.shapes))
	c.shapes = append(c.shapes[:idx], c.shapes[idx+1:]...)
	switch {
	case c.editing == idx:
		c.editing = -1
	case c.editing > idx:
		c.editing--
	}
	c.resetGestureLocked()
	c.bump()
	c.log.Debug("shape deleted", "kind", removed.Kind(), "id", removed.Identity(), "count", len(c.shapes))
	c.mu.Unlock()
	c.notify()
	return true
}
