// Package engine holds the state of the drawing canvas: the committed
// shapes, the undo history, the in-progress shape and the selection.
package engine

import (
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"

	"KolamStudio/internal/geom"
	"KolamStudio/internal/shape"

	"github.com/gogpu/gg"
)

// Mode is the gesture state of the canvas.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeMoving
	ModeEditingCurve
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeMoving:
		return "moving"
	case ModeEditingCurve:
		return "editing-curve"
	}
	return "idle"
}

// Options configures a Canvas.
type Options struct {
	Width, Height   int
	Background      color.Color
	HistoryCapacity int
	Logger          *slog.Logger
}

// Canvas is the drawing engine. All methods are safe to call from the UI
// event loop and the raster callback concurrently.
type Canvas struct {
	mu sync.RWMutex

	width, height int
	background    color.NRGBA

	shapes     []shape.Shape
	history    *history
	inProgress shape.Shape
	mode       Mode

	selected int
	editing  int
	dragPart shape.Part
	last     geom.Point
	pending  []shape.Shape

	revision atomic.Uint64
	dc       *gg.Context
	frame    image.Image
	frameRev uint64

	log *slog.Logger

	// OnChange runs after every state change, outside the lock.
	OnChange func()
}

// New creates an empty canvas.
func New(opts Options) *Canvas {
	bg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if opts.Background != nil {
		bg = opaqueOverWhite(opts.Background)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Canvas{
		background: bg,
		shapes:     make([]shape.Shape, 0),
		history:    newHistory(opts.HistoryCapacity),
		selected:   -1,
		editing:    -1,
		log:        logger,
	}
	c.width, c.height = opts.Width, opts.Height
	if c.width > 0 && c.height > 0 {
		c.dc = gg.NewContext(c.width, c.height)
	}
	return c
}

func (c *Canvas) bump() {
	c.revision.Add(1)
}

func (c *Canvas) notify() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// Revision increases on every visible state change.
func (c *Canvas) Revision() uint64 {
	return c.revision.Load()
}

// Size returns the backing resolution in pixels.
func (c *Canvas) Size() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// Background returns the opaque colour the canvas is cleared with.
func (c *Canvas) Background() color.NRGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.background
}

// opaqueOverWhite composites bg onto white. Eraser strokes paint with the
// result, so they cover what lies beneath even for a translucent background.
func opaqueOverWhite(bg color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(bg).(color.NRGBA)
	over := func(v uint8) uint8 {
		return uint8((uint32(v)*uint32(n.A) + 255*(255-uint32(n.A)) + 127) / 255)
	}
	return color.NRGBA{R: over(n.R), G: over(n.G), B: over(n.B), A: 0xff}
}

// Len returns the number of committed shapes.
func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shapes)
}

// CanUndo reports whether Undo would change anything.
func (c *Canvas) CanUndo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.len() > 0
}

// HistoryLen returns the number of undo snapshots held.
func (c *Canvas) HistoryLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.len()
}

// Shapes returns copies of the committed shapes, bottom first.
func (c *Canvas) Shapes() []shape.Shape {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshot(c.shapes)
}

// Shape returns a copy of the committed shape at index i, or nil.
func (c *Canvas) Shape(i int) shape.Shape {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.shapes) {
		return nil
	}
	return c.shapes[i].Clone()
}

// InProgress returns a copy of the shape being drawn, or nil.
func (c *Canvas) InProgress() shape.Shape {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.inProgress == nil {
		return nil
	}
	return c.inProgress.Clone()
}

// Mode returns the current gesture state.
func (c *Canvas) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Selected returns the index of the shape being dragged, or -1.
func (c *Canvas) Selected() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// EditingCurve returns the index of the curve in edit mode, or -1.
func (c *Canvas) EditingCurve() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editing
}

// ActiveID returns the identity of the shape being dragged, or else of the
// curve in edit mode. It is empty when neither exists.
func (c *Canvas) ActiveID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, i := range []int{c.selected, c.editing} {
		if i >= 0 && i < len(c.shapes) {
			return c.shapes[i].Identity()
		}
	}
	return ""
}

// AddShape snapshots the committed list onto the undo stack, then appends s.
func (c *Canvas) AddShape(s shape.Shape) {
	if s == nil {
		return
	}
	c.mu.Lock()
	c.addShapeLocked(s)
	c.mu.Unlock()
	c.notify()
}

func (c *Canvas) addShapeLocked(s shape.Shape) {
	c.history.push(snapshot(c.shapes))
	c.shapes = append(c.shapes, s)
	c.bump()
	c.log.Debug("shape committed", "kind", s.Kind(), "id", s.Identity(), "count", len(c.shapes))
}

// Undo restores the most recent snapshot and drops any in-progress shape
// and selection. It reports false and changes nothing when history is empty.
func (c *Canvas) Undo() bool {
	c.mu.Lock()
	prev, ok := c.history.pop()
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.shapes = prev
	c.resetGestureLocked()
	c.editing = -1
	c.bump()
	c.log.Debug("undo", "count", len(c.shapes), "history", c.history.len())
	c.mu.Unlock()
	c.notify()
	return true
}

// ClearAll empties the committed list, the in-progress shape, the undo
// history and the selection in one step.
func (c *Canvas) ClearAll() {
	c.mu.Lock()
	c.shapes = make([]shape.Shape, 0)
	c.history.clear()
	c.resetGestureLocked()
	c.editing = -1
	c.bump()
	c.log.Debug("canvas cleared")
	c.mu.Unlock()
	c.notify()
}

func (c *Canvas) resetGestureLocked() {
	c.inProgress = nil
	c.mode = ModeIdle
	c.selected = -1
	c.dragPart = shape.PartNone
	c.pending = nil
}
