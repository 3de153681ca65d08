package tool

import (
	"image/color"
	"log/slog"
	"math"

	"KolamStudio/internal/engine"
	"KolamStudio/internal/geom"
	"KolamStudio/internal/shape"
)

// Controller dispatches pointer events to the canvas according to the
// active tool. It is driven from the UI event loop and is not safe for
// concurrent use.
type Controller struct {
	canvas   *engine.Canvas
	tool     Kind
	settings Settings

	anchor geom.Point
	down   bool

	log *slog.Logger

	// OnToolChange runs after the active tool changed.
	OnToolChange func(Kind)
}

// NewController binds a controller to c with the given brush settings. No
// tool is active until SetTool is called.
func NewController(c *engine.Canvas, s Settings, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		canvas:   c,
		settings: s.Normalize(),
		log:      logger,
	}
}

// Canvas returns the canvas the controller drives.
func (ct *Controller) Canvas() *engine.Canvas { return ct.canvas }

// Tool returns the active tool.
func (ct *Controller) Tool() Kind { return ct.tool }

// Settings returns the current brush settings.
func (ct *Controller) Settings() Settings {
	s := ct.settings
	s.Fill = s.fill()
	return s
}

// SetTool switches the active tool. A shape in progress is discarded
// without touching history. Curve edit mode survives only a switch to the
// curve or move tool.
func (ct *Controller) SetTool(k Kind) {
	if k == ct.tool {
		return
	}
	ct.cancelGesture()
	if k != Curve && k != Move {
		ct.canvas.ExitCurveEdit()
	}
	prev := ct.tool
	ct.tool = k
	ct.log.Debug("tool selected", "tool", k, "previous", prev)
	if ct.OnToolChange != nil {
		ct.OnToolChange(k)
	}
}

// SetColor sets the stroke colour for new shapes.
func (ct *Controller) SetColor(c color.Color) {
	if c == nil {
		return
	}
	ct.settings.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// SetFill sets the fill colour for new rectangles, circles and ovals. A nil
// colour disables filling.
func (ct *Controller) SetFill(c color.Color) {
	if c == nil {
		ct.settings.Fill = nil
		return
	}
	f := color.NRGBAModel.Convert(c).(color.NRGBA)
	ct.settings.Fill = &f
}

// SetSize sets the brush size, clamped to the configured range.
func (ct *Controller) SetSize(size int) {
	ct.settings.Size = ct.settings.clamp(size)
}

// SetEraserSize sets the eraser width, clamped to the configured range.
func (ct *Controller) SetEraserSize(size int) {
	ct.settings.EraserSize = ct.settings.clamp(size)
}

// PointerDown starts a gesture at p.
func (ct *Controller) PointerDown(p geom.Point) {
	if ct.down {
		ct.finish()
	}
	s := ct.settings
	width := float64(s.Size)

	switch ct.tool {
	case None:
		return
	case Move:
		if !ct.canvas.BeginMove(p) {
			return
		}
	case Delete:
		ct.canvas.DeleteAt(p)
		return
	case Curve:
		if !ct.canvas.BeginCurveEdit(p) {
			ct.canvas.ExitCurveEdit()
			ct.canvas.Begin(shape.NewCurve(p, s.Color, width))
		}
	case Pencil:
		ct.canvas.Begin(shape.NewStroke(p, s.Color, width))
	case Eraser:
		ct.canvas.Begin(shape.NewEraser(p, float64(s.EraserSize)))
	case Line:
		ct.canvas.Begin(shape.NewLine(p, s.Color, width))
	case Rectangle, Square:
		ct.canvas.Begin(shape.NewRect(p, s.Color, s.fill(), width))
	case Circle:
		ct.canvas.Begin(shape.NewCircle(p, s.Color, s.fill(), width))
	case Oval:
		ct.canvas.Begin(shape.NewEllipse(p, s.Color, s.fill(), width))
	case Dot:
		ct.canvas.Begin(shape.NewDot(p, dotRadius(s.Size), s.Color))
	default:
		return
	}
	ct.anchor = p
	ct.down = true
}

// PointerMove updates the gesture in progress. Moves without a held
// pointer are ignored.
func (ct *Controller) PointerMove(p geom.Point) {
	if !ct.down {
		return
	}
	switch ct.canvas.Mode() {
	case engine.ModeMoving, engine.ModeEditingCurve:
		ct.canvas.Drag(p)
	case engine.ModeDrawing:
		ct.canvas.Update(func(s shape.Shape) { ct.shapeTo(s, p) })
	}
}

// PointerUp ends the gesture. The release position itself is not applied;
// the shape keeps the state of the last move.
func (ct *Controller) PointerUp(geom.Point) {
	ct.finish()
}

// PointerCancel ends the gesture exactly like a pointer-up.
func (ct *Controller) PointerCancel() {
	ct.finish()
}

// PointerLeave ends the gesture exactly like a pointer-up.
func (ct *Controller) PointerLeave() {
	ct.finish()
}

// Undo reverts the last committed change.
func (ct *Controller) Undo() bool {
	ct.down = false
	return ct.canvas.Undo()
}

// ClearAll empties the canvas and its history.
func (ct *Controller) ClearAll() {
	ct.down = false
	ct.canvas.ClearAll()
}

func (ct *Controller) finish() {
	if !ct.down {
		return
	}
	ct.down = false
	switch ct.canvas.Mode() {
	case engine.ModeDrawing:
		ct.canvas.Commit()
	case engine.ModeMoving, engine.ModeEditingCurve:
		ct.canvas.EndDrag()
	}
}

func (ct *Controller) cancelGesture() {
	ct.down = false
	switch ct.canvas.Mode() {
	case engine.ModeDrawing:
		ct.canvas.Discard()
	case engine.ModeMoving, engine.ModeEditingCurve:
		ct.canvas.EndDrag()
	}
}

// shapeTo applies the construction formula of the active tool for the
// pointer at p.
func (ct *Controller) shapeTo(s shape.Shape, p geom.Point) {
	d := p.Sub(ct.anchor)
	switch v := s.(type) {
	case *shape.Stroke:
		v.Points = append(v.Points, p)
	case *shape.Eraser:
		v.Points = append(v.Points, p)
	case *shape.Line:
		v.End = p
	case *shape.Rect:
		if ct.tool == Square {
			side := math.Max(math.Abs(d.X), math.Abs(d.Y))
			v.Width = math.Copysign(side, d.X)
			v.Height = math.Copysign(side, d.Y)
			return
		}
		v.Width, v.Height = d.X, d.Y
	case *shape.Circle:
		v.Radius = math.Hypot(d.X, d.Y)
	case *shape.Ellipse:
		v.RadiusX, v.RadiusY = math.Abs(d.X), math.Abs(d.Y)
	case *shape.Curve:
		v.End = p
		v.Control = v.Start.Mid(p)
	case *shape.Dot:
		v.Center = p
	}
}

func dotRadius(size int) float64 {
	return math.Max(float64(size)/2, 2)
}
