package shape

import (
	"image/color"
	"math"

	"KolamStudio/internal/geom"

	"github.com/gogpu/gg"
)

const (
	highlightPad    = 4.0
	handleRadius    = 5.0
	outlineFallback = 2.0
)

var (
	highlightColor = color.NRGBA{R: 0x19, G: 0x76, B: 0xd2, A: 0xff}
	handleColor    = color.NRGBA{R: 0xff, G: 0x98, B: 0x00, A: 0xff}
)

// Render draws s into dc. A highlighted shape also gets a dashed bounding
// box, or for curves, its guide polygon and three filled handles. The
// background colour is what eraser strokes paint with.
func Render(dc *gg.Context, s Shape, highlighted bool, background color.Color) error {
	if dc == nil || s == nil {
		return nil
	}
	if err := s.draw(dc, background); err != nil {
		return err
	}
	if !highlighted {
		return nil
	}
	if c, ok := s.(*Curve); ok {
		return drawHandles(dc, c)
	}
	return drawSelection(dc, s.Bounds())
}

func roundStroke(width float64) gg.Stroke {
	return gg.DefaultStroke().
		WithWidth(width).
		WithCap(gg.LineCapRound).
		WithJoin(gg.LineJoinRound)
}

func strokePolyline(dc *gg.Context, points []geom.Point, c color.Color, width float64) error {
	if len(points) < 2 || width <= 0 {
		return nil
	}
	dc.SetStroke(roundStroke(width))
	dc.SetColor(c)
	dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	return dc.Stroke()
}

// fillAndOutline fills the current path when fill is set, then strokes it.
func fillAndOutline(dc *gg.Context, stroke color.NRGBA, fill *color.NRGBA, width float64) error {
	if fill != nil {
		dc.SetColor(*fill)
		if err := dc.FillPreserve(); err != nil {
			dc.ClearPath()
			return err
		}
	}
	if width <= 0 {
		width = outlineFallback
	}
	dc.SetStroke(gg.DefaultStroke().WithWidth(width))
	dc.SetColor(stroke)
	return dc.Stroke()
}

func (s *Stroke) draw(dc *gg.Context, _ color.Color) error {
	return strokePolyline(dc, s.Points, s.Color, s.Width)
}

func (e *Eraser) draw(dc *gg.Context, background color.Color) error {
	if background == nil {
		background = color.White
	}
	return strokePolyline(dc, e.Points, background, e.Width)
}

func (d *Dot) draw(dc *gg.Context, _ color.Color) error {
	r := math.Max(0, d.Radius)
	if r == 0 {
		return nil
	}
	dc.SetColor(d.Color)
	dc.DrawCircle(d.Center.X, d.Center.Y, r)
	return dc.Fill()
}

func (l *Line) draw(dc *gg.Context, _ color.Color) error {
	return strokePolyline(dc, []geom.Point{l.Start, l.End}, l.Color, l.Width)
}

func (r *Rect) draw(dc *gg.Context, _ color.Color) error {
	b := r.Box()
	if b.Width == 0 && b.Height == 0 {
		return nil
	}
	dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	return fillAndOutline(dc, r.StrokeColor, r.Fill, r.LineWidth)
}

func (c *Circle) draw(dc *gg.Context, _ color.Color) error {
	r := math.Max(0, c.Radius)
	if r == 0 {
		return nil
	}
	dc.DrawCircle(c.Center.X, c.Center.Y, r)
	return fillAndOutline(dc, c.StrokeColor, c.Fill, c.LineWidth)
}

func (e *Ellipse) draw(dc *gg.Context, _ color.Color) error {
	rx, ry := math.Max(0, e.RadiusX), math.Max(0, e.RadiusY)
	if rx == 0 || ry == 0 {
		return nil
	}
	dc.DrawEllipse(e.Center.X, e.Center.Y, rx, ry)
	return fillAndOutline(dc, e.StrokeColor, e.Fill, e.LineWidth)
}

func (c *Curve) draw(dc *gg.Context, _ color.Color) error {
	if c.Start == c.End && c.Start == c.Control {
		return nil
	}
	if c.Width <= 0 {
		return nil
	}
	dc.SetStroke(roundStroke(c.Width))
	dc.SetColor(c.Color)
	dc.MoveTo(c.Start.X, c.Start.Y)
	dc.QuadraticTo(c.Control.X, c.Control.Y, c.End.X, c.End.Y)
	return dc.Stroke()
}

func drawSelection(dc *gg.Context, b geom.Box) error {
	b = b.Inflate(highlightPad)
	dc.SetStroke(gg.DashedStroke(6, 4).WithWidth(1))
	dc.SetColor(highlightColor)
	dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	err := dc.Stroke()
	dc.SetDash()
	return err
}

func drawHandles(dc *gg.Context, c *Curve) error {
	dc.SetStroke(gg.DashedStroke(6, 4).WithWidth(1))
	dc.SetColor(highlightColor)
	dc.MoveTo(c.Start.X, c.Start.Y)
	dc.LineTo(c.Control.X, c.Control.Y)
	dc.LineTo(c.End.X, c.End.Y)
	err := dc.Stroke()
	dc.SetDash()
	if err != nil {
		return err
	}

	dc.SetColor(handleColor)
	for _, p := range []geom.Point{c.Start, c.Control, c.End} {
		dc.DrawCircle(p.X, p.Y, handleRadius)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}
