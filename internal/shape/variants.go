package shape

import (
	"image/color"
	"math"

	"KolamStudio/internal/geom"
)

// curveSegments is the flattening density used to hit-test curve bodies.
const curveSegments = 32

// Stroke is a freehand path. Points are ordered by capture time.
type Stroke struct {
	meta
	Points []geom.Point
	Color  color.NRGBA
	Width  float64
}

// NewStroke starts a freehand path at p.
func NewStroke(p geom.Point, c color.NRGBA, width float64) *Stroke {
	return &Stroke{meta: newMeta(), Points: []geom.Point{p}, Color: c, Width: width}
}

func (s *Stroke) Kind() Kind { return KindStroke }

func (s *Stroke) Bounds() geom.Box { return geom.BoundsOf(s.Points) }

func (s *Stroke) HitTest(p geom.Point) Hit {
	if polylineHit(p, s.Points, math.Max(0, s.Width)/2+StrokeTolerance) {
		return Hit{Part: PartBody}
	}
	return miss
}

func (s *Stroke) Translate(dx, dy float64) { translatePoints(s.Points, dx, dy) }

func (s *Stroke) Clone() Shape {
	c := *s
	c.Points = clonePoints(s.Points)
	return &c
}

// Dot is a filled disc.
type Dot struct {
	meta
	Center geom.Point
	Radius float64
	Color  color.NRGBA
}

// NewDot creates a dot centered on p.
func NewDot(p geom.Point, radius float64, c color.NRGBA) *Dot {
	return &Dot{meta: newMeta(), Center: p, Radius: radius, Color: c}
}

func (d *Dot) Kind() Kind { return KindDot }

func (d *Dot) Bounds() geom.Box {
	r := math.Abs(d.Radius)
	return geom.Box{X: d.Center.X - r, Y: d.Center.Y - r, Width: 2 * r, Height: 2 * r}
}

func (d *Dot) HitTest(p geom.Point) Hit {
	if p.Dist(d.Center) <= math.Abs(d.Radius)+StrokeTolerance {
		return Hit{Part: PartBody}
	}
	return miss
}

func (d *Dot) Translate(dx, dy float64) { d.Center = d.Center.Add(geom.Pt(dx, dy)) }

func (d *Dot) Clone() Shape {
	c := *d
	return &c
}

// Line is a straight segment.
type Line struct {
	meta
	Start, End geom.Point
	Color      color.NRGBA
	Width      float64
}

// NewLine creates a zero-length line anchored at p.
func NewLine(p geom.Point, c color.NRGBA, width float64) *Line {
	return &Line{meta: newMeta(), Start: p, End: p, Color: c, Width: width}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Bounds() geom.Box { return geom.BoundsOf([]geom.Point{l.Start, l.End}) }

func (l *Line) HitTest(p geom.Point) Hit {
	if geom.DistanceToSegment(p, l.Start, l.End) <= math.Max(0, l.Width)/2+StrokeTolerance {
		return Hit{Part: PartBody}
	}
	return miss
}

func (l *Line) Translate(dx, dy float64) {
	d := geom.Pt(dx, dy)
	l.Start = l.Start.Add(d)
	l.End = l.End.Add(d)
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}

// Rect is an axis-aligned rectangle. Width and Height keep the sign of the
// drag that produced them; Box normalizes.
type Rect struct {
	meta
	Origin        geom.Point
	Width, Height float64
	StrokeColor   color.NRGBA
	Fill          *color.NRGBA
	LineWidth     float64
}

// NewRect creates an empty rectangle anchored at p.
func NewRect(p geom.Point, stroke color.NRGBA, fill *color.NRGBA, lineWidth float64) *Rect {
	return &Rect{meta: newMeta(), Origin: p, StrokeColor: stroke, Fill: cloneFill(fill), LineWidth: lineWidth}
}

func (r *Rect) Kind() Kind { return KindRect }

// Box returns the normalized rectangle.
func (r *Rect) Box() geom.Box { return geom.NormBox(r.Origin.X, r.Origin.Y, r.Width, r.Height) }

func (r *Rect) Bounds() geom.Box { return r.Box() }

func (r *Rect) HitTest(p geom.Point) Hit {
	if r.Box().Inflate(StrokeTolerance).Contains(p) {
		return Hit{Part: PartBody}
	}
	return miss
}

func (r *Rect) Translate(dx, dy float64) { r.Origin = r.Origin.Add(geom.Pt(dx, dy)) }

func (r *Rect) Clone() Shape {
	c := *r
	c.Fill = cloneFill(r.Fill)
	return &c
}

// Circle is a circle outline with an optional fill.
type Circle struct {
	meta
	Center      geom.Point
	Radius      float64
	StrokeColor color.NRGBA
	Fill        *color.NRGBA
	LineWidth   float64
}

// NewCircle creates a zero-radius circle centered on p.
func NewCircle(p geom.Point, stroke color.NRGBA, fill *color.NRGBA, lineWidth float64) *Circle {
	return &Circle{meta: newMeta(), Center: p, StrokeColor: stroke, Fill: cloneFill(fill), LineWidth: lineWidth}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) Bounds() geom.Box {
	r := math.Abs(c.Radius)
	return geom.Box{X: c.Center.X - r, Y: c.Center.Y - r, Width: 2 * r, Height: 2 * r}
}

func (c *Circle) HitTest(p geom.Point) Hit {
	if p.Dist(c.Center) <= math.Abs(c.Radius)+StrokeTolerance {
		return Hit{Part: PartBody}
	}
	return miss
}

func (c *Circle) Translate(dx, dy float64) { c.Center = c.Center.Add(geom.Pt(dx, dy)) }

func (c *Circle) Clone() Shape {
	n := *c
	n.Fill = cloneFill(c.Fill)
	return &n
}

// Ellipse is an axis-aligned ellipse outline with an optional fill.
type Ellipse struct {
	meta
	Center           geom.Point
	RadiusX, RadiusY float64
	StrokeColor      color.NRGBA
	Fill             *color.NRGBA
	LineWidth        float64
}

// NewEllipse creates a zero-size ellipse centered on p.
func NewEllipse(p geom.Point, stroke color.NRGBA, fill *color.NRGBA, lineWidth float64) *Ellipse {
	return &Ellipse{meta: newMeta(), Center: p, StrokeColor: stroke, Fill: cloneFill(fill), LineWidth: lineWidth}
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) Bounds() geom.Box {
	rx, ry := math.Abs(e.RadiusX), math.Abs(e.RadiusY)
	return geom.Box{X: e.Center.X - rx, Y: e.Center.Y - ry, Width: 2 * rx, Height: 2 * ry}
}

func (e *Ellipse) HitTest(p geom.Point) Hit {
	rx := math.Abs(e.RadiusX) + StrokeTolerance
	ry := math.Abs(e.RadiusY) + StrokeTolerance
	dx := (p.X - e.Center.X) / rx
	dy := (p.Y - e.Center.Y) / ry
	if dx*dx+dy*dy <= 1 {
		return Hit{Part: PartBody}
	}
	return miss
}

func (e *Ellipse) Translate(dx, dy float64) { e.Center = e.Center.Add(geom.Pt(dx, dy)) }

func (e *Ellipse) Clone() Shape {
	c := *e
	c.Fill = cloneFill(e.Fill)
	return &c
}

// Curve is a quadratic Bézier. Its three points stay individually
// draggable after commit.
type Curve struct {
	meta
	Start, End, Control geom.Point
	Color               color.NRGBA
	Width               float64
}

// NewCurve creates a curve collapsed onto p.
func NewCurve(p geom.Point, c color.NRGBA, width float64) *Curve {
	return &Curve{meta: newMeta(), Start: p, End: p, Control: p, Color: c, Width: width}
}

func (c *Curve) Kind() Kind { return KindCurve }

// Bounds covers the three defining points, which always contain the curve.
func (c *Curve) Bounds() geom.Box {
	return geom.BoundsOf([]geom.Point{c.Start, c.Control, c.End})
}

// HitHandle reports which of the three defining points lies within
// HandleTolerance of p. The control point wins ties.
func (c *Curve) HitHandle(p geom.Point) Part {
	switch {
	case p.Dist(c.Control) <= HandleTolerance:
		return PartControl
	case p.Dist(c.Start) <= HandleTolerance:
		return PartStart
	case p.Dist(c.End) <= HandleTolerance:
		return PartEnd
	}
	return PartNone
}

func (c *Curve) HitTest(p geom.Point) Hit {
	if part := c.HitHandle(p); part != PartNone {
		return Hit{Part: part}
	}
	pts := geom.SampleQuad(c.Start, c.Control, c.End, curveSegments)
	if polylineHit(p, pts, math.Max(0, c.Width)/2+StrokeTolerance) {
		return Hit{Part: PartBody}
	}
	return miss
}

// MovePart shifts one handle, or all three for PartBody.
func (c *Curve) MovePart(part Part, dx, dy float64) {
	d := geom.Pt(dx, dy)
	switch part {
	case PartStart:
		c.Start = c.Start.Add(d)
	case PartEnd:
		c.End = c.End.Add(d)
	case PartControl:
		c.Control = c.Control.Add(d)
	case PartBody:
		c.Translate(dx, dy)
	}
}

func (c *Curve) Translate(dx, dy float64) {
	d := geom.Pt(dx, dy)
	c.Start = c.Start.Add(d)
	c.End = c.End.Add(d)
	c.Control = c.Control.Add(d)
}

func (c *Curve) Clone() Shape {
	n := *c
	return &n
}

// Eraser is a cover stroke painted in the background colour. It hides what
// lies beneath without removing it, and is never selectable.
type Eraser struct {
	meta
	Points []geom.Point
	Width  float64
}

// NewEraser starts an eraser stroke at p.
func NewEraser(p geom.Point, width float64) *Eraser {
	return &Eraser{meta: newMeta(), Points: []geom.Point{p}, Width: width}
}

func (e *Eraser) Kind() Kind { return KindEraser }

func (e *Eraser) Bounds() geom.Box { return geom.BoundsOf(e.Points) }

func (e *Eraser) HitTest(geom.Point) Hit { return miss }

func (e *Eraser) Translate(dx, dy float64) { translatePoints(e.Points, dx, dy) }

func (e *Eraser) Clone() Shape {
	c := *e
	c.Points = clonePoints(e.Points)
	return &c
}
