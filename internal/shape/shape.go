// Package shape defines the drawable primitives of the kolam canvas.
//
// The set of variants is closed: every variant lives in this package and
// implements the sealed Shape interface, so bounds, hit-testing and
// rendering are defined for each of them at compile time.
package shape

import (
	"image/color"

	"KolamStudio/internal/geom"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Pixel tolerances used by hit-testing.
const (
	StrokeTolerance = 3.0
	HandleTolerance = 12.0
)

// Kind identifies a shape variant.
type Kind int

const (
	KindStroke Kind = iota
	KindDot
	KindLine
	KindRect
	KindCircle
	KindEllipse
	KindCurve
	KindEraser
)

var kindNames = [...]string{
	KindStroke:  "stroke",
	KindDot:     "dot",
	KindLine:    "line",
	KindRect:    "rect",
	KindCircle:  "circle",
	KindEllipse: "ellipse",
	KindCurve:   "curve",
	KindEraser:  "eraser",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Part names the portion of a shape that a hit landed on.
type Part int

const (
	PartNone Part = iota
	PartBody
	PartStart
	PartEnd
	PartControl
)

func (p Part) String() string {
	switch p {
	case PartBody:
		return "body"
	case PartStart:
		return "start"
	case PartEnd:
		return "end"
	case PartControl:
		return "control"
	}
	return "none"
}

// Hit is the result of a hit-test. Curves report which handle was hit;
// every other variant reports PartBody or PartNone.
type Hit struct {
	Part Part
}

// OK reports whether anything was hit.
func (h Hit) OK() bool {
	return h.Part != PartNone
}

var miss = Hit{}

// Shape is a committed or in-progress drawable primitive. Field values may
// be mutated in place by move and curve-edit gestures; the identity stays.
type Shape interface {
	Kind() Kind
	Identity() string
	Bounds() geom.Box
	HitTest(p geom.Point) Hit
	Translate(dx, dy float64)
	Clone() Shape

	draw(dc *gg.Context, background color.Color) error
}

type meta struct {
	ID string
}

func newMeta() meta {
	return meta{ID: uuid.NewString()}
}

func (m meta) Identity() string { return m.ID }

// BoundingBox returns the normalized bounds of s.
func BoundingBox(s Shape) geom.Box {
	return s.Bounds()
}

// HitTest reports whether p selects s.
func HitTest(p geom.Point, s Shape) Hit {
	return s.HitTest(p)
}

func translatePoints(points []geom.Point, dx, dy float64) {
	d := geom.Pt(dx, dy)
	for i := range points {
		points[i] = points[i].Add(d)
	}
}

func clonePoints(points []geom.Point) []geom.Point {
	if points == nil {
		return nil
	}
	out := make([]geom.Point, len(points))
	copy(out, points)
	return out
}

func cloneFill(c *color.NRGBA) *color.NRGBA {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// polylineHit tests p against every segment of a polyline.
func polylineHit(p geom.Point, points []geom.Point, tol float64) bool {
	switch len(points) {
	case 0:
		return false
	case 1:
		return p.Dist(points[0]) <= tol
	}
	for i := 1; i < len(points); i++ {
		if geom.DistanceToSegment(p, points[i-1], points[i]) <= tol {
			return true
		}
	}
	return false
}
