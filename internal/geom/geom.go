// Package geom provides the point, box and distance helpers used for
// hit-testing shapes on the drawing canvas.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in canvas pixel space. The origin is the top-left
// corner and y grows downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return fromVec(r2.Add(p.vec(), q.vec()))
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return fromVec(r2.Sub(p.vec(), q.vec()))
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), q.vec()))
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return fromVec(r2.Scale(0.5, r2.Add(p.vec(), q.vec())))
}

// DistanceToSegment returns the distance from p to the closest point of the
// segment a-b. A degenerate segment is treated as a single point.
func DistanceToSegment(p, a, b Point) float64 {
	ab := r2.Sub(b.vec(), a.vec())
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := r2.Dot(r2.Sub(p.vec(), a.vec()), ab) / l2
	t = math.Max(0, math.Min(1, t))
	proj := r2.Add(a.vec(), r2.Scale(t, ab))
	return r2.Norm(r2.Sub(p.vec(), proj))
}

// QuadAt evaluates the quadratic Bézier curve start-control-end at t.
func QuadAt(start, control, end Point, t float64) Point {
	u := 1 - t
	v := r2.Scale(u*u, start.vec())
	v = r2.Add(v, r2.Scale(2*u*t, control.vec()))
	v = r2.Add(v, r2.Scale(t*t, end.vec()))
	return fromVec(v)
}

// SampleQuad flattens a quadratic Bézier curve into n segments (n+1 points).
func SampleQuad(start, control, end Point, n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, QuadAt(start, control, end, float64(i)/float64(n)))
	}
	return pts
}
