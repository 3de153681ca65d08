package geom

import "math"

// Box is an axis-aligned rectangle with non-negative width and height.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// NormBox builds a Box from an origin and a possibly negative extent, as
// produced while dragging a rectangle up or to the left.
func NormBox(x, y, w, h float64) Box {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return Box{X: x, Y: y, Width: w, Height: h}
}

// BoundsOf returns the smallest box holding every point. An empty slice
// yields the zero box at the origin.
func BoundsOf(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Inflate grows the box by d on every side.
func (b Box) Inflate(d float64) Box {
	return NormBox(b.X-d, b.Y-d, b.Width+2*d, b.Height+2*d)
}
