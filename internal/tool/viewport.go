package tool

import "KolamStudio/internal/geom"

// Viewport relates the size a canvas is displayed at to its backing
// resolution.
type Viewport struct {
	DisplayW, DisplayH float64
	BackingW, BackingH float64
}

// ToCanvas maps a host position into canvas pixel space. Positions outside
// the displayed area are mapped the same way and never rejected. A viewport
// with no display size passes positions through unchanged.
func (v Viewport) ToCanvas(x, y float64) geom.Point {
	if v.DisplayW <= 0 || v.DisplayH <= 0 || v.BackingW <= 0 || v.BackingH <= 0 {
		return geom.Pt(x, y)
	}
	return geom.Pt(x*v.BackingW/v.DisplayW, y*v.BackingH/v.DisplayH)
}
