// Package tool turns pointer gestures into canvas operations for the
// active drawing tool.
package tool

import (
	"image/color"
	"strings"
)

// Kind identifies a drawing tool.
type Kind int

const (
	None Kind = iota
	Pencil
	Line
	Rectangle
	Square
	Circle
	Oval
	Curve
	Dot
	Move
	Delete
	Eraser
)

var kindNames = [...]string{
	None:      "none",
	Pencil:    "pencil",
	Line:      "line",
	Rectangle: "rectangle",
	Square:    "square",
	Circle:    "circle",
	Oval:      "oval",
	Curve:     "curve",
	Dot:       "dot",
	Move:      "move",
	Delete:    "delete",
	Eraser:    "eraser",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "none"
	}
	return kindNames[k]
}

// Kinds lists the selectable tools in toolbar order.
func Kinds() []Kind {
	return []Kind{Pencil, Line, Rectangle, Square, Circle, Oval, Curve, Dot, Move, Delete, Eraser}
}

// ParseKind maps a tool name to its Kind. Unknown names yield None.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k)
		}
	}
	return None
}

// Settings are the brush parameters shared by all tools.
type Settings struct {
	Color      color.NRGBA
	Fill       *color.NRGBA
	Size       int
	EraserSize int
	MinSize    int
	MaxSize    int
}

// DefaultSettings mirrors the defaults of the configuration file.
func DefaultSettings() Settings {
	return Settings{
		Color:      color.NRGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff},
		Size:       3,
		EraserSize: 20,
		MinSize:    1,
		MaxSize:    80,
	}
}

// clamp keeps v inside [MinSize, MaxSize]. A broken range falls back to 1..80.
func (s Settings) clamp(v int) int {
	lo, hi := s.MinSize, s.MaxSize
	if lo < 1 || hi < lo {
		lo, hi = 1, 80
	}
	return min(max(v, lo), hi)
}

// Normalize returns s with both sizes clamped into range.
func (s Settings) Normalize() Settings {
	s.Size = s.clamp(s.Size)
	s.EraserSize = s.clamp(s.EraserSize)
	return s
}

func (s Settings) fill() *color.NRGBA {
	if s.Fill == nil {
		return nil
	}
	f := *s.Fill
	return &f
}
