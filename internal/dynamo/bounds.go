package dynamo

import "github.com/san-kum/simcore/internal/vmath"

// Bounds is an axis-aligned box. The zero value is an empty box at origin.
type Bounds struct {
	Min vmath.Vec
	Max vmath.Vec
}

// NewBounds returns a box from the origin to (w, h).
func NewBounds(w, h float64) Bounds {
	return Bounds{Max: vmath.Vec{X: w, Y: h}}
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Bounds) Center() vmath.Vec {
	return vmath.Lerp(b.Min, b.Max, 0.5)
}

// Perimeter returns the length of the box outline.
func (b Bounds) Perimeter() float64 {
	return 2 * (b.Width() + b.Height())
}

// Area returns the box area.
func (b Bounds) Area() float64 {
	return b.Width() * b.Height()
}

// Contains reports whether p lies in the box shrunk by margin on every side.
func (b Bounds) Contains(p vmath.Vec, margin float64) bool {
	return p.X >= b.Min.X+margin && p.X <= b.Max.X-margin &&
		p.Y >= b.Min.Y+margin && p.Y <= b.Max.Y-margin
}

// Side is a set of box walls.
type Side uint8

const (
	Left Side = 1 << iota
	Right
	Bottom
	Top
)

const NoSide Side = 0

// Has reports whether s includes w.
func (s Side) Has(w Side) bool { return s&w != 0 }

func (s Side) String() string {
	if s == NoSide {
		return "none"
	}
	out := ""
	for _, w := range []struct {
		side Side
		name string
	}{{Left, "left"}, {Right, "right"}, {Bottom, "bottom"}, {Top, "top"}} {
		if s.Has(w.side) {
			if out != "" {
				out += "|"
			}
			out += w.name
		}
	}
	return out
}
