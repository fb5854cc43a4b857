package viz

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

// Viewport maps world coordinates onto canvas sub-pixels with a uniform
// scale, Y pointing up.
type Viewport struct {
	Min   vmath.Vec
	Scale float64
	W, H  int
}

// Fit centres b in a w×h sub-pixel area, preserving aspect ratio.
func Fit(b dynamo.Bounds, w, h int) Viewport {
	bw, bh := b.Width(), b.Height()
	if !(bw > 0) {
		bw = 1
	}
	if !(bh > 0) {
		bh = 1
	}
	scale := math.Min(float64(w-1)/bw, float64(h-1)/bh)
	half := vmath.Vec{X: float64(w-1) / 2 / scale, Y: float64(h-1) / 2 / scale}
	return Viewport{Min: b.Center().Sub(half), Scale: scale, W: w, H: h}
}

// Extent returns a square box centred on the origin holding every body with
// a margin. It is used for unbounded scenarios.
func Extent(bodies []dynamo.Body) dynamo.Bounds {
	r := 1.0
	for i := range bodies {
		p := bodies[i].Pos
		r = math.Max(r, math.Max(math.Abs(p.X), math.Abs(p.Y))+bodies[i].Radius)
	}
	r *= 1.2
	return dynamo.Bounds{Min: vmath.Vec{X: -r, Y: -r}, Max: vmath.Vec{X: r, Y: r}}
}

func (v Viewport) Project(p vmath.Vec) (int, int) {
	x := (p.X - v.Min.X) * v.Scale
	y := float64(v.H-1) - (p.Y-v.Min.Y)*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

// Unproject is the inverse of Project at sub-pixel centres.
func (v Viewport) Unproject(x, y int) vmath.Vec {
	return vmath.Vec{
		X: v.Min.X + float64(x)/v.Scale,
		Y: v.Min.Y + (float64(v.H-1)-float64(y))/v.Scale,
	}
}

// Length converts a world distance to sub-pixels.
func (v Viewport) Length(d float64) int {
	return int(math.Round(d * v.Scale))
}

// World returns the visible world box.
func (v Viewport) World() dynamo.Bounds {
	return dynamo.Bounds{
		Min: v.Min,
		Max: v.Min.Add(vmath.Vec{X: float64(v.W-1) / v.Scale, Y: float64(v.H-1) / v.Scale}),
	}
}
