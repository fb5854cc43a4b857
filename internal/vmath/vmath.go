// Package vmath provides the 2-D vector arithmetic shared by every physics
// component.
//
// [Vec] has gonum's r2.Vec layout; its Add, Sub, Scale, Dot and Cross methods
// delegate to the r2 package functions. The helpers here add the zero-safe
// variants the simulation needs: [Unit] never returns NaN and [Finite] is
// used to drop runaway contributions.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2-D vector. Position grows "upward" along Y.
type Vec r2.Vec

func (v Vec) Add(u Vec) Vec { return Vec(r2.Add(r2.Vec(v), r2.Vec(u))) }

func (v Vec) Sub(u Vec) Vec { return Vec(r2.Sub(r2.Vec(v), r2.Vec(u))) }

func (v Vec) Scale(f float64) Vec { return Vec(r2.Scale(f, r2.Vec(v))) }

func (v Vec) Dot(u Vec) float64 { return r2.Dot(r2.Vec(v), r2.Vec(u)) }

// Cross returns the z component of the 3-D cross product.
func (v Vec) Cross(u Vec) float64 { return r2.Cross(r2.Vec(v), r2.Vec(u)) }

// Zero is the zero vector.
var Zero = Vec{}

// XAxis is the fallback normal used when a direction is undefined.
var XAxis = Vec{X: 1}

// Norm returns the Euclidean length of v.
func Norm(v Vec) float64 {
	return r2.Norm(r2.Vec(v))
}

// Norm2 returns the squared length of v.
func Norm2(v Vec) float64 {
	return r2.Norm2(r2.Vec(v))
}

// Dist returns the distance between a and b.
func Dist(a, b Vec) float64 {
	return Norm(b.Sub(a))
}

// Unit returns v scaled to length one, or the zero vector when v has no length.
func Unit(v Vec) Vec {
	n := Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Zero
	}
	return v.Scale(1 / n)
}

// FromPolar builds a vector of the given magnitude at angle radians from +X.
func FromPolar(magnitude, angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{X: magnitude * c, Y: magnitude * s}
}

// Finite reports whether both components are finite numbers.
func Finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b Vec, t float64) Vec {
	return a.Add(b.Sub(a).Scale(t))
}
