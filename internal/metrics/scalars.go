package metrics

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/vmath"
)

// KineticEnergy returns Σ ½mv² over movable bodies.
func KineticEnergy(bodies []dynamo.Body) float64 {
	var ke float64
	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		ke += 0.5 * bodies[i].Mass * vmath.Norm2(bodies[i].Vel)
	}
	return ke
}

// Momentum returns Σ mv over movable bodies.
func Momentum(bodies []dynamo.Body) vmath.Vec {
	p := vmath.Zero
	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		p = p.Add(bodies[i].Vel.Scale(bodies[i].Mass))
	}
	return p
}

// PotentialEnergy returns -G·Σ m_i·m_j/r over unordered pairs. Pairs the
// force model excludes contribute nothing.
func PotentialEnergy(bodies []dynamo.Body, g float64) float64 {
	var pe float64
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := vmath.Dist(bodies[i].Pos, bodies[j].Pos)
			if r < forces.MinSeparation || r < bodies[i].Radius+bodies[j].Radius {
				continue
			}
			pe -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// AngularMomentum returns Σ m·(r-origin)×v, the z component.
func AngularMomentum(bodies []dynamo.Body, origin vmath.Vec) float64 {
	var l float64
	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		r := bodies[i].Pos.Sub(origin)
		l += bodies[i].Mass * r.Cross(bodies[i].Vel)
	}
	return l
}

// Temperature returns the mean kinetic energy per movable body, in units
// where k_B = 1 and a 2-D particle carries kT.
func Temperature(bodies []dynamo.Body) float64 {
	n := 0
	for i := range bodies {
		if !bodies[i].Fixed {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return KineticEnergy(bodies) / float64(n)
}

// IdealPressure returns the 2-D ideal-gas estimate N·T/A.
func IdealPressure(n int, temperature, area float64) float64 {
	if area <= 0 {
		return 0
	}
	return float64(n) * temperature / area
}

// WallPressure converts the momentum delivered to the walls during dt into
// a force per unit perimeter.
func WallPressure(impulse, perimeter, dt float64) float64 {
	if perimeter <= 0 || dt <= 0 {
		return 0
	}
	return impulse / perimeter / dt
}

// NetCharge returns Σ q.
func NetCharge(bodies []dynamo.Body) float64 {
	var q float64
	for i := range bodies {
		q += bodies[i].Charge
	}
	return q
}

// Escaped counts bodies whose centre lies outside bounds by more than their
// radius.
func Escaped(bodies []dynamo.Body, bounds dynamo.Bounds) int {
	n := 0
	for i := range bodies {
		if !bounds.Contains(bodies[i].Pos, -(bodies[i].Radius + 1e-9)) {
			n++
		}
	}
	return n
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
