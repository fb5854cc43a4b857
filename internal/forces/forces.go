// Package forces computes per-body accelerations from uniform fields and
// pairwise interactions.
//
// Every term skips contributions that would divide by a separation below
// [MinSeparation], and drops any non-finite result, so the output is always
// finite.
package forces

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

// MinSeparation is the distance below which pairwise terms are skipped.
const MinSeparation = 1e-6

// Model selects which force terms contribute.
type Model struct {
	Uniform       bool
	Gravitation   bool
	Drag          bool
	Electrostatic bool
}

// Acceleration returns the net acceleration on bodies[i]. Fixed bodies
// receive none.
func (m Model) Acceleration(i int, bodies []dynamo.Body, p dynamo.Params) vmath.Vec {
	b := &bodies[i]
	if b.Fixed {
		return vmath.Zero
	}

	acc := vmath.Zero
	if m.Uniform {
		acc = acc.Add(Uniform(p.Gravity))
	}
	if m.Gravitation {
		acc = acc.Add(Gravitation(i, bodies, p.G))
	}
	if m.Electrostatic {
		acc = acc.Add(Electrostatic(i, bodies, p.Coulomb))
	}
	if m.Drag {
		acc = acc.Add(Drag(b.Vel, p.Drag))
	}

	if !vmath.Finite(acc) {
		return vmath.Zero
	}
	return acc
}

// Accelerations fills out with the acceleration of every body. All values
// are computed from the same positions before any body moves.
func (m Model) Accelerations(bodies []dynamo.Body, p dynamo.Params, out []vmath.Vec) []vmath.Vec {
	if cap(out) < len(bodies) {
		out = make([]vmath.Vec, len(bodies))
	}
	out = out[:len(bodies)]
	for i := range bodies {
		out[i] = m.Acceleration(i, bodies, p)
	}
	return out
}

// Uniform returns the acceleration of a uniform downward field g.
func Uniform(g float64) vmath.Vec {
	return vmath.Vec{Y: -g}
}

// Drag returns -k·|v|·v. k is a per-unit-mass coefficient.
func Drag(v vmath.Vec, k float64) vmath.Vec {
	if k == 0 {
		return vmath.Zero
	}
	return v.Scale(-k * vmath.Norm(v))
}

// Gravitation sums G·m_j·(p_j-p_i)/|p_j-p_i|^3 over every other body.
// Bodies closer than r_i+r_j are excluded.
func Gravitation(i int, bodies []dynamo.Body, g float64) vmath.Vec {
	bi := &bodies[i]
	acc := vmath.Zero
	for j := range bodies {
		if j == i {
			continue
		}
		bj := &bodies[j]
		d := bj.Pos.Sub(bi.Pos)
		r := vmath.Norm(d)
		if r < MinSeparation || r < bi.Radius+bj.Radius {
			continue
		}
		c := d.Scale(g * bj.Mass / (r * r * r))
		if vmath.Finite(c) {
			acc = acc.Add(c)
		}
	}
	return acc
}

// Electrostatic returns the Coulomb acceleration on a charged body:
// k·q_i/m_i·Σ q_j·(p_i-p_j)/|p_i-p_j|^2.
func Electrostatic(i int, bodies []dynamo.Body, k float64) vmath.Vec {
	bi := &bodies[i]
	if bi.Charge == 0 {
		return vmath.Zero
	}
	acc := vmath.Zero
	for j := range bodies {
		if j == i {
			continue
		}
		bj := &bodies[j]
		d := bi.Pos.Sub(bj.Pos)
		r2 := vmath.Norm2(d)
		if math.Sqrt(r2) < math.Max(MinSeparation, bi.Radius+bj.Radius) {
			continue
		}
		c := d.Scale(bj.Charge / r2)
		if vmath.Finite(c) {
			acc = acc.Add(c)
		}
	}
	return acc.Scale(k * bi.Charge / bi.EffectiveMass())
}

// CoulombField returns the unnormalized field k·Σ q_j·(p-p_j)/|p-p_j|^2 at p.
// Sources within MinSeparation of p are skipped.
func CoulombField(p vmath.Vec, sources []dynamo.Charge, k float64) vmath.Vec {
	field := vmath.Zero
	for _, s := range sources {
		d := p.Sub(s.Pos)
		r2 := vmath.Norm2(d)
		if r2 < MinSeparation*MinSeparation {
			continue
		}
		c := d.Scale(s.Q / r2)
		if vmath.Finite(c) {
			field = field.Add(c)
		}
	}
	return field.Scale(k)
}

// GravityField returns G·Σ m_j·(p_j-p)/|p_j-p|^3 at p.
func GravityField(p vmath.Vec, masses []dynamo.Body, g float64) vmath.Vec {
	field := vmath.Zero
	for i := range masses {
		d := masses[i].Pos.Sub(p)
		r := vmath.Norm(d)
		if r < MinSeparation {
			continue
		}
		c := d.Scale(masses[i].Mass / (r * r * r))
		if vmath.Finite(c) {
			field = field.Add(c)
		}
	}
	return field.Scale(g)
}
