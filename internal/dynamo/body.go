package dynamo

import (
	"strconv"

	"github.com/san-kum/simcore/internal/vmath"
)

// MinMass replaces a non-positive mass on a movable body.
const MinMass = 1e-9

// Body is a point mass. Fixed bodies are never integrated and behave as
// infinitely massive in collisions.
type Body struct {
	Pos    vmath.Vec
	Vel    vmath.Vec
	Mass   float64
	Radius float64
	Charge float64
	Fixed  bool
}

// InverseMass returns 1/m, 0 for fixed bodies.
func (b *Body) InverseMass() float64 {
	if b.Fixed {
		return 0
	}
	if b.Mass <= 0 {
		return 1 / MinMass
	}
	return 1 / b.Mass
}

// EffectiveMass returns the mass used for force scaling.
func (b *Body) EffectiveMass() float64 {
	if b.Mass <= 0 {
		return MinMass
	}
	return b.Mass
}

// Speed returns |v|.
func (b *Body) Speed() float64 {
	return vmath.Norm(b.Vel)
}

// AsCharge returns the body as a field source.
func (b *Body) AsCharge() Charge {
	return Charge{Pos: b.Pos, Q: b.Charge}
}

// Charge is a signed point source for electrostatics. Its position is
// updated by direct drag, never by the integrator.
type Charge struct {
	Pos vmath.Vec
	Q   float64
}

// CloneBodies returns a deep copy of bodies.
func CloneBodies(bodies []Body) []Body {
	if bodies == nil {
		return nil
	}
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
