package scenario

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/field"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/metrics"
	"github.com/san-kum/simcore/internal/sim"
	"github.com/san-kum/simcore/internal/vmath"
)

// Electric lays out fixed point charges of alternating sign for field
// sampling. Two charges form a dipole on the X axis; more are spaced on a
// circle. Charges move only by drag.
type Electric struct {
	Charge  float64
	Spacing float64
}

func NewElectric() *Electric {
	return &Electric{Charge: 1, Spacing: 4}
}

func (e *Electric) Name() string { return "electric" }

func (e *Electric) Bodies(s dynamo.Settings) []dynamo.Body {
	n := bodyCount(s.Structure)
	bodies := make([]dynamo.Body, n)
	for i := range bodies {
		q := e.Charge
		if i%2 == 1 {
			q = -q
		}
		var pos vmath.Vec
		switch {
		case n == 1:
			pos = vmath.Zero
		case n == 2:
			pos = vmath.Vec{X: (float64(i) - 0.5) * e.Spacing}
		default:
			pos = vmath.FromPolar(e.Spacing/2, 2*math.Pi*float64(i)/float64(n))
		}
		bodies[i] = dynamo.Body{Pos: pos, Mass: 1, Radius: 0.2, Charge: q, Fixed: true}
	}
	return bodies
}

func (e *Electric) Forces() forces.Model { return forces.Model{} }

func (e *Electric) Bounds(dynamo.Structure) *dynamo.Bounds { return nil }

func (e *Electric) FieldKind() field.Kind { return field.Electric }

func (e *Electric) Metrics(bodies []dynamo.Body, env sim.Env) map[string]float64 {
	return map[string]float64{
		"net_charge": metrics.NetCharge(bodies),
		"charges":    float64(len(bodies)),
	}
}
