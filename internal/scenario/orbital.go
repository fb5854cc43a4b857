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

// Orbital places planets on circular orbits around a fixed star at the
// origin. BodyCount counts planets; the star is always body 0.
type Orbital struct {
	StarMass    float64
	StarRadius  float64
	PlanetMass  float64
	FirstOrbit  float64
	OrbitSpread float64
}

func NewOrbital() *Orbital {
	return &Orbital{
		StarMass:    1000,
		StarRadius:  1,
		PlanetMass:  1,
		FirstOrbit:  6,
		OrbitSpread: 4,
	}
}

func (o *Orbital) Name() string { return "orbital" }

func (o *Orbital) Bodies(s dynamo.Settings) []dynamo.Body {
	rng := newRand(s.Seed)
	n := bodyCount(s.Structure)

	bodies := make([]dynamo.Body, 0, n+1)
	bodies = append(bodies, dynamo.Body{Mass: o.StarMass, Radius: o.StarRadius, Fixed: true})

	g := s.Params.G
	if !(g > 0) {
		g = dynamo.DefaultG
	}
	for i := 0; i < n; i++ {
		r := o.FirstOrbit + float64(i)*o.OrbitSpread
		phase := rng.Float64() * 2 * math.Pi
		pos := vmath.FromPolar(r, phase)
		speed := math.Sqrt(g * o.StarMass / r)
		bodies = append(bodies, dynamo.Body{
			Pos:    pos,
			Vel:    vmath.FromPolar(speed, phase+math.Pi/2),
			Mass:   o.PlanetMass,
			Radius: 0.3,
		})
	}
	return bodies
}

func (o *Orbital) Forces() forces.Model { return forces.Model{Gravitation: true} }

func (o *Orbital) Bounds(dynamo.Structure) *dynamo.Bounds { return nil }

func (o *Orbital) FieldKind() field.Kind { return field.Gravitational }

func (o *Orbital) Metrics(bodies []dynamo.Body, env sim.Env) map[string]float64 {
	ke := metrics.KineticEnergy(bodies)
	pe := metrics.PotentialEnergy(bodies, env.Params.G)
	origin := vmath.Zero
	if len(bodies) > 0 {
		origin = bodies[0].Pos
	}
	return map[string]float64{
		"kinetic_energy":   ke,
		"potential_energy": pe,
		"total_energy":     ke + pe,
		"angular_momentum": metrics.AngularMomentum(bodies, origin),
	}
}
