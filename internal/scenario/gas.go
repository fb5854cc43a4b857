package scenario

import (
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/metrics"
	"github.com/san-kum/simcore/internal/sim"
)

// Gas is an ideal gas of equal hard discs at a fixed initial speed.
type Gas struct {
	Mass   float64
	Radius float64
	Speed  float64
}

func NewGas() *Gas {
	return &Gas{Mass: 1, Radius: 0.15, Speed: 3}
}

func (g *Gas) Name() string { return "gas" }

func (g *Gas) Bodies(s dynamo.Settings) []dynamo.Body {
	rng := newRand(s.Seed)
	n := bodyCount(s.Structure)
	box := boxFor(s.Structure)

	r := cellRadius(n, *box, g.Radius)
	centres := scatter(rng, n, *box, r)
	bodies := make([]dynamo.Body, n)
	for i := range bodies {
		bodies[i] = dynamo.Body{
			Pos:    centres[i],
			Vel:    randomVelocity(rng, g.Speed),
			Mass:   g.Mass,
			Radius: r,
		}
	}
	return bodies
}

func (g *Gas) Forces() forces.Model { return forces.Model{} }

func (g *Gas) Bounds(st dynamo.Structure) *dynamo.Bounds { return boxFor(st) }

func (g *Gas) Metrics(bodies []dynamo.Body, env sim.Env) map[string]float64 {
	temp := metrics.Temperature(bodies)
	m := map[string]float64{
		"kinetic_energy": metrics.KineticEnergy(bodies),
		"temperature":    temp,
	}
	if env.Bounds != nil {
		m["pressure"] = metrics.IdealPressure(len(bodies), temp, env.Bounds.Area())
		m["wall_pressure"] = metrics.WallPressure(env.Collisions.WallImpulse, env.Bounds.Perimeter(), env.Dt)
	}
	return m
}
