package scenario

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/metrics"
	"github.com/san-kum/simcore/internal/sim"
)

// Collision bounces a handful of balls of varied mass in a box. Radius grows
// with the square root of mass so that density is uniform.
type Collision struct {
	MinMass  float64
	MaxMass  float64
	MaxSpeed float64
}

func NewCollision() *Collision {
	return &Collision{MinMass: 1, MaxMass: 5, MaxSpeed: 4}
}

func (c *Collision) Name() string { return "collision" }

func (c *Collision) Bodies(s dynamo.Settings) []dynamo.Body {
	rng := newRand(s.Seed)
	n := bodyCount(s.Structure)
	box := boxFor(s.Structure)

	maxR := cellRadius(n, *box, 0.5*math.Sqrt(c.MaxMass))
	scale := maxR / math.Sqrt(c.MaxMass)
	centres := scatter(rng, n, *box, maxR)

	bodies := make([]dynamo.Body, n)
	for i := range bodies {
		m := c.MinMass + rng.Float64()*(c.MaxMass-c.MinMass)
		bodies[i] = dynamo.Body{
			Pos:    centres[i],
			Vel:    randomVelocity(rng, (0.25+0.75*rng.Float64())*c.MaxSpeed),
			Mass:   m,
			Radius: scale * math.Sqrt(m),
		}
	}
	return bodies
}

func (c *Collision) Forces() forces.Model { return forces.Model{Drag: true} }

func (c *Collision) Bounds(st dynamo.Structure) *dynamo.Bounds { return boxFor(st) }

func (c *Collision) Metrics(bodies []dynamo.Body, env sim.Env) map[string]float64 {
	p := metrics.Momentum(bodies)
	return map[string]float64{
		"kinetic_energy": metrics.KineticEnergy(bodies),
		"momentum_x":     p.X,
		"momentum_y":     p.Y,
		"collisions":     float64(env.Collisions.Impulses),
	}
}
