package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
)

// Pendulum is a damped simple pendulum with state (θ, ω).
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Gravity: dynamo.DefaultGravity,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) Derive(x dynamo.State, t float64) dynamo.State {
	theta := x[0]
	omega := x[1]

	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta)) / (p.Mass * p.Length * p.Length)

	return dynamo.State{omega, alpha}
}

func (p *Pendulum) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &dynamo.ParamError{Field: name, Value: value}
	}
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// SmallAnglePeriod returns 2π√(L/g), or 0 for non-positive inputs.
func SmallAnglePeriod(length, gravity float64) float64 {
	if length <= 0 || gravity <= 0 {
		return 0
	}
	return 2 * math.Pi * math.Sqrt(length/gravity)
}

// Swing releases sys from rest at theta0 radians and returns θ sampled every
// dt for duration seconds, including the initial sample.
func Swing(sys dynamo.System, integ dynamo.Integrator, theta0, dt, duration float64) []float64 {
	if dt <= 0 || duration <= 0 {
		return nil
	}
	steps := int(duration / dt)
	out := make([]float64, 0, steps+1)
	x := dynamo.State{theta0, 0}
	t := 0.0
	out = append(out, x[0])
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		t += dt
		out = append(out, x[0])
	}
	return out
}
