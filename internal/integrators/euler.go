package integrators

import (
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

// SemiImplicitEuler advances bodies with velocity updated before position.
// No sub-stepping is done: a large dt is applied as-is.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

// Step applies v += a·dt then x += v·dt. Fixed bodies are skipped.
func (e *SemiImplicitEuler) Step(b *dynamo.Body, a vmath.Vec, dt float64) {
	if b.Fixed {
		return
	}
	b.Vel = b.Vel.Add(a.Scale(dt))
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// StepAll steps every body with its matching acceleration.
func (e *SemiImplicitEuler) StepAll(bodies []dynamo.Body, acc []vmath.Vec, dt float64) {
	for i := range bodies {
		if i >= len(acc) {
			return
		}
		e.Step(&bodies[i], acc[i], dt)
	}
}

// EffectiveDt scales a wall-clock delta by the time scale. A non-positive
// scale is treated as 1 and a negative delta as 0.
func EffectiveDt(wallDt, timeScale float64) float64 {
	if wallDt <= 0 {
		return 0
	}
	if !(timeScale > 0) {
		timeScale = dynamo.DefaultTimeScale
	}
	return wallDt * timeScale
}

// Euler is the explicit Euler ODE step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
