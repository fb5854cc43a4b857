package dynamo

import (
	"math"
)

// State is a flat ODE state vector.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Integrator advances an ODE system by one step.
type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Metric accumulates a scalar over successive frames.
type Metric interface {
	Name() string
	Observe(s *Snapshot)
	Value() float64
	Reset()
}
