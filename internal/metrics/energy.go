package metrics

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
)

// EnergyDrift tracks the largest relative deviation of a snapshot energy
// series from its first observed value. Semi-implicit Euler without
// sub-stepping drifts over long runs; this makes the drift visible.
type EnergyDrift struct {
	name          string
	key           string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

// NewEnergyDrift observes the snapshot metric named key.
func NewEnergyDrift(key string) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		key:  key,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *dynamo.Snapshot) {
	v, ok := s.Metrics[e.key]
	if !ok {
		return
	}
	energy := finiteOr(v, e.currentEnergy)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Average is the running mean of a snapshot metric. Noisy per-frame
// estimates such as wall pressure settle under it.
type Average struct {
	name    string
	key     string
	sum     float64
	samples int
}

func NewAverage(key string) *Average {
	return &Average{
		name: "mean_" + key,
		key:  key,
	}
}

func (a *Average) Name() string { return a.name }

func (a *Average) Observe(s *dynamo.Snapshot) {
	v, ok := s.Metrics[a.key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	a.sum += v
	a.samples++
}

func (a *Average) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Average) Reset() {
	a.sum = 0
	a.samples = 0
}
