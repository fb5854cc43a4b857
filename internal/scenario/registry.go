// Package scenario provides the built-in body sets: bouncing balls, an
// ideal gas, a planetary system and static point charges.
package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/metrics"
	"github.com/san-kum/simcore/internal/sim"
)

type entry struct {
	build    func() sim.Scenario
	defaults dynamo.Structure
	bounded  bool
}

type Registry struct {
	scenarios map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]entry)}

	r.scenarios["collision"] = entry{
		build:    func() sim.Scenario { return NewCollision() },
		defaults: dynamo.Structure{BodyCount: 6, Width: 20, Height: 12},
		bounded:  true,
	}
	r.scenarios["gas"] = entry{
		build:    func() sim.Scenario { return NewGas() },
		defaults: dynamo.Structure{BodyCount: 60, Width: 20, Height: 20},
		bounded:  true,
	}
	r.scenarios["orbital"] = entry{
		build:    func() sim.Scenario { return NewOrbital() },
		defaults: dynamo.Structure{BodyCount: 3, Width: 60, Height: 60},
	}
	r.scenarios["electric"] = entry{
		build:    func() sim.Scenario { return NewElectric() },
		defaults: dynamo.Structure{BodyCount: 2, Width: 12, Height: 8},
	}

	return r
}

func (r *Registry) Get(name string) (sim.Scenario, error) {
	e, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownScenario, name)
	}
	return e.build(), nil
}

// Defaults returns the default settings for a scenario.
func (r *Registry) Defaults(name string) (dynamo.Settings, error) {
	e, ok := r.scenarios[name]
	if !ok {
		return dynamo.Settings{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownScenario, name)
	}
	return dynamo.Settings{
		Params:    dynamo.DefaultParams(),
		Structure: e.defaults,
		Seed:      1,
	}, nil
}

// Bounded reports whether the scenario contains its bodies in a box.
func (r *Registry) Bounded(name string) bool {
	return r.scenarios[name].bounded
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh accumulating metrics suited to a scenario.
func (r *Registry) DefaultMetrics(name string, st dynamo.Structure) []dynamo.Metric {
	switch name {
	case "collision":
		return []dynamo.Metric{
			metrics.NewEnergyDrift("kinetic_energy"),
			metrics.NewContainment(),
		}
	case "gas":
		return []dynamo.Metric{
			metrics.NewAverage("wall_pressure"),
			metrics.NewContainment(),
		}
	case "orbital":
		return []dynamo.Metric{metrics.NewEnergyDrift("total_energy")}
	default:
		return nil
	}
}
