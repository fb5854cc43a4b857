package sim

import (
	"github.com/san-kum/simcore/internal/collision"
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/field"
	"github.com/san-kum/simcore/internal/forces"
)

// Scenario builds a body set and derives per-frame scalars from it. The
// loop owns the bodies; a scenario never keeps a reference to them.
type Scenario interface {
	Name() string
	// Bodies generates the initial body set. It must be deterministic for a
	// given Settings value, including Seed.
	Bodies(s dynamo.Settings) []dynamo.Body
	Forces() forces.Model
	// Bounds returns the containing box, or nil for an unbounded scenario.
	Bounds(st dynamo.Structure) *dynamo.Bounds
	Metrics(bodies []dynamo.Body, env Env) map[string]float64
}

// FieldSource is implemented by scenarios whose bodies act as field
// sources for SampleField.
type FieldSource interface {
	FieldKind() field.Kind
}

// Env is the frame context handed to Scenario.Metrics.
type Env struct {
	Params     dynamo.Params
	Bounds     *dynamo.Bounds
	Collisions collision.Stats
	Dt         float64
}
