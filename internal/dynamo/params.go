package dynamo

import "math"

// Default physical constants.
const (
	DefaultG         = 1.0
	DefaultGravity   = 9.81
	DefaultCoulomb   = 1.0
	DefaultTimeScale = 1.0
)

// Params holds the continuous force-field configuration. All fields apply to
// an existing body set without a reset.
type Params struct {
	G           float64
	Gravity     float64
	Drag        float64
	Restitution float64
	TimeScale   float64
	Coulomb     float64
}

// DefaultParams returns elastic, real-time parameters with standard gravity.
func DefaultParams() Params {
	return Params{
		G:           DefaultG,
		Gravity:     DefaultGravity,
		Restitution: 1.0,
		TimeScale:   DefaultTimeScale,
		Coulomb:     DefaultCoulomb,
	}
}

// Sanitize clamps degenerate values and returns the names of the fields it
// changed. Restitution is clamped to [0,1], a non-positive or non-finite
// time scale becomes 1, negative drag becomes 0 and non-finite constants are
// zeroed.
func (p Params) Sanitize() (Params, []string) {
	var clamped []string

	if math.IsNaN(p.Restitution) {
		p.Restitution = 1
		clamped = append(clamped, "restitution")
	} else if p.Restitution < 0 {
		p.Restitution = 0
		clamped = append(clamped, "restitution")
	} else if p.Restitution > 1 {
		p.Restitution = 1
		clamped = append(clamped, "restitution")
	}

	if !(p.TimeScale > 0) || math.IsInf(p.TimeScale, 0) {
		p.TimeScale = DefaultTimeScale
		clamped = append(clamped, "time_scale")
	}

	if !(p.Drag >= 0) || math.IsInf(p.Drag, 0) {
		p.Drag = 0
		clamped = append(clamped, "drag")
	}

	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"gravitational_constant", &p.G},
		{"gravity", &p.Gravity},
		{"coulomb_constant", &p.Coulomb},
	} {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			*f.v = 0
			clamped = append(clamped, f.name)
		}
	}

	return p, clamped
}

// Structure holds parameters that require regenerating the body set.
type Structure struct {
	BodyCount int
	Width     float64
	Height    float64
}

// Settings is the full configuration handed to a loop.
type Settings struct {
	Params    Params
	Structure Structure
	Seed      int64
}

// StructureChanged reports whether a reset is needed to move from s to o.
func (s Settings) StructureChanged(o Settings) bool {
	return s.Structure != o.Structure || s.Seed != o.Seed
}
