package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/scenario"
	"github.com/san-kum/simcore/internal/trajectory"
)

const (
	DefaultScenario    = "collision"
	DefaultSeed        = 1
	DefaultSpeed       = 20.0
	DefaultAngle       = 45.0
	DefaultLength      = 1.0
	DefaultSwingAngle  = 10.0
	DefaultPendulumDt  = 0.001
	DefaultSwingPeriod = 10
)

type Config struct {
	Scenario   string           `yaml:"scenario"`
	Seed       int64            `yaml:"seed"`
	Params     ParamsConfig     `yaml:"params"`
	Structure  StructureConfig  `yaml:"structure"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Pendulum   PendulumConfig   `yaml:"pendulum"`
}

// ParamsConfig holds the continuous parameters, applied without a reset.
type ParamsConfig struct {
	G           float64 `yaml:"gravitational_constant"`
	Gravity     float64 `yaml:"gravity"`
	Drag        float64 `yaml:"drag_coefficient"`
	Restitution float64 `yaml:"restitution"`
	TimeScale   float64 `yaml:"time_scale"`
	Coulomb     float64 `yaml:"coulomb_constant"`
}

// StructureConfig holds the parameters that regenerate the body set. Zero
// values fall back to the scenario's defaults.
type StructureConfig struct {
	BodyCount int     `yaml:"body_count"`
	Width     float64 `yaml:"boundary_width"`
	Height    float64 `yaml:"boundary_height"`
}

type ProjectileConfig struct {
	Speed      float64 `yaml:"speed"`
	Angle      float64 `yaml:"angle"`
	Height     float64 `yaml:"height"`
	Dt         float64 `yaml:"dt"`
	MaxSamples int     `yaml:"max_samples"`
}

type PendulumConfig struct {
	Length  float64 `yaml:"length"`
	Angle   float64 `yaml:"angle"`
	Dt      float64 `yaml:"dt"`
	Periods int     `yaml:"periods"`
}

func DefaultConfig() *Config {
	p := dynamo.DefaultParams()
	return &Config{
		Scenario: DefaultScenario,
		Seed:     DefaultSeed,
		Params: ParamsConfig{
			G:           p.G,
			Gravity:     p.Gravity,
			Drag:        p.Drag,
			Restitution: p.Restitution,
			TimeScale:   p.TimeScale,
			Coulomb:     p.Coulomb,
		},
		Projectile: ProjectileConfig{
			Speed:      DefaultSpeed,
			Angle:      DefaultAngle,
			Dt:         trajectory.DefaultDt,
			MaxSamples: trajectory.DefaultMaxSamples,
		},
		Pendulum: PendulumConfig{
			Length:  DefaultLength,
			Angle:   DefaultSwingAngle,
			Dt:      DefaultPendulumDt,
			Periods: DefaultSwingPeriod,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every out-of-range value. Unknown scenarios wrap
// dynamo.ErrUnknownScenario; range failures wrap dynamo.ErrInvalidParam.
func (c *Config) Validate() error {
	reg := scenario.NewRegistry()
	if _, err := reg.Get(c.Scenario); err != nil {
		return err
	}

	var errs []error
	check := func(ok bool, field string, v float64) {
		if !ok {
			errs = append(errs, &dynamo.ParamError{Field: field, Value: v})
		}
	}

	check(c.Params.Restitution >= 0 && c.Params.Restitution <= 1, "restitution", c.Params.Restitution)
	check(c.Params.TimeScale > 0, "time_scale", c.Params.TimeScale)
	check(c.Params.Drag >= 0, "drag_coefficient", c.Params.Drag)
	check(c.Structure.BodyCount >= 0, "body_count", float64(c.Structure.BodyCount))
	check(c.Structure.Width >= 0, "boundary_width", c.Structure.Width)
	check(c.Structure.Height >= 0, "boundary_height", c.Structure.Height)

	if reg.Bounded(c.Scenario) {
		st := c.Structure
		if def, err := reg.Defaults(c.Scenario); err == nil {
			st = c.mergeStructure(def.Structure)
		}
		check(st.Width > 0, "boundary_width", st.Width)
		check(st.Height > 0, "boundary_height", st.Height)
	}

	check(c.Projectile.Dt > 0, "projectile.dt", c.Projectile.Dt)
	check(c.Projectile.MaxSamples >= 0, "projectile.max_samples", float64(c.Projectile.MaxSamples))
	check(c.Projectile.Speed >= 0, "projectile.speed", c.Projectile.Speed)
	check(c.Pendulum.Length > 0, "pendulum.length", c.Pendulum.Length)
	check(c.Pendulum.Dt > 0, "pendulum.dt", c.Pendulum.Dt)

	return errors.Join(errs...)
}

func (c *Config) mergeStructure(def dynamo.Structure) StructureConfig {
	st := c.Structure
	if st.BodyCount == 0 {
		st.BodyCount = def.BodyCount
	}
	if st.Width == 0 {
		st.Width = def.Width
	}
	if st.Height == 0 {
		st.Height = def.Height
	}
	return st
}

// Settings resolves the loop configuration, filling an unset structure from
// the scenario defaults in def.
func (c *Config) Settings(def dynamo.Structure) dynamo.Settings {
	st := c.mergeStructure(def)
	return dynamo.Settings{
		Params: dynamo.Params{
			G:           c.Params.G,
			Gravity:     c.Params.Gravity,
			Drag:        c.Params.Drag,
			Restitution: c.Params.Restitution,
			TimeScale:   c.Params.TimeScale,
			Coulomb:     c.Params.Coulomb,
		},
		Structure: dynamo.Structure{BodyCount: st.BodyCount, Width: st.Width, Height: st.Height},
		Seed:      c.Seed,
	}
}

// Launch returns the projectile launch, taking gravity and drag from
// the force parameters.
func (c *Config) Launch() trajectory.Launch {
	return trajectory.Launch{
		Speed:   c.Projectile.Speed,
		Angle:   c.Projectile.Angle,
		Height:  c.Projectile.Height,
		Gravity: c.Params.Gravity,
		Drag:    c.Params.Drag,
	}
}

func (c *Config) Planner() *trajectory.Planner {
	return &trajectory.Planner{Dt: c.Projectile.Dt, MaxSamples: c.Projectile.MaxSamples}
}
