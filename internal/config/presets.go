package config

func preset(scn string, edit func(*Config)) *Config {
	c := DefaultConfig()
	c.Scenario = scn
	edit(c)
	return c
}

// Presets maps a scenario (or "projectile") to named configurations.
var Presets = map[string]map[string]*Config{
	"collision": {
		"elastic": preset("collision", func(c *Config) {
			c.Params.Restitution = 1
		}),
		"inelastic": preset("collision", func(c *Config) {
			c.Params.Restitution = 0.3
		}),
		"crowded": preset("collision", func(c *Config) {
			c.Structure.BodyCount = 14
		}),
		"sticky": preset("collision", func(c *Config) {
			c.Params.Restitution = 0
			c.Params.Drag = 0.05
		}),
	},
	"gas": {
		"dilute": preset("gas", func(c *Config) {
			c.Structure.BodyCount = 20
		}),
		"dense": preset("gas", func(c *Config) {
			c.Structure.BodyCount = 150
		}),
		"compressed": preset("gas", func(c *Config) {
			c.Structure = StructureConfig{BodyCount: 60, Width: 10, Height: 10}
		}),
		"slow_motion": preset("gas", func(c *Config) {
			c.Params.TimeScale = 0.25
		}),
	},
	"orbital": {
		"single": preset("orbital", func(c *Config) {
			c.Structure.BodyCount = 1
		}),
		"solar": preset("orbital", func(c *Config) {
			c.Structure.BodyCount = 5
		}),
		"fast": preset("orbital", func(c *Config) {
			c.Params.TimeScale = 4
		}),
	},
	"electric": {
		"dipole": preset("electric", func(c *Config) {
			c.Structure.BodyCount = 2
		}),
		"quadrupole": preset("electric", func(c *Config) {
			c.Structure.BodyCount = 4
		}),
		"hexapole": preset("electric", func(c *Config) {
			c.Structure.BodyCount = 6
		}),
	},
	"projectile": {
		"classic": preset("collision", func(c *Config) {
			c.Projectile.Speed = 20
			c.Projectile.Angle = 45
		}),
		"cannon": preset("collision", func(c *Config) {
			c.Projectile.Speed = 80
			c.Projectile.Angle = 30
			c.Params.Drag = 0.002
		}),
		"cliff": preset("collision", func(c *Config) {
			c.Projectile.Speed = 15
			c.Projectile.Angle = 0
			c.Projectile.Height = 30
		}),
		"moon": preset("collision", func(c *Config) {
			c.Params.Gravity = 1.62
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(group, name string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	return names
}
