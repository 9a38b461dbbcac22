package config

// Presets are named variations of the default outbreak.
var Presets = map[string]func() *Config{
	"baseline": DefaultConfig,
	"lockdown": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "lockdown"
		cfg.Behavior.MovementRatio = 0.05
		return cfg
	},
	"mass_testing": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "mass_testing"
		cfg.Behavior.TestRatio = 0.95
		return cfg
	},
	"no_testing": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "no_testing"
		cfg.Behavior.TestRatio = 0
		return cfg
	},
	"crowded_households": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "crowded_households"
		cfg.Population.ExpectedHouseholdSize = 5
		return cfg
	},
	"superspreading": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "superspreading"
		cfg.Behavior.MovementRatio = 0.5
		cfg.Behavior.ContactRatio = 4
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
