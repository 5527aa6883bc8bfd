package config

import (
	"sort"

	"github.com/san-kum/lorenz/internal/physics"
)

type Preset struct {
	Description string
	Params      physics.Params
}

var Presets = map[string]Preset{
	"chaotic": {
		Description: "classic butterfly attractor",
		Params:      physics.Params{Sigma: 10, Beta: 8.0 / 3.0, Rho: 28},
	},
	"stable": {
		Description: "trajectories spiral into C+ or C-",
		Params:      physics.Params{Sigma: 10, Beta: 8.0 / 3.0, Rho: 14},
	},
	"origin": {
		Description: "every trajectory decays to the origin",
		Params:      physics.Params{Sigma: 10, Beta: 8.0 / 3.0, Rho: 0.5},
	},
	"periodic": {
		Description: "periodic window above the chaotic regime",
		Params:      physics.Params{Sigma: 10, Beta: 8.0 / 3.0, Rho: 99.96},
	},
}

// GetPreset returns the default configuration with the named parameter
// regime applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p.Params
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
