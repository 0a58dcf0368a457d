package config

import "sort"

// Presets are ready-made configurations for common experiments. Each one
// is complete: applying a preset replaces the whole config.
var Presets = map[string]*Config{
	"baseline": {
		System:     "simple",
		Trials:     4,
		Alpha:      1.0,
		Dt:         0.02,
		Duration:   1.0,
		Dist:       1.5,
		Weight:     1e-2,
		RelinTime:  true,
		RelinIter:  true,
		ThrustDist: 1.0,
		Integrator: "euler",
		Seed:       DefaultSeed,
		DataDir:    DefaultDataDir,
	},
	"disturbed": {
		System:      "2dpos",
		Trials:      8,
		Alpha:       1.0,
		Dt:          0.02,
		Duration:    1.0,
		Dist:        1.0,
		Weight:      1e-2,
		Feedback:    true,
		FeedForward: true,
		RelinTime:   true,
		RelinIter:   true,
		ThrustDist:  1.1,
		DragDist:    0.2,
		Integrator:  "euler",
		Seed:        DefaultSeed,
		DataDir:     DefaultDataDir,
	},
	"poke-rejection": {
		System:       "3d",
		Trials:       6,
		Alpha:        1.0,
		Dt:           0.02,
		Duration:     1.0,
		Dist:         1.0,
		Weight:       1e-2,
		Feedback:     true,
		RelinTime:    true,
		RelinIter:    true,
		ThrustDist:   1.0,
		Poke:         true,
		PokeStrength: DefaultPokeStrength,
		PokeTime:     DefaultPokeTime,
		PokeDuration: DefaultPokeDuration,
		Integrator:   "euler",
		Seed:         DefaultSeed,
		DataDir:      DefaultDataDir,
	},
	"flat3d": {
		System:      "3ddedi",
		Trials:      6,
		Alpha:       1.0,
		Dt:          0.02,
		Duration:    1.0,
		Dist:        1.0,
		Weight:      1e-2,
		Feedback:    true,
		FeedForward: true,
		RelinTime:   true,
		RelinIter:   true,
		ThrustDist:  1.0,
		Integrator:  "rk4",
		Seed:        DefaultSeed,
		DataDir:     DefaultDataDir,
	},
	"noisy": {
		System:     "simple",
		Trials:     10,
		Alpha:      0.8,
		Dt:         0.02,
		Duration:   1.0,
		Dist:       1.0,
		Weight:     1e-2,
		Noise:      true,
		Filter:     true,
		RelinTime:  true,
		RelinIter:  true,
		ThrustDist: 1.0,
		Integrator: "euler",
		Seed:       DefaultSeed,
		DataDir:    DefaultDataDir,
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
