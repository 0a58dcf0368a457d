package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ilc/internal/ilc"
)

const (
	DefaultSystem       = "simple"
	DefaultTrials       = 4
	DefaultAlpha        = 1.0
	DefaultDt           = 0.02
	DefaultDuration     = 1.0
	DefaultDist         = 1.5
	DefaultWeight       = 1e-2
	DefaultIntegrator   = "euler"
	DefaultSeed         = 42
	DefaultPokeStrength = 600.0
	DefaultPokeTime     = 0.5
	DefaultPokeDuration = 0.03
	DefaultDataDir      = "data"
)

// Config collects every knob of a learning run plus the output options.
type Config struct {
	System   string  `yaml:"system"`
	Trials   int     `yaml:"trials"`
	Alpha    float64 `yaml:"alpha"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Dist     float64 `yaml:"dist"`
	Weight   float64 `yaml:"w"`

	Feedback    bool `yaml:"feedback"`
	FeedForward bool `yaml:"feedforward"`
	Noise       bool `yaml:"noise"`
	Filter      bool `yaml:"filter"`
	RelinTime   bool `yaml:"relin_time"`
	RelinIter   bool `yaml:"relin_iter"`

	ThrustDist float64 `yaml:"thrust_dist"`
	DragDist   float64 `yaml:"drag_dist"`
	ModelDrag  bool    `yaml:"model_drag"`

	Poke         bool    `yaml:"poke"`
	PokeStrength float64 `yaml:"poke_strength"`
	PokeTime     float64 `yaml:"poke_time"`
	PokeDuration float64 `yaml:"poke_duration"`

	Integrator string `yaml:"integrator"`
	Seed       int64  `yaml:"seed"`

	Save       bool   `yaml:"save"`
	DataDir    string `yaml:"data_dir"`
	Plot       bool   `yaml:"plot"`
	PlotFbResp bool   `yaml:"plot_fb_resp"`
	Live       bool   `yaml:"live"`
}

// Default returns the baseline configuration: the simple variant, four
// trials of a one second reference, full-step updates.
func Default() *Config {
	return &Config{
		System:       DefaultSystem,
		Trials:       DefaultTrials,
		Alpha:        DefaultAlpha,
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Dist:         DefaultDist,
		Weight:       DefaultWeight,
		RelinTime:    true,
		RelinIter:    true,
		ThrustDist:   1.0,
		Integrator:   DefaultIntegrator,
		Seed:         DefaultSeed,
		PokeStrength: DefaultPokeStrength,
		PokeTime:     DefaultPokeTime,
		PokeDuration: DefaultPokeDuration,
		DataDir:      DefaultDataDir,
	}
}

// Load reads a YAML config file. Missing keys keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and flag combinations before a run is started.
func (c *Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", c.Trials)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %g", c.Alpha)
	}
	if c.Weight < 0 {
		return fmt.Errorf("w must be non-negative, got %g", c.Weight)
	}
	if !c.RelinTime && c.RelinIter {
		return fmt.Errorf("relin_iter requires relin_time")
	}
	if !c.RelinIter && !c.FeedForward {
		return fmt.Errorf("disabling relin_iter requires feedforward")
	}
	if c.Poke {
		if c.PokeDuration <= 0 {
			return fmt.Errorf("poke_duration must be positive, got %g", c.PokeDuration)
		}
		lo := c.PokeTime - c.PokeDuration/2
		hi := c.PokeTime + c.PokeDuration/2
		if lo < 0 || hi > c.Duration {
			return fmt.Errorf("poke window [%g, %g] outside horizon [0, %g]", lo, hi, c.Duration)
		}
	}
	if c.PlotFbResp && !c.Feedback {
		return fmt.Errorf("plot_fb_resp requires feedback")
	}
	switch c.Integrator {
	case "euler", "rk4":
	default:
		return fmt.Errorf("unknown integrator %q (available: euler, rk4)", c.Integrator)
	}
	return nil
}

// Params converts the config into the orchestrator's parameter set. The
// feedback probe is armed whenever its data would be consumed, either by
// the response plot or by the persisted run.
func (c *Config) Params() ilc.Params {
	return ilc.Params{
		System:       c.System,
		Trials:       c.Trials,
		Dt:           c.Dt,
		Duration:     c.Duration,
		Dist:         c.Dist,
		Alpha:        c.Alpha,
		Weight:       c.Weight,
		Feedback:     c.Feedback,
		FeedForward:  c.FeedForward,
		RelinTime:    c.RelinTime,
		RelinIter:    c.RelinIter,
		Noise:        c.Noise,
		Filter:       c.Filter,
		ThrustDist:   c.ThrustDist,
		DragDist:     c.DragDist,
		ModelDrag:    c.ModelDrag,
		Poke:         c.Poke,
		PokeStrength: c.PokeStrength,
		PokeTime:     c.PokeTime,
		PokeDuration: c.PokeDuration,
		Probe:        c.PlotFbResp || c.Save,
		Integrator:   c.Integrator,
		Seed:         c.Seed,
	}
}
