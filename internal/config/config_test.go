package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.System != "simple" {
		t.Errorf("system = %q, want simple", cfg.System)
	}
	if cfg.Trials != 4 {
		t.Errorf("trials = %d, want 4", cfg.Trials)
	}
	if cfg.Dist != 1.5 {
		t.Errorf("dist = %g, want 1.5", cfg.Dist)
	}
	if cfg.Dt != 0.02 {
		t.Errorf("dt = %g, want 0.02", cfg.Dt)
	}
	if cfg.Alpha != 1.0 {
		t.Errorf("alpha = %g, want 1.0", cfg.Alpha)
	}
	if !cfg.RelinTime || !cfg.RelinIter {
		t.Error("relinearization should default to on")
	}
	if cfg.Feedback {
		t.Error("feedback should default to off")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero trials", func(c *Config) { c.Trials = 0 }, true},
		{"negative dt", func(c *Config) { c.Dt = -0.01 }, true},
		{"zero duration", func(c *Config) { c.Duration = 0 }, true},
		{"alpha zero", func(c *Config) { c.Alpha = 0 }, true},
		{"alpha above one", func(c *Config) { c.Alpha = 1.5 }, true},
		{"negative weight", func(c *Config) { c.Weight = -1 }, true},
		{"relin_iter without relin_time", func(c *Config) {
			c.RelinTime = false
		}, true},
		{"no relin_iter without feedforward", func(c *Config) {
			c.RelinIter = false
		}, true},
		{"no relin_iter with feedforward", func(c *Config) {
			c.RelinIter = false
			c.FeedForward = true
		}, false},
		{"frozen operator with feedforward", func(c *Config) {
			c.RelinTime = false
			c.RelinIter = false
			c.FeedForward = true
		}, false},
		{"poke window past horizon", func(c *Config) {
			c.Poke = true
			c.PokeTime = 0.99
			c.PokeDuration = 0.1
		}, true},
		{"poke window before start", func(c *Config) {
			c.Poke = true
			c.PokeTime = 0.01
			c.PokeDuration = 0.1
		}, true},
		{"poke window inside horizon", func(c *Config) {
			c.Poke = true
			c.PokeTime = 0.5
			c.PokeDuration = 0.03
		}, false},
		{"plot_fb_resp without feedback", func(c *Config) {
			c.PlotFbResp = true
		}, true},
		{"plot_fb_resp with feedback", func(c *Config) {
			c.PlotFbResp = true
			c.Feedback = true
		}, false},
		{"unknown integrator", func(c *Config) { c.Integrator = "verlet" }, true},
		{"rk4 integrator", func(c *Config) { c.Integrator = "rk4" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.System = "3d"
	cfg.Trials = 7
	cfg.Feedback = true
	cfg.Weight = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.System != "3d" || loaded.Trials != 7 || !loaded.Feedback {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if loaded.Weight != 0.5 {
		t.Errorf("weight = %g, want 0.5", loaded.Weight)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	data := []byte("system: 2dpos\nalpha: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.System != "2dpos" || cfg.Alpha != 0.5 {
		t.Errorf("explicit keys not applied: %+v", cfg)
	}
	if cfg.Trials != DefaultTrials || cfg.Dt != DefaultDt {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
	if !cfg.RelinTime {
		t.Error("missing relin_time should keep default true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("poke-rejection")
	if cfg == nil {
		t.Fatal("poke-rejection preset should exist")
	}
	if cfg.System != "3d" || !cfg.Poke || !cfg.Feedback {
		t.Errorf("unexpected preset contents: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("got %d names, want %d", len(names), len(Presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q should validate: %v", name, err)
		}
	}
}

func TestParams(t *testing.T) {
	cfg := Default()
	cfg.System = "simple"
	cfg.Feedback = true
	cfg.PlotFbResp = true

	p := cfg.Params()
	if p.System != "simple" || p.Trials != cfg.Trials || p.Dt != cfg.Dt {
		t.Errorf("params lost fields: %+v", p)
	}
	if !p.Probe {
		t.Error("plot_fb_resp should arm the probe")
	}

	cfg.PlotFbResp = false
	cfg.Save = true
	if !cfg.Params().Probe {
		t.Error("save should arm the probe")
	}

	cfg.Save = false
	if cfg.Params().Probe {
		t.Error("probe should be off when nothing consumes it")
	}
}
