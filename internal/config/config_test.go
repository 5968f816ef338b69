package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Width != DefaultWidth || cfg.Grid.Height != DefaultHeight {
		t.Errorf("expected %dx%d grid, got %dx%d", DefaultWidth, DefaultHeight, cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if err := GetPreset(name).Validate(); err != nil {
				t.Errorf("preset %s: %v", name, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("original")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Grid.Width != 16 || cfg.Diffusion != 0.1 || cfg.Viscosity != 0.001 {
		t.Errorf("unexpected original preset: %+v", cfg)
	}
	if cfg.Projection.Enabled {
		t.Error("original preset should run without projection")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("plume")
	a.Emitters[0].X = 1
	a.Grid.Width = 3

	b := GetPreset("plume")
	if b.Emitters[0].X == 1 || b.Grid.Width == 3 {
		t.Error("mutating a preset copy changed the registry")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.Grid.Width = 2 }},
		{"negative diffusion", func(c *Config) { c.Diffusion = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }},
		{"negative frame interval", func(c *Config) { c.FrameEvery = -1 }},
		{"emitter out of range", func(c *Config) { c.Emitters[0].X = c.Grid.Width }},
		{"emitter empty window", func(c *Config) { c.Emitters[0].Start, c.Emitters[0].Stop = 5, 5 }},
		{"nan emitter velocity", func(c *Config) { c.Emitters[0].DX = math.NaN() }},
		{"inf emitter density", func(c *Config) { c.Emitters[0].Density = math.Inf(1) }},
		{"nan emitter jitter", func(c *Config) { c.Emitters[0].Jitter = math.NaN() }},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }},
		{"zero fps", func(c *Config) { c.Server.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParams(t *testing.T) {
	cfg := GetPreset("jet")
	p := cfg.Params()
	if p.Width != 96 || p.Height != 48 {
		t.Errorf("expected 96x48, got %dx%d", p.Width, p.Height)
	}
	if !p.Project || p.ProjectPasses != 2 || p.PressureIterations != 20 {
		t.Errorf("projection settings not mapped: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("mapped params should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluid.yaml")
	cfg := GetPreset("crossflow")
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 99 || len(loaded.Emitters) != 2 || loaded.Emitters[1].Start != 60 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOverKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.02\ngrid:\n  width: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base := GetPreset("plume")

	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("LoadOver: %v", err)
	}
	if cfg.Dt != 0.02 || cfg.Grid.Width != 40 {
		t.Errorf("file values not applied: dt=%g width=%d", cfg.Dt, cfg.Grid.Width)
	}
	if cfg.Grid.Height != base.Grid.Height || cfg.Ticks != base.Ticks {
		t.Error("keys absent from the file should keep the base values")
	}
	if len(cfg.Emitters) != len(base.Emitters) || cfg.Emitters[0].Name != "vent" {
		t.Error("emitters should come from the base")
	}
	if base.Dt == 0.02 {
		t.Error("base must not be modified")
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("viscosity", 0.25); err != nil {
		t.Fatal(err)
	}
	if cfg.Viscosity != 0.25 {
		t.Errorf("viscosity = %g, want 0.25", cfg.Viscosity)
	}
	if err := cfg.SetParam("iterations", 7.6); err != nil {
		t.Fatal(err)
	}
	if cfg.Iterations != 8 {
		t.Errorf("iterations = %d, want 8", cfg.Iterations)
	}
	if err := cfg.SetParam("gravity", 1); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown name, got %v", err)
	}
	if len(ParamNames()) != 6 {
		t.Errorf("expected 6 parameter names, got %v", ParamNames())
	}
}
