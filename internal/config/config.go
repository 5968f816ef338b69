package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stablefluid/internal/fluid"
)

const (
	DefaultWidth      = 64
	DefaultHeight     = 64
	DefaultDiffusion  = 0.0001
	DefaultViscosity  = 0.0001
	DefaultDt         = 1.0 / 60
	DefaultTicks      = 300
	DefaultFrameEvery = 10
	DefaultScale      = 8
	DefaultAddr       = ":8080"
	DefaultFPS        = 30
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Diffusion  float64          `yaml:"diffusion"`
	Viscosity  float64          `yaml:"viscosity"`
	Iterations int              `yaml:"iterations"`
	Projection ProjectionConfig `yaml:"projection"`
	Dt         float64          `yaml:"dt"`
	Ticks      int              `yaml:"ticks"`
	Seed       int64            `yaml:"seed"`
	FrameEvery int              `yaml:"frame_every"`
	Emitters   []Emitter        `yaml:"emitters"`
	Render     RenderConfig     `yaml:"render"`
	Server     ServerConfig     `yaml:"server"`
}

type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ProjectionConfig struct {
	Enabled    bool `yaml:"enabled"`
	Iterations int  `yaml:"iterations"`
	Passes     int  `yaml:"passes"`
}

// Emitter injects density and velocity at one cell on every tick in
// [Start, Stop). Stop 0 keeps it running for the whole run. Jitter is the
// maximum rotation in radians applied to (DX, DY) each tick.
type Emitter struct {
	Name    string  `yaml:"name"`
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Density float64 `yaml:"density"`
	DX      float64 `yaml:"dx"`
	DY      float64 `yaml:"dy"`
	Start   int     `yaml:"start"`
	Stop    int     `yaml:"stop"`
	Jitter  float64 `yaml:"jitter"`
}

type RenderConfig struct {
	Scale int    `yaml:"scale"`
	Theme string `yaml:"theme"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid:       GridConfig{Width: DefaultWidth, Height: DefaultHeight},
		Diffusion:  DefaultDiffusion,
		Viscosity:  DefaultViscosity,
		Iterations: fluid.DefaultIterations,
		Projection: ProjectionConfig{
			Enabled:    true,
			Iterations: fluid.DefaultIterations,
			Passes:     4,
		},
		Dt:         DefaultDt,
		Ticks:      DefaultTicks,
		FrameEvery: DefaultFrameEvery,
		Emitters: []Emitter{
			{Name: "source", X: DefaultWidth / 2, Y: DefaultHeight - 8, Density: 0.5, DY: -1.5},
		},
		Render: RenderConfig{Scale: DefaultScale, Theme: "smoke"},
		Server: ServerConfig{Addr: DefaultAddr, FPS: DefaultFPS},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the file
// keep base's values. A file that lists emitters replaces base's emitters.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Emitters = append([]Emitter(nil), c.Emitters...)
	return &cp
}

func (c *Config) Validate() error {
	if c.Grid.Width < 3 || c.Grid.Height < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if !finiteNonNegative(c.Diffusion) || !finiteNonNegative(c.Viscosity) {
		return fmt.Errorf("%w: diffusion and viscosity must be finite and non-negative", ErrInvalid)
	}
	if c.Iterations < 0 || c.Projection.Iterations < 0 || c.Projection.Passes < 0 {
		return fmt.Errorf("%w: iteration counts must not be negative", ErrInvalid)
	}
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalid, c.Ticks)
	}
	if c.FrameEvery < 0 {
		return fmt.Errorf("%w: frame_every must not be negative", ErrInvalid)
	}
	for i, e := range c.Emitters {
		if e.X < 0 || e.X >= c.Grid.Width || e.Y < 0 || e.Y >= c.Grid.Height {
			return fmt.Errorf("%w: emitter %d (%s) at (%d,%d) outside %dx%d grid",
				ErrInvalid, i, e.Name, e.X, e.Y, c.Grid.Width, c.Grid.Height)
		}
		if e.Start < 0 || e.Stop < 0 || (e.Stop > 0 && e.Stop <= e.Start) {
			return fmt.Errorf("%w: emitter %d (%s) has empty tick window [%d,%d)", ErrInvalid, i, e.Name, e.Start, e.Stop)
		}
		if !finite(e.Density, e.DX, e.DY, e.Jitter) {
			return fmt.Errorf("%w: emitter %d (%s) has a non-finite amount", ErrInvalid, i, e.Name)
		}
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%w: render scale must be positive", ErrInvalid)
	}
	if c.Server.FPS <= 0 {
		return fmt.Errorf("%w: server fps must be positive", ErrInvalid)
	}
	return nil
}

// Params maps the solver-facing fields onto fluid.Params.
func (c *Config) Params() fluid.Params {
	return fluid.Params{
		Width:              c.Grid.Width,
		Height:             c.Grid.Height,
		Diffusion:          c.Diffusion,
		Viscosity:          c.Viscosity,
		Iterations:         c.Iterations,
		Project:            c.Projection.Enabled,
		PressureIterations: c.Projection.Iterations,
		ProjectPasses:      c.Projection.Passes,
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
