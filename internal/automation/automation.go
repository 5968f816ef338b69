// Package automation runs batches of fluid simulations: scripted scenarios
// loaded from YAML and one-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/sim"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides named
// parameters before running.
type ScenarioStep struct {
	Preset  string             `yaml:"preset"`
	Ticks   int                `yaml:"ticks"`
	Project *bool              `yaml:"project"`
	Params  map[string]float64 `yaml:"params"`
	SaveAs  string             `yaml:"save_as"`
}

// StepResult pairs a step's effective config with its result.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config builds the effective configuration of one step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Project != nil {
		cfg.Projection.Enabled = *s.Project
	}
	for name, v := range s.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		result, err := runOnce(ctx, cfg, true)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep varies one named parameter linearly over [Min, Max].
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
	// Stable is false when the run produced a non-finite state.
	Stable bool
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		v := sweep.Min + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		result, err := runOnce(ctx, cfg, false)
		if err != nil && ctx.Err() != nil {
			return nil, err
		}

		sr := SweepResult{Value: v, Stable: err == nil}
		if err == nil {
			sr.Metrics = result.Metrics
		} else {
			slog.Warn("sweep run diverged", "param", sweep.Param, "value", v, "err", err)
		}
		results = append(results, sr)

		slog.Debug("sweep", "step", i+1, "of", sweep.NumSteps, "param", sweep.Param, "value", v)
	}

	return results, nil
}

// SweepStats counts stable and unstable runs.
func SweepStats(results []SweepResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func runOnce(ctx context.Context, cfg *config.Config, frames bool) (*sim.Result, error) {
	r, err := sim.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	runCfg := sim.ConfigFrom(cfg)
	if !frames {
		runCfg.FrameEvery = 0
	}
	return r.Run(ctx, runCfg)
}
