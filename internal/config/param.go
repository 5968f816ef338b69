package config

import (
	"fmt"
	"math"
	"sort"
)

// paramSetters are the numeric settings that sweeps and searches may vary.
var paramSetters = map[string]func(c *Config, v float64){
	"diffusion":           func(c *Config, v float64) { c.Diffusion = v },
	"viscosity":           func(c *Config, v float64) { c.Viscosity = v },
	"dt":                  func(c *Config, v float64) { c.Dt = v },
	"iterations":          func(c *Config, v float64) { c.Iterations = int(math.Round(v)) },
	"pressure_iterations": func(c *Config, v float64) { c.Projection.Iterations = int(math.Round(v)) },
	"project_passes":      func(c *Config, v float64) { c.Projection.Passes = int(math.Round(v)) },
}

// SetParam assigns a tunable setting by name. Integer settings are rounded.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := paramSetters[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q (want one of %v)", ErrInvalid, name, ParamNames())
	}
	set(c, v)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(paramSetters))
	for name := range paramSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
