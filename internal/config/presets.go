package config

import "sort"

var Presets = map[string]*Config{
	// The 16x16 reference setup: one puff of density pushed in +x.
	"original": {
		Grid: GridConfig{Width: 16, Height: 16}, Diffusion: 0.1, Viscosity: 0.001, Iterations: 20,
		Projection: ProjectionConfig{Iterations: 20, Passes: 20},
		Dt:         1.0 / 60, Ticks: 120, FrameEvery: 1,
		Emitters: []Emitter{
			{Name: "puff", X: 8, Y: 8, Density: 0.2, DX: 1, Start: 0, Stop: 1},
		},
		Render: RenderConfig{Scale: 32, Theme: "smoke"},
		Server: ServerConfig{Addr: DefaultAddr, FPS: 60},
	},
	"plume": {
		Grid: GridConfig{Width: 64, Height: 64}, Diffusion: 0.0001, Viscosity: 0.0001, Iterations: 20,
		Projection: ProjectionConfig{Enabled: true, Iterations: 20, Passes: 4},
		Dt:         1.0 / 60, Ticks: 600, FrameEvery: 10,
		Emitters: []Emitter{
			{Name: "vent", X: 32, Y: 58, Density: 1.0, DY: -2, Jitter: 0.3},
		},
		Render: RenderConfig{Scale: 8, Theme: "ember"},
		Server: ServerConfig{Addr: DefaultAddr, FPS: 30},
	},
	"jet": {
		Grid: GridConfig{Width: 96, Height: 48}, Diffusion: 0.00005, Viscosity: 0.0001, Iterations: 20,
		Projection: ProjectionConfig{Enabled: true, Iterations: 20, Passes: 2},
		Dt:         1.0 / 60, Ticks: 480, FrameEvery: 8,
		Emitters: []Emitter{
			{Name: "nozzle", X: 3, Y: 24, Density: 0.8, DX: 4, Jitter: 0.05},
		},
		Render: RenderConfig{Scale: 6, Theme: "ink"},
		Server: ServerConfig{Addr: DefaultAddr, FPS: 30},
	},
	"crossflow": {
		Grid: GridConfig{Width: 64, Height: 64}, Diffusion: 0.0001, Viscosity: 0.0002, Iterations: 20,
		Projection: ProjectionConfig{Enabled: true, Iterations: 20, Passes: 4},
		Dt:         1.0 / 60, Ticks: 600, FrameEvery: 10,
		Emitters: []Emitter{
			{Name: "west", X: 6, Y: 32, Density: 0.6, DX: 3},
			{Name: "south", X: 32, Y: 57, Density: 0.6, DY: -3, Start: 60},
		},
		Render: RenderConfig{Scale: 8, Theme: "aurora"},
		Server: ServerConfig{Addr: DefaultAddr, FPS: 30},
	},
	"calm": {
		Grid: GridConfig{Width: 32, Height: 32}, Diffusion: 0.001, Viscosity: 0, Iterations: 20,
		Projection: ProjectionConfig{Iterations: 20, Passes: 1},
		Dt:         1.0 / 30, Ticks: 300, FrameEvery: 5,
		Emitters: []Emitter{
			{Name: "drop", X: 16, Y: 16, Density: 5, Stop: 1},
		},
		Render: RenderConfig{Scale: 16, Theme: "phosphor"},
		Server: ServerConfig{Addr: DefaultAddr, FPS: 30},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
