// Package gui is the raylib window viewer. Holding the left mouse button
// paints density and drags velocity through the cell under the cursor.
package gui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/metrics"
	"github.com/san-kum/stablefluid/internal/sim"
)

const (
	brushDensity  = 0.2
	dragDivisor   = 10.0
	hudHeight     = 28
	targetFPS     = 60
	windowTitle   = "stablefluid"
	hudFontSize   = 14
	hudPadding    = 8
	hudStatsEvery = 15
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

type App struct {
	Fluid   *fluid.Fluid
	Sources []sim.Source
	Name    string
	Dt      float64
	Scale   int
	Tick    int
	Running bool

	probe metrics.Probe
	stats metrics.Summary
	log   *slog.Logger
}

func NewApp(name string, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := fluid.New(cfg.Params())
	if err != nil {
		return nil, err
	}
	return &App{
		Fluid:   f,
		Sources: sim.EmittersFromConfig(cfg),
		Name:    name,
		Dt:      cfg.Dt,
		Scale:   cfg.Render.Scale,
		Running: true,
		log:     slog.With("component", "gui", "preset", name),
	}, nil
}

// Run opens a window sized to the grid and blocks until it is closed.
func Run(name string, cfg *config.Config) error {
	app, err := NewApp(name, cfg)
	if err != nil {
		return err
	}
	w := int32(app.Fluid.Width() * app.Scale)
	h := int32(app.Fluid.Height()*app.Scale + hudHeight)

	rl.InitWindow(w, h, windowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	app.log.Info("window opened", "width", w, "height", h)
	app.RunLoop()
	app.log.Info("window closed", "ticks", app.Tick)
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyP):
		p := !a.Fluid.Params().Project
		a.Fluid.SetProjection(p)
		a.log.Info("projection toggled", "enabled", p)
	case rl.IsKeyPressed(rl.KeyR):
		a.reset()
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		delta := rl.GetMouseDelta()
		a.Paint(pos.X, pos.Y, delta.X, delta.Y)
	}

	if a.Running {
		a.Advance()
	}
}

// Paint injects brush density and velocity delta/10 at the cell under the
// pixel (px, py). Pixels outside the grid are ignored.
func (a *App) Paint(px, py, dx, dy float32) bool {
	x, y, ok := cellAt(px, py, a.Scale, a.Fluid.Width(), a.Fluid.Height())
	if !ok {
		return false
	}
	a.Fluid.AddDensity(x, y, brushDensity)
	a.Fluid.AddVelocity(x, y, float64(dx)/dragDivisor, float64(dy)/dragDivisor)
	return true
}

// Advance applies sources and steps once. A non-finite state is logged
// and cleared.
func (a *App) Advance() {
	for _, s := range a.Sources {
		s.Apply(a.Fluid, a.Tick)
	}
	a.Fluid.Step(a.Dt)
	a.Tick++

	if !a.Fluid.Valid() {
		a.log.Warn("non-finite state, resetting", "tick", a.Tick)
		a.reset()
		return
	}
	if a.Tick%hudStatsEvery == 0 {
		a.stats = a.probe.Measure(a.Fluid)
	}
}

func (a *App) reset() {
	a.Fluid.Reset()
	a.Tick = 0
	a.stats = metrics.Summary{}
}

// cellAt maps a window pixel to a grid cell by integer division.
func cellAt(px, py float32, scale, w, h int) (x, y int, ok bool) {
	if px < 0 || py < 0 || scale <= 0 {
		return 0, 0, false
	}
	x, y = int(px)/scale, int(py)/scale
	if x >= w || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

func (a *App) hudLine() string {
	proj := "off"
	if a.Fluid.Params().Project {
		proj = "on"
	}
	return fmt.Sprintf("%s  t=%d  mass=%.3f  peak=%.3f  div=%.2e  proj=%s",
		a.Name, a.Tick, a.stats.Mass, a.stats.Peak, a.stats.Divergence, proj)
}
