package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/metrics"
)

// Runner drives one Fluid through a fixed number of ticks. It owns the
// fluid for the duration of Run.
type Runner struct {
	fluid     *fluid.Fluid
	sources   []Source
	metrics   []Metric
	observers []Observer
	probe     metrics.Probe
}

func New(f *fluid.Fluid, sources ...Source) *Runner {
	return &Runner{
		fluid:     f,
		sources:   sources,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

// FromConfig builds a fresh fluid with the configured emitters and the
// standard metric set.
func FromConfig(cfg *config.Config) (*Runner, error) {
	f, err := fluid.New(cfg.Params())
	if err != nil {
		return nil, err
	}
	r := New(f, EmittersFromConfig(cfg)...)
	r.AddMetric(metrics.NewMass())
	r.AddMetric(metrics.NewPeak())
	r.AddMetric(metrics.NewKineticEnergy())
	r.AddMetric(metrics.NewDivergence())
	return r, nil
}

// ConfigFrom extracts the run settings from a file config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{Dt: cfg.Dt, Ticks: cfg.Ticks, FrameEvery: cfg.FrameEvery, ValidateState: true}
}

func (r *Runner) Fluid() *fluid.Fluid { return r.fluid }

func (r *Runner) AddSource(s Source)     { r.sources = append(r.sources, s) }
func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		Series:  make([]Sample, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
	}
	if cfg.FrameEvery > 0 {
		result.Frames = make([]Frame, 0, cfg.Ticks/cfg.FrameEvery+1)
		result.Frames = append(result.Frames, r.frame(0, 0))
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	finish := func() {
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
		result.Elapsed = time.Since(start)
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			finish()
			return result, ctx.Err()
		default:
		}

		for _, s := range r.sources {
			s.Apply(r.fluid, i)
		}
		r.fluid.Step(cfg.Dt)

		tick := i + 1
		t := float64(tick) * cfg.Dt
		result.Ticks = tick

		if cfg.ValidateState && !r.fluid.Valid() {
			finish()
			return result, &StepError{Tick: tick, Time: t, Err: fluid.ErrNonFinite}
		}

		s := r.probe.Measure(r.fluid)
		for _, m := range r.metrics {
			m.Observe(s, tick)
		}
		for _, obs := range r.observers {
			obs.OnTick(r.fluid, tick, t)
		}

		result.Series = append(result.Series, Sample{
			Tick: tick, Time: t,
			Mass: s.Mass, Peak: s.Peak, Energy: s.Energy, Divergence: s.Divergence,
		})

		if cfg.FrameEvery > 0 && tick%cfg.FrameEvery == 0 {
			result.Frames = append(result.Frames, r.frame(tick, t))
		}
	}

	finish()
	return result, nil
}

func (r *Runner) frame(tick int, t float64) Frame {
	return Frame{
		Tick:    tick,
		Time:    t,
		W:       r.fluid.Width(),
		H:       r.fluid.Height(),
		Density: r.fluid.DensityValues(nil),
	}
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.FrameEvery < 0 {
		return fmt.Errorf("frame interval must not be negative, got %d", cfg.FrameEvery)
	}
	return nil
}
