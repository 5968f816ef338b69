package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/stablefluid/internal/fluid"
)

func newFluid(t *testing.T, project bool) *fluid.Fluid {
	t.Helper()
	f, err := fluid.New(fluid.Params{Width: 8, Height: 8, Diffusion: 0.01, Viscosity: 0.01, Project: project})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return f
}

func TestMeasureInjected(t *testing.T) {
	f := newFluid(t, false)
	f.AddDensity(2, 3, 0.5)
	f.AddDensity(5, 5, 1.5)
	f.AddVelocity(4, 4, 3, 4)

	s := Measure(f)
	if s.Mass != 2 {
		t.Errorf("expected mass 2, got %f", s.Mass)
	}
	if s.Peak != 1.5 {
		t.Errorf("expected peak 1.5, got %f", s.Peak)
	}
	if s.Energy != 12.5 {
		t.Errorf("expected energy 12.5, got %f", s.Energy)
	}
	if s.Divergence <= 0 {
		t.Error("a point source of velocity should be divergent")
	}
}

func TestMeasureZeroField(t *testing.T) {
	s := Measure(newFluid(t, false))
	if s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestUniformFlowHasNoInteriorDivergence(t *testing.T) {
	f := newFluid(t, false)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			f.AddVelocity(x, y, 0.5, 0.5)
		}
	}
	if d := Measure(f).Divergence; d != 0 {
		t.Errorf("expected zero divergence, got %g", d)
	}
}

func TestRMS(t *testing.T) {
	got := rms([]float64{3, -4, 0, 0})
	if math.Abs(got-2.5) > 1e-12 {
		t.Errorf("expected 2.5, got %f", got)
	}
	if rms(nil) != 0 {
		t.Error("expected 0 for empty input")
	}
}

func TestMetricsAccumulate(t *testing.T) {
	f := newFluid(t, true)
	mass, peak, ke, div := NewMass(), NewPeak(), NewKineticEnergy(), NewDivergence()

	f.AddDensity(4, 4, 2)
	f.AddVelocity(4, 4, 1, 0)
	for tick := 0; tick < 3; tick++ {
		s := Measure(f)
		for _, m := range []interface {
			Observe(Summary, int)
		}{mass, peak, ke, div} {
			m.Observe(s, tick)
		}
		f.Step(0.05)
	}

	if peak.Value() != 2 {
		t.Errorf("expected peak 2 from the first observation, got %f", peak.Value())
	}
	if mass.Value() <= 0 {
		t.Errorf("expected positive mass, got %f", mass.Value())
	}
	if ke.Value() <= 0 {
		t.Error("expected positive mean kinetic energy")
	}
	if div.Value() <= 0 {
		t.Error("expected positive worst divergence")
	}

	for _, m := range []interface {
		Reset()
		Value() float64
	}{mass, peak, ke, div} {
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("expected 0 after reset, got %f", m.Value())
		}
	}
}

func TestPeakSeedsFromFirstObservation(t *testing.T) {
	p := NewPeak()
	p.Observe(Summary{Peak: -0.5}, 1)
	p.Observe(Summary{Peak: -0.75}, 2)
	if p.Value() != -0.5 {
		t.Errorf("expected peak -0.5 for a drained field, got %f", p.Value())
	}

	p.Reset()
	p.Observe(Summary{Peak: -2}, 1)
	if p.Value() != -2 {
		t.Errorf("expected reset to forget the previous peak, got %f", p.Value())
	}
}

func TestNames(t *testing.T) {
	names := map[string]bool{}
	for _, n := range []string{NewMass().Name(), NewPeak().Name(), NewKineticEnergy().Name(), NewDivergence().Name()} {
		if names[n] {
			t.Errorf("duplicate metric name %q", n)
		}
		names[n] = true
	}
}
