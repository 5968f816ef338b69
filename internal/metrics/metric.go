package metrics

import "math"

// Mass reports the total density at the last observed tick.
type Mass struct {
	last float64
}

func NewMass() *Mass { return &Mass{} }

func (m *Mass) Name() string { return "mass" }

func (m *Mass) Observe(s Summary, tick int) { m.last = s.Mass }

func (m *Mass) Value() float64 { return m.last }
func (m *Mass) Reset()         { m.last = 0 }

// Peak reports the highest single-cell density seen over the run.
type Peak struct {
	max  float64
	seen bool
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(s Summary, tick int) {
	if !p.seen || s.Peak > p.max {
		p.max = s.Peak
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}

// KineticEnergy averages ½Σ(u²+v²) over observed ticks.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(s Summary, tick int) {
	k.total += s.Energy
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// Divergence reports the worst RMS divergence seen over the run.
type Divergence struct {
	worst float64
}

func NewDivergence() *Divergence { return &Divergence{} }

func (d *Divergence) Name() string { return "divergence" }

func (d *Divergence) Observe(s Summary, tick int) {
	d.worst = math.Max(d.worst, s.Divergence)
}

func (d *Divergence) Value() float64 { return d.worst }
func (d *Divergence) Reset()         { d.worst = 0 }
