package sim

import (
	"math"
	"math/rand"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/fluid"
)

// Emitter injects a fixed amount of density and velocity at one cell while
// its tick window is open.
type Emitter struct {
	cfg config.Emitter
	rng *rand.Rand
}

// NewEmitter builds an emitter. rng drives direction jitter and may be nil
// when e.Jitter is zero.
func NewEmitter(e config.Emitter, rng *rand.Rand) *Emitter {
	return &Emitter{cfg: e, rng: rng}
}

func (e *Emitter) Active(tick int) bool {
	if tick < e.cfg.Start {
		return false
	}
	return e.cfg.Stop == 0 || tick < e.cfg.Stop
}

func (e *Emitter) Apply(f *fluid.Fluid, tick int) {
	if !e.Active(tick) {
		return
	}
	x, y := e.cfg.X, e.cfg.Y
	if x < 0 || x >= f.Width() || y < 0 || y >= f.Height() {
		return
	}

	dx, dy := e.cfg.DX, e.cfg.DY
	if e.cfg.Jitter != 0 && e.rng != nil {
		a := (e.rng.Float64()*2 - 1) * e.cfg.Jitter
		s, c := math.Sincos(a)
		dx, dy = dx*c-dy*s, dx*s+dy*c
	}

	if e.cfg.Density != 0 {
		f.AddDensity(x, y, e.cfg.Density)
	}
	if dx != 0 || dy != 0 {
		f.AddVelocity(x, y, dx, dy)
	}
}

// EmittersFromConfig builds every configured emitter. All of them draw
// from one source seeded with cfg.Seed, so a run is reproducible.
func EmittersFromConfig(cfg *config.Config) []Source {
	rng := rand.New(rand.NewSource(cfg.Seed))
	out := make([]Source, 0, len(cfg.Emitters))
	for _, e := range cfg.Emitters {
		out = append(out, NewEmitter(e, rng))
	}
	return out
}
