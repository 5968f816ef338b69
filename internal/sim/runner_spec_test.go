package sim_test

import (
	"context"
	"time"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Runner", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.GetPreset("crossflow")
		cfg.Grid = config.GridConfig{Width: 24, Height: 24}
		cfg.Emitters = []config.Emitter{
			{Name: "west", X: 3, Y: 12, Density: 0.5, DX: 2},
			{Name: "south", X: 12, Y: 20, Density: 0.5, DY: -2, Start: 4},
		}
		cfg.Ticks = 20
		cfg.FrameEvery = 5
		Expect(cfg.Validate()).To(Succeed())
	})

	It("records a sample per tick and frames on the configured interval", func() {
		r, err := sim.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())

		result, err := r.Run(context.Background(), sim.ConfigFrom(cfg))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Series).To(HaveLen(20))
		Expect(result.Frames).To(HaveLen(5))
		Expect(result.Elapsed).To(BeNumerically(">", time.Duration(0)))

		last, ok := result.LastFrame()
		Expect(ok).To(BeTrue())
		Expect(last.Tick).To(Equal(20))
		Expect(last.Density).To(HaveLen(24 * 24))
	})

	It("keeps the divergence bounded with projection on", func() {
		r, err := sim.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())

		result, err := r.Run(context.Background(), sim.ConfigFrom(cfg))
		Expect(err).NotTo(HaveOccurred())
		for _, s := range result.Series {
			Expect(s.Mass).To(BeNumerically(">", 0))
			Expect(s.Divergence).To(BeNumerically("<", 10))
		}
	})

	It("is reproducible for a fixed seed", func() {
		cfg.Emitters[0].Jitter = 0.4
		cfg.Seed = 7

		run := func() []float64 {
			r, err := sim.FromConfig(cfg)
			Expect(err).NotTo(HaveOccurred())
			result, err := r.Run(context.Background(), sim.ConfigFrom(cfg))
			Expect(err).NotTo(HaveOccurred())
			last, _ := result.LastFrame()
			return last.Density
		}
		Expect(run()).To(Equal(run()))
	})

	It("stops early when the context is already cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r, err := sim.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())
		result, err := r.Run(ctx, sim.ConfigFrom(cfg))
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Ticks).To(BeZero())
		Expect(result.Frames).To(HaveLen(1))
	})
})
