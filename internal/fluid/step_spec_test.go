package fluid_test

import (
	"github.com/san-kum/stablefluid/internal/fluid"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func snapshot(r interface {
	Width() int
	Height() int
	At(x, y int) float64
}) []float64 {
	out := make([]float64, 0, r.Width()*r.Height())
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			out = append(out, r.At(x, y))
		}
	}
	return out
}

var _ = Describe("Fluid", func() {
	var (
		f      *fluid.Fluid
		params fluid.Params
	)

	JustBeforeEach(func() {
		var err error
		f, err = fluid.New(params)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with invalid parameters", func() {
		It("rejects a grid without interior cells", func() {
			_, err := fluid.New(fluid.Params{Width: 2, Height: 2})
			Expect(err).To(MatchError(fluid.ErrInvalidParams))
		})
	})

	Context("without projection", func() {
		BeforeEach(func() {
			params = fluid.Params{Width: 16, Height: 16, Diffusion: 0.1, Viscosity: 0.001}
		})

		It("reads an injection back exactly before any step", func() {
			f.AddDensity(4, 9, 0.125)
			Expect(f.Density().At(4, 9)).To(Equal(0.125))
		})

		It("leaves every field unchanged for a zero time step", func() {
			f.AddDensity(8, 8, 0.5)
			f.AddVelocity(8, 8, 1, -1)
			f.AddVelocity(3, 12, 0.25, 0.5)
			d, u, v := snapshot(f.Density()), snapshot(f.VelocityX()), snapshot(f.VelocityY())

			f.Step(0)

			Expect(snapshot(f.Density())).To(Equal(d))
			Expect(snapshot(f.VelocityX())).To(Equal(u))
			Expect(snapshot(f.VelocityY())).To(Equal(v))
		})

		It("spreads density away from the injection cell", func() {
			f.AddDensity(8, 8, 0.2)
			f.Step(1.0 / 60)

			Expect(f.Density().At(8, 8)).To(BeNumerically("<", 0.2))
			Expect(f.Density().At(8, 7)).To(BeNumerically(">", 0))
			Expect(f.Density().At(8, 9)).To(BeNumerically(">", 0))
		})
	})

	Context("with zero rates and no velocity", func() {
		BeforeEach(func() {
			params = fluid.Params{Width: 10, Height: 8}
		})

		It("keeps density where it was injected", func() {
			f.AddDensity(5, 4, 1)
			for i := 0; i < 10; i++ {
				f.Step(0.1)
			}
			Expect(f.Density().At(5, 4)).To(Equal(1.0))
			Expect(f.Density().At(4, 4)).To(BeZero())
		})
	})

	Context("with projection", func() {
		BeforeEach(func() {
			params = fluid.Params{Width: 16, Height: 16, Viscosity: 0.0001, Project: true, ProjectPasses: 2}
		})

		It("zeroes the velocity normal to each wall", func() {
			f.AddVelocity(1, 8, -3, 0)
			f.AddVelocity(14, 8, 3, 0)
			f.AddVelocity(8, 1, 0, -3)
			f.AddVelocity(8, 14, 0, 3)
			f.Step(1.0 / 60)

			for i := 0; i < 16; i++ {
				Expect(f.VelocityX().At(0, i)).To(BeZero())
				Expect(f.VelocityX().At(15, i)).To(BeZero())
				Expect(f.VelocityY().At(i, 0)).To(BeZero())
				Expect(f.VelocityY().At(i, 15)).To(BeZero())
			}
			Expect(f.Valid()).To(BeTrue())
		})

		It("produces identical state from identical input", func() {
			other, err := fluid.New(params)
			Expect(err).NotTo(HaveOccurred())

			for _, s := range []*fluid.Fluid{f, other} {
				s.AddDensity(6, 6, 1)
				s.AddVelocity(6, 6, 2, 1)
				s.Step(1.0 / 60)
				s.Step(1.0 / 60)
			}
			Expect(snapshot(other.Density())).To(Equal(snapshot(f.Density())))
			Expect(snapshot(other.VelocityX())).To(Equal(snapshot(f.VelocityX())))
		})
	})
})
