// Package fluid implements a Stable-Fluids style Eulerian solver on a fixed
// 2D grid.
//
// A [Fluid] owns a scalar density field and a two-component velocity field.
// Callers inject density and velocity at cells, then advance the simulation
// once per tick with [Fluid.Step]:
//
//	f, _ := fluid.New(fluid.Params{Width: 64, Height: 64, Diffusion: 0.0001, Viscosity: 0.0001, Project: true})
//	f.AddDensity(32, 32, 1)
//	f.AddVelocity(32, 32, 0, -2)
//	f.Step(1.0 / 60)
//	d := f.Density()
//
// Each step runs, in order: snapshot, velocity diffusion, velocity
// self-advection, optional projection, density diffusion, density advection.
// Diffusion and the pressure solve share one Gauss-Seidel relaxation
// routine. Advection is a semi-Lagrangian backtrace that truncates the
// source coordinate to a cell. It does not interpolate, so sampling is
// biased toward lower indices.
//
// Diffusion and advection only ever write interior cells. The outer
// row and column of the velocity grids are written by the projection's
// wall condition and nothing else.
//
// # Thread Safety
//
// A Fluid is NOT safe for concurrent use. One goroutine owns it for its
// lifetime; other goroutines hand injections to that owner.
package fluid
