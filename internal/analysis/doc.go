// Package analysis provides post-run tools for fluid diagnostics.
//
//   - [PowerSpectrum]: magnitude spectrum of a per-tick series
//   - [DominantFrequency]: strongest non-DC oscillation in a series
//   - [Describe]: summary statistics of a series
//   - [CentroidTrack]: path of the density centre of mass across frames
//
// # Oscillation Detection
//
// Probe series such as mass or kinetic energy oscillate when a plume
// sheds. The dominant frequency gives the shedding rate:
//
//	f, _ := analysis.DominantFrequency(energy, 1/dt)
package analysis
