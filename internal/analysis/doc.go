// Package analysis measures periodic behaviour in sampled time series.
//
//   - [ZeroCrossingPeriod]: mean spacing of rising zero crossings, with
//     linear interpolation between samples
//   - [DominantPeriod]: period of the strongest non-DC frequency bin
//   - [PowerSpectrum]: one-sided magnitude spectrum
//
// # Pendulum Check
//
// The numerically observed period of a released pendulum should agree with
// 2π√(L/g) within a few percent for small amplitudes:
//
//	theta := physics.Swing(p, integrators.NewRK4(), 0.1, dt, 20)
//	observed := analysis.ZeroCrossingPeriod(theta, dt)
package analysis
