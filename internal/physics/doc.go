// Package physics provides single-body ODE models used to cross-check the
// numerical core against closed-form results.
//
// [Pendulum] implements [dynamo.System] and [dynamo.Hamiltonian]. Its
// small-angle period is [SmallAnglePeriod]:
//
//	p := physics.NewPendulum()
//	theta := physics.Swing(p, integrators.NewRK4(), 0.1, 1e-3, 10)
//	period := analysis.ZeroCrossingPeriod(theta, 1e-3)
package physics
