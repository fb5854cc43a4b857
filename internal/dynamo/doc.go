// Package dynamo provides the core data model shared by the simulation
// components.
//
// The package defines the fundamental types every other package works on:
//
//   - [Body]: point mass with position, velocity, radius and optional charge
//   - [Charge]: signed field source used by the electrostatic sampler
//   - [Params]: continuous force-field parameters, applied live
//   - [Structure]: structural parameters that require a scenario reset
//   - [Bounds]: axis-aligned containment box for wall-bounded scenarios
//   - [Snapshot]: immutable per-frame copy handed to renderers
//   - [State] and [System]: a small ODE interface used by the pendulum check
//
// # Degenerate Input
//
// Nothing in the frame path returns an error. [Params.Sanitize] clamps
// out-of-range values and [Body.InverseMass] clamps non-positive masses so
// that a running loop always produces a finite, renderable state.
package dynamo
