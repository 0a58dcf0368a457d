// Package dynamo provides core primitives for iterative learning control
// simulation.
//
// The package defines the types shared by every system variant and by the
// trial loop:
//
//   - [State], [Control]: plant state and control vectors
//   - [Lifted]: flat per-step block vector spanning a whole trial horizon
//   - [Dynamics]: interface for the plant ODE (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [System]: the full capability set of one model variant
//     (simulate, feedback, learning operator, reset)
//
// Optional capabilities are discovered by type assertion:
//
//	if ff, ok := sys.(dynamo.FeedForwarder); ok {
//	    x0, u0 := ff.FeedForward(pos, vel, acc, jerk, snap)
//	}
//
// # Thread Safety
//
// System instances are NOT thread-safe. A variant instance is owned by one
// trial loop for the duration of a run; concurrent runs need separate
// instances.
package dynamo
