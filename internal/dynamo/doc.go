// Package dynamo provides the core primitives shared by the solvers and
// samplers of the Lorenz toolkit.
//
// The package defines the fundamental interfaces and types for numerical
// integration of autonomous ordinary differential equations (dX/dt = f(X, t)):
//
//   - [State]: vector representing a point in phase space
//   - [System]: interface for ODE right-hand sides
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Config]: sampling resolution and solver tolerances
//
// # Example
//
//	dyn := physics.NewLorenz()
//	s := trajectory.NewSampler(dyn, dynamo.DefaultConfig())
//	tr, err := s.Sample(ctx, dynamo.State{1, 1, 1}, 10)
//	if errors.Is(err, dynamo.ErrNoSolution) {
//	    // skip rendering
//	}
package dynamo
