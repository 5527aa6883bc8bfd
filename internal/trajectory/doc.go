// Package trajectory samples solutions of a [dynamo.System] onto fixed
// evaluation grids.
//
// A [Sampler] integrates with the adaptive RK45 solver and fills the grid
// from its dense output, so the grid spacing only sets the display
// resolution. Every failure wraps [dynamo.ErrNoSolution]; a failed call never
// returns partial data.
//
//	s := trajectory.NewSampler(physics.NewLorenz(), dynamo.DefaultConfig())
//	tr, err := s.Sample(ctx, dynamo.State{0.5, 1, 1.05}, 10)
//	if err != nil {
//	    logger.Error("sampling failed", "err", err)
//	    return
//	}
//	p := tr.At(0.5) // state halfway through the trajectory
package trajectory
