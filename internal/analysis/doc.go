// Package analysis provides chaos diagnostics for sampled trajectories.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via renormalized
//     trajectory separation
//   - [Separation]: Euclidean distance between two trajectories over time
//   - [DivergenceTime]: first time a separation exceeds a threshold
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(dyn, integrators.NewRK4(), x0, analysis.DefaultLyapunovConfig())
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
