package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// LyapunovConfig controls the separation method. The first Transient time
// units are integrated without measurement so the reference trajectory
// settles onto the attractor.
type LyapunovConfig struct {
	Dt           float64
	Duration     float64
	Transient    float64
	Perturbation float64
}

// inPlaceStepper is implemented by integrators that can write a step into
// an existing buffer, such as integrators.RK4.
type inPlaceStepper interface {
	StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, t, dt float64)
}

func DefaultLyapunovConfig() LyapunovConfig {
	return LyapunovConfig{Dt: 0.01, Duration: 100, Transient: 10, Perturbation: 1e-8}
}

// LyapunovExponent estimates the largest Lyapunov exponent.
//
// Algorithm:
// 1. Run a reference and a perturbed trajectory side by side
// 2. After every step, accumulate ln(|δx|/δ0)
// 3. Rescale the perturbation back to δ0 along its current direction
// 4. λ ≈ sum / elapsed time
func LyapunovExponent(dyn dynamo.System, integ dynamo.Integrator, x0 dynamo.State, cfg LyapunovConfig) (float64, error) {
	if len(x0) == 0 {
		return 0, fmt.Errorf("empty initial state: %w", dynamo.ErrDimensionMismatch)
	}
	if !(cfg.Dt > 0) || !(cfg.Duration > cfg.Dt) || cfg.Transient < 0 || !(cfg.Perturbation > 0) {
		return 0, fmt.Errorf("invalid lyapunov config %+v", cfg)
	}

	step := func(x dynamo.State, t float64) dynamo.State { return integ.Step(dyn, x, t, cfg.Dt) }
	if s, ok := integ.(inPlaceStepper); ok {
		step = func(x dynamo.State, t float64) dynamo.State {
			s.StepInto(x, dyn, x, t, cfg.Dt)
			return x
		}
	}

	x := x0.Clone()
	t := 0.0
	for t < cfg.Transient {
		x = step(x, t)
		t += cfg.Dt
	}
	if !x.IsValid() {
		return 0, &dynamo.SimulationError{Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
	}

	d0 := cfg.Perturbation
	xp := x.Clone()
	xp[0] += d0

	sumLog := 0.0
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	for i := 0; i < steps; i++ {
		x = step(x, t)
		xp = step(xp, t)
		t += cfg.Dt

		sep := floats.Distance(xp, x, 2)
		if !x.IsValid() || !xp.IsValid() || sep == 0 || math.IsInf(sep, 0) || math.IsNaN(sep) {
			return 0, &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}
		sumLog += math.Log(sep / d0)

		// Renormalize to prevent overflow
		scale := d0 / sep
		for k := range xp {
			xp[k] = x[k] + (xp[k]-x[k])*scale
		}
	}

	return sumLog / (float64(steps) * cfg.Dt), nil
}
