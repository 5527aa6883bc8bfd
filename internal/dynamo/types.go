package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) String() string {
	return fmt.Sprintf("%.6g", []float64(s))
}

// System is the right-hand side of an autonomous or time-dependent ODE.
// Derive must not retain or modify x.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Config controls how a trajectory is sampled. Dt is the spacing of the
// evaluation grid only; the adaptive solver picks its own internal steps.
type Config struct {
	Dt        float64
	Rtol      float64
	Atol      float64
	MaxStep   float64
	FirstStep float64
}

func DefaultConfig() Config {
	return Config{
		Dt:      0.001,
		Rtol:    1e-3,
		Atol:    1e-6,
		MaxStep: math.Inf(1),
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if !(c.Rtol > 0) || !(c.Atol > 0) {
		return fmt.Errorf("tolerances must be positive, got rtol=%g atol=%g", c.Rtol, c.Atol)
	}
	if !(c.MaxStep > 0) {
		return fmt.Errorf("max step must be positive, got %g", c.MaxStep)
	}
	if c.FirstStep < 0 {
		return fmt.Errorf("first step must not be negative, got %g", c.FirstStep)
	}
	return nil
}
