package integrators

import (
	"github.com/san-kum/lorenz/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Butcher tableau of the classic method: each stage evaluates at
// t + rk4Nodes[i]*dt from x + rk4Nodes[i]*dt*k[i-1].
var (
	rk4Nodes   = [4]float64{0, 0.5, 0.5, 1}
	rk4Weights = [4]float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6}
)

// RK4 is the fixed-step fourth-order Runge-Kutta method. It keeps its stage
// buffers between calls and is not safe for concurrent use.
type RK4 struct {
	k   [4]dynamo.State
	tmp dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.tmp) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.tmp = make(dynamo.State, n)
}

// Step returns a new state one step of size dt after x.
func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	out := make(dynamo.State, len(x))
	r.StepInto(out, dyn, x, t, dt)
	return out
}

// StepInto writes the state one step after x into dst, which may be x
// itself. It allocates nothing once the buffers match the dimension.
func (r *RK4) StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, t, dt float64) {
	r.resize(len(x))

	copy(r.k[0], dyn.Derive(x, t))
	for i := 1; i < len(r.k); i++ {
		floats.AddScaledTo(r.tmp, x, rk4Nodes[i]*dt, r.k[i-1])
		copy(r.k[i], dyn.Derive(r.tmp, t+rk4Nodes[i]*dt))
	}

	copy(r.tmp, x)
	for i, w := range rk4Weights {
		floats.AddScaled(r.tmp, w*dt, r.k[i])
	}
	copy(dst, r.tmp)
}
