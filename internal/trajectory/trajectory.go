package trajectory

import (
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// Trajectory is an ordered, time-stamped sequence of states. It is never
// modified after the sampler returns it.
type Trajectory struct {
	Times  []float64
	States []dynamo.State
}

func (tr *Trajectory) Len() int { return len(tr.States) }

func (tr *Trajectory) First() dynamo.State { return tr.States[0] }
func (tr *Trajectory) Last() dynamo.State  { return tr.States[len(tr.States)-1] }

// Axis returns the i-th coordinate of every state.
func (tr *Trajectory) Axis(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		out[k] = s[i]
	}
	return out
}

// Index maps the normalized parameter u in [0, 1] to a sample index by
// rounding u*(N-1). Values outside the interval are clamped.
func (tr *Trajectory) Index(u float64) int {
	n := len(tr.States)
	if n == 0 {
		return -1
	}
	if math.IsNaN(u) || u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return int(math.Round(u * float64(n-1)))
}

// At returns the state at normalized parameter u.
func (tr *Trajectory) At(u float64) dynamo.State {
	return tr.States[tr.Index(u)]
}

// Polyline samples the parametrization at u = 0, step, 2*step, ... and
// always ends at u = 1.
func (tr *Trajectory) Polyline(step float64) []dynamo.State {
	if tr.Len() == 0 || !(step > 0) {
		return nil
	}
	n := int(math.Round(1 / step))
	if n < 1 {
		n = 1
	}
	pts := make([]dynamo.State, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, tr.At(float64(i)/float64(n)))
	}
	return pts
}
