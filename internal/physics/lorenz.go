package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// Params holds the Lorenz coefficients.
type Params struct {
	Sigma float64 `yaml:"sigma"`
	Beta  float64 `yaml:"beta"`
	Rho   float64 `yaml:"rho"`
}

// DefaultParams returns the classic chaotic regime.
func DefaultParams() Params { return Params{Sigma: 10.0, Beta: 8.0 / 3.0, Rho: 28.0} }

// Field evaluates the Lorenz vector field at s.
func Field(s dynamo.State, p Params) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		p.Sigma * (y - x),
		x*(p.Rho-z) - y,
		x*y - p.Beta*z,
	}
}

// Divergence is the trace of the Jacobian, -(sigma+1+beta), the same at
// every point of phase space.
func (p Params) Divergence() float64 { return -(p.Sigma + 1 + p.Beta) }

// Equilibria returns the fixed points of the field. The origin is always
// one; for rho > 1 the two symmetric points C+ and C- follow it.
func (p Params) Equilibria() []dynamo.State {
	eq := []dynamo.State{{0, 0, 0}}
	if p.Rho > 1 && p.Beta > 0 {
		c := math.Sqrt(p.Beta * (p.Rho - 1))
		eq = append(eq, dynamo.State{c, c, p.Rho - 1}, dynamo.State{-c, -c, p.Rho - 1})
	}
	return eq
}

type Lorenz struct{ p Params }

func NewLorenz() *Lorenz                   { return &Lorenz{DefaultParams()} }
func NewLorenzWithParams(p Params) *Lorenz { return &Lorenz{p} }
func (l *Lorenz) StateDim() int            { return 3 }
func (l *Lorenz) Params() Params           { return l.p }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State { return Field(s, l.p) }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.p.Sigma, "rho": l.p.Rho, "beta": l.p.Beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.p.Sigma = v
	case "rho":
		l.p.Rho = v
	case "beta":
		l.p.Beta = v
	default:
		return fmt.Errorf("lorenz %q: %w", n, dynamo.ErrUnknownParam)
	}
	return nil
}
