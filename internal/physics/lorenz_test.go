package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/lorenz/internal/dynamo"
)

func TestFieldClosedForm(t *testing.T) {
	tests := []struct {
		name string
		s    dynamo.State
		p    Params
		want dynamo.State
	}{
		{"unit state classic", dynamo.State{1, 1, 1}, DefaultParams(), dynamo.State{0, 26, 1 - 8.0/3.0}},
		{"axis x", dynamo.State{2, 0, 0}, Params{Sigma: 10, Beta: 2, Rho: 28}, dynamo.State{-20, 56, 0}},
		{"negative coords", dynamo.State{-1, 2, 3}, Params{Sigma: 1, Beta: 1, Rho: 1}, dynamo.State{3, 0, -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Field(tt.s, tt.p)
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("component %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFieldRandomStates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		s := dynamo.State{rng.NormFloat64() * 20, rng.NormFloat64() * 20, rng.Float64() * 50}
		p := Params{Sigma: rng.Float64() * 20, Beta: rng.Float64() * 5, Rho: rng.Float64() * 50}
		got := Field(s, p)
		want := [3]float64{
			p.Sigma * (s[1] - s[0]),
			s[0]*(p.Rho-s[2]) - s[1],
			s[0]*s[1] - p.Beta*s[2],
		}
		for k := range want {
			if got[k] != want[k] {
				t.Fatalf("state %v params %+v: component %d = %v, want %v", s, p, k, got[k], want[k])
			}
		}
	}
}

func TestOriginIsEquilibrium(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		p := Params{Sigma: rng.NormFloat64() * 10, Beta: rng.NormFloat64() * 3, Rho: rng.NormFloat64() * 30}
		d := Field(dynamo.State{0, 0, 0}, p)
		if d.Norm() != 0 {
			t.Errorf("params %+v: field at origin = %v", p, d)
		}
	}
}

func TestEquilibria(t *testing.T) {
	p := DefaultParams()
	eq := p.Equilibria()
	if len(eq) != 3 {
		t.Fatalf("expected 3 equilibria for rho=28, got %d", len(eq))
	}
	for _, e := range eq {
		if d := Field(e, p).Norm(); d > 1e-9 {
			t.Errorf("field at %v = %g, want 0", e, d)
		}
	}

	below := Params{Sigma: 10, Beta: 8.0 / 3.0, Rho: 0.5}
	if n := len(below.Equilibria()); n != 1 {
		t.Errorf("expected only the origin for rho<1, got %d points", n)
	}
}

func TestDivergence(t *testing.T) {
	p := DefaultParams()
	want := -(10 + 1 + 8.0/3.0)
	if math.Abs(p.Divergence()-want) > 1e-12 {
		t.Errorf("divergence = %v, want %v", p.Divergence(), want)
	}

	// trace of the Jacobian by central differences, at a few states
	l := NewLorenz()
	h := 1e-6
	for _, s := range []dynamo.State{{1, 1, 1}, {-8, 3, 27}, {15, -2, 40}} {
		trace := 0.0
		for i := 0; i < 3; i++ {
			plus, minus := s.Clone(), s.Clone()
			plus[i] += h
			minus[i] -= h
			trace += (l.Derive(plus, 0)[i] - l.Derive(minus, 0)[i]) / (2 * h)
		}
		if math.Abs(trace-want) > 1e-6 {
			t.Errorf("numerical trace at %v = %v, want %v", s, trace, want)
		}
	}
}

func TestLorenzParams(t *testing.T) {
	l := NewLorenz()
	if l.StateDim() != 3 {
		t.Errorf("expected state dim 3, got %d", l.StateDim())
	}

	if err := l.SetParam("rho", 14); err != nil {
		t.Fatalf("SetParam rho: %v", err)
	}
	if got := l.GetParams()["rho"]; got != 14 {
		t.Errorf("rho = %v, want 14", got)
	}
	if l.Params().Rho != 14 {
		t.Error("Params() does not reflect SetParam")
	}

	if err := l.SetParam("gamma", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
