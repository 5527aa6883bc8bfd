package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] != 1 {
		t.Error("Clone shares storage with source")
	}
}

func TestState_SubNorm(t *testing.T) {
	a := State{4, 6, 3}
	b := State{1, 2, 3}
	if got := a.Sub(b).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("|a-b| = %v, want 5", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"NaN dt", func(c *Config) { c.Dt = math.NaN() }},
		{"zero rtol", func(c *Config) { c.Rtol = 0 }},
		{"zero atol", func(c *Config) { c.Atol = 0 }},
		{"zero max step", func(c *Config) { c.MaxStep = 0 }},
		{"negative first step", func(c *Config) { c.FirstStep = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(&cfg)
			if cfg.Validate() == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulationError_Unwrap(t *testing.T) {
	err := &SimulationError{Step: 3, Time: 0.5, Wrapped: ErrStepTooSmall}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("SimulationError does not unwrap to its cause")
	}
	if err.Error() != ErrStepTooSmall.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
