package trajectory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/integrators"
	"github.com/san-kum/lorenz/internal/logging"
)

// Sampler integrates a system and evaluates it on a fixed grid. A Sampler
// holds no mutable state and may be shared between goroutines as long as the
// system's Derive is safe for concurrent use.
type Sampler struct {
	dyn    dynamo.System
	cfg    dynamo.Config
	logger *slog.Logger
}

func NewSampler(dyn dynamo.System, cfg dynamo.Config) *Sampler {
	return &Sampler{dyn: dyn, cfg: cfg, logger: logging.NewNop()}
}

// WithLogger sets the logger used to report solver failures and statistics.
func (s *Sampler) WithLogger(logger *slog.Logger) *Sampler {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *Sampler) Config() dynamo.Config { return s.cfg }

// Sample integrates from t=0 to duration and evaluates the half-open grid
// 0, dt, 2dt, ... < duration.
func (s *Sampler) Sample(ctx context.Context, x0 dynamo.State, duration float64) (*Trajectory, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrNoSolution, err)
	}
	if !(duration > s.cfg.Dt) {
		return nil, fmt.Errorf("%w: duration %g does not exceed dt %g", dynamo.ErrNoSolution, duration, s.cfg.Dt)
	}
	if n := GridLen(0, duration, s.cfg.Dt); !(n <= MaxGridPoints) {
		return nil, fmt.Errorf("%w: grid of %g points exceeds the limit of %d", dynamo.ErrNoSolution, n, MaxGridPoints)
	}
	return s.SampleGrid(ctx, x0, duration, Arange(0, duration, s.cfg.Dt))
}

// SampleGrid integrates from t=0 to duration and evaluates the given grid,
// which must be ascending, lie inside [0, duration] and hold at least two
// points.
func (s *Sampler) SampleGrid(ctx context.Context, x0 dynamo.State, duration float64, grid []float64) (*Trajectory, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrNoSolution, err)
	}
	if !(duration > 0) {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrNoSolution, duration)
	}
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: evaluation grid has %d points", dynamo.ErrNoSolution, len(grid))
	}

	sol, err := integrators.FromConfig(s.cfg).Solve(ctx, s.dyn, 0, duration, x0, grid)
	if err != nil {
		s.logger.Error("solver produced no output", "x0", x0, "duration", duration, "err", err)
		return nil, fmt.Errorf("%w: %w", dynamo.ErrNoSolution, err)
	}
	if len(sol.Y) == 0 {
		return nil, dynamo.ErrNoSolution
	}

	s.logger.Debug("trajectory sampled",
		"x0", x0,
		"duration", duration,
		"points", len(sol.Y),
		"steps", sol.Steps,
		"rejected", sol.Rejected,
		"nfev", sol.Nfev,
	)

	return &Trajectory{Times: sol.T, States: sol.Y}, nil
}
