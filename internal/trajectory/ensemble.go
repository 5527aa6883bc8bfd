package trajectory

import (
	"context"

	"github.com/san-kum/lorenz/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Member is the outcome of sampling one initial state of an ensemble.
type Member struct {
	Index      int
	Init       dynamo.State
	Trajectory *Trajectory
	Err        error
}

func (m Member) OK() bool { return m.Err == nil }

// Ensemble samples several initial states with a shared sampler. Members are
// independent: a failed member is reported in its slot and does not stop the
// others.
type Ensemble struct {
	sampler  *Sampler
	parallel int
}

// NewEnsemble returns an ensemble sampling at most parallel members at once.
// Values below one sample sequentially.
func NewEnsemble(s *Sampler, parallel int) *Ensemble {
	if parallel < 1 {
		parallel = 1
	}
	return &Ensemble{sampler: s, parallel: parallel}
}

// Sample returns one Member per initial state, in input order.
func (e *Ensemble) Sample(ctx context.Context, inits []dynamo.State, duration float64) []Member {
	members := make([]Member, len(inits))

	var g errgroup.Group
	g.SetLimit(e.parallel)
	for i, x0 := range inits {
		i, x0 := i, x0
		g.Go(func() error {
			tr, err := e.sampler.Sample(ctx, x0, duration)
			members[i] = Member{Index: i, Init: x0.Clone(), Trajectory: tr, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return members
}

// Successful drops the failed members.
func Successful(members []Member) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if m.OK() {
			out = append(out, m)
		}
	}
	return out
}
