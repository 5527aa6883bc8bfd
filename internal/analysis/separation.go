package analysis

import (
	"fmt"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/trajectory"
	"gonum.org/v1/gonum/floats"
)

// Separation returns the Euclidean distance between a and b at every sample.
// Both trajectories must share the same grid.
func Separation(a, b *trajectory.Trajectory) ([]float64, error) {
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("trajectories have %d and %d samples: %w", a.Len(), b.Len(), dynamo.ErrDimensionMismatch)
	}
	sep := make([]float64, a.Len())
	for i := range sep {
		if len(a.States[i]) != len(b.States[i]) {
			return nil, fmt.Errorf("sample %d: %w", i, dynamo.ErrDimensionMismatch)
		}
		sep[i] = floats.Distance(a.States[i], b.States[i], 2)
	}
	return sep, nil
}

// DivergenceTime returns the first time at which sep exceeds threshold.
func DivergenceTime(times, sep []float64, threshold float64) (float64, bool) {
	for i := 0; i < len(sep) && i < len(times); i++ {
		if sep[i] > threshold {
			return times[i], true
		}
	}
	return 0, false
}
