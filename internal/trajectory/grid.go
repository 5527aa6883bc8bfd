package trajectory

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxGridPoints bounds the length of a generated evaluation grid.
const MaxGridPoints = 1 << 24

// GridLen is the number of points Arange(start, stop, step) would hold,
// before trailing points at or past stop are dropped. It is +Inf or NaN for
// degenerate input.
func GridLen(start, stop, step float64) float64 {
	return math.Ceil((stop - start) / step)
}

// Arange returns start, start+step, ... up to but excluding stop. It returns
// nil when the grid would hold more than MaxGridPoints points.
func Arange(start, stop, step float64) []float64 {
	if !(step > 0) || !(stop > start) || math.IsInf(stop-start, 0) {
		return nil
	}
	c := GridLen(start, stop, step)
	if !(c <= MaxGridPoints) {
		return nil
	}
	n := int(c)
	for n > 0 && start+float64(n-1)*step >= stop {
		n--
	}
	g := make([]float64, n)
	for i := range g {
		g[i] = start + float64(i)*step
	}
	return g
}

// Linspace returns n evenly spaced points over [start, stop], both ends
// included. Like Arange it returns nil above MaxGridPoints.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0, n > MaxGridPoints:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}
