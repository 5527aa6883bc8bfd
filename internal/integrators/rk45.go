package integrators

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Dormand-Prince coefficients (RK45)
const (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

var (
	nodes   = [7]float64{0, a2, a3, a4, a5, 1, 1}
	tableau = [7][]float64{
		nil,
		{b21},
		{b31, b32},
		{b41, b42, b43},
		{b51, b52, b53, b54},
		{b61, b62, b63, b64, b65},
		{c1, 0, c3, c4, c5, c6},
	}
	errWeights = [7]float64{dc1, 0, dc3, dc4, dc5, dc6, dc7}

	// quartic interpolant of the accepted step, one row per stage
	denseCoeffs = [7][4]float64{
		{1, -8048581381.0 / 2820520608.0, 8663915743.0 / 2820520608.0, -12715105075.0 / 11282082432.0},
		{0, 0, 0, 0},
		{0, 131558114200.0 / 32700410799.0, -68118460800.0 / 10900136933.0, 87487479700.0 / 32700410799.0},
		{0, -1754552775.0 / 470086768.0, 14199869525.0 / 1410260304.0, -10690763975.0 / 1880347072.0},
		{0, 127303824393.0 / 49829197408.0, -318862633887.0 / 49829197408.0, 701980252875.0 / 199316789632.0},
		{0, -282668133.0 / 205662961.0, 2019193451.0 / 616988883.0, -1453857185.0 / 822651844.0},
		{0, 40617522.0 / 29380423.0, -110615467.0 / 29380423.0, 69997945.0 / 29380423.0},
	}
)

const (
	errExponent     = -1.0 / 5.0
	defaultMaxSteps = 1_000_000
)

// RK45 is an adaptive explicit Runge-Kutta 5(4) solver with the
// Dormand-Prince tableau. The step controller follows the classic
// Hairer-Norsett-Wanner scheme: RMS error norm, safety factor 0.9, and
// growth clamped to [0.2, 10].
type RK45 struct {
	rtol      float64
	atol      float64
	maxStep   float64
	firstStep float64
	safety    float64
	minScale  float64
	maxScale  float64
	maxSteps  int
}

func NewRK45() *RK45 {
	return &RK45{
		rtol:     1e-3,
		atol:     1e-6,
		maxStep:  math.Inf(1),
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
		maxSteps: defaultMaxSteps,
	}
}

// WithTolerance sets the relative and absolute error tolerances.
func (r *RK45) WithTolerance(rtol, atol float64) *RK45 {
	r.rtol, r.atol = rtol, atol
	return r
}

// WithMaxStep bounds the internal step size.
func (r *RK45) WithMaxStep(h float64) *RK45 {
	r.maxStep = h
	return r
}

// WithFirstStep fixes the initial step size. Zero selects it automatically.
func (r *RK45) WithFirstStep(h float64) *RK45 {
	r.firstStep = h
	return r
}

// FromConfig returns a solver configured with the tolerances of cfg.
func FromConfig(cfg dynamo.Config) *RK45 {
	return NewRK45().WithTolerance(cfg.Rtol, cfg.Atol).WithMaxStep(cfg.MaxStep).WithFirstStep(cfg.FirstStep)
}

// Solution holds the states evaluated at the requested output times.
type Solution struct {
	T        []float64
	Y        []dynamo.State
	Nfev     int
	Steps    int
	Rejected int
}

// Step advances x by one fixed step of the fifth-order solution.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	var k [7]dynamo.State
	k[0] = dyn.Derive(x, t)
	xNew, _ := stages(dyn, x, t, dt, &k)
	return xNew
}

// Solve integrates dyn from t0 to t1 starting at x0 and returns the
// solution at each time of tEval. tEval must be ascending and inside
// [t0, t1]. Integration stops as soon as the last output time is covered.
func (r *RK45) Solve(ctx context.Context, dyn dynamo.System, t0, t1 float64, x0 dynamo.State, tEval []float64) (*Solution, error) {
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("state has %d components, system expects %d: %w", len(x0), dyn.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if !(t1 > t0) {
		return nil, fmt.Errorf("empty time span [%g, %g]", t0, t1)
	}
	for i, te := range tEval {
		if te < t0 || te > t1 || (i > 0 && te < tEval[i-1]) {
			return nil, fmt.Errorf("output time %g at index %d is unordered or outside [%g, %g]", te, i, t0, t1)
		}
	}
	if !x0.IsValid() {
		return nil, &dynamo.SimulationError{Time: t0, State: x0.Clone(), Wrapped: dynamo.ErrInvalidState}
	}

	sol := &Solution{
		T: make([]float64, 0, len(tEval)),
		Y: make([]dynamo.State, 0, len(tEval)),
	}
	if len(tEval) == 0 {
		return sol, nil
	}

	t, y := t0, x0.Clone()
	var k [7]dynamo.State
	k[0] = dyn.Derive(y, t)
	sol.Nfev++
	if !k[0].IsValid() {
		return nil, &dynamo.SimulationError{Time: t, State: y, Wrapped: dynamo.ErrInvalidState}
	}

	next := 0
	for next < len(tEval) && tEval[next] == t0 {
		sol.T = append(sol.T, t0)
		sol.Y = append(sol.Y, y.Clone())
		next++
	}

	hAbs := r.firstStep
	if hAbs == 0 {
		hAbs = r.initialStep(dyn, t, t1, y, k[0], sol)
	}

	for next < len(tEval) {
		select {
		case <-ctx.Done():
			return nil, &dynamo.SimulationError{Step: sol.Steps, Time: t, State: y, Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())}
		default:
		}
		if sol.Steps >= r.maxSteps {
			return nil, &dynamo.SimulationError{Step: sol.Steps, Time: t, State: y, Wrapped: dynamo.ErrTooManySteps}
		}

		h, yNew, hNext, err := r.advance(dyn, t, t1, y, hAbs, &k, sol)
		if err != nil {
			return nil, err
		}

		tNew := t + h
		if tNew > t1 || h == t1-t {
			tNew = t1
		}
		for next < len(tEval) && tEval[next] <= tNew {
			sol.T = append(sol.T, tEval[next])
			sol.Y = append(sol.Y, interpolate(y, &k, h, (tEval[next]-t)/h))
			next++
		}

		t, y, hAbs = tNew, yNew, hNext
		k[0] = k[6]
		sol.Steps++
		if t >= t1 {
			break
		}
	}

	if next < len(tEval) {
		return nil, &dynamo.SimulationError{Step: sol.Steps, Time: t, State: y, Wrapped: fmt.Errorf("integration ended before t=%g", tEval[next])}
	}
	return sol, nil
}

// advance performs one accepted step from (t, y), shrinking the step until
// the local error estimate passes. k[0] must hold f(t, y); on return k holds
// all seven stages of the accepted step.
func (r *RK45) advance(dyn dynamo.System, t, t1 float64, y dynamo.State, hAbs float64, k *[7]dynamo.State, sol *Solution) (float64, dynamo.State, float64, error) {
	minStep := 10 * math.Abs(math.Nextafter(t, math.Inf(1))-t)
	hAbs = math.Min(math.Max(hAbs, minStep), r.maxStep)
	rejected := false

	for {
		if hAbs < minStep {
			return 0, nil, 0, &dynamo.SimulationError{Step: sol.Steps, Time: t, State: y, Wrapped: dynamo.ErrStepTooSmall}
		}

		h := hAbs
		if t+h > t1 {
			h = t1 - t
		}

		yNew, nfev := stages(dyn, y, t, h, k)
		sol.Nfev += nfev

		errNorm := r.errorNorm(k, h, y, yNew)
		if !yNew.IsValid() || math.IsNaN(errNorm) || math.IsInf(errNorm, 0) {
			hAbs = h * r.minScale
			rejected = true
			sol.Rejected++
			continue
		}

		if errNorm < 1 {
			scale := r.maxScale
			if errNorm > 0 {
				scale = math.Min(r.maxScale, r.safety*math.Pow(errNorm, errExponent))
			}
			if rejected {
				scale = math.Min(1, scale)
			}
			return h, yNew, h * scale, nil
		}

		hAbs = h * math.Max(r.minScale, r.safety*math.Pow(errNorm, errExponent))
		rejected = true
		sol.Rejected++
	}
}

// stages evaluates stages 2..7 for a step of size h. k[0] must already hold
// f(t, x). It returns the fifth-order solution and the number of function
// evaluations spent.
func stages(dyn dynamo.System, x dynamo.State, t, h float64, k *[7]dynamo.State) (dynamo.State, int) {
	n := len(x)
	var xNew dynamo.State
	for s := 1; s < 7; s++ {
		xs := make(dynamo.State, n)
		copy(xs, x)
		for j, a := range tableau[s] {
			if a != 0 {
				floats.AddScaled(xs, h*a, k[j])
			}
		}
		k[s] = dyn.Derive(xs, t+nodes[s]*h)
		if s == 6 {
			xNew = xs
		}
	}
	return xNew, 6
}

func (r *RK45) errorNorm(k *[7]dynamo.State, h float64, y, yNew dynamo.State) float64 {
	n := len(y)
	sum := 0.0
	for i := 0; i < n; i++ {
		e := 0.0
		for s, w := range errWeights {
			if w != 0 {
				e += w * k[s][i]
			}
		}
		scale := r.atol + math.Max(math.Abs(y[i]), math.Abs(yNew[i]))*r.rtol
		q := h * e / scale
		sum += q * q
	}
	return math.Sqrt(sum / float64(n))
}

// interpolate evaluates the dense output of an accepted step at the
// fraction theta in [0, 1] of its length.
func interpolate(y dynamo.State, k *[7]dynamo.State, h, theta float64) dynamo.State {
	out := y.Clone()
	if theta == 0 {
		return out
	}
	var p [4]float64
	p[0] = theta
	for j := 1; j < 4; j++ {
		p[j] = p[j-1] * theta
	}
	for i := range out {
		acc := 0.0
		for s := range k {
			if k[s] == nil {
				continue
			}
			q := 0.0
			for j := 0; j < 4; j++ {
				q += denseCoeffs[s][j] * p[j]
			}
			acc += k[s][i] * q
		}
		out[i] += h * acc
	}
	return out
}

// initialStep picks a first step from the local derivative scale, see
// Hairer, Norsett and Wanner, Solving ODEs I, sec. II.4.
func (r *RK45) initialStep(dyn dynamo.System, t0, t1 float64, y0, f0 dynamo.State, sol *Solution) float64 {
	interval := math.Abs(t1 - t0)
	n := len(y0)
	if n == 0 {
		return interval
	}

	scale := make([]float64, n)
	for i := range y0 {
		scale[i] = r.atol + math.Abs(y0[i])*r.rtol
	}
	d0 := rmsScaled(y0, scale)
	d1 := rmsScaled(f0, scale)

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, interval)

	y1 := make(dynamo.State, n)
	floats.AddScaledTo(y1, y0, h0, f0)
	f1 := dyn.Derive(y1, t0+h0)
	sol.Nfev++

	diff := make([]float64, n)
	floats.SubTo(diff, f1, f0)
	d2 := rmsScaled(diff, scale) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	return math.Min(math.Min(100*h0, h1), math.Min(interval, r.maxStep))
}

func rmsScaled(v, scale []float64) float64 {
	sum := 0.0
	for i := range v {
		q := v[i] / scale[i]
		sum += q * q
	}
	return math.Sqrt(sum / float64(len(v)))
}
