package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRtol = 1e-3
	DefaultAtol = 1e-6

	DefaultStaticDuration = 50.0
	DefaultStaticPoints   = 10000

	DefaultAnimDuration = 10.0
	DefaultAnimDt       = 0.001
	DefaultRunTime      = 20.0
	DefaultWait         = 5.0
	DefaultCurveStep    = 0.01
	DefaultPhi          = 43.0
	DefaultTheta        = 76.0
	DefaultGamma        = 1.0
)

type Config struct {
	Params   physics.Params `yaml:"params"`
	Solver   SolverConfig   `yaml:"solver"`
	Static   StaticConfig   `yaml:"static"`
	Animated AnimatedConfig `yaml:"animated"`
}

// SolverConfig holds the RK45 tolerances. A zero MaxStep leaves the step
// size unbounded.
type SolverConfig struct {
	Rtol    float64 `yaml:"rtol"`
	Atol    float64 `yaml:"atol"`
	MaxStep float64 `yaml:"max_step"`
}

type StaticConfig struct {
	Init     []float64 `yaml:"init"`
	Duration float64   `yaml:"duration"`
	Points   int       `yaml:"points"`
}

type AnimatedConfig struct {
	States    [][]float64  `yaml:"states"`
	Colors    []string     `yaml:"colors"`
	Duration  float64      `yaml:"duration"`
	Dt        float64      `yaml:"dt"`
	RunTime   float64      `yaml:"run_time"`
	Wait      float64      `yaml:"wait"`
	CurveStep float64      `yaml:"curve_step"`
	Camera    CameraConfig `yaml:"camera"`
	Axes      AxesConfig   `yaml:"axes"`
}

// CameraConfig is the scene orientation as Euler angles in degrees.
type CameraConfig struct {
	Phi   float64 `yaml:"phi"`
	Theta float64 `yaml:"theta"`
	Gamma float64 `yaml:"gamma"`
}

type AxesConfig struct {
	X Range `yaml:"x"`
	Y Range `yaml:"y"`
	Z Range `yaml:"z"`
}

type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: physics.DefaultParams(),
		Solver: SolverConfig{Rtol: DefaultRtol, Atol: DefaultAtol},
		Static: StaticConfig{
			Init:     []float64{1, 1, 1},
			Duration: DefaultStaticDuration,
			Points:   DefaultStaticPoints,
		},
		Animated: AnimatedConfig{
			States: [][]float64{
				{0.5, 1, 1.05},
				{0.5, 1, 1.051},
			},
			Colors:    []string{"red", "blue"},
			Duration:  DefaultAnimDuration,
			Dt:        DefaultAnimDt,
			RunTime:   DefaultRunTime,
			Wait:      DefaultWait,
			CurveStep: DefaultCurveStep,
			Camera:    CameraConfig{Phi: DefaultPhi, Theta: DefaultTheta, Gamma: DefaultGamma},
			Axes: AxesConfig{
				X: Range{Min: -50, Max: 50, Step: 10},
				Y: Range{Min: -50, Max: 50, Step: 10},
				Z: Range{Min: 0, Max: 50, Step: 10},
			},
		},
	}
}

// Load overlays the YAML file at path onto DefaultConfig.
func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads the YAML file at path over base. Keys missing from the file
// keep their base values.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Static.Init = slices.Clone(c.Static.Init)
	out.Animated.Colors = slices.Clone(c.Animated.Colors)
	out.Animated.States = make([][]float64, len(c.Animated.States))
	for i, s := range c.Animated.States {
		out.Animated.States[i] = slices.Clone(s)
	}
	return &out
}

// SetParams applies name=value overrides to the Lorenz parameters. Nothing
// is changed when any override fails.
func (c *Config) SetParams(overrides map[string]string) error {
	lorenz := physics.NewLorenzWithParams(c.Params)
	if err := setParams(lorenz, overrides); err != nil {
		return err
	}
	c.Params = lorenz.Params()
	return nil
}

func setParams(sys dynamo.Configurable, overrides map[string]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := strconv.ParseFloat(overrides[name], 64)
		if err != nil {
			return fmt.Errorf("param %s: %w", name, err)
		}
		if err := sys.SetParam(name, v); err != nil {
			known := make([]string, 0, 3)
			for k := range sys.GetParams() {
				known = append(known, k)
			}
			sort.Strings(known)
			return fmt.Errorf("%w (known: %v)", err, known)
		}
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	if err := c.sampling(DefaultAnimDt).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("solver: %w", err))
	}
	if len(c.Static.Init) != 3 {
		errs = append(errs, fmt.Errorf("static: init needs 3 coordinates, got %d", len(c.Static.Init)))
	}
	if !(c.Static.Duration > 0) || c.Static.Points < 2 {
		errs = append(errs, fmt.Errorf("static: need positive duration and at least 2 points"))
	}
	if len(c.Animated.States) == 0 {
		errs = append(errs, errors.New("animated: no initial states"))
	}
	for i, s := range c.Animated.States {
		if len(s) != 3 {
			errs = append(errs, fmt.Errorf("animated: state %d needs 3 coordinates, got %d", i, len(s)))
		}
	}
	if !(c.Animated.Dt > 0) || !(c.Animated.Duration > 0) {
		errs = append(errs, fmt.Errorf("animated: need positive dt and duration"))
	}
	if !(c.Animated.CurveStep > 0) || c.Animated.CurveStep > 1 {
		errs = append(errs, fmt.Errorf("animated: curve_step must be in (0, 1], got %g", c.Animated.CurveStep))
	}
	if c.Animated.RunTime < 0 || c.Animated.Wait < 0 {
		errs = append(errs, errors.New("animated: run_time and wait must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) sampling(dt float64) dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = dt
	cfg.Rtol = c.Solver.Rtol
	cfg.Atol = c.Solver.Atol
	if c.Solver.MaxStep > 0 {
		cfg.MaxStep = c.Solver.MaxStep
	} else if c.Solver.MaxStep < 0 {
		cfg.MaxStep = math.NaN()
	}
	return cfg
}

// StaticSampling is the sampler configuration of the static plot. Its Dt
// is the spacing of the closed grid over the static duration.
func (c *Config) StaticSampling() dynamo.Config {
	return c.sampling(c.Static.Duration / float64(c.Static.Points-1))
}

func (c *Config) AnimatedSampling() dynamo.Config {
	return c.sampling(c.Animated.Dt)
}

func (c *Config) StaticInit() dynamo.State {
	return dynamo.State(c.Static.Init).Clone()
}

func (c *Config) AnimatedStates() []dynamo.State {
	states := make([]dynamo.State, len(c.Animated.States))
	for i, s := range c.Animated.States {
		states[i] = dynamo.State(s).Clone()
	}
	return states
}

// Color returns the configured color of curve i, cycling when there are
// more curves than colors.
func (c *Config) Color(i int) string {
	if len(c.Animated.Colors) == 0 {
		return "white"
	}
	return c.Animated.Colors[i%len(c.Animated.Colors)]
}
