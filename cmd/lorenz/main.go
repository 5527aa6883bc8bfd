package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/export"
	"github.com/san-kum/lorenz/internal/integrators"
	"github.com/san-kum/lorenz/internal/logging"
	"github.com/san-kum/lorenz/internal/physics"
	"github.com/san-kum/lorenz/internal/trajectory"
	"github.com/san-kum/lorenz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logLevel   string
	params     map[string]string
	// plot
	svgPath string
	noTerm  bool
	// animate
	gifPath      string
	snapshotPath string
	headless     bool
	parallel     int
	gifFPS       int
	// lyapunov
	threshold float64
)

var logger = logging.NewNop()

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lorenz",
		Short:         "integrate and render the lorenz system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "parameter preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringToStringVar(&params, "param", nil, "override a parameter, e.g. --param rho=14")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "static time series and phase portrait",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the figure to an svg file")
	plotCmd.Flags().BoolVar(&noTerm, "no-term", false, "skip the terminal plot")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "animated 3d scene of nearby trajectories",
		Args:  cobra.NoArgs,
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVar(&gifPath, "gif", "", "record the scene to a gif file")
	animateCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write the final frame to an svg file")
	animateCmd.Flags().BoolVar(&headless, "headless", false, "do not open the terminal player")
	animateCmd.Flags().IntVar(&parallel, "parallel", 1, "trajectories sampled concurrently")
	animateCmd.Flags().IntVar(&gifFPS, "fps", viz.DefaultGIFOptions().FPS, "gif frame rate")

	divergenceCmd := &cobra.Command{
		Use:   "divergence",
		Short: "divergence, equilibria and the field at the initial state",
		Args:  cobra.NoArgs,
		RunE:  runDivergence,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "largest lyapunov exponent and separation of the animated pair",
		Args:  cobra.NoArgs,
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().Float64Var(&threshold, "threshold", 1.0, "separation that counts as diverged")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIGMA\tBETA\tRHO\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%s\n", name, p.Params.Sigma, p.Params.Beta, p.Params.Rho, p.Description)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config <file>",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			logger.Info("config written", "path", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(plotCmd, animateCmd, divergenceCmd, lyapunovCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig layers the preset, the config file and --param overrides, in
// that order.
func loadConfig() (*config.Config, error) {
	var (
		cfg = config.DefaultConfig()
		err error
	)
	switch {
	case preset != "":
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if configFile != "" {
			cfg, err = config.Overlay(configFile, cfg)
		}
	case configFile != "":
		cfg, err = config.Load(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.SetParams(params); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	x0 := cfg.StaticInit()
	fmt.Printf("f(x0) = %v\n", physics.Field(x0, cfg.Params))

	sampler := trajectory.NewSampler(physics.NewLorenzWithParams(cfg.Params), cfg.StaticSampling()).WithLogger(logger)
	grid := trajectory.Linspace(0, cfg.Static.Duration, cfg.Static.Points)

	start := time.Now()
	tr, err := sampler.SampleGrid(cmd.Context(), x0, cfg.Static.Duration, grid)
	if err != nil {
		logger.Error("static sampling failed, nothing to plot", "x0", x0, "err", err)
		return err
	}
	logger.Info("static trajectory ready", "points", tr.Len(), "elapsed", time.Since(start))

	if !noTerm {
		out, err := viz.StaticPlot(tr, viz.DefaultStaticOptions())
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
	if svgPath != "" {
		if err := export.SaveFigure(svgPath, tr, export.DefaultFigureOptions()); err != nil {
			return err
		}
		logger.Info("figure written", "path", svgPath)
	}
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if headless && gifPath == "" && snapshotPath == "" {
		return errors.New("--headless needs --gif or --snapshot")
	}

	sampler := trajectory.NewSampler(physics.NewLorenzWithParams(cfg.Params), cfg.AnimatedSampling()).WithLogger(logger)
	members := trajectory.NewEnsemble(sampler, parallel).Sample(cmd.Context(), cfg.AnimatedStates(), cfg.Animated.Duration)

	scene, err := buildScene(cfg, members)
	if err != nil {
		return err
	}
	tl := viz.Timeline{
		Wait:    seconds(cfg.Animated.Wait),
		RunTime: seconds(cfg.Animated.RunTime),
	}

	if gifPath != "" {
		opts := viz.DefaultGIFOptions()
		opts.FPS = gifFPS
		if err := viz.SaveGIF(gifPath, scene, tl, opts); err != nil {
			return err
		}
		logger.Info("gif written", "path", gifPath, "frames_per_second", opts.FPS)
	}
	if snapshotPath != "" {
		c := viz.NewCanvas(viz.DefaultGIFOptions().Width, viz.DefaultGIFOptions().Height)
		scene.Draw(c, &scene.Camera, 1)
		if err := os.WriteFile(snapshotPath, []byte(export.CanvasToSVG(c, 4)), 0644); err != nil {
			return err
		}
		logger.Info("snapshot written", "path", snapshotPath)
	}
	if headless {
		return nil
	}
	return viz.Play(scene, tl)
}

// buildScene turns the sampled members into curves. A failed member is
// logged and left out; the scene fails only when no member survived.
func buildScene(cfg *config.Config, members []trajectory.Member) (*viz.Scene, error) {
	curves := make([]viz.Curve, 0, len(members))
	for _, m := range members {
		if !m.OK() {
			logger.Error("skipping trajectory", "index", m.Index, "x0", m.Init, "err", m.Err)
			continue
		}
		ink, err := viz.ParseColor(cfg.Color(m.Index))
		if err != nil {
			logger.Warn("unknown curve color, using white", "index", m.Index, "err", err)
			ink = viz.White
		}
		curves = append(curves, viz.Curve{
			Name:   fmt.Sprintf("x0=%v", m.Init),
			Points: viz.FromStates(m.Trajectory.Polyline(cfg.Animated.CurveStep)),
			Ink:    ink,
		})
	}

	ax := cfg.Animated.Axes
	axes := viz.Axes{
		X:   viz.AxisRange{Min: ax.X.Min, Max: ax.X.Max, Step: ax.X.Step},
		Y:   viz.AxisRange{Min: ax.Y.Min, Max: ax.Y.Max, Step: ax.Y.Step},
		Z:   viz.AxisRange{Min: ax.Z.Min, Max: ax.Z.Max, Step: ax.Z.Step},
		Ink: viz.White,
	}
	cam := cfg.Animated.Camera
	camera := viz.CameraFromDegrees(cam.Phi, cam.Theta, cam.Gamma, axes.Center(), axes.Extent())
	return viz.NewScene(axes, camera, curves)
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := cfg.Params
	x0 := cfg.StaticInit()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "params\tsigma=%.4g beta=%.4g rho=%.4g\n", p.Sigma, p.Beta, p.Rho)
	fmt.Fprintf(w, "divergence\t%.6f\n", p.Divergence())
	fmt.Fprintf(w, "f(x0)\t%v at x0=%v\n", physics.Field(x0, p), x0)
	for i, eq := range p.Equilibria() {
		vals, err := physics.Eigenvalues(eq, p)
		if err != nil {
			return err
		}
		stability := "unstable"
		if real(vals[0]) < 0 {
			stability = "stable"
		}
		fmt.Fprintf(w, "equilibrium %d\t%v\t%s\teigenvalues %.4f\n", i, eq, stability, vals)
	}
	// phase space volume shrinks by exp(div) per unit time
	fmt.Fprintf(w, "volume after t=1\t%.3e\n", math.Exp(p.Divergence()))
	return w.Flush()
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dyn := physics.NewLorenzWithParams(cfg.Params)

	lambda, err := analysis.LyapunovExponent(dyn, integrators.NewRK4(), cfg.StaticInit(), analysis.DefaultLyapunovConfig())
	if err != nil {
		return err
	}
	regime := "not chaotic"
	if lambda > 0 {
		regime = "chaotic"
	}
	fmt.Printf("largest lyapunov exponent: %.4f (%s)\n", lambda, regime)

	states := cfg.AnimatedStates()
	if len(states) < 2 {
		return nil
	}
	sampler := trajectory.NewSampler(dyn, cfg.AnimatedSampling()).WithLogger(logger)
	members := trajectory.NewEnsemble(sampler, 2).Sample(cmd.Context(), states[:2], cfg.Animated.Duration)
	for _, m := range members {
		if !m.OK() {
			logger.Error("separation needs both trajectories", "index", m.Index, "err", m.Err)
			return m.Err
		}
	}

	a, b := members[0].Trajectory, members[1].Trajectory
	sep, err := analysis.Separation(a, b)
	if err != nil {
		return err
	}
	fmt.Printf("initial separation: %.3e, final separation: %.3e\n", sep[0], sep[len(sep)-1])
	if at, ok := analysis.DivergenceTime(a.Times, sep, threshold); ok {
		fmt.Printf("separation exceeds %g at t=%.3f\n", threshold, at)
	} else {
		fmt.Printf("separation stays below %g\n", threshold)
	}

	logSep := make([]float64, len(sep))
	for i, d := range sep {
		logSep[i] = math.Log10(math.Max(d, 1e-300))
	}
	fmt.Println(asciigraph.Plot(logSep,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("log10 separation vs time"),
	))
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
