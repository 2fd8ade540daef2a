package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/automation"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/gui"
	"github.com/san-kum/attractors/internal/optim"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

var (
	configFile   string
	preset       string
	trajectories int
	trailLength  int
	dt           float32
	steps        int
	seed         uint64
	minBound     float32
	maxBound     float32
	workers      int
	params       []string
	theme        string
	logLevel     string
	// run outputs
	svgPath     string
	csvPath     string
	seriesPath  string
	jsonPath    string
	runs        int
	metricNames []string
	// analyze
	lyapSteps  int
	lyapEps    float64
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	section    bool
	xAxis      int
	yAxis      int
	// search
	gridParams []string
	gridPoints int
	objective  string
	maximize   bool
)

// main registers the attractors commands and opens the window when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "attractors",
		Short: "strange attractor trails",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			gui.RunInteractive(cfg)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVarP(&trajectories, "trajectories", "n", config.DefaultTrajectories, "number of trajectories")
	pf.IntVarP(&trailLength, "trail", "l", config.DefaultTrailLength, "trail length")
	pf.Float32Var(&dt, "dt", config.DefaultDt, "timestep")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "ticks for headless commands")
	pf.Uint64Var(&seed, "seed", 1, "random seed")
	pf.Float32Var(&minBound, "min", config.DefaultMin, "lower corner of the seeding cube")
	pf.Float32Var(&maxBound, "max", config.DefaultMax, "upper corner of the seeding cube")
	pf.IntVar(&workers, "workers", 0, "parallel tick workers (0 or 1 ticks sequentially)")
	pf.StringArrayVar(&params, "param", nil, "coefficient override name=value (repeatable)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	guiCmd := &cobra.Command{
		Use:   "gui [variant]",
		Short: "render trails in a 3-D window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				gui.RunInteractive(cfg)
				return nil
			}
			gui.Run(cfg)
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [variant]",
		Short: "render trails in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [variant]",
		Short: "run headless and print metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final trails as SVG")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write the final trails as CSV")
	runCmd.Flags().StringVar(&seriesPath, "series", "", "write trajectory 0's samples as CSV")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write a JSON snapshot")
	runCmd.Flags().IntVar(&runs, "runs", 1, "ensemble size, one seed per member")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to report (default all)")

	plotCmd := &cobra.Command{
		Use:   "plot [variant]",
		Short: "plot trajectory 0 coordinates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [variant]",
		Short: "spectrum and Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&lyapSteps, "lyapunov-steps", 20000, "steps for the Lyapunov estimate")
	analyzeCmd.Flags().Float64Var(&lyapEps, "eps", 1e-3, "initial separation for the Lyapunov estimate")
	analyzeCmd.Flags().StringVar(&sweepParam, "sweep", "", "coefficient for a bifurcation diagram")
	analyzeCmd.Flags().Float64Var(&sweepMin, "sweep-min", 0, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepMax, "sweep-max", 0, "sweep end")
	analyzeCmd.Flags().BoolVar(&section, "poincare", false, "print a Poincare section (x = 0 upward)")

	phaseCmd := &cobra.Command{
		Use:   "phase [variant]",
		Short: "phase space plot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "coordinate for the x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 2, "coordinate for the y-axis")

	benchCmd := &cobra.Command{
		Use:   "bench [variant]",
		Short: "benchmark ticks per second",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchVariant,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list variants and their coefficients",
		RunE:  listVariants,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variants := physics.Names()
			if len(args) > 0 {
				variants = args
			}
			for _, v := range variants {
				presets := config.ListPresets(v)
				if len(presets) == 0 {
					fmt.Printf("no presets for variant: %s\n", v)
					continue
				}
				fmt.Printf("presets for %s:\n", v)
				for _, p := range presets {
					cfg := config.GetPreset(v, p)
					fmt.Printf("  %-10s dt=%g cube=[%g, %g]\n", p, cfg.Dt, cfg.Min, cfg.Max)
				}
			}
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [variant]",
		Short: "grid search coefficients for the best metric value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  searchParams,
	}
	searchCmd.Flags().StringArrayVar(&gridParams, "grid", nil, "coefficient range name=min:max (repeatable)")
	searchCmd.Flags().IntVar(&gridPoints, "points", 5, "grid points per coefficient")
	searchCmd.Flags().StringVar(&objective, "metric", "spread", "metric to optimise")
	searchCmd.Flags().BoolVar(&maximize, "maximize", false, "maximise instead of minimise")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, plotCmd, analyzeCmd, phaseCmd, benchCmd, searchCmd, batchCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// resolveConfig layers flags over the config file over the preset over the
// defaults. A variant argument overrides the file's variant.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	variant := config.DefaultVariant
	var fileCfg *config.Config
	if configFile != "" {
		var err error
		fileCfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		variant = fileCfg.Variant
	}
	if len(args) > 0 {
		variant = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Variant = variant
	if preset != "" {
		p := config.GetPreset(variant, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(variant))
		}
		cfg = p
	}

	if fileCfg != nil {
		presetParams := maps.Clone(cfg.Params)
		merged, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		// coefficients in the file belong to the file's variant
		if merged.Variant != variant {
			merged.Variant = variant
			merged.Params = presetParams
		}
		cfg = merged
	}

	flags := cmd.Flags()
	if flags.Changed("trajectories") {
		cfg.Trajectories = trajectories
	}
	if flags.Changed("trail") {
		cfg.TrailLength = trailLength
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("min") {
		cfg.Min = minBound
	}
	if flags.Changed("max") {
		cfg.Max = maxBound
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 && cfg.Params == nil {
		cfg.Params = make(map[string]float64, len(overrides))
	}
	maps.Copy(cfg.Params, overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config resolved", "variant", cfg.Variant, "trajectories", cfg.Trajectories, "trail_length", cfg.TrailLength, "dt", cfg.Dt, "steps", cfg.Steps, "seed", cfg.Seed)
	return cfg, nil
}

// parseParams parses name=value pairs.
func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("param %q: expected name=value", pair)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viz.RunInteractive(cfg)
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(exp)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := metricNames
	if len(names) == 0 {
		names = registry.ListMetrics()
	}
	ms, err := registry.Metrics(names)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if runs > 1 {
		return runEnsemble(ctx, cfg, registry, names)
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	exp.Setup(ms)
	exp.GetSimulator().AddObserver(progress(cfg.Steps))

	fmt.Printf("running %s: %d trajectories x %d points, %d steps of %g\n",
		cfg.Variant, cfg.Trajectories, cfg.TrailLength, cfg.Steps, cfg.Dt)
	slog.Info("run started", "variant", cfg.Variant, "trajectories", cfg.Trajectories, "steps", cfg.Steps)

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("run finished", "variant", cfg.Variant, "steps", result.Steps, "elapsed", result.Elapsed)

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return writeOutputs(exp, result)
}

// progress logs every tenth of the run at debug level.
func progress(total int) sim.Observer {
	every := max(total/10, 1)
	return sim.ObserverFunc(func(a *attractor.Attractor, step int) {
		if (step+1)%every == 0 {
			slog.Debug("progress", "step", step+1, "of", total, "finite", a.Current(0).IsFinite())
		}
	})
}

func runEnsemble(ctx context.Context, cfg *config.Config, registry *experiment.Registry, names []string) error {
	ens, err := sim.NewEnsemble(experiment.Builder(cfg), func() []sim.Metric {
		ms, _ := registry.Metrics(names)
		return ms
	}, runs, cfg.Seed)
	if err != nil {
		return err
	}

	simCfg := sim.Config{Dt: cfg.Dt, Steps: cfg.Steps}
	fmt.Printf("running %d members of %s, seeds %d..%d\n", runs, cfg.Variant, cfg.Seed, cfg.Seed+uint64(runs)-1)

	start := time.Now()
	results, err := ens.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	slog.Info("ensemble finished", "variant", cfg.Variant, "runs", runs, "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(name))
	}
	fmt.Fprintln(w)

	mean := make(map[string]float64, len(names))
	for i, res := range results {
		fmt.Fprintf(w, "%d", cfg.Seed+uint64(i))
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6f", res.Metrics[name])
			mean[name] += res.Metrics[name] / float64(len(results))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "mean")
	for _, name := range names {
		fmt.Fprintf(w, "\t%.6f", mean[name])
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func writeOutputs(exp *experiment.Experiment, result *sim.Result) error {
	cfg := exp.Config()
	trails := exp.Attractor().Trails()

	if svgPath != "" {
		svg := export.TrailsToSVG(trails, export.FrameTrails(trails), 800, 800, exp.Gradient())
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	if csvPath != "" {
		if err := export.ExportCSV(csvPath, trails); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if seriesPath != "" {
		f, err := os.Create(seriesPath)
		if err != nil {
			return err
		}
		if err := export.WriteSeriesCSV(f, result); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", seriesPath)
	}
	if jsonPath != "" {
		snap := export.NewSnapshot(cfg.Variant, cfg.Seed, cfg.Dt, exp.Attractor(), result)
		if err := export.ExportJSON(jsonPath, snap); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	return nil
}

// headless runs cfg once with no metrics and returns the sampled series.
func headless(cfg *config.Config) (*sim.Result, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return exp.Run(ctx)
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	result, err := headless(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("variant: %s\n", cfg.Variant)
	fmt.Printf("steps: %d\n\n", result.Steps)

	for axis, name := range []string{"x", "y", "z"} {
		data := downsample(finite(result.Axis(axis)), 80)
		if len(data) == 0 {
			fmt.Printf("%s: diverged\n\n", name)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("trajectory 0: %s", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	result, err := headless(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", cfg.Variant)

	ps := analysis.PowerSpectrum(finite(result.Axis(0)))
	if len(ps) < 2 {
		return fmt.Errorf("no data")
	}
	plotData := ps[:max(len(ps)/4, 2)]
	graph := asciigraph.Plot(downsample(plotData, 80),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, float64(cfg.Dt))
	fmt.Printf("dominant frequency: %.4f\n", freq)
	if freq != 0 {
		fmt.Printf("period: %.4f\n", 1.0/freq)
	}

	dyn, err := cfg.Dynamics()
	if err != nil {
		return err
	}
	p0 := lastFinite(result)
	lambda := analysis.LyapunovExponent(dyn, p0, cfg.Dt, lyapSteps, lyapEps)
	fmt.Printf("largest lyapunov exponent: %.4f\n", lambda)
	if lambda > 0 {
		fmt.Println("  chaotic")
	}

	if sweepParam != "" {
		points, err := analysis.BifurcationDiagram(dyn, analysis.SweepConfig{
			Param:      sweepParam,
			Min:        sweepMin,
			Max:        sweepMax,
			ParamSteps: 80,
			Axis:       0,
			Start:      p0,
			Dt:         cfg.Dt,
			Transient:  cfg.Steps / 2,
			Record:     cfg.Steps / 2,
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nbifurcation (%s in [%g, %g])\n", sweepParam, sweepMin, sweepMax)
		fmt.Println(analysis.BifurcationToASCII(points, 80, 20))
	}

	if section {
		sec := analysis.GeneratePoincareSection(dyn, p0, analysis.SectionConfig{
			Cross:     0,
			Threshold: 0,
			XAxis:     1,
			YAxis:     2,
			Dt:        cfg.Dt,
			Transient: cfg.Steps / 10,
			Steps:     cfg.Steps * 5,
		})
		fmt.Println("\npoincare section (x = 0, y vs z)")
		fmt.Println(analysis.PoincareSectionToASCII(sec, 60, 20))
	}
	return nil
}

// lastFinite returns trajectory 0's last finite sample, a point on the attractor.
func lastFinite(result *sim.Result) dynamo.Point {
	for i := len(result.Series) - 1; i >= 0; i-- {
		if p := result.Series[i]; p.IsFinite() {
			return p
		}
	}
	return dynamo.Point{X: 1, Y: 1, Z: 1}
}

func phasePlot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if xAxis < 0 || xAxis > 2 || yAxis < 0 || yAxis > 2 {
		return fmt.Errorf("axes must be 0, 1 or 2")
	}
	result, err := headless(cfg)
	if err != nil {
		return err
	}

	portrait := analysis.Project(result.Series, xAxis, yAxis)
	fmt.Printf("phase portrait: %s (%s vs %s)\n\n", cfg.Variant, axisName(yAxis), axisName(xAxis))
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 25))
	return nil
}

func axisName(i int) string { return string("xyz"[i]) }

func benchVariant(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAJECTORIES\tWORKERS\tSTEPS\tELAPSED\tTICKS/S")

	for _, n := range []int{cfg.Trajectories, cfg.Trajectories * 10} {
		for _, wk := range []int{1, max(cfg.Workers, 4)} {
			c := cfg.Clone()
			c.Trajectories = n
			c.Workers = wk
			attr, err := experiment.Build(c, c.Seed)
			if err != nil {
				return err
			}
			start := time.Now()
			for i := 0; i < c.Steps; i++ {
				attr.Tick(c.Dt)
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", n, wk, c.Steps, elapsed, float64(c.Steps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func searchParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(gridParams) == 0 {
		return fmt.Errorf("at least one --grid name=min:max is required")
	}

	names := make([]string, 0, len(gridParams))
	ranges := make([][]float64, 0, len(gridParams))
	for _, g := range gridParams {
		name, lo, hi, err := parseRange(g)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(lo, hi, gridPoints))
	}

	ctx, cancel := signalContext()
	defer cancel()

	search := optim.NewGridSearch(names, ranges, maximize)
	best, val, err := search.Search(ctx, optim.ConfigBuilder(cfg, objective), objective)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", objective, val)
	for _, k := range sortedKeys(best) {
		fmt.Printf("  %s = %g\n", k, best[k])
	}
	return nil
}

// parseRange parses name=min:max.
func parseRange(s string) (string, float64, float64, error) {
	name, span, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, 0, fmt.Errorf("grid %q: expected name=min:max", s)
	}
	loRaw, hiRaw, ok := strings.Cut(span, ":")
	if !ok {
		return "", 0, 0, fmt.Errorf("grid %q: expected name=min:max", s)
	}
	lo, err := strconv.ParseFloat(loRaw, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("grid %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(hiRaw, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("grid %q: %w", s, err)
	}
	return name, lo, hi, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("  %s\n", scenario.Description)
	}

	results, runErr := automation.RunScenario(ctx, scenario, cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tVARIANT\tSTEPS\tELAPSED\tSPREAD\tESCAPED\tSAVED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.4f\t%.4f\t%s\n", i+1, r.Config.Variant, r.Result.Steps,
			r.Result.Elapsed.Round(time.Millisecond), r.Result.Metrics["spread"], r.Result.Metrics["escaped"], r.Saved)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func listVariants(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tCOEFFICIENTS\tPRESETS")
	for _, name := range physics.Names() {
		dyn, err := physics.Lookup(name)
		if err != nil {
			return err
		}
		ps := physics.Params(dyn)
		coeffs := make([]string, 0, len(ps))
		for _, k := range sortedKeys(ps) {
			coeffs = append(coeffs, fmt.Sprintf("%s=%g", k, ps[k]))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(coeffs, " "), strings.Join(config.ListPresets(name), ","))
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func finite(data []float64) []float64 {
	out := data[:0:0]
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// downsample keeps at most n evenly spaced values.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*len(data)/n]
	}
	return out
}
