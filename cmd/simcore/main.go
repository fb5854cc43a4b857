package main

import (
	"context"
	"fmt"
	"log/slog"
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

	"github.com/san-kum/simcore/internal/analysis"
	"github.com/san-kum/simcore/internal/config"
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/export"
	"github.com/san-kum/simcore/internal/integrators"
	"github.com/san-kum/simcore/internal/logging"
	"github.com/san-kum/simcore/internal/physics"
	"github.com/san-kum/simcore/internal/scenario"
	"github.com/san-kum/simcore/internal/sim"
	"github.com/san-kum/simcore/internal/trajectory"
	"github.com/san-kum/simcore/internal/viz"
	"github.com/san-kum/simcore/internal/vmath"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	seed       int64
	// Continuous parameters
	restitution float64
	timeScale   float64
	gravity     float64
	drag        float64
	// Structural parameters
	numBodies int
	width     float64
	height    float64
	// Headless run
	frames  int
	fps     int
	csvPath string
	outJSON string
	runs    int
	// Projectile
	speed     float64
	angle     float64
	launchAlt float64
	outPath   string
	// Field
	cols, rows int
	at         string
	// Pendulum
	length     float64
	swingAngle float64
	periods    int
)

// main registers the commands and exits with status 1 if any of them fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "simcore",
		Short: "real-time 2-D physics playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog, err := tuiLogger()
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.RunMenu(scenario.NewRegistry(), log)
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file for the terminal viewer")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.Float64Var(&restitution, "restitution", 1, "coefficient of restitution [0,1]")
	pf.Float64Var(&timeScale, "time-scale", 1, "simulation seconds per wall second")
	pf.Float64Var(&gravity, "gravity", 9.81, "uniform gravity")
	pf.Float64Var(&drag, "drag", 0, "quadratic drag coefficient")
	pf.IntVar(&numBodies, "bodies", 0, "number of bodies (0 = scenario default)")
	pf.Float64Var(&width, "width", 0, "boundary width (0 = scenario default)")
	pf.Float64Var(&height, "height", 0, "boundary height (0 = scenario default)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless at a fixed frame rate",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	runCmd.Flags().IntVar(&fps, "fps", 60, "frame rate of the synthetic clock")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write per-frame metrics to CSV")
	runCmd.Flags().StringVar(&outJSON, "json", "", "write the final frame to JSON")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of seeds to run in parallel")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "precompute a projectile trajectory",
		Args:  cobra.NoArgs,
		RunE:  planTrajectory,
	}
	planCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed")
	planCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "launch angle in degrees")
	planCmd.Flags().Float64Var(&launchAlt, "altitude", 0, "launch height")
	planCmd.Flags().StringVar(&outPath, "out", "", "save trajectory (.csv, .json or .svg)")

	fieldCmd := &cobra.Command{
		Use:   "field [scenario]",
		Short: "sample the field of a source scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  sampleField,
	}
	fieldCmd.Flags().IntVar(&cols, "cols", 32, "arrow grid columns")
	fieldCmd.Flags().IntVar(&rows, "rows", 16, "arrow grid rows")
	fieldCmd.Flags().StringVar(&at, "at", "", "sample a single point x,y")

	pendulumCmd := &cobra.Command{
		Use:   "pendulum",
		Short: "measure the period of a simple pendulum",
		Args:  cobra.NoArgs,
		RunE:  measurePendulum,
	}
	pendulumCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pendulum length")
	pendulumCmd.Flags().Float64Var(&swingAngle, "angle", config.DefaultSwingAngle, "release angle in degrees")
	pendulumCmd.Flags().IntVar(&periods, "periods", config.DefaultSwingPeriod, "small-angle periods to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario or projectile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := scenario.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tBOUNDS")
			for _, name := range reg.List() {
				def, err := reg.Defaults(name)
				if err != nil {
					return err
				}
				bounds := "none"
				if reg.Bounded(name) {
					bounds = fmt.Sprintf("%gx%g", def.Structure.Width, def.Structure.Height)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, def.Structure.BodyCount, bounds)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, planCmd, fieldCmd, pendulumCmd, presetsCmd, scenariosCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers the preset, the config file and changed flags, in
// that order, over the defaults.
func resolveConfig(cmd *cobra.Command, group string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(group, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(group))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("restitution") {
		cfg.Params.Restitution = restitution
	}
	if flags.Changed("time-scale") {
		cfg.Params.TimeScale = timeScale
	}
	if flags.Changed("gravity") {
		cfg.Params.Gravity = gravity
	}
	if flags.Changed("drag") {
		cfg.Params.Drag = drag
	}
	if flags.Changed("bodies") {
		cfg.Structure.BodyCount = numBodies
	}
	if flags.Changed("width") {
		cfg.Structure.Width = width
	}
	if flags.Changed("height") {
		cfg.Structure.Height = height
	}
	return cfg, nil
}

// loopFor resolves a scenario and its settings from the command line.
func loopFor(cmd *cobra.Command, name string, log *slog.Logger) (sim.Scenario, dynamo.Settings, func() []sim.Option, error) {
	reg := scenario.NewRegistry()
	scn, err := reg.Get(name)
	if err != nil {
		return nil, dynamo.Settings{}, nil, fmt.Errorf("%w (available: %v)", err, reg.List())
	}
	def, err := reg.Defaults(name)
	if err != nil {
		return nil, dynamo.Settings{}, nil, err
	}
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return nil, dynamo.Settings{}, nil, err
	}
	cfg.Scenario = name
	if err := cfg.Validate(); err != nil {
		return nil, dynamo.Settings{}, nil, err
	}

	settings := cfg.Settings(def.Structure)
	opts := func() []sim.Option {
		out := []sim.Option{sim.WithLogger(log)}
		for _, m := range reg.DefaultMetrics(name, settings.Structure) {
			out = append(out, sim.WithMetric(m))
		}
		return out
	}
	return scn, settings, opts, nil
}

func tuiLogger() (*slog.Logger, func() error, error) {
	if logFile == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	return logging.OpenFile(logFile, logLevel)
}

func runLive(cmd *cobra.Command, args []string) error {
	log, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	scn, settings, opts, err := loopFor(cmd, args[0], log)
	if err != nil {
		return err
	}
	loop := sim.New(scn, settings, opts()...)
	log.Info("live view started", "scenario", args[0], "seed", settings.Seed)
	return viz.Run(args[0], loop, log)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	name := args[0]
	log := logging.New(os.Stderr, logLevel)
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	frameDt := time.Second / time.Duration(fps)

	scn, settings, opts, err := loopFor(cmd, name, log)
	if err != nil {
		return err
	}

	if runs > 1 {
		return runEnsemble(cmd.Context(), scn, settings, opts, frameDt)
	}

	loop := sim.New(scn, settings, opts()...)
	var rec export.Recorder
	loop.OnFrame(rec.Observe)

	fmt.Printf("running %s: %d frames at %d fps (seed %d)\n", name, frames, fps, settings.Seed)
	start := time.Now()
	loop.Start()
	for i := 0; i < frames; i++ {
		if err := cmd.Context().Err(); err != nil {
			loop.Stop()
			return err
		}
		loop.Step(frameDt)
	}
	loop.Stop()
	log.Debug("run finished", "frames", len(rec.Frames), "elapsed", time.Since(start))

	final := loop.Snapshot()
	printSnapshot(final)

	if key := chartKey(final.Metrics); key != "" && len(rec.Frames) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(rec.Series(key), asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption(key)))
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteFramesCSV(f, rec.Frames, rec.Keys()); err != nil {
			return err
		}
		fmt.Printf("exported %d frames to %s\n", len(rec.Frames), csvPath)
	}
	if outJSON != "" {
		f, err := os.Create(outJSON)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteRunJSON(f, name, settings.Seed, final); err != nil {
			return err
		}
		fmt.Printf("exported final frame to %s\n", outJSON)
	}
	return nil
}

func runEnsemble(ctx context.Context, scn sim.Scenario, settings dynamo.Settings, opts func() []sim.Option, frameDt time.Duration) error {
	ens := sim.NewEnsemble(scn, runs, settings.Seed, opts)
	finals, err := ens.Run(ctx, settings, frames, frameDt)
	if err != nil {
		return err
	}

	keys := sortedKeys(finals[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\t%s\n", strings.ToUpper(strings.Join(keys, "\t")))
	for i, snap := range finals {
		row := make([]string, len(keys))
		for j, k := range keys {
			row[j] = fmt.Sprintf("%.4g", snap.Metrics[k])
		}
		fmt.Fprintf(w, "%d\t%s\n", settings.Seed+int64(i), strings.Join(row, "\t"))
	}
	return w.Flush()
}

var chartKeys = []string{"total_energy", "temperature", "kinetic_energy", "net_charge"}

func chartKey(metrics map[string]float64) string {
	for _, k := range chartKeys {
		if _, ok := metrics[k]; ok {
			return k
		}
	}
	return ""
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printSnapshot(s dynamo.Snapshot) {
	fmt.Printf("frame %d  t=%.3fs  bodies=%d\n", s.Frame, s.Time, len(s.Bodies))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range sortedKeys(s.Metrics) {
		fmt.Fprintf(w, "  %s\t%.6g\n", k, s.Metrics[k])
	}
	w.Flush()
}

func planTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "projectile")
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Projectile.Speed = speed
	}
	if flags.Changed("angle") {
		cfg.Projectile.Angle = angle
	}
	if flags.Changed("altitude") {
		cfg.Projectile.Height = launchAlt
	}
	cfg.Scenario = config.DefaultScenario
	if err := cfg.Validate(); err != nil {
		return err
	}

	launch := cfg.Launch()
	res := cfg.Planner().Plan(launch)
	vacuum := trajectory.Analytic(launch)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tSIMULATED\tVACUUM")
	fmt.Fprintf(w, "max height\t%.3f\t%.3f\n", res.MaxHeight, vacuum.MaxHeight)
	fmt.Fprintf(w, "range\t%.3f\t%.3f\n", res.Range, vacuum.Range)
	fmt.Fprintf(w, "flight time\t%.3f\t%.3f\n", res.FlightTime, vacuum.FlightTime)
	fmt.Fprintf(w, "samples\t%d\t\n", len(res.Points))
	w.Flush()
	if !res.Landed {
		fmt.Println("warning: sample limit reached before landing")
	}

	if len(res.Points) > 1 {
		heights := make([]float64, len(res.Points))
		for i, p := range res.Points {
			heights[i] = p.Y
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(heights, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("height")))
	}

	if outPath != "" {
		if err := export.SaveTrajectory(outPath, launch, res); err != nil {
			return err
		}
		fmt.Printf("saved trajectory to %s\n", outPath)
	}
	return nil
}

func sampleField(cmd *cobra.Command, args []string) error {
	log := logging.New(os.Stderr, logLevel)
	scn, settings, opts, err := loopFor(cmd, args[0], log)
	if err != nil {
		return err
	}
	loop := sim.New(scn, settings, opts()...)
	sampler, ok := loop.FieldSampler()
	if !ok {
		return fmt.Errorf("scenario %s is not a field source", args[0])
	}

	if at != "" {
		p, err := parsePoint(at)
		if err != nil {
			return err
		}
		s := sampler.Sample(p, loop.Sources())
		fmt.Printf("%s field at (%g, %g): (%.6g, %.6g) magnitude=%.6g\n", sampler.Kind, p.X, p.Y, s.Field.X, s.Field.Y, s.Magnitude)
		return nil
	}

	bounds := viz.Extent(loop.Sources())
	if b := loop.Bounds(); b != nil {
		bounds = *b
	}
	fmt.Print(viz.ArrowGrid(sampler, bounds, cols, rows, loop.Sources()))
	return nil
}

func parsePoint(s string) (vmath.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return vmath.Vec{}, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return vmath.Vec{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return vmath.Vec{}, fmt.Errorf("invalid y: %w", err)
	}
	return vmath.Vec{X: x, Y: y}, nil
}

func measurePendulum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "pendulum")
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Pendulum.Length = length
	}
	if flags.Changed("angle") {
		cfg.Pendulum.Angle = swingAngle
	}
	if flags.Changed("periods") {
		cfg.Pendulum.Periods = periods
	}
	cfg.Scenario = config.DefaultScenario
	if err := cfg.Validate(); err != nil {
		return err
	}

	p := physics.NewPendulum()
	p.Length = cfg.Pendulum.Length
	p.Gravity = cfg.Params.Gravity
	expected := physics.SmallAnglePeriod(p.Length, p.Gravity)
	if expected == 0 {
		return fmt.Errorf("pendulum does not swing with gravity %g", p.Gravity)
	}

	dt := cfg.Pendulum.Dt
	theta := cfg.Pendulum.Angle * math.Pi / 180
	samples := physics.Swing(p, integrators.NewRK4(), theta, dt, float64(cfg.Pendulum.Periods)*expected)

	crossing := analysis.ZeroCrossingPeriod(samples, dt)
	spectral := analysis.DominantPeriod(samples, dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "small-angle period\t%.4fs\n", expected)
	fmt.Fprintf(w, "zero-crossing period\t%.4fs\t(%+.2f%%)\n", crossing, 100*(crossing-expected)/expected)
	fmt.Fprintf(w, "spectral period\t%.4fs\t(%+.2f%%)\n", spectral, 100*(spectral-expected)/expected)
	return w.Flush()
}
