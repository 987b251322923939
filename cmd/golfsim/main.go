package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/logging"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/projectile"
	"github.com/san-kum/golfsim/internal/render"
	"github.com/san-kum/golfsim/internal/storage"
	"github.com/san-kum/golfsim/internal/swing"
	"github.com/san-kum/golfsim/internal/sweep"
	"github.com/san-kum/golfsim/internal/viz"
)

// runConfigFile is the resolved config written next to a saved run.
const runConfigFile = "config.yaml"

var (
	dataDir    string
	logFormat  string
	configFile string
	preset     string
	outPath    string
	showArc    bool
	saveRun    bool
	quiet      bool

	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	sweepWorkers int

	// flagParams receives the swing flags; only flags the user set are applied.
	flagParams = swing.ReferenceParameters()
)

type swingFlag struct {
	name, usage string
	field       func(*swing.Parameters) *float64
}

var swingFlags = []swingFlag{
	{"theta-h", "initial hip angle (rad)", func(p *swing.Parameters) *float64 { return &p.Hip.Theta0 }},
	{"omega-h", "initial hip angular velocity (rad/s)", func(p *swing.Parameters) *float64 { return &p.Hip.Omega0 }},
	{"alpha-h", "hip angular acceleration (rad/s²)", func(p *swing.Parameters) *float64 { return &p.Hip.Alpha }},
	{"theta-s", "initial shoulder angle (rad)", func(p *swing.Parameters) *float64 { return &p.Shoulder.Theta0 }},
	{"omega-s", "initial shoulder angular velocity (rad/s)", func(p *swing.Parameters) *float64 { return &p.Shoulder.Omega0 }},
	{"alpha-s", "shoulder angular acceleration (rad/s²)", func(p *swing.Parameters) *float64 { return &p.Shoulder.Alpha }},
	{"theta-a", "initial arm angle (rad)", func(p *swing.Parameters) *float64 { return &p.Arm.Theta0 }},
	{"omega-a", "initial arm angular velocity (rad/s)", func(p *swing.Parameters) *float64 { return &p.Arm.Omega0 }},
	{"alpha-a", "arm angular acceleration (rad/s²)", func(p *swing.Parameters) *float64 { return &p.Arm.Alpha }},
	{"rc", "clubhead radius (m)", func(p *swing.Parameters) *float64 { return &p.Rc }},
	{"dt", "timestep (s)", func(p *swing.Parameters) *float64 { return &p.Dt }},
	{"time", "simulation time (s)", func(p *swing.Parameters) *float64 { return &p.SimulationTime }},
}

func addSwingFlags(cmd *cobra.Command) {
	ref := swing.ReferenceParameters()
	for _, f := range swingFlags {
		cmd.Flags().Float64Var(f.field(&flagParams), f.name, *f.field(&ref), f.usage)
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
}

func addRunFlags(cmd *cobra.Command) {
	addSwingFlags(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", config.DefaultOutput, "output PNG path")
	cmd.Flags().BoolVar(&showArc, "arc", false, "overlay the sampled flight path")
	cmd.Flags().BoolVar(&saveRun, "save", false, "store the run in the data directory")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip the terminal summary")
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "golfsim",
		Short:        "golf swing to ball trajectory simulator",
		Args:         cobra.NoArgs,
		RunE:         runSwing,
		SilenceUsage: true,
	}
	addRunFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text or json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a swing and plot the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSwing,
	}
	addRunFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and compare trajectories",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSwingFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", string(sweep.Rc), fmt.Sprintf("parameter to vary %v", sweep.Params))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse saved runs interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return viz.RunBrowser(st)
		},
	}
	for _, c := range []*cobra.Command{listCmd, showCmd, exportCSVCmd, exportJSONCmd, browseCmd} {
		c.Flags().StringVar(&configFile, "config", "", "config file path (yaml) for data_dir")
	}

	rootCmd.AddCommand(runCmd, sweepCmd, presetsCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Swing = p
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	for _, f := range swingFlags {
		if flags.Changed(f.name) {
			*f.field(&cfg.Swing) = *f.field(&flagParams)
		}
	}
	if flags.Changed("out") {
		cfg.Output.Path = outPath
	}
	if flags.Changed("arc") {
		cfg.Output.Arc = showArc
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runLabel names where a run's parameters came from.
func runLabel(cmd *cobra.Command) string {
	for _, f := range swingFlags {
		if cmd.Flags().Changed(f.name) {
			return "custom"
		}
	}
	switch {
	case configFile != "":
		return "config"
	case preset != "":
		return preset
	}
	return "reference"
}

func runSwing(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := logging.New(os.Stderr, cfg.Log.Format)

	sim := swing.New()
	for _, m := range metrics.Default(cfg.Swing.Rc) {
		sim.AddMetric(m)
	}

	start := time.Now()
	result, err := sim.Run(ctx, cfg.Swing)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "swing simulated",
		"steps", result.Steps,
		"releases", len(result.Releases),
		"elapsed", time.Since(start))

	rel, released := result.LastRelease()
	if !released {
		logger.Warn(ctx, "no release point inside the simulation window")
	}

	var arc []mgl64.Vec2
	if cfg.Output.Arc && released {
		arc = projectile.FlightPath(rel.Vx, rel.Vy, cfg.Output.ArcSamples)
	}

	if err := render.SavePNG(cfg.Output.Path, result.Trajectory, arc); err != nil {
		logger.Error(ctx, "render failed", err, "path", cfg.Output.Path)
		return err
	}
	fmt.Println("Trajectory plotted successfully.")

	if saveRun {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runLabel(cmd), cfg.Swing, result, cfg.Output.Path)
		if err != nil {
			return err
		}
		ctx = logging.WithRunID(ctx, runID)
		if err := config.Save(filepath.Join(st.RunDir(runID), runConfigFile), cfg); err != nil {
			logger.Error(ctx, "write run config failed", err)
			return err
		}
		logger.Info(ctx, "run saved", "dir", cfg.DataDir)
		fmt.Printf("run id: %s\n", runID)
	}

	if quiet || !released {
		return nil
	}

	pt := result.Trajectory[len(result.Trajectory)-1]
	fmt.Println(viz.Summary(cfg.Output.Path, rel, pt, result.Metrics))
	fmt.Println(viz.FlightPreview(rel.Vx, rel.Vy, 60, 10))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := logging.New(os.Stderr, cfg.Log.Format)

	s := sweep.Sweep{
		Base:    cfg.Swing,
		Param:   sweep.Param(sweepParam),
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Workers: sweepWorkers,
		Logger:  logger,
	}

	start := time.Now()
	samples, err := s.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info(ctx, "sweep finished", "param", sweepParam, "runs", len(samples), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPOINTS\tVX\tVY\tRANGE\tMAX_HEIGHT\n", sweepParam)

	ranges := make([]float64, len(samples))
	for i, sample := range samples {
		last := sample.Last()
		ranges[i] = last.Range
		fmt.Fprintf(w, "%.4f\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
			sample.Value,
			len(sample.Trajectory),
			sample.Release.Vx,
			sample.Release.Vy,
			last.Range,
			last.MaxHeight,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(ranges) > 1 {
		fmt.Println()
		fmt.Println(viz.SeriesPlot(ranges, fmt.Sprintf("range (m) over %s %g..%g", sweepParam, sweepMin, sweepMax)))
	}
	return nil
}

// openStore resolves the data directory through the same layering as run.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDT\tSIM_TIME\tRC\tRANGE")

	for _, run := range runs {
		rng := "-"
		if rel, ok := run.LastRelease(); ok {
			rng = fmt.Sprintf("%.3f", projectile.Evaluate(rel.Vx, rel.Vy).Range)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%.2fs\t%.2f\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Parameters.Dt,
			run.Parameters.SimulationTime,
			run.Parameters.Rc,
			rng,
		)
	}

	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, []projectile.Point, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	points, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, points, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	rel, ok := meta.LastRelease()
	if !ok || len(points) == 0 {
		fmt.Printf("%s: no release point recorded\n", meta.ID)
		return nil
	}

	fmt.Println(viz.Summary(meta.ID, rel, points[len(points)-1], meta.Metrics))
	fmt.Println(viz.FlightPreview(rel.Vx, rel.Vy, 60, 10))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, points, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, points)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, points)
}
