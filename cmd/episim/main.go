package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/experiment"
	"github.com/san-kum/episim/internal/export"
	"github.com/san-kum/episim/internal/logging"
	"github.com/san-kum/episim/internal/storage"
	"github.com/san-kum/episim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	configFile string
	preset     string
	name       string
	// Population
	size      int
	household float64
	infected  int
	// Behaviour
	movement  float64
	contact   float64
	infection float64
	testRatio float64
	// Run control
	days        int
	scenarios   int
	uniformSeed uint64
	poissonSeed uint64
	workers     int
	metricNames []string
	noSave      bool
	pngPath     string
	svgPath     string
	// Live view
	scenario  int
	dayMillis int

	logger *slog.Logger
)

// main registers the episim commands and executes the root command. It exits
// with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "episim",
		Short:         "household epidemic simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, logFormat, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an ensemble of scenarios",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&workers, "workers", 0, "concurrent scenarios (0 = GOMAXPROCS)")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default all)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store runs")
	runCmd.Flags().StringVar(&pngPath, "png", "", "write a PNG figure to this path")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG of the curves to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch one scenario unfold day by day",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&scenario, "scenario", 0, "scenario index")
	liveCmd.Flags().IntVar(&dayMillis, "day-ms", 150, "milliseconds per simulated day")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id...]",
		Short: "plot infected curves of stored runs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and curve to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the infected curve to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	figureCmd := &cobra.Command{
		Use:   "figure [run_id...]",
		Short: "render stored runs to PNG or SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE:  renderFigure,
	}
	figureCmd.Flags().StringVar(&pngPath, "png", "", "PNG output path")
	figureCmd.Flags().StringVar(&svgPath, "svg", "", "SVG output path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			fmt.Println("presets:")
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "episim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			logger.Info("configuration written", "path", path)
			return nil
		},
	}
	configInitCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, figureCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&name, "name", def.Name, "run name")
	cmd.Flags().IntVar(&size, "size", def.Population.Size, "population size")
	cmd.Flags().Float64Var(&household, "household", def.Population.ExpectedHouseholdSize, "expected household size")
	cmd.Flags().IntVar(&infected, "infected", def.Population.InitialInfected, "initially infected people")
	cmd.Flags().Float64Var(&movement, "movement", def.Behavior.MovementRatio, "probability of going outside")
	cmd.Flags().Float64Var(&contact, "contact", def.Behavior.ContactRatio, "mean contacts per outing")
	cmd.Flags().Float64Var(&infection, "infection", def.Behavior.InfectionProbability, "transmission probability per contact")
	cmd.Flags().Float64Var(&testRatio, "test", def.Behavior.TestRatio, "daily test probability of infected people")
	cmd.Flags().IntVar(&days, "days", def.Days, "maximum simulated days")
	cmd.Flags().IntVar(&scenarios, "scenarios", def.Scenarios, "number of scenarios")
	cmd.Flags().Uint64Var(&uniformSeed, "uniform-seed", def.Seed.Uniform, "seed of the uniform stream")
	cmd.Flags().Uint64Var(&poissonSeed, "poisson-seed", def.Seed.Poisson, "seed of the Poisson stream")
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = name
	}
	if flags.Changed("size") {
		cfg.Population.Size = size
	}
	if flags.Changed("household") {
		cfg.Population.ExpectedHouseholdSize = household
	}
	if flags.Changed("infected") {
		cfg.Population.InitialInfected = infected
	}
	if flags.Changed("movement") {
		cfg.Behavior.MovementRatio = movement
	}
	if flags.Changed("contact") {
		cfg.Behavior.ContactRatio = contact
	}
	if flags.Changed("infection") {
		cfg.Behavior.InfectionProbability = infection
	}
	if flags.Changed("test") {
		cfg.Behavior.TestRatio = testRatio
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("scenarios") {
		cfg.Scenarios = scenarios
	}
	if flags.Changed("uniform-seed") {
		cfg.Seed.Uniform = uniformSeed
	}
	if flags.Changed("poisson-seed") {
		cfg.Seed.Poisson = poissonSeed
	}

	return cfg, cfg.Validate()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts := []experiment.Option{experiment.WithLogger(logger)}
	if len(metricNames) > 0 {
		opts = append(opts, experiment.WithMetrics(metricNames...))
	}
	exp, err := experiment.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d %s scenarios...\n", cfg.Scenarios, cfg.Name)
	start := time.Now()

	results, err := experiment.NewEnsemble(exp, workers).Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for i, r := range results {
			runID, err := st.Save(cfg, i, r)
			if err != nil {
				return err
			}
			logger.Debug("run saved", "run_id", runID, "dir", st.RunDir(runID))
		}
	}

	fmt.Printf("completed in %v\n\n", elapsed)
	for i, r := range results {
		fmt.Printf("scenario %2d  Total #cases: %d\n", i, r.TotalCases)
	}
	fmt.Println()

	curves := experiment.Curves(results)
	fmt.Println(viz.PlotCurves(curves, 80, 15, "active cases over time"))
	fmt.Println()

	summary := experiment.Summarize(results)
	fmt.Println(viz.RenderHistogram(viz.Histogram(summary.Totals, export.TotalsBins(len(summary.Totals))), 40))

	all := make([]map[string]float64, len(results))
	for i, r := range results {
		all[i] = r.Metrics
	}
	fmt.Println(viz.Report(cfg.Name, summary, viz.MeanMetrics(all)))

	return writeFigures(curves, summary.Totals)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	m, err := viz.NewLiveModel(exp, scenario, time.Duration(dayMillis)*time.Millisecond)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSCENARIO\tTIME\tPEOPLE\tDAYS\tCASES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Population.Size,
			run.Days,
			run.TotalCases,
		)
	}

	return w.Flush()
}
