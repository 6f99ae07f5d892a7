package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/config"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/fxmath"
	"github.com/san-kum/fxmath/internal/optim"
	"github.com/san-kum/fxmath/internal/storage"
	"github.com/san-kum/fxmath/internal/tui"
	"github.com/san-kum/fxmath/internal/viz"
)

var (
	dataDir    string
	configFile string
	theme      string
	format     string
	iterations int
	base       float64
	threshold  float64
	workers    int
	jsonOut    bool
	strict     bool
	outPath    string
	// sweep
	strategy string
	preset   string
	start    float64
	limit    float64
	steps    int
	save     bool
	spectrum bool
	maxN     int
	tol      float64
	width    int
	height   int
)

// main registers the commands and runs the explorer when no subcommand is
// given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fxmath",
		Short: "fixed-point elementary functions lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(theme)
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".fxmath", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&theme, "theme", "cyberpunk", "color theme")
	pf.StringVarP(&format, "format", "f", config.DefaultFormat, "format alias (XS, S, M, L, XL) or name")
	pf.IntVarP(&iterations, "iterations", "n", config.DefaultIterations, "cordic iterations")
	pf.Float64Var(&base, "base", config.DefaultBase, "log base / pow base")

	evalCmd := &cobra.Command{
		Use:   "eval [x...]",
		Short: "evaluate every function at x and compare with float64",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEval,
	}
	evalCmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "pass threshold on |diff|")
	evalCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "concurrent evaluations")
	evalCmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")
	evalCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when an entry fails")
	evalCmd.Flags().StringVar(&outPath, "out", "", "also write each report as JSON to this file")

	fnCmd := &cobra.Command{
		Use:   "fn [name] [x] [y]",
		Short: "evaluate one function, e.g. sin_cordic 0.5 or pow_lut 2 10",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runFn,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list functions and strategies",
		RunE:  listFunctions,
	}

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "list fixed-point formats",
		RunE:  listFormats,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [op]",
		Short: "error sweep of one function over a range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addSweepFlags(sweepCmd)
	sweepCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	sweepCmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the error spectrum")

	convergeCmd := &cobra.Command{
		Use:   "converge [op]",
		Short: "cordic error versus iteration count",
		Args:  cobra.ExactArgs(1),
		RunE:  runConverge,
	}
	addSweepFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&maxN, "max-n", 32, "largest iteration count")

	tuneCmd := &cobra.Command{
		Use:   "tune [op]",
		Short: "find the narrowest format and fewest iterations within a tolerance",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	addSweepFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&tol, "tol", 1e-4, "max absolute error")
	tuneCmd.Flags().IntVar(&maxN, "max-n", 32, "largest iteration count")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored sweeps",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the error spectrum")

	presetsCmd := &cobra.Command{
		Use:   "presets [op]",
		Short: "list available presets for a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for function: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				c := config.GetPreset(args[0], p)
				fmt.Printf("  %-12s %s %-8s N=%-3d [%g, %g]\n", p, c.Format, c.Sweep.Strategy, c.Iterations, c.Sweep.Start, c.Sweep.Limit)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive explorer",
		RunE:  runTUI,
	}

	for _, c := range []*cobra.Command{sweepCmd, convergeCmd, plotCmd} {
		c.Flags().IntVar(&width, "width", viz.DefaultPlotSize.Width, "plot width")
		c.Flags().IntVar(&height, "height", viz.DefaultPlotSize.Height, "plot height")
	}

	rootCmd.AddCommand(evalCmd, fnCmd, listCmd, formatsCmd, sweepCmd, convergeCmd, tuneCmd, runsCmd, plotCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&strategy, "strategy", "", "strategy (lut, taylor, cordic, rational, exact)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&start, "start", 0, "range start")
	cmd.Flags().Float64Var(&limit, "limit", 0, "range end")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of samples")
}

// loadConfig layers defaults, the config file, a preset, then explicit
// flags.
func loadConfig(cmd *cobra.Command, op string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	if preset != "" {
		p := config.GetPreset(op, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(op))
		}
		c := *p
		cfg = &c
	}
	if op != "" {
		cfg.Sweep.Op = op
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("base") {
		cfg.Base = base
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("strategy") {
		cfg.Sweep.Strategy = strategy
	}
	if flags.Changed("start") {
		cfg.Sweep.Start = start
	}
	if flags.Changed("limit") {
		cfg.Sweep.Limit = limit
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = steps
	}
	// the op's own default range and strategy when nothing else set them
	if preset == "" && configFile == "" && op != "" {
		if names := config.ListPresets(op); len(names) > 0 {
			p := config.GetPreset(op, names[0])
			if !flags.Changed("strategy") {
				cfg.Sweep.Strategy = p.Sweep.Strategy
			}
			if !flags.Changed("start") {
				cfg.Sweep.Start = p.Sweep.Start
			}
			if !flags.Changed("limit") {
				cfg.Sweep.Limit = p.Sweep.Limit
			}
		}
	}
	return cfg, nil
}

func plotSize() viz.PlotSize {
	return viz.PlotSize{Width: width, Height: height}
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}

	xs := make([]float64, len(args))
	for i, a := range args {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid input %q: %w", a, err)
		}
		xs[i] = x
	}

	reports, err := batch.RunInputs(cmd.Context(), xs, cfg.BatchOptions())
	if err != nil {
		return err
	}

	failing := 0
	for i, r := range reports {
		failing += r.Failing
		if outPath != "" {
			if err := storage.ExportReport(reportPath(outPath, i, len(reports)), r); err != nil {
				return err
			}
		}
		if jsonOut {
			if err := storage.WriteReport(os.Stdout, r); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(viz.Report(r))
	}
	if strict && failing > 0 {
		return fmt.Errorf("%d entries outside threshold", failing)
	}
	return nil
}

// reportPath numbers the output file when more than one input is evaluated.
func reportPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

func runFn(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	op, s, err := fxmath.ParseName(args[0])
	if err != nil {
		return err
	}
	ev, err := fxmath.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid input %q: %w", args[1], err)
	}
	y := cfg.Base
	if len(args) == 3 {
		if y, err = strconv.ParseFloat(args[2], 64); err != nil {
			return fmt.Errorf("invalid input %q: %w", args[2], err)
		}
	}

	res, err := ev.Eval(op, s, x, y, cfg.Iterations)
	if err != nil {
		return err
	}
	a, b := res.Input, res.Second
	if op == fxmath.OpPow {
		a, b = b, a
	}
	ref := analysis.Reference(op)(a, b)

	st := viz.Current()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", st.Label.Render("function"), args[0])
	fmt.Fprintf(w, "%s\t%s\n", st.Label.Render("format"), ev.Info.Name)
	fmt.Fprintf(w, "%s\t%g\n", st.Label.Render("input"), res.Input)
	if op.Binary() {
		fmt.Fprintf(w, "%s\t%g\n", st.Label.Render("second"), res.Second)
	}
	fmt.Fprintf(w, "%s\t%s\n", st.Label.Render("result"), st.Value.Render(res.Exact))
	fmt.Fprintf(w, "%s\t%.17g\n", st.Label.Render("reference"), ref)
	fmt.Fprintf(w, "%s\t%.3e\n", st.Label.Render("error"), res.Value-ref)
	if res.Overflow {
		fmt.Fprintf(w, "%s\t%s\n", st.Label.Render("overflow"), st.Fail.Render("saturated"))
	}
	return w.Flush()
}

func listFunctions(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OP\tARGS\tNAMES")
	for _, op := range fxmath.Ops() {
		arity := "x"
		if op.Binary() {
			arity = "x y"
		}
		names := ""
		for i, s := range op.Strategies() {
			if i > 0 {
				names += " "
			}
			names += fxmath.Name(op, s)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", op, arity, names)
	}
	return w.Flush()
}

func listFormats(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tNAME\tWIDTH\tINT\tFRAC\tULP\tMIN\tMAX")
	for _, f := range fixed.Formats() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%g\t%g\t%g\n",
			f.Alias, f.Name, f.Width, f.IntBits, f.Frac, f.ULP, f.Min, f.Max)
	}
	return w.Flush()
}

func printStats(r *analysis.SweepResult) {
	st := viz.Current()
	s := r.Stats
	fmt.Printf("%s %s  %s %d  %s %d  %s %d\n",
		st.Title.Render(fxmath.Name(r.Config.Op, r.Config.Strategy)), r.Config.Format,
		st.Label.Render("samples"), s.N,
		st.Label.Render("undefined"), s.Skipped,
		st.Label.Render("failures"), s.Failures)
	fmt.Printf("max %.3e at x=%g  mean %.3e  rms %.3e  max ulp %.1f\n",
		s.MaxAbs, s.WorstX, s.MeanAbs, s.RMS, s.MaxULP)
}

func printSpectrum(r *analysis.SweepResult) {
	ps := analysis.PowerSpectrum(r.Errors())
	fmt.Println(viz.SpectrumPlot(ps, plotSize()))
	if bin := analysis.DominantBin(ps); bin > 0 {
		period := (r.Config.Limit - r.Config.Start) / float64(bin)
		fmt.Printf("dominant error period: %.6g\n", period)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sc, err := cfg.SweepConfig()
	if err != nil {
		return err
	}
	res, err := analysis.Sweep(sc)
	if err != nil {
		return err
	}

	printStats(res)
	fmt.Println()
	fmt.Println(viz.SweepPlot(res, plotSize()))
	if spectrum {
		fmt.Println()
		printSpectrum(res)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run: %s\n", runID)
	}
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	cfg.Sweep.Strategy = fxmath.CORDIC.String()
	sc, err := cfg.SweepConfig()
	if err != nil {
		return err
	}
	points, err := analysis.Convergence(sc, min(max(maxN, 1), 62))
	if err != nil {
		return err
	}

	fmt.Println(viz.ConvergencePlot(points, plotSize()))
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tMAX\tRMS\tULP")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%.3e\t%.3e\t%.1f\n", p.N, p.MaxAbs, p.RMS, p.MaxULP)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sc, err := cfg.SweepConfig()
	if err != nil {
		return err
	}

	var formats []string
	for _, f := range fixed.Formats() {
		formats = append(formats, f.Alias)
	}
	ns := make([]int, 0, maxN)
	for n := 1; n <= min(max(maxN, 1), 62); n++ {
		ns = append(ns, n)
	}

	best, _, err := optim.NewGridSearch(formats, ns).Search(cmd.Context(), sc, tol)
	if err != nil {
		return err
	}
	fmt.Printf("%s within %g: format %s (%d bits)", fxmath.Name(sc.Op, sc.Strategy), tol, best.Format, best.Width)
	if sc.Strategy == fxmath.CORDIC {
		fmt.Printf(", N=%d", best.Iterations)
	}
	fmt.Printf("\nmax %.3e  rms %.3e  max ulp %.1f\n", best.Stats.MaxAbs, best.Stats.RMS, best.Stats.MaxULP)
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
	fmt.Fprintln(w, "ID\tFUNCTION\tFORMAT\tTIME\tN\tRANGE\tMAX\tULP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t[%g, %g]\t%.3e\t%.1f\n",
			run.ID,
			run.Function,
			run.Format,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Iterations,
			run.Start, run.Limit,
			run.Stats.MaxAbs,
			run.Stats.MaxULP,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := st.Result(args[0])
	if err != nil {
		return err
	}
	printStats(res)
	fmt.Println()
	fmt.Println(viz.FunctionPlot(res, plotSize()))
	fmt.Println()
	fmt.Println(viz.SweepPlot(res, plotSize()))
	if spectrum {
		fmt.Println()
		printSpectrum(res)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	return tui.RunInteractive(cfg)
}
