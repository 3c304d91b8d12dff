package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/adtzlr/pacopy/internal/analysis"
	"github.com/adtzlr/pacopy/internal/config"
	"github.com/adtzlr/pacopy/internal/continuation"
	"github.com/adtzlr/pacopy/internal/export"
	"github.com/adtzlr/pacopy/internal/metrics"
	"github.com/adtzlr/pacopy/internal/problems"
	"github.com/adtzlr/pacopy/internal/storage"
	"github.com/adtzlr/pacopy/internal/viz"
)

var (
	dataDir    string
	algorithm  string
	maxSteps   int
	stepSize   float64
	newtonTol  float64
	maxNewton  int
	growth     float64
	shrink     float64
	lowWater   int
	highWater  int
	minStep    float64
	maxStep    float64
	lmbda0     float64
	gridNodes  int
	configFile string
	preset     string
	outFile    string
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pacopy",
		Short: "numerical continuation of nonlinear equations f(u, lambda) = 0",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pacopy", "data directory")

	traceCmd := &cobra.Command{
		Use:   "trace [problem]",
		Short: "trace a solution branch",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	addRunFlags(traceCmd)

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "trace a branch with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [problem]",
		Short: "run natural and euler-newton on the same problem",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored branch",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "report turning points of a stored branch",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export branch data as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a response diagram as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "branch.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list built-in problems",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range problems.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a starter config file with documented defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "pacopy.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(traceCmd, liveCmd, compareCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportSVGCmd, problemsCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&algorithm, "algorithm", "euler-newton", "continuation algorithm (natural, euler-newton)")
	cmd.Flags().IntVar(&maxSteps, "steps", config.DefaultMaxSteps, "continuation steps beyond the initial point")
	cmd.Flags().Float64Var(&stepSize, "step-size", config.DefaultStepSize, "lambda increment (natural) or initial arclength step (euler-newton)")
	cmd.Flags().Float64Var(&newtonTol, "newton-tol", config.DefaultNewtonTol, "corrector tolerance")
	cmd.Flags().IntVar(&maxNewton, "max-newton", config.DefaultMaxNewtonSteps, "corrector iteration budget")
	cmd.Flags().Float64Var(&growth, "growth", config.DefaultGrowthFactor, "step growth factor after cheap corrections")
	cmd.Flags().Float64Var(&shrink, "shrink", config.DefaultShrinkFactor, "step shrink factor after failures")
	cmd.Flags().IntVar(&lowWater, "low-watermark", config.DefaultLowWatermark, "iteration count counted as cheap")
	cmd.Flags().IntVar(&highWater, "high-watermark", config.DefaultHighWatermark, "iteration count that triggers a shrink")
	cmd.Flags().Float64Var(&minStep, "min-step", config.DefaultMinStepSize, "fatal step size underflow threshold")
	cmd.Flags().Float64Var(&maxStep, "max-step", 0, "step size growth cap (0 = unbounded)")
	cmd.Flags().Float64Var(&lmbda0, "lambda0", 0, "starting parameter value (0 = problem default)")
	cmd.Flags().IntVar(&gridNodes, "grid-nodes", config.DefaultGridNodes, "grid nodes for discretized problems")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig merges preset, config file and flags. Flags override the file,
// the file overrides the preset.
func buildConfig(cmd *cobra.Command, problem string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Problem = problem

	if preset != "" {
		p := config.GetPreset(problem, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
		*cfg = *p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.Problem = problem
		*cfg = *fileCfg
	}

	if cmd.Flags().Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if cmd.Flags().Changed("steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("step-size") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("newton-tol") {
		cfg.NewtonTol = newtonTol
	}
	if cmd.Flags().Changed("max-newton") {
		cfg.MaxNewtonSteps = maxNewton
	}
	if cmd.Flags().Changed("growth") {
		cfg.StepControl.GrowthFactor = growth
	}
	if cmd.Flags().Changed("shrink") {
		cfg.StepControl.ShrinkFactor = shrink
	}
	if cmd.Flags().Changed("low-watermark") {
		cfg.StepControl.LowWatermark = lowWater
	}
	if cmd.Flags().Changed("high-watermark") {
		cfg.StepControl.HighWatermark = highWater
	}
	if cmd.Flags().Changed("min-step") {
		cfg.StepControl.MinStepSize = minStep
	}
	if cmd.Flags().Changed("max-step") {
		cfg.StepControl.MaxStepSize = maxStep
	}
	if cmd.Flags().Changed("lambda0") {
		cfg.Lmbda0 = lmbda0
	}
	if cmd.Flags().Changed("grid-nodes") {
		cfg.GridNodes = gridNodes
	}

	return cfg, cfg.Validate()
}

func stepController(cfg *config.Config) continuation.StepController {
	sc := continuation.StepController{
		GrowthFactor:  cfg.StepControl.GrowthFactor,
		ShrinkFactor:  cfg.StepControl.ShrinkFactor,
		LowWatermark:  cfg.StepControl.LowWatermark,
		HighWatermark: cfg.StepControl.HighWatermark,
		MinStepSize:   cfg.StepControl.MinStepSize,
		MaxStepSize:   cfg.StepControl.MaxStepSize,
	}
	if sc.MaxStepSize <= 0 {
		sc.MaxStepSize = math.Inf(1)
	}
	return sc
}

// runContinuation builds the problem and runs the configured driver. Like the
// drivers themselves it never returns a nil branch, so callers may save or
// inspect it unconditionally.
func runContinuation(cfg *config.Config, cb continuation.Callback[[]float64], obs ...continuation.Observer[[]float64]) (*continuation.Branch[[]float64], error) {
	prob, err := problems.NewRegistry().Get(cfg.Problem, cfg.GridNodes)
	if err != nil {
		return &continuation.Branch[[]float64]{}, err
	}
	u0, start := prob.Initial()
	if cfg.Lmbda0 != 0 {
		start = cfg.Lmbda0
	}

	switch cfg.Algorithm {
	case "natural":
		opts := continuation.NaturalOptions[[]float64]{
			MaxSteps:       cfg.MaxSteps,
			StepSize:       cfg.StepSize,
			NewtonTol:      cfg.NewtonTol,
			MaxNewtonSteps: cfg.MaxNewtonSteps,
			Observers:      obs,
		}
		return continuation.Natural[[]float64](prob, u0, start, cb, opts)
	case "euler-newton":
		opts := continuation.EulerNewtonOptions[[]float64]{
			MaxSteps:       cfg.MaxSteps,
			StepSize:       cfg.StepSize,
			NewtonTol:      cfg.NewtonTol,
			MaxNewtonSteps: cfg.MaxNewtonSteps,
			Steps:          stepController(cfg),
			Observers:      obs,
		}
		return continuation.EulerNewton[[]float64](prob, u0, start, cb, opts)
	default:
		return &continuation.Branch[[]float64]{}, fmt.Errorf("unknown algorithm: %s", cfg.Algorithm)
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	recorder := metrics.NewRecorder(metrics.Default()...)

	fmt.Printf("tracing %s (%s)...\n", cfg.Problem, cfg.Algorithm)
	start := time.Now()
	branch, runErr := runContinuation(cfg, nil, recorder)
	elapsed := time.Since(start)

	// Nothing accepted means there is no run worth persisting, only an error
	// to report (unknown problem, bad setup, or a failed initial solve).
	if runErr != nil && branch.Len() == 0 {
		return runErr
	}

	meta := storage.RunMetadata{
		Problem:        cfg.Problem,
		Algorithm:      cfg.Algorithm,
		Lmbda0:         cfg.Lmbda0,
		MaxSteps:       cfg.MaxSteps,
		StepSize:       cfg.StepSize,
		NewtonTol:      cfg.NewtonTol,
		MaxNewtonSteps: cfg.MaxNewtonSteps,
		Metrics:        recorder.Values(),
	}
	runID, err := st.Save(meta, branch)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("accepted steps: %d\n", branch.Len())
	fmt.Println("\nmetrics:")
	for name, val := range recorder.Values() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if runErr != nil {
		if last, ok := branch.Last(); ok {
			fmt.Printf("\nlast accepted: step %d, lambda=%.6f, |u|=%.6f\n",
				last.Step, last.Lmbda, vecNorm(last.U))
		}
		return runErr
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	return viz.Run(cfg.Problem, func(emit func(viz.PointMsg)) error {
		_, err := runContinuation(cfg, nil, emitter(emit))
		return err
	})
}

// emitter adapts the live view's emit function to the driver observer hook.
type emitter func(viz.PointMsg)

func (e emitter) OnAccept(step int, lmbda float64, u []float64, tan continuation.Tangent[[]float64], ds float64, newtonIters int) {
	e(viz.PointMsg{Step: step, Lmbda: lmbda, Norm: vecNorm(u), Ds: ds, Iters: newtonIters})
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tLAMBDA_MAX\tFOLDS\tRESULT")

	for _, alg := range []string{"natural", "euler-newton"} {
		runCfg := *cfg
		runCfg.Algorithm = alg

		recorder := metrics.NewRecorder(metrics.Default()...)
		branch, runErr := runContinuation(&runCfg, nil, recorder)

		result := "ok"
		if runErr != nil {
			switch {
			case errors.Is(runErr, continuation.ErrNoConvergence):
				result = "no convergence"
			case errors.Is(runErr, continuation.ErrStepSizeUnderflow):
				result = "step underflow"
			default:
				result = runErr.Error()
			}
		}
		vals := recorder.Values()
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.0f\t%s\n",
			alg, branch.Len(), vals["lambda_max"], vals["folds"], result)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tALGORITHM\tTIME\tSTEPS\tSTEP_SIZE\tTOL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4g\t%.4g\n",
			run.ID,
			run.Problem,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.StepSize,
			run.NewtonTol,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	lmbdas, norms, _, err := st.LoadBranch(args[0])
	if err != nil {
		return err
	}
	if len(lmbdas) < 2 {
		return fmt.Errorf("branch too short to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("problem: %s (%s)\n", meta.Problem, meta.Algorithm)
	fmt.Printf("accepted steps: %d\n\n", len(lmbdas))

	fmt.Println(asciigraph.Plot(lmbdas,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("lambda per accepted step"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(norms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|u| per accepted step"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	lmbdas, _, _, err := st.LoadBranch(args[0])
	if err != nil {
		return err
	}
	if len(lmbdas) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("turning point analysis: %s\n", meta.ID)
	fmt.Printf("problem: %s (%s)\n\n", meta.Problem, meta.Algorithm)

	min, max := analysis.LmbdaRange(lmbdas)
	fmt.Printf("lambda range: [%.6f, %.6f]\n", min, max)

	folds := analysis.Folds(lmbdas)
	if len(folds) == 0 {
		fmt.Println("no turning points found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLAMBDA\tKIND")
	for _, f := range folds {
		kind := "min"
		if f.Max {
			kind = "max"
		}
		fmt.Fprintf(w, "%d\t%.6f\t%s\n", f.Index, f.Lmbda, kind)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	lmbdas, norms, states, err := storage.New(dataDir).LoadBranch(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"step", "lambda", "norm"}
	if len(states) > 0 {
		for i := range states[0] {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range lmbdas {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(lmbdas[i], 'g', 17, 64),
			strconv.FormatFloat(norms[i], 'g', 17, 64),
		}
		for _, v := range states[i] {
			row = append(row, strconv.FormatFloat(v, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	lmbdas, norms, _, err := storage.New(dataDir).LoadBranch(args[0])
	if err != nil {
		return err
	}
	if err := export.WriteResponseDiagram(outFile, lmbdas, norms, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func vecNorm(u []float64) float64 {
	sum := 0.0
	for _, v := range u {
		sum += v * v
	}
	return math.Sqrt(sum)
}
