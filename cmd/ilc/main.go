package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/analysis"
	"github.com/san-kum/ilc/internal/config"
	"github.com/san-kum/ilc/internal/experiment"
	"github.com/san-kum/ilc/internal/ilc"
	"github.com/san-kum/ilc/internal/metrics"
	"github.com/san-kum/ilc/internal/models"
	"github.com/san-kum/ilc/internal/storage"
	"github.com/san-kum/ilc/internal/traj"
	"github.com/san-kum/ilc/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	trials         int
	alpha          float64
	dt             float64
	duration       float64
	dist           float64
	weight         float64
	feedback       bool
	feedforward    bool
	noise          bool
	filterNoise    bool
	relinTime      bool
	relinIter      bool
	thrustDist     float64
	dragDist       float64
	modelDrag      bool
	poke           bool
	pokeStrength   float64
	pokeTime       float64
	pokeDuration   float64
	integratorName string
	seed           int64

	save       bool
	plotFlag   bool
	plotFbResp bool
	live       bool
	exportPath string

	writePNG   bool
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ilc",
		Short: "iterative learning control lab",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "run a learning experiment",
		Long:  "run a learning experiment\n\nsystems: " + strings.Join(models.Names(), ", "),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLearning,
	}
	addParamFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "persist trial data")
	runCmd.Flags().BoolVar(&plotFlag, "plot", false, "write trajectory PNGs")
	runCmd.Flags().BoolVar(&plotFbResp, "plot-fb-resp", false, "check the probed feedback response")
	runCmd.Flags().BoolVar(&live, "live", false, "watch trials in a live view")
	runCmd.Flags().StringVar(&exportPath, "export", "", "write a JSON summary to this path (- for stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&writePNG, "png", false, "also write PNG plots")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "convergence and spectrum analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [system]",
		Short: "sweep one parameter across a range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepRuns,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "alpha", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.2, "lowest value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "highest value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 4, "concurrent runs")

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "run with a live trial view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [system]",
		Short: "compare integrators on the same learning problem",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareIntegrators,
	}
	addParamFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-16s %s, %d trials\n", name, p.System, p.Trials)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, sweepCmd, liveCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&trials, "trials", config.DefaultTrials, "number of learning trials")
	f.Float64Var(&alpha, "alpha", config.DefaultAlpha, "update step scale")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "trajectory duration")
	f.Float64Var(&dist, "dist", config.DefaultDist, "translation distance")
	f.Float64Var(&weight, "w", config.DefaultWeight, "correction damping weight")
	f.BoolVar(&feedback, "feedback", false, "close the loop during trials")
	f.BoolVar(&feedforward, "feedforward", false, "seed the nominal control from the reference")
	f.BoolVar(&noise, "noise", false, "add measurement noise")
	f.BoolVar(&filterNoise, "filter", false, "smooth measurements before the update")
	f.BoolVar(&relinTime, "relin-time", true, "relinearize along the trajectory")
	f.BoolVar(&relinIter, "relin-iter", true, "relinearize every trial")
	f.Float64Var(&thrustDist, "thrust-dist", 1.0, "thrust gain disturbance")
	f.Float64Var(&dragDist, "drag-dist", 0.0, "drag disturbance coefficient")
	f.BoolVar(&modelDrag, "model-drag", false, "let the nominal model know the drag")
	f.BoolVar(&poke, "poke", false, "inject an impulse on the final trial")
	f.Float64Var(&pokeStrength, "poke-strength", config.DefaultPokeStrength, "impulse strength")
	f.Float64Var(&pokeTime, "poke-time", config.DefaultPokeTime, "impulse center time")
	f.Float64Var(&pokeDuration, "poke-duration", config.DefaultPokeDuration, "impulse window length")
	f.StringVar(&integratorName, "integrator", config.DefaultIntegrator, "integrator (euler, rk4)")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "noise seed")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// applyFlags builds the effective config: defaults, then preset or config
// file, then every flag the user set explicitly.
func applyFlags(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cp := *p
		cfg = &cp
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.System = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("dist") {
		cfg.Dist = dist
	}
	if flags.Changed("w") {
		cfg.Weight = weight
	}
	if flags.Changed("feedback") {
		cfg.Feedback = feedback
	}
	if flags.Changed("feedforward") {
		cfg.FeedForward = feedforward
	}
	if flags.Changed("noise") {
		cfg.Noise = noise
	}
	if flags.Changed("filter") {
		cfg.Filter = filterNoise
	}
	if flags.Changed("relin-time") {
		cfg.RelinTime = relinTime
	}
	if flags.Changed("relin-iter") {
		cfg.RelinIter = relinIter
	}
	if flags.Changed("thrust-dist") {
		cfg.ThrustDist = thrustDist
	}
	if flags.Changed("drag-dist") {
		cfg.DragDist = dragDist
	}
	if flags.Changed("model-drag") {
		cfg.ModelDrag = modelDrag
	}
	if flags.Changed("poke") {
		cfg.Poke = poke
	}
	if flags.Changed("poke-strength") {
		cfg.PokeStrength = pokeStrength
	}
	if flags.Changed("poke-time") {
		cfg.PokeTime = pokeTime
	}
	if flags.Changed("poke-duration") {
		cfg.PokeDuration = pokeDuration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integratorName
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("save") {
		cfg.Save = save
	}
	if flags.Changed("plot") {
		cfg.Plot = plotFlag
	}
	if flags.Changed("plot-fb-resp") {
		cfg.PlotFbResp = plotFbResp
	}
	if flags.Changed("live") {
		cfg.Live = live
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLearning(cmd *cobra.Command, args []string) error {
	cfg, err := applyFlags(cmd, args)
	if err != nil {
		return err
	}
	return executeRun(cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := applyFlags(cmd, args)
	if err != nil {
		return err
	}
	cfg.Live = true
	return executeRun(cfg)
}

func executeRun(cfg *config.Config) error {
	fmt.Println(viz.ParamTable("ILC "+strings.ToUpper(cfg.System), paramRows(cfg)))

	if cfg.Live {
		return runLiveView(cfg)
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	fmt.Printf("running %s learning, %d trials, %d steps each...\n", cfg.System, cfg.Trials, steps)

	start := time.Now()
	report, err := ilc.Run(context.Background(), cfg.Params(), func(rec ilc.TrialRecord) {
		fmt.Printf("trial %d: avg pos error %.6f, max %.6f\n", rec.Trial, rec.MeanAbsError, rec.MaxAbsError)
	})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	means := report.MeanErrors()
	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean abs error per trial"),
		))
		if rate, ok := analysis.ConvergenceRate(means); ok {
			fmt.Printf("convergence rate: %.3f per trial\n", rate)
		}
	}

	if cfg.PlotFbResp {
		printProbeSummary(report)
	}

	if cfg.Save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, report)
		if err != nil {
			return err
		}
		fmt.Printf("data written to %s (latest)\n", filepath.Join(cfg.DataDir, runID))
	}

	if exportPath == "-" {
		if err := storage.ExportJSONStdout(cfg, report); err != nil {
			return err
		}
	} else if exportPath != "" {
		if err := storage.ExportJSON(exportPath, cfg, report); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", exportPath)
	}

	if cfg.Plot {
		if err := writeTrajectoryPNGs(cfg.System, report.Times, report.Desired, recordPositions(report)); err != nil {
			return err
		}
	}

	return nil
}

func runLiveView(cfg *config.Config) error {
	// Buffered so the runner never blocks when the view quits early.
	events := make(chan tea.Msg, cfg.Trials+1)
	go func() {
		_, err := ilc.Run(context.Background(), cfg.Params(), func(rec ilc.TrialRecord) {
			events <- viz.TrialMsg(rec)
		})
		events <- viz.DoneMsg{Err: err}
	}()

	p := tea.NewProgram(viz.NewModel(cfg.System, cfg.Trials, events))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func paramRows(cfg *config.Config) [][2]string {
	rows := [][2]string{
		{"system", cfg.System},
		{"trials", fmt.Sprintf("%d", cfg.Trials)},
		{"dt", fmt.Sprintf("%g s", cfg.Dt)},
		{"duration", fmt.Sprintf("%g s", cfg.Duration)},
		{"dist", fmt.Sprintf("%g m", cfg.Dist)},
		{"alpha", fmt.Sprintf("%g", cfg.Alpha)},
		{"w", fmt.Sprintf("%g", cfg.Weight)},
		{"feedback", fmt.Sprintf("%t", cfg.Feedback)},
		{"feedforward", fmt.Sprintf("%t", cfg.FeedForward)},
		{"integrator", cfg.Integrator},
	}
	if cfg.Noise {
		rows = append(rows, [2]string{"noise", fmt.Sprintf("on, filter %t, seed %d", cfg.Filter, cfg.Seed)})
	}
	if cfg.ThrustDist != 1.0 || cfg.DragDist != 0 {
		rows = append(rows, [2]string{"disturbance", fmt.Sprintf("thrust %g, drag %g", cfg.ThrustDist, cfg.DragDist)})
	}
	if cfg.Poke {
		rows = append(rows, [2]string{"poke", fmt.Sprintf("%g at %gs for %gs", cfg.PokeStrength, cfg.PokeTime, cfg.PokeDuration)})
	}
	return rows
}

func printProbeSummary(report *ilc.Report) {
	final := report.Final()
	if final == nil || len(final.Responses) == 0 {
		fmt.Println("no feedback response recorded")
		return
	}
	if len(final.Analytic) == 0 {
		fmt.Printf("feedback response probed at %d steps\n", len(final.Responses))
		return
	}

	worst := 0.0
	for k, resp := range final.Responses {
		if k >= len(final.Analytic) {
			break
		}
		worst = math.Max(worst, maxAbsDiff(resp, final.Analytic[k]))
	}
	if worst > 1e-4 {
		fmt.Printf("warning: feedback response deviates from the analytic law by %.2e\n", worst)
		return
	}
	fmt.Printf("feedback response matches the analytic law within %.2e\n", worst)
}

func maxAbsDiff(a, b *mat.Dense) float64 {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return math.Inf(1)
	}
	worst := 0.0
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			worst = math.Max(worst, math.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return worst
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tTRIALS\tDT\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%.2fs\n",
			run.ID,
			run.System,
			run.Time.Format("2006-01-02 15:04:05"),
			run.Trials,
			run.Dt,
			run.Duration,
		)
	}
	return w.Flush()
}

// desiredFor regenerates the conditioned reference a stored run tracked.
// The trajectory is deterministic in the config, so it is not persisted.
func desiredFor(run *storage.Run) ([][]float64, []float64, error) {
	if len(run.Positions) == 0 || len(run.Positions[0]) == 0 {
		return nil, nil, fmt.Errorf("run %s has no position data", run.ID)
	}
	dims := len(run.Positions[0][0])
	ref, err := traj.Generate(run.Config.Dist, run.Config.Duration, run.Config.Dt, dims)
	if err != nil {
		return nil, nil, err
	}
	models.Condition(run.Config.System, ref.Pos, ref.Acc)
	return ref.Pos, ref.Times, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	des, times, err := desiredFor(run)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", run.ID)
	fmt.Printf("system: %s\n", run.Config.System)
	fmt.Printf("trials: %d\n\n", len(run.Positions))

	axes := []string{"x", "y", "z"}
	dims := len(run.Positions[0][0])
	final := run.Positions[len(run.Positions)-1]
	for d := 0; d < dims && d < len(axes); d++ {
		graph := asciigraph.Plot(columnOf(final, d),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s position (final trial)", axes[d])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	means := make([]float64, len(run.Positions))
	for i, pos := range run.Positions {
		means[i] = metrics.MeanAbs(diffRows(pos, des))
	}
	if len(means) > 1 {
		fmt.Println(asciigraph.Plot(means,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean abs error per trial"),
		))
	}

	if writePNG {
		if err := writeTrajectoryPNGs(run.Config.System, times, des, run.Positions); err != nil {
			return err
		}
		path := fmt.Sprintf("ilc_%s_convergence.png", run.Config.System)
		if err := viz.ConvergencePNG(path, means); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	des, _, err := desiredFor(run)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", run.ID)
	fmt.Printf("system: %s\n\n", run.Config.System)

	means := make([]float64, len(run.Positions))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tMEAN ERR\tMAX ERR")
	for i, pos := range run.Positions {
		diff := diffRows(pos, des)
		means[i] = metrics.MeanAbs(diff)
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\n", i, means[i], metrics.MaxAbs(diff))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	if rate, ok := analysis.ConvergenceRate(means); ok {
		fmt.Printf("convergence rate: %.3f per trial\n", rate)
		if rate < 1 {
			fmt.Printf("error halves every %.1f trials\n", math.Log(0.5)/math.Log(rate))
		}
	}

	final := run.Positions[len(run.Positions)-1]
	n := len(final)
	if len(des) < n {
		n = len(des)
	}
	errSeries := make([]float64, n)
	for i := 0; i < n; i++ {
		errSeries[i] = final[i][0] - des[i][0]
	}
	mags, df := analysis.Spectrum(errSeries, run.Config.Dt)
	if len(mags) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(mags,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("residual error spectrum"),
		))
		dom := analysis.DominantFrequency(mags, df)
		fmt.Printf("dominant frequency: %.3f hz\n", dom)
		if dom > 0 {
			fmt.Printf("period: %.3f s\n", 1/dom)
		}
	}

	return nil
}

func sweepRuns(cmd *cobra.Command, args []string) error {
	cfg, err := applyFlags(cmd, args)
	if err != nil {
		return err
	}

	values := experiment.Range(sweepMin, sweepMax, sweepSteps)
	jobs, err := experiment.ParamJobs(cfg.Params(), sweepParam, values)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s from %g to %g on %s, %d workers\n\n",
		sweepParam, sweepMin, sweepMax, cfg.System, workers)

	start := time.Now()
	outcomes := experiment.Run(context.Background(), jobs, workers)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tFINAL ERR\tRATE")
	bestIdx := -1
	bestErr := math.Inf(1)
	for i, out := range outcomes {
		if out.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\n", out.Job.Name, out.Err)
			continue
		}
		means := out.Report.MeanErrors()
		finalErr := means[len(means)-1]
		rateStr := "-"
		if rate, ok := analysis.ConvergenceRate(means); ok {
			rateStr = fmt.Sprintf("%.3f", rate)
		}
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", out.Job.Name, finalErr, rateStr)
		if finalErr < bestErr {
			bestErr = finalErr
			bestIdx = i
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	if bestIdx >= 0 {
		fmt.Printf("best: %s (final err %.6g)\n", outcomes[bestIdx].Job.Name, bestErr)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := applyFlags(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on %s (dt=%g, %d trials)\n\n", cfg.System, cfg.Dt, cfg.Trials)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_err", "rate", "time_ms")
	fmt.Println(strings.Repeat("-", 56))

	for _, name := range []string{"euler", "rk4"} {
		p := cfg.Params()
		p.Integrator = name

		start := time.Now()
		report, err := ilc.Run(context.Background(), p, nil)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		means := report.MeanErrors()
		rateStr := "-"
		if rate, ok := analysis.ConvergenceRate(means); ok {
			rateStr = fmt.Sprintf("%.3f", rate)
		}
		fmt.Printf("%-12s  %12.6g  %12s  %12.2f\n",
			name, means[len(means)-1], rateStr, float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func writeTrajectoryPNGs(system string, times []float64, desired [][]float64, positions [][][]float64) error {
	if len(desired) == 0 || len(desired[0]) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	axes := []string{"x", "y", "z"}
	dims := len(desired[0])
	for d := 0; d < dims && d < len(axes); d++ {
		path := fmt.Sprintf("ilc_%s.png", system)
		title := strings.ToUpper(system)
		if dims > 1 {
			path = fmt.Sprintf("ilc_%s_%s.png", system, axes[d])
			title = fmt.Sprintf("%s (%s axis)", strings.ToUpper(system), axes[d])
		}
		trialCols := make([][]float64, len(positions))
		for i, pos := range positions {
			trialCols[i] = columnOf(pos, d)
		}
		if err := viz.TrajectoryPNG(path, title, times, columnOf(desired, d), trialCols); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func recordPositions(report *ilc.Report) [][][]float64 {
	positions := make([][][]float64, len(report.Records))
	for i, rec := range report.Records {
		positions[i] = rec.Positions
	}
	return positions
}

func columnOf(rows [][]float64, j int) []float64 {
	col := make([]float64, 0, len(rows))
	for _, row := range rows {
		if j < len(row) {
			col = append(col, row[j])
		}
	}
	return col
}

func diffRows(pos, des [][]float64) [][]float64 {
	n := len(pos)
	if len(des) < n {
		n = len(des)
	}
	diff := make([][]float64, n)
	for i := 0; i < n; i++ {
		m := len(pos[i])
		if len(des[i]) < m {
			m = len(des[i])
		}
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = pos[i][j] - des[i][j]
		}
		diff[i] = row
	}
	return diff
}
