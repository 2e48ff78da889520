package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fdtd1d/internal/automation"
	"github.com/san-kum/fdtd1d/internal/config"
	"github.com/san-kum/fdtd1d/internal/experiment"
	"github.com/san-kum/fdtd1d/internal/export"
	"github.com/san-kum/fdtd1d/internal/optim"
	"github.com/san-kum/fdtd1d/internal/spectral"
	"github.com/san-kum/fdtd1d/internal/storage"
	"github.com/san-kum/fdtd1d/internal/viz"
)

var (
	dataDir string
	verbose bool
	// run overrides
	configFile   string
	runName      string
	cells        int
	steps        int
	sourceKind   string
	injection    string
	sourcePos    int
	wavelength   float64
	permittivity float64
	loss         float64
	precision    string
	transform    string
	workers      int
	noSave       bool
	live         bool
	frameRate    int
	// inspection
	field     string
	step      int
	outPath   string
	outFormat string
	theme     string
	presetArg string
	// scan
	scanParams []string
	metricName string
	maximize   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fdtd1d",
		Short:        "one-dimensional FDTD electromagnetic solver",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fdtd1d", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&runName, "name", "", "run name")
	runCmd.Flags().IntVar(&cells, "cells", config.DefaultCells, "number of spatial cells")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	runCmd.Flags().StringVar(&sourceKind, "source", "harmonic", "waveform (gaussian, ricker, harmonic, zero)")
	runCmd.Flags().StringVar(&injection, "injection", "tfsf", "injection mode (tfsf, hard)")
	runCmd.Flags().IntVar(&sourcePos, "position", config.DefaultTFSF, "hard source cell")
	runCmd.Flags().Float64Var(&wavelength, "wavelength", config.DefaultWavelength, "harmonic/ricker wavelength in cells")
	runCmd.Flags().Float64Var(&permittivity, "permittivity", config.DefaultPermittivity, "slab relative permittivity")
	runCmd.Flags().Float64Var(&loss, "loss", config.DefaultLoss, "loss factor of the terminating layer")
	runCmd.Flags().StringVar(&precision, "precision", config.PrecisionFloat64, "float64 or float32")
	runCmd.Flags().StringVar(&transform, "transform", "dft", "spectral transform (dft, fft)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "spectrum workers (0 = all cpus)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the field while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "live frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset...]",
		Short: "run several presets concurrently and store them",
		RunE:  sweepPresets,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [preset]",
		Short: "grid search slab and source parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scanGrid,
	}
	scanCmd.Flags().StringArrayVar(&scanParams, "param", nil, "name=min:max:n or name=v1,v2 (repeatable)")
	scanCmd.Flags().StringVar(&metricName, "metric", "transmission", "metric to optimize")
	scanCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored frame in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", string(storage.FieldEz), "field (ez, hy, ez_spectrum, hy_spectrum)")
	plotCmd.Flags().IntVar(&step, "step", -1, "time step (-1 = last)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "spatial spectrum analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeSpectrum,
	}
	spectrumCmd.Flags().IntVar(&step, "step", -1, "time step (-1 = last)")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render profile, spectrum and heatmap images",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "", "output directory (default <run_id>_plots)")
	renderCmd.Flags().StringVar(&outFormat, "format", "png", "image format (png, svg, pdf)")
	renderCmd.Flags().IntVar(&step, "step", -1, "time step (-1 = last)")

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "write an interactive html report",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRun,
	}
	reportCmd.Flags().StringVar(&outPath, "out", "", "output file (default <run_id>.html)")
	reportCmd.Flags().IntVar(&step, "step", -1, "time step (-1 = last)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export one field to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&field, "field", string(storage.FieldEz), "field (ez, hy, ez_spectrum, hy_spectrum)")
	exportCSVCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a preset as an editable config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&presetArg, "preset", "slab", "preset to start from")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes and transforms",
		RunE:  benchEngine,
	}
	benchCmd.Flags().StringVar(&precision, "precision", config.PrecisionFloat64, "float64 or float32")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "spectrum workers (0 = all cpus)")

	rootCmd.AddCommand(runCmd, sweepCmd, scanCmd, scenarioCmd, listCmd, exportCmd, plotCmd, spectrumCmd, renderCmd, reportCmd,
		exportJSONCmd, exportCSVCmd, liveCmd, presetsCmd, initCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "fdtd1d",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// buildConfig layers preset, config file and explicitly set flags, in that
// order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := "slab"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = runName
	}
	if flags.Changed("cells") {
		cfg.Cells = cells
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("source") {
		cfg.Source.Kind = sourceKind
	}
	if flags.Changed("injection") {
		cfg.Source.Injection = injection
	}
	if flags.Changed("position") {
		cfg.Source.Position = sourcePos
	}
	if flags.Changed("wavelength") {
		cfg.Source.Wavelength = wavelength
	}
	if flags.Changed("permittivity") {
		cfg.Material.Permittivity = permittivity
	}
	if flags.Changed("loss") {
		cfg.Loss.Factor = loss
	}
	if flags.Changed("precision") {
		cfg.Precision = precision
	}
	if flags.Changed("transform") {
		cfg.Analysis.Transform = transform
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = workers
	}

	return cfg, cfg.Validate()
}

// liveObserver returns a terminal observer matching the run's precision and
// the function that restores the terminal afterwards.
func liveObserver(cfg *config.Config) (any, func()) {
	slabStart, slabWidth := cfg.Material.Start, cfg.Material.Width
	if cfg.Precision == config.PrecisionFloat32 {
		o := viz.NewLiveObserver[float32](os.Stdout, frameRate, cfg.Steps, slabStart, slabWidth)
		return o, o.Close
	}
	o := viz.NewLiveObserver[float64](os.Stdout, frameRate, cfg.Steps, slabStart, slabWidth)
	return o, o.Close
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger()
	ctx, cancel := signalContext()
	defer cancel()

	exp := experiment.New(cfg)
	if live {
		obs, done := liveObserver(cfg)
		defer done()
		exp.AddObserver(obs)
	}

	logger.Info("running", "preset", cfg.Name, "cells", cfg.Cells, "steps", cfg.Steps, "source", cfg.Source.Kind)
	result, err := exp.Run(ctx, logger)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	if !noSave {
		runID, err := storage.New(dataDir).Save(result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d\n", result.Steps)
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, metrics[name])
	}
}

func sweepPresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	cfgs := make([]*config.Config, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		cfgs = append(cfgs, cfg)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := experiment.Sweep(ctx, cfgs, newLogger())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tRUN ID\tELAPSED\tENERGY\tTRANSMISSION")
	for _, res := range results {
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%.4g\t%.4g\n",
			res.Name,
			runID,
			res.Elapsed.Round(time.Microsecond),
			res.Metrics["energy"],
			res.Metrics["transmission"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d runs in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func scanGrid(cmd *cobra.Command, args []string) error {
	name := "slab"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if len(scanParams) == 0 {
		return fmt.Errorf("at least one --param is required (available: %v)", optim.ParamNames())
	}

	names := make([]string, 0, len(scanParams))
	ranges := make([][]float64, 0, len(scanParams))
	for _, arg := range scanParams {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("bad --param %q: want name=range", arg)
		}
		r, err := optim.ParseRange(val)
		if err != nil {
			return err
		}
		names = append(names, key)
		ranges = append(ranges, r)
	}

	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scanning %d points of %s\n\n", g.Size(), name)
	best, val, points, err := g.Maximize(maximize).Search(ctx, base, metricName, nil)
	if err != nil && !errors.Is(err, optim.ErrNoFeasible) {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName))
	for _, p := range points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", p.Params[n])
		}
		if p.Err != nil {
			fmt.Fprintf(w, "error: %v\n", p.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g\n", p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best == nil {
		return err
	}
	fmt.Printf("\nbest %s = %.6g at %v\n", metricName, val, best)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var saver automation.Saver
	if !noSave {
		saver = storage.New(dataDir)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, scenario, saver, newLogger())
	for i, r := range results {
		fmt.Printf("step %d: %s %v %s\n", i+1, r.Result.Name, r.Result.Elapsed.Round(time.Microsecond), r.RunID)
	}
	return err
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tCELLS\tSTEPS\tSOURCE\tINJECT\tPREC\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%v\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cells,
			run.Steps,
			run.Source,
			run.Injection,
			run.Precision,
			run.Elapsed.Round(time.Microsecond),
		)
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

// pickStep resolves the --step flag against n stored frames.
func pickStep(n int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("no data")
	}
	if step < 0 {
		return n - 1, nil
	}
	if step >= n {
		return 0, fmt.Errorf("step %d out of range [0, %d)", step, n)
	}
	return step, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	f, err := storage.ParseField(field)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadField(runID, f)
	if err != nil {
		return err
	}
	q, err := pickStep(len(frames))
	if err != nil {
		return err
	}

	data := frames[q]
	if f == storage.FieldEzSpectrum || f == storage.FieldHySpectrum {
		data = data[:len(data)/2+1]
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Name)
	fmt.Printf("cells: %d\n\n", meta.Cells)

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s at step %d", f, q)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeSpectrum(cmd *cobra.Command, args []string) error {
	runID := args[0]
	result, err := storage.New(dataDir).LoadResult(runID)
	if err != nil {
		return err
	}
	q, err := pickStep(len(result.EzSpectrum))
	if err != nil {
		return err
	}

	bins := len(result.FrequencyAxis)
	fmt.Printf("spatial spectrum: %s (step %d)\n\n", runID, q)

	for _, s := range []struct {
		name   string
		frames [][]float64
	}{
		{"ez", result.EzSpectrum},
		{"hy", result.HySpectrum},
	} {
		graph := asciigraph.Plot(s.frames[q][:bins],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(s.name+" |X| normalized (one-sided)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := export.PeakFrequency(result, q)
	k := spectral.PeakBin(result.EzSpectrum[q][:bins])
	fmt.Printf("dominant bin: %d\n", k)
	fmt.Printf("dominant frequency: %.4f cycles/cell\n", freq)
	if freq > 0 {
		fmt.Printf("wavelength: %.2f cells\n", 1/freq)
	}
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	result, err := storage.New(dataDir).LoadResult(runID)
	if err != nil {
		return err
	}
	q, err := pickStep(len(result.EzT))
	if err != nil {
		return err
	}

	dir := outPath
	if dir == "" {
		dir = runID + "_plots"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := func(name string) string {
		return filepath.Join(dir, name+"."+outFormat)
	}

	jobs := []struct {
		name   string
		render func(string) error
	}{
		{"profile", func(p string) error {
			return export.ProfilePlot(p, result.EzT[q], result.Permittivity, fmt.Sprintf("Ez at step %d", q))
		}},
		{"spectrum", func(p string) error {
			return export.SpectrumPlot(p, result.FrequencyAxis, result.EzSpectrum[q], fmt.Sprintf("Ez spectrum at step %d", q))
		}},
		{"ez_heatmap", func(p string) error {
			return export.HeatmapPlot(p, result.EzT, "Ez(x, t)")
		}},
		{"hy_heatmap", func(p string) error {
			return export.HeatmapPlot(p, result.HyT, "Hy(x, t)")
		}},
	}
	for _, job := range jobs {
		if err := job.render(path(job.name)); err != nil {
			return fmt.Errorf("render %s: %w", job.name, err)
		}
		fmt.Printf("wrote %s\n", path(job.name))
	}
	return nil
}

func reportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	result, err := storage.New(dataDir).LoadResult(runID)
	if err != nil {
		return err
	}
	q, err := pickStep(len(result.EzT))
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".html"
	}
	if err := export.ExportHTML(path, result, q); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.WriteJSON(os.Stdout, result)
	}
	if err := export.ExportJSON(outPath, result); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	f, err := storage.ParseField(field)
	if err != nil {
		return err
	}
	frames, err := storage.New(dataDir).LoadField(args[0], f)
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.WriteCSV(os.Stdout, frames)
	}
	if err := export.ExportCSV(outPath, frames); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	return viz.Run(result)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tINJECT\tCELLS\tSTEPS\tSLAB\tEPS_R\tLOSS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t[%d,%d)\t%g\t%g@%d\n",
			name,
			cfg.Source.Kind,
			cfg.Source.Injection,
			cfg.Cells,
			cfg.Steps,
			cfg.Material.Start,
			cfg.Material.Start+cfg.Material.Width,
			cfg.Material.Permittivity,
			cfg.Loss.Factor,
			cfg.Loss.Start,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(presetArg)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", presetArg, config.ListPresets())
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func benchEngine(cmd *cobra.Command, args []string) error {
	sizes := []int{100, 200, 400, 800}
	transforms := []spectral.Method{spectral.MethodDFT, spectral.MethodFFT}

	fmt.Printf("benchmarking %s\n\n", precision)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CELLS\tSTEPS\tTRANSFORM\tTIME\tCELL-STEPS/SEC")

	for _, n := range sizes {
		for _, method := range transforms {
			cfg := config.DefaultConfig()
			cfg.Name = "bench"
			cfg.Precision = precision
			cfg.Cells = n
			cfg.Steps = 2 * n
			cfg.Material = config.MaterialConfig{Start: n / 2, Width: n / 4, Permittivity: config.DefaultPermittivity}
			cfg.Loss = config.LossConfig{Start: n - n/10, Factor: config.DefaultLoss}
			cfg.Analysis.Transform = string(method)
			cfg.Analysis.Workers = workers

			result, err := experiment.New(cfg).Run(context.Background(), nil)
			if err != nil {
				return err
			}

			rate := float64(n*cfg.Steps) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%s\t%v\t%.3g\n",
				n, cfg.Steps, method, result.Elapsed.Round(time.Microsecond), rate)
		}
	}

	return w.Flush()
}
