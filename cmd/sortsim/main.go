package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortsim/internal/automation"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/experiment"
	"github.com/san-kum/sortsim/internal/logging"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/steps"
	"github.com/san-kum/sortsim/internal/tui"
	"github.com/san-kum/sortsim/internal/viz"
)

var (
	configFile string
	preset     string
	algorithm  string
	seed       int64
	size       int
	speed      int
	pattern    string
	theme      string
	frameRate  int
	logFile    string
	logLevel   string

	// trace
	values    string
	format    string
	copyTrace bool

	// record
	outPath     string
	stride      int
	frameDelay  int
	frameWidth  int
	frameHeight int

	// bench
	sizes      string
	trials     int
	algorithms string

	logger   *slog.Logger
	closeLog = func() error { return nil }
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sortsim",
		Short:         "sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
		RunE: runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&algorithm, "algorithm", config.DefaultAlgorithm, "sorting algorithm")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.IntVar(&size, "size", config.DefaultSize, "array size")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "playback speed 1-100")
	pf.StringVar(&pattern, "pattern", config.DefaultPattern, "input pattern: "+strings.Join(patternNames(), ", "))
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "animate a sort in the terminal without the interactive UI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print every step of a sort",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&values, "values", "", "comma separated input, e.g. 5,3,8,1")
	traceCmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	traceCmd.Flags().BoolVar(&copyTrace, "copy", false, "also copy the trace to the clipboard")

	recordCmd := &cobra.Command{
		Use:   "record [algorithm]",
		Short: "render a sort to an animated gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&outPath, "out", "o", "sort.gif", "output file")
	recordCmd.Flags().IntVar(&stride, "stride", 1, "keep one frame every n steps (raised automatically for long runs)")
	recordCmd.Flags().IntVar(&frameDelay, "frame-delay", 4, "delay between frames in hundredths of a second")
	recordCmd.Flags().IntVar(&frameWidth, "width", 640, "frame width in pixels")
	recordCmd.Flags().IntVar(&frameHeight, "height", 360, "frame height in pixels")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare step counts across algorithms and sizes",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&sizes, "sizes", "10,50,100", "comma separated array sizes")
	benchCmd.Flags().IntVar(&trials, "trials", 3, "trials per size")
	benchCmd.Flags().StringVar(&algorithms, "algorithms", "", "comma separated algorithms (default all)")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted batch of sorts from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, traceCmd, recordCmd, benchCmd, algorithmsCmd, presetsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setupLogging opens the log file named by --log-file or the config's
// log_file. Without one, the TUI discards logs since they would tear the
// alternate screen; other commands log to stderr.
func setupLogging(cmd *cobra.Command) error {
	cfg, err := baseConfig(cmd)
	if err != nil {
		return err
	}
	var fallback io.Writer = os.Stderr
	if cmd.Name() == "sortsim" {
		fallback = io.Discard
	}
	logger, closeLog, err = logging.Setup(cfg.LogFile, logging.ParseLevel(logLevel), fallback)
	return err
}

// baseConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func baseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	cfg.Normalize()
	return cfg, nil
}

// resolveConfig is baseConfig plus the positional algorithm, which beats
// the flag.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := baseConfig(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
		cfg.Normalize()
	}

	if _, ok := steps.Lookup(cfg.Algorithm); !ok {
		logger.Warn("unknown algorithm, falling back", "algorithm", cfg.Algorithm, "using", cfg.ResolvedAlgorithm().String())
	}
	return cfg, nil
}

func newController(cfg *config.Config, extra ...playback.Option) *playback.Controller {
	opts := append(cfg.ControllerOptions(), playback.WithLogger(logger))
	return playback.New(append(opts, extra...)...)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ctrl := newController(cfg)
	opts := []viz.AppOption{viz.WithTheme(cfg.Theme)}
	if configFile != "" {
		opts = append(opts, viz.WithConfigWatch(configFile))
	}

	// an explicit choice skips the menu
	if cmd.Flags().Changed("algorithm") || preset != "" || configFile != "" {
		return viz.Run(ctrl, opts...)
	}
	return viz.RunInteractive(ctrl, opts...)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	set := metrics.Default()
	renderer := tui.NewLiveRenderer(cfg.ResolvedAlgorithm().String(), cfg.FPS)
	ctrl := newController(cfg,
		playback.WithObserver(renderer),
		playback.WithObserver(metricsObserver(set)),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	renderer.Start()
	err = playback.Play(ctx, ctrl)
	renderer.Stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("run finished",
		"algorithm", cfg.ResolvedAlgorithm().String(),
		"steps", set.Get("steps").Value(),
		"comparisons", set.Get("comparisons").Value(),
	)
	printMetrics(set)
	return nil
}

func metricsObserver(set *metrics.Set) playback.Observer {
	return playback.ObserverFunc(func(f playback.Frame) {
		if f.Step == nil {
			return
		}
		vals := lo.Map(f.Elements, func(e playback.Element, _ int) int { return e.Value })
		set.Observe(*f.Step, vals)
	})
}

func printMetrics(set *metrics.Set) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	vals := set.Values()
	for _, name := range set.Names() {
		t.AppendRow(table.Row{name, formatMetric(name, vals[name])})
	}
	t.Render()
}

func formatMetric(name string, v float64) string {
	if name == "disorder" {
		return fmt.Sprintf("%.1f%%", v*100)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	var input []int
	if values != "" {
		if input, err = parseInts(values); err != nil {
			return fmt.Errorf("invalid --values: %w", err)
		}
	} else {
		input = dataset.New(cfg.Seed).Generate(cfg.Size, dataset.ParsePattern(cfg.Pattern))
	}

	alg := cfg.ResolvedAlgorithm()
	trace := steps.Collect(alg.Steps(input))
	output := slices.Clone(input)
	for _, st := range trace {
		steps.Apply(output, st)
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		if err := automation.WriteTrace(&buf, automation.TraceData{
			Algorithm: alg.String(),
			Input:     input,
			Steps:     trace,
			Output:    output,
		}); err != nil {
			return err
		}
	case "text":
		fmt.Fprintf(&buf, "%s %v\n", alg, input)
		for i, st := range trace {
			fmt.Fprintf(&buf, "%5d  %s\n", i+1, st)
		}
		fmt.Fprintf(&buf, "result %v (%d steps)\n", output, len(trace))
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}
	if copyTrace {
		if err := writeClipboard(buf.String()); err != nil {
			return fmt.Errorf("copy trace: %w", err)
		}
		logger.Info("trace copied to clipboard", "steps", len(trace))
	}
	return nil
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	rec, err := viz.NewRecorder(cfg.ResolvedAlgorithm().String(),
		viz.WithFrameSize(frameWidth, frameHeight),
		viz.WithStride(stride),
		viz.WithFrameDelay(frameDelay),
		viz.WithRecorderTheme(viz.GetTheme(cfg.Theme)),
	)
	if err != nil {
		return err
	}
	ctrl := newController(cfg, playback.WithObserver(rec))
	n := playback.Drain(ctrl)

	if err := rec.Save(outPath); err != nil {
		return err
	}
	logger.Info("recording saved", "path", outPath, "steps", n, "frames", rec.Len(), "stride", rec.Stride())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames (%d steps) to %s\n", rec.Len(), n, outPath)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sz, err := parseInts(sizes)
	if err != nil {
		return fmt.Errorf("invalid --sizes: %w", err)
	}
	algs := steps.Algorithms()
	if algorithms != "" {
		algs, err = parseAlgorithms(algorithms)
		if err != nil {
			return err
		}
	}

	benchSeed := cfg.Seed
	if benchSeed == 0 {
		benchSeed = 1
	}
	results, err := experiment.Run(cmd.Context(), experiment.Config{
		Algorithms: algs,
		Sizes:      sz,
		Trials:     trials,
		Seed:       benchSeed,
		Pattern:    dataset.ParsePattern(cfg.Pattern),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d algorithms on %s input, %d trials\n\n", len(algs), cfg.Pattern, trials)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(terminalWidth())
	t.AppendHeader(table.Row{"Algorithm", "Size", "Comparisons", "Swaps", "Writes", "Pivots", "Steps"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	for _, r := range results {
		m := r.Metrics
		t.AppendRow(table.Row{
			r.Algorithm.String(), r.Size,
			fmt.Sprintf("%.1f", m["comparisons"]),
			fmt.Sprintf("%.1f", m["swaps"]),
			fmt.Sprintf("%.1f", m["writes"]),
			fmt.Sprintf("%.1f", m["pivots"]),
			fmt.Sprintf("%.1f", m["steps"]),
		})
	}
	t.Render()

	if len(sz) > 1 {
		series := experiment.Series(results, "comparisons")
		data := lo.Map(algs, func(a steps.Algorithm, _ int) []float64 { return series[a] })
		names := lo.Map(algs, func(a steps.Algorithm, _ int) string { return a.ID() })
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.PlotMany(data,
			asciigraph.Height(10),
			asciigraph.Width(min(60, terminalWidth()-12)),
			asciigraph.Caption("comparisons by size: "+strings.Join(names, ", ")),
		))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(cmd.Context(), scenario, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s: %s\n\n", scenario.Name, scenario.Description)
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Algorithm", "Size", "Steps", "Comparisons", "Swaps", "Writes"})
	for i, r := range results {
		m := r.Metrics
		t.AppendRow(table.Row{i + 1, r.Algorithm.String(), len(r.Input), r.Steps, m["comparisons"], m["swaps"], m["writes"]})
	}
	t.Render()
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(terminalWidth())
	t.AppendHeader(table.Row{"ID", "Name", "Time", "Space", "Description"})
	for _, a := range steps.Algorithms() {
		info := a.Info()
		t.AppendRow(table.Row{a.ID(), a.String(), info.TimeComplexity, info.SpaceComplexity, info.Description})
	}
	t.Render()
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Preset", "Algorithm", "Size", "Speed", "Pattern"})
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		t.AppendRow(table.Row{name, p.Algorithm, p.Size, p.Speed, p.Pattern})
	}
	t.Render()
	return nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %q", s)
	}
	return out, nil
}

func parseAlgorithms(s string) ([]steps.Algorithm, error) {
	var out []steps.Algorithm
	for _, name := range strings.Split(s, ",") {
		a, ok := steps.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown algorithm %q (available: %s)", strings.TrimSpace(name), strings.Join(steps.Names(), ", "))
		}
		out = append(out, a)
	}
	return lo.Uniq(out), nil
}

func patternNames() []string {
	return lo.Map(dataset.Patterns, func(p dataset.Pattern, _ int) string { return string(p) })
}
