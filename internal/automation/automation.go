package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/experiment"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/steps"
	"github.com/san-kum/sortsim/internal/viz"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Runs        []Run  `yaml:"runs"`
}

// Run is one entry of a scenario. Values, when set, replace the generated
// array. Trace and Record name optional output files.
type Run struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Pattern   string `yaml:"pattern"`
	Seed      int64  `yaml:"seed"`
	Values    []int  `yaml:"values"`
	Trace     string `yaml:"trace"`
	Record    string `yaml:"record"`
}

// Outcome summarizes a finished run.
type Outcome struct {
	Algorithm steps.Algorithm
	Input     []int
	Steps     int
	Metrics   map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes the runs in order and stops at the first failure.
// Unlike the interactive paths, an unknown algorithm name is an error here.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("scenario run", "scenario", scenario.Name, "run", i+1, "of", len(scenario.Runs), "algorithm", run.Algorithm)

		out, err := execute(run, logger)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
		results = append(results, out)
	}
	return results, nil
}

func execute(run Run, logger *slog.Logger) (Outcome, error) {
	alg, ok := steps.Lookup(run.Algorithm)
	if !ok {
		return Outcome{}, fmt.Errorf("unknown algorithm: %s", run.Algorithm)
	}

	opts := []playback.Option{
		playback.WithAlgorithm(alg.String()),
		playback.WithGenerator(dataset.New(run.Seed)),
		playback.WithPattern(dataset.ParsePattern(run.Pattern)),
		playback.WithLogger(logger),
	}
	if run.Size > 0 {
		opts = append(opts, playback.WithSize(run.Size))
	}
	if len(run.Values) > 0 {
		opts = append(opts, playback.WithValues(run.Values))
	}

	set := metrics.Default()
	var trace []steps.Step
	opts = append(opts, playback.WithObserver(playback.ObserverFunc(func(f playback.Frame) {
		if f.Step == nil {
			return
		}
		vals := make([]int, len(f.Elements))
		for i, e := range f.Elements {
			vals[i] = e.Value
		}
		set.Observe(*f.Step, vals)
		if run.Trace != "" {
			trace = append(trace, *f.Step)
		}
	})))

	var rec *viz.Recorder
	if run.Record != "" {
		var err error
		if rec, err = viz.NewRecorder(alg.String()); err != nil {
			return Outcome{}, err
		}
		opts = append(opts, playback.WithObserver(rec))
	}

	ctrl := playback.New(opts...)
	input := ctrl.Source()
	n := playback.Drain(ctrl)

	if out := ctrl.Values(); !slices.IsSorted(out) {
		return Outcome{}, &experiment.SortError{Algorithm: alg, Input: input, Output: out, Wrapped: experiment.ErrNotSorted}
	}

	if run.Trace != "" {
		if err := ExportTrace(run.Trace, alg, input, trace, ctrl.Values()); err != nil {
			return Outcome{}, fmt.Errorf("export trace: %w", err)
		}
	}
	if rec != nil {
		if err := rec.Save(run.Record); err != nil {
			return Outcome{}, fmt.Errorf("save recording: %w", err)
		}
	}

	return Outcome{Algorithm: alg, Input: input, Steps: n, Metrics: set.Values()}, nil
}
