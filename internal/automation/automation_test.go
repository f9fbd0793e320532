package automation

import (
	"context"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sortsim/internal/steps"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "bubble.json")
	gifPath := filepath.Join(dir, "quick.gif")

	path := writeScenario(t, `
name: smoke
description: two short runs
runs:
  - algorithm: bubble
    values: [5, 3, 8, 1]
    trace: `+tracePath+`
  - algorithm: Quick Sort
    size: 12
    pattern: reversed
    seed: 9
    record: `+gifPath+`
`)

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if scenario.Name != "smoke" || len(scenario.Runs) != 2 {
		t.Fatalf("unexpected scenario %+v", scenario)
	}

	results, err := RunScenario(context.Background(), scenario, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(results))
	}
	if results[0].Steps != 14 || results[0].Metrics["swaps"] != 4 {
		t.Errorf("unexpected bubble outcome %+v", results[0])
	}
	if results[1].Algorithm != steps.QuickSort || len(results[1].Input) != 12 {
		t.Errorf("unexpected quick outcome %+v", results[1])
	}

	trace, err := LoadTrace(tracePath)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}
	if len(trace.Steps) != 14 || trace.Output[0] != 1 || trace.Output[3] != 8 {
		t.Errorf("unexpected trace %+v", trace)
	}

	f, err := os.Open(gifPath)
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	if _, err := gif.DecodeAll(f); err != nil {
		t.Errorf("decode gif: %v", err)
	}
}

func TestRunScenarioUnknownAlgorithm(t *testing.T) {
	scenario := &Scenario{Name: "bad", Runs: []Run{{Algorithm: "bogo"}}}
	if _, err := RunScenario(context.Background(), scenario, nil); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scenario := &Scenario{Name: "x", Runs: []Run{{Algorithm: "merge"}}}
	results, err := RunScenario(ctx, scenario, nil)
	if err == nil || len(results) != 0 {
		t.Errorf("expected cancellation before any run, got %v %v", results, err)
	}
}

func TestLoadScenarioRequiresRuns(t *testing.T) {
	path := writeScenario(t, "name: empty\n")
	if _, err := LoadScenario(path); err == nil {
		t.Error("expected error for scenario without runs")
	}
}
