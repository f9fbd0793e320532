package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortsim/internal/automation"
	"github.com/san-kum/sortsim/internal/steps"
)

func init() {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseInts(t *testing.T) {
	got, err := parseInts("5, 3,8 ,1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []int{5, 3, 8, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	if _, err := parseInts("1,x"); err == nil {
		t.Error("expected error for non-integer")
	}
	if _, err := parseInts(" , "); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestParseAlgorithms(t *testing.T) {
	got, err := parseAlgorithms("quick, merge,quick")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 2 || got[0] != steps.QuickSort || got[1] != steps.MergeSort {
		t.Errorf("unexpected algorithms %v", got)
	}
	if _, err := parseAlgorithms("bogo"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func traceCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return cmd
}

func TestTraceText(t *testing.T) {
	values, format = "5,3,8,1", "text"
	defer func() { values, format = "", "text" }()

	var out bytes.Buffer
	if err := runTrace(traceCommand(&out), []string{"bubble"}); err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 16 {
		t.Fatalf("expected header, 14 steps and result, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], "compare(0,1)") {
		t.Errorf("unexpected first step %q", lines[1])
	}
	if lines[15] != "result [1 3 5 8] (14 steps)" {
		t.Errorf("unexpected result line %q", lines[15])
	}
}

func TestTraceJSON(t *testing.T) {
	values, format = "2,1", "json"
	defer func() { values, format = "", "text" }()

	var out bytes.Buffer
	if err := runTrace(traceCommand(&out), []string{"Merge Sort"}); err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	var got automation.TraceData
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Algorithm != "Merge Sort" || len(got.Steps) != 5 {
		t.Errorf("unexpected trace %+v", got)
	}
	if got.Output[0] != 1 || got.Output[1] != 2 {
		t.Errorf("unexpected output %v", got.Output)
	}
}

func TestTraceRejectsUnknownFormat(t *testing.T) {
	values, format = "2,1", "xml"
	defer func() { values, format = "", "text" }()

	var out bytes.Buffer
	if err := runTrace(traceCommand(&out), nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTraceCopy(t *testing.T) {
	values, format, copyTrace = "2,1", "text", true
	var copied string
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() {
		values, format, copyTrace = "", "text", false
		writeClipboard = clipboard.WriteAll
	}()

	var out bytes.Buffer
	if err := runTrace(traceCommand(&out), []string{"bubble"}); err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	if copied != out.String() {
		t.Errorf("clipboard %q differs from output %q", copied, out.String())
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	// go test does not attach stdout to a terminal
	if w := terminalWidth(); w <= 0 {
		t.Errorf("width = %d", w)
	}
}

func TestResolveConfigLayersFileOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortsim.yaml")
	if err := os.WriteFile(path, []byte("theme: ocean\nspeed: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}
	preset, configFile = "merge-large", path
	defer func() { preset, configFile = "", "" }()

	cfg, err := resolveConfig(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Algorithm != "Merge Sort" || cfg.Size != 150 {
		t.Errorf("preset lost: algorithm=%q size=%d", cfg.Algorithm, cfg.Size)
	}
	if cfg.Speed != 20 || cfg.Theme != "ocean" {
		t.Errorf("file not applied: speed=%d theme=%q", cfg.Speed, cfg.Theme)
	}

	cfg, err = resolveConfig(&cobra.Command{}, []string{"quick"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Algorithm != "quick" || cfg.Size != 150 {
		t.Errorf("positional algorithm should only replace the algorithm, got %+v", cfg)
	}
}

func TestSetupLoggingUsesConfigLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "sortsim.log")
	path := filepath.Join(dir, "sortsim.yaml")
	if err := os.WriteFile(path, []byte("log_file: "+logPath+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configFile = path
	prevLogger, prevDefault := logger, slog.Default()
	defer func() {
		configFile = ""
		logger = prevLogger
		closeLog = func() error { return nil }
		slog.SetDefault(prevDefault)
	}()

	if err := setupLogging(&cobra.Command{Use: "run"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	logger.Info("hello from the config file")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "hello from the config file") {
		t.Errorf("unexpected log contents %q", data)
	}
}
