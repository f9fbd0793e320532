package automation

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sortsim/internal/steps"
)

// TraceData is the JSON layout of an exported trace.
type TraceData struct {
	Algorithm string       `json:"algorithm"`
	Input     []int        `json:"input"`
	Steps     []steps.Step `json:"steps"`
	Output    []int        `json:"output"`
}

func ExportTrace(path string, alg steps.Algorithm, input []int, trace []steps.Step, output []int) error {
	data := TraceData{
		Algorithm: alg.String(),
		Input:     input,
		Steps:     trace,
		Output:    output,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteTrace(file, data)
}

// WriteTrace encodes data as indented JSON.
func WriteTrace(w io.Writer, data TraceData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// LoadTrace reads a trace written by ExportTrace.
func LoadTrace(path string) (*TraceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data TraceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
