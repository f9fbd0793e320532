package metrics

import (
	"github.com/samber/lo"

	"github.com/san-kum/sortsim/internal/steps"
)

// Metric accumulates a figure over the steps of one run. values is the
// array after the step has been applied.
type Metric interface {
	Name() string
	Observe(s steps.Step, values []int)
	Value() float64
	Reset()
}

// Set fans each observation out to a list of metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics shown by the visualizer and the bench runner.
func Default() *Set {
	return NewSet(
		NewCount("comparisons", steps.Compare),
		NewCount("swaps", steps.Swap),
		NewCount("writes", steps.Merge),
		NewCount("pivots", steps.Pivot),
		NewTotal(),
		NewDisorder(),
	)
}

func (s *Set) Observe(st steps.Step, values []int) {
	for _, m := range s.metrics {
		m.Observe(st, values)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Names() []string {
	return lo.Map(s.metrics, func(m Metric, _ int) string { return m.Name() })
}

func (s *Set) Values() map[string]float64 {
	return lo.SliceToMap(s.metrics, func(m Metric) (string, float64) {
		return m.Name(), m.Value()
	})
}

// Get returns the metric called name, or nil.
func (s *Set) Get(name string) Metric {
	m, _ := lo.Find(s.metrics, func(m Metric) bool { return m.Name() == name })
	return m
}
