package metrics

import "github.com/san-kum/sortsim/internal/steps"

// Disorder reports the fraction of element pairs still out of order after
// the latest observed step: 0 for a sorted array, 1 for a reversed one.
type Disorder struct {
	name       string
	inversions int
	pairs      int
	history    []float64
}

const disorderHistory = 600

func NewDisorder() *Disorder {
	return &Disorder{name: "disorder"}
}

func (d *Disorder) Name() string {
	return d.name
}

// Observe recounts inversions only when the step changed the data.
func (d *Disorder) Observe(s steps.Step, values []int) {
	if s.Kind != steps.Swap && s.Kind != steps.Merge && d.pairs > 0 {
		return
	}
	d.inversions = Inversions(values)
	n := len(values)
	d.pairs = n * (n - 1) / 2
	d.history = append(d.history, d.Value())
	if len(d.history) > disorderHistory {
		d.history = d.history[1:]
	}
}

func (d *Disorder) Value() float64 {
	if d.pairs == 0 {
		return 0
	}
	return float64(d.inversions) / float64(d.pairs)
}

// History returns the recorded values, oldest first.
func (d *Disorder) History() []float64 {
	return d.history
}

func (d *Disorder) Reset() {
	d.inversions, d.pairs = 0, 0
	d.history = d.history[:0]
}

// Inversions counts pairs i < j with values[i] > values[j].
func Inversions(values []int) int {
	n := 0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}
