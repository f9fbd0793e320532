package metrics

import "github.com/san-kum/sortsim/internal/steps"

// Count counts the steps of one kind.
type Count struct {
	name string
	kind steps.Kind
	n    int
}

func NewCount(name string, kind steps.Kind) *Count {
	return &Count{name: name, kind: kind}
}

func (c *Count) Name() string {
	return c.name
}

func (c *Count) Observe(s steps.Step, values []int) {
	if s.Kind == c.kind {
		c.n++
	}
}

func (c *Count) Value() float64 {
	return float64(c.n)
}

func (c *Count) Reset() {
	c.n = 0
}

// Total counts every step.
type Total struct {
	n int
}

func NewTotal() *Total { return &Total{} }

func (t *Total) Name() string                       { return "steps" }
func (t *Total) Observe(s steps.Step, values []int) { t.n++ }
func (t *Total) Value() float64                     { return float64(t.n) }
func (t *Total) Reset()                             { t.n = 0 }
