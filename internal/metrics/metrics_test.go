package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sortsim/internal/steps"
)

func run(set *Set, alg steps.Algorithm, input []int) []int {
	values := append([]int(nil), input...)
	for st := range alg.Steps(input) {
		steps.Apply(values, st)
		set.Observe(st, values)
	}
	return values
}

func TestCountBubbleExample(t *testing.T) {
	set := Default()
	run(set, steps.BubbleSort, []int{5, 3, 8, 1})

	got := set.Values()
	want := map[string]float64{
		"comparisons": 6,
		"swaps":       4,
		"writes":      0,
		"pivots":      0,
		"steps":       14,
		"disorder":    0,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s: expected %v, got %v", name, v, got[name])
		}
	}
}

func TestCountReset(t *testing.T) {
	c := NewCount("comparisons", steps.Compare)
	c.Observe(steps.Step{Kind: steps.Compare, Indices: []int{0, 1}}, nil)
	c.Observe(steps.Step{Kind: steps.Swap, Indices: []int{0, 1}}, nil)
	if c.Value() != 1 {
		t.Errorf("expected 1, got %f", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", c.Value())
	}
}

func TestMergeWrites(t *testing.T) {
	set := Default()
	run(set, steps.MergeSort, []int{4, 3, 2, 1})
	if w := set.Get("writes").Value(); w != 8 {
		t.Errorf("expected 8 writes for 4 elements, got %v", w)
	}
	if s := set.Get("swaps").Value(); s != 0 {
		t.Errorf("merge sort should not swap, got %v", s)
	}
}

func TestInversions(t *testing.T) {
	tests := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{1, 2, 3}, 0},
		{[]int{3, 2, 1}, 3},
		{[]int{2, 2, 1}, 2},
		{[]int{5, 3, 8, 1}, 4},
	}
	for _, tt := range tests {
		if got := Inversions(tt.in); got != tt.want {
			t.Errorf("Inversions(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDisorderFallsToZero(t *testing.T) {
	d := NewDisorder()
	set := NewSet(d)
	run(set, steps.QuickSort, []int{9, 8, 7, 6, 5, 4, 3, 2, 1})

	h := d.History()
	if len(h) == 0 {
		t.Fatal("expected history")
	}
	if math.Abs(h[0]-1) > 0.1 {
		t.Errorf("reversed input should start near 1, got %f", h[0])
	}
	if d.Value() != 0 {
		t.Errorf("expected 0 disorder at the end, got %f", d.Value())
	}

	d.Reset()
	if len(d.History()) != 0 || d.Value() != 0 {
		t.Error("reset should clear history")
	}
}

func TestSetNames(t *testing.T) {
	names := Default().Names()
	if len(names) != 6 || names[0] != "comparisons" {
		t.Errorf("unexpected names %v", names)
	}
	if Default().Get("missing") != nil {
		t.Error("expected nil for unknown metric")
	}
}
