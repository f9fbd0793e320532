package steps

import (
	"iter"
	"strings"

	"github.com/samber/lo"
)

// Algorithm is one of the five supported sorting algorithms.
type Algorithm int

const (
	BubbleSort Algorithm = iota
	SelectionSort
	InsertionSort
	MergeSort
	QuickSort
)

// DefaultAlgorithm is used whenever a name cannot be resolved.
const DefaultAlgorithm = BubbleSort

// Info describes an algorithm for display.
type Info struct {
	Description     string
	TimeComplexity  string
	SpaceComplexity string
}

type entry struct {
	name  string
	id    string
	steps func([]int) iter.Seq[Step]
	info  Info
}

var table = [...]entry{
	BubbleSort: {
		name:  "Bubble Sort",
		id:    "bubble",
		steps: Bubble,
		info: Info{
			Description:     "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order. The pass through the list is repeated until the list is sorted.",
			TimeComplexity:  "O(n²)",
			SpaceComplexity: "O(1)",
		},
	},
	SelectionSort: {
		name:  "Selection Sort",
		id:    "selection",
		steps: Selection,
		info: Info{
			Description:     "Divides the input into a sorted and an unsorted portion, repeatedly selecting the smallest element of the unsorted portion and moving it to the end of the sorted one.",
			TimeComplexity:  "O(n²)",
			SpaceComplexity: "O(1)",
		},
	},
	InsertionSort: {
		name:  "Insertion Sort",
		id:    "insertion",
		steps: Insertion,
		info: Info{
			Description:     "Builds the sorted array one item at a time, taking each element and sinking it into its place among the elements before it.",
			TimeComplexity:  "O(n²)",
			SpaceComplexity: "O(1)",
		},
	},
	MergeSort: {
		name:  "Merge Sort",
		id:    "merge",
		steps: MergeSteps,
		info: Info{
			Description:     "Divides the array into two halves, recursively sorts them, then merges the two sorted halves back together.",
			TimeComplexity:  "O(n log n)",
			SpaceComplexity: "O(n)",
		},
	},
	QuickSort: {
		name:  "Quick Sort",
		id:    "quick",
		steps: Quick,
		info: Info{
			Description:     "Picks the last element as pivot, partitions the range so smaller elements come before it and larger after, then sorts both partitions recursively.",
			TimeComplexity:  "O(n log n) average, O(n²) worst",
			SpaceComplexity: "O(log n)",
		},
	},
}

func (a Algorithm) valid() bool { return a >= 0 && int(a) < len(table) }

func (a Algorithm) String() string {
	if !a.valid() {
		return table[DefaultAlgorithm].name
	}
	return table[a].name
}

// ID returns the short lower-case identifier used on the command line.
func (a Algorithm) ID() string {
	if !a.valid() {
		return table[DefaultAlgorithm].id
	}
	return table[a].id
}

func (a Algorithm) Info() Info {
	if !a.valid() {
		return table[DefaultAlgorithm].info
	}
	return table[a].info
}

// Steps returns the lazy step sequence of a over a copy of input.
func (a Algorithm) Steps(input []int) iter.Seq[Step] {
	if !a.valid() {
		a = DefaultAlgorithm
	}
	return table[a].steps(input)
}

// Lookup matches a canonical name case-insensitively, or a short id.
func Lookup(name string) (Algorithm, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, e := range table {
		if key == strings.ToLower(e.name) || key == e.id {
			return Algorithm(i), true
		}
	}
	return DefaultAlgorithm, false
}

// Resolve is Lookup with the fallback applied silently.
func Resolve(name string) Algorithm {
	a, _ := Lookup(name)
	return a
}

// Algorithms lists every algorithm in display order.
func Algorithms() []Algorithm {
	return lo.Times(len(table), func(i int) Algorithm { return Algorithm(i) })
}

// Names returns the canonical names in display order.
func Names() []string {
	return lo.Map(Algorithms(), func(a Algorithm, _ int) string { return a.String() })
}

// Next returns the algorithm after a, wrapping around.
func (a Algorithm) Next() Algorithm {
	return Algorithm((int(a) + 1) % len(table))
}

// Prev returns the algorithm before a, wrapping around.
func (a Algorithm) Prev() Algorithm {
	return Algorithm((int(a) + len(table) - 1) % len(table))
}
