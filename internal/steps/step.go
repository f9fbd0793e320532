package steps

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a step did to the working array.
type Kind uint8

const (
	Compare Kind = iota + 1
	Swap
	Sorted
	Pivot
	Merge
)

var kindNames = map[Kind]string{
	Compare: "compare",
	Swap:    "swap",
	Sorted:  "sorted",
	Pivot:   "pivot",
	Merge:   "merge",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("steps: unknown kind %d", k)
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("steps: unknown kind %q", text)
}

// Step is one observable unit of progress. Indices are positions in the
// array; Values is only set for Merge and holds the value written at the
// matching index.
type Step struct {
	Kind    Kind  `json:"kind"`
	Indices []int `json:"indices"`
	Values  []int `json:"values,omitempty"`
}

func compare(i, j int) Step { return Step{Kind: Compare, Indices: []int{i, j}} }
func swap(i, j int) Step    { return Step{Kind: Swap, Indices: []int{i, j}} }
func sorted(i int) Step     { return Step{Kind: Sorted, Indices: []int{i}} }
func pivot(i int) Step      { return Step{Kind: Pivot, Indices: []int{i}} }

func merge(k, v int) Step {
	return Step{Kind: Merge, Indices: []int{k}, Values: []int{v}}
}

// String renders the step as compare(0,1), merge(3,[42]) and so on.
func (s Step) String() string {
	idx := make([]string, len(s.Indices))
	for i, v := range s.Indices {
		idx[i] = strconv.Itoa(v)
	}
	out := s.Kind.String() + "(" + strings.Join(idx, ",")
	if len(s.Values) > 0 {
		vals := make([]string, len(s.Values))
		for i, v := range s.Values {
			vals[i] = strconv.Itoa(v)
		}
		out += ",[" + strings.Join(vals, ",") + "]"
	}
	return out + ")"
}

// Apply replays the data effect of s on values: swaps exchange two slots,
// merges overwrite slots. Other kinds and out-of-range indices are ignored.
func Apply(values []int, s Step) {
	switch s.Kind {
	case Swap:
		if len(s.Indices) < 2 {
			return
		}
		i, j := s.Indices[0], s.Indices[1]
		if inRange(i, len(values)) && inRange(j, len(values)) {
			values[i], values[j] = values[j], values[i]
		}
	case Merge:
		for n, idx := range s.Indices {
			if n < len(s.Values) && inRange(idx, len(values)) {
				values[idx] = s.Values[n]
			}
		}
	}
}

func inRange(i, n int) bool { return i >= 0 && i < n }
