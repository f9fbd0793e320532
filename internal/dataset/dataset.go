// Package dataset generates the integer arrays fed to the sorting runs.
package dataset

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// Display range of generated values, inclusive.
const (
	MinValue = 10
	MaxValue = 99
)

// Pattern shapes the generated input.
type Pattern string

const (
	Random       Pattern = "random"
	Ascending    Pattern = "sorted"
	Descending   Pattern = "reversed"
	NearlySorted Pattern = "nearly-sorted"
	FewUnique    Pattern = "few-unique"
)

// Patterns lists every known pattern.
var Patterns = []Pattern{Random, Ascending, Descending, NearlySorted, FewUnique}

// ParsePattern returns the pattern named s, or Random when s is unknown.
func ParsePattern(s string) Pattern {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Patterns, p) {
		return p
	}
	return Random
}

// Generator produces arrays from a seeded source. It is not safe for
// concurrent use.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// New returns a generator seeded with seed, or with the current time when
// seed is 0.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

// Generate returns size values in [MinValue, MaxValue] shaped by p.
func (g *Generator) Generate(size int, p Pattern) []int {
	if size <= 0 {
		return []int{}
	}
	out := make([]int, size)
	switch p {
	case FewUnique:
		levels := [4]int{}
		for i := range levels {
			levels[i] = g.value()
		}
		for i := range out {
			out[i] = levels[g.rng.IntN(len(levels))]
		}
		return out
	}

	for i := range out {
		out[i] = g.value()
	}
	switch p {
	case Ascending:
		slices.Sort(out)
	case Descending:
		slices.Sort(out)
		slices.Reverse(out)
	case NearlySorted:
		slices.Sort(out)
		for range max(1, size/10) {
			if size < 2 {
				break
			}
			i := g.rng.IntN(size - 1)
			out[i], out[i+1] = out[i+1], out[i]
		}
	}
	return out
}

func (g *Generator) value() int {
	return MinValue + g.rng.IntN(MaxValue-MinValue+1)
}
