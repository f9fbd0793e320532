package steps

import (
	"iter"
	"slices"
)

// Bubble yields the steps of bubble sort over a copy of input.
func Bubble(input []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		a := slices.Clone(input)
		n := len(a)
		if n == 0 {
			return
		}
		for i := 0; i < n-1; i++ {
			for j := 0; j < n-i-1; j++ {
				if !yield(compare(j, j+1)) {
					return
				}
				if a[j] > a[j+1] {
					a[j], a[j+1] = a[j+1], a[j]
					if !yield(swap(j, j+1)) {
						return
					}
				}
			}
			if !yield(sorted(n - 1 - i)) {
				return
			}
		}
		yield(sorted(0))
	}
}
