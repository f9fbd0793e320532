package steps

import (
	"iter"
	"slices"
)

// Selection yields the steps of selection sort over a copy of input. Each
// candidate is compared against the running minimum, not the pass start.
func Selection(input []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		a := slices.Clone(input)
		n := len(a)
		if n == 0 {
			return
		}
		for i := 0; i < n-1; i++ {
			minIdx := i
			for j := i + 1; j < n; j++ {
				if !yield(compare(minIdx, j)) {
					return
				}
				if a[j] < a[minIdx] {
					minIdx = j
				}
			}
			if minIdx != i {
				a[i], a[minIdx] = a[minIdx], a[i]
				if !yield(swap(i, minIdx)) {
					return
				}
			}
			if !yield(sorted(i)) {
				return
			}
		}
		yield(sorted(n - 1))
	}
}
