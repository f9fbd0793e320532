package steps

import (
	"iter"
	"slices"
)

// Insertion yields the steps of insertion sort over a copy of input. The
// key sinks by adjacent exchanges so that every swap step mirrors a real
// exchange in the working copy.
func Insertion(input []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		a := slices.Clone(input)
		n := len(a)
		if n == 0 {
			return
		}
		if !yield(sorted(0)) {
			return
		}
		for i := 1; i < n; i++ {
			key := a[i]
			for j := i - 1; j >= 0; j-- {
				if !yield(compare(j, j+1)) {
					return
				}
				if a[j] <= key {
					break
				}
				a[j], a[j+1] = a[j+1], a[j]
				if !yield(swap(j, j+1)) {
					return
				}
			}
			if !yield(sorted(i)) {
				return
			}
		}
	}
}
