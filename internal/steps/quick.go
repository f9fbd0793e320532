package steps

import (
	"iter"
	"slices"
)

// Quick yields the steps of quicksort with Lomuto partitioning, taking the
// last element of each range as the pivot.
func Quick(input []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		a := slices.Clone(input)
		quickSort(a, 0, len(a)-1, yield)
	}
}

func quickSort(a []int, low, high int, yield func(Step) bool) bool {
	switch {
	case low > high:
		return true
	case low == high:
		return yield(sorted(low))
	}
	p, ok := partition(a, low, high, yield)
	if !ok {
		return false
	}
	return quickSort(a, low, p-1, yield) && quickSort(a, p+1, high, yield)
}

func partition(a []int, low, high int, yield func(Step) bool) (int, bool) {
	pv := a[high]
	if !yield(pivot(high)) {
		return 0, false
	}
	i := low - 1
	for j := low; j < high; j++ {
		if !yield(compare(j, high)) {
			return 0, false
		}
		if a[j] < pv {
			i++
			if i != j {
				a[i], a[j] = a[j], a[i]
				if !yield(swap(i, j)) {
					return 0, false
				}
			}
		}
	}
	// the pivot always moves, even onto itself
	a[i+1], a[high] = a[high], a[i+1]
	if !yield(swap(i+1, high)) {
		return 0, false
	}
	if !yield(sorted(i + 1)) {
		return 0, false
	}
	return i + 1, true
}
