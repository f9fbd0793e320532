package steps

import (
	"iter"
	"slices"
)

// MergeSteps yields the steps of top-down merge sort over a copy of input.
func MergeSteps(input []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		a := slices.Clone(input)
		switch len(a) {
		case 0:
			return
		case 1:
			yield(sorted(0))
			return
		}
		mergeSort(a, 0, len(a)-1, yield)
	}
}

func mergeSort(a []int, start, end int, yield func(Step) bool) bool {
	if start >= end {
		return true
	}
	mid := (start + end) / 2
	return mergeSort(a, start, mid, yield) &&
		mergeSort(a, mid+1, end, yield) &&
		mergeRange(a, start, mid, end, yield)
}

func mergeRange(a []int, start, mid, end int, yield func(Step) bool) bool {
	left := slices.Clone(a[start : mid+1])
	right := slices.Clone(a[mid+1 : end+1])

	i, j, k := 0, 0, start
	for i < len(left) && j < len(right) {
		if !yield(compare(start+i, mid+1+j)) {
			return false
		}
		var v int
		if left[i] <= right[j] {
			v = left[i]
			i++
		} else {
			v = right[j]
			j++
		}
		a[k] = v
		if !yield(merge(k, v)) {
			return false
		}
		k++
	}
	for ; i < len(left); i, k = i+1, k+1 {
		a[k] = left[i]
		if !yield(merge(k, left[i])) {
			return false
		}
	}
	for ; j < len(right); j, k = j+1, k+1 {
		a[k] = right[j]
		if !yield(merge(k, right[j])) {
			return false
		}
	}
	for idx := start; idx <= end; idx++ {
		if !yield(sorted(idx)) {
			return false
		}
	}
	return true
}
