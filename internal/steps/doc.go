// Package steps expresses sorting algorithms as lazy sequences of steps.
//
// Each algorithm works on a private copy of its input and yields one [Step]
// per observable event instead of sorting eagerly:
//
//   - compare: two positions are being compared
//   - swap: two positions were exchanged
//   - merge: a position was overwritten with a staged value
//   - pivot: a position holds the current pivot
//   - sorted: a position reached its final value
//
// Consumers receive only the delta. They replay swap and merge steps on
// their own copy (see [Apply]) to keep displayed values in step with the
// algorithm.
//
// # Example
//
//	seq := steps.Generate("Quick Sort", values)
//	defer seq.Stop()
//	for {
//		st, ok := seq.Next()
//		if !ok {
//			break
//		}
//		steps.Apply(display, st)
//	}
package steps
