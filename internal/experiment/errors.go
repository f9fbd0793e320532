package experiment

import (
	"errors"
	"fmt"

	"github.com/san-kum/sortsim/internal/steps"
)

// ErrNotSorted reports a run whose replayed steps left the array unsorted.
var ErrNotSorted = errors.New("experiment: steps did not sort the input")

// SortError wraps a failure with the run that produced it.
type SortError struct {
	Algorithm steps.Algorithm
	Input     []int
	Output    []int
	Wrapped   error
}

func (e *SortError) Error() string {
	return fmt.Sprintf("%s on %d elements: %v", e.Algorithm, len(e.Input), e.Wrapped)
}

func (e *SortError) Unwrap() error {
	return e.Wrapped
}
