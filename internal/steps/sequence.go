package steps

import "iter"

// Sequence is a pull cursor over a generator's steps. Once Next reports
// false the sequence stays exhausted; replaying needs a new Sequence.
//
// A Sequence is not safe for concurrent use.
type Sequence struct {
	next  func() (Step, bool)
	stop  func()
	done  bool
	count int
}

// NewSequence wraps seq in a resumable cursor.
func NewSequence(seq iter.Seq[Step]) *Sequence {
	next, stop := iter.Pull(seq)
	return &Sequence{next: next, stop: stop}
}

// Next resumes the generator until it yields its next step.
func (s *Sequence) Next() (Step, bool) {
	if s.done {
		return Step{}, false
	}
	st, ok := s.next()
	if !ok {
		s.finish()
		return Step{}, false
	}
	s.count++
	return st, true
}

// Stop releases the generator. Further calls to Next report exhaustion.
func (s *Sequence) Stop() {
	if !s.done {
		s.finish()
	}
}

func (s *Sequence) finish() {
	s.done = true
	s.stop()
}

// Done reports whether the sequence is exhausted or stopped.
func (s *Sequence) Done() bool { return s.done }

// Pulled returns how many steps have been yielded so far.
func (s *Sequence) Pulled() int { return s.count }

// Generate resolves name and returns a fresh cursor over its steps for a
// private copy of input. Unknown names run Bubble Sort.
func Generate(name string, input []int) *Sequence {
	return NewSequence(Resolve(name).Steps(input))
}

// Collect drains a generator into a slice.
func Collect(seq iter.Seq[Step]) []Step {
	var out []Step
	for s := range seq {
		out = append(out, s)
	}
	return out
}
