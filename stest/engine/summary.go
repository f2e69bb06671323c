package engine

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// Summary aggregates the outcomes of a filter run. Candidates are numbered
// in emission order, after directory expansion and exclusion.
type Summary struct {
	total  uint32
	passed *roaring.Bitmap
}

func newSummary() *Summary {
	return &Summary{passed: roaring.New()}
}

func (s *Summary) record(passed bool) {
	if passed {
		s.passed.Add(s.total)
	}
	s.total++
}

// Total returns the number of evaluated candidates
func (s *Summary) Total() int {
	return int(s.total)
}

// PassedCount returns the number of candidates that passed
func (s *Summary) PassedCount() int {
	return int(s.passed.GetCardinality())
}

// AnyPassed reports whether at least one candidate passed
func (s *Summary) AnyPassed() bool {
	return !s.passed.IsEmpty()
}

// AllPassed reports whether no candidate failed
func (s *Summary) AllPassed() bool {
	return s.PassedCount() == s.Total()
}

// Passed returns the ordinals of passed candidates
func (s *Summary) Passed() *roaring.Bitmap {
	return s.passed.Clone()
}

// Failed returns the ordinals of failed candidates
func (s *Summary) Failed() *roaring.Bitmap {
	return roaring.Flip(s.passed, 0, uint64(s.total))
}
