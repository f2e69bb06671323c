package engine

import (
	"github.com/ZanzyTHEbar/stest/stest/predicate"
)

// Selection is the validated configuration of one filter run
type Selection struct {
	// Tests holds the enabled switch tests. NewerThan and OlderThan in this
	// set are ignored; they are enabled by their reference paths below.
	Tests predicate.Set

	// NewerThan and OlderThan are reference file paths; empty means unset
	NewerThan string
	OlderThan string

	// HasNewer and HasOlder enable a comparison even when its reference
	// path is empty. An empty reference never exists.
	HasNewer bool
	HasOlder bool

	Invert            bool
	Quiet             bool
	ExpandDirectories bool

	// Exclude holds gitignore-style patterns; matching candidates are dropped
	// before evaluation.
	Exclude []string
}

// Enabled returns the tests that constrain a candidate, in evaluation order.
// The exists test is never included: existence is checked for every
// non-trivial selection whether or not it was asked for.
func (s Selection) Enabled() []predicate.ID {
	set := s.Tests.
		Without(predicate.Exists).
		Without(predicate.NewerThan).
		Without(predicate.OlderThan)
	if s.newerEnabled() {
		set = set.With(predicate.NewerThan)
	}
	if s.olderEnabled() {
		set = set.With(predicate.OlderThan)
	}
	return set.IDs()
}

func (s Selection) newerEnabled() bool {
	return s.HasNewer || s.NewerThan != ""
}

func (s Selection) olderEnabled() bool {
	return s.HasOlder || s.OlderThan != ""
}

// Trivial reports whether the selection passes every candidate before inversion
func (s Selection) Trivial() bool {
	return len(s.Enabled()) == 0
}
