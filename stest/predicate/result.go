package predicate

// Result is the outcome of a single test against one candidate
type Result int

const (
	Fail Result = iota
	Pass
	// Inapplicable means the test does not constrain the result. It only
	// arises for the time comparisons when the reference file is missing.
	Inapplicable
)

// Allows reports whether the result lets a conjunction continue
func (r Result) Allows() bool {
	return r != Fail
}

func (r Result) String() string {
	switch r {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Inapplicable:
		return "inapplicable"
	default:
		return "unknown"
	}
}

func check(ok bool) Result {
	if ok {
		return Pass
	}
	return Fail
}
