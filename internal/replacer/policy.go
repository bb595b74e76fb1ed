package replacer

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Policy selects which replacement algorithm a Replacer instance runs.
type Policy int

const (
	PolicyClock Policy = iota
	PolicyARC
)

func (p Policy) String() string {
	switch p {
	case PolicyClock:
		return "clock"
	case PolicyARC:
		return "arc"
	default:
		return "unknown"
	}
}

var fold = cases.Fold()

// ParsePolicy accepts "clock"/"arc" in any case, as read from config or
// typed at the CLI (e.g. "Clock", "ARC").
func ParsePolicy(s string) (Policy, error) {
	switch fold.String(s) {
	case fold.String("clock"):
		return PolicyClock, nil
	case fold.String("arc"):
		return PolicyARC, nil
	default:
		return 0, fmt.Errorf("replacer: unknown policy %q", s)
	}
}
