package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

func evaluate(a Assertion, r *Result) error {
	switch a.Type {
	case AssertFound:
		return expectList(a.Type, want(a.Series), r.seriesWhere(true))
	case AssertMissing:
		return expectList(a.Type, want(a.Series), r.seriesWhere(false))
	case AssertOrphans:
		return expectList(a.Type, want(a.Paths), want(r.Orphans))
	case AssertResume:
		return expectList(a.Type, want(a.Series), want(r.Resume))
	case AssertProblem:
		for _, p := range r.Problems {
			if p.Kind == a.Kind && p.Code == a.Code {
				return nil
			}
		}
		return &AssertionError{
			Type:     a.Type,
			Expected: a.Kind + ": " + a.Code,
			Actual:   formatProblems(r.Problems),
		}
	case AssertClean:
		if len(r.Problems) == 0 {
			return nil
		}
		return &AssertionError{Type: a.Type, Expected: "no problems", Actual: formatProblems(r.Problems)}
	case AssertVerifyError:
		return expectCode(a, r.VerifyError)
	case AssertOrphansError:
		return expectCode(a, r.OrphansError)
	case AssertResumeError:
		return expectCode(a, r.ResumeError)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func want(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func expectList(typ string, expected, actual []string) error {
	if slices.Equal(expected, actual) {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: "[" + strings.Join(expected, ", ") + "]",
		Actual:   "[" + strings.Join(actual, ", ") + "]",
	}
}

func expectCode(a Assertion, got string) error {
	if got == a.Code {
		return nil
	}
	if got == "" {
		got = "no error"
	}
	return &AssertionError{Type: a.Type, Expected: a.Code, Actual: got}
}

func formatProblems(ps []ProblemOutcome) string {
	if len(ps) == 0 {
		return "no problems"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Kind + ": " + p.Code
	}
	return strings.Join(parts, "; ")
}
