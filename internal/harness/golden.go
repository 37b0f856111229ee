package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the result's snapshot against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// RunWithGolden runs a scenario in a temporary directory, fails the test
// on any assertion error and compares the outcome with its golden file.
func RunWithGolden(t *testing.T, s *Scenario) *Result {
	t.Helper()

	result, err := Run(s, t.TempDir())
	if err != nil {
		t.Fatalf("run scenario %s: %v", s.Name, err)
	}
	for _, e := range result.Errors {
		t.Errorf("scenario %s: %s", s.Name, e)
	}
	AssertGolden(t, s.Name, result)
	return result
}
