package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one reconciliation case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Spec is the series specification text written to
	// specs/series_spec.keytree.
	Spec string `yaml:"spec"`

	// Files are created empty, relative to the root.
	Files []string `yaml:"files,omitempty"`

	// Dirs are created, relative to the root.
	Dirs []string `yaml:"dirs,omitempty"`

	// Bare skips the static directory layout.
	Bare bool `yaml:"bare,omitempty"`

	// ScanTransformed adds transformed_data to the orphan scan.
	ScanTransformed bool `yaml:"scan_transformed,omitempty"`

	// ResumeAfter, when set, computes the work left after this series.
	ResumeAfter string `yaml:"resume_after,omitempty"`

	// Assertions validate the outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one aspect of a Result.
type Assertion struct {
	Type   string   `yaml:"type"`
	Series []string `yaml:"series,omitempty"`
	Paths  []string `yaml:"paths,omitempty"`
	Kind   string   `yaml:"kind,omitempty"`
	Code   string   `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertFound        = "found"
	AssertMissing      = "missing"
	AssertOrphans      = "orphans"
	AssertResume       = "resume"
	AssertProblem      = "problem"
	AssertClean        = "clean"
	AssertVerifyError  = "verify_error"
	AssertOrphansError = "orphans_error"
	AssertResumeError  = "resume_error"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertFound, AssertMissing, AssertResume, AssertOrphans, AssertClean:
		return nil
	case AssertProblem:
		if a.Kind == "" || a.Code == "" {
			return fmt.Errorf("problem assertion requires kind and code")
		}
		return nil
	case AssertVerifyError, AssertOrphansError, AssertResumeError:
		if a.Code == "" {
			return fmt.Errorf("%s assertion requires code", a.Type)
		}
		return nil
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}
