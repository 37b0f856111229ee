package harness

// EntryOutcome is one verified series.
type EntryOutcome struct {
	Bucket   string `json:"bucket"`
	SeriesID string `json:"series_id"`
	Found    bool   `json:"found"`
}

// ProblemOutcome is one audit problem.
type ProblemOutcome struct {
	Kind string `json:"kind"`
	Code string `json:"code"`
}

// Result is the outcome of running a scenario. Pass and Errors describe the
// assertions; the remaining fields are what the golden snapshot records.
type Result struct {
	Pass   bool     `json:"-"`
	Errors []string `json:"-"`

	Entries      []EntryOutcome   `json:"entries,omitempty"`
	VerifyError  string           `json:"verify_error,omitempty"`
	Orphans      []string         `json:"orphans,omitempty"`
	OrphansError string           `json:"orphans_error,omitempty"`
	Problems     []ProblemOutcome `json:"problems,omitempty"`
	Resume       []string         `json:"resume,omitempty"`
	ResumeError  string           `json:"resume_error,omitempty"`
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) seriesWhere(found bool) []string {
	out := []string{}
	for _, e := range r.Entries {
		if e.Found == found {
			out = append(out, e.SeriesID)
		}
	}
	return out
}
