package reconcile

import (
	"github.com/roach88/seriesync/internal/series"
)

// Entry is the verification result of one declared series.
type Entry struct {
	Spec  series.Spec `json:"spec" yaml:"spec"`
	File  string      `json:"file" yaml:"file"`
	Found bool        `json:"found" yaml:"found"`
}

// Report is the outcome of Verify: one entry per declared series, in
// bucket order and declaration order within a bucket.
type Report struct {
	Root    string  `json:"root" yaml:"root"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Found returns the entries whose file exists.
func (r *Report) Found() []Entry {
	return r.filter(true)
}

// Missing returns the entries whose file does not exist.
func (r *Report) Missing() []Entry {
	return r.filter(false)
}

// Complete reports whether every declared series has its file.
func (r *Report) Complete() bool {
	for _, e := range r.Entries {
		if !e.Found {
			return false
		}
	}
	return true
}

// Summary counts found and missing entries.
func (r *Report) Summary() (found, missing int) {
	for _, e := range r.Entries {
		if e.Found {
			found++
		} else {
			missing++
		}
	}
	return found, missing
}

func (r *Report) filter(found bool) []Entry {
	out := []Entry{}
	for _, e := range r.Entries {
		if e.Found == found {
			out = append(out, e)
		}
	}
	return out
}
