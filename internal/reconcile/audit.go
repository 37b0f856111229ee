package reconcile

import (
	"log/slog"

	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/specindex"
)

// Problem is one resource kind that failed to resolve during an audit.
type Problem struct {
	Kind string             `json:"kind" yaml:"kind"`
	Code resource.ErrorCode `json:"code" yaml:"code"`
	Err  string             `json:"error" yaml:"error"`
}

// Audit resolves every static kind and every declared bucket's raw,
// metadata and transformed kinds, and returns one Problem per kind that
// fails. Unlike Verify it never stops early: the point is to show every
// directory an operator has to fix.
func (r *Reconciler) Audit(idx *specindex.Index) []Problem {
	kinds := resource.StaticKinds()
	for _, key := range idx.Keys() {
		kinds = append(kinds, resource.BucketKinds(key)...)
	}

	problems := []Problem{}
	for _, k := range kinds {
		if _, err := r.loc.Resources(k); err != nil {
			p := Problem{Kind: kindName(k), Code: resource.CodeOf(err), Err: err.Error()}
			slog.Warn("resource check failed", "kind", p.Kind, "code", string(p.Code))
			problems = append(problems, p)
		}
	}
	return problems
}

func kindName(k resource.Kind) string {
	if s, ok := k.(interface{ String() string }); ok {
		return s.String()
	}
	return "unknown"
}
