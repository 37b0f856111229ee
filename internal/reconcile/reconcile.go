package reconcile

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/specindex"
)

// Reconciler checks a spec index against one data root.
type Reconciler struct {
	loc *resource.Locator
}

// New creates a Reconciler that resolves resources through loc.
func New(loc *resource.Locator) *Reconciler {
	return &Reconciler{loc: loc}
}

// Verify reports, for every declared series, whether "<series_id>.csv" is
// among its bucket's raw data resources.
//
// A missing file is recorded and verification continues. A bucket whose
// directory is absent or contaminated fails the whole call: the directory
// cannot be trusted, so no partial report is returned.
func (r *Reconciler) Verify(idx *specindex.Index) (*Report, error) {
	report := &Report{Root: r.loc.Root(), Entries: make([]Entry, 0, idx.Len())}

	for _, b := range idx.Buckets() {
		kind := resource.RawData{Kind: b.Key.Kind, Region: b.Key.Region}
		set, err := r.loc.Resources(kind)
		if err != nil {
			return nil, fmt.Errorf("verify bucket %s: %w", b.Key, err)
		}
		slog.Debug("verifying bucket", "bucket", b.Key.String(), "dir", set.Dir(), "declared", len(b.Specs))

		for _, s := range b.Specs {
			name := s.SeriesID.Filename(resource.ExtCSV)
			report.Entries = append(report.Entries, Entry{
				Spec:  s,
				File:  name,
				Found: set.Contains(name),
			})
		}
	}

	found, missing := report.Summary()
	slog.Info("verification complete", "found", found, "missing", missing)
	return report, nil
}

// FindOrphans walks the given data trees (raw_data when none are given) and
// returns every data file whose identifier is not declared in idx.
//
// The identifier is the file name without its extension. A file also
// belongs to the series named by its SeriesID.Stem, so "AUSURAMS_adj.csv"
// belongs to "AUSURAMS". Paths are
// returned in walk order (lexical). Nothing is deleted.
func (r *Reconciler) FindOrphans(idx *specindex.Index, trees ...resource.DataTree) ([]string, error) {
	if len(trees) == 0 {
		trees = []resource.DataTree{{Top: resource.RawDataDir}}
	}

	orphans := []string{}
	for _, tree := range trees {
		dir, err := r.loc.Dir(tree)
		if err != nil {
			return nil, fmt.Errorf("find orphans: %w", err)
		}
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return resource.NewIOError(dir, path, walkErr)
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			id := series.SeriesID(strings.TrimSuffix(name, filepath.Ext(name)))
			if !idx.Contains(id) && !idx.Contains(id.Stem()) {
				slog.Debug("orphan candidate", "path", path, "stem", string(id.Stem()))
				orphans = append(orphans, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("find orphans in %s: %w", tree.Top, err)
		}
	}
	return orphans, nil
}

// ResumeFrom returns the specs that come strictly after last in the index's
// bucket order. It fails with UndefinedResumePointError if last is not
// declared.
func ResumeFrom(idx *specindex.Index, last series.SeriesID) ([]series.Spec, error) {
	if !idx.Contains(last) {
		return nil, &UndefinedResumePointError{SeriesID: last}
	}
	all := idx.All()
	for i, s := range all {
		if s.SeriesID == last {
			return all[i+1:], nil
		}
	}
	// Contains and All disagree only if the index is corrupt.
	return nil, &UndefinedResumePointError{SeriesID: last}
}
