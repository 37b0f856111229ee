package harness

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/seriesync/internal/reconcile"
	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/specfile"
	"github.com/roach88/seriesync/internal/specindex"
)

// staticLayout is created for every scenario that is not bare.
var staticLayout = struct {
	dirs  []string
	files []string
}{
	dirs: []string{
		resource.SpecsDir,
		"pid_graphics/js",
		"ts_graphics/spec",
		"ts_graphics/js",
		resource.RawDataDir,
		resource.TransformedDataDir,
	},
	files: []string{
		"pid_graphics/css/style.css",
		"pid_graphics/favicon/favicon.png",
	},
}

// Run lays the scenario out under dir, which must be empty, runs every
// reconciliation pass and evaluates the assertions.
//
// The error return is for scenarios that cannot run at all (bad spec text,
// unwritable dir). Pass failures land in Result.Errors.
func Run(s *Scenario, dir string) (*Result, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if err := layout(s, root); err != nil {
		return nil, err
	}

	specs, err := specfile.ParseSeries(s.Spec)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	idx := specindex.FromSpecs(specs)
	rec := reconcile.New(resource.NewLocator(root))

	result := &Result{Pass: true, Errors: []string{}}

	report, err := rec.Verify(idx)
	if err != nil {
		result.VerifyError = errorCode(err)
	} else {
		for _, e := range report.Entries {
			result.Entries = append(result.Entries, EntryOutcome{
				Bucket:   e.Spec.Key().String(),
				SeriesID: string(e.Spec.SeriesID),
				Found:    e.Found,
			})
		}
	}

	trees := []resource.DataTree{{Top: resource.RawDataDir}}
	if s.ScanTransformed {
		trees = append(trees, resource.DataTree{Top: resource.TransformedDataDir})
	}
	orphans, err := rec.FindOrphans(idx, trees...)
	if err != nil {
		result.OrphansError = errorCode(err)
	}
	for _, p := range orphans {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, err
		}
		result.Orphans = append(result.Orphans, filepath.ToSlash(rel))
	}

	for _, p := range rec.Audit(idx) {
		result.Problems = append(result.Problems, ProblemOutcome{Kind: p.Kind, Code: string(p.Code)})
	}

	if s.ResumeAfter != "" {
		rest, err := reconcile.ResumeFrom(idx, series.SeriesID(s.ResumeAfter))
		if err != nil {
			result.ResumeError = errorCode(err)
		}
		for _, sp := range rest {
			result.Resume = append(result.Resume, string(sp.SeriesID))
		}
	}

	slog.Debug("scenario executed", "scenario", s.Name, "entries", len(result.Entries), "orphans", len(result.Orphans))

	for _, a := range s.Assertions {
		if err := evaluate(a, result); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

func layout(s *Scenario, root string) error {
	var dirs, files []string
	if !s.Bare {
		dirs = append(dirs, staticLayout.dirs...)
		files = append(files, staticLayout.files...)
	}
	dirs = append(dirs, s.Dirs...)
	files = append(files, s.Files...)

	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(f), err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			return fmt.Errorf("create %s: %w", f, err)
		}
	}
	if !s.Bare {
		p := filepath.Join(root, resource.SpecsDir, specfile.DefaultSeriesSpec)
		if err := os.WriteFile(p, []byte(s.Spec), 0o644); err != nil {
			return fmt.Errorf("write spec: %w", err)
		}
	}
	return nil
}

func errorCode(err error) string {
	if reconcile.IsUndefinedResumePoint(err) {
		return "UNDEFINED_RESUME_POINT"
	}
	if code := resource.CodeOf(err); code != "" {
		return string(code)
	}
	return err.Error()
}
