// Package testutil builds data-root fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/seriesync/internal/series"
)

// DataRoot is a temporary data root laid out like a real one.
//
// Path is canonical (symlinks resolved) so it compares equal to the paths
// returned by resource.Locator.
type DataRoot struct {
	t    testing.TB
	Path string
}

// NewDataRoot creates an empty data root under t.TempDir().
func NewDataRoot(t testing.TB) *DataRoot {
	t.Helper()
	p, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return &DataRoot{t: t, Path: p}
}

// NewStandardRoot creates a data root with every static directory present
// and the single-file assets in place.
func NewStandardRoot(t testing.TB) *DataRoot {
	t.Helper()
	d := NewDataRoot(t)
	d.Dir("specs")
	d.Dir("pid_graphics", "js")
	d.Dir("ts_graphics", "spec")
	d.Dir("ts_graphics", "js")
	d.Dir("raw_data")
	d.Dir("transformed_data")
	d.File("body { margin: 0 }\n", "pid_graphics", "css", "style.css")
	d.File("\x89PNG", "pid_graphics", "favicon", "favicon.png")
	return d
}

// Dir creates (if needed) and returns the directory at segments.
func (d *DataRoot) Dir(segments ...string) string {
	d.t.Helper()
	p := filepath.Join(append([]string{d.Path}, segments...)...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		d.t.Fatalf("mkdir %s: %v", p, err)
	}
	return p
}

// File writes content to the file at segments, creating parent directories.
func (d *DataRoot) File(content string, segments ...string) string {
	d.t.Helper()
	p := filepath.Join(append([]string{d.Path}, segments...)...)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		d.t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		d.t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// RawDir creates the raw data directory of a bucket.
func (d *DataRoot) RawDir(kind series.DataKind, region series.Region) string {
	return d.Dir("raw_data", kind.String(), region.PathName())
}

// TransformedDir creates the transformed data directory of a bucket.
func (d *DataRoot) TransformedDir(kind series.DataKind, region series.Region) string {
	return d.Dir("transformed_data", kind.String(), region.PathName())
}

// RawFile writes a file into a bucket's raw data directory.
func (d *DataRoot) RawFile(kind series.DataKind, region series.Region, name, content string) string {
	return d.File(content, "raw_data", kind.String(), region.PathName(), name)
}

// TransformedFile writes a file into a bucket's transformed data directory.
func (d *DataRoot) TransformedFile(kind series.DataKind, region series.Region, name, content string) string {
	return d.File(content, "transformed_data", kind.String(), region.PathName(), name)
}

// Spec writes a specification file into specs/.
func (d *DataRoot) Spec(name, content string) string {
	return d.File(content, "specs", name)
}
