package resource

import (
	"path/filepath"
	"slices"
	"strings"
)

// Resource is one entry of a resolved directory.
type Resource struct {
	// Path is the absolute path of the entry.
	Path string `json:"path" yaml:"path"`

	// Ext is the extension without the leading dot ("" if none).
	Ext string `json:"ext" yaml:"ext"`

	// IsDir is true for subdirectories.
	IsDir bool `json:"is_dir,omitempty" yaml:"is_dir,omitempty"`
}

// Name returns the final path component.
func (r Resource) Name() string {
	return filepath.Base(r.Path)
}

func newResource(path string, isDir bool) Resource {
	r := Resource{Path: path, IsDir: isDir}
	if !isDir {
		r.Ext = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return r
}

// Set is an ordered collection of resources listed from one directory.
// Order is by file name, as returned by the directory listing.
type Set struct {
	dir   string
	items []Resource
}

// NewSet builds a Set for dir from the given resources.
func NewSet(dir string, items ...Resource) Set {
	return Set{dir: dir, items: items}
}

// Dir returns the directory the set was listed from.
func (s Set) Dir() string {
	return s.dir
}

// Len returns the number of resources.
func (s Set) Len() int {
	return len(s.items)
}

// Items returns a copy of the resources in order.
func (s Set) Items() []Resource {
	return slices.Clone(s.items)
}

// Paths returns the resource paths in order.
func (s Set) Paths() []string {
	out := make([]string, len(s.items))
	for i, r := range s.items {
		out[i] = r.Path
	}
	return out
}

// Names returns the final path components in order.
func (s Set) Names() []string {
	out := make([]string, len(s.items))
	for i, r := range s.items {
		out[i] = r.Name()
	}
	return out
}

// FilterExt returns the files whose extension is in exts. Directories are
// never included.
func (s Set) FilterExt(exts ...string) Set {
	out := Set{dir: s.dir}
	for _, r := range s.items {
		if !r.IsDir && slices.Contains(exts, r.Ext) {
			out.items = append(out.items, r)
		}
	}
	return out
}

// FilterFiles returns every entry that is not a directory.
func (s Set) FilterFiles() Set {
	out := Set{dir: s.dir}
	for _, r := range s.items {
		if !r.IsDir {
			out.items = append(out.items, r)
		}
	}
	return out
}

// OnlyExt fails with EXTENSION_CONTAMINATION on the first file whose
// extension is not in exts. Subdirectories are not files and are ignored.
func (s Set) OnlyExt(exts ...string) error {
	for _, r := range s.items {
		if r.IsDir {
			continue
		}
		if !slices.Contains(exts, r.Ext) {
			return NewContamination(s.dir, r.Path, r.Ext, exts)
		}
	}
	return nil
}

// Find returns the first resource whose final path component equals name.
func (s Set) Find(name string) (Resource, bool) {
	for _, r := range s.items {
		if r.Name() == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Contains reports whether a resource named name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := s.Find(name)
	return ok
}
