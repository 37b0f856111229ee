package resource

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Kind is a logical resource: something that knows where its files live and
// which file types its directory may hold.
type Kind interface {
	// Segments returns the directory path relative to the data root.
	Segments() []string

	// Policy returns the extension rules for the directory.
	Policy() Policy
}

// Policy describes what a kind's directory may contain and which of those
// files make up the kind's canonical resources.
type Policy struct {
	// Allowed lists the extensions permitted in the directory. An empty list
	// disables the contamination check.
	Allowed []string

	// Keep lists the extensions returned by Resources. Empty means Allowed
	// (or every file, when Allowed is also empty).
	Keep []string

	// File, when set, restricts Resources to the single named file.
	File string
}

// Locator resolves kinds against one data root.
//
// Locator holds no state besides the root: every call lists the
// filesystem afresh.
type Locator struct {
	root string
}

// NewLocator creates a Locator for root.
func NewLocator(root string) *Locator {
	return &Locator{root: root}
}

// Root returns the data root as given.
func (l *Locator) Root() string {
	return l.root
}

// Dir joins the kind's segments onto the root and canonicalizes the result.
// Fails with DIRECTORY_NOT_FOUND if the path does not exist or is not a
// directory.
func (l *Locator) Dir(k Kind) (string, error) {
	return canonicalDir(l.root, k.Segments()...)
}

// List returns every entry directly inside the kind's directory, files and
// subdirectories alike, ordered by name.
func (l *Locator) List(k Kind) (Set, error) {
	dir, err := l.Dir(k)
	if err != nil {
		return Set{}, err
	}
	return listDir(dir)
}

// Resources returns the kind's canonical file set.
//
// The whole directory is checked against Policy.Allowed before anything is
// returned: a single unexpected file fails the call with
// EXTENSION_CONTAMINATION rather than being filtered out.
func (l *Locator) Resources(k Kind) (Set, error) {
	all, err := l.List(k)
	if err != nil {
		return Set{}, err
	}
	p := k.Policy()
	if len(p.Allowed) > 0 {
		if err := all.OnlyExt(p.Allowed...); err != nil {
			return Set{}, err
		}
	}

	if p.File != "" {
		r, ok := all.Find(p.File)
		if !ok || r.IsDir {
			return NewSet(all.Dir()), nil
		}
		return NewSet(all.Dir(), r), nil
	}

	keep := p.Keep
	if len(keep) == 0 {
		keep = p.Allowed
	}
	if len(keep) == 0 {
		return all.FilterFiles(), nil
	}
	return all.FilterExt(keep...), nil
}

// HasFile reports whether the kind's resources contain a file whose final
// path component equals name.
func (l *Locator) HasFile(k Kind, name string) (bool, error) {
	set, err := l.Resources(k)
	if err != nil {
		return false, err
	}
	return set.Contains(name), nil
}

// Read returns the contents of the named resource. Fails with FILE_NOT_FOUND
// if no resource is named name, or IO if the read fails.
func (l *Locator) Read(k Kind, name string) (string, error) {
	set, err := l.Resources(k)
	if err != nil {
		return "", err
	}
	r, ok := set.Find(name)
	if !ok {
		return "", NewFileNotFound(name, set.Dir())
	}
	b, err := os.ReadFile(r.Path)
	if err != nil {
		return "", NewIOError(set.Dir(), r.Path, err)
	}
	return string(b), nil
}

// FullPath returns the canonical path of name inside the kind's directory.
// Unlike Read, the file does not have to be one of the kind's resources; it
// only has to exist.
func (l *Locator) FullPath(k Kind, name string) (string, error) {
	dir, err := l.Dir(k)
	if err != nil {
		return "", err
	}
	p, err := filepath.EvalSymlinks(filepath.Join(dir, name))
	if err != nil {
		return "", NewFileNotFound(name, dir)
	}
	return p, nil
}

// canonicalDir joins segments onto root, then resolves the result to an
// absolute path with symlinks evaluated.
func canonicalDir(root string, segments ...string) (string, error) {
	path := filepath.Join(append([]string{root}, segments...)...)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewDirectoryNotFound(path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", NewDirectoryNotFound(path)
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", NewDirectoryNotFound(path)
	}
	return resolved, nil
}

func listDir(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, NewDirectoryNotFound(dir)
		}
		return Set{}, NewIOError(dir, "", err)
	}
	set := Set{dir: dir, items: make([]Resource, 0, len(entries))}
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			// Follow symlinks so a linked directory is not mistaken for a file.
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		set.items = append(set.items, newResource(filepath.Join(dir, e.Name()), isDir))
	}
	return set, nil
}
