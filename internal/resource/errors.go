package resource

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes resource resolution failures.
type ErrorCode string

const (
	// ErrCodeDirectoryNotFound indicates a kind's directory does not exist under root.
	ErrCodeDirectoryNotFound ErrorCode = "DIRECTORY_NOT_FOUND"

	// ErrCodeFileNotFound indicates a named file is not among a kind's resources.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"

	// ErrCodeExtensionContamination indicates a directory holds a file type it should not.
	ErrCodeExtensionContamination ErrorCode = "EXTENSION_CONTAMINATION"

	// ErrCodeIO indicates a listing or read failed for another reason.
	ErrCodeIO ErrorCode = "IO"
)

// Error is returned by every fallible Locator operation.
//
// The populated fields depend on Code:
//   - DIRECTORY_NOT_FOUND: Dir
//   - FILE_NOT_FOUND: Name, Dir
//   - EXTENSION_CONTAMINATION: Dir, File, Ext, Allowed
//   - IO: Dir (and File when a single file failed), Err
type Error struct {
	Code ErrorCode

	// Dir is the directory involved, canonical when it could be resolved.
	Dir string

	// Name is the requested file name (FILE_NOT_FOUND).
	Name string

	// File is the offending file path (EXTENSION_CONTAMINATION, IO).
	File string

	// Ext is the offending extension without a leading dot.
	Ext string

	// Allowed is the permitted extension set (EXTENSION_CONTAMINATION).
	Allowed []string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeDirectoryNotFound:
		return fmt.Sprintf("%s: directory '%s' not found", e.Code, e.Dir)
	case ErrCodeFileNotFound:
		return fmt.Sprintf("%s: file '%s' not found in '%s'", e.Code, e.Name, e.Dir)
	case ErrCodeExtensionContamination:
		return fmt.Sprintf("%s: directory '%s' contains '%s' with extension '%s' (allowed: %s)",
			e.Code, e.Dir, e.File, e.Ext, strings.Join(e.Allowed, ", "))
	default:
		target := e.Dir
		if e.File != "" {
			target = e.File
		}
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Code, target, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Code, target)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewDirectoryNotFound creates a DIRECTORY_NOT_FOUND error.
func NewDirectoryNotFound(dir string) *Error {
	return &Error{Code: ErrCodeDirectoryNotFound, Dir: dir}
}

// NewFileNotFound creates a FILE_NOT_FOUND error.
func NewFileNotFound(name, dir string) *Error {
	return &Error{Code: ErrCodeFileNotFound, Name: name, Dir: dir}
}

// NewContamination creates an EXTENSION_CONTAMINATION error.
func NewContamination(dir, file, ext string, allowed []string) *Error {
	return &Error{
		Code:    ErrCodeExtensionContamination,
		Dir:     dir,
		File:    file,
		Ext:     ext,
		Allowed: append([]string(nil), allowed...),
	}
}

// NewIOError wraps an underlying filesystem failure.
func NewIOError(dir, file string, err error) *Error {
	return &Error{Code: ErrCodeIO, Dir: dir, File: file, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsDirectoryNotFound reports whether err is a DIRECTORY_NOT_FOUND error.
func IsDirectoryNotFound(err error) bool {
	return CodeOf(err) == ErrCodeDirectoryNotFound
}

// IsFileNotFound reports whether err is a FILE_NOT_FOUND error.
func IsFileNotFound(err error) bool {
	return CodeOf(err) == ErrCodeFileNotFound
}

// IsContamination reports whether err is an EXTENSION_CONTAMINATION error.
func IsContamination(err error) bool {
	return CodeOf(err) == ErrCodeExtensionContamination
}

// IsIO reports whether err is an IO error.
func IsIO(err error) bool {
	return CodeOf(err) == ErrCodeIO
}
