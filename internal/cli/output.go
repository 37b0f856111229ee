package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Drift found: missing series, orphans, resource problems
	ExitCommandError = 2 // Command error (bad flags, unreadable spec, database failure)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Rendered is set when the error was already written through an
	// OutputFormatter, so callers must not print it again.
	Rendered bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsRendered reports whether err was already written through an
// OutputFormatter.
func IsRendered(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Rendered
}

// OutputFormatter writes command results as text, JSON or YAML.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the envelope for JSON and YAML output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                     // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`     // success payload
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"`   // error details
	RunID  string    `json:"run_id,omitempty" yaml:"run_id,omitempty"` // run recorded by this command
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`                           // "E001", "DIRECTORY_NOT_FOUND", ...
	Message string `json:"message" yaml:"message"`                     // human-readable message
	Details any    `json:"details,omitempty" yaml:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	return f.Render(CLIResponse{Status: "ok", Data: data}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, data)
		return err
	})
}

// Render writes resp as JSON or YAML, or calls text for human-readable
// output.
func (f *OutputFormatter) Render(resp CLIResponse, text func(w io.Writer) error) error {
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(f.Writer)
	}
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	resp := CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message, Details: details},
	}
	return f.Render(resp, func(w io.Writer) error {
		fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
		if f.Verbose && details != nil {
			fmt.Fprintf(w, "Details: %v\n", details)
		}
		return nil
	})
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
