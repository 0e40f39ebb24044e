package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"clocktree-go/errcode"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Illegal clock tree or activation failure
	ExitCommandError = 2 // Command error (unreadable file, bad flags, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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
// Returns ExitFailure (1) if the error is not an ExitError.
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

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics, kept off Writer so JSON stays parseable
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // errcode value, e.g. "invalid_params"
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// JSON reports whether output is JSON.
func (f *OutputFormatter) JSON() bool { return f.Format == "json" }

// Success writes data as an "ok" response. In text mode nothing is written;
// callers print their own text.
func (f *OutputFormatter) Success(data any) error {
	if !f.JSON() {
		return nil
	}
	return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
}

// Error writes an error response.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Data:   details,
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// Violation is one reason a clock tree was rejected.
type Violation struct {
	Code    string `json:"code"`
	Op      string `json:"op,omitempty"`
	Message string `json:"message"`
}

// violations flattens joined errors into one entry per cause.
func violations(err error) []Violation {
	if err == nil {
		return nil
	}
	if m, ok := err.(interface{ Unwrap() []error }); ok {
		var out []Violation
		for _, e := range m.Unwrap() {
			out = append(out, violations(e)...)
		}
		return out
	}
	v := Violation{Code: string(errcode.Of(err)), Message: err.Error()}
	var e *errcode.E
	if errors.As(err, &e) {
		v.Op = e.Op
	}
	return []Violation{v}
}

// reportViolations prints every violation and returns the ExitFailure error.
func reportViolations(f *OutputFormatter, file string, err error) error {
	vs := violations(err)
	if f.JSON() {
		_ = f.Error(vs[0].Code, vs[0].Message, struct {
			File       string      `json:"file"`
			Violations []Violation `json:"violations"`
		}{file, vs})
	} else {
		fmt.Fprintf(f.Writer, "✗ %s: %d violation(s)\n", file, len(vs))
		for _, v := range vs {
			fmt.Fprintf(f.Writer, "  [%s] %s\n", v.Code, v.Message)
		}
	}
	return WrapExitError(ExitFailure, file+": illegal clock tree", err)
}
