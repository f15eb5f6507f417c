package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Score below threshold, guard violation
	ExitCommandError = 2 // Bad input file, bad flags, database errors
)

// Error codes reported in JSON responses.
const (
	ErrCodeInput          = "E_INPUT"
	ErrCodeGuard          = "E_GUARD"
	ErrCodeBaseline       = "E_BASELINE"
	ErrCodeBelowThreshold = "E_BELOW_THRESHOLD"
	ErrCodeStore          = "E_STORE"
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

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // payload, present on failures too when useful
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results as JSON or text.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

// Emit writes data. In text mode render produces the human-readable form.
func (f *OutputFormatter) Emit(data any, render func(w io.Writer)) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	render(f.Writer)
	return nil
}

// Fail writes an error response and returns err unchanged, so commands can
// `return f.Fail(...)`. In text mode nothing is written; main prints err.
// data, when non-nil, is attached to the JSON response.
func (f *OutputFormatter) Fail(code string, data any, err *ExitError) error {
	if f.Format != "json" {
		return err
	}
	resp := CLIResponse{
		Status: "error",
		Data:   data,
		Error:  &CLIError{Code: code, Message: err.Message},
	}
	if err.Err != nil {
		resp.Error.Details = err.Err.Error()
	}
	if encErr := f.encode(resp); encErr != nil {
		return encErr
	}
	return err
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
