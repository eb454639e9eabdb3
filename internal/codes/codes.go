package codes

import (
	"errors"
	"fmt"
)

// Process exit codes returned by swiftdriver
const (
	ExitSuccess           = 0
	ExitJobFailed         = 1
	ExitInvalidInvocation = 2
	ExitPlanningErrors    = 3
	ExitConfigError       = 4
)

// ErrorCodes maps driver exit codes to their descriptions
var ErrorCodes = map[int]string{
	ExitSuccess:           "Success",
	ExitJobFailed:         "A planned job failed",
	ExitInvalidInvocation: "Invalid invocation",
	ExitPlanningErrors:    "Planning reported errors",
	ExitConfigError:       "Invalid configuration",
}

// IsSuccess returns true if the exit code indicates a successful run
func IsSuccess(code int) bool {
	return code == ExitSuccess
}

// GetErrorMessage returns the description for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ErrorCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}

// ExitError attaches an exit code to an error returned from a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return GetErrorMessage(e.Code)
	}

	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithCode wraps err so that the process exits with code
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}

	return &ExitError{Code: code, Err: err}
}

// Errorf formats an error carrying an exit code
func Errorf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// CodeOf returns the exit code carried by err. Errors without one map to
// ExitJobFailed.
func CodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitJobFailed
}
