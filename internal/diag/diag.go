// Package diag accumulates recoverable problems found while planning a build.
//
// An Engine belongs to exactly one planning run. It never fails and never
// stops the caller; structural failures are reported as errors instead.
package diag

import "fmt"

// Severity of a diagnostic
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
	SeverityRemark
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	case SeverityRemark:
		return "remark"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one recorded problem
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Description returns the plain-text message
func (d Diagnostic) Description() string {
	return d.Message
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Engine is the per-run diagnostics sink
type Engine struct {
	diagnostics []Diagnostic
	errorCount  int
}

// NewEngine creates an empty engine
func NewEngine() *Engine {
	return &Engine{}
}

// Emit records a diagnostic
func (e *Engine) Emit(d Diagnostic) {
	if d.Severity == SeverityError {
		e.errorCount++
	}

	e.diagnostics = append(e.diagnostics, d)
}

// Error records an error-level diagnostic
func (e *Engine) Error(format string, args ...any) {
	e.Emit(Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

// Warning records a warning-level diagnostic
func (e *Engine) Warning(format string, args ...any) {
	e.Emit(Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Note records a note-level diagnostic
func (e *Engine) Note(format string, args ...any) {
	e.Emit(Diagnostic{Severity: SeverityNote, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns the recorded diagnostics in emission order
func (e *Engine) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

// Descriptions returns the message of every recorded diagnostic
func (e *Engine) Descriptions() []string {
	out := make([]string, 0, len(e.diagnostics))
	for _, d := range e.diagnostics {
		out = append(out, d.Description())
	}

	return out
}

// HasErrors reports whether any error-level diagnostic was recorded
func (e *Engine) HasErrors() bool {
	return e.errorCount > 0
}
