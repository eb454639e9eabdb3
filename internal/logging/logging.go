// Package logging prints styled driver messages to the terminal.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/Norgate-AV/swiftdriver/internal/diag"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
	NoteColorFG    = pterm.FgGray
)

// Logger writes tagged messages. Errors and warnings go to Err, everything
// else to Out.
type Logger struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

// New creates a logger on the process streams
func New(verbose bool) *Logger {
	return &Logger{Out: os.Stdout, Err: os.Stderr, Verbose: verbose}
}

// Error prints a standard Go error
func (l *Logger) Error(tag string, err error) {
	fmt.Fprint(l.Err, ErrorStyleBG.Sprint(tag))
	fmt.Fprintln(l.Err, ErrorColorFG.Sprint(" "+err.Error()))
}

// Warning prints a warning message
func (l *Logger) Warning(tag, msg string) {
	fmt.Fprint(l.Err, WarnStyleBG.Sprint(tag))
	fmt.Fprintln(l.Err, WarnColorFG.Sprint(" "+msg))
}

// Info prints an informational message
func (l *Logger) Info(tag, msg string) {
	fmt.Fprint(l.Out, InfoStyleBG.Sprint(tag))
	fmt.Fprintln(l.Out, InfoColorFG.Sprint(" "+msg))
}

// Success prints a completion message
func (l *Logger) Success(tag, msg string) {
	fmt.Fprint(l.Out, SuccessStyleBG.Sprint(tag))
	fmt.Fprintln(l.Out, SuccessColorFG.Sprint(" "+msg))
}

// Debug prints msg only in verbose mode
func (l *Logger) Debug(format string, args ...any) {
	if !l.Verbose {
		return
	}

	fmt.Fprintln(l.Out, NoteColorFG.Sprintf(format, args...))
}

// Diagnostics prints planning diagnostics in emission order
func (l *Logger) Diagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		switch d.Severity {
		case diag.SeverityError:
			fmt.Fprint(l.Err, ErrorStyleBG.Sprint("error:"))
			fmt.Fprintln(l.Err, ErrorColorFG.Sprint(" "+d.Description()))
		case diag.SeverityWarning:
			l.Warning("warning:", d.Description())
		default:
			fmt.Fprintln(l.Err, NoteColorFG.Sprint(d.String()))
		}
	}
}
