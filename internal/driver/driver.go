// Package driver resolves a toolchain invocation into build settings and
// plans the external jobs that carry the build out.
//
// New performs all resolution up front: driver kind, compiler mode, inputs,
// output kinds, debug-info policy, module identity. Policy violations are
// recorded on the diagnostics engine and resolution continues with a
// fallback; only structural failures are returned as errors.
package driver

import (
	"fmt"
	"os"

	"github.com/Norgate-AV/swiftdriver/internal/diag"
	"github.com/Norgate-AV/swiftdriver/internal/options"
	"github.com/Norgate-AV/swiftdriver/internal/outputmap"
	"github.com/Norgate-AV/swiftdriver/internal/response"
	"github.com/Norgate-AV/swiftdriver/internal/triple"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// Driver holds the resolved settings of one invocation
type Driver struct {
	kind        Kind
	invocation  []string
	args        *options.ParsedArguments
	passthrough []string

	diagnostics *diag.Engine
	table       *options.Table
	processDir  string
	host        triple.Triple

	target           triple.Triple
	workingDirectory string
	outputFileMap    *outputmap.OutputFileMap

	compilerMode       CompilerMode
	inputs             []vpath.TypedVirtualPath
	compilerOutputType vpath.FileType
	hasCompilerOutput  bool
	linkOutputType     LinkOutputType

	debugInfoLevel  DebugInfoLevel
	debugInfoFormat DebugInfoFormat

	moduleName    string
	moduleOutput  *ModuleOutput
	moduleDocPath vpath.VirtualPath
	linkerOutput  vpath.VirtualPath
}

// Option configures a Driver
type Option func(*Driver)

// WithDiagnostics routes diagnostics to engine instead of a private one
func WithDiagnostics(engine *diag.Engine) Option {
	return func(d *Driver) {
		d.diagnostics = engine
	}
}

// WithWorkingDirectory sets the directory a relative -working-directory is
// resolved against
func WithWorkingDirectory(dir string) Option {
	return func(d *Driver) {
		d.processDir = dir
	}
}

// WithOptionTable replaces the built-in option table
func WithOptionTable(table *options.Table) Option {
	return func(d *Driver) {
		d.table = table
	}
}

// WithHostTriple sets the target used when -target is absent
func WithHostTriple(t triple.Triple) Option {
	return func(d *Driver) {
		d.host = t
	}
}

// New resolves args, where args[0] is the invocation name
func New(args []string, opts ...Option) (*Driver, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty invocation", ErrUnknownDriverKind)
	}

	d := &Driver{
		diagnostics: diag.NewEngine(),
		table:       options.Default(),
		host:        triple.Host(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.processDir == "" {
		if wd, err := os.Getwd(); err == nil {
			d.processDir = wd
		}
	}

	expanded := append([]string{args[0]}, response.Expand(args[1:], d.diagnostics)...)

	d.invocation = expanded

	kind, err := DetermineKind(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to determine driver kind: %w", err)
	}
	d.kind = kind

	if kind.IsPassthrough() {
		d.passthrough = passthroughArgs(kind, expanded[1:])
		return d, nil
	}

	parsed, err := d.table.Parse(expanded[1:])
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	d.args = parsed

	if err := d.resolve(); err != nil {
		return nil, err
	}

	return d, nil
}

// Kind returns the driver kind
func (d *Driver) Kind() Kind { return d.kind }

// Invocation returns the argument vector after response-file expansion
func (d *Driver) Invocation() []string {
	out := make([]string, len(d.invocation))
	copy(out, d.invocation)
	return out
}

// Args returns the parsed arguments, nil for passthrough kinds
func (d *Driver) Args() *options.ParsedArguments { return d.args }

// Diagnostics returns the engine collecting this run's diagnostics
func (d *Driver) Diagnostics() *diag.Engine { return d.diagnostics }

// Target returns the resolved target triple
func (d *Driver) Target() triple.Triple { return d.target }

// WorkingDirectory returns the resolved -working-directory, or ""
func (d *Driver) WorkingDirectory() string { return d.workingDirectory }

// CompilerMode returns how compile jobs are formed
func (d *Driver) CompilerMode() CompilerMode { return d.compilerMode }

// Inputs returns the typed input files in command-line order
func (d *Driver) Inputs() []vpath.TypedVirtualPath {
	out := make([]vpath.TypedVirtualPath, len(d.inputs))
	copy(out, d.inputs)
	return out
}

// CompilerOutputType returns the primary output type of compile jobs
func (d *Driver) CompilerOutputType() (vpath.FileType, bool) {
	return d.compilerOutputType, d.hasCompilerOutput
}

// LinkOutputType returns what the link stage produces
func (d *Driver) LinkOutputType() LinkOutputType { return d.linkOutputType }

// DebugInfoLevel returns the requested debug-info level
func (d *Driver) DebugInfoLevel() DebugInfoLevel { return d.debugInfoLevel }

// DebugInfoFormat returns the debug-info encoding
func (d *Driver) DebugInfoFormat() DebugInfoFormat { return d.debugInfoFormat }

// ModuleName returns the resolved module name
func (d *Driver) ModuleName() string { return d.moduleName }

// ModuleOutput returns the module emission plan, nil when none is emitted
func (d *Driver) ModuleOutput() *ModuleOutput { return d.moduleOutput }

// ModuleDocPath returns where the module documentation goes
func (d *Driver) ModuleDocPath() (vpath.VirtualPath, bool) {
	return d.moduleDocPath, d.moduleOutput != nil
}

// LinkerOutput returns the final product path when linking
func (d *Driver) LinkerOutput() (vpath.VirtualPath, bool) {
	return d.linkerOutput, d.linkOutputType != LinkNone
}

// OutputFileMap returns the loaded output-file map, or nil
func (d *Driver) OutputFileMap() *outputmap.OutputFileMap { return d.outputFileMap }

// PassthroughArgs returns the arguments forwarded by passthrough kinds
func (d *Driver) PassthroughArgs() []string { return d.passthrough }
