package driver

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Norgate-AV/swiftdriver/internal/options"
	"github.com/Norgate-AV/swiftdriver/internal/outputmap"
	"github.com/Norgate-AV/swiftdriver/internal/triple"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// CompilerMode decides how compile jobs are formed
type CompilerMode int

const (
	ModeStandardCompile CompilerMode = iota
	ModeSingleCompile
	ModeImmediate
	ModeREPL
)

func (m CompilerMode) String() string {
	switch m {
	case ModeStandardCompile:
		return "standard-compile"
	case ModeSingleCompile:
		return "single-compile"
	case ModeImmediate:
		return "immediate"
	case ModeREPL:
		return "repl"
	default:
		return fmt.Sprintf("CompilerMode(%d)", int(m))
	}
}

// LinkOutputType is the product of the link stage
type LinkOutputType int

const (
	LinkNone LinkOutputType = iota
	LinkExecutable
	LinkDynamicLibrary
	LinkStaticLibrary
)

func (l LinkOutputType) String() string {
	switch l {
	case LinkNone:
		return "none"
	case LinkExecutable:
		return "executable"
	case LinkDynamicLibrary:
		return "dynamic-library"
	case LinkStaticLibrary:
		return "static-library"
	default:
		return fmt.Sprintf("LinkOutputType(%d)", int(l))
	}
}

// IsLibrary reports whether the product is a library
func (l LinkOutputType) IsLibrary() bool {
	return l == LinkDynamicLibrary || l == LinkStaticLibrary
}

// DebugInfoLevel is how much debug info compile jobs emit
type DebugInfoLevel int

const (
	DebugNone DebugInfoLevel = iota
	DebugLineTables
	DebugASTTypes
	DebugDwarfTypes
)

func (l DebugInfoLevel) String() string {
	switch l {
	case DebugNone:
		return "none"
	case DebugLineTables:
		return "line-tables"
	case DebugASTTypes:
		return "ast-types"
	case DebugDwarfTypes:
		return "dwarf-types"
	default:
		return fmt.Sprintf("DebugInfoLevel(%d)", int(l))
	}
}

// DebugInfoFormat is the debug-info encoding
type DebugInfoFormat int

const (
	FormatDWARF DebugInfoFormat = iota
	FormatCodeView
)

func (f DebugInfoFormat) String() string {
	switch f {
	case FormatDWARF:
		return "dwarf"
	case FormatCodeView:
		return "codeview"
	default:
		return fmt.Sprintf("DebugInfoFormat(%d)", int(f))
	}
}

// ModuleOutputKind tells whether the module is a product or a byproduct
type ModuleOutputKind int

const (
	// ModuleTopLevel modules are user-visible products
	ModuleTopLevel ModuleOutputKind = iota
	// ModuleAuxiliary modules only feed the debugger and live in the scratch directory
	ModuleAuxiliary
)

func (k ModuleOutputKind) String() string {
	switch k {
	case ModuleTopLevel:
		return "top-level"
	case ModuleAuxiliary:
		return "auxiliary"
	default:
		return fmt.Sprintf("ModuleOutputKind(%d)", int(k))
	}
}

// ModuleOutput is where the serialized module goes
type ModuleOutput struct {
	Kind ModuleOutputKind
	Path vpath.VirtualPath
}

const (
	stdlibModuleName  = "Swift"
	replModuleName    = "REPL"
	defaultModuleName = "main"
)

// resolve computes every setting in dependency order
func (d *Driver) resolve() error {
	d.resolveWorkingDirectory()
	d.resolveTarget()

	if err := d.loadOutputFileMap(); err != nil {
		return err
	}

	d.resolveInputs()
	d.resolveCompilerMode()
	d.resolveOutputTypes()
	d.resolveDebugInfo()
	d.resolveModuleName()
	d.resolveModuleOutput()
	d.resolveLinkerOutput()
	d.validate()

	return nil
}

func (d *Driver) resolveWorkingDirectory() {
	arg, ok := d.args.LastArgument(options.WorkingDirectory)
	if !ok {
		return
	}

	dir := arg.Value
	if !filepath.IsAbs(dir) && d.processDir != "" {
		dir = filepath.Join(d.processDir, dir)
	}

	d.workingDirectory = filepath.Clean(dir)
}

func (d *Driver) resolveTarget() {
	d.target = d.host

	arg, ok := d.args.LastArgument(options.Target)
	if !ok {
		return
	}

	t, err := triple.Parse(arg.Value)
	if err != nil {
		d.diagnostics.Error("unknown target '%s'", arg.Value)
		return
	}

	d.target = t
}

func (d *Driver) loadOutputFileMap() error {
	arg, ok := d.args.LastArgument(options.OutputFileMap)
	if !ok {
		return nil
	}

	path := d.resolvePath(arg.Value)
	m, err := outputmap.Load(path.Name(), d.diagnostics)
	if err != nil {
		return fmt.Errorf("failed to load output file map: %w", err)
	}

	d.outputFileMap = m
	return nil
}

// resolvePath classifies a user path and anchors relative ones at the
// working directory
func (d *Driver) resolvePath(p string) vpath.VirtualPath {
	return vpath.FromString(p).ResolvedAgainst(d.workingDirectory)
}

func (d *Driver) resolveInputs() {
	raw := d.args.Inputs()
	if d.kind == KindBatch {
		raw = append(raw, d.args.Remaining()...)
	}

	for _, in := range raw {
		file := d.resolvePath(in)
		d.inputs = append(d.inputs, vpath.Typed(file, inputType(file)))
	}
}

func inputType(file vpath.VirtualPath) vpath.FileType {
	if file.Kind() == vpath.KindStandardInput {
		return vpath.TypeSwift
	}

	if ft, ok := vpath.FileTypeForExtension(file.Extension()); ok {
		return ft
	}

	return vpath.TypeObject
}

func (d *Driver) sourceInputs() []vpath.TypedVirtualPath {
	var out []vpath.TypedVirtualPath
	for _, in := range d.inputs {
		if in.Type == vpath.TypeSwift {
			out = append(out, in)
		}
	}

	return out
}

func (d *Driver) resolveCompilerMode() {
	if d.kind == KindInteractive {
		if len(d.inputs) == 0 {
			d.compilerMode = ModeREPL
		} else {
			d.compilerMode = ModeImmediate
		}
		return
	}

	if d.args.HasArgument(options.Repl) {
		d.compilerMode = ModeREPL
		return
	}

	if last, ok := d.args.LastInGroup(options.GroupWMO); ok && last.Is(options.WholeModuleOptimization) {
		d.compilerMode = ModeSingleCompile
		return
	}

	d.compilerMode = ModeStandardCompile
}

func (d *Driver) setCompilerOutput(ft vpath.FileType) {
	d.compilerOutputType = ft
	d.hasCompilerOutput = true
}

func (d *Driver) resolveOutputTypes() {
	if d.compilerMode == ModeREPL || d.compilerMode == ModeImmediate {
		return
	}

	last, ok := d.args.LastInGroup(options.GroupModes)
	if !ok {
		switch {
		case d.args.HasArgument(options.EmitModule, options.EmitModulePath):
			d.setCompilerOutput(vpath.TypeSwiftModule)
		case d.kind == KindBatch:
			d.setCompilerOutput(vpath.TypeObject)
			d.linkOutputType = LinkExecutable
		}
		return
	}

	switch last.Option.Canonical() {
	case options.EmitExecutable:
		d.setCompilerOutput(vpath.TypeObject)
		d.linkOutputType = LinkExecutable
	case options.EmitLibrary:
		d.setCompilerOutput(vpath.TypeObject)
		if d.args.HasArgument(options.Static) {
			d.linkOutputType = LinkStaticLibrary
		} else {
			d.linkOutputType = LinkDynamicLibrary
		}
	case options.EmitObject:
		d.setCompilerOutput(vpath.TypeObject)
	case options.EmitAssembly:
		d.setCompilerOutput(vpath.TypeAssembly)
	case options.EmitIR:
		d.setCompilerOutput(vpath.TypeLLVMIR)
	case options.EmitBC:
		d.setCompilerOutput(vpath.TypeLLVMBitcode)
	case options.Typecheck, options.Parse:
		d.hasCompilerOutput = false
	}
}

func (d *Driver) defaultDebugInfoFormat() DebugInfoFormat {
	if d.target.IsWindowsMSVC() {
		return FormatCodeView
	}

	return FormatDWARF
}

func (d *Driver) resolveDebugInfo() {
	d.debugInfoFormat = d.defaultDebugInfoFormat()

	if last, ok := d.args.LastInGroup(options.GroupDebug); ok && !last.Is(options.DebugNone) {
		switch {
		case d.args.HasArgument(options.DebugLineTablesOnly):
			d.debugInfoLevel = DebugLineTables
		default:
			level, _ := d.args.LastArgument(options.DebugG, options.DebugDwarfTypes)
			if level.Is(options.DebugDwarfTypes) {
				d.debugInfoLevel = DebugDwarfTypes
			} else {
				d.debugInfoLevel = DebugASTTypes
			}
		}
	}

	arg, ok := d.args.LastArgument(options.DebugInfoFormat)
	if !ok {
		return
	}

	var (
		format DebugInfoFormat
		valid  = true
	)
	switch arg.Value {
	case "dwarf":
		format = FormatDWARF
	case "codeview":
		format = FormatCodeView
	default:
		d.diagnostics.Error("invalid value '%s' in '%s'", arg.Value, options.DebugInfoFormat.Spelling)
		valid = false
	}

	// any -g family flag satisfies the requirement, -gnone included
	if _, ok := d.args.LastInGroup(options.GroupDebug); !ok {
		d.diagnostics.Error("option '%s' is missing a required argument (%s)",
			options.DebugInfoFormat.Spelling, options.DebugG.Spelling)
		return
	}

	if !valid {
		return
	}

	if format == FormatCodeView && d.debugInfoLevel == DebugDwarfTypes {
		d.diagnostics.Error("argument '%s' is not allowed with '%s'", arg.Value, options.DebugDwarfTypes.Spelling)
		return
	}

	d.debugInfoFormat = format
}

func (d *Driver) resolveModuleName() {
	if arg, ok := d.args.LastArgument(options.ModuleName); ok {
		name := arg.Value
		switch {
		case name == stdlibModuleName && !d.args.HasArgument(options.ParseStdlib):
			d.diagnostics.Error("module name \"%s\" is reserved for the standard library", name)
			name = defaultModuleName
		case !isIdentifier(name):
			d.diagnostics.Error("module name \"%s\" is not a valid identifier", name)
			name = defaultModuleName
		}

		d.moduleName = name
		return
	}

	name := d.derivedModuleName()
	if !isIdentifier(name) {
		name = defaultModuleName
	}

	d.moduleName = name
}

func (d *Driver) derivedModuleName() string {
	output, hasOutput := d.args.LastArgument(options.Output)

	switch {
	case len(d.inputs) == 1:
		if d.inputs[0].File.Kind() == vpath.KindStandardInput {
			return defaultModuleName
		}
		return d.inputs[0].File.Stem()

	case len(d.inputs) > 1 && d.linkOutputType != LinkNone && hasOutput:
		return strings.TrimPrefix(vpath.FromString(output.Value).Stem(), "lib")

	case d.compilerMode == ModeREPL:
		return replModuleName

	default:
		return defaultModuleName
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

func (d *Driver) resolveModuleOutput() {
	wantsModule := d.args.HasArgument(options.EmitModule, options.EmitModulePath) ||
		d.debugInfoLevel == DebugASTTypes
	if !wantsModule {
		return
	}

	moduleFile := d.moduleName + "." + vpath.TypeSwiftModule.Extension()

	switch {
	case d.args.HasArgument(options.EmitModulePath):
		arg, _ := d.args.LastArgument(options.EmitModulePath)
		d.moduleOutput = &ModuleOutput{Kind: ModuleTopLevel, Path: d.resolvePath(arg.Value)}

	case d.hasCompilerOutput && d.compilerOutputType == vpath.TypeSwiftModule:
		path := d.resolvePath(moduleFile)
		if arg, ok := d.args.LastArgument(options.Output); ok {
			path = d.resolvePath(arg.Value)
		}
		d.moduleOutput = &ModuleOutput{Kind: ModuleTopLevel, Path: path}

	case d.args.HasArgument(options.EmitModule):
		d.moduleOutput = &ModuleOutput{Kind: ModuleTopLevel, Path: d.resolvePath(moduleFile)}

	default:
		d.moduleOutput = &ModuleOutput{Kind: ModuleAuxiliary, Path: vpath.Temporary(moduleFile)}
	}

	if arg, ok := d.args.LastArgument(options.EmitModuleDocPath); ok {
		d.moduleDocPath = d.resolvePath(arg.Value)
	} else {
		d.moduleDocPath = d.moduleOutput.Path.ReplacingExtension(vpath.TypeSwiftDocumentation)
	}
}

func (d *Driver) resolveLinkerOutput() {
	if d.linkOutputType == LinkNone {
		return
	}

	if arg, ok := d.args.LastArgument(options.Output); ok {
		d.linkerOutput = d.resolvePath(arg.Value)
		return
	}

	var name string
	switch d.linkOutputType {
	case LinkExecutable:
		name = d.target.ExecutableName(d.moduleName)
	case LinkDynamicLibrary:
		name = d.target.DynamicLibraryName(d.moduleName)
	case LinkStaticLibrary:
		name = d.target.StaticLibraryName(d.moduleName)
	}

	d.linkerOutput = d.resolvePath(name)
}

func (d *Driver) validate() {
	if d.args.HasArgument(options.Static) && d.linkOutputType != LinkStaticLibrary {
		d.diagnostics.Warning("'%s' has no effect without '%s'", options.Static.Spelling, options.EmitLibrary.Spelling)
	}

	if d.linkOutputType == LinkNone && d.hasCompilerOutput &&
		d.compilerOutputType != vpath.TypeSwiftModule &&
		d.compilerMode == ModeStandardCompile &&
		len(d.sourceInputs()) > 1 &&
		d.args.HasArgument(options.Output) {
		d.diagnostics.Error("cannot specify %s when generating multiple output files", options.Output.Spelling)
	}
}
