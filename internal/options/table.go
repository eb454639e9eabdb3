package options

import (
	"sort"
	"strings"
)

// Built-in options understood by the driver
var (
	Remaining = &Option{Spelling: "--", Kind: KindRemaining, Help: "Treat all following arguments verbatim"}

	DriverMode = &Option{Spelling: "--driver-mode=", Kind: KindJoined, MetaVar: "<mode>", Help: "Set the driver mode to <mode>"}
	Frontend   = &Option{Spelling: "-frontend", Kind: KindFlag, Attributes: AttrHelpHidden, Help: "Run the compiler front end directly"}
	ModuleWrap = &Option{Spelling: "-modulewrap", Kind: KindFlag, Attributes: AttrHelpHidden, Help: "Wrap a module for the debugger"}

	EmitExecutable = &Option{Spelling: "-emit-executable", Kind: KindFlag, Group: GroupModes, Help: "Emit a linked executable"}
	EmitLibrary    = &Option{Spelling: "-emit-library", Kind: KindFlag, Group: GroupModes, Help: "Emit a linked library"}
	EmitObject     = &Option{Spelling: "-emit-object", Kind: KindFlag, Group: GroupModes, Help: "Emit object files"}
	EmitObjectC    = &Option{Spelling: "-c", Kind: KindFlag, Alias: EmitObject, Help: "Alias for -emit-object"}
	EmitAssembly   = &Option{Spelling: "-S", Kind: KindFlag, Group: GroupModes, Help: "Emit assembly files"}
	EmitIR         = &Option{Spelling: "-emit-ir", Kind: KindFlag, Group: GroupModes, Help: "Emit LLVM IR files"}
	EmitBC         = &Option{Spelling: "-emit-bc", Kind: KindFlag, Group: GroupModes, Help: "Emit LLVM bitcode files"}
	Typecheck      = &Option{Spelling: "-typecheck", Kind: KindFlag, Group: GroupModes, Help: "Parse and type-check input files"}
	Parse          = &Option{Spelling: "-parse", Kind: KindFlag, Group: GroupModes, Help: "Parse input files"}

	EmitModule        = &Option{Spelling: "-emit-module", Kind: KindFlag, Help: "Emit an importable module"}
	EmitModulePath    = &Option{Spelling: "-emit-module-path", Kind: KindSeparate, Attributes: AttrArgumentIsPath, MetaVar: "<path>", Help: "Emit an importable module to <path>"}
	EmitModuleDocPath = &Option{Spelling: "-emit-module-doc-path", Kind: KindSeparate, Attributes: AttrArgumentIsPath, MetaVar: "<path>", Help: "Output module documentation file <path>"}
	EmitDependencies  = &Option{Spelling: "-emit-dependencies", Kind: KindFlag, Help: "Emit basic Make-compatible dependencies files"}
	Static            = &Option{Spelling: "-static", Kind: KindFlag, Help: "Make this module statically linkable"}
	OutputFileMap     = &Option{Spelling: "-output-file-map", Kind: KindSeparate, Attributes: AttrArgumentIsPath, MetaVar: "<path>", Help: "A file which specifies the location of outputs"}
	Output            = &Option{Spelling: "-o", Kind: KindJoinedOrSeparate, Attributes: AttrArgumentIsPath, MetaVar: "<file>", Help: "Write output to <file>"}
	ModuleName        = &Option{Spelling: "-module-name", Kind: KindSeparate, MetaVar: "<value>", Help: "Name of the module to build"}
	Target            = &Option{Spelling: "-target", Kind: KindSeparate, MetaVar: "<triple>", Help: "Generate code for the given target"}
	WorkingDirectory  = &Option{Spelling: "-working-directory", Kind: KindSeparate, MetaVar: "<path>", Help: "Resolve file paths relative to the specified directory"}
	Jobs              = &Option{Spelling: "-j", Kind: KindJoinedOrSeparate, MetaVar: "<n>", Help: "Number of commands to execute in parallel"}
	Verbose           = &Option{Spelling: "-v", Kind: KindFlag, Help: "Show commands to run and use verbose output"}
	SaveTemps         = &Option{Spelling: "-save-temps", Kind: KindFlag, Help: "Save intermediate compilation results"}
	Repl              = &Option{Spelling: "-repl", Kind: KindFlag, Help: "REPL mode"}

	WholeModuleOptimization   = &Option{Spelling: "-whole-module-optimization", Kind: KindFlag, Group: GroupWMO, Help: "Optimize input files together instead of individually"}
	WMO                       = &Option{Spelling: "-wmo", Kind: KindFlag, Alias: WholeModuleOptimization, Attributes: AttrHelpHidden, Help: "Alias for -whole-module-optimization"}
	NoWholeModuleOptimization = &Option{Spelling: "-no-whole-module-optimization", Kind: KindFlag, Group: GroupWMO, Help: "Disable optimizing input files together"}

	DebugG               = &Option{Spelling: "-g", Kind: KindFlag, Group: GroupDebug, Help: "Emit debug info"}
	DebugNone            = &Option{Spelling: "-gnone", Kind: KindFlag, Group: GroupDebug, Help: "Don't emit debug info"}
	DebugLineTablesOnly  = &Option{Spelling: "-gline-tables-only", Kind: KindFlag, Group: GroupDebug, Help: "Emit minimal debug info for backtraces only"}
	DebugDwarfTypes      = &Option{Spelling: "-gdwarf-types", Kind: KindFlag, Group: GroupDebug, Help: "Emit full DWARF type info"}
	DebugInfoFormat      = &Option{Spelling: "-debug-info-format=", Kind: KindJoined, MetaVar: "<format>", Help: "Specify the debug info format type to either 'dwarf' or 'codeview'"}
	ColorDiagnostics     = &Option{Spelling: "-color-diagnostics", Kind: KindFlag, Group: GroupColor, Attributes: AttrFrontend, Help: "Print diagnostics in color"}
	NoColorDiagnostics   = &Option{Spelling: "-no-color-diagnostics", Kind: KindFlag, Group: GroupColor, Attributes: AttrFrontend, Help: "Do not print diagnostics in color"}
	ImportObjCHeader     = &Option{Spelling: "-import-objc-header", Kind: KindSeparate, Attributes: AttrArgumentIsPath, MetaVar: "<path>", Help: "Implicitly imports an Objective-C header file"}
	APIDiffDataFile      = &Option{Spelling: "-api-diff-data-file", Kind: KindSeparate, Attributes: AttrFrontend | AttrArgumentIsPath, MetaVar: "<path>", Help: "API migration data file"}
	SDK                  = &Option{Spelling: "-sdk", Kind: KindSeparate, Attributes: AttrFrontend | AttrArgumentIsPath, MetaVar: "<sdk>", Help: "Compile against <sdk>"}
	ResourceDir          = &Option{Spelling: "-resource-dir", Kind: KindSeparate, Attributes: AttrFrontend | AttrArgumentIsPath | AttrHelpHidden, MetaVar: "<dir>", Help: "The directory that holds the compiler resource files"}
	IncludePath          = &Option{Spelling: "-I", Kind: KindJoinedOrSeparate, Attributes: AttrFrontend | AttrArgumentIsPath, MetaVar: "<dir>", Help: "Add directory to the import search path"}
	IncludePathEq        = &Option{Spelling: "-I=", Kind: KindJoined, Alias: IncludePath, Attributes: AttrHelpHidden, Help: "Alias for -I"}
	FrameworkPath        = &Option{Spelling: "-F", Kind: KindJoinedOrSeparate, Attributes: AttrFrontend | AttrArgumentIsPath, MetaVar: "<dir>", Help: "Add directory to the framework search path"}
	Define               = &Option{Spelling: "-D", Kind: KindJoinedOrSeparate, Attributes: AttrFrontend, MetaVar: "<value>", Help: "Marks a conditional compilation flag as true"}
	Sanitize             = &Option{Spelling: "-sanitize=", Kind: KindCommaJoined, Attributes: AttrFrontend, MetaVar: "<check>", Help: "Turn on runtime checks for erroneous behavior"}
	OptimizeSpeed        = &Option{Spelling: "-O", Kind: KindFlag, Group: GroupOptimize, Attributes: AttrFrontend, Help: "Compile with optimizations"}
	OptimizeNone         = &Option{Spelling: "-Onone", Kind: KindFlag, Group: GroupOptimize, Attributes: AttrFrontend, Help: "Compile without any optimization"}
	OptimizeSize         = &Option{Spelling: "-Osize", Kind: KindFlag, Group: GroupOptimize, Attributes: AttrFrontend, Help: "Compile with optimizations and target small code size"}
	EnableTesting        = &Option{Spelling: "-enable-testing", Kind: KindFlag, Attributes: AttrFrontend, Help: "Allows this module's internal API to be accessed for testing"}
	LibraryEvolution     = &Option{Spelling: "-enable-library-evolution", Kind: KindFlag, Attributes: AttrFrontend, Help: "Build the module to allow binary-compatible library evolution"}
	SwiftVersion         = &Option{Spelling: "-swift-version", Kind: KindSeparate, Attributes: AttrFrontend, MetaVar: "<vers>", Help: "Interpret input according to a specific Swift language version number"}
	WarningsAsErrors     = &Option{Spelling: "-warnings-as-errors", Kind: KindFlag, Group: GroupWarnings, Attributes: AttrFrontend, Help: "Treat warnings as errors"}
	NoWarningsAsErrors   = &Option{Spelling: "-no-warnings-as-errors", Kind: KindFlag, Group: GroupWarnings, Attributes: AttrFrontend, Help: "Don't treat warnings as errors"}
	SuppressWarnings     = &Option{Spelling: "-suppress-warnings", Kind: KindFlag, Attributes: AttrFrontend, Help: "Suppress all warnings"}
	ParseAsLibrary       = &Option{Spelling: "-parse-as-library", Kind: KindFlag, Help: "Parse the input file(s) as libraries, not scripts"}
	ParseStdlib          = &Option{Spelling: "-parse-stdlib", Kind: KindFlag, Attributes: AttrFrontend | AttrHelpHidden, Help: "Parse the input file(s) as the Swift standard library"}
	LibrarySearchPath    = &Option{Spelling: "-L", Kind: KindJoinedOrSeparate, Attributes: AttrLinker | AttrArgumentIsPath, MetaVar: "<dir>", Help: "Add directory to library link search path"}
	LinkLibrary          = &Option{Spelling: "-l", Kind: KindJoined, Attributes: AttrLinker, Help: "Specifies a library which should be linked against"}
	Framework            = &Option{Spelling: "-framework", Kind: KindSeparate, Attributes: AttrLinker, MetaVar: "<name>", Help: "Specifies a framework which should be linked against"}
	XFrontend            = &Option{Spelling: "-Xfrontend", Kind: KindSeparate, MetaVar: "<arg>", Help: "Pass <arg> to the Swift frontend"}
	XLinker              = &Option{Spelling: "-Xlinker", Kind: KindSeparate, MetaVar: "<arg>", Help: "Specifies an option which should be passed to the linker"}
	XCC                  = &Option{Spelling: "-Xcc", Kind: KindSeparate, MetaVar: "<arg>", Help: "Pass <arg> to the C/C++/Objective-C compiler"}
	XLLVM                = &Option{Spelling: "-Xllvm", Kind: KindSeparate, MetaVar: "<arg>", Attributes: AttrHelpHidden, Help: "Pass <arg> to LLVM"}
)

var defaultOptions = []*Option{
	Remaining, DriverMode, Frontend, ModuleWrap,
	EmitExecutable, EmitLibrary, EmitObject, EmitObjectC, EmitAssembly, EmitIR, EmitBC, Typecheck, Parse,
	EmitModule, EmitModulePath, EmitModuleDocPath, EmitDependencies, Static, OutputFileMap, Output,
	ModuleName, Target, WorkingDirectory, Jobs, Verbose, SaveTemps, Repl,
	WholeModuleOptimization, WMO, NoWholeModuleOptimization,
	DebugG, DebugNone, DebugLineTablesOnly, DebugDwarfTypes, DebugInfoFormat,
	ColorDiagnostics, NoColorDiagnostics, ImportObjCHeader, APIDiffDataFile, SDK, ResourceDir,
	IncludePath, IncludePathEq, FrameworkPath, Define, Sanitize,
	OptimizeSpeed, OptimizeNone, OptimizeSize, EnableTesting, LibraryEvolution, SwiftVersion,
	WarningsAsErrors, NoWarningsAsErrors, SuppressWarnings, ParseAsLibrary, ParseStdlib,
	LibrarySearchPath, LinkLibrary, Framework,
	XFrontend, XLinker, XCC, XLLVM,
}

// Table is an immutable set of option definitions
type Table struct {
	options []*Option

	// byLength is sorted longest spelling first for prefix matching
	byLength []*Option
}

// NewTable builds a table from option definitions
func NewTable(opts ...*Option) *Table {
	t := &Table{options: opts}
	t.byLength = make([]*Option, len(opts))
	copy(t.byLength, opts)

	sort.SliceStable(t.byLength, func(i, j int) bool {
		return len(t.byLength[i].Spelling) > len(t.byLength[j].Spelling)
	})

	return t
}

var defaultTable = NewTable(defaultOptions...)

// Default returns the driver's built-in option table
func Default() *Table {
	return defaultTable
}

// All returns the options in declaration order
func (t *Table) All() []*Option {
	out := make([]*Option, len(t.options))
	copy(out, t.options)
	return out
}

// Lookup finds an option by exact spelling
func (t *Table) Lookup(spelling string) (*Option, bool) {
	for _, opt := range t.options {
		if opt.Spelling == spelling {
			return opt, true
		}
	}

	return nil, false
}

// match returns the longest option whose spelling fits the token
func (t *Table) match(token string) *Option {
	for _, opt := range t.byLength {
		if !strings.HasPrefix(token, opt.Spelling) {
			continue
		}

		if opt.Kind.requiresExactMatch() && token != opt.Spelling {
			continue
		}

		return opt
	}

	return nil
}

func (t *Table) spellings() []string {
	out := make([]string, 0, len(t.options))
	for _, opt := range t.options {
		out = append(out, opt.Spelling)
	}

	return out
}
