package driver

import (
	"strings"

	"github.com/Norgate-AV/swiftdriver/internal/job"
	"github.com/Norgate-AV/swiftdriver/internal/options"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

type compileResult struct {
	primary       *vpath.TypedVirtualPath
	partialModule *vpath.TypedVirtualPath
}

// compileJob plans the frontend invocation for sources[primary], or for all
// sources at once when primary is negative
func (d *Driver) compileJob(sources []vpath.TypedVirtualPath, primary int, willMerge bool) (*job.Job, compileResult) {
	var input *vpath.TypedVirtualPath
	stem := d.moduleName
	if primary >= 0 {
		input = &sources[primary]
		if input.File.Kind() != vpath.KindStandardInput {
			stem = input.File.Stem()
		}
	}

	if input != nil && d.outputFileMap != nil && !d.outputFileMap.HasEntry(input.File) {
		d.diagnostics.Warning("no output file map entry for input '%s', using default output paths", input.File.Name())
	}

	singleOutput := primary < 0 || len(sources) == 1
	linking := d.linkOutputType != LinkNone

	var (
		res         compileResult
		outputs     []vpath.TypedVirtualPath
		outputFlags []job.Arg
	)

	addOutput := func(flag string, out vpath.TypedVirtualPath) {
		outputs = append(outputs, out)
		outputFlags = append(outputFlags, job.Flag(flag), job.Path(out.File))
	}

	if d.hasCompilerOutput && d.compilerOutputType != vpath.TypeSwiftModule {
		ft := d.compilerOutputType
		file, ok := d.mappedOutput(input, ft)
		if !ok {
			name := stem + "." + ft.Extension()
			switch {
			case linking:
				file = vpath.Temporary(name)
			case singleOutput && d.args.HasArgument(options.Output):
				arg, _ := d.args.LastArgument(options.Output)
				file = d.resolvePath(arg.Value)
			default:
				file = d.resolvePath(name)
			}
		}

		out := vpath.Typed(file, ft)
		res.primary = &out
		addOutput("-o", out)
	}

	if d.moduleOutput != nil {
		if willMerge {
			module := vpath.Typed(vpath.Temporary(stem+"."+vpath.TypeSwiftModule.Extension()), vpath.TypeSwiftModule)
			doc := vpath.Typed(vpath.Temporary(stem+"."+vpath.TypeSwiftDocumentation.Extension()), vpath.TypeSwiftDocumentation)
			res.partialModule = &module
			addOutput("-emit-module-path", module)
			addOutput("-emit-module-doc-path", doc)
		} else {
			addOutput("-emit-module-path", vpath.Typed(d.moduleOutput.Path, vpath.TypeSwiftModule))
			addOutput("-emit-module-doc-path", vpath.Typed(d.moduleDocPath, vpath.TypeSwiftDocumentation))
		}
	}

	if d.args.HasArgument(options.EmitDependencies) {
		file, ok := d.mappedOutput(input, vpath.TypeDependencies)
		if !ok {
			file = vpath.Temporary(stem + "." + vpath.TypeDependencies.Extension())
		}
		addOutput("-emit-dependencies-path", vpath.Typed(file, vpath.TypeDependencies))
	}

	if file, ok := d.mappedOutput(input, vpath.TypeSwiftDeps); ok {
		addOutput("-emit-reference-dependencies-path", vpath.Typed(file, vpath.TypeSwiftDeps))
	}

	cmd := job.Flags("-frontend", d.compileModeFlag())
	for i, src := range sources {
		if i == primary {
			cmd = append(cmd, job.Flag("-primary-file"))
		}
		cmd = append(cmd, job.Path(src.File))
	}

	cmd = append(cmd, job.Flag("-target"), job.Flag(d.target.String()))
	cmd = append(cmd, d.frontendArgs()...)
	cmd = append(cmd, d.debugArgs()...)

	if arg, ok := d.args.LastArgument(options.ImportObjCHeader); ok {
		cmd = append(cmd, job.Flag(options.ImportObjCHeader.Spelling), job.Path(d.resolvePath(arg.Value)))
	}

	if d.linkOutputType.IsLibrary() || d.args.HasArgument(options.ParseAsLibrary) {
		cmd = append(cmd, job.Flag(options.ParseAsLibrary.Spelling))
	}

	cmd = append(cmd, job.Flag(options.ModuleName.Spelling), job.Flag(d.moduleName))
	cmd = append(cmd, outputFlags...)

	inputs := make([]vpath.TypedVirtualPath, len(sources))
	copy(inputs, sources)

	return &job.Job{
		Kind:        job.KindCompile,
		Tool:        job.ToolFrontend,
		CommandLine: cmd,
		Inputs:      inputs,
		Outputs:     outputs,
	}, res
}

func (d *Driver) compileModeFlag() string {
	if !d.hasCompilerOutput {
		if last, ok := d.args.LastInGroup(options.GroupModes); ok && last.Is(options.Parse) {
			return "-parse"
		}
		return "-typecheck"
	}

	switch d.compilerOutputType {
	case vpath.TypeAssembly:
		return "-S"
	case vpath.TypeLLVMIR:
		return "-emit-ir"
	case vpath.TypeLLVMBitcode:
		return "-emit-bc"
	case vpath.TypeSwiftModule:
		return "-emit-module"
	default:
		return "-c"
	}
}

// mappedOutput consults the output-file map; input nil means the global entry
func (d *Driver) mappedOutput(input *vpath.TypedVirtualPath, ft vpath.FileType) (vpath.VirtualPath, bool) {
	if d.outputFileMap == nil {
		return vpath.VirtualPath{}, false
	}

	var (
		out vpath.VirtualPath
		err error
	)
	if input == nil {
		out, err = d.outputFileMap.GetGlobalOutput(ft)
	} else {
		out, err = d.outputFileMap.GetOutput(input.File, ft)
	}

	if err != nil {
		return vpath.VirtualPath{}, false
	}

	return out, true
}

// frontendArgs forwards frontend options in order, keeping only the last
// member of each group, and unwraps -Xfrontend
func (d *Driver) frontendArgs() []job.Arg {
	last := d.lastIndexByGroup()

	var out []job.Arg
	for i, p := range d.args.Options {
		if p.IsInput() {
			continue
		}

		switch {
		case p.Is(options.XFrontend):
			out = append(out, job.Flag(p.Value))
		case p.Is(options.XCC, options.XLLVM):
			out = append(out, job.Flag(p.Option.Canonical().Spelling), job.Flag(p.Value))
		case p.Option.Has(options.AttrFrontend):
			if g := p.Option.Canonical().Group; g != options.GroupNone && last[g] != i {
				continue
			}
			out = append(out, d.renderArg(p)...)
		}
	}

	return out
}

// linkerArgs forwards linker options in order
func (d *Driver) linkerArgs() []job.Arg {
	var out []job.Arg
	for _, p := range d.args.Options {
		if !p.IsInput() && p.Option.Has(options.AttrLinker) {
			out = append(out, d.renderArg(p)...)
		}
	}

	return out
}

// xlinkerArgs returns -Xlinker values, unwrapped or kept as pairs
func (d *Driver) xlinkerArgs(unwrap bool) []job.Arg {
	var out []job.Arg
	for _, p := range d.args.AllArguments(options.XLinker) {
		if !unwrap {
			out = append(out, job.Flag(options.XLinker.Spelling))
		}
		out = append(out, job.Flag(p.Value))
	}

	return out
}

func (d *Driver) lastIndexByGroup() map[options.Group]int {
	last := map[options.Group]int{}
	for i, p := range d.args.Options {
		if p.IsInput() {
			continue
		}
		if g := p.Option.Canonical().Group; g != options.GroupNone {
			last[g] = i
		}
	}

	return last
}

// renderArg spells an occurrence through its canonical option, turning
// path values into working-directory-resolved Path arguments
func (d *Driver) renderArg(p options.ParsedOption) []job.Arg {
	opt := p.Option.Canonical()

	value := func() job.Arg {
		if opt.Has(options.AttrArgumentIsPath) {
			return job.Path(d.resolvePath(p.Value))
		}
		return job.Flag(p.Value)
	}

	switch opt.Kind {
	case options.KindFlag:
		return []job.Arg{job.Flag(opt.Spelling)}
	case options.KindJoined:
		return []job.Arg{job.Flag(opt.Spelling + p.Value)}
	case options.KindSeparate, options.KindJoinedOrSeparate:
		return []job.Arg{job.Flag(opt.Spelling), value()}
	case options.KindCommaJoined:
		return []job.Arg{job.Flag(opt.Spelling + strings.Join(p.Values, ","))}
	default:
		return nil
	}
}

func (d *Driver) debugArgs() []job.Arg {
	var out []job.Arg
	switch d.debugInfoLevel {
	case DebugLineTables:
		out = append(out, job.Flag(options.DebugLineTablesOnly.Spelling))
	case DebugASTTypes:
		out = append(out, job.Flag(options.DebugG.Spelling))
	case DebugDwarfTypes:
		out = append(out, job.Flag(options.DebugDwarfTypes.Spelling))
	case DebugNone:
		return nil
	}

	out = append(out, job.Flag("-enable-anonymous-context-mangled-names"))

	if d.debugInfoFormat != d.defaultDebugInfoFormat() {
		out = append(out, job.Flag(options.DebugInfoFormat.Spelling+d.debugInfoFormat.String()))
	}

	return out
}
