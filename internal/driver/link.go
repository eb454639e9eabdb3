package driver

import (
	"github.com/Norgate-AV/swiftdriver/internal/job"
	"github.com/Norgate-AV/swiftdriver/internal/options"
	"github.com/Norgate-AV/swiftdriver/internal/triple"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

func (d *Driver) mergeModuleJob(partials []vpath.TypedVirtualPath) *job.Job {
	cmd := job.Flags("-frontend", "-merge-modules", "-emit-module")
	for _, p := range partials {
		cmd = append(cmd, job.Path(p.File))
	}

	cmd = append(cmd, job.Flags(
		"-parse-as-library",
		"-disable-diagnostic-passes",
		"-disable-sil-perf-optzns",
		"-target", d.target.String(),
	)...)

	if arg, ok := d.args.LastArgument(options.ImportObjCHeader); ok {
		cmd = append(cmd, job.Flag(options.ImportObjCHeader.Spelling), job.Path(d.resolvePath(arg.Value)))
	}

	cmd = append(cmd,
		job.Flag(options.ModuleName.Spelling), job.Flag(d.moduleName),
		job.Flag(options.EmitModuleDocPath.Spelling), job.Path(d.moduleDocPath),
		job.Flag("-o"), job.Path(d.moduleOutput.Path),
	)

	inputs := make([]vpath.TypedVirtualPath, len(partials))
	copy(inputs, partials)

	return &job.Job{
		Kind:        job.KindMergeModule,
		Tool:        job.ToolFrontend,
		CommandLine: cmd,
		Inputs:      inputs,
		Outputs: []vpath.TypedVirtualPath{
			vpath.Typed(d.moduleOutput.Path, vpath.TypeSwiftModule),
			vpath.Typed(d.moduleDocPath, vpath.TypeSwiftDocumentation),
		},
	}
}

func (d *Driver) needsAutolinkExtract() bool {
	return d.linkOutputType != LinkNone && d.target.ObjectFormat() == triple.FormatELF
}

func (d *Driver) autolinkExtractJob(objects []vpath.TypedVirtualPath) *job.Job {
	output := vpath.Typed(vpath.Temporary(d.moduleName+"."+vpath.TypeAutolink.Extension()), vpath.TypeAutolink)

	var cmd []job.Arg
	for _, o := range objects {
		cmd = append(cmd, job.Path(o.File))
	}
	cmd = append(cmd, job.Flag("-o"), job.Path(output.File))

	return &job.Job{
		Kind:        job.KindAutolinkExtract,
		Tool:        job.ToolAutolinkExtract,
		CommandLine: cmd,
		Inputs:      append([]vpath.TypedVirtualPath(nil), objects...),
		Outputs:     []vpath.TypedVirtualPath{output},
	}
}

// linkJob picks the linker and flag set for the target platform
func (d *Driver) linkJob(objects []vpath.TypedVirtualPath, autolink *vpath.TypedVirtualPath) *job.Job {
	output := vpath.Typed(d.linkerOutput, vpath.TypeImage)

	inputs := append([]vpath.TypedVirtualPath(nil), objects...)
	if autolink != nil {
		inputs = append(inputs, *autolink)
	}

	var (
		tool job.Tool
		cmd  []job.Arg
	)

	switch {
	case d.target.IsDarwin():
		tool, cmd = d.darwinLinkCommand(objects, output.File)
	case d.target.IsWindows():
		tool, cmd = d.windowsLinkCommand(objects, output.File)
	default:
		tool, cmd = d.elfLinkCommand(objects, autolink, output.File)
	}

	return &job.Job{
		Kind:        job.KindLink,
		Tool:        tool,
		CommandLine: cmd,
		Inputs:      inputs,
		Outputs:     []vpath.TypedVirtualPath{output},
	}
}

func objectArgs(objects []vpath.TypedVirtualPath) []job.Arg {
	out := make([]job.Arg, 0, len(objects))
	for _, o := range objects {
		out = append(out, job.Path(o.File))
	}

	return out
}

func (d *Driver) darwinLinkCommand(objects []vpath.TypedVirtualPath, output vpath.VirtualPath) (job.Tool, []job.Arg) {
	if d.linkOutputType == LinkStaticLibrary {
		cmd := []job.Arg{job.Flag("-static"), job.Flag("-o"), job.Path(output)}
		return job.ToolLibtool, append(cmd, objectArgs(objects)...)
	}

	cmd := objectArgs(objects)
	if d.linkOutputType == LinkDynamicLibrary {
		cmd = append(cmd, job.Flag("-dylib"))
	}

	cmd = append(cmd, job.Flag("-arch"), job.Flag(d.target.Arch))
	if flag := d.target.VersionMinFlag(); flag != "" {
		cmd = append(cmd, job.Flag(flag), job.Flag(d.target.OSVersion().String()))
	}

	cmd = append(cmd, d.linkerArgs()...)
	cmd = append(cmd, d.xlinkerArgs(true)...)

	if d.debugInfoLevel == DebugASTTypes && d.moduleOutput != nil {
		cmd = append(cmd, job.Flag("-add_ast_path"), job.Path(d.moduleOutput.Path))
	}

	cmd = append(cmd, job.Flag("-o"), job.Path(output))
	return job.ToolLD, cmd
}

func (d *Driver) elfLinkCommand(objects []vpath.TypedVirtualPath, autolink *vpath.TypedVirtualPath, output vpath.VirtualPath) (job.Tool, []job.Arg) {
	if d.linkOutputType == LinkStaticLibrary {
		cmd := []job.Arg{job.Flag("crs"), job.Path(output)}
		return job.ToolAr, append(cmd, objectArgs(objects)...)
	}

	var cmd []job.Arg
	if d.linkOutputType == LinkDynamicLibrary {
		cmd = append(cmd, job.Flag("-shared"))
	}

	cmd = append(cmd, objectArgs(objects)...)
	if autolink != nil {
		cmd = append(cmd, job.ResponseFile(autolink.File))
	}

	cmd = append(cmd, d.linkerArgs()...)
	cmd = append(cmd, d.xlinkerArgs(false)...)
	cmd = append(cmd, job.Flag("-target"), job.Flag(d.target.String()))
	cmd = append(cmd, job.Flag("-o"), job.Path(output))

	return job.ToolClang, cmd
}

func (d *Driver) windowsLinkCommand(objects []vpath.TypedVirtualPath, output vpath.VirtualPath) (job.Tool, []job.Arg) {
	if d.linkOutputType == LinkStaticLibrary {
		cmd := []job.Arg{job.Flag("crs"), job.Path(output)}
		return job.ToolLLVMAr, append(cmd, objectArgs(objects)...)
	}

	var cmd []job.Arg
	if d.linkOutputType == LinkDynamicLibrary {
		cmd = append(cmd, job.Flag("-shared"))
	}

	cmd = append(cmd, objectArgs(objects)...)
	cmd = append(cmd, d.linkerArgs()...)
	cmd = append(cmd, d.xlinkerArgs(false)...)
	cmd = append(cmd, job.Flag("-target"), job.Flag(d.target.String()))
	cmd = append(cmd, job.Flag("-o"), job.Path(output))

	return job.ToolClang, cmd
}

func (d *Driver) needsDSYM() bool {
	return d.target.IsDarwin() &&
		d.debugInfoLevel != DebugNone &&
		(d.linkOutputType == LinkExecutable || d.linkOutputType == LinkDynamicLibrary)
}

func (d *Driver) generateDSYMJob(image vpath.TypedVirtualPath) *job.Job {
	output := vpath.Typed(image.File.AppendingExtension(vpath.TypeDSYM), vpath.TypeDSYM)

	return &job.Job{
		Kind:        job.KindGenerateDSYM,
		Tool:        job.ToolDsymutil,
		CommandLine: []job.Arg{job.Path(image.File), job.Flag("-o"), job.Path(output.File)},
		Inputs:      []vpath.TypedVirtualPath{image},
		Outputs:     []vpath.TypedVirtualPath{output},
	}
}
