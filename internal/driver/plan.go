package driver

import (
	"github.com/Norgate-AV/swiftdriver/internal/job"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// PlanBuild returns the jobs for this invocation in an order where every job
// comes after the jobs producing its inputs
func (d *Driver) PlanBuild() ([]*job.Job, error) {
	switch {
	case d.kind.IsPassthrough():
		return []*job.Job{d.passthroughJob()}, nil
	case d.compilerMode == ModeREPL:
		return []*job.Job{d.replJob()}, nil
	case d.compilerMode == ModeImmediate:
		return []*job.Job{d.interpretJob()}, nil
	}

	if len(d.inputs) == 0 {
		d.diagnostics.Error("no input files")
		return nil, nil
	}

	sources := d.sourceInputs()
	willMerge := d.moduleOutput != nil && d.compilerMode == ModeStandardCompile && len(sources) > 1

	var (
		jobs     []*job.Job
		objects  []vpath.TypedVirtualPath
		partials []vpath.TypedVirtualPath
	)

	addCompile := func(j *job.Job, res compileResult) {
		jobs = append(jobs, j)
		if res.primary != nil && res.primary.Type == vpath.TypeObject {
			objects = append(objects, *res.primary)
		}
		if res.partialModule != nil {
			partials = append(partials, *res.partialModule)
		}
	}

	if d.compilerMode == ModeSingleCompile {
		if len(sources) > 0 {
			addCompile(d.compileJob(sources, -1, false))
		}
	} else {
		for i := range sources {
			addCompile(d.compileJob(sources, i, willMerge))
		}
	}

	if len(partials) > 1 {
		jobs = append(jobs, d.mergeModuleJob(partials))
	}

	if d.linkOutputType == LinkNone {
		return jobs, nil
	}

	for _, in := range d.inputs {
		if in.Type == vpath.TypeObject {
			objects = append(objects, in)
		}
	}

	var autolink *vpath.TypedVirtualPath
	if d.needsAutolinkExtract() {
		j := d.autolinkExtractJob(objects)
		jobs = append(jobs, j)
		autolink = &j.Outputs[0]
	}

	link := d.linkJob(objects, autolink)
	jobs = append(jobs, link)

	if d.needsDSYM() {
		jobs = append(jobs, d.generateDSYMJob(link.Outputs[0]))
	}

	return jobs, nil
}

func (d *Driver) passthroughJob() *job.Job {
	tool := job.ToolFrontend
	switch d.kind {
	case KindAutolinkExtract:
		tool = job.ToolAutolinkExtract
	case KindIndent:
		tool = job.ToolIndent
	}

	return &job.Job{
		Kind:        job.KindPassthrough,
		Tool:        tool,
		CommandLine: job.Flags(d.passthrough...),
	}
}

func (d *Driver) interpretJob() *job.Job {
	cmd := job.Flags("-frontend", "-interpret")
	for _, in := range d.inputs {
		cmd = append(cmd, job.Path(in.File))
	}

	cmd = append(cmd, job.Flag("-target"), job.Flag(d.target.String()))
	cmd = append(cmd, d.frontendArgs()...)
	cmd = append(cmd, d.debugArgs()...)
	cmd = append(cmd, job.Flag("-module-name"), job.Flag(d.moduleName))

	if tail := d.args.Remaining(); len(tail) > 0 {
		cmd = append(cmd, job.Flag("--"))
		cmd = append(cmd, job.Flags(tail...)...)
	}

	return &job.Job{
		Kind:        job.KindInterpret,
		Tool:        job.ToolFrontend,
		CommandLine: cmd,
		Inputs:      d.Inputs(),
	}
}

func (d *Driver) replJob() *job.Job {
	cmd := job.Flags("-frontend", "-repl")
	cmd = append(cmd, job.Flag("-target"), job.Flag(d.target.String()))
	cmd = append(cmd, d.frontendArgs()...)
	cmd = append(cmd, job.Flag("-module-name"), job.Flag(d.moduleName))

	return &job.Job{
		Kind:        job.KindRepl,
		Tool:        job.ToolFrontend,
		CommandLine: cmd,
	}
}
