// Package job describes planned invocations of external tools.
package job

import (
	"fmt"

	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// Kind is what a job does in the build
type Kind int

const (
	KindCompile Kind = iota
	KindMergeModule
	KindAutolinkExtract
	KindLink
	KindGenerateDSYM
	KindInterpret
	KindRepl
	KindPassthrough
)

func (k Kind) String() string {
	switch k {
	case KindCompile:
		return "compile"
	case KindMergeModule:
		return "merge-module"
	case KindAutolinkExtract:
		return "autolink-extract"
	case KindLink:
		return "link"
	case KindGenerateDSYM:
		return "generate-dsym"
	case KindInterpret:
		return "interpret"
	case KindRepl:
		return "repl"
	case KindPassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Tool is an external executable the driver can invoke
type Tool int

const (
	ToolFrontend Tool = iota
	ToolLD
	ToolLibtool
	ToolClang
	ToolAr
	ToolLLVMAr
	ToolAutolinkExtract
	ToolDsymutil
	ToolIndent
)

var tools = []Tool{
	ToolFrontend,
	ToolLD,
	ToolLibtool,
	ToolClang,
	ToolAr,
	ToolLLVMAr,
	ToolAutolinkExtract,
	ToolDsymutil,
	ToolIndent,
}

// Tools returns every known tool
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// Name returns the executable name looked up on PATH
func (t Tool) Name() string {
	switch t {
	case ToolFrontend:
		return "swift-frontend"
	case ToolLD:
		return "ld"
	case ToolLibtool:
		return "libtool"
	case ToolClang:
		return "clang"
	case ToolAr:
		return "ar"
	case ToolLLVMAr:
		return "llvm-ar"
	case ToolAutolinkExtract:
		return "swift-autolink-extract"
	case ToolDsymutil:
		return "dsymutil"
	case ToolIndent:
		return "swift-indent"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

func (t Tool) String() string {
	return t.Name()
}

// ArgKind tags the variant of a command-line element
type ArgKind int

const (
	ArgFlag ArgKind = iota
	ArgPath
	ArgResponseFile
)

// Arg is one element of a job command line. Paths stay virtual until the
// executor materializes them.
type Arg struct {
	Kind  ArgKind
	Value string
	Path  vpath.VirtualPath
}

// Flag is a literal argument
func Flag(s string) Arg {
	return Arg{Kind: ArgFlag, Value: s}
}

// Flags converts literal arguments
func Flags(s ...string) []Arg {
	out := make([]Arg, 0, len(s))
	for _, v := range s {
		out = append(out, Flag(v))
	}

	return out
}

// Path is a file reference argument
func Path(p vpath.VirtualPath) Arg {
	return Arg{Kind: ArgPath, Path: p}
}

// ResponseFile is a file reference rendered as "@path"
func ResponseFile(p vpath.VirtualPath) Arg {
	return Arg{Kind: ArgResponseFile, Path: p}
}

func (a Arg) String() string {
	switch a.Kind {
	case ArgPath:
		return a.Path.String()
	case ArgResponseFile:
		return "@" + a.Path.String()
	default:
		return a.Value
	}
}

// Job is one planned tool invocation. Its outputs are final once planned.
type Job struct {
	Kind        Kind
	Tool        Tool
	CommandLine []Arg
	Inputs      []vpath.TypedVirtualPath
	Outputs     []vpath.TypedVirtualPath
}

// Contains reports whether the command line holds arg
func (j *Job) Contains(arg Arg) bool {
	for _, a := range j.CommandLine {
		if a == arg {
			return true
		}
	}

	return false
}

// ContainsFlag reports whether the command line holds the literal s
func (j *Job) ContainsFlag(s string) bool {
	return j.Contains(Flag(s))
}

// ContainsPath reports whether the command line references p
func (j *Job) ContainsPath(p vpath.VirtualPath) bool {
	return j.Contains(Path(p))
}

// Display renders the command line for humans, temporaries tagged
func (j *Job) Display() []string {
	out := make([]string, 0, len(j.CommandLine)+1)
	out = append(out, j.Tool.Name())
	for _, a := range j.CommandLine {
		out = append(out, a.String())
	}

	return out
}

func (j *Job) String() string {
	return fmt.Sprintf("%s (%s)", j.Kind, j.Tool)
}
