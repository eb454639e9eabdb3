package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/Norgate-AV/swiftdriver/internal/config"
	"github.com/Norgate-AV/swiftdriver/internal/job"
)

// ShellCommand is a job with every virtual path materialized
type ShellCommand struct {
	Path string
	Args []string
	Job  *job.Job
}

// String renders the command as a shell-quoted line
func (c *ShellCommand) String() string {
	return shellquote.Join(append([]string{c.Path}, c.Args...)...)
}

// Commander interface for testing
type Commander interface {
	Run() error
}

// CommandBuilder turns planned jobs into processes
type CommandBuilder struct {
	cfg         *config.Config
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	execCommand func(ctx context.Context, name string, args ...string) Commander
}

// NewCommandBuilder creates a command builder on the process streams
func NewCommandBuilder(cfg *config.Config) *CommandBuilder {
	return &CommandBuilder{
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...)
		},
	}
}

// BuildCommand resolves the tool executable and materializes the command line
func (cb *CommandBuilder) BuildCommand(j *job.Job, scratch *Scratch) *ShellCommand {
	args := make([]string, 0, len(j.CommandLine))
	for _, a := range j.CommandLine {
		switch a.Kind {
		case job.ArgPath:
			args = append(args, scratch.Resolve(a.Path))
		case job.ArgResponseFile:
			args = append(args, "@"+scratch.Resolve(a.Path))
		default:
			args = append(args, a.Value)
		}
	}

	return &ShellCommand{
		Path: cb.cfg.ToolPath(j.Tool),
		Args: args,
		Job:  j,
	}
}

// JobError reports a tool that could not be run or exited non-zero
type JobError struct {
	Job  *job.Job
	Code int
	Err  error
}

func (e *JobError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("%s command failed (exit code %d)", e.Job.Tool.Name(), e.Code)
	}

	return fmt.Sprintf("failed to run %s: %v", e.Job.Tool.Name(), e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// stdinFor returns the terminal input for interactive jobs and nil for the
// rest, which may run concurrently
func (cb *CommandBuilder) stdinFor(j *job.Job) io.Reader {
	if j == nil {
		return nil
	}

	switch j.Kind {
	case job.KindInterpret, job.KindRepl:
		return cb.stdin
	default:
		return nil
	}
}

// ExecuteCommand runs one materialized command
func (cb *CommandBuilder) ExecuteCommand(ctx context.Context, sc *ShellCommand) error {
	c := cb.execCommand(ctx, sc.Path, sc.Args...)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Stdin = cb.stdinFor(sc.Job)
		cmd.Stdout = cb.stdout
		cmd.Stderr = cb.stderr
	}

	err := c.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &JobError{Job: sc.Job, Code: exitErr.ExitCode(), Err: err}
	}

	return &JobError{Job: sc.Job, Code: -1, Err: err}
}

// PrintBuildInfo prints verbose run information
func (cb *CommandBuilder) PrintBuildInfo(w io.Writer, driverKind, target string, waves [][]*job.Job, scratch *Scratch) {
	var total int
	for _, wave := range waves {
		total += len(wave)
	}

	tools := make([]string, 0, len(job.Tools()))
	for _, t := range job.Tools() {
		tools = append(tools, t.Name()+"="+cb.cfg.ToolPath(t))
	}

	fmt.Fprintf(w, "Driver: %s\nTarget: %s\nJobs: %d in %d waves\nWorkers: %d\nScratch: %s\nTools: %s\n",
		driverKind, target, total, len(waves), cb.cfg.Jobs, scratch.Dir(), strings.Join(tools, " "))
}
