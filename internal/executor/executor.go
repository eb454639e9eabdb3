// Package executor runs a planned build.
//
// Jobs are grouped into waves: a job lands in the first wave after every job
// producing one of its inputs. Waves run in order, each one concurrently with
// at most Config.Jobs workers, and the first failure cancels everything that
// has not started.
package executor

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Norgate-AV/swiftdriver/internal/config"
	"github.com/Norgate-AV/swiftdriver/internal/job"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// Result summarizes one run
type Result struct {
	Scratch     string
	Executed    int
	Temporaries []string
}

// Executor runs jobs through a CommandBuilder
type Executor struct {
	cfg     *config.Config
	builder *CommandBuilder
	echo    io.Writer
}

// New creates an executor for cfg
func New(cfg *config.Config) *Executor {
	return &Executor{
		cfg:     cfg,
		builder: NewCommandBuilder(cfg),
		echo:    os.Stdout,
	}
}

// Waves groups jobs so that every producer of a job's inputs sits in an
// earlier wave. Jobs keep their planned order within a wave.
func Waves(jobs []*job.Job) [][]*job.Job {
	producedIn := map[vpath.VirtualPath]int{}

	var waves [][]*job.Job
	for _, j := range jobs {
		wave := 0
		for _, in := range j.Inputs {
			if w, ok := producedIn[in.File]; ok && w+1 > wave {
				wave = w + 1
			}
		}

		for len(waves) <= wave {
			waves = append(waves, nil)
		}
		waves[wave] = append(waves[wave], j)

		for _, out := range j.Outputs {
			if out.File.IsStandardStream() {
				continue
			}
			producedIn[out.File] = wave
		}
	}

	return waves
}

// Run executes jobs wave by wave
func (e *Executor) Run(ctx context.Context, jobs []*job.Job, driverKind, target string) (*Result, error) {
	scratch, err := NewScratch(e.cfg.TempDir, e.cfg.SaveTemps)
	if err != nil {
		return nil, err
	}

	waves := Waves(jobs)
	if e.cfg.Verbose {
		e.builder.PrintBuildInfo(e.echo, driverKind, target, waves, scratch)
	}

	result := &Result{Scratch: scratch.Dir()}
	runErr := e.runWaves(ctx, waves, scratch, result)

	if scratch.Kept() {
		result.Temporaries, err = scratch.CollectOutputs()
		if err != nil && runErr == nil {
			runErr = err
		}
	}

	if err := scratch.Cleanup(); err != nil && runErr == nil {
		runErr = err
	}

	return result, runErr
}

func (e *Executor) runWaves(ctx context.Context, waves [][]*job.Job, scratch *Scratch, result *Result) error {
	for _, wave := range waves {
		if err := ctx.Err(); err != nil {
			return err
		}

		commands := make([]*ShellCommand, 0, len(wave))
		for _, j := range wave {
			if err := scratch.Prepare(j.Outputs); err != nil {
				return err
			}
			commands = append(commands, e.builder.BuildCommand(j, scratch))
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.cfg.Jobs)

		for _, sc := range commands {
			sc := sc
			if e.cfg.Verbose {
				fmt.Fprintln(e.echo, sc.String())
			}

			g.Go(func() error {
				return e.builder.ExecuteCommand(gctx, sc)
			})
		}

		err := g.Wait()
		result.Executed += len(commands)
		if err != nil {
			return err
		}
	}

	return nil
}
