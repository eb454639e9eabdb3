package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/swiftdriver/internal/codes"
	"github.com/Norgate-AV/swiftdriver/internal/executor"
)

var runCmd = &cobra.Command{
	Use:   "run -- <invocation...>",
	Short: "Plan an invocation and run its jobs",
	Long: `Resolve a swift or swiftc invocation, then run the planned jobs. Jobs whose
inputs are ready run concurrently; the first failure stops the build.`,
	Args: requireInvocation,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDriver(cmd, args)
	},
}

func init() {
	runCmd.Flags().IntP("jobs", "j", 0, "Maximum number of concurrent jobs (default: number of CPUs)")
	runCmd.Flags().Bool("save-temps", false, "Keep temporary files")
}

// runDriver plans and executes invocation. cmd is nil when the binary was
// started under a driver name.
func runDriver(cmd *cobra.Command, invocation []string) error {
	s, err := newSession(cmd, invocation)
	if err != nil {
		return err
	}

	if s.drv.Diagnostics().HasErrors() {
		s.record(false, false, nil)
		return codes.Errorf(codes.ExitPlanningErrors, "planning failed with errors, nothing was run")
	}

	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	result, err := executor.New(s.cfg).Run(ctx, s.jobs, s.drv.Kind().String(), s.drv.Target().String())
	s.record(true, err == nil, result)

	if result != nil && s.cfg.SaveTemps {
		s.log.Info("Temps", "kept in "+result.Scratch)
	}

	if err != nil {
		return codes.WithCode(codes.ExitJobFailed, err)
	}

	if s.cfg.Verbose {
		s.log.Success("Done", fmt.Sprintf("%d jobs", result.Executed))
	}

	return nil
}
