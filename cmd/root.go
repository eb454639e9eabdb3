package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/swiftdriver/internal/codes"
	"github.com/Norgate-AV/swiftdriver/internal/driver"
	"github.com/Norgate-AV/swiftdriver/internal/logging"
	"github.com/Norgate-AV/swiftdriver/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "swiftdriver",
	Short: "Swift compiler driver",
	Long: `Plan and run the jobs behind a swift or swiftc invocation.

Driver arguments follow "--", e.g. swiftdriver plan -- swiftc main.swift -o main.
Linked or copied under a driver name (swiftc, swift, swift-frontend, ...) the
binary runs that invocation directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line and exits with the matching code
func Execute() {
	os.Exit(run(os.Args))
}

// run dispatches args and returns the process exit code
func run(args []string) int {
	var err error
	if len(args) > 0 && driver.IsDriverName(args[0]) {
		err = runDriver(nil, args)
	} else {
		rootCmd.SetArgs(args[1:])
		err = rootCmd.Execute()
	}

	code := codes.CodeOf(err)
	if !codes.IsSuccess(code) {
		logging.New(false).Error(codes.GetErrorMessage(code), err)
	}

	return code
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: nearest .swiftdriver.{yml,yaml,json,toml})")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record this run in the history database")
	rootCmd.AddCommand(planCmd, runCmd, optionsCmd, historyCmd)
}

// requireInvocation validates that a driver invocation follows "--"
func requireInvocation(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return codes.Errorf(codes.ExitInvalidInvocation, "missing driver invocation, e.g. %s -- swiftc main.swift", cmd.CommandPath())
	}

	return nil
}
