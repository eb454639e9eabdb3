package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/swiftdriver/internal/codes"
	"github.com/Norgate-AV/swiftdriver/internal/history"
)

var planCmd = &cobra.Command{
	Use:   "plan -- <invocation...>",
	Short: "Print the jobs an invocation would run",
	Long: `Resolve a swift or swiftc invocation and print the planned jobs without
running them. Temporary files are shown under <tmp>/.`,
	Args: requireInvocation,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
	planCmd.Flags().Bool("dump", false, "Dump the planned jobs with their Go types")
	planCmd.MarkFlagsMutuallyExclusive("json", "dump")
}

// planDocument is the --json form of a plan
type planDocument struct {
	Driver      string              `json:"driver"`
	Target      string              `json:"target,omitempty"`
	ModuleName  string              `json:"module_name,omitempty"`
	Jobs        []history.JobRecord `json:"jobs"`
	Diagnostics []string            `json:"diagnostics,omitempty"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	dump, _ := cmd.Flags().GetBool("dump")
	out := cmd.OutOrStdout()

	switch {
	case asJSON:
		err = writePlanJSON(out, s)
	case dump:
		spew.Fdump(out, s.jobs)
	default:
		for _, j := range s.jobs {
			fmt.Fprintln(out, shellquote.Join(j.Display()...))
		}
	}

	if err != nil {
		return err
	}

	failed := s.drv.Diagnostics().HasErrors()
	s.record(false, !failed, nil)

	if failed {
		return codes.Errorf(codes.ExitPlanningErrors, "planning failed with errors")
	}

	return nil
}

func writePlanJSON(w io.Writer, s *session) error {
	doc := planDocument{
		Driver:     s.drv.Kind().String(),
		Target:     s.drv.Target().String(),
		ModuleName: s.drv.ModuleName(),
		Jobs:       history.RecordJobs(s.jobs),
	}

	for _, d := range s.drv.Diagnostics().Diagnostics() {
		doc.Diagnostics = append(doc.Diagnostics, d.String())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	return nil
}
