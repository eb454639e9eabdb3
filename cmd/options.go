package cmd

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/swiftdriver/internal/options"
)

var optionsCmd = &cobra.Command{
	Use:   "options [filter]",
	Short: "List the driver options",
	Long:  `List the options the driver understands. A filter fuzzy-matches option spellings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOptions,
}

func init() {
	optionsCmd.Flags().Bool("all", false, "Include hidden options")
}

func runOptions(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(optionRows(options.Default(), filter, all)).
		Srender()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// optionRows builds the table for every listed option, header first
func optionRows(table *options.Table, filter string, all bool) pterm.TableData {
	rows := pterm.TableData{{"Option", "Kind", "Group", "Description"}}

	for _, opt := range table.All() {
		if opt.Kind == options.KindInput {
			continue
		}
		if !all && opt.Has(options.AttrHelpHidden) {
			continue
		}
		if filter != "" && !fuzzy.MatchFold(filter, opt.Spelling) {
			continue
		}

		spelling := opt.Spelling
		if opt.MetaVar != "" {
			spelling += " " + opt.MetaVar
		}

		rows = append(rows, []string{spelling, opt.Kind.String(), string(opt.Canonical().Group), opt.Help})
	}

	return rows
}
