package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/swiftdriver/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recorded run",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 for all)")
	historyCmd.Flags().AddFlagSet(historyListCmd.Flags())
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
}

func openHistory(cmd *cobra.Command) (*history.History, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(cmd, wd)
	if err != nil {
		return nil, err
	}

	return history.New(cfg.HistoryDir)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	h, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	records, err := h.List()
	if err != nil {
		return err
	}

	count, size, err := h.Stats()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d recorded runs (%d bytes)\n", count, size)
	if len(records) == 0 {
		return nil
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(historyRows(records)).Srender()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func historyRows(records []*history.Record) pterm.TableData {
	rows := pterm.TableData{{"Time", "Hash", "Driver", "Module", "Jobs", "Status"}}

	for _, rec := range records {
		status := "planned"
		switch {
		case !rec.Success:
			status = "failed"
		case rec.Executed:
			status = "ok"
		}

		hash := rec.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}

		rows = append(rows, []string{
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
			hash,
			rec.DriverKind,
			rec.ModuleName,
			strconv.Itoa(len(rec.Jobs)),
			status,
		})
	}

	return rows
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	h, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}
