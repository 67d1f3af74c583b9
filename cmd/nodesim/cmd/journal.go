package cmd

import (
	"fmt"

	"github.com/rustyeddy/nodesim/internal/id"
	"github.com/rustyeddy/nodesim/journal"
	"github.com/spf13/cobra"
)

const defaultDBPath = "./nodesim.sqlite"

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled runs",
	Long: `Query and display projection runs recorded in a SQLite journal.

Subcommands:
  runs  - List every recorded run
  show  - Show one run as an Org entry
  days  - Print the ledger of one run

Examples:
  nodesim journal runs
  nodesim journal show 01J0ABCDEFGHJKMNPQRSTVWXYZ
  nodesim journal days 01J0ABCDEFGHJKMNPQRSTVWXYZ --offset 50 --limit 50`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDaysCmd = &cobra.Command{
	Use:   "days <run-id>",
	Short: "Print the ledger rows of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDays,
}

var (
	journalDBPath string
	journalOrgOut string
	journalOffset int
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalDaysCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", defaultDBPath, "path to SQLite journal DB")
	journalShowCmd.Flags().StringVarP(&journalOrgOut, "output", "o", "", "also write the Org entry to this file")
	journalDaysCmd.Flags().IntVar(&journalOffset, "offset", 0, "rows to skip")
	journalDaysCmd.Flags().IntVar(&journalLimit, "limit", 0, "rows to print (0 for all)")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRunsOrg(runs))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	if err := checkRunID(args[0]); err != nil {
		return err
	}
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRunOrg(rec))
	if journalOrgOut != "" {
		if err := journal.WriteRunOrg(journalOrgOut, rec); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
	}
	return nil
}

func runJournalDays(cmd *cobra.Command, args []string) error {
	if err := checkRunID(args[0]); err != nil {
		return err
	}
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	// Distinguish an unknown run from a run with no rows in range.
	if _, err := j.GetRun(args[0]); err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	days, err := j.ListDays(args[0], journalOffset, journalLimit)
	if err != nil {
		return fmt.Errorf("list days: %w", err)
	}

	return printRows(cmd.OutOrStdout(), days, -1)
}

// checkRunID rejects arguments that are not run IDs before the journal
// is opened.
func checkRunID(runID string) error {
	if _, err := id.Time(runID); err != nil {
		return fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	return nil
}
