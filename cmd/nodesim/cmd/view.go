package cmd

import (
	"time"

	"github.com/rustyeddy/nodesim/internal/tui"
	"github.com/rustyeddy/nodesim/report"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Page through a projection in the terminal",
	Long: `Run a projection and page through the ledger full screen. More rows
load as you scroll to the bottom.

Keys: arrows/pgup/pgdn scroll, g/G jump to top/bottom, q quits.

Example:
  nodesim view --investment 25000 --days 180`,
	Args: cobra.NoArgs,
	RunE: runView,
}

var viewFlags projectionFlags

func init() {
	rootCmd.AddCommand(viewCmd)
	viewFlags.register(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := viewFlags.load(cmd)
	if err != nil {
		return err
	}

	rec, days, err := project(cfg, time.Now())
	if err != nil {
		return err
	}

	return tui.Run(report.Run{
		RunID:    rec.RunID,
		Created:  rec.Created,
		Settings: rec.Settings,
		Summary:  rec.Summary,
	}, days)
}
