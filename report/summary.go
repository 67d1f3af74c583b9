package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/nodesim/sim"
)

// Run is what PrintSummary reports on.
type Run struct {
	RunID    string
	Created  time.Time
	Settings sim.Settings
	Summary  sim.Summary
}

// PrintSummary writes the settings and headline figures of a run.
func PrintSummary(w io.Writer, r Run) {
	s, sum := r.Settings, r.Summary

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Projection Result")
	fmt.Fprintln(w, "==================================================")

	if r.RunID != "" {
		fmt.Fprintf(w, "Run ID:            %s\n", r.RunID)
	}
	if !r.Created.IsZero() {
		fmt.Fprintf(w, "Created:           %s\n", r.Created.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Days:              %d\n", sum.Days)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Investment:        %s\n", FormatNumber(s.InitialInvestment, 0))
	fmt.Fprintf(w, "Insurance Reserve: %s\n", FormatNumber(s.InitialInvestment*s.BootingRate, 0))
	fmt.Fprintf(w, "Futures Seed:      %s\n", FormatNumber(s.CapitalSeed(), 0))
	fmt.Fprintf(w, "Leverage:          %dx\n", s.Leverage)
	fmt.Fprintf(w, "Trades per Day:    %d (%d wins, %d losses)\n", s.DailyTrades, s.WinCount, s.LossCount)
	fmt.Fprintf(w, "Seed:              %.2f%%\n", s.SeedRate*100)
	fmt.Fprintf(w, "Win Profit:        %.2f%%\n", s.WinProfitRate*100)
	fmt.Fprintf(w, "Loss:              %.2f%%\n", s.LossRate*100)
	fmt.Fprintf(w, "Trade Fee:         %.2f%%\n", s.TradeFeeRate*100)
	fmt.Fprintf(w, "Self Referral:     %.2f%%\n", s.SelfReferralRate*100)
	fmt.Fprintf(w, "Node Cost:         %s\n", FormatNumber(s.NodeCost, 2))
	fmt.Fprintf(w, "Node Lifecycle:    active after %d days, expires after %d\n",
		s.NodeActivationDelay, s.NodeExpiryDays)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Result")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Final Capital:     %s USDT\n", FormatNumber(sum.FinalTotalCapital, 0))
	fmt.Fprintf(w, "Net Profit:        %s USDT\n", FormatNumber(sum.NetProfit, 0))
	fmt.Fprintf(w, "Total Airdrop:     %s USDT\n", FormatNumber(sum.TotalAirdrop, 2))
	fmt.Fprintf(w, "Active Nodes:      %d\n", sum.ActiveNodes)
	fmt.Fprintf(w, "Peak Active Nodes: %d\n", sum.PeakActiveNodes)
	fmt.Fprintf(w, "Nodes Issued:      %d\n", sum.TotalNodesIssued)
	fmt.Fprintf(w, "Nodes Expired:     %d\n", sum.TotalNodesExpired)

	fmt.Fprintln(w, "==================================================")
}
