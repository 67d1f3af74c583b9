package journal

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/nodesim/internal/id"
)

// FormatRunOrg renders a RunRecord as an Org-mode block. Settings go in
// the PROPERTIES drawer so runs can be searched by parameter; the
// headline figures follow as a table.
func FormatRunOrg(r RunRecord) string {
	s, sum := r.Settings, r.Summary

	var b strings.Builder
	b.WriteString(fmt.Sprintf("** Run: %d days (%s)\n", r.Days, id.Short(r.RunID)))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":RUN_ID: %s\n", r.RunID))
	b.WriteString(fmt.Sprintf(":CREATED: [%s]\n", r.Created.UTC().Format("2006-01-02 Mon 15:04")))
	b.WriteString(fmt.Sprintf(":DAYS: %d\n", r.Days))
	b.WriteString(fmt.Sprintf(":INITIAL_INVESTMENT: %.2f\n", s.InitialInvestment))
	b.WriteString(fmt.Sprintf(":LEVERAGE: %d\n", s.Leverage))
	b.WriteString(fmt.Sprintf(":WIN_COUNT: %d\n", s.WinCount))
	b.WriteString(fmt.Sprintf(":LOSS_COUNT: %d\n", s.LossCount))
	b.WriteString(fmt.Sprintf(":SEED_PCT: %.2f\n", s.SeedRate*100))
	b.WriteString(fmt.Sprintf(":WIN_PROFIT_PCT: %.2f\n", s.WinProfitRate*100))
	b.WriteString(fmt.Sprintf(":LOSS_PCT: %.2f\n", s.LossRate*100))
	b.WriteString(fmt.Sprintf(":TRADE_FEE_PCT: %.2f\n", s.TradeFeeRate*100))
	b.WriteString(fmt.Sprintf(":SELF_REFERRAL_PCT: %.2f\n", s.SelfReferralRate*100))
	b.WriteString(fmt.Sprintf(":NODE_COST: %.2f\n", s.NodeCost))
	b.WriteString(fmt.Sprintf(":NODE_DELAY: %d\n", s.NodeActivationDelay))
	b.WriteString(fmt.Sprintf(":NODE_EXPIRY: %d\n", s.NodeExpiryDays))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Summary\n")
	b.WriteString("| Metric              | Value |\n")
	b.WriteString("|---------------------+-------|\n")
	b.WriteString(fmt.Sprintf("| Initial capital     | %.2f |\n", sum.InitialCapital))
	b.WriteString(fmt.Sprintf("| Final end capital   | %.2f |\n", sum.FinalEndCapital))
	b.WriteString(fmt.Sprintf("| Net profit          | %.2f |\n", sum.NetProfit))
	b.WriteString(fmt.Sprintf("| Total airdrop       | %.4f |\n", sum.TotalAirdrop))
	b.WriteString(fmt.Sprintf("| Final total capital | %.2f |\n", sum.FinalTotalCapital))
	b.WriteString(fmt.Sprintf("| Nodes issued        | %d |\n", sum.TotalNodesIssued))
	b.WriteString(fmt.Sprintf("| Nodes expired       | %d |\n", sum.TotalNodesExpired))
	b.WriteString(fmt.Sprintf("| Peak active nodes   | %d |\n", sum.PeakActiveNodes))
	b.WriteString(fmt.Sprintf("| Active nodes (end)  | %d |\n", sum.ActiveNodes))
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatRunsOrg renders multiple runs separated by blank lines.
func FormatRunsOrg(runs []RunRecord) string {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatRunOrg(r))
	}
	return b.String()
}

// WriteRunOrg writes the Org block for r to path.
func WriteRunOrg(path string, r RunRecord) error {
	if r.Created.IsZero() {
		r.Created = time.Now()
	}
	return os.WriteFile(path, []byte(FormatRunOrg(r)), 0644)
}
