package report

import (
	"strconv"

	"github.com/rustyeddy/nodesim/sim"
)

// Column describes one column of the day table.
type Column struct {
	Key   string
	Title string
	// Signed columns are shown as gains or losses.
	Signed bool
}

// Columns lists the day table columns in display order.
var Columns = []Column{
	{Key: "day", Title: "Day"},
	{Key: "capital_plus_claim", Title: "Capital+Claim"},
	{Key: "start_capital", Title: "Start Capital"},
	{Key: "cumulative_claim", Title: "Cum. Claim"},
	{Key: "seed", Title: "Seed"},
	{Key: "win_count", Title: "Wins"},
	{Key: "loss_count", Title: "Losses"},
	{Key: "total_profit", Title: "Profit", Signed: true},
	{Key: "total_loss", Title: "Loss", Signed: true},
	{Key: "daily_pnl", Title: "Daily PnL", Signed: true},
	{Key: "daily_fee", Title: "Fee"},
	{Key: "self_referral", Title: "Referral"},
	{Key: "net_pnl", Title: "Net PnL", Signed: true},
	{Key: "end_capital", Title: "End Capital"},
	{Key: "insurance_node_cumulative", Title: "Node Loss"},
	{Key: "new_nodes_today", Title: "New Nodes"},
	{Key: "carryover_loss", Title: "Carryover"},
	{Key: "waiting_nodes", Title: "Waiting"},
	{Key: "active_nodes", Title: "Active"},
	{Key: "expired_nodes", Title: "Expired"},
	{Key: "newly_activated_nodes", Title: "Activated"},
	{Key: "today_airdrop_total", Title: "Airdrop", Signed: true},
	{Key: "cumulative_airdrop", Title: "Cum. Airdrop", Signed: true},
	{Key: "total_capital", Title: "Total Capital"},
}

// Titles returns the column titles.
func Titles() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Title
	}
	return out
}

// Row formats d in Columns order. Capital columns have no decimals,
// money columns two and counts are plain integers.
func Row(d sim.DayResult) []string {
	return []string{
		strconv.Itoa(d.Day),
		FormatNumber(d.CapitalPlusClaim, 0),
		FormatNumber(d.StartCapital, 0),
		FormatNumber(d.CumulativeClaim, 0),
		FormatNumber(d.Seed, 2),
		strconv.Itoa(d.WinCount),
		strconv.Itoa(d.LossCount),
		FormatNumber(d.TotalProfit, 2),
		FormatNumber(d.TotalLoss, 2),
		FormatNumber(d.DailyPnL, 2),
		FormatNumber(d.DailyFee, 2),
		FormatNumber(d.SelfReferral, 2),
		FormatNumber(d.NetPnL, 2),
		FormatNumber(d.EndCapital, 0),
		FormatNumber(d.InsuranceNodeCumulative, 2),
		strconv.Itoa(d.NewNodesToday),
		FormatNumber(d.CarryoverLoss, 2),
		strconv.Itoa(d.WaitingNodes),
		strconv.Itoa(d.ActiveNodes),
		strconv.Itoa(d.ExpiredNodes),
		strconv.Itoa(d.NewlyActivatedNodes),
		FormatNumber(d.TodayAirdropTotal, 2),
		FormatNumber(d.CumulativeAirdrop, 2),
		FormatNumber(d.TotalCapital, 0),
	}
}

// Rows formats every day.
func Rows(days []sim.DayResult) [][]string {
	out := make([][]string, len(days))
	for i, d := range days {
		out[i] = Row(d)
	}
	return out
}
