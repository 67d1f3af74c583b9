package sim

// DayResult is the ledger line for one simulated day.
type DayResult struct {
	Day int `json:"day" yaml:"day"`

	CapitalPlusClaim float64 `json:"capital_plus_claim" yaml:"capital_plus_claim"`
	StartCapital     float64 `json:"start_capital" yaml:"start_capital"`
	// CumulativeClaim is carried forward unchanged. Nothing feeds it yet,
	// so it stays 0.
	CumulativeClaim float64 `json:"cumulative_claim" yaml:"cumulative_claim"`
	Seed            float64 `json:"seed" yaml:"seed"`

	WinCount    int     `json:"win_count" yaml:"win_count"`
	LossCount   int     `json:"loss_count" yaml:"loss_count"`
	TotalProfit float64 `json:"total_profit" yaml:"total_profit"`
	// TotalLoss is signed: it is zero or negative.
	TotalLoss float64 `json:"total_loss" yaml:"total_loss"`

	DailyPnL     float64 `json:"daily_pnl" yaml:"daily_pnl"`
	DailyFee     float64 `json:"daily_fee" yaml:"daily_fee"`
	SelfReferral float64 `json:"self_referral" yaml:"self_referral"`
	NetPnL       float64 `json:"net_pnl" yaml:"net_pnl"`
	EndCapital   float64 `json:"end_capital" yaml:"end_capital"`

	InsuranceNodeCumulative float64 `json:"insurance_node_cumulative" yaml:"insurance_node_cumulative"`
	NewNodesToday           int     `json:"new_nodes_today" yaml:"new_nodes_today"`
	// CarryoverLoss is the part of today's loss too small to mint a node.
	// It is reported only; the next day does not pick it up.
	CarryoverLoss       float64 `json:"carryover_loss" yaml:"carryover_loss"`
	WaitingNodes        int     `json:"waiting_nodes" yaml:"waiting_nodes"`
	ActiveNodes         int     `json:"active_nodes" yaml:"active_nodes"`
	ExpiredNodes        int     `json:"expired_nodes" yaml:"expired_nodes"`
	NewlyActivatedNodes int     `json:"newly_activated_nodes" yaml:"newly_activated_nodes"`

	TodayAirdropTotal float64 `json:"today_airdrop_total" yaml:"today_airdrop_total"`
	CumulativeAirdrop float64 `json:"cumulative_airdrop" yaml:"cumulative_airdrop"`
	TotalCapital      float64 `json:"total_capital" yaml:"total_capital"`
}
