package sim

// Summary holds the headline figures of a finished run.
type Summary struct {
	Days              int     `json:"days" yaml:"days"`
	InitialCapital    float64 `json:"initial_capital" yaml:"initial_capital"`
	FinalEndCapital   float64 `json:"final_end_capital" yaml:"final_end_capital"`
	FinalTotalCapital float64 `json:"final_total_capital" yaml:"final_total_capital"`
	// NetProfit is trading capital gained over the run, airdrops excluded.
	NetProfit         float64 `json:"net_profit" yaml:"net_profit"`
	TotalAirdrop      float64 `json:"total_airdrop" yaml:"total_airdrop"`
	ActiveNodes       int     `json:"active_nodes" yaml:"active_nodes"`
	PeakActiveNodes   int     `json:"peak_active_nodes" yaml:"peak_active_nodes"`
	TotalNodesIssued  int     `json:"total_nodes_issued" yaml:"total_nodes_issued"`
	TotalNodesExpired int     `json:"total_nodes_expired" yaml:"total_nodes_expired"`
}

// Summarize computes the summary of a run. An empty run yields the zero
// Summary.
func Summarize(days []DayResult) Summary {
	if len(days) == 0 {
		return Summary{}
	}

	first := days[0]
	last := days[len(days)-1]
	sum := Summary{
		Days:              len(days),
		InitialCapital:    first.StartCapital,
		FinalEndCapital:   last.EndCapital,
		FinalTotalCapital: last.TotalCapital,
		NetProfit:         last.EndCapital - first.StartCapital,
		TotalAirdrop:      last.CumulativeAirdrop,
		ActiveNodes:       last.ActiveNodes,
	}
	for _, d := range days {
		sum.TotalNodesIssued += d.NewNodesToday
		sum.TotalNodesExpired += d.ExpiredNodes
		if d.ActiveNodes > sum.PeakActiveNodes {
			sum.PeakActiveNodes = d.ActiveNodes
		}
	}
	return sum
}
