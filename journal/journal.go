// journal/journal.go
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/nodesim/config"
	"github.com/rustyeddy/nodesim/sim"
)

// RunRecord describes one projection run.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Days     int
	Settings sim.Settings
	Summary  sim.Summary
}

// NewRunRecord builds the record for a finished run.
func NewRunRecord(runID string, created time.Time, s sim.Settings, days []sim.DayResult) RunRecord {
	return RunRecord{
		RunID:    runID,
		Created:  created,
		Days:     len(days),
		Settings: s,
		Summary:  sim.Summarize(days),
	}
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordDay(runID string, d sim.DayResult) error
	Close() error
}

// dayBatcher is implemented by journals that can store a whole run at once.
type dayBatcher interface {
	RecordDays(runID string, days []sim.DayResult) error
}

// Record writes the run record followed by every day of the run.
func Record(j Journal, run RunRecord, days []sim.DayResult) error {
	if err := j.RecordRun(run); err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}
	if b, ok := j.(dayBatcher); ok {
		if err := b.RecordDays(run.RunID, days); err != nil {
			return fmt.Errorf("record days for run %s: %w", run.RunID, err)
		}
		return nil
	}
	for _, d := range days {
		if err := j.RecordDay(run.RunID, d); err != nil {
			return fmt.Errorf("record day %d for run %s: %w", d.Day, run.RunID, err)
		}
	}
	return nil
}

// Open returns the journal selected by cfg.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "csv":
		return NewCSV(cfg.RunsFile, cfg.DaysFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	case "parquet":
		return NewParquet(cfg.ParquetFile)
	case "none", "":
		return Discard, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}

// Discard is a Journal that drops everything.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordRun(RunRecord) error            { return nil }
func (discard) RecordDay(string, sim.DayResult) error { return nil }
func (discard) Close() error                         { return nil }

// dayColumns names the stored day fields, in dayFields order.
var dayColumns = []string{
	"day",
	"capital_plus_claim",
	"start_capital",
	"cumulative_claim",
	"seed",
	"win_count",
	"loss_count",
	"total_profit",
	"total_loss",
	"daily_pnl",
	"daily_fee",
	"self_referral",
	"net_pnl",
	"end_capital",
	"insurance_node_cumulative",
	"new_nodes_today",
	"carryover_loss",
	"waiting_nodes",
	"active_nodes",
	"expired_nodes",
	"newly_activated_nodes",
	"today_airdrop_total",
	"cumulative_airdrop",
	"total_capital",
}

func dayFields(d sim.DayResult) []any {
	return []any{
		d.Day,
		d.CapitalPlusClaim,
		d.StartCapital,
		d.CumulativeClaim,
		d.Seed,
		d.WinCount,
		d.LossCount,
		d.TotalProfit,
		d.TotalLoss,
		d.DailyPnL,
		d.DailyFee,
		d.SelfReferral,
		d.NetPnL,
		d.EndCapital,
		d.InsuranceNodeCumulative,
		d.NewNodesToday,
		d.CarryoverLoss,
		d.WaitingNodes,
		d.ActiveNodes,
		d.ExpiredNodes,
		d.NewlyActivatedNodes,
		d.TodayAirdropTotal,
		d.CumulativeAirdrop,
		d.TotalCapital,
	}
}

func dayDest(d *sim.DayResult) []any {
	return []any{
		&d.Day,
		&d.CapitalPlusClaim,
		&d.StartCapital,
		&d.CumulativeClaim,
		&d.Seed,
		&d.WinCount,
		&d.LossCount,
		&d.TotalProfit,
		&d.TotalLoss,
		&d.DailyPnL,
		&d.DailyFee,
		&d.SelfReferral,
		&d.NetPnL,
		&d.EndCapital,
		&d.InsuranceNodeCumulative,
		&d.NewNodesToday,
		&d.CarryoverLoss,
		&d.WaitingNodes,
		&d.ActiveNodes,
		&d.ExpiredNodes,
		&d.NewlyActivatedNodes,
		&d.TodayAirdropTotal,
		&d.CumulativeAirdrop,
		&d.TotalCapital,
	}
}
