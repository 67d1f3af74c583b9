// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/nodesim/sim"
)

var runColumns = []string{
	"run_id", "created", "days",
	"initial_investment", "leverage", "win_count", "loss_count",
	"initial_capital", "final_end_capital", "final_total_capital",
	"net_profit", "total_airdrop", "active_nodes", "peak_active_nodes",
	"total_nodes_issued", "total_nodes_expired",
}

type CSVJournal struct {
	runs *csv.Writer
	days *csv.Writer
	rf   io.WriteCloser
	df   io.WriteCloser
}

func NewCSV(runsPath, daysPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(daysPath)
	if err != nil {
		rf.Close()
		return nil, err
	}
	return newCSVJournal(rf, df)
}

// newCSVJournal writes the headers to rf and df. Both are closed when
// that fails.
func newCSVJournal(rf, df io.WriteCloser) (*CSVJournal, error) {
	j := &CSVJournal{runs: csv.NewWriter(rf), days: csv.NewWriter(df), rf: rf, df: df}

	err := j.runs.Write(runColumns)
	if err == nil {
		err = j.days.Write(append([]string{"run_id"}, dayColumns...))
	}
	if err == nil {
		err = j.flush()
	}
	if err != nil {
		rf.Close()
		df.Close()
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	return j, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	s, sum := r.Settings, r.Summary
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		strconv.Itoa(r.Days),
		f(s.InitialInvestment),
		strconv.Itoa(s.Leverage),
		strconv.Itoa(s.WinCount),
		strconv.Itoa(s.LossCount),
		f(sum.InitialCapital),
		f(sum.FinalEndCapital),
		f(sum.FinalTotalCapital),
		f(sum.NetProfit),
		f(sum.TotalAirdrop),
		strconv.Itoa(sum.ActiveNodes),
		strconv.Itoa(sum.PeakActiveNodes),
		strconv.Itoa(sum.TotalNodesIssued),
		strconv.Itoa(sum.TotalNodesExpired),
	})
	if err != nil {
		return err
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordDay(runID string, d sim.DayResult) error {
	row := make([]string, 0, len(dayColumns)+1)
	row = append(row, runID)
	for _, v := range dayFields(d) {
		switch x := v.(type) {
		case int:
			row = append(row, strconv.Itoa(x))
		case float64:
			row = append(row, f(x))
		default:
			return fmt.Errorf("unexpected day field type %T", v)
		}
	}
	if err := j.days.Write(row); err != nil {
		return err
	}

	j.days.Flush()
	return j.days.Error()
}

func (j *CSVJournal) flush() error {
	j.runs.Flush()
	j.days.Flush()
	return errors.Join(j.runs.Error(), j.days.Error())
}

// Close flushes and closes both files, even when the flush fails.
func (j *CSVJournal) Close() error {
	return errors.Join(j.flush(), j.rf.Close(), j.df.Close())
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
