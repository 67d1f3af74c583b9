package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/nodesim/sim"
)

// ErrRunNotFound is returned when a run ID is not in the journal.
var ErrRunNotFound = errors.New("run not found")

const selectRunSQL = `
	SELECT run_id, created, days, settings, initial_capital, final_end_capital, final_total_capital,
	       net_profit, total_airdrop, active_nodes, peak_active_nodes, total_nodes_issued, total_nodes_expired
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		rec      RunRecord
		settings string
	)
	s := &rec.Summary
	err := row.Scan(
		&rec.RunID, &rec.Created, &rec.Days, &settings,
		&s.InitialCapital, &s.FinalEndCapital, &s.FinalTotalCapital,
		&s.NetProfit, &s.TotalAirdrop, &s.ActiveNodes, &s.PeakActiveNodes,
		&s.TotalNodesIssued, &s.TotalNodesExpired,
	)
	if err != nil {
		return RunRecord{}, err
	}
	if err := json.Unmarshal([]byte(settings), &rec.Settings); err != nil {
		return RunRecord{}, fmt.Errorf("decode settings for run %s: %w", rec.RunID, err)
	}
	s.Days = rec.Days
	return rec, nil
}

// GetRun returns a single run record by ID.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	rec, err := scanRun(j.db.QueryRow(selectRunSQL+` WHERE run_id = ?`, runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q: %w", runID, ErrRunNotFound)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns all runs, oldest first.
func (j *SQLiteJournal) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(selectRunSQL + ` ORDER BY created ASC, run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDays returns up to limit days of a run starting after offset days.
// A non-positive limit returns every remaining day.
func (j *SQLiteJournal) ListDays(runID string, offset, limit int) ([]sim.DayResult, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.Query(`
		SELECT `+strings.Join(dayColumns, ", ")+`
		FROM days
		WHERE run_id = ?
		ORDER BY day ASC
		LIMIT ? OFFSET ?`, runID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.DayResult
	for rows.Next() {
		var d sim.DayResult
		if err := rows.Scan(dayDest(&d)...); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
