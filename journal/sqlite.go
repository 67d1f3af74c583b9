package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/nodesim/sim"
)

type SQLiteJournal struct {
	db *sql.DB
}

var insertDaySQL = fmt.Sprintf(
	"INSERT INTO days (run_id, %s) VALUES (?%s)",
	strings.Join(dayColumns, ", "),
	strings.Repeat(", ?", len(dayColumns)),
)

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	settings, err := json.Marshal(r.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	s := r.Summary
	_, err = j.db.Exec(`
		INSERT INTO runs
		(run_id, created, days, settings, initial_capital, final_end_capital, final_total_capital,
		 net_profit, total_airdrop, active_nodes, peak_active_nodes, total_nodes_issued, total_nodes_expired)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC(), r.Days, string(settings),
		s.InitialCapital, s.FinalEndCapital, s.FinalTotalCapital,
		s.NetProfit, s.TotalAirdrop, s.ActiveNodes, s.PeakActiveNodes,
		s.TotalNodesIssued, s.TotalNodesExpired,
	)
	return err
}

func (j *SQLiteJournal) RecordDay(runID string, d sim.DayResult) error {
	_, err := j.db.Exec(insertDaySQL, append([]any{runID}, dayFields(d)...)...)
	return err
}

// RecordDays stores a run's days in a single transaction.
func (j *SQLiteJournal) RecordDays(runID string, days []sim.DayResult) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(insertDaySQL)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.Exec(append([]any{runID}, dayFields(d)...)...); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
