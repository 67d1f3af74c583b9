package web

import (
	"github.com/rustyeddy/nodesim/sim"
)

// SimulateRequest is the input form. Rates are percentages and the
// investment may carry thousands separators ("10,000").
type SimulateRequest struct {
	Days              int     `json:"days"`
	InitialInvestment string  `json:"initial_investment"`
	Leverage          int     `json:"leverage"`
	WinCount          int     `json:"win_count"`
	LossCount         int     `json:"loss_count"`
	SelfReferralPct   float64 `json:"self_referral_pct"`
	SeedPct           float64 `json:"seed_pct"`
	WinProfitPct      float64 `json:"win_profit_pct"`
	LossPct           float64 `json:"loss_pct"`
	AirdropPerDay     int     `json:"airdrop_per_day"`
}

// RunResponse describes a stored run.
type RunResponse struct {
	RunID   string `json:"run_id"`
	Created string `json:"created"`
	// Investment is the initial investment as the form displays it.
	Investment string       `json:"investment"`
	Settings   sim.Settings `json:"settings"`
	Summary   sim.Summary  `json:"summary"`
	Total     int          `json:"total"`
	BatchSize int          `json:"batch_size"`
}

// DaysResponse is one page of a run's days.
type DaysResponse struct {
	RunID   string          `json:"run_id"`
	Offset  int             `json:"offset"`
	Total   int             `json:"total"`
	HasMore bool            `json:"has_more"`
	Days    []sim.DayResult `json:"days"`
	Rows    [][]string      `json:"rows"`
}

// RatesResponse is the airdrop schedule.
type RatesResponse struct {
	MaxActiveDay int       `json:"max_active_day"`
	Rates        []float64 `json:"rates"`
	CohortTotal  float64   `json:"cohort_total"`
}

// ColumnsResponse lists the table columns.
type ColumnsResponse struct {
	Keys   []string `json:"keys"`
	Titles []string `json:"titles"`
	Signed []bool   `json:"signed"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Stream messages. Clients send {"type":"more"} or {"type":"reset"};
// the server answers with "batch" or "error".
type clientMessage struct {
	Type string `json:"type"`
}

type batchMessage struct {
	Type      string     `json:"type"`
	RunID     string     `json:"run_id"`
	Offset    int        `json:"offset"`
	Loaded    int        `json:"loaded"`
	Total     int        `json:"total"`
	BatchSize int        `json:"batch_size"`
	HasMore   bool       `json:"has_more"`
	Rows      [][]string `json:"rows"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
