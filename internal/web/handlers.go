package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rustyeddy/nodesim/airdrop"
	"github.com/rustyeddy/nodesim/config"
	"github.com/rustyeddy/nodesim/internal/id"
	"github.com/rustyeddy/nodesim/journal"
	"github.com/rustyeddy/nodesim/report"
	"github.com/rustyeddy/nodesim/sim"
)

const maxRequestBytes = 1 << 16

func newRunID() string { return id.NewRunID() }

// configFromRequest applies the form over the default configuration.
func configFromRequest(req SimulateRequest) *config.Config {
	cfg := config.Default()
	cfg.Simulation = config.SimulationConfig{
		Days:              req.Days,
		InitialInvestment: report.ParseAmount(req.InitialInvestment),
		Leverage:          req.Leverage,
		WinCount:          req.WinCount,
		LossCount:         req.LossCount,
	}
	cfg.Rates.SelfReferralPct = req.SelfReferralPct
	cfg.Rates.SeedPct = req.SeedPct
	cfg.Rates.WinProfitPct = req.WinProfitPct
	cfg.Rates.LossPct = req.LossPct
	cfg.Rates.AirdropPerDay = req.AirdropPerDay
	cfg.Journal = config.JournalConfig{Type: "none"}
	return cfg
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	cfg := configFromRequest(req)
	settings, err := cfg.Settings()
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	days, err := sim.Run(settings, cfg.Simulation.Days)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := journal.NewRunRecord(s.newID(), s.now(), settings, days)
	s.Store(rec, days)

	s.log.WithField("run_id", rec.RunID).WithField("days", rec.Days).Info("run stored")
	s.sendJSON(w, http.StatusCreated, runResponse(rec))
}

func runResponse(rec journal.RunRecord) RunResponse {
	return RunResponse{
		RunID:      rec.RunID,
		Created:    rec.Created.UTC().Format(time.RFC3339),
		Investment: investmentInput(rec.Settings.InitialInvestment),
		Settings:   rec.Settings,
		Summary:    rec.Summary,
		Total:      rec.Days,
		BatchSize:  report.BatchSize,
	}
}

// investmentInput renders an amount the way the form field shows it.
func investmentInput(x float64) string {
	return report.FormatAmountInput(strconv.FormatFloat(math.Round(x), 'f', 0, 64))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookup(r.PathValue("id"))
	if !ok {
		s.sendError(w, http.StatusNotFound, "run not found")
		return
	}
	s.sendJSON(w, http.StatusOK, runResponse(run.record))
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookup(r.PathValue("id"))
	if !ok {
		s.sendError(w, http.StatusNotFound, "run not found")
		return
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		s.sendError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", report.BatchSize)
	if err != nil || limit < 1 || limit > config.MaxDays {
		s.sendError(w, http.StatusBadRequest,
			fmt.Sprintf("limit must be between 1 and %d", config.MaxDays))
		return
	}

	total := len(run.days)
	start := min(offset, total)
	end := min(start+limit, total)
	page := run.days[start:end]

	s.sendJSON(w, http.StatusOK, DaysResponse{
		RunID:   run.record.RunID,
		Offset:  start,
		Total:   total,
		HasMore: end < total,
		Days:    page,
		Rows:    report.Rows(page),
	})
}

func (s *Server) handleParquet(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookup(r.PathValue("id"))
	if !ok {
		s.sendError(w, http.StatusNotFound, "run not found")
		return
	}

	data, err := journal.EncodeRunParquet(run.record, run.days)
	if err != nil {
		s.log.WithError(err).Error("parquet export failed")
		s.sendError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.apache.parquet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", run.record.RunID+".parquet"))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()
	s.sendJSON(w, http.StatusOK, SimulateRequest{
		Days:              cfg.Simulation.Days,
		InitialInvestment: investmentInput(cfg.Simulation.InitialInvestment),
		Leverage:          cfg.Simulation.Leverage,
		WinCount:          cfg.Simulation.WinCount,
		LossCount:         cfg.Simulation.LossCount,
		SelfReferralPct:   cfg.Rates.SelfReferralPct,
		SeedPct:           cfg.Rates.SeedPct,
		WinProfitPct:      cfg.Rates.WinProfitPct,
		LossPct:           cfg.Rates.LossPct,
		AirdropPerDay:     cfg.Rates.AirdropPerDay,
	})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, RatesResponse{
		MaxActiveDay: airdrop.MaxActiveDay,
		Rates:        airdrop.Rates(),
		CohortTotal:  airdrop.CohortTotal(),
	})
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	resp := ColumnsResponse{}
	for _, c := range report.Columns {
		resp.Keys = append(resp.Keys, c.Key)
		resp.Titles = append(resp.Titles, c.Title)
		resp.Signed = append(resp.Signed, c.Signed)
	}
	s.sendJSON(w, http.StatusOK, resp)
}

var errNotInteger = errors.New("not an integer")

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}
