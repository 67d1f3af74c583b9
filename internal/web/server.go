// Package web serves the projection form and renders runs in the
// browser, paging rows over a WebSocket as the table is scrolled.
package web

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/nodesim/journal"
	"github.com/rustyeddy/nodesim/logger"
	"github.com/rustyeddy/nodesim/sim"
)

// DefaultMaxRuns bounds the in-memory run registry.
const DefaultMaxRuns = 100

type storedRun struct {
	record journal.RunRecord
	days   []sim.DayResult
}

// Server holds finished runs and serves them over HTTP.
type Server struct {
	mu      sync.RWMutex
	runs    map[string]*storedRun
	order   []string
	maxRuns int

	journalMu sync.Mutex
	journal   journal.Journal

	upgrader websocket.Upgrader
	log      *logrus.Entry
	now      func() time.Time
	newID    func() string
}

// Option configures a Server.
type Option func(*Server)

// WithJournal records every run to j.
func WithJournal(j journal.Journal) Option {
	return func(s *Server) { s.journal = j }
}

// WithMaxRuns sets how many runs are kept before the oldest is dropped.
func WithMaxRuns(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRuns = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Log) Option {
	return func(s *Server) { s.log = l.WithComponent("web") }
}

// New returns a Server with an empty registry.
func New(opts ...Option) *Server {
	s := &Server{
		runs:    make(map[string]*storedRun),
		maxRuns: DefaultMaxRuns,
		journal: journal.Discard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		log:   logger.Get().WithComponent("web"),
		now:   time.Now,
		newID: newRunID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/defaults", s.handleDefaults)
	mux.HandleFunc("GET /api/rates", s.handleRates)
	mux.HandleFunc("GET /api/columns", s.handleColumns)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("GET /api/runs/{id}", s.handleRun)
	mux.HandleFunc("GET /api/runs/{id}/days", s.handleDays)
	mux.HandleFunc("GET /api/runs/{id}/parquet", s.handleParquet)
	mux.HandleFunc("GET /ws/runs/{id}", s.handleStream)

	return s.withLogging(withCORS(mux))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Store adds a finished run to the registry and the journal.
func (s *Server) Store(rec journal.RunRecord, days []sim.DayResult) {
	s.mu.Lock()
	s.runs[rec.RunID] = &storedRun{record: rec, days: days}
	s.order = append(s.order, rec.RunID)
	for len(s.order) > s.maxRuns {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
	s.mu.Unlock()

	s.journalMu.Lock()
	err := journal.Record(s.journal, rec, days)
	s.journalMu.Unlock()
	if err != nil {
		s.log.WithError(err).WithField("run_id", rec.RunID).Warn("journal write failed")
	}
}

func (s *Server) lookup(runID string) (*storedRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	return run, ok
}

func (s *Server) sendJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Debug("encode response")
	}
}

func (s *Server) sendError(w http.ResponseWriter, code int, message string) {
	s.sendJSON(w, code, ErrorResponse{Error: message, Code: code})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Hijack is needed by the WebSocket upgrader.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
