// Package sim projects capital, fees, insurance nodes and airdrop
// rewards forward one day at a time.
package sim

import (
	"math"

	"github.com/rustyeddy/nodesim/airdrop"
)

// Simulator threads capital and node-lifecycle state across days. A
// Simulator is not safe for concurrent use; give each run its own.
type Simulator struct {
	settings Settings
	history  []DayResult
	cohorts  *cohortRing

	waiting           int
	totalIssued       int
	totalExpired      int
	cumulativeAirdrop float64
}

// NewSimulator validates s and returns a simulator positioned before day 1.
func NewSimulator(s Settings) (*Simulator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	// Delay and expiry are unbounded; the window saturates instead of
	// overflowing and the ring only grows with the days simulated.
	window := s.NodeExpiryDays
	if s.NodeActivationDelay > math.MaxInt-airdrop.MaxActiveDay {
		window = math.MaxInt
	} else if w := s.NodeActivationDelay + airdrop.MaxActiveDay; w > window {
		window = w
	}
	return &Simulator{
		settings: s,
		cohorts:  newCohortRing(window),
	}, nil
}

// Run is a convenience for NewSimulator followed by Run.
func Run(s Settings, days int) ([]DayResult, error) {
	sim, err := NewSimulator(s)
	if err != nil {
		return nil, err
	}
	return sim.Run(days)
}

// Settings returns the settings the simulator was built with.
func (s *Simulator) Settings() Settings { return s.settings }

// Day returns the number of days simulated so far.
func (s *Simulator) Day() int { return len(s.history) }

// History returns a copy of every day simulated so far.
func (s *Simulator) History() []DayResult {
	out := make([]DayResult, len(s.history))
	copy(out, s.history)
	return out
}

// Reset discards all simulated days.
func (s *Simulator) Reset() {
	s.history = s.history[:0]
	s.cohorts.reset()
	s.waiting = 0
	s.totalIssued = 0
	s.totalExpired = 0
	s.cumulativeAirdrop = 0
}

// Run starts over from day 1 and returns exactly days results.
func (s *Simulator) Run(days int) ([]DayResult, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}

	s.Reset()
	s.history = make([]DayResult, 0, days)
	for i := 0; i < days; i++ {
		s.Step()
	}
	return s.History(), nil
}

// Step computes the next day, appends it to the history and returns it.
func (s *Simulator) Step() DayResult {
	cfg := s.settings
	d := len(s.history) + 1

	r := DayResult{Day: d}
	if d == 1 {
		r.StartCapital = cfg.CapitalSeed()
	} else {
		prev := s.history[d-2]
		r.StartCapital = prev.EndCapital
		r.CumulativeClaim = prev.CumulativeClaim
	}

	r.CapitalPlusClaim = r.StartCapital + r.CumulativeClaim
	r.Seed = r.CapitalPlusClaim * cfg.SeedRate

	r.WinCount = cfg.WinCount
	r.LossCount = cfg.LossCount
	r.TotalProfit = r.Seed * cfg.WinProfitRate * float64(r.WinCount)
	r.TotalLoss = -(r.Seed * cfg.LossRate * float64(r.LossCount))

	r.DailyPnL = r.TotalProfit + r.TotalLoss
	r.DailyFee = r.Seed * cfg.TradeFeeRate * float64(cfg.DailyTrades)
	r.SelfReferral = r.DailyFee * cfg.SelfReferralRate
	r.NetPnL = r.DailyPnL - r.DailyFee + r.SelfReferral
	r.EndCapital = r.StartCapital + r.NetPnL

	r.InsuranceNodeCumulative = math.Abs(r.TotalLoss)
	r.NewNodesToday = int(math.Floor(r.InsuranceNodeCumulative / cfg.NodeCost))
	r.CarryoverLoss = math.Mod(r.InsuranceNodeCumulative, cfg.NodeCost)

	s.cohorts.push(r.NewNodesToday)
	s.totalIssued += r.NewNodesToday

	// Cohorts issued in (d-delay, d] are still waiting.
	s.waiting += r.NewNodesToday
	if left := d - cfg.NodeActivationDelay; left >= 1 {
		s.waiting -= s.cohorts.at(left)
	}
	r.WaitingNodes = s.waiting

	if d > cfg.NodeExpiryDays {
		r.ExpiredNodes = s.cohorts.at(d - cfg.NodeExpiryDays)
	}
	s.totalExpired += r.ExpiredNodes

	r.ActiveNodes = s.totalIssued - r.WaitingNodes - s.totalExpired

	if d > cfg.NodeActivationDelay {
		r.NewlyActivatedNodes = s.cohorts.at(d - cfg.NodeActivationDelay)
	}

	r.TodayAirdropTotal = s.airdropFor(d)
	s.cumulativeAirdrop += r.TodayAirdropTotal
	r.CumulativeAirdrop = s.cumulativeAirdrop
	r.TotalCapital = r.EndCapital + r.CumulativeAirdrop

	s.history = append(s.history, r)
	return r
}

// airdropFor sums the rewards owed on day d by every cohort issued
// before d that is inside its paying window. Cohorts are visited oldest
// first.
func (s *Simulator) airdropFor(d int) float64 {
	newest := d - s.settings.NodeActivationDelay
	if newest < 1 {
		return 0
	}

	var total float64
	for activeDay := airdrop.MaxActiveDay; activeDay >= 1; activeDay-- {
		issuedOn := newest - activeDay + 1
		if issuedOn < 1 || issuedOn >= d {
			continue
		}
		total += airdrop.RateForActiveDay(activeDay) * float64(s.cohorts.at(issuedOn))
	}
	return total
}
