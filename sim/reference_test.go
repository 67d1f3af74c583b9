package sim

import (
	"math"

	"github.com/rustyeddy/nodesim/airdrop"
)

// referenceRun recomputes every aggregate by rescanning the whole prefix
// each day. It is quadratic and exists only to check the engine.
func referenceRun(cfg Settings, days int) []DayResult {
	var out []DayResult

	for d := 1; d <= days; d++ {
		r := DayResult{Day: d}
		if d == 1 {
			r.StartCapital = cfg.CapitalSeed()
		} else {
			r.StartCapital = out[d-2].EndCapital
			r.CumulativeClaim = out[d-2].CumulativeClaim
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

		issued := func(day int) int {
			if day == d {
				return r.NewNodesToday
			}
			return out[day-1].NewNodesToday
		}

		from := d - cfg.NodeActivationDelay + 1
		if from < 1 {
			from = 1
		}
		for p := from; p <= d; p++ {
			r.WaitingNodes += issued(p)
		}

		if d > cfg.NodeExpiryDays {
			r.ExpiredNodes = issued(d - cfg.NodeExpiryDays)
		}

		totalIssued, totalExpired := r.NewNodesToday, r.ExpiredNodes
		for _, prev := range out {
			totalIssued += prev.NewNodesToday
			totalExpired += prev.ExpiredNodes
		}
		r.ActiveNodes = totalIssued - r.WaitingNodes - totalExpired

		if d > cfg.NodeActivationDelay {
			r.NewlyActivatedNodes = issued(d - cfg.NodeActivationDelay)
		}

		for p := 1; p < d; p++ {
			activation := p + cfg.NodeActivationDelay
			if activation > d {
				continue
			}
			activeDay := d - activation + 1
			if activeDay < 1 || activeDay > airdrop.MaxActiveDay {
				continue
			}
			r.TodayAirdropTotal += airdrop.RateForActiveDay(activeDay) * float64(out[p-1].NewNodesToday)
		}

		if d > 1 {
			r.CumulativeAirdrop = out[d-2].CumulativeAirdrop
		}
		r.CumulativeAirdrop += r.TodayAirdropTotal
		r.TotalCapital = r.EndCapital + r.CumulativeAirdrop

		out = append(out, r)
	}
	return out
}
