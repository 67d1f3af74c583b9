package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDefault(t *testing.T, days int) []DayResult {
	t.Helper()

	out, err := Run(DefaultSettings(), days)
	require.NoError(t, err)
	require.Len(t, out, days)
	return out
}

func TestRun_FirstDay(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	out := runDefault(t, 1)
	d := out[0]

	assert.Equal(t, 1, d.Day)
	assert.Equal(t, s.InitialInvestment*(1-s.BootingRate), d.StartCapital)
	assert.InDelta(t, 9000.0, d.StartCapital, 1e-9)
	assert.Zero(t, d.CumulativeClaim)
	assert.InDelta(t, 9000.0, d.CapitalPlusClaim, 1e-9)
	assert.InDelta(t, 90.0, d.Seed, 1e-9)
	assert.Equal(t, 75, d.WinCount)
	assert.Equal(t, 30, d.LossCount)
	assert.InDelta(t, 337.5, d.TotalProfit, 1e-9)
	assert.InDelta(t, -270.0, d.TotalLoss, 1e-9)
	assert.InDelta(t, 67.5, d.DailyPnL, 1e-9)
	assert.InDelta(t, 283.5, d.DailyFee, 1e-9)
	assert.InDelta(t, 56.7, d.SelfReferral, 1e-9)
	assert.InDelta(t, -159.3, d.NetPnL, 1e-9)
	assert.InDelta(t, 8840.7, d.EndCapital, 1e-9)
	assert.InDelta(t, 270.0, d.InsuranceNodeCumulative, 1e-9)
	assert.Equal(t, 2, d.NewNodesToday)
	assert.InDelta(t, 70.0, d.CarryoverLoss, 1e-9)
	assert.Equal(t, 2, d.WaitingNodes)
	assert.Zero(t, d.ActiveNodes)
	assert.Zero(t, d.ExpiredNodes)
	assert.Zero(t, d.NewlyActivatedNodes)
	assert.Zero(t, d.TodayAirdropTotal)
	assert.Zero(t, d.CumulativeAirdrop)
	assert.InDelta(t, 8840.7, d.TotalCapital, 1e-9)
}

func TestRun_SmallLossMintsNoNode(t *testing.T) {
	t.Parallel()

	// Seed 90 and a loss of 90 stays under one node cost of 100.
	s, err := NewSettings(10000, 25, 75, 30,
		WithLossRate(1.0/30),
		WithTradeFeeRate(0.0003),
		WithDailyTrades(105),
	)
	require.NoError(t, err)

	out, err := Run(s, 1)
	require.NoError(t, err)
	d := out[0]

	assert.InDelta(t, 9000.0, d.StartCapital, 1e-9)
	assert.InDelta(t, 90.0, d.Seed, 1e-9)
	assert.InDelta(t, 337.5, d.TotalProfit, 1e-9)
	assert.InDelta(t, -90.0, d.TotalLoss, 1e-9)
	assert.InDelta(t, 247.5, d.DailyPnL, 1e-9)
	assert.InDelta(t, 2.835, d.DailyFee, 1e-9)
	assert.InDelta(t, 0.567, d.SelfReferral, 1e-9)
	assert.InDelta(t, 245.232, d.NetPnL, 1e-9)
	assert.InDelta(t, 9245.232, d.EndCapital, 1e-9)
	assert.Equal(t, 0, d.NewNodesToday)
	assert.Equal(t, 0, d.ActiveNodes)
	assert.Zero(t, d.TodayAirdropTotal)
}

func TestRun_LengthAndOrdering(t *testing.T) {
	t.Parallel()

	for _, days := range []int{1, 2, 3, 4, 53, 54, 60, 365} {
		out := runDefault(t, days)
		for i, d := range out {
			assert.Equal(t, i+1, d.Day)
		}
	}
}

func TestRun_InvalidDays(t *testing.T) {
	t.Parallel()

	for _, days := range []int{0, -1, -365} {
		out, err := Run(DefaultSettings(), days)
		assert.ErrorIs(t, err, ErrInvalidDays)
		assert.Nil(t, out)
	}
}

func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.NodeCost = 0

	_, err := Run(s, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	var inv *InvalidSettingsError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "node_cost", inv.Field)
}

func TestRun_CapitalRecurrence(t *testing.T) {
	t.Parallel()

	out := runDefault(t, 365)
	for i, d := range out {
		assert.Equal(t, d.StartCapital+d.NetPnL, d.EndCapital, "day %d", d.Day)
		assert.Equal(t, d.EndCapital+d.CumulativeAirdrop, d.TotalCapital, "day %d", d.Day)
		assert.LessOrEqual(t, d.TotalLoss, 0.0)
		if i == 0 {
			assert.Equal(t, d.TodayAirdropTotal, d.CumulativeAirdrop)
			continue
		}
		prev := out[i-1]
		assert.Equal(t, prev.EndCapital, d.StartCapital, "day %d", d.Day)
		assert.Equal(t, prev.CumulativeAirdrop+d.TodayAirdropTotal, d.CumulativeAirdrop, "day %d", d.Day)
	}
}

func TestRun_ActiveNodeIdentity(t *testing.T) {
	t.Parallel()

	out := runDefault(t, 365)

	issued, expired := 0, 0
	for _, d := range out {
		issued += d.NewNodesToday
		expired += d.ExpiredNodes
		assert.Equal(t, issued-d.WaitingNodes-expired, d.ActiveNodes, "day %d", d.Day)
		assert.GreaterOrEqual(t, d.ActiveNodes, 0, "day %d", d.Day)
		assert.GreaterOrEqual(t, d.WaitingNodes, 0, "day %d", d.Day)
	}
}

func TestRun_WaitingWindow(t *testing.T) {
	t.Parallel()

	out := runDefault(t, 60)
	delay := DefaultSettings().NodeActivationDelay

	for _, d := range out {
		want := 0
		for p := d.Day - delay + 1; p <= d.Day; p++ {
			if p >= 1 {
				want += out[p-1].NewNodesToday
			}
		}
		assert.Equal(t, want, d.WaitingNodes, "day %d", d.Day)
	}
}

func TestRun_CohortLifecycle(t *testing.T) {
	t.Parallel()

	const days = 120
	s := DefaultSettings()
	out := runDefault(t, days)

	activated := make([]int, days+1)
	expiredOn := make([]int, days+1)
	for _, d := range out {
		if d.NewNodesToday == 0 {
			continue
		}
		if a := d.Day + s.NodeActivationDelay; a <= days {
			activated[a] += d.NewNodesToday
		}
		if e := d.Day + s.NodeExpiryDays; e <= days {
			expiredOn[e] += d.NewNodesToday
		}
	}

	for _, d := range out {
		assert.Equal(t, activated[d.Day], d.NewlyActivatedNodes, "activated on day %d", d.Day)
		assert.Equal(t, expiredOn[d.Day], d.ExpiredNodes, "expired on day %d", d.Day)
	}

	// Issuance tapers off as capital shrinks: 2 a day, then 1, then none.
	assert.Equal(t, 2, out[0].NewNodesToday)
	assert.Equal(t, 2, out[16].NewNodesToday)
	assert.Equal(t, 1, out[17].NewNodesToday)
	assert.Equal(t, 1, out[55].NewNodesToday)
	assert.Equal(t, 0, out[56].NewNodesToday)
}

func TestRun_SixtyDays(t *testing.T) {
	t.Parallel()

	out := runDefault(t, 60)

	// Day 1's cohort of 2 activates on day 4 and expires on day 54.
	assert.Zero(t, out[2].NewlyActivatedNodes)
	assert.Equal(t, 2, out[3].NewlyActivatedNodes)
	assert.Equal(t, 2, out[3].ActiveNodes)
	assert.Zero(t, out[52].ExpiredNodes)
	assert.Equal(t, 2, out[53].ExpiredNodes)

	// Nothing is paid before the first activation.
	for _, d := range out[:3] {
		assert.Zero(t, d.TodayAirdropTotal, "day %d", d.Day)
	}
	assert.InDelta(t, 0.2067*2, out[3].TodayAirdropTotal, 1e-12)
	assert.InDelta(t, (0.2267+0.2067)*2, out[4].TodayAirdropTotal, 1e-12)
	assert.InDelta(t, 0.4134, out[3].CumulativeAirdrop, 1e-12)

	for _, d := range out[3:] {
		assert.Greater(t, d.TodayAirdropTotal, 0.0, "day %d", d.Day)
	}
}

func TestRun_CohortPaysFullSchedule(t *testing.T) {
	t.Parallel()

	// Every cohort is fully paid out well before day 200.
	out := runDefault(t, 200)
	last := out[len(out)-1]

	issued := 0
	for _, d := range out {
		issued += d.NewNodesToday
	}
	assert.Equal(t, 73, issued)
	assert.Zero(t, last.ActiveNodes)
	assert.Zero(t, last.TodayAirdropTotal)
	assert.InDelta(t, 100.0*float64(issued), last.CumulativeAirdrop, 1e-6)
}

func TestRun_MatchesReference(t *testing.T) {
	t.Parallel()

	cases := map[string]Settings{
		"defaults": DefaultSettings(),
	}

	s, err := NewSettings(50000, 10, 60, 90, WithNodeActivationDelay(0), WithNodeExpiryDays(1))
	require.NoError(t, err)
	cases["no_delay_short_expiry"] = s

	s, err = NewSettings(250000, 50, 40, 120, WithNodeActivationDelay(7), WithNodeExpiryDays(80), WithNodeCost(37.5))
	require.NoError(t, err)
	cases["long_delay_cheap_nodes"] = s

	s, err = NewSettings(1000, 1, 200, 0)
	require.NoError(t, err)
	cases["no_losses"] = s

	for name, cfg := range cases {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Run(cfg, 365)
			require.NoError(t, err)
			want := referenceRun(cfg, 365)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i], got[i], "day %d", i+1)
			}
		})
	}
}

func TestRun_UnboundedNodeLifetimes(t *testing.T) {
	t.Parallel()

	// No cohort expires within the run, so any expiry past it gives the
	// same ledger.
	base, err := NewSettings(10000, 25, 75, 30, WithNodeExpiryDays(1000))
	require.NoError(t, err)
	want, err := Run(base, 365)
	require.NoError(t, err)

	for _, expiry := range []int{100_000_000, 1 << 50, math.MaxInt} {
		s, err := NewSettings(10000, 25, 75, 30, WithNodeExpiryDays(expiry))
		require.NoError(t, err)

		got, err := Run(s, 365)
		require.NoError(t, err, "expiry %d", expiry)
		assert.Equal(t, want, got, "expiry %d", expiry)
	}

	s, err := NewSettings(10000, 25, 75, 30,
		WithNodeActivationDelay(math.MaxInt-1), WithNodeExpiryDays(math.MaxInt))
	require.NoError(t, err)
	days, err := Run(s, 30)
	require.NoError(t, err)
	var issued int
	for _, d := range days {
		issued += d.NewNodesToday
		assert.Equal(t, issued, d.WaitingNodes, "day %d", d.Day)
		assert.Zero(t, d.ActiveNodes, "day %d", d.Day)
		assert.Zero(t, d.NewlyActivatedNodes, "day %d", d.Day)
		assert.Zero(t, d.TodayAirdropTotal, "day %d", d.Day)
	}
	assert.Positive(t, issued)
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	a := runDefault(t, 200)
	b := runDefault(t, 200)
	assert.Equal(t, a, b)

	sim, err := NewSimulator(DefaultSettings())
	require.NoError(t, err)
	first, err := sim.Run(200)
	require.NoError(t, err)
	second, err := sim.Run(200)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, a, first)
}

func TestSimulator_Step(t *testing.T) {
	t.Parallel()

	sim, err := NewSimulator(DefaultSettings())
	require.NoError(t, err)
	assert.Zero(t, sim.Day())

	var streamed []DayResult
	for i := 0; i < 90; i++ {
		streamed = append(streamed, sim.Step())
	}
	assert.Equal(t, 90, sim.Day())
	assert.Equal(t, runDefault(t, 90), streamed)
	assert.Equal(t, streamed, sim.History())
}

func TestSimulator_HistoryIsCopy(t *testing.T) {
	t.Parallel()

	sim, err := NewSimulator(DefaultSettings())
	require.NoError(t, err)
	sim.Step()

	h := sim.History()
	h[0].EndCapital = -1
	assert.NotEqual(t, -1.0, sim.History()[0].EndCapital)
}

func TestSimulator_Reset(t *testing.T) {
	t.Parallel()

	sim, err := NewSimulator(DefaultSettings())
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		sim.Step()
	}
	sim.Reset()
	assert.Zero(t, sim.Day())
	assert.Equal(t, runDefault(t, 1)[0], sim.Step())
}
