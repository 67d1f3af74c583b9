// Package airdrop holds the per-node reward schedule paid to active
// insurance nodes.
package airdrop

// MaxActiveDay is the last active day that still pays a reward. A cohort
// stops earning once it has been active for more than MaxActiveDay days.
const MaxActiveDay = 50

// ratesByActiveDay[i] is the reward per node on active day i+1.
var ratesByActiveDay = [MaxActiveDay]float64{
	0.2067, 0.2267, 0.2467, 0.2667, 0.2867,
	0.31, 0.3333, 0.36, 0.3867, 0.4133,
	0.4467, 0.4834, 0.5166, 0.5566, 0.5966,
	0.6434, 0.69, 0.74, 0.7933, 0.8533,
	0.9167, 0.9833, 1.0567, 1.1334, 1.2167,
	1.3033, 1.4033, 1.5067, 1.6133, 1.73,
	1.8533, 1.9867, 2.13, 2.2866, 2.45,
	2.6267, 2.8166, 3.02, 3.2367, 3.4734,
	3.7233, 3.99, 4.28, 4.5866, 4.92,
	5.2733, 5.65, 6.0567, 6.49, 6.93,
}

// RateForActiveDay returns the reward per node for a cohort on its
// activeDay-th day of activity (1-based). Days outside [1, MaxActiveDay]
// pay nothing.
func RateForActiveDay(activeDay int) float64 {
	if activeDay < 1 || activeDay > MaxActiveDay {
		return 0
	}
	return ratesByActiveDay[activeDay-1]
}

// Rates returns a copy of the schedule in active-day order.
func Rates() []float64 {
	out := make([]float64, MaxActiveDay)
	copy(out, ratesByActiveDay[:])
	return out
}

// CohortTotal is the reward one node earns over its whole paying window.
func CohortTotal() float64 {
	var total float64
	for _, r := range ratesByActiveDay {
		total += r
	}
	return total
}
