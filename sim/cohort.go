package sim

import "math"

// cohortRing keeps the issuance count of the most recent days. It holds
// at most window+1 days, enough for every activation, expiry and airdrop
// lookup of the current day, and grows only as days are pushed.
type cohortRing struct {
	counts []int
	size   int
	last   int // most recent day pushed, 0 before the first push
}

func newCohortRing(window int) *cohortRing {
	size := 1
	switch {
	case window >= math.MaxInt-1:
		size = math.MaxInt
	case window > 0:
		size = window + 1
	}
	return &cohortRing{size: size}
}

// push stores the issuance for the day after the last one pushed.
func (r *cohortRing) push(n int) {
	r.last++
	i := (r.last - 1) % r.size
	if i == len(r.counts) {
		r.counts = append(r.counts, n)
		return
	}
	r.counts[i] = n
}

// at returns the issuance recorded for day, or 0 when the day is before
// day 1, not pushed yet, or already evicted.
func (r *cohortRing) at(day int) int {
	if day < 1 || day > r.last || day <= r.last-r.size {
		return 0
	}
	return r.counts[(day-1)%r.size]
}

func (r *cohortRing) reset() {
	r.counts = r.counts[:0]
	r.last = 0
}
