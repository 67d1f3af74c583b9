package report

import "github.com/rustyeddy/nodesim/sim"

// BatchSize is the number of rows revealed per page.
const BatchSize = 50

// Paginator hands out a run's days in fixed-size batches. Each renderer
// owns its own Paginator; it is not safe for concurrent use.
type Paginator struct {
	rows   []sim.DayResult
	cursor int
	size   int
}

// NewPaginator pages over rows in batches of size. A non-positive size
// means BatchSize.
func NewPaginator(rows []sim.DayResult, size int) *Paginator {
	if size <= 0 {
		size = BatchSize
	}
	return &Paginator{rows: rows, size: size}
}

// Next returns the next batch and advances. It returns nil once every
// row has been handed out.
func (p *Paginator) Next() []sim.DayResult {
	if !p.HasMore() {
		return nil
	}
	end := min(p.cursor+p.size, len(p.rows))
	batch := p.rows[p.cursor:end]
	p.cursor = end
	return batch
}

// HasMore reports whether rows remain.
func (p *Paginator) HasMore() bool { return p.cursor < len(p.rows) }

// Loaded is the number of rows handed out so far.
func (p *Paginator) Loaded() int { return p.cursor }

// Total is the number of rows.
func (p *Paginator) Total() int { return len(p.rows) }

// BatchSize is the page size in use.
func (p *Paginator) BatchSize() int { return p.size }

// Reset rewinds to the first batch.
func (p *Paginator) Reset() { p.cursor = 0 }
