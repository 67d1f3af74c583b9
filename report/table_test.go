package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/nodesim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()

	days, err := sim.Run(sim.DefaultSettings(), 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, days))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Day")
	assert.Contains(t, lines[0], "Total Capital")
	assert.Contains(t, lines[1], "-270.00")
	assert.Contains(t, lines[1], "8,841")

	// Right-aligned columns give every line the same width.
	for _, l := range lines[1:] {
		assert.Equal(t, len(lines[0]), len(l))
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	s := sim.DefaultSettings()
	days, err := sim.Run(s, 60)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, Run{
		RunID:    "01JREP0000000000000000000A",
		Created:  time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		Settings: s,
		Summary:  sim.Summarize(days),
	})

	out := buf.String()
	assert.Contains(t, out, "Run ID:            01JREP0000000000000000000A")
	assert.Contains(t, out, "Created:           2026-02-01T08:00:00Z")
	assert.Contains(t, out, "Days:              60")
	assert.Contains(t, out, "Investment:        10,000")
	assert.Contains(t, out, "Insurance Reserve: 1,000")
	assert.Contains(t, out, "Futures Seed:      9,000")
	assert.Contains(t, out, "Leverage:          25x")
	assert.Contains(t, out, "Trades per Day:    105 (75 wins, 30 losses)")
	assert.Contains(t, out, "Nodes Issued:      73")
	assert.Contains(t, out, "Nodes Expired:     14")
}

func TestPrintSummaryWithoutRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSummary(&buf, Run{Settings: sim.DefaultSettings()})
	assert.NotContains(t, buf.String(), "Run ID:")
	assert.NotContains(t, buf.String(), "Created:")
}
