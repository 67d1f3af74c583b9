package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRunOrg(t *testing.T) {
	t.Parallel()

	run, _ := testRun(t, "01JORG0000000000000000000A", 60)
	result := FormatRunOrg(run)

	assert.Contains(t, result, "** Run: 60 days (01JORG00)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":RUN_ID: 01JORG0000000000000000000A")
	assert.Contains(t, result, ":CREATED: [2026-01-05 Mon 09:30]")
	assert.Contains(t, result, ":INITIAL_INVESTMENT: 10000.00")
	assert.Contains(t, result, ":LEVERAGE: 25")
	assert.Contains(t, result, ":SEED_PCT: 1.00")
	assert.Contains(t, result, ":NODE_EXPIRY: 53")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "| Initial capital     | 9000.00 |")
	assert.Contains(t, result, "| Nodes issued        | 73 |")
	assert.Contains(t, result, "| Nodes expired       | 14 |")
	assert.Contains(t, result, "*** Notes")
}

func TestFormatRunOrgStructure(t *testing.T) {
	t.Parallel()

	run, _ := testRun(t, "01JORG0000000000000000000B", 5)
	lines := strings.Split(FormatRunOrg(run), "\n")
	require.Greater(t, len(lines), 10)

	assert.True(t, strings.HasPrefix(lines[0], "** Run:"))
	assert.Equal(t, ":PROPERTIES:", lines[1])

	end, summary := -1, -1
	for i, line := range lines {
		if line == ":END:" && end < 0 {
			end = i
		}
		if line == "*** Summary" {
			summary = i
		}
	}
	assert.Greater(t, end, 1)
	assert.Greater(t, summary, end)
}

func TestFormatRunsOrg(t *testing.T) {
	t.Parallel()

	a, _ := testRun(t, "01JORG0000000000000000000C", 3)
	b, _ := testRun(t, "01JORG0000000000000000000D", 4)

	result := FormatRunsOrg([]RunRecord{a, b})
	assert.Contains(t, result, a.RunID)
	assert.Contains(t, result, b.RunID)
	assert.Len(t, strings.Split(result, "\n\n\n"), 2)

	assert.Empty(t, FormatRunsOrg(nil))
	assert.NotContains(t, FormatRunsOrg([]RunRecord{a}), "\n\n\n")
}

func TestWriteRunOrg(t *testing.T) {
	t.Parallel()

	run, _ := testRun(t, "01JORG0000000000000000000E", 3)
	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, WriteRunOrg(path, run))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatRunOrg(run), string(data))
}
