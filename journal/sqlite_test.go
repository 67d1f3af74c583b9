package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','days')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["days"])
}

func TestSQLiteGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run, days := testRun(t, "01JSQL0000000000000000000A", 60)
	require.NoError(t, Record(j, run, days))

	got, err := j.GetRun(run.RunID)
	require.NoError(t, err)

	assert.Equal(t, run.RunID, got.RunID)
	assert.True(t, got.Created.Equal(run.Created))
	assert.Equal(t, 60, got.Days)
	assert.Equal(t, run.Settings, got.Settings)
	assert.Equal(t, run.Summary.TotalNodesIssued, got.Summary.TotalNodesIssued)
	assert.Equal(t, run.Summary.TotalNodesExpired, got.Summary.TotalNodesExpired)
	assert.Equal(t, run.Summary.Days, got.Summary.Days)
	assert.InDelta(t, run.Summary.FinalTotalCapital, got.Summary.FinalTotalCapital, 1e-9)
	assert.InDelta(t, run.Summary.TotalAirdrop, got.Summary.TotalAirdrop, 1e-9)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun("nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteListRuns(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	first, firstDays := testRun(t, "01JSQL0000000000000000000B", 3)
	second, secondDays := testRun(t, "01JSQL0000000000000000000C", 4)
	second.Created = second.Created.Add(time.Hour)

	require.NoError(t, Record(j, second, secondDays))
	require.NoError(t, Record(j, first, firstDays))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.RunID, runs[0].RunID)
	assert.Equal(t, second.RunID, runs[1].RunID)
}

func TestSQLiteListDays(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run, days := testRun(t, "01JSQL0000000000000000000D", 120)
	require.NoError(t, Record(j, run, days))

	tests := []struct {
		name     string
		offset   int
		limit    int
		wantLen  int
		firstDay int
	}{
		{"first page", 0, 50, 50, 1},
		{"second page", 50, 50, 50, 51},
		{"last partial page", 100, 50, 20, 101},
		{"past the end", 200, 50, 0, 0},
		{"no limit", 10, 0, 110, 11},
		{"negative offset", -5, 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.ListDays(run.RunID, tt.offset, tt.limit)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstDay, got[0].Day)
				assert.Equal(t, days[tt.firstDay-1], got[0])
			}
		})
	}
}

func TestSQLiteRecordDaySingle(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run, days := testRun(t, "01JSQL0000000000000000000E", 2)
	require.NoError(t, j.RecordRun(run))
	require.NoError(t, j.RecordDay(run.RunID, days[1]))

	got, err := j.ListDays(run.RunID, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, days[1], got[0])

	// (run_id, day) is the primary key.
	assert.Error(t, j.RecordDay(run.RunID, days[1]))
}
