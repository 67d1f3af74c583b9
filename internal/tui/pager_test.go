package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/nodesim/report"
	"github.com/rustyeddy/nodesim/sim"
)

func newModel(t *testing.T, days int) Model {
	t.Helper()

	s := sim.DefaultSettings()
	results, err := sim.Run(s, days)
	require.NoError(t, err)
	return New(report.Run{Settings: s, Summary: sim.Summarize(results)}, results)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewLoadsFirstBatch(t *testing.T) {
	t.Parallel()

	m := newModel(t, 120)
	assert.Equal(t, 50, m.Loaded())
	assert.Equal(t, "Loading...", m.View())
}

func TestScrollToBottomLoadsNextBatch(t *testing.T) {
	t.Parallel()

	m := newModel(t, 120)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 20})
	assert.Equal(t, 50, m.Loaded())

	m, _ = update(t, m, key("G"))
	assert.Equal(t, 100, m.Loaded())

	m, _ = update(t, m, key("G"))
	assert.Equal(t, 120, m.Loaded())

	m, _ = update(t, m, key("G"))
	assert.Equal(t, 120, m.Loaded())
}

func TestShortRunFitsOnScreen(t *testing.T) {
	t.Parallel()

	m := newModel(t, 5)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 40})
	assert.Equal(t, 5, m.Loaded())

	view := m.View()
	assert.Contains(t, view, "rows 5/5")
	assert.NotContains(t, view, "scroll for more")
	assert.Contains(t, view, "Total Capital")
}

func TestTallWindowKeepsLoading(t *testing.T) {
	t.Parallel()

	m := newModel(t, 120)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 80})
	assert.Equal(t, 100, m.Loaded())
}

func TestViewShowsSummary(t *testing.T) {
	t.Parallel()

	m := newModel(t, 60)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 20})

	view := m.View()
	assert.Contains(t, view, "Active nodes")
	assert.Contains(t, view, "rows 50/60")
	assert.Contains(t, view, "scroll for more")
	assert.True(t, strings.Contains(view, "9,000"), "first row start capital is visible")
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := newModel(t, 10)
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, m, k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
