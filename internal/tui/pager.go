// Package tui is a terminal pager for a projection run. Rows are
// revealed a batch at a time as the view reaches the bottom.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/nodesim/report"
	"github.com/rustyeddy/nodesim/sim"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	colHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const (
	headerHeight = 2 // summary bar and column titles
	footerHeight = 1
)

// Model is the pager state. The Paginator is owned by the model.
type Model struct {
	run    report.Run
	pager  *report.Paginator
	rows   [][]string
	widths []int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// New returns a pager over days.
func New(run report.Run, days []sim.DayResult) Model {
	m := Model{
		run:   run,
		pager: report.NewPaginator(days, report.BatchSize),
	}
	m.widths = make([]int, len(report.Columns))
	for i, c := range report.Columns {
		m.widths[i] = lipgloss.Width(c.Title)
	}
	m.loadMore()
	return m
}

// Loaded is the number of rows revealed so far.
func (m Model) Loaded() int { return m.pager.Loaded() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "G", "end":
			if m.ready {
				m.viewport.GotoBottom()
			}
		case "g", "home":
			if m.ready {
				m.viewport.GotoTop()
			}
		default:
			if m.ready {
				m.viewport, cmd = m.viewport.Update(msg)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(m.height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.renderRows())

	default:
		if m.ready {
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}

	if m.ready && m.pager.HasMore() && m.viewport.AtBottom() {
		m.loadMore()
		m.viewport.SetContent(m.renderRows())
	}
	return m, cmd
}

func (m *Model) loadMore() {
	for _, d := range m.pager.Next() {
		row := report.Row(d)
		for i, cell := range row {
			m.widths[i] = max(m.widths[i], lipgloss.Width(cell))
		}
		m.rows = append(m.rows, row)
	}
}

func (m Model) renderRows() string {
	var b strings.Builder
	for i, row := range m.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			padded := fmt.Sprintf("%*s", m.widths[j], cell)
			switch {
			case !report.Columns[j].Signed:
				b.WriteString(padded)
			case strings.HasPrefix(cell, "-"):
				b.WriteString(lossStyle.Render(padded))
			default:
				b.WriteString(gainStyle.Render(padded))
			}
		}
	}
	return b.String()
}

func (m Model) renderTitles() string {
	cells := make([]string, len(report.Columns))
	for i, c := range report.Columns {
		cells[i] = fmt.Sprintf("%*s", m.widths[i], c.Title)
	}
	return colHeaderStyle.Render(strings.Join(cells, "  "))
}

func (m Model) summaryBar() string {
	sum := m.run.Summary
	return fmt.Sprintf(" Final capital %s   Net profit %s   Airdrop %s   Active nodes %d ",
		report.FormatNumber(sum.FinalTotalCapital, 0),
		report.FormatNumber(sum.NetProfit, 0),
		report.FormatNumber(sum.TotalAirdrop, 2),
		sum.ActiveNodes,
	)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := fmt.Sprintf(" rows %d/%d   q quit  G bottom  g top", m.pager.Loaded(), m.pager.Total())
	if m.pager.HasMore() {
		footer += "   (scroll for more)"
	}

	horizontal := func(s string) string {
		if m.width <= 0 {
			return s
		}
		return lipgloss.NewStyle().MaxWidth(m.width).Render(s)
	}

	return strings.Join([]string{
		headerStyle.Render(horizontal(m.summaryBar())),
		horizontal(m.renderTitles()),
		m.viewport.View(),
		dimStyle.Render(footer),
	}, "\n")
}

// Run shows the pager full screen until the user quits.
func Run(run report.Run, days []sim.DayResult) error {
	p := tea.NewProgram(New(run, days), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}
