package ioview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/render"
)

const maxHeight = 20

// Model is an interactive gap table. Tab cycles a severity filter, the
// filter never changes the order of rows.
type Model struct {
	title  string
	gt     *gaptable.Table
	rows   [][]string
	table  table.Model
	filter *gap.Severity
}

// New creates a Model for a gap table.
func New(t *gaptable.Table, title string) Model {
	rows := Rows(t)
	height := min(len(rows)+1, maxHeight)

	tbl := table.New(
		table.WithColumns(Columns(rows)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	tbl.SetStyles(s)

	res := Model{title: title, gt: t, rows: rows, table: tbl}
	res.applyFilter()
	return res
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.nextFilter()
			m.applyFilter()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	filter := "all"
	if m.filter != nil {
		filter = m.filter.String()
	}
	help := fmt.Sprintf(
		"showing: %s • tab: filter • ↑/↓: move • q: quit", filter,
	)
	return titleStyle.Render(m.title) + "\n" +
		m.table.View() + "\n" +
		render.Summary(m.gt.Counts()) + "\n" +
		helpStyle.Render(help) + "\n"
}

// VisibleRows returns rows that pass the current filter.
func (m Model) VisibleRows() [][]string {
	res := make([][]string, 0, len(m.rows))
	for i, row := range m.rows {
		if m.filter != nil && m.gt.At(i).Severity != *m.filter {
			continue
		}
		res = append(res, row)
	}
	return res
}

func (m *Model) nextFilter() {
	if m.filter == nil {
		s := gap.Severities[0]
		m.filter = &s
		return
	}
	for i, s := range gap.Severities {
		if s != *m.filter {
			continue
		}
		if i == len(gap.Severities)-1 {
			m.filter = nil
			return
		}
		next := gap.Severities[i+1]
		m.filter = &next
		return
	}
}

func (m *Model) applyFilter() {
	visible := m.VisibleRows()
	rows := make([]table.Row, len(visible))
	for i, r := range visible {
		rows[i] = table.Row(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Run shows the table until the user quits.
func Run(t *gaptable.Table, title string) error {
	p := tea.NewProgram(New(t, title))
	if _, err := p.Run(); err != nil {
		return RenderError(err)
	}
	return nil
}
