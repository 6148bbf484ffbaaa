// Package ioview shows a gap table in a terminal, either as an
// interactive bubbletea table or as a static lipgloss rendering.
package ioview

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/render"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headStyle  = lipgloss.NewStyle().Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	severityStyles = map[gap.Severity]lipgloss.Style{
		gap.Critical:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		gap.Low:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		gap.Balanced:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		gap.Undefined: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// Rows returns table rows as they are shown in the terminal.
func Rows(t *gaptable.Table) [][]string {
	return render.Rows(t)
}

// Columns sizes columns to fit headers and rows.
func Columns(rows [][]string) []table.Column {
	res := make([]table.Column, len(render.Headers))
	for i, h := range render.Headers {
		res[i] = table.Column{Title: h, Width: runewidth.StringWidth(h)}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > res[i].Width {
				res[i].Width = w
			}
		}
	}
	return res
}

// Static renders the table for non-interactive output. Severity cells
// are colored when the terminal supports it.
func Static(t *gaptable.Table, title string) string {
	rows := Rows(t)
	cols := Columns(rows)

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}

	head := make([]string, len(cols))
	for i, c := range cols {
		head[i] = pad(c.Title, c.Width)
	}
	b.WriteString(headStyle.Render(strings.Join(head, "  ")))
	b.WriteString("\n")

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, cols[j].Width)
		}
		sev := t.At(i).Severity
		cells[render.ColSeverity] = severityStyles[sev].
			Render(cells[render.ColSeverity])
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(render.Summary(t.Counts()))
	b.WriteString("\n")
	return b.String()
}

func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
