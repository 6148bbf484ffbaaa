package ioview

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/gnames/nutrigap/pkg/render"
	"github.com/gnames/nutrigap/pkg/standards"
)

// StandardsHeaders are column titles of the reference standards table.
var StandardsHeaders = []string{"Parameter", "Category", "Min", "Max", "Unit"}

// StandardsRows formats reference standards in catalog order.
func StandardsRows(stds []standards.Standard) [][]string {
	res := make([][]string, len(stds))
	for i, s := range stds {
		mx := "-"
		if s.Max != nil {
			mx = render.Number(*s.Max)
		}
		res[i] = []string{
			s.Parameter,
			s.Category.String(),
			render.Number(s.Min),
			mx,
			s.Unit,
		}
	}
	return res
}

// Standards renders reference standards as a bordered table.
func Standards(tbl *standards.Table, cats ...standards.Category) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(StandardsHeaders...).
		Rows(StandardsRows(tbl.Standards(cats...))...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == ltable.HeaderRow {
				return s.Bold(true)
			}
			return s
		})

	title := "Reference standards " + tbl.Version()
	if src := tbl.Source(); src != "" {
		title += " (" + src + ")"
	}
	return titleStyle.Render(title) + "\n" + t.String() + "\n"
}
