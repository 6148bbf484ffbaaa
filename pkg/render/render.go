// Package render formats gap table values for presentation. Every
// surface (terminal view, printable report, exports) takes its rows from
// here, so the same table always shows the same text in the same order.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
)

// NotAvailable is shown in place of an undefined percent gap.
const NotAvailable = "n/a"

// Column positions in a row.
const (
	ColParameter = iota
	ColCategory
	ColUnit
	ColAverage
	ColMin
	ColGap
	ColPercentGap
	ColAbsPercentGap
	ColSeverity
)

// Headers are column titles in row order.
var Headers = []string{
	"Parameter",
	"Category",
	"Unit",
	"Average",
	"Min",
	"Gap",
	"Gap %",
	"|Gap %|",
	"Severity",
}

// Cells returns formatted values of a record in column order.
func Cells(r gap.Record) []string {
	res := make([]string, len(Headers))
	res[ColParameter] = r.Parameter
	res[ColCategory] = r.Category.String()
	res[ColUnit] = r.Unit
	res[ColAverage] = Number(r.Average)
	res[ColMin] = Number(r.Min)
	res[ColGap] = Number(r.Gap)
	res[ColPercentGap] = Percent(r.PercentGap, true)
	res[ColAbsPercentGap] = Percent(r.AbsPercentGap, false)
	res[ColSeverity] = r.Severity.String()
	return res
}

// Rows returns formatted records of a table in table order.
func Rows(t *gaptable.Table) [][]string {
	res := make([][]string, 0, t.Len())
	for _, r := range t.Records() {
		res = append(res, Cells(r))
	}
	return res
}

// Number formats a measured value with three decimals and no trailing
// zeros.
func Number(f float64) string {
	res := strconv.FormatFloat(f, 'f', 3, 64)
	res = strings.TrimRight(res, "0")
	res = strings.TrimSuffix(res, ".")
	if res == "-0" {
		return "0"
	}
	return res
}

// Percent formats a percent value with one decimal. Nil gives
// NotAvailable.
func Percent(f *float64, signed bool) string {
	if f == nil {
		return NotAvailable
	}
	format := "%.1f%%"
	if signed {
		format = "%+.1f%%"
	}
	res := fmt.Sprintf(format, *f)
	switch res {
	case "-0.0%", "+0.0%":
		return "0.0%"
	}
	return res
}

// Summary formats severity counts.
func Summary(c gaptable.Counts) string {
	parts := make([]string, 0, len(gap.Severities)+1)
	for _, s := range gap.Severities {
		parts = append(parts, fmt.Sprintf("%s: %d", s, c.Of(s)))
	}
	parts = append(parts, fmt.Sprintf("Total: %d", c.Total))
	return strings.Join(parts, ", ")
}

// Range formats a recommended range, e.g. "2.4-2.8" or ">= 15".
func Range(r gap.Record) string {
	if r.Max == nil {
		return ">= " + Number(r.Min)
	}
	return Number(r.Min) + "-" + Number(*r.Max)
}
