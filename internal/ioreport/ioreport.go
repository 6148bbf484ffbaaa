// Package ioreport renders a gap table as a printable PDF report with a
// severity summary, the ranked table and a bar chart of gaps.
package ioreport

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/nutrigap/internal/iofs"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/render"
	"github.com/jung-kurt/gofpdf"
	"gonum.org/v1/plot/vg"
)

const (
	margin     = 15.0
	lineHeight = 6.0
	font       = "Helvetica"
	chartName  = "gap-chart"
)

// relative widths of table columns
var colWeights = []float64{2.2, 1, 1, 1, 1, 1, 1, 1, 1.2}

var severityRGB = map[gap.Severity][3]int{
	gap.Critical:  {180, 30, 30},
	gap.Low:       {190, 120, 0},
	gap.Balanced:  {30, 120, 50},
	gap.Undefined: {110, 110, 110},
}

// Options of a report.
type Options struct {
	// Title is printed at the top of the first page.
	Title string

	// PageSize is "A4" or "Letter".
	PageSize string

	// Source describes the analyzed input.
	Source string

	// CreatedAt is printed in the header, zero value means now.
	CreatedAt time.Time

	// Diagnostics are listed after the table when given.
	Diagnostics *engine.Diagnostics
}

// Rows returns table rows as they are printed in the report.
func Rows(t *gaptable.Table) [][]string {
	return render.Rows(t)
}

// Write renders the report to w.
func Write(w io.Writer, t *gaptable.Table, opts Options) error {
	pageSize := opts.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	created := opts.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	pdf := gofpdf.New("L", "mm", pageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin + 3)
		pdf.SetFont(font, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		footer := fmt.Sprintf("Generation %s  |  page %d/{nb}",
			t.GenerationID(), pdf.PageNo())
		pdf.CellFormat(0, 5, footer, "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*margin

	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(contentW, 10, tr(opts.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(font, "", 10)
	var meta []string
	if opts.Source != "" {
		meta = append(meta, "Source: "+opts.Source)
	}
	meta = append(meta,
		"Reference standards: "+t.ReferenceVersion(),
		"Created: "+created.Format("2006-01-02 15:04"),
	)
	pdf.MultiCell(contentW, 5, tr(strings.Join(meta, "\n")), "", "L", false)
	pdf.Ln(2)

	summary(pdf, t.Counts(), contentW)

	if t.IsEmpty() {
		pdf.SetFont(font, "I", 11)
		pdf.CellFormat(contentW, 10,
			"No parameters could be compared with reference standards.",
			"", 1, "L", false, 0, "")
	} else {
		gapTable(pdf, t, contentW, tr)
		if err := chart(pdf, t, contentW); err != nil {
			return err
		}
	}

	if opts.Diagnostics != nil && !opts.Diagnostics.IsEmpty() {
		diagnostics(pdf, opts.Diagnostics, contentW, tr)
	}

	if err := pdf.Output(w); err != nil {
		return RenderError(err)
	}
	return nil
}

// WriteFile renders the report to a file.
func WriteFile(path string, t *gaptable.Table, opts Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, t, opts); err != nil {
		return err
	}
	if err := iofs.WriteFile(path, buf.Bytes()); err != nil {
		return err
	}
	slog.Info("Report created", "path", path, "records", t.Len())
	return nil
}

func summary(pdf *gofpdf.Fpdf, c gaptable.Counts, width float64) {
	cellW := width / float64(len(gap.Severities)+1)
	pdf.SetFont(font, "B", 11)
	for _, s := range gap.Severities {
		rgb := severityRGB[s]
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		label := fmt.Sprintf("%s: %d", s, c.Of(s))
		pdf.CellFormat(cellW, 8, label, "1", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(cellW, 8, fmt.Sprintf("Total: %d", c.Total),
		"1", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func gapTable(
	pdf *gofpdf.Fpdf,
	t *gaptable.Table,
	width float64,
	tr func(string) string,
) {
	var total float64
	for _, w := range colWeights {
		total += w
	}
	widths := make([]float64, len(colWeights))
	for i, w := range colWeights {
		widths[i] = width * w / total
	}

	header := func() {
		pdf.SetFont(font, "B", 9)
		pdf.SetFillColor(210, 210, 210)
		pdf.SetTextColor(0, 0, 0)
		for i, h := range render.Headers {
			pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	header()
	_, pageH := pdf.GetPageSize()
	for i, row := range Rows(t) {
		if pdf.GetY()+lineHeight > pageH-margin-5 {
			pdf.AddPage()
			header()
		}
		pdf.SetFont(font, "", 9)
		for j, cell := range row {
			align := "R"
			if j <= render.ColUnit {
				align = "L"
			}
			if j == render.ColSeverity {
				rgb := severityRGB[t.At(i).Severity]
				pdf.SetFont(font, "B", 9)
				pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
				align = "C"
			}
			pdf.CellFormat(widths[j], lineHeight, tr(cell),
				"1", 0, align, false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func chart(pdf *gofpdf.Fpdf, t *gaptable.Table, width float64) error {
	png, err := Chart(t, vg.Points(800), vg.Points(360))
	if err != nil || png == nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(chartName, opts, bytes.NewReader(png))

	h := width * 360 / 800
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-margin {
		pdf.AddPage()
	}
	pdf.ImageOptions(chartName, margin, pdf.GetY(), width, h,
		true, opts, 0, "")
	return nil
}

func diagnostics(
	pdf *gofpdf.Fpdf,
	d *engine.Diagnostics,
	width float64,
	tr func(string) string,
) {
	var lines []string
	for _, l := range d.Unmapped {
		lines = append(lines,
			fmt.Sprintf("Unrecognized %s parameter: %s", l.Category, l.Label))
	}
	for _, ex := range d.NoValidSamples {
		lines = append(lines, fmt.Sprintf(
			"No valid values for %s (%s), %d dropped",
			ex.Parameter, ex.Category, ex.Dropped))
	}
	for _, k := range d.ZeroMinimum {
		lines = append(lines, fmt.Sprintf(
			"Percent gap undefined for %s (%s), zero minimum",
			k.Parameter, k.Category))
	}
	for _, m := range d.Merged {
		lines = append(lines, fmt.Sprintf("%s (%s) combined from: %s",
			m.Parameter, m.Category, strings.Join(m.Labels, "; ")))
	}
	if d.DroppedValues > 0 {
		lines = append(lines, fmt.Sprintf(
			"Non-numeric or missing values ignored: %d", d.DroppedValues))
	}

	pdf.Ln(4)
	pdf.SetFont(font, "B", 12)
	pdf.CellFormat(width, 8, "Notes", "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 9)
	pdf.MultiCell(width, 5, tr(strings.Join(lines, "\n")), "", "L", false)
}
