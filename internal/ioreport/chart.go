package ioreport

import (
	"bytes"
	"image/color"

	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/standards"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var severityColors = map[gap.Severity]color.RGBA{
	gap.Critical: {R: 200, G: 40, B: 40, A: 255},
	gap.Low:      {R: 230, G: 160, B: 20, A: 255},
	gap.Balanced: {R: 40, G: 150, B: 70, A: 255},
}

// Chart draws absolute percent gaps of prioritized records as a PNG bar
// chart. Bars keep the table order and are colored by severity, dashed
// lines mark severity thresholds. Tables without prioritized records give
// nil.
func Chart(t *gaptable.Table, width, height vg.Length) ([]byte, error) {
	recs := t.Prioritized()
	if len(recs) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Gap from recommended minimum"
	p.Y.Label.Text = "|Gap %|"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Parameter
		if r.Category == standards.Soil {
			names[i] += " (soil)"
		}
	}

	// Records are sorted by severity, so every severity is a contiguous
	// group of bars.
	start := 0
	for start < len(recs) {
		sev := recs[start].Severity
		end := start
		var vals plotter.Values
		for end < len(recs) && recs[end].Severity == sev {
			vals = append(vals, *recs[end].AbsPercentGap)
			end++
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(18))
		if err != nil {
			return nil, ChartError(err)
		}
		bars.XMin = float64(start)
		bars.Color = severityColors[sev]
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(sev.String(), bars)
		start = end
	}

	for _, y := range []float64{gap.BalancedMax, gap.LowMax} {
		line, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: y},
			{X: float64(len(recs)) - 0.5, Y: y},
		})
		if err != nil {
			return nil, ChartError(err)
		}
		line.Color = color.Gray{Y: 110}
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(line)
	}

	p.Legend.Top = true
	p.NominalX(names...)

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, ChartError(err)
	}
	var buf bytes.Buffer
	if _, err = wt.WriteTo(&buf); err != nil {
		return nil, ChartError(err)
	}
	return buf.Bytes(), nil
}
