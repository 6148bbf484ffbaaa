package iotesting

import (
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/stats"
)

// SampleTable returns a gap table with every severity, an open ended
// standard and a zero minimum.
func SampleTable() *gaptable.Table {
	data := []struct {
		param string
		cat   standards.Category
		avg   float64
		min   float64
		max   float64
		unit  string
	}{
		{"Nitrogen", standards.Soil, 0.08, 0.10, 0.15, "%"},
		{"Available P", standards.Soil, 13.5, 15, 30, "mg/kg"},
		{"pH", standards.Soil, 4.62, 4.5, 5.5, "-"},
		{"K", standards.Leaf, 0.72, 0.9, 1.2, "%"},
		{"N", standards.Leaf, 2.52, 2.4, 2.8, "%"},
		{"B", standards.Leaf, 17, 15, 0, "mg/kg"},
		{"Salinity", standards.Soil, 0.4, 0, 2, "dS/m"},
	}

	recs := make([]gap.Record, 0, len(data))
	for _, d := range data {
		std := standards.Standard{
			Parameter: d.param,
			Category:  d.cat,
			Min:       d.min,
			Unit:      d.unit,
		}
		if d.max > 0 {
			mx := d.max
			std.Max = &mx
		}
		st := stats.Statistic{
			Parameter: d.param,
			Category:  d.cat,
			Average:   d.avg,
			Count:     3,
			Min:       d.avg,
			Max:       d.avg,
		}
		recs = append(recs, gap.Calculate(st, std))
	}
	return mustBuild(recs)
}

// EmptyTable returns a table without records.
func EmptyTable() *gaptable.Table {
	return mustBuild(nil)
}

func mustBuild(recs []gap.Record) *gaptable.Table {
	res, err := gaptable.Build(recs, "v1.0.0")
	if err != nil {
		panic(err)
	}
	return res
}
