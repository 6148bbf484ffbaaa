// Package engine runs nutrient gap analysis. It resolves labels, reduces
// samples to statistics, compares them with reference standards and
// builds the ranked gap table.
//
// The engine does no I/O and keeps no mutable state, one Engine can serve
// any number of concurrent analyses.
package engine

import (
	"cmp"
	"slices"

	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/param"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/stats"
	"github.com/gnames/nutrigap/pkg/upload"
)

// Engine holds reference data of an analysis.
type Engine struct {
	table *standards.Table
	std   *param.Standardizer
}

// New creates an Engine from a validated catalog.
func New(cat *standards.Catalog) *Engine {
	return &Engine{
		table: cat.Table(),
		std:   param.New(cat),
	}
}

// Standards returns reference standards used by the engine.
func (e *Engine) Standards() *standards.Table {
	return e.table
}

// Standardizer returns the label resolver used by the engine.
func (e *Engine) Standardizer() *param.Standardizer {
	return e.std
}

// Result of an analysis.
type Result struct {
	Table       *gaptable.Table `json:"table"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

// Analyze computes the gap table for an upload. Problems with individual
// parameters never fail the analysis, they are reported in Diagnostics.
// An error means the table itself could not be built.
func (e *Engine) Analyze(up *upload.Upload) (Result, error) {
	var diag Diagnostics
	var readings []stats.Reading
	summaries := make(map[standards.Key][]stats.Statistic)
	labels := make(map[standards.Key][]string)

	for _, m := range up.Measurements {
		name, ok := e.std.Standardize(m.Category, m.Label)
		if !ok {
			diag.Unmapped = append(diag.Unmapped, Label{
				Label:    m.Label,
				Category: m.Category,
			})
			continue
		}
		key := standards.Key{Parameter: name, Category: m.Category}
		labels[key] = append(labels[key], m.Label)

		if m.Summary != nil {
			summaries[key] = append(summaries[key], stats.FromSummary(
				name, m.Category, m.Summary.Average, m.Summary.SampleCount,
			))
			continue
		}
		for _, s := range m.Samples {
			readings = append(readings, stats.Reading{
				Parameter: name,
				Category:  m.Category,
				Value:     s.Value,
				SampleID:  s.ID,
			})
		}
	}

	sts := e.statistics(readings, summaries, &diag)

	records := make([]gap.Record, 0, len(sts))
	for _, st := range sts {
		key := standards.Key{Parameter: st.Parameter, Category: st.Category}
		if ls := labels[key]; len(ls) > 1 {
			diag.Merged = append(diag.Merged, Merged{
				Parameter: st.Parameter,
				Category:  st.Category,
				Labels:    ls,
			})
		}

		std, ok := e.table.Lookup(st.Parameter, st.Category)
		if !ok {
			diag.NoStandard = append(diag.NoStandard, key)
			continue
		}
		rec := gap.Calculate(st, std)
		if !rec.PercentDefined() {
			diag.ZeroMinimum = append(diag.ZeroMinimum, key)
		}
		records = append(records, rec)
	}

	tbl, err := gaptable.Build(records, e.table.Version())
	if err != nil {
		return Result{}, err
	}
	return Result{Table: tbl, Diagnostics: diag}, nil
}

// statistics aggregates raw readings and merges them with pre-aggregated
// entries. The result is sorted by category and parameter.
func (e *Engine) statistics(
	readings []stats.Reading,
	summaries map[standards.Key][]stats.Statistic,
	diag *Diagnostics,
) []stats.Statistic {
	raw, excluded := stats.Aggregate(readings)

	all := summaries
	for _, st := range raw {
		key := standards.Key{Parameter: st.Parameter, Category: st.Category}
		all[key] = append([]stats.Statistic{st}, all[key]...)
		diag.DroppedValues += st.Dropped
	}

	for _, ex := range excluded {
		key := standards.Key{Parameter: ex.Parameter, Category: ex.Category}
		diag.DroppedValues += ex.Dropped
		if len(all[key]) > 0 {
			continue
		}
		diag.NoValidSamples = append(diag.NoValidSamples, ex)
	}

	keys := make([]standards.Key, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b standards.Key) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.Parameter, b.Parameter)
	})

	res := make([]stats.Statistic, 0, len(keys))
	for _, k := range keys {
		res = append(res, stats.Merge(all[k]...))
	}
	return res
}
