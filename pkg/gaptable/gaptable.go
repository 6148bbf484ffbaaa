// Package gaptable builds the ordered gap table. The table is the only
// artifact presentation layers read: they format its values and never
// classify, compute or reorder them.
package gaptable

import (
	"fmt"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/standards"
)

// Counts of records per severity.
type Counts struct {
	Critical  int `json:"critical"`
	Low       int `json:"low"`
	Balanced  int `json:"balanced"`
	Undefined int `json:"undefined"`
	Total     int `json:"total"`
}

// Of returns the count of a severity.
func (c Counts) Of(s gap.Severity) int {
	switch s {
	case gap.Critical:
		return c.Critical
	case gap.Low:
		return c.Low
	case gap.Balanced:
		return c.Balanced
	case gap.Undefined:
		return c.Undefined
	default:
		return 0
	}
}

// Table is an immutable, ordered set of gap records. Accessors return
// copies.
type Table struct {
	records          []gap.Record
	counts           Counts
	generationID     string
	referenceVersion string
}

// Build sorts a copy of the records, counts severities and stamps the
// table with a generation ID. The ID is derived from the reference
// version and the sorted records, identical input gives an identical
// table. It fails if records cannot be serialized, e.g. when they hold
// infinite numbers.
func Build(records []gap.Record, referenceVersion string) (*Table, error) {
	res := &Table{
		records:          make([]gap.Record, len(records)),
		referenceVersion: referenceVersion,
	}
	for i := range records {
		res.records[i] = records[i].Clone()
	}
	gap.Sort(res.records)

	for _, r := range res.records {
		switch r.Severity {
		case gap.Critical:
			res.counts.Critical++
		case gap.Low:
			res.counts.Low++
		case gap.Balanced:
			res.counts.Balanced++
		default:
			res.counts.Undefined++
		}
	}
	res.counts.Total = len(res.records)

	var err error
	res.generationID, err = generationID(referenceVersion, res.records)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func generationID(version string, records []gap.Record) (string, error) {
	enc := gnfmt.GNjson{}
	data, err := enc.Encode(records)
	if err != nil {
		return "", fmt.Errorf("cannot build gap table: %w", err)
	}
	return gnuuid.New(version + "\n" + string(data)).String(), nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// At returns the record at position i in ranking order.
func (t *Table) At(i int) gap.Record {
	return t.records[i].Clone()
}

// Records returns all records in ranking order.
func (t *Table) Records() []gap.Record {
	res := make([]gap.Record, len(t.records))
	for i := range t.records {
		res[i] = t.records[i].Clone()
	}
	return res
}

// Prioritized returns records with a defined severity in ranking order.
// Undefined records are left out.
func (t *Table) Prioritized() []gap.Record {
	var res []gap.Record
	for _, r := range t.records {
		if r.Severity == gap.Undefined {
			continue
		}
		res = append(res, r.Clone())
	}
	return res
}

// Severity returns the severity of a parameter. The second value is false
// if the parameter is not in the table.
func (t *Table) Severity(
	param string,
	cat standards.Category,
) (gap.Severity, bool) {
	for _, r := range t.records {
		if r.Parameter == param && r.Category == cat {
			return r.Severity, true
		}
	}
	return gap.Undefined, false
}

// Counts returns the number of records per severity.
func (t *Table) Counts() Counts {
	return t.counts
}

// GenerationID identifies the analysis run that produced the table.
func (t *Table) GenerationID() string {
	return t.generationID
}

// ReferenceVersion is the version of reference standards used.
func (t *Table) ReferenceVersion() string {
	return t.referenceVersion
}

// IsEmpty is true when the input had no comparable parameters.
func (t *Table) IsEmpty() bool {
	return len(t.records) == 0
}
