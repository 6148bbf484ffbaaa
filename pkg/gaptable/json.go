package gaptable

import (
	"fmt"

	"github.com/gnames/gnfmt"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/google/uuid"
)

type tableJSON struct {
	GenerationID     string       `json:"generationId"`
	ReferenceVersion string       `json:"referenceVersion"`
	Counts           Counts       `json:"counts"`
	Records          []gap.Record `json:"records"`
}

func (t *Table) toJSON() tableJSON {
	return tableJSON{
		GenerationID:     t.generationID,
		ReferenceVersion: t.referenceVersion,
		Counts:           t.counts,
		Records:          t.records,
	}
}

// MarshalJSON implements json.Marshaler.
func (t *Table) MarshalJSON() ([]byte, error) {
	return t.Encode(false)
}

// Encode serializes the table to JSON.
func (t *Table) Encode(pretty bool) ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: pretty}
	return enc.Encode(t.toJSON())
}

// Decode restores a table serialized by Encode. Values are taken
// verbatim, nothing is recomputed or reordered.
func Decode(data []byte) (*Table, error) {
	var tj tableJSON
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &tj); err != nil {
		return nil, fmt.Errorf("cannot decode gap table: %w", err)
	}
	if tj.GenerationID == "" {
		return nil, fmt.Errorf("cannot decode gap table: missing generation id")
	}
	if _, err := uuid.Parse(tj.GenerationID); err != nil {
		return nil, fmt.Errorf(
			"cannot decode gap table: bad generation id %q: %w",
			tj.GenerationID, err,
		)
	}
	if tj.Counts.Total != len(tj.Records) {
		return nil, fmt.Errorf(
			"cannot decode gap table: total %d does not match %d records",
			tj.Counts.Total, len(tj.Records),
		)
	}

	res := &Table{
		records:          tj.Records,
		counts:           tj.Counts,
		generationID:     tj.GenerationID,
		referenceVersion: tj.ReferenceVersion,
	}
	if res.records == nil {
		res.records = []gap.Record{}
	}
	return res, nil
}
