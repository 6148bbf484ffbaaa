// Package upload validates analysis input and converts it to labeled
// measurements. It accepts either pre-aggregated averages or raw
// per-sample values:
//
//	{
//	  "soil": {
//	    "Nitrogen (%)": {"average": 0.08, "sample_count": 5},
//	    "Avail. P mg/kg": {"values": [12, "n/a", 14]}
//	  },
//	  "leaf": [
//	    {"sample_no": "S1", "N %": 2.3, "K %": "0.85"},
//	    {"sample_no": "S2", "N %": 2.5, "K %": "-"}
//	  ]
//	}
package upload

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/gnames/gnfmt"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/stats"
)

// idFields are keys of a sample row that identify a sample instead of
// carrying a measurement.
var idFields = []string{"sample_no", "sample_id", "lab_no"}

// Upload is validated analysis input.
type Upload struct {
	Measurements []Measurement
}

// Measurement holds all data of one labeled parameter.
type Measurement struct {
	// Label is the parameter name as it was given.
	Label string

	Category standards.Category

	// Summary is set for pre-aggregated entries.
	Summary *Summary

	// Samples are raw values, empty for pre-aggregated entries.
	Samples []Sample
}

// Summary is a pre-aggregated statistic.
type Summary struct {
	Average     float64
	SampleCount int
}

// Sample is a raw value of a parameter.
type Sample struct {
	ID    string
	Value stats.Value
}

// ValidationError describes why input was rejected.
type ValidationError struct {
	// Path locates the offending element, e.g. "soil.pH.average".
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func invalid(path, format string, args ...any) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Parse decodes and validates JSON input. A document without data is
// valid and gives an empty Upload, a document of a wrong shape gives a
// *ValidationError.
func Parse(data []byte) (*Upload, error) {
	var doc any
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &doc); err != nil {
		return nil, invalid("", "input is not valid JSON: %v", err)
	}
	return FromMap(doc)
}

// FromMap validates an already decoded document.
func FromMap(doc any) (*Upload, error) {
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, invalid("", "top level must be an object, got %s", kind(doc))
	}

	seen := make(map[standards.Category]string)
	for k := range top {
		cat, ok := standards.NewCategory(k)
		if !ok {
			return nil, invalid(k, "unknown category, must be 'soil' or 'leaf'")
		}
		if prev, ok := seen[cat]; ok {
			return nil, invalid(k, "category is already given as %q", prev)
		}
		seen[cat] = k
	}

	res := &Upload{}
	for _, cat := range standards.Categories {
		raw, ok := findCategory(top, cat)
		if !ok || raw == nil {
			continue
		}

		var ms []Measurement
		var err error
		switch v := raw.(type) {
		case map[string]any:
			ms, err = parseEntries(cat, v)
		case []any:
			ms, err = parseRows(cat, v)
		default:
			err = invalid(cat.String(),
				"must be an object or an array, got %s", kind(raw))
		}
		if err != nil {
			return nil, err
		}
		res.Measurements = append(res.Measurements, ms...)
	}
	return res, nil
}

func findCategory(top map[string]any, cat standards.Category) (any, bool) {
	for k, v := range top {
		if c, _ := standards.NewCategory(k); c == cat {
			return v, true
		}
	}
	return nil, false
}

func parseEntries(
	cat standards.Category,
	entries map[string]any,
) ([]Measurement, error) {
	labels := make([]string, 0, len(entries))
	for k := range entries {
		labels = append(labels, k)
	}
	slices.Sort(labels)

	res := make([]Measurement, 0, len(labels))
	for _, label := range labels {
		path := cat.String() + "." + label
		m := Measurement{Label: label, Category: cat}

		switch v := entries[label].(type) {
		case map[string]any:
			if err := parseEntry(path, v, &m); err != nil {
				return nil, err
			}
		case []any:
			vals, err := parseValues(path, v)
			if err != nil {
				return nil, err
			}
			m.Samples = vals
		default:
			return nil, invalid(path,
				"must be an object or an array of values, got %s",
				kind(entries[label]))
		}
		res = append(res, m)
	}
	return res, nil
}

func parseEntry(path string, entry map[string]any, m *Measurement) error {
	avg, hasAvg := entry["average"]
	vals, hasVals := entry["values"]
	switch {
	case hasAvg && hasVals:
		return invalid(path, "has both 'average' and 'values'")
	case !hasAvg && !hasVals:
		return invalid(path, "requires 'average' or 'values'")
	case hasVals:
		arr, ok := vals.([]any)
		if !ok {
			return invalid(path+".values", "must be an array, got %s", kind(vals))
		}
		samples, err := parseValues(path+".values", arr)
		if err != nil {
			return err
		}
		m.Samples = samples
		return nil
	}

	average, ok := numeric(avg)
	if !ok {
		return invalid(path+".average", "must be a number, got %s", kind(avg))
	}

	cnt, ok := entry["sample_count"]
	if !ok {
		return invalid(path, "requires 'sample_count' with 'average'")
	}
	count, ok := numeric(cnt)
	if !ok || count < 1 || count != math.Trunc(count) {
		return invalid(path+".sample_count",
			"must be a positive integer, got %v", cnt)
	}

	m.Summary = &Summary{Average: average, SampleCount: int(count)}
	return nil
}

func parseValues(path string, arr []any) ([]Sample, error) {
	res := make([]Sample, 0, len(arr))
	for i, v := range arr {
		val, err := toValue(fmt.Sprintf("%s[%d]", path, i), v)
		if err != nil {
			return nil, err
		}
		res = append(res, Sample{ID: strconv.Itoa(i + 1), Value: val})
	}
	return res, nil
}

func parseRows(cat standards.Category, rows []any) ([]Measurement, error) {
	idx := make(map[string]int)
	var res []Measurement
	for i, r := range rows {
		path := fmt.Sprintf("%s[%d]", cat, i)
		row, ok := r.(map[string]any)
		if !ok {
			return nil, invalid(path, "sample row must be an object, got %s", kind(r))
		}

		id := sampleID(row, i)
		labels := make([]string, 0, len(row))
		for k := range row {
			if !slices.Contains(idFields, k) {
				labels = append(labels, k)
			}
		}
		slices.Sort(labels)

		for _, label := range labels {
			val, err := toValue(path+"."+label, row[label])
			if err != nil {
				return nil, err
			}
			j, ok := idx[label]
			if !ok {
				j = len(res)
				idx[label] = j
				res = append(res, Measurement{Label: label, Category: cat})
			}
			res[j].Samples = append(res[j].Samples, Sample{ID: id, Value: val})
		}
	}
	slices.SortFunc(res, func(a, b Measurement) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return res, nil
}

func sampleID(row map[string]any, i int) string {
	for _, f := range idFields {
		if v, ok := row[f]; ok && v != nil {
			switch id := v.(type) {
			case string:
				return id
			case float64:
				return strconv.FormatFloat(id, 'f', -1, 64)
			}
		}
	}
	return strconv.Itoa(i + 1)
}

func toValue(path string, v any) (stats.Value, error) {
	switch val := v.(type) {
	case nil:
		return stats.Missing(), nil
	case float64:
		return stats.Number(val), nil
	case string:
		return stats.ParseValue(val), nil
	default:
		return stats.Value{}, invalid(path,
			"value must be a number, a string or null, got %s", kind(v))
	}
}

func numeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		return stats.ParseValue(val).Float()
	default:
		return 0, false
	}
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
