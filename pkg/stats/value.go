package stats

import (
	"math"
	"strconv"
	"strings"
)

// unitSuffixes are stripped from textual values before parsing. Longer
// suffixes go first.
var unitSuffixes = []string{"meq%", "mg/kg", "%"}

type valueKind int

const (
	missingValue valueKind = iota
	numberValue
	markerValue
)

// Value is a reading value: a number, a non-numeric marker such as "n/a",
// or nothing at all.
type Value struct {
	kind   valueKind
	num    float64
	marker string
}

// Number creates a numeric Value. NaN and infinities are kept as markers.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Marker(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return Value{kind: numberValue, num: f}
}

// Marker creates a non-numeric Value.
func Marker(s string) Value {
	return Value{kind: markerValue, marker: s}
}

// Missing creates an empty Value.
func Missing() Value {
	return Value{}
}

// ParseValue converts a lab sheet cell to a Value. Unit decorations are
// stripped, everything that is still not a number becomes a marker.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing()
	}
	num := s
	for _, u := range unitSuffixes {
		num = strings.TrimSpace(strings.TrimSuffix(num, u))
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Marker(s)
	}
	return Number(f)
}

// Float returns the numeric value. The second value is false for markers
// and missing values.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == numberValue
}

// IsMissing is true if no value was given.
func (v Value) IsMissing() bool {
	return v.kind == missingValue
}

func (v Value) String() string {
	switch v.kind {
	case numberValue:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case markerValue:
		return v.marker
	default:
		return ""
	}
}
