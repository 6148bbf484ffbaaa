package gap

import (
	"fmt"
	"math"
)

// Thresholds of absolute percent gap. Both upper bounds are inclusive.
const (
	BalancedMax = 5.0
	LowMax      = 15.0
)

// Severity of a gap. The numeric value is the ranking order.
type Severity int

const (
	Critical Severity = iota
	Low
	Balanced
	Undefined
)

var severityLabels = map[Severity]string{
	Critical:  "Critical",
	Low:       "Low",
	Balanced:  "Balanced",
	Undefined: "Undefined",
}

// Severities lists all severities in ranking order.
var Severities = []Severity{Critical, Low, Balanced, Undefined}

func (s Severity) String() string {
	if res, ok := severityLabels[s]; ok {
		return res
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// NewSeverity converts a label to a Severity.
func NewSeverity(s string) (Severity, bool) {
	for k, v := range severityLabels {
		if v == s {
			return k, true
		}
	}
	return Undefined, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if _, ok := severityLabels[s]; !ok {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	res, ok := NewSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = res
	return nil
}

// Classify returns the severity of an absolute percent gap:
//
//	abs <= 5        Balanced
//	5 < abs <= 15   Low
//	abs > 15        Critical
//
// NaN gives Undefined.
func Classify(abs float64) Severity {
	switch {
	case math.IsNaN(abs):
		return Undefined
	case abs <= BalancedMax:
		return Balanced
	case abs <= LowMax:
		return Low
	default:
		return Critical
	}
}
