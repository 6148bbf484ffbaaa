// Package gap compares parameter statistics with reference standards and
// ranks the results.
package gap

import (
	"math"

	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/stats"
)

const (
	gapDecimals     = 9
	percentDecimals = 6
)

// Record is the result of comparing one parameter with its standard.
type Record struct {
	Parameter   string             `json:"parameter"`
	Category    standards.Category `json:"category"`
	Unit        string             `json:"unit"`
	Average     float64            `json:"average"`
	SampleCount int                `json:"sampleCount"`

	// Min and Max are the recommended range, Max is nil when there is no
	// upper bound.
	Min float64  `json:"recommendedMin"`
	Max *float64 `json:"recommendedMax,omitempty"`

	// Gap is Average minus Min.
	Gap float64 `json:"gap"`

	// PercentGap is Gap relative to Min. It is nil when Min is zero.
	PercentGap *float64 `json:"percentGap"`

	// AbsPercentGap is the absolute value of PercentGap, nil when
	// PercentGap is nil.
	AbsPercentGap *float64 `json:"absPercentGap"`

	Severity Severity `json:"severity"`
	Position Position `json:"position"`
}

// Calculate compares a statistic with a standard. A zero minimum gives an
// Undefined record with a computed gap and no percent gap.
func Calculate(st stats.Statistic, std standards.Standard) Record {
	res := Record{
		Parameter:   st.Parameter,
		Category:    st.Category,
		Unit:        std.Unit,
		Average:     st.Average,
		SampleCount: st.Count,
		Min:         std.Min,
		Gap:         round(st.Average-std.Min, gapDecimals),
		Severity:    Undefined,
		Position:    position(st.Average, std),
	}
	if std.Max != nil {
		mx := *std.Max
		res.Max = &mx
	}

	if std.Min == 0 {
		return res
	}

	pct := round((st.Average-std.Min)/std.Min*100, percentDecimals)
	abs := math.Abs(pct)
	res.PercentGap = &pct
	res.AbsPercentGap = &abs
	res.Severity = Classify(abs)
	return res
}

// PercentDefined is false when the recommended minimum is zero.
func (r Record) PercentDefined() bool {
	return r.PercentGap != nil
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	res := r
	res.Max = cloneFloat(r.Max)
	res.PercentGap = cloneFloat(r.PercentGap)
	res.AbsPercentGap = cloneFloat(r.AbsPercentGap)
	return res
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	res := *f
	return &res
}

func position(avg float64, std standards.Standard) Position {
	switch {
	case avg < std.Min:
		return Below
	case std.Max != nil && avg > *std.Max:
		return Above
	default:
		return Within
	}
}

// round cuts floating point noise, so that 0.95 against 1.0 gives exactly
// 5 percent.
func round(f float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	res := math.Round(f*pow) / pow
	if res == 0 {
		return 0
	}
	return res
}
