package gap

import (
	"cmp"
	"slices"
)

// Sort orders records in place by severity rank, then by absolute percent
// gap from largest to smallest, then by parameter name and category. The
// order depends only on the records themselves.
func Sort(records []Record) {
	slices.SortStableFunc(records, Compare)
}

// Compare is the ranking order used by Sort.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.Severity, b.Severity); c != 0 {
		return c
	}
	if c := cmp.Compare(absValue(b), absValue(a)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Parameter, b.Parameter); c != 0 {
		return c
	}
	return cmp.Compare(a.Category, b.Category)
}

func absValue(r Record) float64 {
	if r.AbsPercentGap == nil {
		return -1
	}
	return *r.AbsPercentGap
}
