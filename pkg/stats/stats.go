// Package stats reduces raw readings to one representative statistic per
// parameter.
package stats

import (
	"cmp"
	"slices"

	"github.com/gnames/nutrigap/pkg/standards"
)

// Reading is one raw measurement of a parameter in a sample.
type Reading struct {
	// Parameter is a canonical parameter name.
	Parameter string

	// Category of the parameter.
	Category standards.Category

	// Value of the measurement.
	Value Value

	// SampleID identifies the sample, e.g. a lab number.
	SampleID string
}

// Statistic summarizes valid values of a parameter. It exists only if at
// least one valid value was found, or if a pre-aggregated average was
// supplied.
type Statistic struct {
	Parameter string
	Category  standards.Category

	// Average is the arithmetic mean of valid values.
	Average float64

	// Count is the number of valid values.
	Count int

	// Dropped is the number of non-numeric or missing values. It never
	// affects Average.
	Dropped int

	// Min and Max are the extremes of valid values. For pre-aggregated
	// statistics both are equal to Average.
	Min, Max float64
}

// Excluded describes a parameter that had readings but no valid value.
type Excluded struct {
	Parameter string             `json:"parameter"`
	Category  standards.Category `json:"category"`
	Dropped   int                `json:"dropped"`
}

// FromSummary creates a Statistic from an already computed average.
func FromSummary(
	param string,
	cat standards.Category,
	average float64,
	count int,
) Statistic {
	return Statistic{
		Parameter: param,
		Category:  cat,
		Average:   average,
		Count:     count,
		Min:       average,
		Max:       average,
	}
}

type acc struct {
	sum      float64
	count    int
	dropped  int
	min, max float64
}

// Aggregate groups readings by parameter and category and computes the
// mean of numeric values. Groups without numeric values produce no
// Statistic and are reported as Excluded. Both results are sorted by
// category and parameter.
func Aggregate(readings []Reading) ([]Statistic, []Excluded) {
	groups := make(map[standards.Key]*acc)
	var keys []standards.Key
	for _, r := range readings {
		key := standards.Key{Parameter: r.Parameter, Category: r.Category}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
			keys = append(keys, key)
		}

		f, ok := r.Value.Float()
		if !ok {
			a.dropped++
			continue
		}
		if a.count == 0 || f < a.min {
			a.min = f
		}
		if a.count == 0 || f > a.max {
			a.max = f
		}
		a.sum += f
		a.count++
	}

	slices.SortFunc(keys, compareKeys)

	var res []Statistic
	var excl []Excluded
	for _, k := range keys {
		a := groups[k]
		if a.count == 0 {
			excl = append(excl, Excluded{
				Parameter: k.Parameter,
				Category:  k.Category,
				Dropped:   a.dropped,
			})
			continue
		}
		res = append(res, Statistic{
			Parameter: k.Parameter,
			Category:  k.Category,
			Average:   a.sum / float64(a.count),
			Count:     a.count,
			Dropped:   a.dropped,
			Min:       a.min,
			Max:       a.max,
		})
	}
	return res, excl
}

func compareKeys(a, b standards.Key) int {
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	return cmp.Compare(a.Parameter, b.Parameter)
}

// Merge combines statistics of the same parameter that came from
// different labels. Averages are weighted by sample counts. Uploads never
// carry zero counts, if all counts are zero anyway a plain mean of
// averages is used.
func Merge(sts ...Statistic) Statistic {
	if len(sts) == 0 {
		return Statistic{}
	}
	res := sts[0]
	if len(sts) == 1 {
		return res
	}

	var sum, plain float64
	var count, dropped int
	for i, s := range sts {
		sum += s.Average * float64(s.Count)
		plain += s.Average
		count += s.Count
		dropped += s.Dropped
		if i == 0 {
			continue
		}
		res.Min = min(res.Min, s.Min)
		res.Max = max(res.Max, s.Max)
	}

	res.Count = count
	res.Dropped = dropped
	if count > 0 {
		res.Average = sum / float64(count)
	} else {
		res.Average = plain / float64(len(sts))
	}
	return res
}
