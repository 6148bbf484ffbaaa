package engine

import (
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/stats"
)

// Diagnostics collects everything that was left out of the gap table or
// needs attention. None of it is an error.
type Diagnostics struct {
	// Unmapped labels do not match any known parameter. They are kept
	// for raw data views.
	Unmapped []Label `json:"unmapped,omitempty"`

	// NoValidSamples lists parameters whose values were all non-numeric
	// or missing.
	NoValidSamples []stats.Excluded `json:"noValidSamples,omitempty"`

	// NoStandard lists parameters without a reference standard.
	NoStandard []standards.Key `json:"noStandard,omitempty"`

	// ZeroMinimum lists parameters with undefined percent gap.
	ZeroMinimum []standards.Key `json:"zeroMinimum,omitempty"`

	// Merged lists parameters given under several labels.
	Merged []Merged `json:"merged,omitempty"`

	// DroppedValues is the number of non-numeric or missing values.
	DroppedValues int `json:"droppedValues"`
}

// Label is a parameter label as it was given.
type Label struct {
	Label    string             `json:"label"`
	Category standards.Category `json:"category"`
}

// Merged describes labels resolved to the same parameter.
type Merged struct {
	Parameter string             `json:"parameter"`
	Category  standards.Category `json:"category"`
	Labels    []string           `json:"labels"`
}

// IsEmpty is true when there is nothing to report.
func (d Diagnostics) IsEmpty() bool {
	return len(d.Unmapped) == 0 &&
		len(d.NoValidSamples) == 0 &&
		len(d.NoStandard) == 0 &&
		len(d.ZeroMinimum) == 0 &&
		len(d.Merged) == 0 &&
		d.DroppedValues == 0
}
