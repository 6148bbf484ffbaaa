// Package standards keeps reference nutrient standards. A Catalog is the
// versioned data artifact as it is stored on disk, a Table is its
// immutable lookup form shared by concurrent analysis runs.
package standards

import (
	"fmt"
	"strings"
)

// Category of a measurement.
type Category string

const (
	Soil Category = "soil"
	Leaf Category = "leaf"
)

// Categories lists all supported categories in their display order.
var Categories = []Category{Soil, Leaf}

// NewCategory converts a string to a Category. It returns false for
// unknown categories.
func NewCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Soil:
		return Soil, true
	case Leaf:
		return Leaf, true
	default:
		return "", false
	}
}

func (c Category) String() string {
	return string(c)
}

// Standard is a recommended range of one parameter.
type Standard struct {
	// Parameter is the canonical parameter name.
	Parameter string

	// Category of the parameter.
	Category Category

	// Min is the recommended minimum.
	Min float64

	// Max is the recommended maximum, nil when the standard has no upper
	// bound.
	Max *float64

	// Unit of the parameter, e.g. "%" or "mg/kg".
	Unit string
}

// Key identifies a Standard inside a Table.
type Key struct {
	Parameter string   `json:"parameter"`
	Category  Category `json:"category"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Category, k.Parameter)
}
