package standards

import (
	"fmt"
	"strings"
)

// Catalog is the serialized form of reference data. Besides ranges it
// carries the aliases and unit spellings used to recognize parameter
// labels.
type Catalog struct {
	// Version of the reference data, e.g. "v1.0.0".
	Version string `yaml:"version"`

	// Source describes where the numbers come from.
	Source string `yaml:"source"`

	// UnitVariants maps a canonical unit to its alternative spellings.
	UnitVariants map[string][]string `yaml:"unit_variants"`

	// Parameters are reference ranges together with their aliases.
	Parameters []ParameterData `yaml:"parameters"`

	// Warnings are non-fatal issues found by Validate.
	Warnings []string `yaml:"-"`
}

// ParameterData describes one parameter in a Catalog.
type ParameterData struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Min      float64  `yaml:"min"`
	Max      *float64 `yaml:"max"`
	Unit     string   `yaml:"unit"`
	Aliases  []string `yaml:"aliases"`
}

// Validate checks the catalog for errors. Canonical names have to be
// unique across the catalog, aliases have to be unique inside a category.
func (c *Catalog) Validate() error {
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version is required")
	}
	if len(c.Parameters) == 0 {
		return fmt.Errorf("no parameters specified in reference data")
	}

	c.Warnings = nil
	norm := NewNormalizer(c.UnitVariants)
	names := make(map[string]struct{})
	aliases := make(map[Category]map[string]string)
	for i, p := range c.Parameters {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("parameter %d: name is required", i+1)
		}
		cat, ok := NewCategory(p.Category)
		if !ok {
			return fmt.Errorf(
				"parameter %q: invalid category %q, must be 'soil' or 'leaf'",
				name, p.Category,
			)
		}
		if _, ok := names[name]; ok {
			return fmt.Errorf("parameter %q: duplicate name", name)
		}
		names[name] = struct{}{}

		if p.Min < 0 {
			return fmt.Errorf("parameter %q: negative minimum %v", name, p.Min)
		}
		if p.Max != nil && *p.Max < p.Min {
			return fmt.Errorf(
				"parameter %q: maximum %v is less than minimum %v",
				name, *p.Max, p.Min,
			)
		}
		if p.Min == 0 {
			c.Warnings = append(c.Warnings, fmt.Sprintf(
				"parameter %q has zero minimum, its percent gap is undefined",
				name,
			))
		}
		if p.Unit == "" {
			c.Warnings = append(c.Warnings,
				fmt.Sprintf("parameter %q has no unit", name))
		}

		if aliases[cat] == nil {
			aliases[cat] = make(map[string]string)
		}
		for _, a := range append([]string{name}, p.Aliases...) {
			label := norm.Normalize(a)
			if label == "" {
				return fmt.Errorf("parameter %q: empty alias", name)
			}
			if owner, ok := aliases[cat][label]; ok && owner != name {
				return fmt.Errorf(
					"alias %q of %q is already used by %q in %s",
					a, name, owner, cat,
				)
			}
			aliases[cat][label] = name
		}
	}
	return nil
}

// Table converts a validated Catalog to its lookup form.
func (c *Catalog) Table() *Table {
	res := &Table{
		version: c.Version,
		source:  c.Source,
		data:    make(map[Key]Standard, len(c.Parameters)),
	}
	for _, p := range c.Parameters {
		cat, _ := NewCategory(p.Category)
		std := Standard{
			Parameter: strings.TrimSpace(p.Name),
			Category:  cat,
			Min:       p.Min,
			Unit:      p.Unit,
		}
		if p.Max != nil {
			mx := *p.Max
			std.Max = &mx
		}
		key := Key{Parameter: std.Parameter, Category: cat}
		res.keys = append(res.keys, key)
		res.data[key] = std
	}
	return res
}
