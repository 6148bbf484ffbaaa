package standards

import "slices"

// Table is an immutable lookup of reference standards keyed by canonical
// parameter and category. It is never modified after creation, so it is
// safe for concurrent use.
type Table struct {
	version string
	source  string
	keys    []Key
	data    map[Key]Standard
}

// Lookup returns a standard for a parameter. A miss is not an error, it
// means the parameter cannot be compared.
func (t *Table) Lookup(param string, cat Category) (Standard, bool) {
	res, ok := t.data[Key{Parameter: param, Category: cat}]
	if ok && res.Max != nil {
		mx := *res.Max
		res.Max = &mx
	}
	return res, ok
}

// Version of the reference data.
func (t *Table) Version() string {
	return t.version
}

// Source describes the origin of the reference data.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of standards.
func (t *Table) Len() int {
	return len(t.keys)
}

// Standards returns all standards in catalog order. If a category is
// given, only standards of that category are returned.
func (t *Table) Standards(cats ...Category) []Standard {
	res := make([]Standard, 0, len(t.keys))
	for _, k := range t.keys {
		if len(cats) > 0 && !slices.Contains(cats, k.Category) {
			continue
		}
		std, _ := t.Lookup(k.Parameter, k.Category)
		res = append(res, std)
	}
	return res
}

