// Package param maps free-form parameter labels to canonical parameter
// names. Aliases and unit spellings come from reference data, matching
// is exact on folded labels, no fuzzy scoring is involved.
//
// A label may carry a unit and a few qualifier words after the alias,
// e.g. "K (%)" or "Nitrogen content %". Anything else after the alias,
// such as the second element of "C/N ratio", leaves the label unmapped.
package param

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gnames/nutrigap/pkg/standards"
)

// Standardizer resolves labels to canonical names. It is immutable and
// safe for concurrent use.
type Standardizer struct {
	norm    *standards.Normalizer
	aliases map[standards.Category][]alias

	// units are folded unit spellings split into tokens, longest first.
	units [][]string
}

// qualifiers may follow an alias without changing its meaning.
var qualifiers = map[string]struct{}{
	"average":       {},
	"avg":           {},
	"basis":         {},
	"conc":          {},
	"concentration": {},
	"content":       {},
	"dm":            {},
	"dry":           {},
	"level":         {},
	"mean":          {},
	"value":         {},
}

type alias struct {
	label     string
	canonical string
}

// New creates a Standardizer from a validated catalog. Canonical names are
// aliases of themselves.
func New(cat *standards.Catalog) *Standardizer {
	res := &Standardizer{
		norm:    standards.NewNormalizer(cat.UnitVariants),
		aliases: make(map[standards.Category][]alias),
	}
	seenUnits := make(map[string]struct{})
	addUnit := func(u string) {
		u = res.norm.Normalize(u)
		if _, ok := seenUnits[u]; ok || u == "" {
			return
		}
		seenUnits[u] = struct{}{}
		res.units = append(res.units, strings.Fields(u))
	}
	for u := range cat.UnitVariants {
		addUnit(u)
	}

	for _, p := range cat.Parameters {
		addUnit(p.Unit)
		c, ok := standards.NewCategory(p.Category)
		if !ok {
			continue
		}
		name := strings.TrimSpace(p.Name)
		seen := make(map[string]struct{})
		for _, a := range append([]string{name}, p.Aliases...) {
			label := res.norm.Normalize(a)
			if _, ok := seen[label]; ok || label == "" {
				continue
			}
			seen[label] = struct{}{}
			res.aliases[c] = append(res.aliases[c],
				alias{label: label, canonical: name})
		}
	}

	slices.SortFunc(res.units, func(a, b []string) int {
		if n := cmp.Compare(len(b), len(a)); n != 0 {
			return n
		}
		return cmp.Compare(strings.Join(a, " "), strings.Join(b, " "))
	})

	for c := range res.aliases {
		slices.SortFunc(res.aliases[c], func(a, b alias) int {
			if n := cmp.Compare(len(b.label), len(a.label)); n != 0 {
				return n
			}
			return cmp.Compare(a.label, b.label)
		})
	}
	return res
}

// Standardize returns the canonical name for a label of a given category.
// The second value is false when the label is unmapped.
//
// A folded label matches an alias if it is equal to the alias, or starts
// with the alias and the rest of it consists only of units and qualifier
// words. When several aliases match the longest one wins.
func (s *Standardizer) Standardize(
	cat standards.Category,
	label string,
) (string, bool) {
	norm := s.norm.Normalize(label)
	if norm == "" {
		return "", false
	}
	for _, a := range s.aliases[cat] {
		if norm == a.label {
			return a.canonical, true
		}
		rest, ok := strings.CutPrefix(norm, a.label+" ")
		if ok && s.isDecoration(strings.Fields(rest)) {
			return a.canonical, true
		}
	}
	return "", false
}

// isDecoration is true when tokens are a sequence of whole units and
// qualifier words.
func (s *Standardizer) isDecoration(tokens []string) bool {
	for len(tokens) > 0 {
		if _, ok := qualifiers[tokens[0]]; ok {
			tokens = tokens[1:]
			continue
		}
		n := s.unitPrefix(tokens)
		if n == 0 {
			return false
		}
		tokens = tokens[n:]
	}
	return true
}

// unitPrefix returns the number of tokens taken by the longest unit at the
// start of tokens, or zero.
func (s *Standardizer) unitPrefix(tokens []string) int {
	for _, u := range s.units {
		if len(u) <= len(tokens) && slices.Equal(u, tokens[:len(u)]) {
			return len(u)
		}
	}
	return 0
}

// Normalize exposes label folding, it is useful for diagnostics.
func (s *Standardizer) Normalize(label string) string {
	return s.norm.Normalize(label)
}
