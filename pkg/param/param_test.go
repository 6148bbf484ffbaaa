package param_test

import (
	"testing"

	"github.com/gnames/nutrigap/pkg/param"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(t *testing.T) *standards.Catalog {
	res := &standards.Catalog{
		Version: "v1.0.0",
		UnitVariants: map[string][]string{
			"mg/kg": {"ppm", "mg kg-1"},
			"meq%":  {"meq/100g", "cmol/kg"},
		},
		Parameters: []standards.ParameterData{
			{Name: "Nitrogen", Category: "soil", Min: 0.1, Unit: "%",
				Aliases: []string{"n", "total n"}},
			{Name: "Organic Carbon", Category: "soil", Min: 1, Unit: "%",
				Aliases: []string{"c", "oc", "organic c"}},
			{Name: "CEC", Category: "soil", Min: 8, Unit: "meq%",
				Aliases: []string{"c e c", "cation exchange capacity"}},
			{Name: "Exch. K", Category: "soil", Min: 0.15, Unit: "meq%",
				Aliases: []string{"k", "exchangeable k"}},
			{Name: "Exch. Ca", Category: "soil", Min: 2, Unit: "meq%",
				Aliases: []string{"ca", "exchangeable ca"}},
			{Name: "Exch. Mg", Category: "soil", Min: 0.8, Unit: "meq%",
				Aliases: []string{"mg", "exchangeable mg"}},
			{Name: "Available P", Category: "soil", Min: 15, Unit: "mg/kg",
				Aliases: []string{"avail p", "available phosphorus"}},
			{Name: "N", Category: "leaf", Min: 2.4, Unit: "%",
				Aliases: []string{"leaf n", "nitrogen"}},
			{Name: "K", Category: "leaf", Min: 0.9, Unit: "%",
				Aliases: []string{"leaf k", "potassium"}},
			{Name: "B", Category: "leaf", Min: 15, Unit: "mg/kg",
				Aliases: []string{"leaf b", "boron"}},
		},
	}
	require.NoError(t, res.Validate())
	return res
}

func TestStandardize(t *testing.T) {
	s := param.New(catalog(t))

	tests := []struct {
		msg   string
		cat   standards.Category
		label string
		res   string
		ok    bool
	}{
		{"canonical name", standards.Soil, "Nitrogen", "Nitrogen", true},
		{"case", standards.Soil, "NITROGEN", "Nitrogen", true},
		{"unit suffix", standards.Soil, "Nitrogen (%)", "Nitrogen", true},
		{"short alias with unit", standards.Soil, "N %", "Nitrogen", true},
		{"same label in leaf", standards.Leaf, "N %", "N", true},
		{"leaf alias", standards.Leaf, "Leaf N (%)", "N", true},
		{"punctuated canonical", standards.Soil, "Exch. K", "Exch. K", true},
		{"underscored", standards.Soil, "exch_k_meq%", "Exch. K", true},
		{"unit variant", standards.Soil, "Exch. K (cmol/kg)", "Exch. K", true},
		{"longest alias wins", standards.Soil, "C.E.C (meq%)", "CEC", true},
		{"short alias still works", standards.Soil, "C (%)", "Organic Carbon", true},
		{"ppm variant", standards.Leaf, "B (ppm)", "B", true},
		{"mg/kg", standards.Leaf, "B mg/kg", "B", true},
		{"exch mg with unit", standards.Soil, "Mg (meq/100g)", "Exch. Mg", true},
		{"qualifier word", standards.Soil, "Nitrogen content (%)", "Nitrogen", true},
		{"qualifiers and unit", standards.Soil, "Total N dry basis %", "Nitrogen", true},
		{"two units", standards.Leaf, "B mg/kg ppm", "B", true},
		{"C/N ratio", standards.Soil, "C/N ratio", "", false},
		{"Ca/Mg ratio", standards.Soil, "Ca/Mg ratio", "", false},
		{"K/Mg", standards.Soil, "K/Mg", "", false},
		{"Mg/K ratio", standards.Soil, "Mg/K ratio", "", false},
		{"N/A", standards.Soil, "N/A", "", false},
		{"N/A in leaf", standards.Leaf, "N/A", "", false},
		{"partial unit", standards.Soil, "K mg", "", false},
		{"unknown word after alias", standards.Soil, "C e c organic", "", false},
		{"word boundary required", standards.Soil, "Na", "", false},
		{"no prefix inside a word", standards.Soil, "Kalium", "", false},
		{"wrong category", standards.Leaf, "Available P", "", false},
		{"unknown label", standards.Soil, "Sand content", "", false},
		{"empty label", standards.Soil, "  ", "", false},
		{"unknown category", standards.Category("root"), "N", "", false},
	}

	for _, v := range tests {
		res, ok := s.Standardize(v.cat, v.label)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestStandardizeDeterministic(t *testing.T) {
	cat := catalog(t)
	for range 20 {
		s := param.New(cat)
		res, ok := s.Standardize(standards.Soil, "C.E.C (cmol/kg)")
		assert.True(t, ok)
		assert.Equal(t, "CEC", res)
	}
}
