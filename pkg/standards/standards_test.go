package standards_test

import (
	"testing"

	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 {
	return &f
}

func validCatalog() *standards.Catalog {
	return &standards.Catalog{
		Version: "v1.0.0",
		UnitVariants: map[string][]string{
			"mg/kg": {"ppm", "mg kg-1"},
			"meq%":  {"meq/100g", "cmol/kg"},
		},
		Parameters: []standards.ParameterData{
			{Name: "Nitrogen", Category: "soil", Min: 0.1, Max: ptr(0.15),
				Unit: "%", Aliases: []string{"n", "total n"}},
			{Name: "Exch. K", Category: "soil", Min: 0.15, Max: ptr(0.25),
				Unit: "meq%", Aliases: []string{"k", "exchangeable k"}},
			{Name: "N", Category: "leaf", Min: 2.4, Max: ptr(2.8),
				Unit: "%", Aliases: []string{"leaf n", "nitrogen"}},
			{Name: "B", Category: "leaf", Min: 15, Unit: "mg/kg",
				Aliases: []string{"boron"}},
		},
	}
}

func TestNewCategory(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		cat   standards.Category
		ok    bool
	}{
		{"soil", "soil", standards.Soil, true},
		{"leaf with case and spaces", " Leaf ", standards.Leaf, true},
		{"unknown", "root", "", false},
		{"empty", "", "", false},
	}

	for _, v := range tests {
		cat, ok := standards.NewCategory(v.input)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.cat, cat, v.msg)
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts valid catalog", func(t *testing.T) {
		cat := validCatalog()
		require.NoError(t, cat.Validate())
		assert.Empty(t, cat.Warnings)
	})

	tests := []struct {
		msg    string
		modify func(*standards.Catalog)
		errStr string
	}{
		{
			msg:    "missing version",
			modify: func(c *standards.Catalog) { c.Version = "" },
			errStr: "version is required",
		},
		{
			msg:    "no parameters",
			modify: func(c *standards.Catalog) { c.Parameters = nil },
			errStr: "no parameters",
		},
		{
			msg: "unknown category",
			modify: func(c *standards.Catalog) {
				c.Parameters[0].Category = "water"
			},
			errStr: "invalid category",
		},
		{
			msg: "duplicate name across categories",
			modify: func(c *standards.Catalog) {
				c.Parameters[2].Name = "Nitrogen"
				c.Parameters[2].Aliases = nil
			},
			errStr: "duplicate name",
		},
		{
			msg: "negative minimum",
			modify: func(c *standards.Catalog) {
				c.Parameters[0].Min = -1
			},
			errStr: "negative minimum",
		},
		{
			msg: "maximum below minimum",
			modify: func(c *standards.Catalog) {
				c.Parameters[0].Max = ptr(0.01)
			},
			errStr: "less than minimum",
		},
		{
			msg: "alias conflict in category",
			modify: func(c *standards.Catalog) {
				c.Parameters[1].Aliases = append(c.Parameters[1].Aliases, "Total-N")
			},
			errStr: "already used",
		},
	}

	for _, v := range tests {
		cat := validCatalog()
		v.modify(cat)
		err := cat.Validate()
		require.Error(t, err, v.msg)
		assert.Contains(t, err.Error(), v.errStr, v.msg)
	}

	t.Run("same alias in different categories", func(t *testing.T) {
		cat := validCatalog()
		cat.Parameters[3].Aliases = append(cat.Parameters[3].Aliases, "k")
		assert.NoError(t, cat.Validate())
	})

	t.Run("zero minimum is a warning", func(t *testing.T) {
		cat := validCatalog()
		cat.Parameters[3].Min = 0
		require.NoError(t, cat.Validate())
		require.Len(t, cat.Warnings, 1)
		assert.Contains(t, cat.Warnings[0], "zero minimum")

		require.NoError(t, cat.Validate())
		assert.Len(t, cat.Warnings, 1, "warnings are not accumulated")
	})
}

func TestNormalizer(t *testing.T) {
	n := standards.NewNormalizer(validCatalog().UnitVariants)

	tests := []struct {
		msg   string
		input string
		res   string
	}{
		{"lower case", "Nitrogen", "nitrogen"},
		{"punctuation", "Exch. K (meq%)", "exch k meq %"},
		{"glued percent", "N%", "n %"},
		{"underscores", "exch_k_meq%", "exch k meq %"},
		{"unit variant", "B (ppm)", "b mg kg"},
		{"unit variant with exponent", "B mg kg-1", "b mg kg"},
		{"meq variant", "Exch. Ca cmol/kg", "exch ca meq %"},
		{"meq per 100g", "CEC (meq/100g)", "cec meq %"},
		{"canonical unit", "B mg/kg", "b mg kg"},
		{"spaces", "  total \t N  ", "total n"},
		{"empty", " ()", ""},
		{"variant inside word is kept", "ppmx", "ppmx"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, n.Normalize(v.input), v.msg)
	}
}

func TestTable(t *testing.T) {
	cat := validCatalog()
	require.NoError(t, cat.Validate())
	tbl := cat.Table()

	assert.Equal(t, "v1.0.0", tbl.Version())
	assert.Equal(t, 4, tbl.Len())

	t.Run("lookup hit", func(t *testing.T) {
		std, ok := tbl.Lookup("N", standards.Leaf)
		require.True(t, ok)
		assert.Equal(t, 2.4, std.Min)
		require.NotNil(t, std.Max)
		assert.Equal(t, 2.8, *std.Max)
		assert.Equal(t, "%", std.Unit)
	})

	t.Run("lookup miss is not an error", func(t *testing.T) {
		_, ok := tbl.Lookup("N", standards.Soil)
		assert.False(t, ok)
		_, ok = tbl.Lookup("Zn", standards.Leaf)
		assert.False(t, ok)
	})

	t.Run("table does not share state", func(t *testing.T) {
		std, _ := tbl.Lookup("Nitrogen", standards.Soil)
		*std.Max = 100
		cat.Parameters[0].Min = 50

		std2, _ := tbl.Lookup("Nitrogen", standards.Soil)
		assert.Equal(t, 0.15, *std2.Max)
		assert.Equal(t, 0.1, std2.Min)
	})

	t.Run("standards by category", func(t *testing.T) {
		leaf := tbl.Standards(standards.Leaf)
		require.Len(t, leaf, 2)
		assert.Equal(t, "N", leaf[0].Parameter)
		assert.Equal(t, "B", leaf[1].Parameter)
		assert.Nil(t, leaf[1].Max)
		assert.Len(t, tbl.Standards(), 4)
	})
}
