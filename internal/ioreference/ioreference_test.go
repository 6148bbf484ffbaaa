package ioreference_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/ioreference"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/errcode"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	cat, err := ioreference.Load("")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", cat.Version)
	assert.Empty(t, cat.Warnings)

	tbl := cat.Table()
	assert.Len(t, tbl.Standards(standards.Soil), 9)
	assert.Len(t, tbl.Standards(standards.Leaf), 8)

	tests := []struct {
		name string
		cat  standards.Category
		min  float64
		max  float64
		unit string
	}{
		{"pH", standards.Soil, 4.5, 5.5, "-"},
		{"Nitrogen", standards.Soil, 0.10, 0.15, "%"},
		{"Available P", standards.Soil, 15, 30, "mg/kg"},
		{"Exch. Mg", standards.Soil, 0.8, 1.5, "meq%"},
		{"CEC", standards.Soil, 8, 15, "meq%"},
		{"N", standards.Leaf, 2.4, 2.8, "%"},
		{"K", standards.Leaf, 0.9, 1.2, "%"},
		{"Zn", standards.Leaf, 15, 25, "mg/kg"},
	}
	for _, v := range tests {
		std, ok := tbl.Lookup(v.name, v.cat)
		require.True(t, ok, v.name)
		assert.Equal(t, v.min, std.Min, v.name)
		require.NotNil(t, std.Max, v.name)
		assert.Equal(t, v.max, *std.Max, v.name)
		assert.Equal(t, v.unit, std.Unit, v.name)
	}
}

// TestEmbeddedLabels checks label spellings found on lab reports against
// the embedded aliases.
func TestEmbeddedLabels(t *testing.T) {
	cat, err := ioreference.Load("")
	require.NoError(t, err)
	e := engine.New(cat)
	s := e.Standardizer()

	tests := []struct {
		cat   standards.Category
		label string
		res   string
	}{
		{standards.Soil, "pH", "pH"},
		{standards.Soil, "Nitrogen (%)", "Nitrogen"},
		{standards.Soil, "Organic Carbon (%)", "Organic Carbon"},
		{standards.Soil, "Total P (mg/kg)", "Total P"},
		{standards.Soil, "Available P (mg kg-1)", "Available P"},
		{standards.Soil, "Exch. K (meq%)", "Exch. K"},
		{standards.Soil, "Exch_Ca_meq%", "Exch. Ca"},
		{standards.Soil, "Exch. Mg (cmol/kg)", "Exch. Mg"},
		{standards.Soil, "C.E.C (meq%)", "CEC"},
		{standards.Leaf, "N (%)", "N"},
		{standards.Leaf, "P %", "P"},
		{standards.Leaf, "K (%)", "K"},
		{standards.Leaf, "Mg (%)", "Mg"},
		{standards.Leaf, "Ca (%)", "Ca"},
		{standards.Leaf, "B (mg/kg)", "B"},
		{standards.Leaf, "Cu (ppm)", "Cu"},
		{standards.Leaf, "Zn mg/kg", "Zn"},
	}
	for _, v := range tests {
		res, ok := s.Standardize(v.cat, v.label)
		assert.True(t, ok, v.label)
		assert.Equal(t, v.res, res, v.label)
	}

	for _, l := range []string{
		"C/N ratio", "Ca/Mg ratio", "K/Mg", "Mg/K ratio", "N/A",
	} {
		_, ok := s.Standardize(standards.Soil, l)
		assert.False(t, ok, l)
	}

	up, err := upload.Parse([]byte(
		`{"leaf": {"K (%)": {"average": 0.72, "sample_count": 4}}}`))
	require.NoError(t, err)
	res, err := e.Analyze(up)
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, gap.Critical, res.Table.At(0).Severity)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		code any
	}{
		{"bad yaml", "version: [", errcode.ReferenceDecodeError},
		{"not a version", "version: latest\nparameters: []",
			errcode.ReferenceVersionError},
		{"too old", "version: v0.9.0\nparameters: []",
			errcode.ReferenceVersionError},
		{"no parameters", "version: v1.2.0\nparameters: []",
			errcode.ReferenceInvalidError},
		{"bad category", `version: v1.2.0
parameters:
  - name: K
    category: root
    min: 1
    unit: "%"`, errcode.ReferenceInvalidError},
	}

	for _, v := range tests {
		_, err := ioreference.Decode([]byte(v.data), "test.yaml")
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestLoadFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.yaml")
	data := `version: v1.1.0
source: estate agronomist
parameters:
  - name: K
    category: leaf
    min: 1.0
    unit: "%"
    aliases: [potassium]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cat, err := ioreference.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", cat.Version)
	assert.Equal(t, "estate agronomist", cat.Source)

	_, err = ioreference.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReferenceReadError, gnErr.Code)
}
