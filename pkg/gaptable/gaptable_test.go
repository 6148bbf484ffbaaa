package gaptable_test

import (
	"math"
	"testing"

	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 {
	return &f
}

func records() []gap.Record {
	data := []struct {
		name string
		avg  float64
		min  float64
	}{
		{"Ca", 0.9, 1.0},
		{"K", 0.8, 1.0},
		{"Mg", 0.75, 1.0},
		{"N", 2.5, 2.4},
		{"X", 3, 0},
	}
	res := make([]gap.Record, len(data))
	for i, d := range data {
		st := stats.Statistic{Parameter: d.name, Category: standards.Leaf,
			Average: d.avg, Count: 1}
		std := standards.Standard{Parameter: d.name, Category: standards.Leaf,
			Min: d.min, Max: ptr(d.min * 1.2), Unit: "%"}
		res[i] = gap.Calculate(st, std)
	}
	return res
}

func build(t *testing.T, rs []gap.Record, version string) *gaptable.Table {
	t.Helper()
	res, err := gaptable.Build(rs, version)
	require.NoError(t, err)
	return res
}

func params(rs []gap.Record) []string {
	res := make([]string, len(rs))
	for i, r := range rs {
		res[i] = r.Parameter
	}
	return res
}

func TestBuild(t *testing.T) {
	tbl := build(t, records(), "v1.0.0")

	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, []string{"Mg", "K", "Ca", "N", "X"}, params(tbl.Records()))
	assert.Equal(t, gaptable.Counts{
		Critical: 2, Low: 1, Balanced: 1, Undefined: 1, Total: 5,
	}, tbl.Counts())
	assert.Equal(t, "v1.0.0", tbl.ReferenceVersion())
	assert.NotEmpty(t, tbl.GenerationID())
	assert.Equal(t, "Mg", tbl.At(0).Parameter)
	assert.False(t, tbl.IsEmpty())

	assert.Equal(t, []string{"Mg", "K", "Ca", "N"}, params(tbl.Prioritized()))

	sev, ok := tbl.Severity("K", standards.Leaf)
	assert.True(t, ok)
	assert.Equal(t, gap.Critical, sev)
	_, ok = tbl.Severity("K", standards.Soil)
	assert.False(t, ok)
}

func TestBuildEmpty(t *testing.T) {
	tbl := build(t, nil, "v1.0.0")
	assert.True(t, tbl.IsEmpty())
	assert.Equal(t, gaptable.Counts{}, tbl.Counts())

	data, err := tbl.Encode(false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"records":[]`)
}

func TestDeterminism(t *testing.T) {
	in := records()
	rev := make([]gap.Record, len(in))
	for i := range in {
		rev[len(in)-1-i] = in[i]
	}

	t1 := build(t, in, "v1.0.0")
	t2 := build(t, rev, "v1.0.0")
	t3 := build(t, in, "v1.1.0")

	j1, err := t1.Encode(false)
	require.NoError(t, err)
	j2, err := t2.Encode(false)
	require.NoError(t, err)
	assert.Equal(t, j1, j2)
	assert.Equal(t, t1.GenerationID(), t2.GenerationID())
	assert.NotEqual(t, t1.GenerationID(), t3.GenerationID())
}

func TestImmutable(t *testing.T) {
	in := records()
	tbl := build(t, in, "v1.0.0")

	in[0].Parameter = "changed"
	*in[1].PercentGap = 1000

	rs := tbl.Records()
	rs[0].Severity = gap.Balanced
	*rs[0].AbsPercentGap = 0

	assert.Equal(t, []string{"Mg", "K", "Ca", "N", "X"}, params(tbl.Records()))
	assert.Equal(t, gap.Critical, tbl.At(0).Severity)
	assert.Equal(t, 25.0, *tbl.At(0).AbsPercentGap)
	assert.Equal(t, -20.0, *tbl.At(1).PercentGap)
}

func TestDecode(t *testing.T) {
	tbl := build(t, records(), "v1.0.0")
	data, err := tbl.Encode(true)
	require.NoError(t, err)

	res, err := gaptable.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, tbl.GenerationID(), res.GenerationID())
	assert.Equal(t, tbl.Counts(), res.Counts())
	assert.Equal(t, tbl.Records(), res.Records())

	again, err := res.Encode(true)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	_, err = gaptable.Decode([]byte(`{"records":[]}`))
	assert.Error(t, err)
	_, err = gaptable.Decode([]byte(
		`{"generationId":"x","counts":{"total":2},"records":[]}`))
	assert.Error(t, err)
	_, err = gaptable.Decode([]byte(`[`))
	assert.Error(t, err)
}

func TestDecodeGenerationID(t *testing.T) {
	tests := []struct {
		msg, id string
		ok      bool
	}{
		{"uuid", "5b0c2f0e-3c1a-5b8e-9d0a-1f2e3d4c5b6a", true},
		{"short", "x", false},
		{"truncated uuid", "5b0c2f0e", false},
		{"not hex", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", false},
	}
	for _, v := range tests {
		data := []byte(`{"generationId":"` + v.id +
			`","referenceVersion":"v1.0.0","counts":{"total":0},"records":[]}`)
		res, err := gaptable.Decode(data)
		if !v.ok {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.id, res.GenerationID(), v.msg)
	}
}

func TestBuildUnencodable(t *testing.T) {
	inf := math.Inf(1)
	rec := gap.Record{
		Parameter:     "K",
		Category:      standards.Leaf,
		Unit:          "%",
		Average:       1e308,
		Min:           0.9,
		Gap:           inf,
		PercentGap:    &inf,
		AbsPercentGap: &inf,
		Severity:      gap.Critical,
	}
	tbl, err := gaptable.Build([]gap.Record{rec}, "v1.0.0")
	assert.Error(t, err)
	assert.Nil(t, tbl)
}
