package upload_test

import (
	"testing"

	"github.com/gnames/nutrigap/pkg/standards"
	"github.com/gnames/nutrigap/pkg/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummaries(t *testing.T) {
	data := `{
  "soil": {
    "pH": {"average": 4.2, "sample_count": 10},
    "Nitrogen (%)": {"average": "0.08%", "sample_count": 10}
  }
}`
	up, err := upload.Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, up.Measurements, 2)

	m := up.Measurements[0]
	assert.Equal(t, "Nitrogen (%)", m.Label)
	assert.Equal(t, standards.Soil, m.Category)
	require.NotNil(t, m.Summary)
	assert.Equal(t, 0.08, m.Summary.Average)
	assert.Equal(t, 10, m.Summary.SampleCount)
	assert.Empty(t, m.Samples)

	assert.Equal(t, "pH", up.Measurements[1].Label)
}

func TestParseValues(t *testing.T) {
	data := `{"leaf": {"K %": {"values": [0.8, "n/a", 1.0, null]}}}`
	up, err := upload.Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, up.Measurements, 1)

	m := up.Measurements[0]
	assert.Nil(t, m.Summary)
	require.Len(t, m.Samples, 4)

	f, ok := m.Samples[0].Value.Float()
	assert.True(t, ok)
	assert.Equal(t, 0.8, f)
	_, ok = m.Samples[1].Value.Float()
	assert.False(t, ok)
	assert.Equal(t, "n/a", m.Samples[1].Value.String())
	assert.True(t, m.Samples[3].Value.IsMissing())
	assert.Equal(t, "3", m.Samples[2].ID)
}

func TestParseRows(t *testing.T) {
	data := `{
  "Leaf": [
    {"sample_no": "S1", "lab_no": "L-100", "N %": 2.3, "K %": "0.85"},
    {"sample_no": 2, "N %": 2.5, "K %": "-"},
    {"N %": null}
  ]
}`
	up, err := upload.Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, up.Measurements, 2)

	k := up.Measurements[0]
	assert.Equal(t, "K %", k.Label)
	assert.Equal(t, standards.Leaf, k.Category)
	require.Len(t, k.Samples, 2)
	assert.Equal(t, "S1", k.Samples[0].ID)
	assert.Equal(t, "2", k.Samples[1].ID)

	n := up.Measurements[1]
	require.Len(t, n.Samples, 3)
	assert.Equal(t, "3", n.Samples[2].ID)
	assert.True(t, n.Samples[2].Value.IsMissing())
}

func TestParseEmpty(t *testing.T) {
	for _, data := range []string{
		`{}`,
		`{"soil": {}}`,
		`{"soil": null, "leaf": []}`,
	} {
		up, err := upload.Parse([]byte(data))
		require.NoError(t, err, data)
		assert.Empty(t, up.Measurements, data)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		path string
	}{
		{"not json", `{"soil":`, ""},
		{"top level array", `[1, 2]`, ""},
		{"top level null", `null`, ""},
		{"unknown category", `{"water": {}}`, "water"},
		{"duplicate category", `{"soil": {}, "SOIL": {}}`, ""},
		{"category is a string", `{"soil": "N"}`, "soil"},
		{"entry is a number", `{"soil": {"pH": 4.5}}`, "soil.pH"},
		{"entry without data", `{"soil": {"pH": {}}}`, "soil.pH"},
		{"both average and values",
			`{"soil": {"pH": {"average": 4, "sample_count": 1, "values": [4]}}}`,
			"soil.pH"},
		{"average is not numeric",
			`{"soil": {"pH": {"average": "n/a", "sample_count": 1}}}`,
			"soil.pH.average"},
		{"average is null",
			`{"soil": {"pH": {"average": null, "sample_count": 1}}}`,
			"soil.pH.average"},
		{"missing sample count",
			`{"soil": {"pH": {"average": 4}}}`, "soil.pH"},
		{"negative sample count",
			`{"soil": {"pH": {"average": 4, "sample_count": -1}}}`,
			"soil.pH.sample_count"},
		{"fractional sample count",
			`{"soil": {"pH": {"average": 4, "sample_count": 1.5}}}`,
			"soil.pH.sample_count"},
		{"zero sample count",
			`{"soil": {"pH": {"average": 4, "sample_count": 0}}}`,
			"soil.pH.sample_count"},
		{"values is not an array",
			`{"soil": {"pH": {"values": 4}}}`, "soil.pH.values"},
		{"object inside values",
			`{"soil": {"pH": {"values": [4, {"a": 1}]}}}`, "soil.pH.values[1]"},
		{"boolean value", `{"leaf": [{"N": true}]}`, "leaf[0].N"},
		{"row is not an object", `{"leaf": [1]}`, "leaf[0]"},
	}

	for _, v := range tests {
		_, err := upload.Parse([]byte(v.data))
		require.Error(t, err, v.msg)

		var vErr *upload.ValidationError
		require.ErrorAs(t, err, &vErr, v.msg)
		if v.path != "" {
			assert.Equal(t, v.path, vErr.Path, v.msg)
		}
		assert.NotEmpty(t, vErr.Reason, v.msg)
	}
}
