package ioupload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/ioupload"
	"github.com/gnames/nutrigap/pkg/errcode"
	"github.com/gnames/nutrigap/pkg/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	up, err := ioupload.Parse([]byte(`{"soil": {}}`), "estate.json")
	require.NoError(t, err)
	assert.Empty(t, up.Measurements)

	_, err = ioupload.Parse([]byte(`{"soil": 1}`), "estate.json")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UploadValidationError, gnErr.Code)
	assert.Equal(t, "estate.json", gnErr.Vars[0])
	assert.Equal(t, "soil", gnErr.Vars[1])

	var vErr *upload.ValidationError
	assert.ErrorAs(t, gnErr.Err, &vErr)
}

func TestRead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "block-7.json")
	data := `{"leaf": {"K": {"values": [0.8, 1.0]}}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	up, err := ioupload.Read(path)
	require.NoError(t, err)
	require.Len(t, up.Measurements, 1)

	_, err = ioupload.Read(filepath.Join(dir, "none.json"))
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "block-7", ioupload.Label("/data/uploads/block-7.json"))
	assert.Equal(t, "sample", ioupload.Label("sample"))
}
