package iobatch_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/iobatch"
	"github.com/gnames/nutrigap/internal/ioreference"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/errcode"
	"github.com/gnames/nutrigap/pkg/gap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.Engine {
	cat, err := ioreference.Load("")
	require.NoError(t, err)
	return engine.New(cat)
}

func TestRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	var paths []string
	for i, avg := range []float64{0.72, 0.8, 0.92, 0.9, 0.6} {
		path := filepath.Join(dir, fmt.Sprintf("block-%d.json", i))
		data := fmt.Sprintf(
			`{"leaf": {"K (%%)": {"average": %v, "sample_count": 4}}}`, avg)
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		paths = append(paths, path)
	}
	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"roots": {}}`), 0644))
	paths = append(paths, bad, filepath.Join(dir, "missing.json"))

	e := newEngine(t)
	for _, jobs := range []int{0, 1, 3, 16} {
		r := iobatch.New(e, jobs, false)
		res, err := r.Run(context.Background(), paths)
		require.NoError(t, err)
		require.Len(t, res, len(paths))

		severities := []gap.Severity{
			gap.Critical, gap.Low, gap.Balanced, gap.Balanced, gap.Critical,
		}
		for i, sev := range severities {
			assert.Equal(t, paths[i], res[i].Path)
			assert.Equal(t, fmt.Sprintf("block-%d", i), res[i].Source)
			require.NoError(t, res[i].Err)
			assert.Equal(t, sev, res[i].Result.Table.At(0).Severity)
		}

		gnErr, ok := res[5].Err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.UploadValidationError, gnErr.Code)

		gnErr, ok = res[6].Err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.ReadFileError, gnErr.Code)
	}
}

func TestRunEmpty(t *testing.T) {
	r := iobatch.New(newEngine(t), 4, false)
	res, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := iobatch.New(newEngine(t), 2, false)
	_, err := r.Run(ctx, []string{"a.json", "b.json", "c.json"})
	assert.ErrorIs(t, err, context.Canceled)
}
