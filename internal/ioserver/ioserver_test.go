package ioserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gnames/nutrigap/internal/iohistory"
	"github.com/gnames/nutrigap/internal/ioreference"
	"github.com/gnames/nutrigap/internal/ioserver"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
  "soil": {"Nitrogen (%)": {"average": 0.08, "sample_count": 5}},
  "leaf": [
    {"sample_no": "S1", "K (%)": 0.7, "N %": 2.5},
    {"sample_no": "S2", "K (%)": "0.74", "N %": "n/a"}
  ]
}`

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T, store history.Store) *gin.Engine {
	cat, err := ioreference.Load("")
	require.NoError(t, err)
	srv := ioserver.New(engine.New(cat), store, config.New())
	return srv.Router()
}

func request(
	router *gin.Engine,
	method, url, body string,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	router.ServeHTTP(w, req)
	return w
}

type gapsResponse struct {
	Source     string          `json:"source"`
	SnapshotID string          `json:"snapshotId"`
	Table      json.RawMessage `json:"table"`
	Diag       struct {
		DroppedValues int `json:"droppedValues"`
	} `json:"diagnostics"`
}

func TestPing(t *testing.T) {
	router := newServer(t, nil)
	w := request(router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"referenceVersion":"v1.0.0"`)
}

func TestGaps(t *testing.T) {
	router := newServer(t, nil)
	w := request(router, http.MethodPost, "/api/v1/gaps?source=block-7", doc)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res gapsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "block-7", res.Source)
	assert.Empty(t, res.SnapshotID)
	assert.Equal(t, 1, res.Diag.DroppedValues)

	tbl, err := gaptable.Decode(res.Table)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "K", tbl.At(0).Parameter)
	assert.Equal(t, "Nitrogen", tbl.At(1).Parameter)
	assert.Equal(t, "N", tbl.At(2).Parameter)

	w2 := request(router, http.MethodPost, "/api/v1/gaps", doc)
	var res2 gapsResponse
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &res2))
	assert.JSONEq(t, string(res.Table), string(res2.Table))
}

func TestGapsErrors(t *testing.T) {
	router := newServer(t, nil)
	tests := []struct {
		msg    string
		url    string
		body   string
		status int
		path   string
	}{
		{"not json", "/api/v1/gaps", "soil=1",
			http.StatusUnprocessableEntity, ""},
		{"wrong category", "/api/v1/gaps", `{"root": {}}`,
			http.StatusUnprocessableEntity, "root"},
		{"both average and values", "/api/v1/gaps",
			`{"leaf": {"K": {"average": 1, "values": [1]}}}`,
			http.StatusUnprocessableEntity, "leaf.K"},
		{"save without history", "/api/v1/gaps?save=true", doc,
			http.StatusServiceUnavailable, ""},
		{"bad save flag", "/api/v1/gaps?save=maybe", doc,
			http.StatusBadRequest, ""},
	}
	for _, v := range tests {
		w := request(router, http.MethodPost, v.url, v.body)
		assert.Equal(t, v.status, w.Code, v.msg)
		var res struct {
			Error string `json:"error"`
			Path  string `json:"path"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), v.msg)
		assert.NotEmpty(t, res.Error, v.msg)
		assert.Equal(t, v.path, res.Path, v.msg)
	}
}

func TestReport(t *testing.T) {
	router := newServer(t, nil)
	w := request(router, http.MethodPost,
		"/api/v1/gaps/report?title=Block+7", doc)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
}

func TestStandards(t *testing.T) {
	router := newServer(t, nil)
	tests := []struct {
		url    string
		status int
		count  int
	}{
		{"/api/v1/standards", http.StatusOK, 17},
		{"/api/v1/standards?category=soil", http.StatusOK, 9},
		{"/api/v1/standards?category=leaf", http.StatusOK, 8},
		{"/api/v1/standards?category=root", http.StatusBadRequest, 0},
	}
	for _, v := range tests {
		w := request(router, http.MethodGet, v.url, "")
		assert.Equal(t, v.status, w.Code, v.url)
		if v.status != http.StatusOK {
			continue
		}
		var res struct {
			Version   string           `json:"version"`
			Standards []map[string]any `json:"standards"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "v1.0.0", res.Version)
		assert.Len(t, res.Standards, v.count, v.url)
	}
}

func TestHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.sqlite")
	store, err := iohistory.NewSQLite(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	router := newServer(t, store)

	w := request(router, http.MethodPost,
		"/api/v1/gaps?save=true&source=block-7", doc)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res gapsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.SnapshotID)

	w = request(router, http.MethodGet, "/api/v1/history?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), res.SnapshotID)

	w = request(router, http.MethodGet, "/api/v1/history/"+res.SnapshotID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap struct {
		Source string          `json:"source"`
		Table  json.RawMessage `json:"table"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "block-7", snap.Source)
	assert.JSONEq(t, string(res.Table), string(snap.Table))

	w = request(router, http.MethodGet,
		"/api/v1/history/"+res.SnapshotID+"/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = request(router, http.MethodGet, "/api/v1/history/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(router, http.MethodGet, "/api/v1/history?limit=0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(router, http.MethodGet, "/api/v1/history?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
