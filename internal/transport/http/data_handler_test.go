package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhtidy/internal/config"
	"mhtidy/internal/store"
	"mhtidy/pkg/contracts/domain"
)

func setupAPI(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	cfg := config.ServerConfig{}
	router := NewRouter(st, slog.Default(), cfg, nil)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, st
}

func seedDataset(t *testing.T, st *store.Store, name string) {
	t.Helper()
	require.NoError(t, st.Put(name, &domain.Table{
		Columns: []string{"iso3", "coverage"},
		Rows:    [][]string{{"afg", "0.59"}, {"zwe", "0.93"}},
	}))
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := setupAPI(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestListDatasets(t *testing.T) {
	srv, st := setupAPI(t)
	seedDataset(t, st, "antenatal_care")
	seedDataset(t, st, "delivery_care")

	resp, err := http.Get(srv.URL + "/api/datasets/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body DatasetListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Datasets, 2)
	assert.Equal(t, "antenatal_care", body.Datasets[0].Name)
	assert.Equal(t, 2, body.Datasets[0].Rows)
	assert.Equal(t, 2, body.Datasets[0].Columns)
}

func TestGetDatasetJSON(t *testing.T) {
	srv, st := setupAPI(t)
	seedDataset(t, st, "antenatal_care")

	resp, err := http.Get(srv.URL + "/api/datasets/antenatal_care")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body DatasetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "antenatal_care", body.Name)
	require.NotNil(t, body.Table)
	assert.Equal(t, []string{"iso3", "coverage"}, body.Table.Columns)
	assert.Equal(t, 2, body.Table.NumRows())
}

func TestGetDatasetJSON_NotFound(t *testing.T) {
	srv, _ := setupAPI(t)

	resp, err := http.Get(srv.URL + "/api/datasets/never_tidied")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

func TestGetDatasetCSV(t *testing.T) {
	srv, st := setupAPI(t)
	seedDataset(t, st, "antenatal_care")

	resp, err := http.Get(srv.URL + "/api/datasets/antenatal_care/csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "antenatal_care.csv")
}

func TestRequestIDHeaderOnResponses(t *testing.T) {
	srv, _ := setupAPI(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
