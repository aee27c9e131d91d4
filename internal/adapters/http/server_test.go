package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/voxfield/nsweep/internal/adapters/http"
	"github.com/voxfield/nsweep/internal/metrics"
	"github.com/voxfield/nsweep/pkg/domain"
)

func testSnapshot() *domain.SweepState {
	state := domain.NewSweepState("gnerf", 3)
	state.Record(&domain.RunRecord{Name: "gnerf_256", Index: 1, Status: domain.RunFailed, ExitCode: 1})
	state.Record(&domain.RunRecord{Name: "gnerf_128", Index: 0, Status: domain.RunSucceeded})
	return state
}

func TestHandler_Status(t *testing.T) {
	handler := httpadapter.NewHandler(testSnapshot, nil)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var status httpadapter.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))

	assert.Equal(t, "gnerf", status.Sweep)
	assert.Equal(t, 3, status.GridSize)
	assert.Equal(t, 1, status.Succeeded)
	assert.Equal(t, 1, status.Failed)

	// Runs come back in plan order, not map order.
	require.Len(t, status.Runs, 2)
	assert.Equal(t, "gnerf_128", status.Runs[0].Name)
	assert.Equal(t, "gnerf_256", status.Runs[1].Name)
}

func TestHandler_Healthz(t *testing.T) {
	srv := httptest.NewServer(httpadapter.NewHandler(testSnapshot, nil))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.GridSize.Set(6)
	m.RunsTotal.WithLabelValues("succeeded").Inc()

	srv := httptest.NewServer(httpadapter.NewHandler(testSnapshot, reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "nsweep_grid_size")
	assert.Contains(t, string(body), "nsweep_runs_total")
}
