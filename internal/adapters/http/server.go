// Package http exposes the sweep's progress over a small status API.
//
// The trainer writes its own artifacts; this server only reports what the
// launcher knows: the ledger and the process metrics.
package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voxfield/nsweep/pkg/domain"
)

// SnapshotFunc returns the current sweep ledger.
type SnapshotFunc func() *domain.SweepState

// StatusResponse is the JSON shape of GET /status.
type StatusResponse struct {
	Sweep     string              `json:"sweep"`
	GridSize  int                 `json:"grid_size"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Skipped   int                 `json:"skipped"`
	Runs      []*domain.RunRecord `json:"runs"`
}

// NewHandler builds the status router. The prometheus registry may be nil,
// in which case /metrics serves the default gatherer.
func NewHandler(snapshot SnapshotFunc, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		state := snapshot()
		succeeded, failed, skipped := state.Counts()

		resp := StatusResponse{
			Sweep:     state.ID,
			GridSize:  state.GridSize,
			Succeeded: succeeded,
			Failed:    failed,
			Skipped:   skipped,
			Runs:      orderedRuns(state),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, "failed to encode status", http.StatusInternalServerError)
		}
	})

	var metricsHandler http.Handler
	if reg != nil {
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	} else {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	return r
}

// orderedRuns sorts records by grid index so the response order matches the
// deterministic plan order regardless of map iteration.
func orderedRuns(state *domain.SweepState) []*domain.RunRecord {
	runs := make([]*domain.RunRecord, 0, len(state.Runs))
	for _, rec := range state.Runs {
		runs = append(runs, rec)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Index < runs[j].Index
	})
	return runs
}
