// Package portstest provides reusable contract tests for ports implementations.
// Every RunStore adapter runs the same contract so behavior stays aligned
// across the file, memory and redis backends.
package portstest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

// RunStoreContract exercises the RunStore interface against a fresh store.
func RunStoreContract(t *testing.T, store ports.RunStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadUnknownSweep", func(t *testing.T) {
		_, err := store.Load(ctx, "does-not-exist")
		assert.ErrorIs(t, err, domain.ErrSweepNotFound)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		state := domain.NewSweepState("gnerf-grid", 6)
		state.Record(&domain.RunRecord{
			Name:     "gnerf_128_ones",
			Index:    0,
			Values:   map[string]string{"f_grid_resolution": "128", "f_init": "ones"},
			Status:   domain.RunSucceeded,
			Attempts: 1,
		})

		require.NoError(t, store.Save(ctx, state.ID, state))

		loaded, err := store.Load(ctx, state.ID)
		require.NoError(t, err)
		assert.Equal(t, state.ID, loaded.ID)
		assert.Equal(t, 6, loaded.GridSize)
		require.Contains(t, loaded.Runs, "gnerf_128_ones")
		assert.Equal(t, domain.RunSucceeded, loaded.Runs["gnerf_128_ones"].Status)
		assert.Equal(t, "128", loaded.Runs["gnerf_128_ones"].Values["f_grid_resolution"])
		assert.True(t, loaded.Succeeded("gnerf_128_ones"))
	})

	t.Run("Overwrite", func(t *testing.T) {
		state := domain.NewSweepState("overwrite-me", 1)
		require.NoError(t, store.Save(ctx, state.ID, state))

		state.Record(&domain.RunRecord{Name: "run", Status: domain.RunFailed, ExitCode: 1})
		require.NoError(t, store.Save(ctx, state.ID, state))

		loaded, err := store.Load(ctx, state.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RunFailed, loaded.Runs["run"].Status)
		assert.Equal(t, 1, loaded.Runs["run"].ExitCode)
	})

	t.Run("Delete", func(t *testing.T) {
		state := domain.NewSweepState("delete-me", 1)
		require.NoError(t, store.Save(ctx, state.ID, state))
		require.NoError(t, store.Delete(ctx, state.ID))

		_, err := store.Load(ctx, state.ID)
		assert.ErrorIs(t, err, domain.ErrSweepNotFound)

		// Deleting a missing sweep is not an error.
		assert.NoError(t, store.Delete(ctx, state.ID))
	})
}
