package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxfield/nsweep/pkg/adapters/memory"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports/portstest"
)

func TestStore_Contract(t *testing.T) {
	portstest.RunStoreContract(t, memory.New())
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	state := domain.NewSweepState("iso", 2)
	require.NoError(t, store.Save(ctx, state.ID, state))

	// Mutating after Save must not affect the stored snapshot.
	state.Record(&domain.RunRecord{Name: "late", Status: domain.RunFailed})

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.NotContains(t, loaded.Runs, "late")
}
