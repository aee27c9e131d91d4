package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxfield/nsweep/internal/adapters/file"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports/portstest"
)

func TestStore_Contract(t *testing.T) {
	portstest.RunStoreContract(t, file.New(t.TempDir()))
}

func TestStore_DefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".nsweep", "sweeps"), store.BasePath)
}

func TestStore_NoTempFileLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	state := domain.NewSweepState("clean", 1)
	require.NoError(t, store.Save(ctx, state.ID, state))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "clean.json", entries[0].Name())
}

func TestStore_List(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", domain.NewSweepState("a", 1)))
	require.NoError(t, store.Save(ctx, "b", domain.NewSweepState("b", 2)))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	t.Run("EmptyDirectory", func(t *testing.T) {
		ids, err := file.New(filepath.Join(t.TempDir(), "missing")).List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})
}
