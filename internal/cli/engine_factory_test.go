package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxfield/nsweep/internal/adapters/file"
)

func TestCreateStore(t *testing.T) {
	t.Run("Defaults to file store", func(t *testing.T) {
		store, locker, err := createStore(StoreOptions{})
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, store)
		assert.Nil(t, locker)
	})

	t.Run("Explicit file store", func(t *testing.T) {
		store, _, err := createStore(StoreOptions{Kind: "file", StateDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, store)
	})

	t.Run("Lock requires redis", func(t *testing.T) {
		_, _, err := createStore(StoreOptions{Kind: "file", Lock: true})
		assert.Error(t, err)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, _, err := createStore(StoreOptions{Kind: "etcd"})
		assert.Error(t, err)
	})
}

func TestLoadSweep_DeviceOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: override
devices: [0]
axes:
  - name: sigma
    values: [1, 2]
`), 0o644))

	t.Run("File devices kept without flag", func(t *testing.T) {
		sweep, err := loadSweep(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, sweep.Devices)
	})

	t.Run("Flag overrides file", func(t *testing.T) {
		sweep, err := loadSweep(path, []int{2, 3})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, sweep.Devices)
	})
}
