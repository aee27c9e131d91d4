package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxfield/nsweep/internal/config"
	"github.com/voxfield/nsweep/pkg/domain"
)

const sweepYAML = `
name: gnerf_fgrid
data: data/nerfstudio/desolation
vis: wandb
dataparser: nerfstudio-data
device: 1
on_failure: retry
max_retries: 2
baseline:
  - name: occupancy_to_density_transformation_function
    value: exponential
  - name: density_multiplier
    value: "1.0"
axes:
  - name: f_grid_resolution
    values: [64, 128, 192, 256, 320, 384, 448]
  - name: f_init
    values: [ones, zeros, rand]
`

func TestParse(t *testing.T) {
	sweep, err := config.Parse([]byte(sweepYAML))
	require.NoError(t, err)

	assert.Equal(t, "gnerf_fgrid", sweep.Name)
	// Trainer wiring defaults apply when not declared.
	assert.Equal(t, "ns-train", sweep.Trainer)
	assert.Equal(t, "gaussian-NeRF-bounded", sweep.Preset)
	assert.Equal(t, "--pipeline.model.", sweep.FlagPrefix)
	assert.Equal(t, "CUDA_VISIBLE_DEVICES", sweep.DeviceVar)

	assert.Equal(t, []int{1}, sweep.Devices)
	assert.Equal(t, domain.PolicyRetry, sweep.Policy)
	assert.Equal(t, 2, sweep.MaxRetries)

	require.Len(t, sweep.Axes, 2)
	// Numeric YAML scalars coerce to the strings the trainer CLI expects.
	assert.Equal(t, []string{"64", "128", "192", "256", "320", "384", "448"}, sweep.Axes[0].Values)
	assert.Equal(t, []string{"ones", "zeros", "rand"}, sweep.Axes[1].Values)

	require.Len(t, sweep.Baseline, 2)
	assert.Equal(t, "1.0", sweep.Baseline[1].Value)
}

func TestParse_Devices(t *testing.T) {
	sweep, err := config.Parse([]byte(`
name: multi
devices: [0, 1, 2]
axes:
  - name: sigma
    values: [1, 2]
`))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, sweep.Devices)

	t.Run("DefaultDevice", func(t *testing.T) {
		sweep, err := config.Parse([]byte(`
name: single
axes:
  - name: sigma
    values: [1]
`))
		require.NoError(t, err)
		assert.Equal(t, []int{0}, sweep.Devices)
	})
}

func TestParse_Invalid(t *testing.T) {
	t.Run("UnknownKey", func(t *testing.T) {
		_, err := config.Parse([]byte(`
name: typo
axess: []
`))
		assert.Error(t, err)
	})

	t.Run("NoAxes", func(t *testing.T) {
		_, err := config.Parse([]byte(`name: empty`))
		assert.ErrorContains(t, err, "at least one axis")
	})

	t.Run("BadPolicy", func(t *testing.T) {
		_, err := config.Parse([]byte(`
name: bad
on_failure: shrug
axes:
  - name: sigma
    values: [1]
`))
		assert.ErrorContains(t, err, "failure policy")
	})

	t.Run("NotYAML", func(t *testing.T) {
		_, err := config.Parse([]byte("\t{nope"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sweepYAML), 0o644))

	sweep, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gnerf_fgrid", sweep.Name)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
