package nsweep_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxfield/nsweep"
	"github.com/voxfield/nsweep/pkg/adapters/memory"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

// recordingLauncher is a TrainerLauncher that never spawns a process.
type recordingLauncher struct {
	mu       sync.Mutex
	launched []domain.Invocation
}

func (r *recordingLauncher) Launch(ctx context.Context, inv domain.Invocation) (ports.RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.launched = append(r.launched, inv)
	return ports.RunResult{}, nil
}

func librarySweep() *domain.Sweep {
	s := domain.NewSweep("lib")
	s.Axes = []domain.Axis{
		{Name: "sigma", Values: []string{"1", "2", "4"}},
	}
	return s
}

func TestNew_RejectsInvalidSweep(t *testing.T) {
	s := domain.NewSweep("")
	_, err := nsweep.New(s)
	assert.Error(t, err)
}

func TestEngine_PlanAndRun(t *testing.T) {
	launcher := &recordingLauncher{}
	eng, err := nsweep.New(librarySweep(),
		nsweep.WithLauncher(launcher),
		nsweep.WithStore(memory.New()),
	)
	require.NoError(t, err)

	invs := eng.Plan()
	require.Len(t, invs, 3)
	assert.Equal(t, "lib_1", invs[0].Name)

	state, err := eng.Run(context.Background())
	require.NoError(t, err)

	succeeded, failed, _ := state.Counts()
	assert.Equal(t, 3, succeeded)
	assert.Zero(t, failed)
	assert.Len(t, launcher.launched, 3)
}

func TestEngine_Hooks(t *testing.T) {
	var ended int
	eng, err := nsweep.New(librarySweep(),
		nsweep.WithLauncher(&recordingLauncher{}),
		nsweep.WithStore(memory.New()),
		nsweep.WithLifecycleHooks(domain.LifecycleHooks{
			OnRunEnd: func(context.Context, *domain.RunEvent) { ended++ },
		}),
	)
	require.NoError(t, err)

	_, err = eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ended)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: from_file
axes:
  - name: f_init
    values: [ones, zeros]
`), 0o644))

	eng, err := nsweep.Load(path,
		nsweep.WithLauncher(&recordingLauncher{}),
		nsweep.WithStore(memory.New()),
	)
	require.NoError(t, err)
	assert.Equal(t, "from_file", eng.Sweep().Name)
	assert.Len(t, eng.Plan(), 2)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := nsweep.Load(filepath.Join(t.TempDir(), "gone.yaml"))
		assert.Error(t, err)
	})
}
