package process

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxfield/nsweep/pkg/domain"
)

// shellInvocation builds an invocation around sh -c so tests do not depend
// on an installed trainer. On Windows there is no sh; these tests skip.
func shellInvocation(t *testing.T, script string) domain.Invocation {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests rely on sh")
	}
	return domain.Invocation{
		Name:    "test-run",
		Command: "sh",
		Args:    []string{"-c", script},
		Env:     map[string]string{"CUDA_VISIBLE_DEVICES": "2"},
	}
}

func TestLauncher_Launch(t *testing.T) {
	var out bytes.Buffer
	launcher := NewLauncher(WithStdout(&out), WithStderr(&out))

	result, err := launcher.Launch(context.Background(), shellInvocation(t, "echo training"))
	require.NoError(t, err)
	assert.False(t, result.Failed())
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, out.String(), "training")
}

func TestLauncher_Launch_DevicePin(t *testing.T) {
	var out bytes.Buffer
	launcher := NewLauncher(WithStdout(&out))

	_, err := launcher.Launch(context.Background(), shellInvocation(t, "echo device=$CUDA_VISIBLE_DEVICES"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "device=2")
}

func TestLauncher_Launch_ExtraEnv(t *testing.T) {
	var out bytes.Buffer
	launcher := NewLauncher(
		WithStdout(&out),
		WithExtraEnv(map[string]string{"WANDB_MODE": "offline"}),
	)

	_, err := launcher.Launch(context.Background(), shellInvocation(t, "echo mode=$WANDB_MODE"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "mode=offline")
}

func TestLauncher_Launch_NonZeroExit(t *testing.T) {
	launcher := NewLauncher(WithStdout(&bytes.Buffer{}), WithStderr(&bytes.Buffer{}))

	result, err := launcher.Launch(context.Background(), shellInvocation(t, "exit 7"))
	// Non-zero exit is a result, not a Go error: policy belongs to the engine.
	require.NoError(t, err)
	assert.True(t, result.Failed())
	assert.Equal(t, 7, result.ExitCode)
	assert.Contains(t, result.Error, "code 7")
}

func TestLauncher_Launch_CommandNotFound(t *testing.T) {
	launcher := NewLauncher()
	inv := domain.Invocation{Name: "ghost", Command: "definitely-not-ns-train"}

	result, err := launcher.Launch(context.Background(), inv)
	assert.Error(t, err)
	assert.True(t, result.Failed())
}

func TestLauncher_Launch_Canceled(t *testing.T) {
	launcher := NewLauncher(WithStdout(&bytes.Buffer{}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := launcher.Launch(ctx, shellInvocation(t, "sleep 30"))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
