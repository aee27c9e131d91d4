// Package process implements ports.TrainerLauncher using os/exec.
//
// The trainer is launched as a blocking child process with the sweep's
// device-selection variable appended to the inherited environment. Output is
// streamed to the configured writers so the operator sees the trainer's own
// progress in real time, exactly like the original launch scripts.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

// Launcher executes trainer invocations as local subprocesses.
type Launcher struct {
	workDir  string
	stdout   io.Writer
	stderr   io.Writer
	extraEnv map[string]string
}

// Option configures the launcher.
type Option func(*Launcher)

// WithWorkDir sets the working directory for launched trainers.
func WithWorkDir(dir string) Option {
	return func(l *Launcher) {
		l.workDir = dir
	}
}

// WithStdout redirects the trainer's stdout (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(l *Launcher) {
		l.stdout = w
	}
}

// WithStderr redirects the trainer's stderr (default os.Stderr).
func WithStderr(w io.Writer) Option {
	return func(l *Launcher) {
		l.stderr = w
	}
}

// WithExtraEnv adds fixed environment entries to every launch, on top of the
// per-invocation device pin (e.g. WANDB_MODE=offline).
func WithExtraEnv(env map[string]string) Option {
	return func(l *Launcher) {
		l.extraEnv = env
	}
}

// NewLauncher creates a launcher writing to the parent's stdio.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.TrainerLauncher = (*Launcher)(nil)

// Launch runs one invocation to completion.
//
// A non-zero trainer exit comes back in the RunResult; the error return is
// reserved for the launch machinery (binary missing, context canceled).
func (l *Launcher) Launch(ctx context.Context, inv domain.Invocation) (ports.RunResult, error) {
	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...)
	cmd.Dir = l.workDir
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr
	cmd.Env = append(os.Environ(), flatten(l.extraEnv)...)
	cmd.Env = append(cmd.Env, flatten(inv.Env)...)

	result := ports.RunResult{StartedAt: time.Now().UTC()}

	err := cmd.Run()
	result.Duration = time.Since(result.StartedAt)

	if err == nil {
		return result, nil
	}

	// Cancellation is not a trainer failure; surface it to the engine.
	if ctx.Err() != nil {
		result.ExitCode = -1
		result.Error = ctx.Err().Error()
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Error = fmt.Sprintf("trainer exited with code %d", result.ExitCode)
		return result, nil
	}

	// The process never started (e.g. ns-train not on PATH).
	result.ExitCode = -1
	result.Error = err.Error()
	return result, fmt.Errorf("failed to launch %s: %w", inv.Command, err)
}

// flatten renders an env map as KEY=VALUE strings in a stable order.
func flatten(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
