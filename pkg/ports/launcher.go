package ports

import (
	"context"
	"time"

	"github.com/voxfield/nsweep/pkg/domain"
)

// RunResult is the outcome of one blocking trainer launch.
type RunResult struct {
	// ExitCode of the trainer process. Zero on success.
	ExitCode int

	// Error carries a human-readable failure description (exec errors,
	// non-zero exit). Empty on success.
	Error string

	StartedAt time.Time
	Duration  time.Duration
}

// Failed reports whether the run is usable as a success.
func (r RunResult) Failed() bool {
	return r.ExitCode != 0 || r.Error != ""
}

// TrainerLauncher executes one invocation as a blocking subprocess.
//
// A non-zero trainer exit is reported through the RunResult, not as a Go
// error; the returned error is reserved for the launch machinery itself
// (command not found, context canceled). Failure policy is the engine's
// concern, not the launcher's.
type TrainerLauncher interface {
	Launch(ctx context.Context, inv domain.Invocation) (RunResult, error)
}
