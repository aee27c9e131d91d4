package domain

import (
	"context"
	"time"
)

// RunEvent describes the start or end of a single trainer run.
type RunEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	SweepID   string        `json:"sweep_id"`
	Run       string        `json:"run"`
	Index     int           `json:"index"`
	Device    int           `json:"device"`
	Attempt   int           `json:"attempt"`
	Status    RunStatus     `json:"status"`
	ExitCode  int           `json:"exit_code"`
	Duration  time.Duration `json:"duration"`
}

// SweepEvent describes the completion of a whole sweep.
type SweepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SweepID   string    `json:"sweep_id"`
	GridSize  int       `json:"grid_size"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil members are simply not called.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnRunEnd   func(context.Context, *RunEvent)
	OnSweepEnd func(context.Context, *SweepEvent)
}
