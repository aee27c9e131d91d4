package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/voxfield/nsweep/internal/logging"
	"github.com/voxfield/nsweep/internal/metrics"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/grid"
	"github.com/voxfield/nsweep/pkg/ports"
)

// lockTTL bounds how long a crashed holder can block a shared ledger.
// Individual training runs routinely take hours, so this is generous.
const lockTTL = 24 * time.Hour

// Engine drives one sweep end to end.
type Engine struct {
	sweep    *domain.Sweep
	launcher ports.TrainerLauncher
	store    ports.RunStore
	locker   ports.DistributedLocker
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	metrics  *metrics.Metrics
	resume   bool

	mu    sync.Mutex
	state *domain.SweepState
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics attaches Prometheus collectors updated around each run.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLocker sets a distributed locker guarding the sweep ledger.
func WithLocker(locker ports.DistributedLocker) EngineOption {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithResume makes the engine skip combinations the store already records as
// succeeded, instead of starting the ledger fresh.
func WithResume(resume bool) EngineOption {
	return func(e *Engine) {
		e.resume = resume
	}
}

// NewEngine creates an engine for one sweep.
func NewEngine(sweep *domain.Sweep, launcher ports.TrainerLauncher, store ports.RunStore, opts ...EngineOption) *Engine {
	e := &Engine{
		sweep:    sweep,
		launcher: launcher,
		store:    store,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("sweep", sweep.Name)
	return e
}

// Plan expands the grid into the ordered invocation list without executing
// anything. The order is the nested-loop order of the axis declarations:
// first axis slowest, last axis fastest.
func (e *Engine) Plan() []domain.Invocation {
	points := grid.Points(e.sweep.Axes)
	invs := make([]domain.Invocation, 0, len(points))
	for i, p := range points {
		invs = append(invs, e.sweep.Invocation(p, i))
	}
	return invs
}

// Run executes the whole sweep and returns the final ledger.
//
// With a single device the execution is strictly serial in plan order. With
// several devices, one worker per device consumes the ordered queue; runs
// still start in plan order but may finish interleaved.
func (e *Engine) Run(ctx context.Context) (*domain.SweepState, error) {
	if err := e.sweep.Validate(); err != nil {
		return nil, err
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, e.sweep.Name, lockTTL)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release sweep lock", "error", err)
			}
		}()
	}

	invs := e.Plan()
	if err := e.prepareState(ctx, len(invs)); err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.GridSize.Set(float64(len(invs)))
	}

	e.logger.Info("starting sweep",
		"grid_size", len(invs),
		"axes", len(e.sweep.Axes),
		"devices", e.sweep.Devices,
		"policy", e.sweep.Policy,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan domain.Invocation)
	var aborted bool
	var abortOnce sync.Once

	var wg sync.WaitGroup
	for _, device := range e.sweep.Devices {
		wg.Add(1)
		go func(device int) {
			defer wg.Done()
			for inv := range queue {
				if runCtx.Err() != nil {
					e.recordSkipped(ctx, inv, device)
					continue
				}
				if failed := e.runOne(runCtx, inv, device); failed && e.sweep.Policy == domain.PolicyAbort {
					abortOnce.Do(func() {
						aborted = true
						e.logger.Error("aborting sweep on first failure", "run", inv.Name)
						cancel()
					})
				}
			}
		}(device)
	}

feed:
	for _, inv := range invs {
		if e.resume && e.snapshotSucceeded(inv.Name) {
			e.logger.Info("skipping completed run", "run", inv.Name, "index", inv.Index)
			continue
		}
		select {
		case queue <- inv:
		case <-runCtx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	state := e.Snapshot()
	succeeded, failed, skipped := state.Counts()
	e.logger.Info("sweep finished",
		"succeeded", succeeded,
		"failed", failed,
		"skipped", skipped,
		"grid_size", state.GridSize,
	)
	if e.hooks.OnSweepEnd != nil {
		e.hooks.OnSweepEnd(ctx, &domain.SweepEvent{
			Timestamp: time.Now().UTC(),
			SweepID:   e.sweep.Name,
			GridSize:  state.GridSize,
			Succeeded: succeeded,
			Failed:    failed,
			Skipped:   skipped,
		})
	}

	if ctx.Err() != nil {
		return state, ctx.Err()
	}
	if aborted {
		return state, domain.ErrSweepAborted
	}
	return state, nil
}

// runOne launches a single invocation, honoring the retry policy.
// It reports whether the run ultimately failed.
func (e *Engine) runOne(ctx context.Context, inv domain.Invocation, device int) bool {
	attempts := 1
	if e.sweep.Policy == domain.PolicyRetry {
		attempts += e.sweep.MaxRetries
	}

	rec := &domain.RunRecord{
		Name:      inv.Name,
		Index:     inv.Index,
		Values:    inv.Values,
		Device:    device,
		Status:    domain.RunRunning,
		StartedAt: time.Now().UTC(),
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		rec.Attempts = attempt
		e.record(ctx, rec)

		e.logger.Info("launching trainer",
			"run", inv.Name,
			"index", inv.Index,
			"device", device,
			"attempt", attempt,
		)
		if e.hooks.OnRunStart != nil {
			e.hooks.OnRunStart(ctx, &domain.RunEvent{
				Timestamp: time.Now().UTC(),
				SweepID:   e.sweep.Name,
				Run:       inv.Name,
				Index:     inv.Index,
				Device:    device,
				Attempt:   attempt,
				Status:    domain.RunRunning,
			})
		}

		result, err := e.launcher.Launch(ctx, inv.Pin(e.sweep.DeviceVar, device))
		rec.ExitCode = result.ExitCode
		rec.Error = result.Error
		rec.FinishedAt = time.Now().UTC()

		if e.metrics != nil {
			e.metrics.RunDuration.Observe(result.Duration.Seconds())
		}

		failed := result.Failed() || err != nil
		if !failed {
			rec.Status = domain.RunSucceeded
			e.finishRun(ctx, rec, result.Duration)
			return false
		}

		// Cancellation ends the run without consuming retry budget.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			rec.Status = domain.RunFailed
			if rec.Error == "" {
				rec.Error = "canceled"
			}
			e.finishRun(ctx, rec, result.Duration)
			return true
		}

		if attempt < attempts {
			e.logger.Warn("trainer run failed, retrying",
				"run", inv.Name,
				"exit_code", result.ExitCode,
				"attempt", attempt,
				"error", rec.Error,
			)
			continue
		}

		rec.Status = domain.RunFailed
		e.logger.Warn("trainer run failed",
			"run", inv.Name,
			"exit_code", result.ExitCode,
			"attempts", attempt,
			"error", rec.Error,
		)
		e.finishRun(ctx, rec, result.Duration)
		return true
	}
	return true // unreachable
}

func (e *Engine) finishRun(ctx context.Context, rec *domain.RunRecord, dur time.Duration) {
	e.record(ctx, rec)
	if e.metrics != nil {
		e.metrics.RunsTotal.WithLabelValues(string(rec.Status)).Inc()
		e.metrics.RunsCompleted.Inc()
	}
	if e.hooks.OnRunEnd != nil {
		e.hooks.OnRunEnd(ctx, &domain.RunEvent{
			Timestamp: time.Now().UTC(),
			SweepID:   e.sweep.Name,
			Run:       rec.Name,
			Index:     rec.Index,
			Device:    rec.Device,
			Attempt:   rec.Attempts,
			Status:    rec.Status,
			ExitCode:  rec.ExitCode,
			Duration:  dur,
		})
	}
}

func (e *Engine) recordSkipped(ctx context.Context, inv domain.Invocation, device int) {
	e.record(ctx, &domain.RunRecord{
		Name:   inv.Name,
		Index:  inv.Index,
		Values: inv.Values,
		Device: device,
		Status: domain.RunSkipped,
	})
	if e.metrics != nil {
		e.metrics.RunsTotal.WithLabelValues(string(domain.RunSkipped)).Inc()
	}
}

// prepareState loads the existing ledger for resume or starts a fresh one.
func (e *Engine) prepareState(ctx context.Context, gridSize int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.resume {
		state, err := e.store.Load(ctx, e.sweep.Name)
		switch {
		case err == nil:
			state.GridSize = gridSize
			e.state = state
			return nil
		case errors.Is(err, domain.ErrSweepNotFound):
			// Nothing to resume; fall through to a fresh ledger.
		default:
			return err
		}
	}

	e.state = domain.NewSweepState(e.sweep.Name, gridSize)
	return e.store.Save(ctx, e.sweep.Name, e.state)
}

// record updates the ledger and persists it. Persistence failures are logged,
// not fatal: losing the ledger must never kill a running sweep.
func (e *Engine) record(ctx context.Context, rec *domain.RunRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clone := *rec
	e.state.Record(&clone)
	if err := e.store.Save(context.WithoutCancel(ctx), e.sweep.Name, e.state); err != nil {
		e.logger.Warn("failed to persist sweep state", "error", err)
	}
}

func (e *Engine) snapshotSucceeded(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Succeeded(name)
}

// Snapshot returns a copy of the current ledger, safe for concurrent readers
// (status server, MCP tools).
func (e *Engine) Snapshot() *domain.SweepState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return domain.NewSweepState(e.sweep.Name, grid.Size(e.sweep.Axes))
	}

	clone := *e.state
	clone.Runs = make(map[string]*domain.RunRecord, len(e.state.Runs))
	for name, rec := range e.state.Runs {
		r := *rec
		clone.Runs[name] = &r
	}
	return &clone
}
