package nsweep

import (
	"context"
	"log/slog"

	"github.com/voxfield/nsweep/internal/adapters/file"
	"github.com/voxfield/nsweep/internal/config"
	"github.com/voxfield/nsweep/internal/metrics"
	"github.com/voxfield/nsweep/internal/runtime"
	"github.com/voxfield/nsweep/pkg/adapters/process"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

// Version is the nsweep release version.
var Version = "0.4.0"

// Engine is the high-level entry point for the nsweep library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	sweep    *domain.Sweep
	runtime  *runtime.Engine
	launcher ports.TrainerLauncher
	store    ports.RunStore
	locker   ports.DistributedLocker
	hooks    domain.LifecycleHooks
	metrics  *metrics.Metrics
	logger   *slog.Logger
	resume   bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLauncher injects a custom TrainerLauncher, bypassing the default
// subprocess launcher.
func WithLauncher(l ports.TrainerLauncher) Option {
	return func(e *Engine) {
		e.launcher = l
	}
}

// WithStore injects a custom RunStore, bypassing the default file store.
func WithStore(s ports.RunStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker sets a distributed locker guarding the sweep ledger.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics attaches Prometheus collectors updated around each run.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithResume makes Run skip combinations already recorded as succeeded.
func WithResume(resume bool) Option {
	return func(e *Engine) {
		e.resume = resume
	}
}

// New initializes an Engine for the given sweep.
func New(sweep *domain.Sweep, opts ...Option) (*Engine, error) {
	if err := sweep.Validate(); err != nil {
		return nil, err
	}

	eng := &Engine{sweep: sweep}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.launcher == nil {
		eng.launcher = process.NewLauncher()
	}
	if eng.store == nil {
		eng.store = file.New("")
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithResume(eng.resume),
	}
	if eng.logger != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLogger(eng.logger))
	}
	if eng.locker != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLocker(eng.locker))
	}
	if eng.metrics != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithMetrics(eng.metrics))
	}

	eng.runtime = runtime.NewEngine(sweep, eng.launcher, eng.store, runtimeOpts...)
	return eng, nil
}

// Load initializes an Engine from a sweep YAML file.
func Load(path string, opts ...Option) (*Engine, error) {
	sweep, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(sweep, opts...)
}

// Sweep returns the configuration the engine was built from.
func (e *Engine) Sweep() *domain.Sweep {
	return e.sweep
}

// Plan expands the grid into the deterministic, ordered invocation list
// without launching anything.
func (e *Engine) Plan() []domain.Invocation {
	return e.runtime.Plan()
}

// Run executes the whole sweep, blocking until every combination finished
// (or the failure policy stopped the sweep), and returns the final ledger.
func (e *Engine) Run(ctx context.Context) (*domain.SweepState, error) {
	return e.runtime.Run(ctx)
}

// Snapshot returns a copy of the current ledger, safe for concurrent readers.
func (e *Engine) Snapshot() *domain.SweepState {
	return e.runtime.Snapshot()
}
