package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/voxfield/nsweep/internal/logging"
	"github.com/voxfield/nsweep/internal/presentation/tui"
	"github.com/voxfield/nsweep/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows
// retrieving the signal afterwards.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. Logs always go to Stderr so
// they never mix with the rendered reports on Stdout.
func createLogger(level string) *slog.Logger {
	return logging.New(logging.ParseLevel(level))
}

// stdoutIsTerminal reports whether Stdout is attached to an interactive
// terminal. Piped output gets plain markdown instead of ANSI styling.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printMarkdown renders a markdown report to Stdout, styled when attached to
// a terminal and raw otherwise (or when plain is forced).
func printMarkdown(md string, plain bool) {
	if plain || !stdoutIsTerminal() {
		fmt.Print(md)
		return
	}
	render := tui.NewRenderer()
	out, err := render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// progressHooks logs every run transition, mirroring what the classic sweep
// scripts printed between trainings.
func progressHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Info("Run Started", "run", e.Run, "index", e.Index, "device", e.Device, "attempt", e.Attempt)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Status == domain.RunFailed {
				logger.Warn("Run Failed", "run", e.Run, "exit_code", e.ExitCode, "duration", e.Duration)
				return
			}
			logger.Info("Run Finished", "run", e.Run, "status", e.Status, "duration", e.Duration)
		},
		OnSweepEnd: func(ctx context.Context, e *domain.SweepEvent) {
			logger.Info("Sweep Finished", "succeeded", e.Succeeded, "failed", e.Failed, "skipped", e.Skipped)
		},
	}
}

// handleExecutionError maps user-driven interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
