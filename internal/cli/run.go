package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/voxfield/nsweep"
	httpadapter "github.com/voxfield/nsweep/internal/adapters/http"
	"github.com/voxfield/nsweep/internal/metrics"
	"github.com/voxfield/nsweep/internal/presentation/tui"
	"github.com/voxfield/nsweep/pkg/domain"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	File     string
	Devices  []int
	Resume   bool
	DryRun   bool
	Listen   string // status/metrics listen address, "" disables the server
	LogLevel string
	Plain    bool
	Store    StoreOptions
}

// Execute handles the 'run' command logic.
func Execute(opts RunOptions) error {
	// Dry run: show the plan instead of launching anything.
	if opts.DryRun {
		return ExecutePlan(PlanOptions{File: opts.File, Devices: opts.Devices, Plain: opts.Plain})
	}

	logger := createLogger(opts.LogLevel)

	sweep, err := loadSweep(opts.File, opts.Devices)
	if err != nil {
		return err
	}

	store, locker, err := createStore(opts.Store)
	if err != nil {
		return err
	}

	var engineOpts []nsweep.Option
	var reg *prometheus.Registry
	if opts.Listen != "" {
		reg = prometheus.NewRegistry()
		engineOpts = append(engineOpts, nsweep.WithMetrics(metrics.New(reg)))
	}

	eng, err := createEngine(sweep, store, locker, logger, opts.Resume, engineOpts...)
	if err != nil {
		return err
	}

	if !opts.Plain && stdoutIsTerminal() {
		tui.PrintBanner()
	}

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	if opts.Listen != "" {
		shutdown, err := serveStatus(opts.Listen, eng.Snapshot, reg, logger)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	logger.Info("Sweep Starting", "grid_size", len(eng.Plan()), "devices", sweep.Devices, "policy", sweep.Policy)

	state, runErr := eng.Run(sc)
	if state != nil {
		printMarkdown(tui.SummaryMarkdown(state), opts.Plain)
	}

	if errors.Is(runErr, domain.ErrSweepAborted) {
		return runErr
	}
	if sc.Signal() == os.Interrupt {
		fmt.Println(">>> Interrupted. Re-run with --resume to pick up where you left off.")
	}
	return handleExecutionError(runErr)
}

// serveStatus starts the status/metrics HTTP server in the background and
// returns a shutdown function.
func serveStatus(addr string, snapshot httpadapter.SnapshotFunc, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: httpadapter.NewHandler(snapshot, reg)}
	go func() {
		logger.Info("Status Server Listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Status server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
