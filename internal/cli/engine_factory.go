package cli

import (
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/voxfield/nsweep"
	"github.com/voxfield/nsweep/internal/adapters/file"
	"github.com/voxfield/nsweep/internal/adapters/redis"
	"github.com/voxfield/nsweep/internal/config"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

const lockPrefix = "nsweep:lock:"

// StoreOptions selects and configures the ledger backend.
type StoreOptions struct {
	Kind     string // "file" or "redis"
	StateDir string // file store base path ("" for the default)
	Addr     string // redis address
	Password string
	DB       int
	Lock     bool // guard the sweep with a distributed lock (redis only)
}

// createStore builds the RunStore (and optionally the locker) from the CLI
// flags. The same redis client backs both the store and the lock.
func createStore(opts StoreOptions) (ports.RunStore, ports.DistributedLocker, error) {
	switch opts.Kind {
	case "", "file":
		if opts.Lock {
			return nil, nil, fmt.Errorf("--lock requires the redis store")
		}
		return file.New(opts.StateDir), nil, nil
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		})
		store := redis.NewFromClient(client)
		var locker ports.DistributedLocker
		if opts.Lock {
			locker = redis.NewLocker(client, lockPrefix)
		}
		return store, locker, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (supported: file, redis)", opts.Kind)
	}
}

// loadSweep reads the sweep file and applies command-line overrides.
func loadSweep(path string, devices []int) (*domain.Sweep, error) {
	sweep, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if len(devices) > 0 {
		sweep.Devices = devices
	}
	return sweep, nil
}

// createEngine assembles the library engine with standard CLI conventions.
func createEngine(sweep *domain.Sweep, store ports.RunStore, locker ports.DistributedLocker, logger *slog.Logger, resume bool, extra ...nsweep.Option) (*nsweep.Engine, error) {
	opts := []nsweep.Option{
		nsweep.WithStore(store),
		nsweep.WithLogger(logger),
		nsweep.WithLifecycleHooks(progressHooks(logger)),
		nsweep.WithResume(resume),
	}
	if locker != nil {
		opts = append(opts, nsweep.WithLocker(locker))
	}
	opts = append(opts, extra...)

	eng, err := nsweep.New(sweep, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return eng, nil
}
