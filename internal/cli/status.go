package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/voxfield/nsweep/internal/presentation/tui"
	"github.com/voxfield/nsweep/pkg/domain"
)

// StatusOptions contains the configuration for the Status command.
type StatusOptions struct {
	File  string // sweep file to derive the name from
	Name  string // explicit sweep name, overrides File
	Plain bool
	Store StoreOptions
}

// ExecuteStatus loads the persisted ledger for a sweep and prints it.
func ExecuteStatus(opts StatusOptions) error {
	name := opts.Name
	if name == "" {
		sweep, err := loadSweep(opts.File, nil)
		if err != nil {
			return err
		}
		name = sweep.Name
	}

	store, _, err := createStore(opts.Store)
	if err != nil {
		return err
	}

	state, err := store.Load(context.Background(), name)
	if err != nil {
		if errors.Is(err, domain.ErrSweepNotFound) {
			return fmt.Errorf("no recorded state for sweep %q", name)
		}
		return err
	}

	printMarkdown(tui.SummaryMarkdown(state), opts.Plain)
	return nil
}
