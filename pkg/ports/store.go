package ports

import (
	"context"

	"github.com/voxfield/nsweep/pkg/domain"
)

// RunStore defines the interface for persisting sweep state.
// This allows for durable execution, enabling "Stop & Resume" sweeps.
type RunStore interface {
	// Save persists the state for a given sweep ID.
	Save(ctx context.Context, sweepID string, state *domain.SweepState) error

	// Load retrieves the state for a given sweep ID.
	// Returns domain.ErrSweepNotFound if the sweep does not exist.
	Load(ctx context.Context, sweepID string) (*domain.SweepState, error)

	// Delete removes the state for a given sweep ID.
	Delete(ctx context.Context, sweepID string) error
}
