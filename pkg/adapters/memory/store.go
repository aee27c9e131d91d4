// Package memory implements ports.RunStore in process memory.
// It backs tests and embedders that do not need durable resume.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

// Store is a thread-safe in-memory RunStore.
type Store struct {
	mu     sync.RWMutex
	sweeps map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		sweeps: make(map[string][]byte),
	}
}

var _ ports.RunStore = (*Store)(nil)

// Save persists a deep copy of the state via JSON round-trip, so later
// mutations by the engine do not leak into the stored snapshot.
func (s *Store) Save(ctx context.Context, sweepID string, state *domain.SweepState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweeps[sweepID] = data
	return nil
}

// Load retrieves the state for a sweep ID.
func (s *Store) Load(ctx context.Context, sweepID string) (*domain.SweepState, error) {
	s.mu.RLock()
	data, ok := s.sweeps[sweepID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSweepNotFound
	}

	var state domain.SweepState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Delete removes the state for a sweep ID. Deleting a missing sweep is a no-op.
func (s *Store) Delete(ctx context.Context, sweepID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sweeps, sweepID)
	return nil
}
